package events

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tbapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/tg-guard/app/bot"
	"github.com/umputun/tg-guard/app/events/mocks"
)

// groupMsg makes a group message replying to a welcome forward
func groupMsg(chatID int64, msgID int, text string) *tbapi.Message {
	now := int(time.Now().Unix())
	return &tbapi.Message{
		MessageID: msgID,
		Chat:      tbapi.Chat{ID: chatID, Type: "supergroup"},
		From:      &tbapi.User{ID: 42, UserName: "bob", FirstName: "Bob"},
		Text:      text,
		Date:      now,
		ReplyToMessage: &tbapi.Message{
			MessageID:          msgID - 1,
			Chat:               tbapi.Chat{ID: chatID, Type: "supergroup"},
			Date:               now - 30,
			IsAutomaticForward: true,
		},
	}
}

// commandMsg makes a group message carrying a bot command
func commandMsg(chatID int64, text string) *tbapi.Message {
	chatType := "supergroup"
	if chatID > 0 {
		chatType = "private"
	}
	return &tbapi.Message{
		MessageID: 11,
		Chat:      tbapi.Chat{ID: chatID, Type: chatType},
		From:      &tbapi.User{ID: 42, UserName: "bob"},
		Text:      text,
		Date:      int(time.Now().Unix()),
		Entities:  []tbapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(strings.Fields(text)[0])}},
	}
}

func TestTelegramListener_DoDeletesSpam(t *testing.T) {
	mockAPI := &mocks.TbAPIMock{
		GetUpdatesChanFunc: func(tbapi.UpdateConfig) tbapi.UpdatesChannel {
			ch := make(chan tbapi.Update, 1)
			ch <- tbapi.Update{Message: groupMsg(-1001, 100, "spam text")}
			return ch
		},
		RequestFunc: func(tbapi.Chattable) (*tbapi.APIResponse, error) {
			return &tbapi.APIResponse{Ok: true}, nil
		},
	}
	guard := &mocks.GuardMock{OnMessageFunc: func(_ context.Context, msg bot.Message) bot.Decision {
		return bot.Decision{Evaluated: true, Delete: true, Score: 0.9, Percent: 90, Strictness: 40}
	}}
	policy := &mocks.PolicyMock{RecordDeletionFunc: func(context.Context, int64) error { return nil }}
	dlog := &mocks.DeletionLoggerMock{SaveFunc: func(*bot.Message, *bot.Decision) {}}

	l := TelegramListener{TbAPI: mockAPI, Guard: guard, Policy: policy, DeletionLog: dlog}
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	err := l.Do(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.Len(t, guard.OnMessageCalls(), 1)
	assert.Equal(t, "spam text", guard.OnMessageCalls()[0].Msg.Text)

	require.Len(t, mockAPI.RequestCalls(), 1)
	del, ok := mockAPI.RequestCalls()[0].C.(tbapi.DeleteMessageConfig)
	require.True(t, ok, "delete request expected")
	assert.Equal(t, 100, del.MessageID)
	assert.Equal(t, int64(-1001), del.ChatConfig.ChatID)

	require.Len(t, policy.RecordDeletionCalls(), 1, "counter bumped after confirmed delete")
	assert.Equal(t, int64(-1001), policy.RecordDeletionCalls()[0].ChatID)
	require.Len(t, dlog.SaveCalls(), 1)
	assert.Equal(t, 90, dlog.SaveCalls()[0].Decision.Percent)
}

func TestTelegramListener_DoKeepsCleanMessage(t *testing.T) {
	mockAPI := &mocks.TbAPIMock{
		GetUpdatesChanFunc: func(tbapi.UpdateConfig) tbapi.UpdatesChannel {
			ch := make(chan tbapi.Update, 1)
			ch <- tbapi.Update{Message: groupMsg(-1001, 100, "thanks for the invite!")}
			return ch
		},
	}
	guard := &mocks.GuardMock{OnMessageFunc: func(context.Context, bot.Message) bot.Decision {
		return bot.Decision{Evaluated: true, Delete: false, Percent: 0, Strictness: 40}
	}}
	policy := &mocks.PolicyMock{}

	l := TelegramListener{TbAPI: mockAPI, Guard: guard, Policy: policy}
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, l.Do(ctx), context.DeadlineExceeded)

	assert.Len(t, guard.OnMessageCalls(), 1)
	assert.Empty(t, mockAPI.RequestCalls(), "nothing deleted")
	assert.Empty(t, policy.RecordDeletionCalls())
}

func TestTelegramListener_DoDryMode(t *testing.T) {
	mockAPI := &mocks.TbAPIMock{
		GetUpdatesChanFunc: func(tbapi.UpdateConfig) tbapi.UpdatesChannel {
			ch := make(chan tbapi.Update, 1)
			ch <- tbapi.Update{Message: groupMsg(-1001, 100, "spam text")}
			return ch
		},
	}
	guard := &mocks.GuardMock{OnMessageFunc: func(context.Context, bot.Message) bot.Decision {
		return bot.Decision{Evaluated: true, Delete: true, Percent: 90, Strictness: 40}
	}}
	policy := &mocks.PolicyMock{}
	dlog := &mocks.DeletionLoggerMock{SaveFunc: func(*bot.Message, *bot.Decision) {}}

	l := TelegramListener{TbAPI: mockAPI, Guard: guard, Policy: policy, DeletionLog: dlog, Dry: true}
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, l.Do(ctx), context.DeadlineExceeded)

	assert.Empty(t, mockAPI.RequestCalls(), "dry mode never deletes")
	assert.Empty(t, policy.RecordDeletionCalls(), "no deletion, no counter")
	assert.Len(t, dlog.SaveCalls(), 1, "report still written")
}

func TestTelegramListener_procEventDeleteFailed(t *testing.T) {
	mockAPI := &mocks.TbAPIMock{
		RequestFunc: func(tbapi.Chattable) (*tbapi.APIResponse, error) {
			return nil, fmt.Errorf("no permission")
		},
	}
	guard := &mocks.GuardMock{OnMessageFunc: func(context.Context, bot.Message) bot.Decision {
		return bot.Decision{Evaluated: true, Delete: true, Percent: 90, Strictness: 40}
	}}
	policy := &mocks.PolicyMock{}

	l := TelegramListener{TbAPI: mockAPI, Guard: guard, Policy: policy}
	err := l.procEvent(context.Background(), groupMsg(-1001, 100, "spam"))
	assert.ErrorContains(t, err, "failed to delete message 100")
	assert.Empty(t, policy.RecordDeletionCalls(), "unconfirmed delete must not bump the counter")
}

func TestTelegramListener_procChatMember(t *testing.T) {
	makeUpdate := func(oldStatus, newStatus string) *tbapi.ChatMemberUpdated {
		return &tbapi.ChatMemberUpdated{
			Chat:          tbapi.Chat{ID: -1001, Type: "supergroup", Title: "test group"},
			OldChatMember: tbapi.ChatMember{Status: oldStatus},
			NewChatMember: tbapi.ChatMember{Status: newStatus},
		}
	}

	t.Run("bot joined", func(t *testing.T) {
		mockAPI := &mocks.TbAPIMock{SendFunc: func(c tbapi.Chattable) (tbapi.Message, error) {
			return tbapi.Message{}, nil
		}}
		policy := &mocks.PolicyMock{EnsureChatFunc: func(context.Context, int64) error { return nil }}
		l := TelegramListener{TbAPI: mockAPI, Policy: policy, JoinedMsg: "hello, I watch for spam here"}

		require.NoError(t, l.procChatMember(context.Background(), makeUpdate("left", "member")))
		require.Len(t, policy.EnsureChatCalls(), 1)
		assert.Equal(t, int64(-1001), policy.EnsureChatCalls()[0].ChatID)
		require.Len(t, mockAPI.SendCalls(), 1)
		assert.Equal(t, "hello, I watch for spam here", mockAPI.SendCalls()[0].C.(tbapi.MessageConfig).Text)
	})

	t.Run("promoted to admin is not a join", func(t *testing.T) {
		mockAPI := &mocks.TbAPIMock{}
		policy := &mocks.PolicyMock{}
		l := TelegramListener{TbAPI: mockAPI, Policy: policy, JoinedMsg: "hello"}

		require.NoError(t, l.procChatMember(context.Background(), makeUpdate("member", "administrator")))
		assert.Empty(t, policy.EnsureChatCalls())
		assert.Empty(t, mockAPI.SendCalls())
	})

	t.Run("bot removed", func(t *testing.T) {
		mockAPI := &mocks.TbAPIMock{}
		policy := &mocks.PolicyMock{}
		l := TelegramListener{TbAPI: mockAPI, Policy: policy, JoinedMsg: "hello"}

		require.NoError(t, l.procChatMember(context.Background(), makeUpdate("member", "left")))
		assert.Empty(t, policy.EnsureChatCalls())
	})

	t.Run("greeting failure still reported", func(t *testing.T) {
		mockAPI := &mocks.TbAPIMock{SendFunc: func(tbapi.Chattable) (tbapi.Message, error) {
			return tbapi.Message{}, fmt.Errorf("blocked")
		}}
		policy := &mocks.PolicyMock{EnsureChatFunc: func(context.Context, int64) error { return nil }}
		l := TelegramListener{TbAPI: mockAPI, Policy: policy, JoinedMsg: "hello"}

		err := l.procChatMember(context.Background(), makeUpdate("kicked", "member"))
		assert.ErrorContains(t, err, "failed to send greeting")
		assert.Len(t, policy.EnsureChatCalls(), 1, "policy record created regardless")
	})
}

func TestTelegramListener_cmdStrictness(t *testing.T) {
	creator := tbapi.ChatMember{Status: "creator"}

	makeListener := func(member tbapi.ChatMember) (*TelegramListener, *mocks.TbAPIMock, *mocks.PolicyMock) {
		mockAPI := &mocks.TbAPIMock{
			SendFunc: func(tbapi.Chattable) (tbapi.Message, error) {
				return tbapi.Message{MessageID: 999}, nil
			},
			RequestFunc: func(tbapi.Chattable) (*tbapi.APIResponse, error) {
				return &tbapi.APIResponse{Ok: true}, nil
			},
			GetChatMemberFunc: func(tbapi.GetChatMemberConfig) (tbapi.ChatMember, error) {
				return member, nil
			},
		}
		policy := &mocks.PolicyMock{
			EnsureChatFunc:    func(context.Context, int64) error { return nil },
			StrictnessFunc:    func(context.Context, int64) (int, error) { return 40, nil },
			SetStrictnessFunc: func(context.Context, int64, int) error { return nil },
		}
		l := &TelegramListener{TbAPI: mockAPI, Policy: policy, CleanupDelay: 20 * time.Millisecond}
		return l, mockAPI, policy
	}

	sentText := func(m *mocks.TbAPIMock) string {
		if len(m.SendCalls()) == 0 {
			return ""
		}
		return m.SendCalls()[len(m.SendCalls())-1].C.(tbapi.MessageConfig).Text
	}

	t.Run("no args shows current level", func(t *testing.T) {
		l, mockAPI, policy := makeListener(creator)
		require.NoError(t, l.cmdStrictness(context.Background(), commandMsg(-1001, "/strictness")))
		assert.Contains(t, sentText(mockAPI), "current strictness: 40%")
		assert.Empty(t, policy.SetStrictnessCalls())
	})

	t.Run("set by creator", func(t *testing.T) {
		l, mockAPI, policy := makeListener(creator)
		require.NoError(t, l.cmdStrictness(context.Background(), commandMsg(-1001, "/strictness 70")))
		require.Len(t, policy.SetStrictnessCalls(), 1)
		assert.Equal(t, 70, policy.SetStrictnessCalls()[0].Level)
		assert.Contains(t, sentText(mockAPI), "strictness set to 70%")
	})

	t.Run("set by admin with delete permission", func(t *testing.T) {
		l, _, policy := makeListener(tbapi.ChatMember{Status: "administrator", CanDeleteMessages: true})
		require.NoError(t, l.cmdStrictness(context.Background(), commandMsg(-1001, "/strictness 55")))
		assert.Len(t, policy.SetStrictnessCalls(), 1)
	})

	t.Run("denied for admin without delete permission", func(t *testing.T) {
		l, mockAPI, policy := makeListener(tbapi.ChatMember{Status: "administrator"})
		require.NoError(t, l.cmdStrictness(context.Background(), commandMsg(-1001, "/strictness 55")))
		assert.Empty(t, policy.SetStrictnessCalls())
		assert.Contains(t, sentText(mockAPI), "only the chat creator")
	})

	t.Run("denied for regular member", func(t *testing.T) {
		l, mockAPI, policy := makeListener(tbapi.ChatMember{Status: "member"})
		require.NoError(t, l.cmdStrictness(context.Background(), commandMsg(-1001, "/strictness 55")))
		assert.Empty(t, policy.SetStrictnessCalls())
		assert.Contains(t, sentText(mockAPI), "only the chat creator")
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		for _, arg := range []string{"5", "101", "abc", "-40"} {
			l, mockAPI, policy := makeListener(creator)
			require.NoError(t, l.cmdStrictness(context.Background(), commandMsg(-1001, "/strictness "+arg)))
			assert.Empty(t, policy.SetStrictnessCalls(), "arg %q", arg)
			assert.Contains(t, sentText(mockAPI), "must be a number", "arg %q", arg)
		}
	})

	t.Run("anonymous admin allowed", func(t *testing.T) {
		l, mockAPI, policy := makeListener(creator)
		msg := commandMsg(-1001, "/strictness 60")
		msg.SenderChat = &tbapi.Chat{ID: -1001} // posting on behalf of the chat itself
		require.NoError(t, l.cmdStrictness(context.Background(), msg))
		assert.Len(t, policy.SetStrictnessCalls(), 1)
		assert.Empty(t, mockAPI.GetChatMemberCalls(), "no member to check for anonymous admins")
	})

	t.Run("channel sender denied", func(t *testing.T) {
		l, _, policy := makeListener(creator)
		msg := commandMsg(-1001, "/strictness 60")
		msg.SenderChat = &tbapi.Chat{ID: -777} // some channel, not this chat
		require.NoError(t, l.cmdStrictness(context.Background(), msg))
		assert.Empty(t, policy.SetStrictnessCalls())
	})

	t.Run("private chat gets a hint", func(t *testing.T) {
		l, mockAPI, policy := makeListener(creator)
		require.NoError(t, l.cmdStrictness(context.Background(), commandMsg(42, "/strictness 60")))
		assert.Empty(t, policy.SetStrictnessCalls())
		assert.Contains(t, sentText(mockAPI), "group chat")
	})

	t.Run("command and reply cleaned up", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		l, mockAPI, _ := makeListener(creator)
		require.NoError(t, l.cmdStrictness(ctx, commandMsg(-1001, "/strictness 70")))

		assert.Eventually(t, func() bool { return len(mockAPI.RequestCalls()) == 2 },
			time.Second, 10*time.Millisecond, "both command and reply deleted")
		ids := []int{}
		for _, call := range mockAPI.RequestCalls() {
			del, ok := call.C.(tbapi.DeleteMessageConfig)
			require.True(t, ok)
			ids = append(ids, del.MessageID)
		}
		assert.ElementsMatch(t, []int{11, 999}, ids)
	})
}

func TestTelegramListener_procCommandStart(t *testing.T) {
	t.Run("private start replied", func(t *testing.T) {
		mockAPI := &mocks.TbAPIMock{SendFunc: func(tbapi.Chattable) (tbapi.Message, error) {
			return tbapi.Message{}, nil
		}}
		l := TelegramListener{TbAPI: mockAPI, StartMsg: "add me to a group to fight spam"}
		require.NoError(t, l.procCommand(context.Background(), commandMsg(42, "/start")))
		require.Len(t, mockAPI.SendCalls(), 1)
		assert.Equal(t, "add me to a group to fight spam", mockAPI.SendCalls()[0].C.(tbapi.MessageConfig).Text)
	})

	t.Run("group start ignored", func(t *testing.T) {
		mockAPI := &mocks.TbAPIMock{}
		l := TelegramListener{TbAPI: mockAPI, StartMsg: "hello"}
		require.NoError(t, l.procCommand(context.Background(), commandMsg(-1001, "/start")))
		assert.Empty(t, mockAPI.SendCalls())
	})

	t.Run("unknown command ignored", func(t *testing.T) {
		mockAPI := &mocks.TbAPIMock{}
		l := TelegramListener{TbAPI: mockAPI}
		require.NoError(t, l.procCommand(context.Background(), commandMsg(-1001, "/ban")))
		assert.Empty(t, mockAPI.SendCalls())
	})
}
