package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/tg-guard/app/bot/mocks"
	"github.com/umputun/tg-guard/app/storage"
	"github.com/umputun/tg-guard/lib/spamscore"
)

func makeTestGuard(scorer Scorer, policy Policy, bios BioResolver) *WelcomeGuard {
	return NewWelcomeGuard(context.Background(), scorer, policy, bios,
		GuardParams{ReplyWindow: 5 * time.Minute})
}

// welcomeReply makes an eligible group message replying to a fresh welcome forward
func welcomeReply() Message {
	now := time.Now()
	msg := Message{
		ID:     100,
		ChatID: -1001,
		From:   User{ID: 42, DisplayName: "Bob"},
		Text:   "hello everyone",
		Sent:   now,
	}
	msg.ReplyTo.ID = 99
	msg.ReplyTo.Sent = now.Add(-30 * time.Second)
	msg.ReplyTo.AutomaticForward = true
	return msg
}

func TestWelcomeGuard_OnMessageFilters(t *testing.T) {
	scorer := &mocks.ScorerMock{CheckFunc: func(spamscore.Request) (float64, []spamscore.Response) {
		t.Error("scorer must not be called for filtered messages")
		return 0, nil
	}}
	policy := &mocks.PolicyMock{
		EnsureChatFunc: func(context.Context, int64) error { return nil },
		StrictnessFunc: func(context.Context, int64) (int, error) { return 40, nil },
	}
	bios := &mocks.BioResolverMock{BioFunc: func(context.Context, int64) (string, error) { return "", nil }}
	g := makeTestGuard(scorer, policy, bios)

	tbl := []struct {
		name   string
		modify func(m *Message)
		reason string
	}{
		{"private chat", func(m *Message) { m.Private = true }, "private chat"},
		{"bot sender", func(m *Message) { m.From.IsBot = true }, "sender is a bot"},
		{"not a reply", func(m *Message) { m.ReplyTo.Sent = time.Time{} }, "not a reply"},
		{"reply to regular message", func(m *Message) { m.ReplyTo.AutomaticForward = false }, "not a welcome message"},
		{"stale welcome", func(m *Message) { m.ReplyTo.Sent = m.Sent.Add(-10 * time.Minute) }, "too old"},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			msg := welcomeReply()
			tt.modify(&msg)
			d := g.OnMessage(context.Background(), msg)
			assert.False(t, d.Evaluated)
			assert.False(t, d.Delete)
			assert.Contains(t, d.Reason, tt.reason)
		})
	}
}

func TestWelcomeGuard_OnMessageDecision(t *testing.T) {
	tbl := []struct {
		name       string
		score      float64
		strictness int
		delete     bool
	}{
		{"clean message kept", 0, 40, false},
		{"spammy message deleted", 0.95, 40, true},
		{"exactly at threshold deleted", 0.4, 40, true},
		{"just below threshold kept", 0.39, 40, false},
		{"max strictness requires full score", 0.99, 100, false},
		{"full score at max strictness", 1.0, 100, true},
		{"low strictness catches mild spam", 0.1, 10, true},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			scorer := &mocks.ScorerMock{CheckFunc: func(spamscore.Request) (float64, []spamscore.Response) {
				return tt.score, []spamscore.Response{{Name: "links", Score: tt.score}}
			}}
			policy := &mocks.PolicyMock{
				EnsureChatFunc: func(context.Context, int64) error { return nil },
				StrictnessFunc: func(context.Context, int64) (int, error) { return tt.strictness, nil },
			}
			bios := &mocks.BioResolverMock{BioFunc: func(context.Context, int64) (string, error) { return "", nil }}
			g := makeTestGuard(scorer, policy, bios)

			d := g.OnMessage(context.Background(), welcomeReply())
			assert.True(t, d.Evaluated)
			assert.Equal(t, tt.delete, d.Delete, "reason: %s", d.Reason)
			assert.Equal(t, tt.strictness, d.Strictness)
			assert.Len(t, policy.EnsureChatCalls(), 1, "chat record ensured on every message")
		})
	}
}

func TestWelcomeGuard_OnMessageDefaultStrictness(t *testing.T) {
	scorer := &mocks.ScorerMock{CheckFunc: func(spamscore.Request) (float64, []spamscore.Response) {
		return 0.5, nil
	}}
	policy := &mocks.PolicyMock{
		EnsureChatFunc: func(context.Context, int64) error { return nil },
		StrictnessFunc: func(ctx context.Context, chatID int64) (int, error) {
			return 0, fmt.Errorf("chat %d: %w", chatID, storage.ErrUnknownChat)
		},
	}
	bios := &mocks.BioResolverMock{BioFunc: func(context.Context, int64) (string, error) { return "", nil }}
	g := makeTestGuard(scorer, policy, bios)

	d := g.OnMessage(context.Background(), welcomeReply())
	assert.True(t, d.Evaluated)
	assert.Equal(t, storage.DefaultStrictness, d.Strictness, "default substituted for unknown chat")
	assert.True(t, d.Delete, "50% is above the default 40%")
}

func TestWelcomeGuard_OnMessageBio(t *testing.T) {
	t.Run("user bio requested and passed to scorer", func(t *testing.T) {
		var gotReq spamscore.Request
		scorer := &mocks.ScorerMock{CheckFunc: func(req spamscore.Request) (float64, []spamscore.Response) {
			gotReq = req
			return 0, nil
		}}
		policy := &mocks.PolicyMock{
			EnsureChatFunc: func(context.Context, int64) error { return nil },
			StrictnessFunc: func(context.Context, int64) (int, error) { return 40, nil },
		}
		bios := &mocks.BioResolverMock{BioFunc: func(_ context.Context, id int64) (string, error) {
			return fmt.Sprintf("bio of %d", id), nil
		}}
		g := makeTestGuard(scorer, policy, bios)

		g.OnMessage(context.Background(), welcomeReply())
		require.Len(t, bios.BioCalls(), 1)
		assert.Equal(t, int64(42), bios.BioCalls()[0].ID)
		assert.Equal(t, "bio of 42", gotReq.Bio)
		assert.Equal(t, "Bob", gotReq.Nickname)
		assert.Equal(t, 30, gotReq.Elapsed)
	})

	t.Run("channel sender uses channel id and title", func(t *testing.T) {
		var gotReq spamscore.Request
		scorer := &mocks.ScorerMock{CheckFunc: func(req spamscore.Request) (float64, []spamscore.Response) {
			gotReq = req
			return 0, nil
		}}
		policy := &mocks.PolicyMock{
			EnsureChatFunc: func(context.Context, int64) error { return nil },
			StrictnessFunc: func(context.Context, int64) (int, error) { return 40, nil },
		}
		bios := &mocks.BioResolverMock{BioFunc: func(_ context.Context, id int64) (string, error) {
			return "channel bio", nil
		}}
		g := makeTestGuard(scorer, policy, bios)

		msg := welcomeReply()
		msg.SenderChat = SenderChat{ID: -100200, Title: "Promo Channel"}
		g.OnMessage(context.Background(), msg)

		require.Len(t, bios.BioCalls(), 1)
		assert.Equal(t, int64(-100200), bios.BioCalls()[0].ID)
		assert.Equal(t, "Promo Channel", gotReq.Nickname)
		assert.Equal(t, "channel bio", gotReq.Bio)
	})

	t.Run("bio failure doesn't block evaluation", func(t *testing.T) {
		var gotReq spamscore.Request
		scorer := &mocks.ScorerMock{CheckFunc: func(req spamscore.Request) (float64, []spamscore.Response) {
			gotReq = req
			return 0, nil
		}}
		policy := &mocks.PolicyMock{
			EnsureChatFunc: func(context.Context, int64) error { return nil },
			StrictnessFunc: func(context.Context, int64) (int, error) { return 40, nil },
		}
		bios := &mocks.BioResolverMock{BioFunc: func(context.Context, int64) (string, error) {
			return "", fmt.Errorf("telegram api down")
		}}
		g := makeTestGuard(scorer, policy, bios)

		d := g.OnMessage(context.Background(), welcomeReply())
		assert.True(t, d.Evaluated)
		assert.Empty(t, gotReq.Bio)
	})
}

func TestWelcomeGuard_OnMessageWithRealScorer(t *testing.T) {
	scorer := spamscore.NewScorer(spamscore.DefaultRules())
	policy := &mocks.PolicyMock{
		EnsureChatFunc: func(context.Context, int64) error { return nil },
		StrictnessFunc: func(context.Context, int64) (int, error) { return 40, nil },
	}
	bios := &mocks.BioResolverMock{BioFunc: func(context.Context, int64) (string, error) {
		return "АКЦИЯ скидки 🔥🔥 купи сейчас", nil
	}}
	g := makeTestGuard(scorer, policy, bios)

	t.Run("promo reply deleted", func(t *testing.T) {
		msg := welcomeReply()
		msg.From = User{ID: 42, DisplayName: "user12345"}
		msg.Text = "купи сейчас, перейди по ссылке t.me/promo"
		msg.Sent = msg.ReplyTo.Sent.Add(2 * time.Second)
		d := g.OnMessage(context.Background(), msg)
		assert.True(t, d.Delete, "checks: %s", spamscore.ChecksToString(d.Checks))
		assert.Equal(t, 95, d.Percent)
	})

	t.Run("friendly reply kept", func(t *testing.T) {
		clean := &mocks.BioResolverMock{BioFunc: func(context.Context, int64) (string, error) { return "", nil }}
		g := makeTestGuard(scorer, policy, clean)
		msg := welcomeReply()
		msg.From = User{ID: 7, DisplayName: "Alice"}
		msg.Text = "thanks for the invite!"
		d := g.OnMessage(context.Background(), msg)
		assert.False(t, d.Delete, "checks: %s", spamscore.ChecksToString(d.Checks))
		assert.Equal(t, 0, d.Percent)
	})
}

func TestWelcomeGuard_RulesReload(t *testing.T) {
	writeRules := func(t *testing.T, file string, version int) {
		rules := spamscore.DefaultRules()
		rules.Version = version
		data, err := json.Marshal(rules)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(file, data, 0o600))
	}

	t.Run("explicit reload", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "rules.json")
		writeRules(t, file, 2)

		scorer := &mocks.ScorerMock{SetRulesFunc: func(spamscore.Rules) {}}
		g := &WelcomeGuard{GuardParams: GuardParams{RulesFile: file}, scorer: scorer}
		require.NoError(t, g.ReloadRules())
		require.Len(t, scorer.SetRulesCalls(), 1)
		assert.Equal(t, 2, scorer.SetRulesCalls()[0].Rules.Version)
	})

	t.Run("reload failure keeps old rules", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "rules.json")
		require.NoError(t, os.WriteFile(file, []byte("broken json"), 0o600))

		scorer := &mocks.ScorerMock{SetRulesFunc: func(spamscore.Rules) {}}
		g := &WelcomeGuard{GuardParams: GuardParams{RulesFile: file}, scorer: scorer}
		assert.Error(t, g.ReloadRules())
		assert.Empty(t, scorer.SetRulesCalls())
	})

	t.Run("watcher picks up file change", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		file := filepath.Join(t.TempDir(), "rules.json")
		writeRules(t, file, 1)

		scorer := &mocks.ScorerMock{
			CheckFunc:    func(spamscore.Request) (float64, []spamscore.Response) { return 0, nil },
			SetRulesFunc: func(spamscore.Rules) {},
		}
		policy := &mocks.PolicyMock{
			EnsureChatFunc: func(context.Context, int64) error { return nil },
			StrictnessFunc: func(context.Context, int64) (int, error) { return 40, nil },
		}
		bios := &mocks.BioResolverMock{BioFunc: func(context.Context, int64) (string, error) { return "", nil }}
		NewWelcomeGuard(ctx, scorer, policy, bios, GuardParams{ReplyWindow: time.Minute, RulesFile: file})

		time.Sleep(100 * time.Millisecond) // let the watcher start
		writeRules(t, file, 3)

		assert.Eventually(t, func() bool {
			calls := scorer.SetRulesCalls()
			return len(calls) > 0 && calls[len(calls)-1].Rules.Version == 3
		}, 2*time.Second, 50*time.Millisecond)
	})
}
