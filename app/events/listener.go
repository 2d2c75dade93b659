package events

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tbapi "github.com/OvyFlash/telegram-bot-api"
	"github.com/hashicorp/go-multierror"

	"github.com/umputun/tg-guard/app/bot"
	"github.com/umputun/tg-guard/app/storage"
	"github.com/umputun/tg-guard/lib/spamscore"
)

// TelegramListener listens to tg updates, forwards group messages to the
// guard and executes delete decisions. Serves every group the bot is in.
// Not thread safe
type TelegramListener struct {
	TbAPI        TbAPI
	Guard        Guard
	Policy       Policy
	DeletionLog  DeletionLogger
	StartMsg     string        // reply to /start in private chats
	JoinedMsg    string        // greeting sent when the bot is added to a chat
	CleanupDelay time.Duration // delay before command replies are removed
	Dry          bool          // evaluate and log but don't delete
}

// Do process all events, blocked call
func (l *TelegramListener) Do(ctx context.Context) error {
	log.Printf("[INFO] start telegram listener")

	if l.Dry {
		log.Printf("[WARN] dry mode, no deletions")
	}
	if l.CleanupDelay == 0 {
		l.CleanupDelay = 10 * time.Second
	}

	u := tbapi.NewUpdate(0)
	u.Timeout = 60

	updates := l.TbAPI.GetUpdatesChan(u)

	for {
		select {

		case <-ctx.Done():
			return ctx.Err()

		case update, ok := <-updates:
			if !ok {
				return fmt.Errorf("telegram update chan closed")
			}

			if update.MyChatMember != nil {
				if err := l.procChatMember(ctx, update.MyChatMember); err != nil {
					log.Printf("[WARN] failed to process chat member update: %v", err)
				}
				continue
			}

			if update.Message == nil {
				continue
			}

			if update.Message.IsCommand() {
				if err := l.procCommand(ctx, update.Message); err != nil {
					log.Printf("[WARN] failed to process command %q: %v", update.Message.Command(), err)
				}
				continue
			}

			if err := l.procEvent(ctx, update.Message); err != nil {
				log.Printf("[WARN] failed to process update: %v", err)
			}
		}
	}
}

// procEvent handles a single group message: transform, evaluate, and delete
// if the guard says so. The deleted counter is bumped only after telegram
// confirmed the deletion.
func (l *TelegramListener) procEvent(ctx context.Context, tbMsg *tbapi.Message) error {
	msg := transform(tbMsg)
	if strings.TrimSpace(msg.Text) == "" && msg.ReplyTo.Sent.IsZero() {
		return nil // nothing to evaluate
	}
	log.Printf("[DEBUG] incoming msg: %+v", strings.ReplaceAll(msg.Text, "\n", " "))

	decision := l.Guard.OnMessage(ctx, *msg)
	if !decision.Evaluated {
		log.Printf("[DEBUG] message %d in chat %d skipped: %s", msg.ID, msg.ChatID, decision.Reason)
		return nil
	}

	log.Printf("[INFO] message %d in chat %d from %q scored %d%%, strictness %d%%, checks: %s",
		msg.ID, msg.ChatID, bot.DisplayName(*msg), decision.Percent, decision.Strictness,
		spamscore.ChecksToString(decision.Checks))

	if !decision.Delete {
		return nil
	}

	if l.Dry {
		log.Printf("[INFO] dry mode: would delete message %d in chat %d from %q", msg.ID, msg.ChatID, bot.DisplayName(*msg))
		if l.DeletionLog != nil {
			l.DeletionLog.Save(msg, &decision)
		}
		return nil
	}

	if _, err := l.TbAPI.Request(tbapi.NewDeleteMessage(msg.ChatID, msg.ID)); err != nil {
		return fmt.Errorf("failed to delete message %d in chat %d: %w", msg.ID, msg.ChatID, err)
	}
	log.Printf("[INFO] deleted message %d in chat %d from %q: %s", msg.ID, msg.ChatID, bot.DisplayName(*msg), decision.Reason)

	errs := new(multierror.Error)
	if l.DeletionLog != nil {
		l.DeletionLog.Save(msg, &decision)
	}
	if err := l.Policy.RecordDeletion(ctx, msg.ChatID); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("failed to record deletion for chat %d: %w", msg.ChatID, err))
	}
	return errs.ErrorOrNil()
}

// procChatMember handles the bot's own membership changes, creating the
// policy record and greeting the chat when the bot is added
func (l *TelegramListener) procChatMember(ctx context.Context, upd *tbapi.ChatMemberUpdated) error {
	joinedStatus := func(status string) bool { return status == "member" || status == "administrator" }
	if !joinedStatus(upd.NewChatMember.Status) || joinedStatus(upd.OldChatMember.Status) {
		return nil // not a join event
	}
	if upd.Chat.IsPrivate() {
		return nil
	}
	log.Printf("[INFO] bot added to chat %d (%s)", upd.Chat.ID, upd.Chat.Title)

	errs := new(multierror.Error)
	if err := l.Policy.EnsureChat(ctx, upd.Chat.ID); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("failed to ensure chat %d: %w", upd.Chat.ID, err))
	}
	if l.JoinedMsg != "" {
		if err := send(tbapi.NewMessage(upd.Chat.ID, l.JoinedMsg), l.TbAPI); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("failed to send greeting to chat %d: %w", upd.Chat.ID, err))
		}
	}
	return errs.ErrorOrNil()
}

// procCommand dispatches bot commands
func (l *TelegramListener) procCommand(ctx context.Context, msg *tbapi.Message) error {
	switch msg.Command() {
	case "start":
		if !msg.Chat.IsPrivate() {
			return nil
		}
		if l.StartMsg == "" {
			return nil
		}
		return send(tbapi.NewMessage(msg.Chat.ID, l.StartMsg), l.TbAPI)
	case "strictness":
		return l.cmdStrictness(ctx, msg)
	}
	return nil // ignore unknown commands
}

// cmdStrictness handles the /strictness command: without arguments shows the
// current level, with an argument updates it after the permission check
func (l *TelegramListener) cmdStrictness(ctx context.Context, msg *tbapi.Message) error {
	if msg.Chat.IsPrivate() {
		return send(tbapi.NewMessage(msg.Chat.ID, "strictness is set per group, use this command in a group chat"), l.TbAPI)
	}

	chatID := msg.Chat.ID
	if err := l.Policy.EnsureChat(ctx, chatID); err != nil {
		log.Printf("[WARN] failed to ensure chat %d: %v", chatID, err)
	}

	args := strings.TrimSpace(msg.CommandArguments())
	if args == "" {
		level, err := l.Policy.Strictness(ctx, chatID)
		if err != nil {
			level = storage.DefaultStrictness
		}
		return l.transientReply(ctx, msg, fmt.Sprintf("current strictness: %d%%\nto change: /strictness <%d-%d>",
			level, storage.MinStrictness, storage.MaxStrictness))
	}

	level, err := strconv.Atoi(args)
	if err != nil || level < storage.MinStrictness || level > storage.MaxStrictness {
		return l.transientReply(ctx, msg, fmt.Sprintf("strictness must be a number in [%d, %d]",
			storage.MinStrictness, storage.MaxStrictness))
	}

	allowed, err := l.canChangePolicy(msg)
	if err != nil {
		log.Printf("[WARN] failed to check permissions in chat %d: %v", chatID, err)
		allowed = false
	}
	if !allowed {
		return l.transientReply(ctx, msg, "only the chat creator or an admin allowed to delete messages can change strictness")
	}

	if err := l.Policy.SetStrictness(ctx, chatID, level); err != nil {
		return fmt.Errorf("failed to set strictness for chat %d: %w", chatID, err)
	}
	userName := ""
	if msg.From != nil {
		userName = msg.From.UserName
	}
	log.Printf("[INFO] strictness for chat %d set to %d by %q", chatID, level, userName)
	return l.transientReply(ctx, msg, fmt.Sprintf("strictness set to %d%%", level))
}

// canChangePolicy checks if the command sender is the chat creator or an
// administrator with the delete-messages permission
func (l *TelegramListener) canChangePolicy(msg *tbapi.Message) (bool, error) {
	if msg.SenderChat != nil {
		// anonymous admins post on behalf of the chat itself,
		// anything else is a channel and can't manage the chat
		return msg.SenderChat.ID == msg.Chat.ID, nil
	}
	if msg.From == nil {
		return false, nil
	}

	member, err := l.TbAPI.GetChatMember(tbapi.GetChatMemberConfig{
		ChatConfigWithUser: tbapi.ChatConfigWithUser{
			ChatConfig: tbapi.ChatConfig{ChatID: msg.Chat.ID},
			UserID:     msg.From.ID,
		},
	})
	if err != nil {
		return false, fmt.Errorf("failed to get chat member %d in chat %d: %w", msg.From.ID, msg.Chat.ID, err)
	}
	return member.IsCreator() || (member.IsAdministrator() && member.CanDeleteMessages), nil
}

// transientReply replies to the command and schedules removal of both the
// command and the reply, keeping the chat free of bot chatter
func (l *TelegramListener) transientReply(ctx context.Context, msg *tbapi.Message, text string) error {
	resp := tbapi.NewMessage(msg.Chat.ID, text)
	resp.ReplyParameters = tbapi.ReplyParameters{MessageID: msg.MessageID, AllowSendingWithoutReply: true}
	sent, err := l.TbAPI.Send(resp)
	if err != nil {
		return fmt.Errorf("failed to reply in chat %d: %w", msg.Chat.ID, err)
	}
	l.scheduleCleanup(ctx, msg.Chat.ID, msg.MessageID, sent.MessageID)
	return nil
}

// scheduleCleanup removes messages after CleanupDelay without blocking the
// event loop. Canceled with the listener's context.
func (l *TelegramListener) scheduleCleanup(ctx context.Context, chatID int64, msgIDs ...int) {
	go func() {
		select {
		case <-ctx.Done():
			return
		case <-time.After(l.CleanupDelay):
		}
		for _, id := range msgIDs {
			if _, err := l.TbAPI.Request(tbapi.NewDeleteMessage(chatID, id)); err != nil {
				log.Printf("[WARN] failed to cleanup message %d in chat %d: %v", id, chatID, err)
			}
		}
	}()
}
