// Package events provides the telegram event loop and all high-level update
// handlers. It receives updates, transforms messages to the internal format,
// passes them to the welcome guard and executes the resulting decisions:
// message deletion, policy bookkeeping and deletion reports. It also handles
// the bot commands and chat membership changes.
package events

import (
	"context"
	"fmt"
	"log"

	tbapi "github.com/OvyFlash/telegram-bot-api"

	"github.com/umputun/tg-guard/app/bot"
)

//go:generate moq --out mocks/tb_api.go --pkg mocks --with-resets --skip-ensure . TbAPI
//go:generate moq --out mocks/guard.go --pkg mocks --with-resets --skip-ensure . Guard
//go:generate moq --out mocks/policy.go --pkg mocks --with-resets --skip-ensure . Policy
//go:generate moq --out mocks/deletion_logger.go --pkg mocks --with-resets --skip-ensure . DeletionLogger

// TbAPI is an interface for telegram bot API, only subset of methods used
type TbAPI interface {
	GetUpdatesChan(config tbapi.UpdateConfig) tbapi.UpdatesChannel
	Send(c tbapi.Chattable) (tbapi.Message, error)
	Request(c tbapi.Chattable) (*tbapi.APIResponse, error)
	GetChat(config tbapi.ChatInfoConfig) (tbapi.ChatFullInfo, error)
	GetChatMember(config tbapi.GetChatMemberConfig) (tbapi.ChatMember, error)
}

// Guard evaluates group messages and decides what to do with them
type Guard interface {
	OnMessage(ctx context.Context, msg bot.Message) bot.Decision
}

// Policy provides per-chat moderation policy operations
type Policy interface {
	EnsureChat(ctx context.Context, chatID int64) error
	Strictness(ctx context.Context, chatID int64) (int, error)
	SetStrictness(ctx context.Context, chatID int64, level int) error
	RecordDeletion(ctx context.Context, chatID int64) error
}

// DeletionLogger is an interface for deletion reports
type DeletionLogger interface {
	Save(msg *bot.Message, decision *bot.Decision)
}

// DeletionLoggerFunc is a function that implements DeletionLogger interface
type DeletionLoggerFunc func(msg *bot.Message, decision *bot.Decision)

// Save is a function that implements DeletionLogger interface
func (f DeletionLoggerFunc) Save(msg *bot.Message, decision *bot.Decision) {
	f(msg, decision)
}

// send a message to the telegram as markdown first and if failed - as plain text
func send(tbMsg tbapi.Chattable, tbAPI TbAPI) error {
	withParseMode := func(tbMsg tbapi.Chattable, parseMode string) tbapi.Chattable {
		switch msg := tbMsg.(type) {
		case tbapi.MessageConfig:
			msg.ParseMode = parseMode
			msg.LinkPreviewOptions = tbapi.LinkPreviewOptions{IsDisabled: true}
			return msg
		}
		return tbMsg // don't touch other types
	}

	msg := withParseMode(tbMsg, tbapi.ModeMarkdown) // try markdown first
	if _, err := tbAPI.Send(msg); err != nil {
		log.Printf("[WARN] failed to send message as markdown, %v", err)
		msg = withParseMode(tbMsg, "") // try plain text
		if _, err := tbAPI.Send(msg); err != nil {
			return fmt.Errorf("can't send message to telegram: %w", err)
		}
	}
	return nil
}

// transform converts telegram message to internal message format
func transform(msg *tbapi.Message) *bot.Message {
	message := bot.Message{
		ID:      msg.MessageID,
		ChatID:  msg.Chat.ID,
		Private: msg.Chat.IsPrivate(),
		Sent:    msg.Time(),
		Text:    msg.Text,
	}

	if msg.From != nil {
		message.From = bot.User{
			ID:       msg.From.ID,
			Username: msg.From.UserName,
			IsBot:    msg.From.IsBot,
		}
		displayName := msg.From.FirstName
		if msg.From.LastName != "" {
			displayName += " " + msg.From.LastName
		}
		message.From.DisplayName = displayName
	}

	if msg.SenderChat != nil {
		message.SenderChat = bot.SenderChat{
			ID:       msg.SenderChat.ID,
			Title:    msg.SenderChat.Title,
			UserName: msg.SenderChat.UserName,
		}
	}

	if msg.ReplyToMessage != nil {
		message.ReplyTo.ID = msg.ReplyToMessage.MessageID
		message.ReplyTo.Text = msg.ReplyToMessage.Text
		message.ReplyTo.Sent = msg.ReplyToMessage.Time()
		message.ReplyTo.AutomaticForward = msg.ReplyToMessage.IsAutomaticForward
	}

	// photo-only spam carries the text in the caption
	if msg.Caption != "" && message.Text == "" {
		message.Text = msg.Caption
	}
	return &message
}
