// Package bot implements the welcome-reply moderation logic on top of the
// spamscore library: message filtering, policy lookups and the final
// delete-or-keep decision.
package bot

import (
	"fmt"
	"strings"
	"time"
)

// SenderChat is the sender of a message sent on behalf of a chat: the
// channel itself for channel messages, or the linked channel for posts
// automatically forwarded to the discussion group
type SenderChat struct {
	ID       int64  `json:"id"`                 // unique identifier of the chat
	Title    string `json:"title,omitempty"`    // channel title, used as the sender's display name
	UserName string `json:"username,omitempty"` // public username if available
}

// User defines the sender of a Message
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"user_name,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	IsBot       bool   `json:"is_bot,omitempty"`
}

// Message is the primary record passed from the listener to the guard
type Message struct {
	ID         int
	From       User
	SenderChat SenderChat `json:"sender_chat,omitempty"`
	ChatID     int64
	Private    bool `json:",omitempty"`
	Sent       time.Time
	Text       string `json:",omitempty"`
	ReplyTo    struct {
		ID               int
		Text             string `json:",omitempty"`
		Sent             time.Time
		AutomaticForward bool `json:",omitempty"` // true for channel posts forwarded by telegram itself
	} `json:",omitempty"`
}

// DisplayName returns the sender's display name, falling back to the
// username and then the numeric id. Messages sent on behalf of a channel
// use the channel title.
func DisplayName(msg Message) string {
	if msg.SenderChat.ID != 0 {
		if msg.SenderChat.Title != "" {
			return strings.TrimSpace(msg.SenderChat.Title)
		}
		return fmt.Sprintf("%d", msg.SenderChat.ID)
	}
	res := msg.From.DisplayName
	if res == "" {
		res = msg.From.Username
	}
	if res == "" {
		res = fmt.Sprintf("%d", msg.From.ID)
	}
	return strings.TrimSpace(res)
}
