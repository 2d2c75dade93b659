// Package storage provides database-backed persistence for per-chat
// moderation policies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/umputun/tg-guard/app/storage/engine"
)

// strictness bounds and the value applied to chats never configured explicitly
const (
	DefaultStrictness = 40
	MinStrictness     = 10
	MaxStrictness     = 100
)

// ErrUnknownChat is returned for reads of chats without a policy record.
// Callers decide whether to substitute a default, the store never does.
var ErrUnknownChat = errors.New("unknown chat")

// Chats provides access to per-chat moderation policy records: the
// strictness level and the count of deleted messages.
type Chats struct {
	*engine.SQL
	engine.RWLocker
}

// ChatPolicy represents a single chat policy record
type ChatPolicy struct {
	ChatID     int64 `db:"chat_id"`
	Strictness int   `db:"strictness_level"`
	Deleted    int   `db:"deleted"`
}

// all chats queries
const (
	CmdCreateChatsTable engine.DBCmd = iota + 100
	CmdCreateChatsIndexes
	CmdEnsureChat
)

var chatsQueries = engine.NewQueryMap().
	Add(CmdCreateChatsTable, engine.Query{
		Sqlite: `CREATE TABLE IF NOT EXISTS chats (
			chat_id INTEGER PRIMARY KEY,
			strictness_level INTEGER NOT NULL DEFAULT 40,
			deleted INTEGER NOT NULL DEFAULT 0
		)`,
		Postgres: `CREATE TABLE IF NOT EXISTS chats (
			chat_id BIGINT PRIMARY KEY,
			strictness_level INTEGER NOT NULL DEFAULT 40,
			deleted INTEGER NOT NULL DEFAULT 0
		)`,
	}).
	AddSame(CmdCreateChatsIndexes, `
		CREATE INDEX IF NOT EXISTS idx_chats_strictness ON chats(strictness_level)
	`).
	AddSame(CmdEnsureChat, `INSERT INTO chats (chat_id, strictness_level, deleted) VALUES (?, ?, 0)
		ON CONFLICT (chat_id) DO NOTHING`)

// NewChats creates a chats policy store and initializes the table
func NewChats(ctx context.Context, db *engine.SQL) (*Chats, error) {
	if db == nil {
		return nil, fmt.Errorf("no db provided")
	}

	res := &Chats{SQL: db, RWLocker: db.MakeLock()}
	cfg := engine.TableConfig{
		Name:          "chats",
		CreateTable:   CmdCreateChatsTable,
		CreateIndexes: CmdCreateChatsIndexes,
		QueriesMap:    chatsQueries,
	}
	if err := engine.InitTable(ctx, db, cfg); err != nil {
		return nil, fmt.Errorf("failed to init chats table: %w", err)
	}
	return res, nil
}

// EnsureChat creates a policy record with the default strictness if the chat
// is not known yet. Idempotent, existing records are left untouched.
func (c *Chats) EnsureChat(ctx context.Context, chatID int64) error {
	c.Lock()
	defer c.Unlock()

	query, err := chatsQueries.Pick(c.Type(), CmdEnsureChat)
	if err != nil {
		return fmt.Errorf("failed to get ensure query: %w", err)
	}
	if _, err := c.ExecContext(ctx, c.Adopt(query), chatID, DefaultStrictness); err != nil {
		return fmt.Errorf("failed to ensure chat %d: %w", chatID, err)
	}
	return nil
}

// Strictness returns the strictness level for the chat,
// or ErrUnknownChat if no record exists.
func (c *Chats) Strictness(ctx context.Context, chatID int64) (int, error) {
	c.RLock()
	defer c.RUnlock()

	var level int
	query := c.Adopt("SELECT strictness_level FROM chats WHERE chat_id = ?")
	if err := c.GetContext(ctx, &level, query, chatID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("chat %d: %w", chatID, ErrUnknownChat)
		}
		return 0, fmt.Errorf("failed to get strictness for chat %d: %w", chatID, err)
	}
	return level, nil
}

// SetStrictness updates the strictness level for the chat. The level must be
// in [MinStrictness, MaxStrictness] and the chat record must already exist.
func (c *Chats) SetStrictness(ctx context.Context, chatID int64, level int) error {
	if level < MinStrictness || level > MaxStrictness {
		return fmt.Errorf("strictness %d out of range [%d, %d]", level, MinStrictness, MaxStrictness)
	}

	c.Lock()
	defer c.Unlock()

	query := c.Adopt("UPDATE chats SET strictness_level = ? WHERE chat_id = ?")
	res, err := c.ExecContext(ctx, query, level, chatID)
	if err != nil {
		return fmt.Errorf("failed to set strictness for chat %d: %w", chatID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("chat %d: %w", chatID, ErrUnknownChat)
	}
	return nil
}

// RecordDeletion increments the deleted counter for the chat. The increment
// is a single statement, concurrent calls never lose updates.
func (c *Chats) RecordDeletion(ctx context.Context, chatID int64) error {
	c.Lock()
	defer c.Unlock()

	query := c.Adopt("UPDATE chats SET deleted = deleted + 1 WHERE chat_id = ?")
	res, err := c.ExecContext(ctx, query, chatID)
	if err != nil {
		return fmt.Errorf("failed to record deletion for chat %d: %w", chatID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("chat %d: %w", chatID, ErrUnknownChat)
	}
	return nil
}

// Deleted returns the deleted counter for the chat,
// or ErrUnknownChat if no record exists.
func (c *Chats) Deleted(ctx context.Context, chatID int64) (int, error) {
	c.RLock()
	defer c.RUnlock()

	var count int
	query := c.Adopt("SELECT deleted FROM chats WHERE chat_id = ?")
	if err := c.GetContext(ctx, &count, query, chatID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("chat %d: %w", chatID, ErrUnknownChat)
		}
		return 0, fmt.Errorf("failed to get deleted count for chat %d: %w", chatID, err)
	}
	return count, nil
}

// DeletedTotal returns the sum of deleted counters over all chats,
// zero if no chats are known.
func (c *Chats) DeletedTotal(ctx context.Context) (int, error) {
	c.RLock()
	defer c.RUnlock()

	var total int
	if err := c.GetContext(ctx, &total, "SELECT COALESCE(SUM(deleted), 0) FROM chats"); err != nil {
		return 0, fmt.Errorf("failed to get deleted total: %w", err)
	}
	return total, nil
}

// Policies returns all chat policy records ordered by chat id
func (c *Chats) Policies(ctx context.Context) ([]ChatPolicy, error) {
	c.RLock()
	defer c.RUnlock()

	res := []ChatPolicy{}
	if err := c.SelectContext(ctx, &res, "SELECT chat_id, strictness_level, deleted FROM chats ORDER BY chat_id"); err != nil {
		return nil, fmt.Errorf("failed to get chat policies: %w", err)
	}
	return res, nil
}
