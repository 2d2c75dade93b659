package events

import (
	"context"
	"fmt"
	"time"

	tbapi "github.com/OvyFlash/telegram-bot-api"
	cache "github.com/go-pkgz/expirable-cache/v3"
)

// Profiles resolves profile bios for users and channels via the telegram
// API. Results are cached with a TTL, a bio lookup is an extra API call per
// message and spammers tend to reply in bursts.
type Profiles struct {
	tbAPI TbAPI
	cache cache.Cache[int64, string]
}

// NewProfiles creates a bio resolver with the given cache ttl and size
func NewProfiles(tbAPI TbAPI, ttl time.Duration, maxKeys int) *Profiles {
	return &Profiles{
		tbAPI: tbAPI,
		cache: cache.NewCache[int64, string]().WithMaxKeys(maxKeys).WithTTL(ttl),
	}
}

// Bio returns the profile bio for a user or channel id, empty if not set
func (p *Profiles) Bio(_ context.Context, id int64) (string, error) {
	if bio, ok := p.cache.Get(id); ok {
		return bio, nil
	}

	info, err := p.tbAPI.GetChat(tbapi.ChatInfoConfig{ChatConfig: tbapi.ChatConfig{ChatID: id}})
	if err != nil {
		return "", fmt.Errorf("failed to get chat info for %d: %w", id, err)
	}
	p.cache.Set(id, info.Bio, 0)
	return info.Bio, nil
}
