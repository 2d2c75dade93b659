package bot

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/umputun/tg-guard/app/storage"
	"github.com/umputun/tg-guard/lib/spamscore"
)

//go:generate moq --out mocks/scorer.go --pkg mocks --with-resets --skip-ensure . Scorer
//go:generate moq --out mocks/policy.go --pkg mocks --with-resets --skip-ensure . Policy
//go:generate moq --out mocks/bio_resolver.go --pkg mocks --with-resets --skip-ensure . BioResolver

// Scorer evaluates welcome replies and returns the spam probability
type Scorer interface {
	Check(req spamscore.Request) (score float64, cr []spamscore.Response)
	SetRules(rules spamscore.Rules)
}

// Policy provides per-chat moderation policy lookups
type Policy interface {
	EnsureChat(ctx context.Context, chatID int64) error
	Strictness(ctx context.Context, chatID int64) (int, error)
}

// BioResolver provides profile bios for users and channels
type BioResolver interface {
	Bio(ctx context.Context, id int64) (string, error)
}

// WelcomeGuard decides what to do with replies to welcome messages. It
// filters out messages that are not eligible for scoring, runs the scorer
// on the rest and compares the result with the chat's strictness level.
type WelcomeGuard struct {
	GuardParams
	scorer Scorer
	policy Policy
	bios   BioResolver
}

// GuardParams defines guard parameters
type GuardParams struct {
	ReplyWindow time.Duration // max age of the welcome message for its replies to be checked
	RulesFile   string        // path to the scoring rules file, empty disables hot reload
}

// Decision is the outcome of evaluating a single message
type Decision struct {
	Evaluated  bool                 `json:"evaluated"`        // false if the message was filtered out before scoring
	Delete     bool                 `json:"delete"`           // true if the message should be deleted
	Score      float64              `json:"score"`            // aggregated spam probability, [0, 1]
	Percent    int                  `json:"percent"`          // rounded score in percent, compared with strictness
	Strictness int                  `json:"strictness"`       // strictness level applied
	Checks     []spamscore.Response `json:"checks,omitempty"` // per-signal results
	Reason     string               `json:"reason"`           // why the message was filtered or how it was decided
}

// NewWelcomeGuard creates a guard and starts the rules file watcher if a
// rules file is set. The watcher lives until the context is canceled.
func NewWelcomeGuard(ctx context.Context, scorer Scorer, policy Policy, bios BioResolver, params GuardParams) *WelcomeGuard {
	if params.ReplyWindow <= 0 {
		params.ReplyWindow = 5 * time.Minute
	}
	res := &WelcomeGuard{GuardParams: params, scorer: scorer, policy: policy, bios: bios}
	if params.RulesFile != "" {
		go func() {
			if err := res.watchRules(ctx); err != nil {
				log.Printf("[WARN] rules watcher terminated: %v", err)
			}
		}()
	}
	return res
}

// OnMessage evaluates a group message and returns the decision. Never
// returns an error; anything preventing evaluation results in a keep
// decision with the reason recorded.
func (g *WelcomeGuard) OnMessage(ctx context.Context, msg Message) Decision {
	if msg.Private {
		return Decision{Reason: "private chat"}
	}

	// make sure the chat has a policy record, the first message from a chat creates it
	if err := g.policy.EnsureChat(ctx, msg.ChatID); err != nil {
		log.Printf("[WARN] failed to ensure chat %d: %v", msg.ChatID, err)
	}

	if msg.From.IsBot {
		return Decision{Reason: "sender is a bot"}
	}
	if msg.ReplyTo.Sent.IsZero() {
		return Decision{Reason: "not a reply"}
	}
	if !msg.ReplyTo.AutomaticForward {
		return Decision{Reason: "reply target is not a welcome message"}
	}

	elapsed := msg.Sent.Sub(msg.ReplyTo.Sent)
	if elapsed > g.ReplyWindow {
		return Decision{Reason: fmt.Sprintf("welcome message too old, %v > %v", elapsed.Truncate(time.Second), g.ReplyWindow)}
	}
	if elapsed < 0 {
		elapsed = 0 // clock skew between message timestamps
	}

	bioID := msg.From.ID
	if msg.SenderChat.ID != 0 {
		bioID = msg.SenderChat.ID
	}
	bio, err := g.bios.Bio(ctx, bioID)
	if err != nil {
		// bio is just one of the signals, keep going without it
		log.Printf("[WARN] failed to get bio for %d: %v", bioID, err)
		bio = ""
	}

	req := spamscore.Request{
		Nickname: DisplayName(msg),
		Bio:      bio,
		Comment:  msg.Text,
		Elapsed:  int(elapsed.Seconds()),
	}
	score, checks := g.scorer.Check(req)
	percent := int(math.Round(score * 100))

	strictness, err := g.policy.Strictness(ctx, msg.ChatID)
	if err != nil {
		// fall back to the default level instead of skipping moderation
		if !errors.Is(err, storage.ErrUnknownChat) {
			log.Printf("[WARN] failed to get strictness for chat %d: %v", msg.ChatID, err)
		}
		log.Printf("[INFO] no strictness for chat %d, using default %d", msg.ChatID, storage.DefaultStrictness)
		strictness = storage.DefaultStrictness
	}

	res := Decision{
		Evaluated:  true,
		Delete:     percent >= strictness,
		Score:      score,
		Percent:    percent,
		Strictness: strictness,
		Checks:     checks,
	}
	res.Reason = fmt.Sprintf("score %d%% below strictness %d%%", percent, strictness)
	if res.Delete {
		res.Reason = fmt.Sprintf("score %d%% at or above strictness %d%%", percent, strictness)
	}
	return res
}

// ReloadRules loads the rules file and swaps the scorer's rules
func (g *WelcomeGuard) ReloadRules() error {
	rules, err := spamscore.LoadRulesFile(g.RulesFile)
	if err != nil {
		return err
	}
	g.scorer.SetRules(rules)
	log.Printf("[INFO] scoring rules reloaded from %s, version %d", g.RulesFile, rules.Version)
	return nil
}

// watchRules watches the rules file and reloads it on every write.
// A failed reload keeps the previous rules.
func (g *WelcomeGuard) watchRules(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(g.RulesFile); err != nil {
		return fmt.Errorf("failed to add %s to watcher: %w", g.RulesFile, err)
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("[INFO] stopping rules watcher for %s, %v", g.RulesFile, ctx.Err())
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) {
				continue
			}
			if err := g.ReloadRules(); err != nil {
				log.Printf("[WARN] failed to reload rules from %s: %v", g.RulesFile, err)
			}
		case e, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[WARN] rules watcher error: %v", e)
		}
	}
}
