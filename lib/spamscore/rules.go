package spamscore

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Rules is the scoring configuration: pattern lists and per-signal weights.
// The zero value is not usable, start from DefaultRules or load from a file.
type Rules struct {
	Version     int      `json:"version"`      // bumped on every published change of the lists
	Keywords    []string `json:"keywords"`     // case-insensitive substrings matched in bio and comment
	WarnSymbols []string `json:"warn_symbols"` // attention-grabbing symbols matched in bio
	LinkMarkers []string `json:"link_markers"` // url-ish markers matched in comment
	Weights     Weights  `json:"weights"`
}

// Weights holds per-signal contributions and caps. All contributions are
// fractions of the final [0, 1] score.
type Weights struct {
	BioKeyword        float64 `json:"bio_keyword"`         // per keyword found in bio
	BioKeywordCap     float64 `json:"bio_keyword_cap"`     // max total for bio keywords
	BioSymbol         float64 `json:"bio_symbol"`          // per warn symbol found in bio
	BioSymbolCap      float64 `json:"bio_symbol_cap"`      // max total for bio symbols
	BioUppercase      float64 `json:"bio_uppercase"`       // flat, when uppercase ratio exceeded
	UppercaseRatio    float64 `json:"uppercase_ratio"`     // uppercase letters to all chars threshold
	Nickname          float64 `json:"nickname"`            // flat, for bot-like nicknames
	Link              float64 `json:"link"`                // flat, when comment contains a link marker
	CommentKeyword    float64 `json:"comment_keyword"`     // per keyword found in comment
	CommentKeywordCap float64 `json:"comment_keyword_cap"` // max total for comment keywords
	FastTyping        float64 `json:"fast_typing"`         // flat, above FastWPM
	BriskTyping       float64 `json:"brisk_typing"`        // flat, above BriskWPM
	FastWPM           float64 `json:"fast_wpm"`            // words per minute, implausible for a human
	BriskWPM          float64 `json:"brisk_wpm"`           // words per minute, suspiciously fast
}

// DefaultRules returns the built-in scoring configuration. It targets
// russian-language promo spam, the dominant kind in the chats this was made for.
func DefaultRules() Rules {
	return Rules{
		Version: 1,
		Keywords: []string{
			"скидк", "акци", "подборк", "тур", "предложен", "переход", "купи", "заказ",
			"выгод", "лучш", "горящ", "промо", "распродаж", "цена", "рекомендуем",
			"канал", "фулл", "работа", "подработка", "зарпл", "оформ", "арбитраж",
			"подарок", "отзывы", "оплата", "прогнозы", "ставки", "18+", "блог",
		},
		WarnSymbols: []string{"↑", "👆", "🔥", "💥", "🤑", "👇", "❗", "⚠"},
		LinkMarkers: []string{"http", "www", ".ru", ".com", "t.me"},
		Weights: Weights{
			BioKeyword:        0.1,
			BioKeywordCap:     0.3,
			BioSymbol:         0.05,
			BioSymbolCap:      0.2,
			BioUppercase:      0.15,
			UppercaseRatio:    0.7,
			Nickname:          0.1,
			Link:              0.25,
			CommentKeyword:    0.05,
			CommentKeywordCap: 0.25,
			FastTyping:        0.2,
			BriskTyping:       0.1,
			FastWPM:           120,
			BriskWPM:          80,
		},
	}
}

// LoadRules reads and validates rules from json
func LoadRules(r io.Reader) (Rules, error) {
	var res Rules
	if err := json.NewDecoder(r).Decode(&res); err != nil {
		return Rules{}, fmt.Errorf("failed to decode rules: %w", err)
	}
	if err := res.Validate(); err != nil {
		return Rules{}, err
	}
	return res, nil
}

// LoadRulesFile reads and validates rules from a json file
func LoadRulesFile(file string) (Rules, error) {
	fh, err := os.Open(file) //nolint:gosec // file name is operator-provided config
	if err != nil {
		return Rules{}, fmt.Errorf("failed to open rules file: %w", err)
	}
	defer fh.Close()
	res, err := LoadRules(fh)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to load rules from %s: %w", file, err)
	}
	return res, nil
}

// Validate checks the rules for obvious mistakes making scoring meaningless
func (r *Rules) Validate() error {
	if r.Version <= 0 {
		return fmt.Errorf("rules version must be positive, got %d", r.Version)
	}
	if len(r.Keywords) == 0 {
		return fmt.Errorf("rules have no keywords")
	}
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"bio_keyword", r.Weights.BioKeyword},
		{"bio_keyword_cap", r.Weights.BioKeywordCap},
		{"bio_symbol", r.Weights.BioSymbol},
		{"bio_symbol_cap", r.Weights.BioSymbolCap},
		{"bio_uppercase", r.Weights.BioUppercase},
		{"nickname", r.Weights.Nickname},
		{"link", r.Weights.Link},
		{"comment_keyword", r.Weights.CommentKeyword},
		{"comment_keyword_cap", r.Weights.CommentKeywordCap},
		{"fast_typing", r.Weights.FastTyping},
		{"brisk_typing", r.Weights.BriskTyping},
	} {
		if v.val < 0 || v.val > 1 {
			return fmt.Errorf("weight %s out of [0, 1]: %v", v.name, v.val)
		}
	}
	if r.Weights.UppercaseRatio <= 0 || r.Weights.UppercaseRatio > 1 {
		return fmt.Errorf("uppercase_ratio out of (0, 1]: %v", r.Weights.UppercaseRatio)
	}
	if r.Weights.FastWPM <= 0 || r.Weights.BriskWPM <= 0 || r.Weights.FastWPM <= r.Weights.BriskWPM {
		return fmt.Errorf("typing speed thresholds invalid: fast %v, brisk %v", r.Weights.FastWPM, r.Weights.BriskWPM)
	}
	return nil
}
