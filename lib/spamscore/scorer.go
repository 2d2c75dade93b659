package spamscore

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"github.com/forPelevin/gomoji"
)

// Scorer evaluates welcome replies against a set of Rules. Safe for
// concurrent use; rules can be swapped at runtime with SetRules.
type Scorer struct {
	rules Rules
	lock  sync.RWMutex
}

var digitRunRe = regexp.MustCompile(`\d{3,}`)

// NewScorer creates a scorer with the given rules
func NewScorer(rules Rules) *Scorer {
	return &Scorer{rules: rules}
}

// SetRules replaces the scoring rules atomically
func (s *Scorer) SetRules(rules Rules) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.rules = rules
}

// Rules returns a copy of the current rules
func (s *Scorer) Rules() Rules {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.rules
}

// Check runs all signal checks on the request and returns the aggregated
// spam probability in [0, 1] with per-check details. The result is fully
// determined by the request and the current rules.
func (s *Scorer) Check(req Request) (score float64, cr []Response) {
	s.lock.RLock()
	rules := s.rules
	s.lock.RUnlock()

	cr = []Response{
		bioKeywords(req, rules),
		bioSymbols(req, rules),
		bioUppercase(req, rules),
		nickname(req, rules),
		commentLinks(req, rules),
		commentKeywords(req, rules),
		typingSpeed(req, rules),
	}

	for _, r := range cr {
		score += r.Score
	}
	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score, cr
}

// bioKeywords scores spam keywords present in the sender's bio, each list
// entry counted once no matter how many times it occurs.
func bioKeywords(req Request, rules Rules) Response {
	found := matchKeywords(req.Bio, rules.Keywords)
	if len(found) == 0 {
		return Response{Name: "bio-words", Details: "no keywords found"}
	}
	score := min(rules.Weights.BioKeywordCap, float64(len(found))*rules.Weights.BioKeyword)
	return Response{Name: "bio-words", Score: score,
		Details: fmt.Sprintf("%d keywords: %s", len(found), strings.Join(found, ", "))}
}

// bioSymbols scores attention-grabbing symbols in the sender's bio
func bioSymbols(req Request, rules Rules) Response {
	count := 0
	for _, sym := range rules.WarnSymbols {
		if strings.Contains(req.Bio, sym) {
			count++
		}
	}
	if count == 0 {
		return Response{Name: "bio-symbols", Details: "no warn symbols found"}
	}
	score := min(rules.Weights.BioSymbolCap, float64(count)*rules.Weights.BioSymbol)
	return Response{Name: "bio-symbols", Score: score,
		Details: fmt.Sprintf("%d warn symbols, %d emojis total", count, len(gomoji.CollectAll(req.Bio)))}
}

// bioUppercase scores a shouting bio, i.e. mostly-uppercase text
func bioUppercase(req Request, rules Rules) Response {
	runes := []rune(req.Bio)
	if len(runes) == 0 {
		return Response{Name: "uppercase", Details: "empty bio"}
	}
	upper := 0
	for _, c := range runes {
		if unicode.IsUpper(c) {
			upper++
		}
	}
	ratio := float64(upper) / float64(len(runes))
	if ratio <= rules.Weights.UppercaseRatio {
		return Response{Name: "uppercase", Details: fmt.Sprintf("ratio %.2f", ratio)}
	}
	return Response{Name: "uppercase", Score: rules.Weights.BioUppercase,
		Details: fmt.Sprintf("ratio %.2f above %.2f", ratio, rules.Weights.UppercaseRatio)}
}

// nickname scores bot-like sender names: a run of 3+ digits or 3+ identical
// consecutive latin letters, like "user12345" or "aaa_promo"
func nickname(req Request, rules Rules) Response {
	if digitRunRe.MatchString(req.Nickname) {
		return Response{Name: "nickname", Score: rules.Weights.Nickname, Details: "digit run in nickname"}
	}
	if hasLetterRun(req.Nickname, 3) {
		return Response{Name: "nickname", Score: rules.Weights.Nickname, Details: "repeated letters in nickname"}
	}
	return Response{Name: "nickname", Details: "nickname looks sane"}
}

// commentLinks scores url-ish markers in the reply text
func commentLinks(req Request, rules Rules) Response {
	comment := strings.ToLower(req.Comment)
	for _, marker := range rules.LinkMarkers {
		if strings.Contains(comment, marker) {
			return Response{Name: "links", Score: rules.Weights.Link,
				Details: fmt.Sprintf("link marker %q found", marker)}
		}
	}
	return Response{Name: "links", Details: "no links found"}
}

// commentKeywords scores spam keywords present in the reply text
func commentKeywords(req Request, rules Rules) Response {
	found := matchKeywords(req.Comment, rules.Keywords)
	if len(found) == 0 {
		return Response{Name: "keywords", Details: "no keywords found"}
	}
	score := min(rules.Weights.CommentKeywordCap, float64(len(found))*rules.Weights.CommentKeyword)
	return Response{Name: "keywords", Score: score,
		Details: fmt.Sprintf("%d keywords: %s", len(found), strings.Join(found, ", "))}
}

// typingSpeed scores replies typed faster than a human plausibly could.
// Contributes nothing if the elapsed time is unknown or not positive.
func typingSpeed(req Request, rules Rules) Response {
	if req.Elapsed <= 0 {
		return Response{Name: "speed", Details: "unknown timing"}
	}
	words := len(strings.Fields(req.Comment))
	wpm := float64(words) / float64(req.Elapsed) * 60
	switch {
	case wpm > rules.Weights.FastWPM:
		return Response{Name: "speed", Score: rules.Weights.FastTyping,
			Details: fmt.Sprintf("%.0f wpm, implausible", wpm)}
	case wpm > rules.Weights.BriskWPM:
		return Response{Name: "speed", Score: rules.Weights.BriskTyping,
			Details: fmt.Sprintf("%.0f wpm, suspicious", wpm)}
	}
	return Response{Name: "speed", Details: fmt.Sprintf("%.0f wpm", wpm)}
}

// matchKeywords returns the list entries present in text, case-insensitive
func matchKeywords(text string, keywords []string) []string {
	lowered := strings.ToLower(text)
	var found []string
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lowered, strings.ToLower(kw)) {
			found = append(found, kw)
		}
	}
	return found
}

// hasLetterRun reports a run of n identical consecutive latin letters
func hasLetterRun(s string, n int) bool {
	var prev rune
	run := 0
	for _, c := range s {
		isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if isLetter && c == prev {
			run++
			if run >= n {
				return true
			}
			continue
		}
		prev, run = c, 1
		if !isLetter {
			prev, run = 0, 0
		}
	}
	return false
}
