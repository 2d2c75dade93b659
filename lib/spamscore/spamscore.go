// Package spamscore provides a heuristic classifier for replies to telegram
// join-notification ("welcome") messages. It scores a reply with a set of
// independent signal checks over the sender's profile and the reply text,
// and aggregates them into a spam probability in [0, 1].
package spamscore

import (
	"fmt"
	"strings"
)

// Request is a single welcome reply to evaluate.
type Request struct {
	Nickname string `json:"nickname"` // sender display name, user full name or channel title
	Bio      string `json:"bio"`      // sender profile bio, empty if not set
	Comment  string `json:"comment"`  // reply text
	Elapsed  int    `json:"elapsed"`  // seconds between the welcome message and the reply
}

func (r *Request) String() string {
	return fmt.Sprintf("comment:%q, nickname:%q, bio:%q, elapsed:%ds", r.Comment, r.Nickname, r.Bio, r.Elapsed)
}

// Response is a result of a single signal check.
type Response struct {
	Name    string  `json:"name"`    // name of the check
	Score   float64 `json:"score"`   // contribution of the check, 0 if clean
	Details string  `json:"details"` // details of the check
}

func (r *Response) String() string {
	return fmt.Sprintf("%s: %.2f, %s", r.Name, r.Score, r.Details)
}

// ChecksToString converts a slice of check responses to a string
func ChecksToString(checks []Response) string {
	elems := []string{}
	for _, r := range checks {
		elems = append(elems, "{"+r.String()+"}")
	}
	return fmt.Sprintf("[%s]", strings.Join(elems, ", "))
}
