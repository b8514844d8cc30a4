package search

import (
	"strings"
	"time"
)

// Factors carries the non-textual relevance signals for one candidate.
type Factors struct {
	// Exact is asserted by the caller when the matched field is known to
	// equal the query (e.g. an exact tag hit). Score also detects exact
	// equality itself, case-insensitively.
	Exact bool

	// Title marks the matched field as a title/name field rather than
	// body text.
	Title bool

	// UpdatedAt is the recency timestamp of the candidate (last activity
	// for conversations, creation time for messages).
	UpdatedAt time.Time

	// MessageCount is the engagement signal: messages on the candidate's
	// parent conversation.
	MessageCount int

	// Now anchors the recency tiers; the zero value means time.Now().
	// Tests inject a fixed clock here.
	Now time.Time
}

// Score computes the additive relevance score for one candidate. The model
// is a hand-tuned tier heuristic, deliberately cheap and explainable:
//
//	+10  text contains query (case-insensitive substring)
//	+20  text equals query (case-insensitive), or Factors.Exact
//	+15  matched field is a title/name field
//	+10/+7/+4/+2  recency: age ≤ 1/7/30/90 days
//	+5/+3/+1      engagement: ≥ 100/50/10 messages
//
// Scores are only meaningful relative to each other within one request;
// callers sort descending and break ties most-recent-first.
func Score(text, query string, f Factors) int {
	score := 0

	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(strings.TrimSpace(query))

	if lowerQuery != "" && strings.Contains(lowerText, lowerQuery) {
		score += 10
	}
	if f.Exact || (lowerQuery != "" && lowerText == lowerQuery) {
		score += 20
	}
	if f.Title {
		score += 15
	}

	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}
	if !f.UpdatedAt.IsZero() {
		switch age := now.Sub(f.UpdatedAt); {
		case age <= 24*time.Hour:
			score += 10
		case age <= 7*24*time.Hour:
			score += 7
		case age <= 30*24*time.Hour:
			score += 4
		case age <= 90*24*time.Hour:
			score += 2
		}
	}

	switch {
	case f.MessageCount >= 100:
		score += 5
	case f.MessageCount >= 50:
		score += 3
	case f.MessageCount >= 10:
		score += 1
	}

	return score
}
