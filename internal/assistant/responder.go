// Package assistant provides the simulated conversational responder: a
// pure keyword matcher behind an artificial latency. No real inference
// happens here.
package assistant

import (
	"context"
	"strings"
	"time"
)

// DefaultLatency approximates a remote round trip.
const DefaultLatency = time.Second

// Responder generates a reply for a user prompt. Implementations must
// honor context cancellation while simulating latency.
type Responder interface {
	Respond(ctx context.Context, prompt string) (string, error)
}

// Simulated is the keyword-matching Responder.
type Simulated struct {
	latency time.Duration
}

// NewSimulated creates a Simulated responder. A non-positive latency
// disables the artificial delay.
func NewSimulated(latency time.Duration) *Simulated {
	return &Simulated{latency: latency}
}

// Respond waits out the simulated latency (unless ctx is cancelled
// first) and returns the canned reply for the prompt.
func (s *Simulated) Respond(ctx context.Context, prompt string) (string, error) {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return replyFor(prompt), nil
}

// Canned replies keyed by topic.
const (
	replyGreeting = "Hello! How can I help you with your notes today?"
	replyHelp     = "I can help you organize your notes, suggest improvements, or answer questions about your content."
	replyFormat   = "Use the editor toolbar to format text: headings, bold, italics, and lists. Your formatting is saved with the note automatically."
	replyTags     = "Tags group related notes together. Add them from the tag button in the editor, then filter the sidebar by any tag."
	replyColor    = "Pick a color from the palette in the editor to visually group a note. Colored notes stand out in both list and grid view."
	replyFallback = "I understand. How else can I assist you with your notes?"
)

// replyFor selects a reply by case-insensitive keyword match.
func replyFor(prompt string) string {
	lower := strings.ToLower(prompt)
	switch {
	case strings.Contains(lower, "hello") || hasWord(lower, "hi"):
		return replyGreeting
	case strings.Contains(lower, "help"):
		return replyHelp
	case strings.Contains(lower, "format"):
		return replyFormat
	case strings.Contains(lower, "tag"):
		return replyTags
	case strings.Contains(lower, "color"):
		return replyColor
	default:
		return replyFallback
	}
}

// hasWord reports whether s contains w as a whole word. Needed for short
// keywords like "hi" that would otherwise match inside other words.
func hasWord(s, w string) bool {
	for _, field := range strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		if field == w {
			return true
		}
	}
	return false
}
