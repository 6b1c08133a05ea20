package playground

import (
	"encoding/json"
	"strconv"
	"time"
)

// UnknownTokens is how an unreported token count is displayed.
const UnknownTokens = "N/A"

// TokenCount is the backend-reported total token count, or unknown when the
// backend omitted usage metadata. The zero value is unknown.
type TokenCount struct {
	n     int
	known bool
}

// Tokens returns a known token count.
func Tokens(n int) TokenCount { return TokenCount{n: n, known: true} }

// Unknown returns the unknown token count.
func Unknown() TokenCount { return TokenCount{} }

// Value returns the count and whether it is known.
func (t TokenCount) Value() (int, bool) { return t.n, t.known }

// Known reports whether the backend reported a count.
func (t TokenCount) Known() bool { return t.known }

func (t TokenCount) String() string {
	if !t.known {
		return UnknownTokens
	}
	return strconv.Itoa(t.n)
}

// MarshalJSON encodes a known count as a number and unknown as null.
func (t TokenCount) MarshalJSON() ([]byte, error) {
	if !t.known {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(t.n)), nil
}

// UnmarshalJSON accepts a number or null.
func (t *TokenCount) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = Unknown()
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = Tokens(n)
	return nil
}

// Response is the outcome of one successful submission.
type Response struct {
	ID       string
	Model    Model
	Text     string
	Duration time.Duration
	Tokens   TokenCount
	// FinishReason is passed through from the backend when present.
	FinishReason string
}

// TokensPerSecond returns total tokens divided by wall-clock seconds. The
// second result is false when the count is unknown or no time elapsed.
func (r *Response) TokensPerSecond() (float64, bool) {
	n, ok := r.Tokens.Value()
	if !ok || r.Duration <= 0 {
		return 0, false
	}
	return float64(n) / r.Duration.Seconds(), true
}
