package path

import (
	"strconv"
	"sync"
	"time"
)

// TokenSource issues placeholder list indices. Tokens combine a millisecond
// clock reading with a strictly-increasing guarantee: adding several items
// within the same millisecond still yields unique, ordered tokens.
type TokenSource struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

// NewTokenSource returns a wall-clock token source.
func NewTokenSource() *TokenSource {
	return &TokenSource{now: time.Now}
}

// NewTokenSourceAt returns a token source driven by the given clock function.
// Tests use this for determinism.
func NewTokenSourceAt(now func() time.Time) *TokenSource {
	return &TokenSource{now: now}
}

// NextPlaceholder returns the next placeholder index, e.g. "new_173029412".
func (ts *TokenSource) NextPlaceholder() string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	tok := ts.now().UnixMilli()
	if tok <= ts.last {
		tok = ts.last + 1
	}
	ts.last = tok
	return PlaceholderPrefix + strconv.FormatInt(tok, 10)
}
