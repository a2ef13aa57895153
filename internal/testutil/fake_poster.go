package testutil

import (
	"context"
	"sync"

	ierr "github.com/subwatch/subwatch/internal/errors"
)

// PostedMessage records one payload posted through the fake poster.
type PostedMessage struct {
	URL     string
	Payload interface{}
}

// FakePoster implements webhook.Poster, recording every post so tests can
// assert on chat dispatch. Posts can be failed on demand.
type FakePoster struct {
	mu       sync.Mutex
	failNext bool
	posts    []PostedMessage
}

func NewFakePoster() *FakePoster {
	return &FakePoster{}
}

func (p *FakePoster) PostJSON(ctx context.Context, url string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failNext {
		p.failNext = false
		return ierr.NewError("injected webhook failure").Mark(ierr.ErrHTTPClient)
	}
	p.posts = append(p.posts, PostedMessage{URL: url, Payload: payload})
	return nil
}

// FailNext makes the next post return an error.
func (p *FakePoster) FailNext() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failNext = true
}

// Posts returns a copy of all recorded posts.
func (p *FakePoster) Posts() []PostedMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]PostedMessage, len(p.posts))
	copy(out, p.posts)
	return out
}
