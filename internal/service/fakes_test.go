package service

import (
	"context"
	"sync"
)

type fakeSender struct {
	mu    sync.Mutex
	err   error
	sends []string
}

func (f *fakeSender) Send(_ context.Context, to, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sends = append(f.sends, to+"|"+message)
	return nil
}

func (f *fakeSender) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.sends))
	copy(out, f.sends)
	return out
}
