package extract

import (
	"context"
	"sync"

	"github.com/anatolykoptev/go_video/internal/engine"
	"golang.org/x/sync/semaphore"
)

// The dominant resource is the number of simultaneously open subprocess and
// SSH sessions, not CPU. A weighted semaphore caps them so one burst of slow
// extractions cannot starve unrelated callers of process slots.
var (
	poolOnce sync.Once
	pool     *semaphore.Weighted
)

// acquireSession blocks until a session slot is free or ctx is done, so a
// full pool can never extend a call past its own deadline. The returned
// release must be called exactly once.
func acquireSession(ctx context.Context) (release func(), err error) {
	poolOnce.Do(func() {
		n := engine.Current().MaxSessions
		if n <= 0 {
			n = 8
		}
		pool = semaphore.NewWeighted(n)
	})

	if err := pool.Acquire(ctx, 1); err != nil {
		return nil, engine.Errorf(engine.KindExtraction, "waiting for extractor slot: %v", err)
	}
	return func() { pool.Release(1) }, nil
}
