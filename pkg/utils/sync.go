package utils

import (
	"context"
)

// Sync is the waiting side of a sync point.
type Sync interface {
	// Wait waits until the sync point is reached. It returns false
	// if the context is done before.
	Wait(ctx context.Context) bool
}

// SyncTrigger is the triggering side of a sync point. Done must be
// called once.
type SyncTrigger interface {
	Done()
}

type syncPoint chan struct{}

func NewSyncPoint() (Sync, SyncTrigger) {
	s := make(syncPoint)
	return s, s
}

func (s syncPoint) Wait(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-s:
		return true
	}
}

func (s syncPoint) Done() {
	close(s)
}
