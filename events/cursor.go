package events

import (
	"context"
	"sync"
)

// CursorStore keeps the pay index of the last invoice the bridge delivered so
// a restart resumes where it left off instead of replaying history.
//
//go:generate go tool mockgen -destination=mock.go -package=events . CursorStore
type CursorStore interface {
	// LoadCursor returns false when nothing has been stored yet.
	LoadCursor(ctx context.Context) (uint64, bool, error)
	SaveCursor(ctx context.Context, payIndex uint64) error
}

// MemoryCursor is a CursorStore that lives as long as the process.
type MemoryCursor struct {
	mu       sync.Mutex
	payIndex uint64
	set      bool
}

func (m *MemoryCursor) LoadCursor(context.Context) (uint64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.payIndex, m.set, nil
}

func (m *MemoryCursor) SaveCursor(_ context.Context, payIndex uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payIndex = payIndex
	m.set = true

	return nil
}
