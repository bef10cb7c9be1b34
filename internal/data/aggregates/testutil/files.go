package testutil

import (
	"errors"
	"sync"

	"github.com/yungbote/productflow-backend/internal/jobs/cleanup"
	"github.com/yungbote/productflow-backend/internal/platform/filestore"
)

// ErrInjectedMove is returned by FailingMoveStore.
var ErrInjectedMove = errors.New("injected move failure")

// FailingMoveStore is a filestore whose moves always fail.
type FailingMoveStore struct {
	filestore.Store
}

func (FailingMoveStore) MoveToEntityDirectory(string, string, string) (string, error) {
	return "", ErrInjectedMove
}

// RecordingScheduler records deferred cleanup requests and, when Remover is
// set, performs them synchronously.
type RecordingScheduler struct {
	Remover cleanup.Remover

	mu    sync.Mutex
	Paths []string
}

var _ cleanup.Scheduler = (*RecordingScheduler)(nil)

func (s *RecordingScheduler) Schedule(path string) {
	s.mu.Lock()
	s.Paths = append(s.Paths, path)
	s.mu.Unlock()
	if s.Remover != nil {
		s.Remover.RemoveTreeIfExists(path)
	}
}

func (s *RecordingScheduler) Scheduled() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.Paths...)
}
