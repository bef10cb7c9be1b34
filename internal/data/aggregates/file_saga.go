package aggregates

import (
	"github.com/yungbote/productflow-backend/internal/jobs/cleanup"
	"github.com/yungbote/productflow-backend/internal/pkg/logger"
	"github.com/yungbote/productflow-backend/internal/platform/filestore"
)

// fileSaga collects the filesystem effects of one aggregate call. Moves run
// inside the transaction so the final path can be persisted with the rest of
// the write; deletions wait for commit; failures are reclaimed after rollback.
// settle drains exactly one side.
type fileSaga struct {
	log     *logger.Logger
	store   filestore.Store
	cleanup cleanup.Scheduler

	afterCommit   []func()
	afterRollback []func()
	settled       bool
}

func newFileSaga(log *logger.Logger, store filestore.Store, scheduler cleanup.Scheduler) *fileSaga {
	return &fileSaga{log: log, store: store, cleanup: scheduler}
}

// move renames a temporary upload into the entity directory. On rollback the
// moved file is handed to deferred cleanup.
func (s *fileSaga) move(tempRel, entityKind, entityID string) (string, error) {
	final, err := s.store.MoveToEntityDirectory(tempRel, entityKind, entityID)
	if err != nil {
		return "", err
	}
	s.cleanupOnRollback(final)
	return final, nil
}

func (s *fileSaga) deleteAfterCommit(rel string) {
	s.afterCommit = append(s.afterCommit, func() { s.store.RemoveIfExists(rel) })
}

func (s *fileSaga) removeOnRollback(rel string) {
	s.afterRollback = append(s.afterRollback, func() { s.store.RemoveIfExists(rel) })
}

func (s *fileSaga) cleanupOnRollback(rel string) {
	s.afterRollback = append(s.afterRollback, func() { s.cleanup.Schedule(rel) })
}

func (s *fileSaga) settle(err error) {
	if s.settled {
		return
	}
	s.settled = true
	actions := s.afterCommit
	if err != nil {
		actions = s.afterRollback
	}
	if len(actions) > 0 {
		s.log.Debug("Settling file saga", "committed", err == nil, "actions", len(actions))
	}
	for _, fn := range actions {
		fn()
	}
	s.afterCommit, s.afterRollback = nil, nil
}
