package products

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/productflow-backend/internal/domain"
	"github.com/yungbote/productflow-backend/internal/pkg/dbctx"
	"github.com/yungbote/productflow-backend/internal/pkg/logger"
)

type ProcessRepo interface {
	Create(dbc dbctx.Context, row *types.Process) (*types.Process, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Process, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Process, error)
	Update(dbc dbctx.Context, id uuid.UUID, p types.ProcessPatch) (*types.Process, bool, error)
}

type processRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProcessRepo(db *gorm.DB, baseLog *logger.Logger) ProcessRepo {
	return &processRepo{db: db, log: baseLog.With("repo", "ProcessRepo")}
}

func (r *processRepo) Create(dbc dbctx.Context, row *types.Process) (*types.Process, error) {
	if row == nil {
		return nil, fmt.Errorf("process row required")
	}
	if err := createOne(dbc.DB(r.db), row); err != nil {
		return nil, err
	}
	return row, nil
}

func (r *processRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Process, error) {
	var out []*types.Process
	if len(ids) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *processRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Process, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *processRepo) Update(dbc dbctx.Context, id uuid.UUID, p types.ProcessPatch) (*types.Process, bool, error) {
	existing, err := r.GetByID(dbc, id)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, gorm.ErrRecordNotFound
	}
	base := existing.Snapshot()
	wrote, err := updateChanged(dbc.DB(r.db), &types.Process{}, map[string]any{"id": id}, base, p.Merge(base))
	if err != nil || !wrote {
		return existing, false, err
	}
	updated, err := r.GetByID(dbc, id)
	if err != nil {
		return nil, false, err
	}
	return updated, true, nil
}
