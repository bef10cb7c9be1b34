package products

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/productflow-backend/internal/domain"
	"github.com/yungbote/productflow-backend/internal/pkg/dbctx"
	"github.com/yungbote/productflow-backend/internal/pkg/logger"
)

type InputRepo interface {
	Create(dbc dbctx.Context, row *types.Input) (*types.Input, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Input, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Input, error)
}

type inputRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInputRepo(db *gorm.DB, baseLog *logger.Logger) InputRepo {
	return &inputRepo{db: db, log: baseLog.With("repo", "InputRepo")}
}

func (r *inputRepo) Create(dbc dbctx.Context, row *types.Input) (*types.Input, error) {
	if row == nil {
		return nil, fmt.Errorf("input row required")
	}
	if err := createOne(dbc.DB(r.db), row); err != nil {
		return nil, err
	}
	return row, nil
}

func (r *inputRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Input, error) {
	var out []*types.Input
	if len(ids) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *inputRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Input, error) {
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
