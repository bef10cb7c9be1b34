package aggregates

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yungbote/productflow-backend/internal/data/repos"
	domainagg "github.com/yungbote/productflow-backend/internal/domain/aggregates"
)

var (
	// ErrInvalidRequest indicates structurally invalid caller input.
	ErrInvalidRequest = errors.New("aggregate invalid request")
	// ErrNotFound indicates a referenced entity does not exist.
	ErrNotFound = errors.New("aggregate not found")
	// ErrConflict indicates a uniqueness, range or version conflict.
	ErrConflict = errors.New("aggregate conflict")
)

func InvalidRequestError(msg string) error {
	return errors.Join(ErrInvalidRequest, errors.New(strings.TrimSpace(msg)))
}

func NotFoundError(msg string) error {
	return errors.Join(ErrNotFound, errors.New(strings.TrimSpace(msg)))
}

func ConflictError(msg string) error {
	return errors.Join(ErrConflict, errors.New(strings.TrimSpace(msg)))
}

// MapError maps infrastructure/domain failures into aggregate error codes.
// Already-typed aggregate errors pass through unchanged.
func MapError(op string, err error) error {
	if err == nil {
		return nil
	}
	var aggErr *domainagg.Error
	if errors.As(err, &aggErr) {
		return err
	}
	switch {
	case errors.Is(err, ErrInvalidRequest):
		return tagged(domainagg.CodeInvalidRequest, op, err, ErrInvalidRequest)
	case errors.Is(err, ErrNotFound):
		return tagged(domainagg.CodeNotFound, op, err, ErrNotFound)
	case errors.Is(err, ErrConflict):
		return tagged(domainagg.CodeConflict, op, err, ErrConflict)
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainagg.Wrap(domainagg.CodeNotFound, op, err)
	case errors.Is(err, repos.ErrNoRowsAffected):
		return domainagg.NewError(domainagg.CodeInternal, op, "write affected no rows", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return domainagg.Wrap(domainagg.CodeInternal, op, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch strings.TrimSpace(pgErr.Code) {
		case "23505":
			return domainagg.NewError(domainagg.CodeConflict, op, uniqueMessage(pgErr.ConstraintName), err) // unique_violation
		case "40001", "40P01":
			return domainagg.NewError(domainagg.CodeConflict, op, "concurrent update", err) // serialization/deadlock
		}
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "unique constraint failed"), strings.Contains(msg, "duplicate key"):
		return domainagg.NewError(domainagg.CodeConflict, op, uniqueMessage(""), err)
	case strings.Contains(msg, "deadlock"), strings.Contains(msg, "could not serialize"):
		return domainagg.NewError(domainagg.CodeConflict, op, "concurrent update", err)
	default:
		return domainagg.Wrap(domainagg.CodeInternal, op, err)
	}
}

// tagged strips the sentinel text so Message carries only the detail.
func tagged(code domainagg.ErrorCode, op string, err, sentinel error) error {
	msg := strings.TrimSpace(strings.TrimPrefix(err.Error(), sentinel.Error()))
	if msg == "" {
		msg = sentinel.Error()
	}
	return domainagg.NewError(code, op, msg, err)
}

func uniqueMessage(constraint string) string {
	if constraint = strings.TrimSpace(constraint); constraint != "" {
		return "duplicate value violates " + constraint
	}
	return "duplicate value"
}
