package aggregates

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yungbote/productflow-backend/internal/data/repos"
	domainagg "github.com/yungbote/productflow-backend/internal/domain/aggregates"
)

func TestMapError_InvalidRequest(t *testing.T) {
	err := MapError("op", InvalidRequestError("invalid_range"))
	if !domainagg.IsCode(err, domainagg.CodeInvalidRequest) {
		t.Fatalf("expected invalid_request code, got %q (%v)", domainagg.CodeOf(err), err)
	}
	if got := domainagg.MessageOf(err); got != "invalid_range" {
		t.Fatalf("expected bare message, got %q", got)
	}
}

func TestMapError_Conflict(t *testing.T) {
	err := MapError("op", ConflictError("overlap"))
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict code, got %q (%v)", domainagg.CodeOf(err), err)
	}
	if got := domainagg.MessageOf(err); got != "overlap" {
		t.Fatalf("expected overlap message, got %q", got)
	}
}

func TestMapError_NotFound(t *testing.T) {
	for _, in := range []error{gorm.ErrRecordNotFound, NotFoundError("input missing")} {
		err := MapError("op", in)
		if !domainagg.IsCode(err, domainagg.CodeNotFound) {
			t.Fatalf("expected not_found code, got %q (%v)", domainagg.CodeOf(err), err)
		}
	}
}

func TestMapError_UniqueViolations(t *testing.T) {
	for _, in := range []error{
		&pgconn.PgError{Code: "23505", ConstraintName: "idx_product_name"},
		errors.New("UNIQUE constraint failed: product.name"),
		&pgconn.PgError{Code: "40001"},
	} {
		if err := MapError("op", in); !domainagg.IsCode(err, domainagg.CodeConflict) {
			t.Fatalf("expected conflict for %v, got %q", in, domainagg.CodeOf(err))
		}
	}
}

func TestMapError_InternalFallbacks(t *testing.T) {
	for _, in := range []error{repos.ErrNoRowsAffected, errors.New("disk full")} {
		if err := MapError("op", in); !domainagg.IsCode(err, domainagg.CodeInternal) {
			t.Fatalf("expected internal for %v, got %q", in, domainagg.CodeOf(err))
		}
	}
}

func TestMapError_PassthroughAggregateError(t *testing.T) {
	in := domainagg.NewError(domainagg.CodeConflict, "op", "stale", errors.New("boom"))
	out := MapError("other", in)
	if out != in {
		t.Fatalf("expected passthrough aggregate error")
	}
}
