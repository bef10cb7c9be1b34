// Package sweep reclaims files the request path could not: temporary uploads
// that were never submitted and product files no row references.
package sweep

import (
	"context"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/productflow-backend/internal/domain"
	"github.com/yungbote/productflow-backend/internal/domain/products"
	"github.com/yungbote/productflow-backend/internal/pkg/dbctx"
	"github.com/yungbote/productflow-backend/internal/pkg/logger"
	"github.com/yungbote/productflow-backend/internal/platform/filestore"
)

type ProductLookup interface {
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Product, error)
}

type Options struct {
	// Files younger than this are skipped so in-flight writes are not raced.
	OlderThan time.Duration
	DryRun    bool
	Now       func() time.Time
}

type Report struct {
	Scanned int
	Removed []string
}

type Sweeper struct {
	log      *logger.Logger
	files    filestore.Store
	products ProductLookup
}

func New(baseLog *logger.Logger, files filestore.Store, products ProductLookup) *Sweeper {
	return &Sweeper{
		log:      baseLog.With("component", "OrphanSweeper"),
		files:    files,
		products: products,
	}
}

func (s *Sweeper) Run(ctx context.Context, opts Options) (Report, error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	cutoff := now().Add(-opts.OlderThan)
	var rep Report

	temps, err := s.files.ListFiles(s.files.TempDir())
	if err != nil {
		return rep, err
	}
	for _, f := range temps {
		rep.Scanned++
		if f.ModTime.After(cutoff) {
			continue
		}
		s.remove(&rep, path.Dir(f.Path), opts.DryRun, "stale temporary upload")
	}

	owned, err := s.files.ListFiles(products.EntityKind)
	if err != nil {
		return rep, err
	}
	dbc := dbctx.Context{Ctx: ctx}
	for _, f := range owned {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		rep.Scanned++
		if f.ModTime.After(cutoff) {
			continue
		}
		id, ok := ownerID(f.Path)
		if !ok {
			continue
		}
		p, err := s.products.GetByID(dbc, id)
		if err != nil {
			return rep, err
		}
		switch {
		case p == nil:
			s.remove(&rep, f.Path, opts.DryRun, "product missing")
		case p.Photo == nil || *p.Photo != f.Path:
			s.remove(&rep, f.Path, opts.DryRun, "unreferenced")
		}
	}
	return rep, nil
}

func (s *Sweeper) remove(rep *Report, rel string, dryRun bool, reason string) {
	rep.Removed = append(rep.Removed, rel)
	if dryRun {
		s.log.Info("Would remove orphan", "path", rel, "reason", reason)
		return
	}
	s.log.Info("Removing orphan", "path", rel, "reason", reason)
	s.files.RemoveTreeIfExists(rel)
}

// ownerID parses <kind>/<uuid>/<file>.
func ownerID(rel string) (uuid.UUID, bool) {
	parts := strings.Split(rel, "/")
	if len(parts) < 3 {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
