package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/productflow-backend/internal/data/aggregates"
	domainagg "github.com/yungbote/productflow-backend/internal/domain/aggregates"
	"github.com/yungbote/productflow-backend/internal/jobs/cleanup"
	"github.com/yungbote/productflow-backend/internal/pkg/logger"
	"github.com/yungbote/productflow-backend/internal/platform/filestore"
)

type Aggregates struct {
	Product domainagg.ProductAggregate
}

func wireAggregates(db *gorm.DB, log *logger.Logger, r Repos, files filestore.Store, cleanupScheduler cleanup.Scheduler) (Aggregates, error) {
	log.Info("Wiring aggregates...")
	var runner aggregates.TxRunner
	if db.Dialector.Name() == "postgres" {
		runner = aggregates.NewGormTxRunner(db, aggregates.RepeatableRead())
	} else {
		runner = aggregates.NewGormTxRunner(db)
	}
	product := aggregates.NewProductAggregate(aggregates.ProductAggregateDeps{
		Base: aggregates.BaseDeps{
			DB:       db,
			Log:      log,
			Runner:   runner,
			Hooks:    aggregates.NewLogHooks(log),
			CASGuard: aggregates.NewCASGuard(db),
		},
		Products:              r.Product,
		Inputs:                r.Input,
		Processes:             r.Process,
		ProductInputs:         r.ProductInput,
		ProductProcesses:      r.ProductProcess,
		ProductInputProcesses: r.ProductInputProcess,
		DiscountRanges:        r.ProductDiscountRange,
		Read:                  r.ProductRead,
		Files:                 files,
		Cleanup:               cleanupScheduler,
	})
	if err := product.Contract().Validate(); err != nil {
		return Aggregates{}, err
	}
	return Aggregates{Product: product}, nil
}
