package listener

import (
	"context"
	"fmt"
	"time"

	"shopclean/internal/config"
	"shopclean/internal/mapping"
	"shopclean/internal/pipeline"
	"shopclean/internal/storage"
)

// Service re-runs the cleaner on an interval, replacing the spreadsheet's
// old time-based trigger. Cycle errors are logged and the loop keeps going.
type Service struct {
	db     *storage.DB
	cfg    config.Config
	tables mapping.Tables
}

func NewService(db *storage.DB, cfg config.Config, tables mapping.Tables) *Service {
	return &Service{db: db, cfg: cfg, tables: tables}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if err := s.runCycle(); err != nil {
			fmt.Printf("watch cycle error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.WatchIntervalSec) * time.Second):
		}
	}
}

func (s *Service) runCycle() error {
	cleaner := pipeline.NewService(s.db, s.cfg, s.tables)
	stats, err := cleaner.Run()
	if err != nil {
		return err
	}
	fmt.Printf("watch cycle done: processed=%d orders=%d removed=%d\n",
		stats.Processed, stats.Orders,
		stats.Duplicates+stats.TestOrders+stats.ZeroOrders+stats.Excluded)
	return nil
}
