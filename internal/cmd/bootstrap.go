package cmd

import (
	"fmt"
	"time"

	"pollos-backend/internal/audit"
	"pollos-backend/internal/board"
	"pollos-backend/internal/config"
	"pollos-backend/internal/database"
	"pollos-backend/internal/daykey"
	"pollos-backend/internal/logging"
	"pollos-backend/internal/storage"
	"pollos-backend/internal/totals"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime is everything a command needs, built from the loaded config.
type runtime struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	store  storage.Store
	audit  *audit.Service
	board  *board.Service
}

func (r *runtime) close() {
	if r.db != nil {
		if sqlDB, err := r.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = r.logger.Sync()
}

func bootstrap() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	for _, w := range cfg.Warnings() {
		logger.Warn(w)
	}

	rt := &runtime{cfg: cfg, logger: logger}

	if cfg.StoreDriver == config.DriverMemory {
		rt.store = storage.NewMemoryStore()
	} else {
		db, err := database.Open(cfg, logger)
		if err != nil {
			return nil, err
		}
		rt.db = db
		rt.store = storage.NewGormStore(db)
	}
	rt.audit = audit.NewService(rt.db, logger)

	sched := daykey.DefaultSchedule
	if labels := cfg.ScheduleLabels(); labels != nil {
		if sched, err = daykey.ScheduleFromLabels(labels); err != nil {
			rt.close()
			return nil, err
		}
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Warn("unknown timezone, using local time", zap.String("timezone", cfg.Timezone), zap.Error(err))
		loc = time.Local
	}

	rt.board, err = board.NewService(board.Options{
		Store:           rt.store,
		Resolver:        daykey.NewResolver(sched, loc),
		Prices:          prices(cfg),
		BlacklistMarker: cfg.BlacklistMarker,
		Audit:           rt.audit,
		Logger:          logger,
	})
	if err != nil {
		rt.close()
		return nil, err
	}
	return rt, nil
}

func prices(cfg *config.Config) totals.PriceTable {
	return totals.PriceTable{
		FullChicken: cfg.PriceFullChicken,
		HalfChicken: cfg.PriceHalfChicken,
		FullPotato:  cfg.PriceFullPotato,
		HalfPotato:  cfg.PriceHalfPotato,
	}
}
