package sync

import (
	"context"
	"errors"

	"go-yacht-cms/internal/config"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Scheduler drives periodic full runs. When SYNC_SCHEDULE is unset the
// scheduler is idle and runs only happen on demand.
type Scheduler struct {
	cron    *cron.Cron
	service SyncService
	logger  *zap.Logger
	spec    string
}

func NewScheduler(lc fx.Lifecycle, cfg *config.Config, service SyncService, logger *zap.Logger) *Scheduler {
	s := &Scheduler{
		cron:    cron.New(),
		service: service,
		logger:  logger,
		spec:    cfg.SyncSchedule,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Start()
		},
		OnStop: func(ctx context.Context) error {
			s.Stop()
			return nil
		},
	})

	return s
}

func (s *Scheduler) Start() error {
	if s.spec == "" {
		s.logger.Info("no sync schedule configured, scheduler idle")
		return nil
	}

	_, err := s.cron.AddFunc(s.spec, s.tick)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("sync scheduler started", zap.String("schedule", s.spec))
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Scheduler) tick() {
	token := primitive.NewObjectID().Hex()
	s.logger.Info("scheduled sync run", zap.String("run_token", token))

	err := s.service.RunBlocking(context.Background(), token)
	if errors.Is(err, ErrRunInProgress) {
		s.logger.Warn("skipping scheduled run, previous run still active")
		return
	}
	if err != nil {
		s.logger.Error("scheduled sync run failed", zap.Error(err))
	}
}
