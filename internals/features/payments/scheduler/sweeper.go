package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"confhub_backend/internals/features/payments/model"
	svc "confhub_backend/internals/features/payments/service"
)

/* =========================================================
   Reconciliation sweeper

   Webhooks get lost and clients close tabs. Every run picks
   pending attempts that have gone quiet and re-verifies them
   by reference, funneling results through the same
   reconciliation path as the webhook.
========================================================= */

const (
	sweepSchedule = "@every 10m"
	staleAfter    = 30 * time.Minute
	sweepBatch    = 50
)

type Sweeper struct {
	db         *gorm.DB
	gateway    *svc.Flutterwave
	reconciler *svc.Reconciler
	log        *zap.Logger
	cron       *cron.Cron
}

func NewSweeper(db *gorm.DB, gw *svc.Flutterwave, rec *svc.Reconciler, log *zap.Logger) *Sweeper {
	return &Sweeper{
		db:         db,
		gateway:    gw,
		reconciler: rec,
		log:        log,
		cron:       cron.New(),
	}
}

func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(sweepSchedule, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("payment sweeper started", zap.String("schedule", sweepSchedule))
	return nil
}

func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *Sweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cutoff := time.Now().Add(-staleAfter)

	var stale []model.Payment
	if err := s.db.WithContext(ctx).
		Where("payment_status = ? AND payment_created_at < ?", model.StatusPending, cutoff).
		Order("payment_created_at ASC").
		Limit(sweepBatch).
		Find(&stale).Error; err != nil {
		s.log.Error("sweeper: stale payment query failed", zap.Error(err))
		return
	}
	if len(stale) == 0 {
		return
	}

	s.log.Info("sweeper: re-verifying stale payments", zap.Int("count", len(stale)))

	for _, p := range stale {
		v, err := s.gateway.VerifyByReference(ctx, p.PaymentReference)
		if err != nil {
			// gateway hiccup: leave the row for the next run
			s.log.Warn("sweeper: verification failed",
				zap.String("reference", p.PaymentReference),
				zap.Error(err))
			continue
		}
		if _, err := s.reconciler.Reconcile(ctx, p.PaymentReference, v); err != nil {
			s.log.Error("sweeper: reconciliation failed",
				zap.String("reference", p.PaymentReference),
				zap.Error(err))
		}
	}
}
