package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/FlareMindsTech/righttouch-backend/config"
	offerRepo "github.com/FlareMindsTech/righttouch-backend/database/repository/offer"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeBroadcastExpire = "broadcast:expire"

// ExpiryWorker runs the optional offer-expiry sweep. Offers older than the
// configured TTL move from "sent" to "expired"; their bookings stay
// broadcasted and can still be re-dispatched manually. Disabled unless
// BROADCAST_EXPIRY_ENABLED is set.
type ExpiryWorker struct {
	Offers    offerRepo.OfferRepository
	Logger    *zap.Logger
	server    *asynq.Server
	scheduler *asynq.Scheduler
}

func NewExpiryWorker(offers offerRepo.OfferRepository, logger *zap.Logger) *ExpiryWorker {
	return &ExpiryWorker{Offers: offers, Logger: logger}
}

// Start launches the asynq server and the periodic sweep schedule.
func (w *ExpiryWorker) Start() error {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	w.server = asynq.NewServer(redisOpts, asynq.Config{
		Concurrency: 1,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBroadcastExpire, w.handleExpire)

	w.scheduler = asynq.NewScheduler(redisOpts, nil)
	every := config.AppConfig.BroadcastSweepEveryMin
	if every <= 0 {
		every = 5
	}
	spec := fmt.Sprintf("@every %dm", every)
	if _, err := w.scheduler.Register(spec, asynq.NewTask(TypeBroadcastExpire, nil)); err != nil {
		return fmt.Errorf("failed to register expiry schedule: %w", err)
	}

	go func() {
		if err := w.server.Run(mux); err != nil {
			w.Logger.Error("expiry worker stopped", zap.Error(err))
		}
	}()
	go func() {
		if err := w.scheduler.Run(); err != nil {
			w.Logger.Error("expiry scheduler stopped", zap.Error(err))
		}
	}()

	w.Logger.Info("offer expiry sweep enabled",
		zap.Int("ttlMinutes", config.AppConfig.BroadcastOfferTTLMin),
		zap.Int("sweepEveryMinutes", every))
	return nil
}

// Shutdown stops the worker and scheduler.
func (w *ExpiryWorker) Shutdown() {
	if w.scheduler != nil {
		w.scheduler.Shutdown()
	}
	if w.server != nil {
		w.server.Shutdown()
	}
}

func (w *ExpiryWorker) handleExpire(ctx context.Context, _ *asynq.Task) error {
	ttl := time.Duration(config.AppConfig.BroadcastOfferTTLMin) * time.Minute
	if ttl <= 0 {
		return nil
	}
	cutoff := time.Now().UTC().Add(-ttl)

	bookingIDs, err := w.Offers.ExpireOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}
	if len(bookingIDs) > 0 {
		w.Logger.Info("expired stale offers",
			zap.Int("bookings", len(bookingIDs)),
			zap.Time("cutoff", cutoff))
	}
	return nil
}
