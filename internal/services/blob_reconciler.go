package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/notequiz-backend/internal/data/repos"
	"github.com/yungbote/notequiz-backend/internal/observability"
	"github.com/yungbote/notequiz-backend/internal/platform/dbctx"
	"github.com/yungbote/notequiz-backend/internal/platform/logger"
	"github.com/yungbote/notequiz-backend/internal/platform/objectstore"
)

type ReconcilerConfig struct {
	Interval  time.Duration
	Grace     time.Duration
	BatchSize int
}

// BlobReconciler deletes blobs whose outbox row outlived the grace period,
// meaning the upload never got its metadata row.
type BlobReconciler struct {
	log      *logger.Logger
	pending  repos.PendingBlobRepo
	store    objectstore.Store
	metrics  *observability.Metrics
	interval time.Duration
	grace    time.Duration
	batch    int
	now      func() time.Time
}

func NewBlobReconciler(
	baseLog *logger.Logger,
	pending repos.PendingBlobRepo,
	store objectstore.Store,
	metrics *observability.Metrics,
	cfg ReconcilerConfig,
) *BlobReconciler {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.Grace <= 0 {
		cfg.Grace = 10 * time.Minute
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	return &BlobReconciler{
		log:      baseLog.With("component", "BlobReconciler"),
		pending:  pending,
		store:    store,
		metrics:  metrics,
		interval: cfg.Interval,
		grace:    cfg.Grace,
		batch:    cfg.BatchSize,
		now:      time.Now,
	}
}

// Start sweeps on every tick until ctx is cancelled. The returned channel is
// closed once the loop has exited, including any sweep in progress.
func (r *BlobReconciler) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				func() {
					defer func() {
						if rec := recover(); rec != nil {
							r.log.Error("Blob reconciler panic", "panic", rec)
						}
					}()
					if _, err := r.Sweep(ctx); err != nil {
						r.log.Warn("Blob sweep failed", "error", err)
					}
				}()
			}
		}
	}()
	return done
}

// Sweep handles one batch and returns how many blobs were cleaned up.
func (r *BlobReconciler) Sweep(ctx context.Context) (int, error) {
	dbc := dbctx.Background(ctx)
	cutoff := r.now().Add(-r.grace)
	rows, err := r.pending.ListCreatedBefore(dbc, cutoff, r.batch)
	if err != nil {
		return 0, fmt.Errorf("list pending blobs: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	cleaned, failed := 0, 0
	for _, row := range rows {
		if err := r.store.Delete(ctx, row.StorageKey); err != nil {
			failed++
			r.log.Warn("Orphan blob delete failed", "storage_key", row.StorageKey, "attempts", row.Attempts+1, "error", err)
			if ferr := r.pending.RecordFailure(dbc, row.ID, err.Error()); ferr != nil {
				r.log.Warn("Failed to record sweep failure", "pending_id", row.ID, "error", ferr)
			}
			continue
		}
		if err := r.pending.DeleteByID(dbc, row.ID); err != nil {
			failed++
			r.log.Warn("Failed to clear pending blob", "pending_id", row.ID, "error", err)
			continue
		}
		cleaned++
	}

	r.metrics.AddReconciled("deleted", cleaned)
	r.metrics.AddReconciled("failed", failed)
	r.log.Info("Blob sweep finished", "candidates", len(rows), "deleted", cleaned, "failed", failed)
	return cleaned, nil
}
