package workers

import (
	"context"
	"time"

	"ewaste_backend/internal/logger"
	"ewaste_backend/internal/repositories"
)

const (
	cleanupInterval = 6 * time.Hour
	// Shell accounts (created to hold a pre-registration OTP) are kept
	// for a day past OTP expiry before being purged.
	shellRetentionHours = 24
)

// CleanupWorker purges abandoned shell accounts: PENDING records that
// never obtained a password and whose OTP expired long ago.
type CleanupWorker struct {
	userRepo repositories.UserRepository
}

func NewCleanupWorker(userRepo repositories.UserRepository) *CleanupWorker {
	return &CleanupWorker{userRepo: userRepo}
}

// Start launches the periodic cleanup until the context is cancelled.
func (w *CleanupWorker) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				logger.Info("cleanup worker stopped")
				return
			case <-ticker.C:
				removed, err := w.userRepo.DeleteStaleShells(shellRetentionHours)
				logger.WorkerLog("cleanup", "purge shell accounts", err)
				if err == nil && removed > 0 {
					logger.Info("purged abandoned shell accounts", "count", removed)
				}
			}
		}
	}()
}
