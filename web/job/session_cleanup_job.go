// Package job holds the background jobs scheduled on the web server's cron.
package job

import (
	"context"
	"time"

	"github.com/taskmanager/taskmanager/logger"
	"github.com/taskmanager/taskmanager/util/common"
	"github.com/taskmanager/taskmanager/web/global"
	"github.com/taskmanager/taskmanager/web/service"

	"go.uber.org/atomic"
)

const cleanupTimeout = time.Minute

// SessionCleanupJob deletes expired sessions and verification records.
type SessionCleanupJob struct {
	auth    *service.AuthService
	running atomic.Bool
}

func NewSessionCleanupJob(auth *service.AuthService) *SessionCleanupJob {
	return &SessionCleanupJob{auth: auth}
}

// Run is skipped while a previous run is still in progress.
func (j *SessionCleanupJob) Run() {
	if !j.running.CompareAndSwap(false, true) {
		logger.Debug("session cleanup still running, skipped")
		return
	}
	defer j.running.Store(false)
	defer common.Recover("session cleanup job")

	ctx, cancel := context.WithTimeout(serverContext(), cleanupTimeout)
	defer cancel()

	sessions, verifications, err := j.auth.CleanupExpired(ctx)
	if err != nil {
		logger.Warning("session cleanup failed: ", err)
		return
	}
	if sessions > 0 || verifications > 0 {
		logger.Infof("removed %d expired sessions and %d verifications", sessions, verifications)
	}
}

// serverContext is cancelled when the web server stops.
func serverContext() context.Context {
	if s := global.GetWebServer(); s != nil {
		return s.GetCtx()
	}
	return context.Background()
}
