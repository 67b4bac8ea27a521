package cron

import (
	"fmt"
	"time"

	"github.com/sahilchouksey/campus-bridge/model"
)

// cronLogRetention is how long completed job logs are kept
const cronLogRetention = 30 * 24 * time.Hour

// CleanupExpiredTokens removes expired entries from the JWT blacklist.
// Expired tokens fail validation on their own; the rows only exist to
// reject still-valid revoked tokens, so anything past expiry is dead
// weight.
func (m *CronManager) CleanupExpiredTokens() {
	jobName := "cleanup_expired_tokens"

	res := m.db.Unscoped().
		Where("expires_at < ?", time.Now()).
		Delete(&model.JWTTokenBlacklist{})
	if res.Error != nil {
		m.logJobError(jobName, res.Error)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Removed %d expired blacklist entries", res.RowsAffected))
}

// CleanupCronLogs trims job logs older than the retention window
func (m *CronManager) CleanupCronLogs() {
	jobName := "cleanup_cron_logs"

	cutoff := time.Now().Add(-cronLogRetention)
	res := m.db.Unscoped().
		Where("started_at < ? AND status <> ?", cutoff, "running").
		Delete(&model.CronJobLog{})
	if res.Error != nil {
		m.logJobError(jobName, res.Error)
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Removed %d old job logs", res.RowsAffected))
}
