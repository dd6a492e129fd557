// Package job contains the panel's scheduled maintenance tasks.
package job

import (
	"tradedesk/database"
	"tradedesk/logger"
)

// CheckpointJob flushes the SQLite WAL into the main database file.
type CheckpointJob struct{}

func NewCheckpointJob() *CheckpointJob {
	return new(CheckpointJob)
}

func (j *CheckpointJob) Run() {
	if err := database.Checkpoint(); err != nil {
		logger.Warning("wal checkpoint failed:", err)
	}
}
