package job

import (
	"tradedesk/logger"
)

// ClearLogsJob truncates the panel log file so it does not grow unbounded.
type ClearLogsJob struct{}

func NewClearLogsJob() *ClearLogsJob {
	return new(ClearLogsJob)
}

func (j *ClearLogsJob) Run() {
	if err := logger.TruncateLogFile(); err != nil {
		logger.Warning("clear logs failed:", err)
	}
}
