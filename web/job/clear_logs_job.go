package job

import (
	"os"
	"path/filepath"

	"condo-panel/config"
	"condo-panel/logger"
)

type ClearLogsJob struct{}

func NewClearLogsJob() *ClearLogsJob {
	return new(ClearLogsJob)
}

// Run rotates the panel log: the current file is appended to the .prev file
// and truncated, keeping one generation of history.
func (j *ClearLogsJob) Run() {
	logPath := filepath.Join(config.GetLogFolder(), config.GetName()+".log")
	prevPath := logPath + ".prev"

	if err := os.Truncate(prevPath, 0); err != nil && !os.IsNotExist(err) {
		logger.Warning("clear logs job err:", err)
	}

	prevFile, err := os.OpenFile(prevPath, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0644)
	if err != nil {
		logger.Warning("clear logs job err:", err)
		return
	}
	defer prevFile.Close()

	content, err := os.ReadFile(logPath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warning("clear logs job err:", err)
		}
		return
	}

	if _, err = prevFile.Write(content); err != nil {
		logger.Warning("clear logs job err:", err)
	}

	if err = os.Truncate(logPath, 0); err != nil {
		logger.Warning("clear logs job err:", err)
	}
}
