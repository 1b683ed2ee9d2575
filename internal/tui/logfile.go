package tui

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If DDW_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.ddw/logs/ddw.log
func GetLogFilePath() string {
	if customPath := os.Getenv("DDW_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "ddw.log"
	}
	return filepath.Join(homeDir, ".ddw", "logs", "ddw.log")
}
