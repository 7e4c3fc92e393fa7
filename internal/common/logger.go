package common

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
)

const (
	defaultLogTimeFormat = "15:04:05"
	defaultLogFileName   = "propcast.log"
	logFileMaxSize       = 100 * 1024 * 1024 // 100 MB
	logFileMaxBackups    = 3
)

// logOutputs reports which writers the logging config enables
func logOutputs(config LoggingConfig) (file, console bool) {
	for _, output := range config.Output {
		switch output {
		case "file":
			file = true
		case "stdout", "console":
			console = true
		}
	}
	return file, console
}

// LogFilePath resolves the log file: logging.directory when set, otherwise logs/ next to the executable
func LogFilePath(config LoggingConfig) (string, error) {
	fileName := config.FileName
	if fileName == "" {
		fileName = defaultLogFileName
	}

	dir := config.Directory
	if dir == "" {
		execPath, err := os.Executable()
		if err != nil {
			return "", fmt.Errorf("failed to get executable path: %w", err)
		}
		dir = filepath.Join(filepath.Dir(execPath), "logs")
	}
	return filepath.Join(dir, fileName), nil
}

func writerConfiguration(config LoggingConfig) models.WriterConfiguration {
	timeFormat := config.TimeFormat
	if timeFormat == "" {
		timeFormat = defaultLogTimeFormat
	}
	return models.WriterConfiguration{
		Type:       models.LogWriterTypeConsole,
		TimeFormat: timeFormat,
		TextOutput: config.Format != "json",
	}
}

// InitLogger builds the arbor logger from the logging config.
// With no usable writer the logger falls back to the console.
func InitLogger(config *Config) arbor.ILogger {
	logger := arbor.NewLogger()
	writer := writerConfiguration(config.Logging)
	toFile, toConsole := logOutputs(config.Logging)

	if toFile {
		path, err := LogFilePath(config.Logging)
		if err == nil {
			err = os.MkdirAll(filepath.Dir(path), 0755)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", err)
			toFile = false
		} else {
			fileWriter := writer
			fileWriter.Type = models.LogWriterTypeFile
			fileWriter.FileName = path
			fileWriter.MaxSize = logFileMaxSize
			fileWriter.MaxBackups = logFileMaxBackups
			logger = logger.WithFileWriter(fileWriter)
		}
	}

	if toConsole || !toFile {
		logger = logger.WithConsoleWriter(writer)
	}

	return logger.WithLevelFromString(config.Logging.Level)
}

// GetLogFilePath returns the file the logger writes to, or "" when file output is off
func GetLogFilePath(logger arbor.ILogger) string {
	if logger == nil {
		return ""
	}
	return logger.GetLogFilePath()
}
