package logging

import (
	"io"

	"gopkg.in/natefinch/lumberjack.v2"
)

// RotationConfig bounds the log file. Zero MaxSizeMB means lumberjack's
// 100MB default and zero MaxBackups keeps every backup.
type RotationConfig struct {
	MaxSizeMB  int
	MaxBackups int
	Compress   bool // gzip rotated files
}

// DefaultRotationConfig matches the logging defaults in the config file.
func DefaultRotationConfig() RotationConfig {
	return RotationConfig{MaxSizeMB: 10, MaxBackups: 3}
}

func newRotatingWriter(path string, config RotationConfig) io.WriteCloser {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    config.MaxSizeMB,
		MaxBackups: config.MaxBackups,
		Compress:   config.Compress,
	}
}
