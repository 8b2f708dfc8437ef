// Package logging writes JSON log lines through log/slog.
//
// One [Logger] is built at startup from the logging section of the config
// and handed down; each subsystem derives its own with [Logger.WithComponent]
// so lines can be filtered by "component":
//
//	log := logger.WithComponent("layout").WithView("2024-02")
//	log.Debug("measure pass", "realized", 42, "recycled", 7)
//
// produces
//
//	{"time":"...","level":"DEBUG","msg":"measure pass","component":"layout","view":"2024-02","realized":42,"recycled":7}
//
// [NewLoggerWithRotation] hands the file to lumberjack, which rotates it by
// size and keeps a bounded number of backups. Tests use [NopLogger] or
// [NewWriterLogger] over a buffer.
package logging
