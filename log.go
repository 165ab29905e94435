package transpo

import (
	"fmt"
	"io"
	"log/slog"
)

// engineLog forwards GLPK terminal output into a structured logger.
type engineLog struct {
	logger *slog.Logger
}

func (l engineLog) Print(v ...interface{}) {
	l.logger.Debug(fmt.Sprint(v...), "source", "glpk")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
