// Package logging provides the levelled program logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"ytbatch/internal/domain/consts"

	"github.com/rs/zerolog"
)

// LoggingConfig holds the settings for SetupLogging.
type LoggingConfig struct {
	LogFilePath string
	Console     io.Writer
	NoColor     bool
	Level       int
	Program     string
}

// ProgramLogger writes a console stream and an optional JSON log file.
type ProgramLogger struct {
	mu    sync.Mutex
	zl    zerolog.Logger
	level int
	file  *os.File
}

// SetupLogging creates and/or opens the log file and returns a ready logger.
func SetupLogging(cfg LoggingConfig) (*ProgramLogger, error) {
	var writers []io.Writer

	if cfg.Console != nil {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        cfg.Console,
			NoColor:    cfg.NoColor,
			TimeFormat: time.TimeOnly,
		})
	}

	p := &ProgramLogger{level: cfg.Level}

	if cfg.LogFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFilePath), consts.PermsGenericDir); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, consts.PermsLogFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file %q: %w", cfg.LogFilePath, err)
		}
		p.file = f
		writers = append(writers, f)
	}

	if len(writers) == 0 {
		writers = append(writers, io.Discard)
	}

	ctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(zerolog.DebugLevel).
		With().
		Timestamp()
	if cfg.Program != "" {
		ctx = ctx.Str("program", cfg.Program)
	}
	p.zl = ctx.Logger()

	return p, nil
}

// Discard returns a logger which writes nothing.
func Discard() *ProgramLogger {
	return &ProgramLogger{zl: zerolog.Nop()}
}

// SetLevel sets the debug level gating D.
func (p *ProgramLogger) SetLevel(l int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.level = l
}

// Level returns the current debug level.
func (p *ProgramLogger) Level() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// Close closes the log file, if any.
func (p *ProgramLogger) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.file == nil {
		return nil
	}
	err := p.file.Close()
	p.file = nil
	return err
}

// E logs an error along with the calling location.
func (p *ProgramLogger) E(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.zl.Error().Caller(1).Msgf(format, args...)
}

// W logs a warning.
func (p *ProgramLogger) W(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.zl.Warn().Msgf(format, args...)
}

// I logs an information message.
func (p *ProgramLogger) I(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.zl.Info().Msgf(format, args...)
}

// S logs a success message.
func (p *ProgramLogger) S(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.zl.Info().Bool("success", true).Msgf(format, args...)
}

// D logs a debug message if l is within the configured debug level.
func (p *ProgramLogger) D(l int, format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if l > p.level {
		return
	}
	p.zl.Debug().Caller(1).Int("debug_level", l).Msgf(format, args...)
}

// P logs a plain message with no level decoration.
func (p *ProgramLogger) P(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.zl.Log().Msgf(format, args...)
}
