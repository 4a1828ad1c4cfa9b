package sender

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"siliconstats/internal/config"
	"siliconstats/internal/logger"
)

// FileSender appends reports to a rotating file and optionally echoes them
// to the console.
type FileSender struct {
	writer  io.WriteCloser
	console io.Writer
	pretty  bool
	format  string

	mu     sync.Mutex
	closed bool
}

// NewFileSender creates a file sender. Format is "json" (one object per
// line) or "text" (one row per metric).
func NewFileSender(cfg config.FileConfig) (*FileSender, error) {
	format := cfg.Format
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "text" {
		return nil, fmt.Errorf("unsupported file format %q: must be \"json\" or \"text\"", format)
	}
	if cfg.FilePath == "" {
		return nil, fmt.Errorf("file sender requires FilePath")
	}

	if dir := filepath.Dir(cfg.FilePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	s := &FileSender{
		writer: &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			Compress:   true,
		},
		pretty: cfg.Pretty,
		format: format,
	}
	if cfg.Console {
		s.console = os.Stdout
	}

	log := logger.WithComponent("file-sender")
	log.Info().
		Str("file_path", cfg.FilePath).
		Str("format", format).
		Bool("console", cfg.Console).
		Msg("File sender initialized")
	return s, nil
}

// Send writes the report.
func (s *FileSender) Send(_ context.Context, r *Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	if s.format == "text" {
		for _, row := range ReportRows(r) {
			if err := s.writeLine([]byte(row.String()), nil); err != nil {
				return err
			}
		}
		return nil
	}

	line, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	var echo []byte
	if s.pretty {
		if echo, err = json.MarshalIndent(r, "", "  "); err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
	}
	return s.writeLine(line, echo)
}

// writeLine writes line to the file and echo (or line) to the console.
func (s *FileSender) writeLine(line, echo []byte) error {
	if _, err := s.writer.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}
	if s.console != nil {
		if echo == nil {
			echo = line
		}
		fmt.Fprintln(s.console, string(echo))
	}
	return nil
}

// Close closes the file.
func (s *FileSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.writer.Close()
}
