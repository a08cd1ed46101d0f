package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
)

const defaultLogHint = "~/.local/share/trigline/trigline.zst"

// dataDir returns the directory for trigline's log and database files,
// creating it on first use.
func dataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(homeDir, ".local", "share", "trigline")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

func logFile() (string, error) {
	if *logPath != "" {
		return *logPath, nil
	}
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "trigline.zst"), nil
}

func initializeLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(*logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid -log-level: %w", err)
	}
	if BUILD_VERSION == "dev" {
		level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	path, err := logFile()
	if err != nil {
		return nil, err
	}

	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = level
	loggerConfig.OutputPaths = []string{
		"zstd://" + filepath.ToSlash(path),
	}
	return loggerConfig.Build()
}

// zstdMagic opens every zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// hasZstdMagic reports whether the file at path begins with a zstd frame.
func hasZstdMagic(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func() {
		_ = f.Close()
	}()

	head := make([]byte, len(zstdMagic))
	if _, err := io.ReadFull(f, head); err != nil {
		return false
	}
	return bytes.Equal(head, zstdMagic)
}

// zstdSink is a zap.Sink compressing every entry into the log file. Each
// run writes its own frame; a reader sees the frames as one stream.
type zstdSink struct {
	*zstd.Encoder
	f *os.File
}

// newZstdSink opens the file named by the URL path. A log that already
// holds zstd frames gets a new frame appended; anything else is replaced.
func newZstdSink(u *url.URL) (zap.Sink, error) {
	flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	if hasZstdMagic(u.Path) {
		flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
	}

	f, err := os.OpenFile(u.Path, flags, 0644)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("zstd log %s: %w", u.Path, err)
	}
	return &zstdSink{Encoder: enc, f: f}, nil
}

// Write reports the uncompressed length, as zap expects.
func (s *zstdSink) Write(p []byte) (int, error) {
	if _, err := s.Encoder.Write(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (s *zstdSink) Sync() error {
	if err := s.Flush(); err != nil {
		return err
	}
	return s.f.Sync()
}

// Close ends the frame and always releases the file.
func (s *zstdSink) Close() error {
	return errors.Join(s.Encoder.Close(), s.f.Close())
}
