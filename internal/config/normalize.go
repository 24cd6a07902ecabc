package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeTools()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeTools() {
	c.Tools.FlacBinary = strings.TrimSpace(c.Tools.FlacBinary)
	if value, ok := os.LookupEnv("MP3SYNC_FLAC"); ok && strings.TrimSpace(value) != "" {
		c.Tools.FlacBinary = strings.TrimSpace(value)
	}
	if c.Tools.FlacBinary == "" {
		c.Tools.FlacBinary = defaultFlacBinary
	}
	c.Tools.LameBinary = strings.TrimSpace(c.Tools.LameBinary)
	if value, ok := os.LookupEnv("MP3SYNC_LAME"); ok && strings.TrimSpace(value) != "" {
		c.Tools.LameBinary = strings.TrimSpace(value)
	}
	if c.Tools.LameBinary == "" {
		c.Tools.LameBinary = defaultLameBinary
	}
}

func (c *Config) normalizePaths() error {
	c.Paths.TempDir = strings.TrimSpace(c.Paths.TempDir)
	if value, ok := os.LookupEnv("MP3SYNC_TEMP_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.TempDir = strings.TrimSpace(value)
	}
	var err error
	if c.Paths.TempDir, err = expandPath(c.Paths.TempDir); err != nil {
		return fmt.Errorf("paths.temp_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	var err error
	if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}
