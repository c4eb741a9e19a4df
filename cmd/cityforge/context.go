package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"cityforge/internal/config"
	"cityforge/internal/dataset"
	"cityforge/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	dataOnce sync.Once
	data     *dataset.Dataset
	dataErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureDataset loads the hand-authored tables, preferring files in the
// configured data directory over the embedded defaults.
func (c *commandContext) ensureDataset() (*dataset.Dataset, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	c.dataOnce.Do(func() {
		c.data, c.dataErr = dataset.Load(cfg.Paths.DataDir)
	})
	return c.data, c.dataErr
}

// runLogger builds the logger for a pipeline run, teeing console output into
// a timestamped log file under the log directory. The returned closer releases
// the file handle.
func (c *commandContext) runLogger() (*slog.Logger, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}

	stamp := time.Now().UTC().Format("20060102T150405Z")
	logPath := filepath.Join(cfg.Paths.LogDir, fmt.Sprintf("cityforge-%s.log", stamp))
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warn: unable to open log file %s: %v\n", logPath, err)
		logger, lerr := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Writer: os.Stderr,
		})
		if lerr != nil {
			return nil, nil, lerr
		}
		return logger, func() {}, nil
	}

	logger, lerr := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: io.MultiWriter(os.Stderr, file),
	})
	if lerr != nil {
		file.Close()
		return nil, nil, lerr
	}
	return logger, func() { _ = file.Close() }, nil
}

func lockPath(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.LogDir, "cityforge.lock")
}
