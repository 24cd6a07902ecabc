package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"mp3sync/internal/config"
)

// overrides are CLI flags that take precedence over the config file.
type overrides struct {
	verbose bool
	tempDir string
	flac    string
	lame    string
}

type commandContext struct {
	configFlag *string
	flags      *overrides

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string, flags *overrides) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		flags:      flags,
	}
}

// ensureConfig loads the config file once and layers flag overrides on top.
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
		if err := c.applyOverrides(cfg); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) applyOverrides(cfg *config.Config) error {
	if c.flags == nil {
		return nil
	}
	if v := strings.TrimSpace(c.flags.flac); v != "" {
		cfg.Tools.FlacBinary = v
	}
	if v := strings.TrimSpace(c.flags.lame); v != "" {
		cfg.Tools.LameBinary = v
	}
	if v := strings.TrimSpace(c.flags.tempDir); v != "" {
		expanded, err := config.ExpandPath(v)
		if err != nil {
			return fmt.Errorf("resolve temp dir: %w", err)
		}
		cfg.Paths.TempDir = expanded
	}
	cfg.Run.Verbose = c.flags.verbose
	return cfg.Validate()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
