package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"gameid/internal/config"
	"gameid/internal/gamedb"
	"gameid/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
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
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// openIndex loads the metadata index from the configured cache. The cache
// is opened read-mostly; commands that import close and reopen as needed.
func (c *commandContext) openIndex(ctx context.Context) (*gamedb.Index, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	cache, err := gamedb.OpenCache(cfg.Paths.DatabasePath)
	if err != nil {
		return nil, err
	}
	defer cache.Close()
	return cache.LoadIndex(ctx)
}

func (c *commandContext) openCache() (*gamedb.Cache, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return gamedb.OpenCache(cfg.Paths.DatabasePath)
}
