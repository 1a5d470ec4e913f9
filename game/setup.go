package game

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

// NewUniverse creates a universe sized and seeded from the config
func NewUniverse(config utils.Config, logger *slog.Logger) (*model.Universe, error) {
	opts := []model.Option{model.WithLogger(logger)}
	if config.UseMemoryPool {
		opts = append(opts, model.WithBufferPool(model.NewBufferPool()))
	}

	u, err := model.New(config.Width, config.Height, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "[NewUniverse] failed to create universe")
	}
	Seed(u, config)
	return u, nil
}

// Seed resets the universe using the configured seed strategy
func Seed(u *model.Universe, config utils.Config) {
	switch config.Seed {
	case utils.SeedEmpty:
		u.Clear()
	case utils.SeedPatterns:
		u.SeedPatterns()
	case utils.SeedRandom:
		u.SeedRandom(config.RandomSeed, config.RandomDensity)
	default:
		u.SeedModulo()
	}
}
