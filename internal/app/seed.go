package app

import (
	"context"
	"fmt"
	"os"

	"github.com/samber/lo"

	"github.com/bft-labs/avatarsync/pkg/avatar"
	"github.com/bft-labs/avatarsync/pkg/fetch"
	"github.com/bft-labs/avatarsync/pkg/log"
)

// SeedSource names where an initial configuration came from.
type SeedSource string

const (
	SeedNone     SeedSource = "none"
	SeedFile     SeedSource = "file"
	SeedPrefetch SeedSource = "prefetch"
	SeedStore    SeedSource = "store"
)

// ResolveSeed picks the initial configuration: the seed file, then a
// prefetch, then the store. Only an unreadable seed file is an error; a
// failed prefetch or a corrupt store entry fall through to the next source.
func (r *Runner) ResolveSeed(ctx context.Context) (*avatar.Config, SeedSource, error) {
	r.mu.Lock()
	cfg := r.cfg
	r.mu.Unlock()
	return r.resolveSeed(ctx, cfg, r.newFetcher(cfg))
}

func (r *Runner) resolveSeed(ctx context.Context, cfg Config, f fetch.Fetcher) (*avatar.Config, SeedSource, error) {
	if cfg.SeedFile != "" {
		seed, err := loadSeedFile(cfg.SeedFile)
		if err != nil {
			return nil, SeedNone, err
		}
		return seed, SeedFile, nil
	}

	if cfg.Prefetch {
		c, err := f.Fetch(ctx)
		if err == nil {
			return lo.ToPtr(c), SeedPrefetch, nil
		}
		r.logger.Warn("prefetch failed, starting without it", log.Err(err))
	}

	if r.repo != nil {
		seed, err := r.repo.Load(ctx)
		switch {
		case err != nil:
			r.logger.Warn("ignoring unreadable saved config", log.Err(err))
		case seed != nil:
			return seed, SeedStore, nil
		}
	}

	return nil, SeedNone, nil
}

func loadSeedFile(path string) (*avatar.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("seed file: %w", err)
	}
	defer f.Close()

	c, err := avatar.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return &c, nil
}
