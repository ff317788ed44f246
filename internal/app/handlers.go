package app

import (
	"context"
	"time"

	"github.com/bft-labs/avatarsync/pkg/log"
	"github.com/bft-labs/avatarsync/pkg/settings"
	"github.com/bft-labs/avatarsync/pkg/store"
)

const saveTimeout = 2 * time.Second

// loggingHandler writes one line per applied transition.
type loggingHandler struct {
	logger log.Logger
}

func (h loggingHandler) OnStateChange(e settings.StateChangeEvent) {
	fields := []log.Field{
		log.Uint64("seq", e.Seq),
		log.Bool("loading", e.Current.IsLoading),
		log.Bool("error", e.Current.IsError),
	}
	if c := e.Current.Config; c != nil {
		fields = append(fields, log.String("id", c.ID), log.String("name", c.Name))
	}

	switch {
	case e.Current.IsError:
		h.logger.Warn("avatar config stale", fields...)
	case e.Previous.IsError:
		h.logger.Info("avatar config recovered", fields...)
	default:
		h.logger.Info("avatar config updated", fields...)
	}
}

func (h loggingHandler) OnFetchError(settings.FetchErrorEvent) {}

// storeSaver persists every successfully fetched configuration.
type storeSaver struct {
	repo   store.Repository
	logger log.Logger
}

func (s storeSaver) OnStateChange(e settings.StateChangeEvent) {
	if e.Current.IsError || e.Current.Config == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.repo.Save(ctx, *e.Current.Config); err != nil {
		s.logger.Warn("failed to save avatar config", log.Err(err))
	}
}

func (s storeSaver) OnFetchError(settings.FetchErrorEvent) {}
