package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-quote-guard/internal/logger"
	"github.com/MKhiriev/go-quote-guard/internal/service"
	"github.com/MKhiriev/go-quote-guard/internal/store"
)

var ErrMissingDependency = errors.New("client dependency is missing")

type App struct {
	storages *store.ClientStorages
	services *service.ClientServices
	ui       UI
	logger   *logger.Logger
}

func NewApp(storages *store.ClientStorages, services *service.ClientServices, ui UI, log *logger.Logger) (*App, error) {
	switch {
	case storages == nil || storages.KeyValueStore == nil:
		return nil, fmt.Errorf("%w: storages", ErrMissingDependency)
	case services == nil || services.Security == nil:
		return nil, fmt.Errorf("%w: security service", ErrMissingDependency)
	case ui == nil:
		return nil, fmt.Errorf("%w: ui", ErrMissingDependency)
	}

	return &App{
		storages: storages,
		services: services,
		ui:       ui,
		logger:   log.WithComponent("client"),
	}, nil
}

// Run derives the security state from storage, hands control to the UI and
// tears everything down once it returns. The password held in memory is
// wiped and the background jobs are joined before the store is closed.
func (a *App) Run(ctx context.Context) (err error) {
	defer func() {
		if closeErr := a.storages.KeyValueStore.Close(); closeErr != nil {
			a.logger.Error().Err(closeErr).Msg("close storage")
			err = errors.Join(err, fmt.Errorf("close storage: %w", closeErr))
		}
	}()
	defer a.services.Security.Close()

	if err = a.services.Security.Init(ctx); err != nil {
		return fmt.Errorf("init security: %w", err)
	}
	a.logger.Info().Str("state", a.services.Security.State().String()).Msg("client started")

	if err = a.ui.Run(ctx); err != nil {
		return err
	}

	a.logger.Info().Msg("client stopped")
	return nil
}
