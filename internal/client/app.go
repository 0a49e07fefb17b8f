package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/avoronov/go-cv-builder/internal/config"
	"github.com/avoronov/go-cv-builder/internal/logger"
	"github.com/avoronov/go-cv-builder/internal/service"
	"github.com/avoronov/go-cv-builder/internal/tui"
	"github.com/avoronov/go-cv-builder/internal/workers"
)

type App struct {
	services   *service.ClientServices
	tui        *tui.TUI
	workersCfg config.ClientWorkers
	logger     *logger.Logger
}

func NewApp(services *service.ClientServices, ui *tui.TUI, workersCfg config.ClientWorkers, log *logger.Logger) (*App, error) {
	if services == nil || ui == nil {
		return nil, errors.New("client app requires services and ui")
	}

	return &App{
		services:   services,
		tui:        ui,
		workersCfg: workersCfg,
		logger:     log,
	}, nil
}

// Run drives the whole client session: restore the offline cache, run the
// login flow, start background sync, and enter the main loop. A logout
// restarts the cycle.
func (a *App) Run() error {
	ctx := context.Background()

	// Cached documents from previous sessions are visible before any
	// network round trip.
	if err := a.services.DocumentStore.Restore(ctx); err != nil {
		a.logger.Err(err).Msg("restore local documents")
	}

	if err := a.tui.LoginFlow(ctx); err != nil {
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		return fmt.Errorf("login flow: %w", err)
	}

	jobs := workers.NewWorkers(ctx, a.services, a.workersCfg)
	jobs.Run()
	defer jobs.Stop()

	// Flush in-flight replications on the way out.
	defer a.services.DocumentStore.Wait()

	logout, err := a.tui.MainLoop(ctx)
	if err != nil {
		return fmt.Errorf("main loop: %w", err)
	}
	if logout {
		jobs.Stop()
		return a.Run()
	}

	return nil
}
