// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui implements the terminal screens of the client: the legal,
// password setup, lock and reset gates, and the unlocked workspace with
// customer contacts and encrypted backups.
package tui

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-quote-guard/internal/config"
	"github.com/MKhiriev/go-quote-guard/internal/logger"
	"github.com/MKhiriev/go-quote-guard/internal/service"
	"github.com/MKhiriev/go-quote-guard/internal/validators"
	"github.com/MKhiriev/go-quote-guard/models"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	security    service.SecurityService
	resetPhrase string
	info        models.AppBuildInfo
	logger      *logger.Logger
}

func New(services *service.ClientServices, cfg config.ClientApp, info models.AppBuildInfo, log *logger.Logger) (*TUI, error) {
	if services == nil || services.Security == nil {
		return nil, ErrNoSecurityService
	}

	return &TUI{
		security:    services.Security,
		resetPhrase: cfg.ResetPhrase,
		info:        info,
		logger:      log,
	}, nil
}

// Run shows the screen matching the current security state and blocks
// until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	model := newAppModel(
		ctx,
		t.security,
		validators.NewSecurityInputValidator(t.resetPhrase),
		validators.NewCustomerValidator(),
		t.resetPhrase,
		t.info,
		t.logger,
	)

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
