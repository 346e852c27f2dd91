package main

import (
	"context"
	"fmt"

	"zurbo/cmd/bootstrap"
	"zurbo/internal/pkg/config"
	"zurbo/internal/usecase"
	"zurbo/internal/usecase/commands"

	"go.uber.org/fx"
)

// app is what the subcommands operate on. Tests build one from fakes.
type app struct {
	guard         usecase.RateLimitGuard
	confirmations commands.ConfirmationCommands
	users         commands.UserCommands
}

type wireFunc func(ctx context.Context) (*app, func(), error)

// wireApp starts the same core graph the server uses, minus HTTP.
func wireApp(ctx context.Context) (*app, func(), error) {
	var a app
	fxApp := fx.New(
		bootstrap.CoreModule,
		fx.NopLogger,
		fx.Populate(&a.guard, &a.confirmations, &a.users),
	)
	if err := fxApp.Start(ctx); err != nil {
		return nil, nil, fmt.Errorf("start core: %w", err)
	}
	stop := func() {
		_ = fxApp.Stop(context.Background())
	}
	return &a, stop, nil
}

func loadConfig() (config.Config, error) {
	return config.LoadConfig()
}
