// Command crm is the operator's command line client for the CRM API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/crmdesk/crm-system/internal/cli"
	"github.com/crmdesk/crm-system/internal/infrastructure/config"
	"github.com/crmdesk/crm-system/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.RenderError(err))
		os.Exit(2)
	}
	log := logger.Init(logger.Options{
		Level:     cfg.LogLevel,
		Pretty:    true,
		Output:    os.Stderr,
		Component: "crm",
		NoCaller:  true,
	})

	root := cli.NewRootCommand(cli.NewBootstrap(cfg, log))
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, cli.RenderError(err))
		if cli.IsAuthError(err) {
			os.Exit(3)
		}
		os.Exit(1)
	}
}
