package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/friendlymustache/KhanAcademyInterview/internal/adapters"
	"github.com/friendlymustache/KhanAcademyInterview/internal/config"
	"github.com/friendlymustache/KhanAcademyInterview/internal/core"
	applog "github.com/friendlymustache/KhanAcademyInterview/internal/log"
	do "github.com/samber/do/v2"
	"github.com/spf13/cobra"
)

func main() {
	injector := do.New(
		config.Package,
		applog.Package,
		core.Package,
		adapters.PrimaryPackage,
	)

	cmd, err := do.Invoke[*cobra.Command](injector)
	if err != nil {
		log.Fatalf("failed to create CLI command: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		stop()
		log.Fatal(err)
	}
}
