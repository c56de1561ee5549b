package main

import (
	"context"
	"os"

	"github.com/dukex/agentflow/pkg/log"
	cli "github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:                  "agentflow",
		Usage:                 "Browse, build and run AI automation agents",
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			RunCommand(),
			AgentsCommand(),
			TemplatesCommand(),
			ValidateCommand(),
			ExportCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.WithModule("agentflow").Error("Command failed", "error", err)
		os.Exit(1)
	}
}
