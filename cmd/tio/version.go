package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/ETS-Android5/tensorio-android/internal/version"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return writeJSON(version.Resolve())
		},
	}
}
