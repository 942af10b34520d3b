package main

import (
	"github.com/srevinsaju/keyswap/v1/internal/logging"
	"github.com/srevinsaju/keyswap/v1/pkg/meta"
	"github.com/urfave/cli/v2"
)

func initCli() *cli.App {
	app := &cli.App{
		Name:            meta.RestoreAppName,
		Usage:           meta.RestoreAppDescription,
		Version:         meta.AppVersion,
		ArgsUsage:       "<mapping_json_path> <target_file_path> [--dry-run]",
		Action:          restore,
		HideHelpCommand: true,
		Flags: append(logging.Flags(),
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Log the replacements without creating a backup or modifying the file",
			},
		),
	}

	return app
}
