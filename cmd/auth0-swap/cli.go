package main

import (
	"github.com/srevinsaju/keyswap/v1/internal/logging"
	"github.com/srevinsaju/keyswap/v1/pkg/meta"
	"github.com/urfave/cli/v2"
)

func initCli() *cli.App {
	app := &cli.App{
		Name:            meta.SwapAppName,
		Usage:           meta.SwapAppDescription,
		Version:         meta.AppVersion,
		ArgsUsage:       "<source_json_path> <dest_json_path> <target_file_path>",
		Action:          swap,
		HideHelpCommand: true,
		Flags:           logging.Flags(),
	}

	return app
}
