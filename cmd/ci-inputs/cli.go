package main

import (
	"github.com/srevinsaju/keyswap/v1/internal/logging"
	"github.com/srevinsaju/keyswap/v1/pkg/meta"
	"github.com/urfave/cli/v2"
)

func initCli() *cli.App {
	app := &cli.App{
		Name:            meta.InputsAppName,
		Usage:           meta.InputsAppDescription,
		Version:         meta.AppVersion,
		Action:          forward,
		HideHelpCommand: true,
		Flags:           logging.Flags(),
	}

	return app
}
