package logging

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/srevinsaju/keyswap/v1/pkg/meta"
	"github.com/urfave/cli/v2"
)

// Flags are shared by every command of the repository.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "debug",
			Usage:   "Enable debug logging",
			EnvVars: []string{meta.EnvVarPrefix + "DEBUG"},
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Increase verbosity, can be repeated",
			Count: new(int),
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Only log warnings and errors",
			EnvVars: []string{meta.EnvVarPrefix + "QUIET"},
		},
		&cli.BoolFlag{
			Name:    "json",
			Usage:   "Log as JSON",
			EnvVars: []string{meta.EnvVarPrefix + "JSON"},
		},
		&cli.StringFlag{
			Name:        "color",
			Usage:       "Colored output: auto, always or never",
			EnvVars:     []string{meta.EnvVarPrefix + "COLOR"},
			Value:       ColorAuto,
			DefaultText: ColorAuto,
		},
		&cli.PathFlag{
			Name:    "log-file",
			Usage:   "Also append JSON logs to this file",
			EnvVars: []string{meta.EnvVarPrefix + "LOG_FILE"},
		},
	}
}

func ParseSinksFromCLI(ctx *cli.Context) []Sink {
	var sinks []Sink
	if path := ctx.Path("log-file"); path != "" {
		sinks = append(sinks, Sink{
			Name:  "file",
			Level: logrus.DebugLevel,
			Options: map[string]string{
				"path": path,
			},
		})
	}
	return sinks
}

func ConfigFromCLI(ctx *cli.Context) Config {
	verbosity := ctx.Count("verbose")
	if ctx.Bool("debug") && verbosity < 2 {
		verbosity = 2
	}
	if ctx.Bool("quiet") {
		verbosity = -1
	}
	return Config{
		Verbosity:     verbosity,
		JSON:          ctx.Bool("json"),
		Color:         ctx.String("color"),
		CorrelationID: uuid.New().String(),
		Sinks:         ParseSinksFromCLI(ctx),
	}
}
