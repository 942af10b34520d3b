package logging

import (
	"errors"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/srevinsaju/keyswap/v1/pkg/ui"
)

type Sink struct {
	Name  string
	Level logrus.Level

	Options map[string]string
}

type Config struct {
	Verbosity     int
	JSON          bool
	Color         string
	CorrelationID string

	// Output defaults to os.Stdout.
	Output io.Writer

	Sinks []Sink
}

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// colored resolves the color mode against the terminal attached to out.
func colored(mode string, out io.Writer) bool {
	switch mode {
	case ColorAlways, "on":
		return true
	case ColorNever, "off":
		return false
	}
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func New(cfg Config) (*logrus.Logger, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	logger := logrus.New()
	logger.SetOutput(out)
	switch cfg.Verbosity {
	case -1:
		logger.SetLevel(logrus.WarnLevel)
	case 0:
		logger.SetLevel(logrus.InfoLevel)
	case 1:
		logger.SetLevel(logrus.DebugLevel)
	default:
		logger.SetLevel(logrus.TraceLevel)
	}

	color := colored(cfg.Color, out)
	ui.SetColor(color)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		ForceColors:      color,
		DisableColors:    !color,
	})
	if cfg.JSON {
		logger.SetFormatter(&logrus.JSONFormatter{DisableTimestamp: true})
	}

	for _, sink := range cfg.Sinks {
		switch sink.Name {
		case "file":
			path, ok := sink.Options["path"]
			if !ok || path == "" {
				return nil, errors.New("file sink requires path option")
			}
			logger.AddHook(NewFileHook(path, sink.Level))
		default:
			return nil, errors.New("unknown sink: " + sink.Name)
		}
	}

	return logger, nil
}
