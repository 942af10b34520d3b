// Package orchestra holds what every command of the repository does around
// its actual work: logger construction, interrupt handling, diagnostics and
// the exit status.
package orchestra

import (
	"context"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/srevinsaju/keyswap/v1/internal/logging"
	"github.com/srevinsaju/keyswap/v1/pkg/diag"
	"github.com/srevinsaju/keyswap/v1/pkg/meta"
	"github.com/urfave/cli/v2"
)

type Run struct {
	Logger *logrus.Entry
	Config logging.Config

	cli      *cli.Context
	bootTime time.Time
}

// New builds the logger of a command from its flags.
func New(cliCtx *cli.Context) (*Run, error) {
	cfg := logging.ConfigFromCLI(cliCtx)
	cfg.Output = cliCtx.App.Writer
	logger, err := logging.New(cfg)
	if err != nil {
		diags := diag.Diagnostics{diag.NewDiagnostic(diag.SeverityError, "invalid logging configuration", err.Error(), meta.AppName)}
		_ = diags.Write(cliCtx.App.ErrWriter)
		return nil, diags
	}
	return &Run{
		Logger:   logger.WithFields(logging.Fields(cfg)),
		Config:   cfg,
		cli:      cliCtx,
		bootTime: time.Now(),
	}, nil
}

// Usage prints the help of the command along with message and returns the
// error the command should exit with.
func Usage(cliCtx *cli.Context, message string) error {
	_ = cli.ShowAppHelp(cliCtx)
	diags := diag.Diagnostics{diag.NewDiagnostic(diag.SeverityError, "invalid usage", message, cliCtx.App.Name)}
	_ = diags.Write(cliCtx.App.ErrWriter)
	return diags
}

// Paths expands a leading ~ in every path.
func Paths(paths ...string) ([]string, error) {
	expanded := make([]string, len(paths))
	for i, p := range paths {
		e, err := homedir.Expand(p)
		if err != nil {
			return nil, errors.Wrapf(err, "could not expand %s", p)
		}
		expanded[i] = e
	}
	return expanded, nil
}

// Context returns a context cancelled on the first interrupt.
func (r *Run) Context() (context.Context, context.CancelFunc) {
	parent := r.cli.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	go InterruptHandler(ctx, cancel, r.Logger)
	return ctx, cancel
}

// Finish renders the diagnostics of a failed run, logs how long the run
// took and returns the error the command should exit with.
func (r *Run) Finish(diags diag.Diagnostics) error {
	if diags.HasErrors() {
		if err := diags.Write(r.cli.App.ErrWriter); err != nil {
			r.Logger.Error(err)
		}
		r.Finale(logrus.ErrorLevel)
		return diags
	}
	r.Finale(logrus.InfoLevel)
	return nil
}

func (r *Run) Elapsed() time.Duration {
	return time.Since(r.bootTime)
}
