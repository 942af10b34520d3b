package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/srevinsaju/keyswap/v1/pkg/diag"
	"github.com/srevinsaju/keyswap/v1/pkg/inputs"
	"github.com/srevinsaju/keyswap/v1/pkg/meta"
	"github.com/srevinsaju/keyswap/v1/pkg/orchestra"
	"github.com/urfave/cli/v2"
)

func forward(cliCtx *cli.Context) error {
	if cliCtx.NArg() != 0 {
		return orchestra.Usage(cliCtx, fmt.Sprintf("expected no arguments, got %d", cliCtx.NArg()))
	}

	run, err := orchestra.New(cliCtx)
	if err != nil {
		return err
	}

	fs := afero.NewOsFs()
	environ := os.Environ()
	in, err := inputs.Collect(fs, environ)
	if err != nil {
		return run.Finish(diag.Diagnostics{diag.NewDiagnostic(diag.SeverityError, "could not collect inputs", err.Error(), meta.EventPathEnvVar)})
	}

	if path := inputs.OutputPath(environ); path != "" {
		if err := inputs.Export(fs, path, in); err != nil {
			return run.Finish(diag.Diagnostics{diag.NewDiagnostic(diag.SeverityError, "could not export inputs", err.Error(), path)})
		}
		vars, err := inputs.ReadOutput(fs, path)
		if err != nil {
			run.Logger.Warnf("could not read %s back, ignoring... :%s", meta.OutputPathEnvVar, err)
		} else {
			run.Logger.Debugf("%s now holds %d variable(s)", path, len(vars))
		}
	} else {
		run.Logger.Debugf("%s is not set, only printing the inputs", meta.OutputPathEnvVar)
	}

	fmt.Fprintln(cliCtx.App.Writer, "Final Variables Set:")
	if err := in.Write(cliCtx.App.Writer); err != nil {
		return run.Finish(diag.Diagnostics{diag.NewError(meta.InputsAppName, err.Error())})
	}
	return run.Finish(nil)
}
