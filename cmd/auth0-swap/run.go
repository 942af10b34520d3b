package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/srevinsaju/keyswap/v1/pkg/orchestra"
	"github.com/srevinsaju/keyswap/v1/pkg/substitute"
	"github.com/srevinsaju/keyswap/v1/pkg/ui"
	"github.com/urfave/cli/v2"
)

func swap(cliCtx *cli.Context) error {
	if cliCtx.NArg() != 3 {
		return orchestra.Usage(cliCtx, fmt.Sprintf("expected 3 arguments, got %d", cliCtx.NArg()))
	}

	run, err := orchestra.New(cliCtx)
	if err != nil {
		return err
	}
	paths, err := orchestra.Paths(cliCtx.Args().Slice()...)
	if err != nil {
		return run.Finish(substitute.Diagnose(err))
	}

	ctx, cancel := run.Context()
	defer cancel()

	s := substitute.New(afero.NewOsFs(), run.Logger)
	result, err := s.Swap(ctx, substitute.SwapOptions{
		Source:      paths[0],
		Destination: paths[1],
		Target:      paths[2],
	})
	if err != nil {
		return run.Finish(substitute.Diagnose(err))
	}

	run.Logger.Infof("%s processing completed successfully, %d replacement(s), %d skipped",
		ui.Green("✔"), result.Replaced(), len(result.Skipped))
	return run.Finish(nil)
}
