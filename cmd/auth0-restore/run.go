package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/srevinsaju/keyswap/v1/pkg/meta"
	"github.com/srevinsaju/keyswap/v1/pkg/orchestra"
	"github.com/srevinsaju/keyswap/v1/pkg/substitute"
	"github.com/srevinsaju/keyswap/v1/pkg/ui"
	"github.com/srevinsaju/keyswap/v1/pkg/x"
	"github.com/urfave/cli/v2"
)

type restoreArgs struct {
	Mapping string
	Target  string
	DryRun  bool

	// Ignored holds a trailing argument that is not the dry-run flag.
	Ignored string
}

// parseRestoreArgs accepts the dry-run flag anywhere among args, since the
// flag parser stops at the first positional argument. Every raw token counts
// toward the argument limit, repeated dry-run flags included.
func parseRestoreArgs(args []string, dryRunFlag bool) (restoreArgs, error) {
	positional := x.Without(args, meta.DryRunFlag)
	dryRun := dryRunFlag || len(positional) != len(args)

	raw := len(args)
	if dryRunFlag {
		raw++
	}
	if raw < 2 || raw > 3 {
		return restoreArgs{}, fmt.Errorf("expected 2 or 3 arguments, got %d", raw)
	}
	if len(positional) < 2 {
		return restoreArgs{}, fmt.Errorf("expected <mapping_json_path> and <target_file_path>, got %d path(s)", len(positional))
	}

	parsed := restoreArgs{
		Mapping: positional[0],
		Target:  positional[1],
		DryRun:  dryRun,
	}
	if len(positional) == 3 {
		parsed.Ignored = positional[2]
	}
	return parsed, nil
}

func restore(cliCtx *cli.Context) error {
	args, err := parseRestoreArgs(cliCtx.Args().Slice(), cliCtx.Bool("dry-run"))
	if err != nil {
		return orchestra.Usage(cliCtx, err.Error())
	}

	run, err := orchestra.New(cliCtx)
	if err != nil {
		return err
	}
	if args.Ignored != "" {
		run.Logger.Warnf("ignoring unexpected argument %q", args.Ignored)
	}
	paths, err := orchestra.Paths(args.Mapping, args.Target)
	if err != nil {
		return run.Finish(substitute.Diagnose(err))
	}

	ctx, cancel := run.Context()
	defer cancel()

	s := substitute.New(afero.NewOsFs(), run.Logger)
	result, err := s.Restore(ctx, substitute.RestoreOptions{
		Mapping: paths[0],
		Target:  paths[1],
		DryRun:  args.DryRun,
	})
	if err != nil {
		return run.Finish(substitute.Diagnose(err))
	}

	if result.Written {
		run.Logger.Infof("%s processing completed successfully", ui.Green("✔"))
	} else if args.DryRun {
		run.Logger.Debugf("%s %d replacement(s) computed", ui.DryRun(), result.Replaced())
	}
	return run.Finish(nil)
}
