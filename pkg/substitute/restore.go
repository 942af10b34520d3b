package substitute

import (
	"context"

	"github.com/pkg/errors"
)

type RestoreOptions struct {
	Mapping string
	Target  string

	// DryRun computes and logs the replacements without creating a backup
	// or touching the target.
	DryRun bool
}

// Restore rewrites every value of opts.Mapping found in opts.Target back
// into its keyword. The target is only rewritten when something matched,
// and a copy of its previous content is kept next to it.
func (s *Substitutor) Restore(ctx context.Context, opts RestoreOptions) (Result, error) {
	var result Result
	if err := s.requireFiles(opts.Mapping, opts.Target); err != nil {
		return result, err
	}

	m, err := s.load(opts.Mapping)
	if err != nil {
		return result, err
	}

	original, err := s.read(opts.Target)
	if err != nil {
		return result, err
	}
	perm, err := s.perm(opts.Target)
	if err != nil {
		return result, err
	}

	content, replacements := ReverseTable(m).Apply(string(original))
	for _, r := range replacements {
		if r.Count == 0 {
			continue
		}
		s.logReplacement(r)
		result.Replacements = append(result.Replacements, r)
		result.Changed = true
	}

	if !result.Changed {
		s.Logger.Info("no replacements were necessary")
		return result, nil
	}
	if opts.DryRun {
		s.Logger.Info("dry-run mode enabled, no changes were saved")
		return result, nil
	}

	if err := canceled(ctx); err != nil {
		return result, err
	}

	backup := BackupPath(opts.Target)
	if err := s.write(backup, original, perm); err != nil {
		return result, errors.Wrap(err, "could not create backup")
	}
	result.Backup = backup
	s.Logger.Infof("backup created: %s", backup)

	if err := s.write(opts.Target, []byte(content), perm); err != nil {
		return result, err
	}
	result.Written = true
	return result, nil
}
