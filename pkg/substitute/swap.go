package substitute

import (
	"context"
)

type SwapOptions struct {
	// Source is the mapping document of the environment the target
	// currently refers to.
	Source string

	// Destination is the mapping document of the environment the target
	// should refer to.
	Destination string

	Target string
}

// Swap rewrites the values of opts.Source found in opts.Target into the
// values opts.Destination holds for the same keywords. The target is
// always rewritten, even when nothing matched.
func (s *Substitutor) Swap(ctx context.Context, opts SwapOptions) (Result, error) {
	var result Result
	if err := s.requireFiles(opts.Source, opts.Destination, opts.Target); err != nil {
		return result, err
	}

	src, err := s.load(opts.Source)
	if err != nil {
		return result, err
	}
	dst, err := s.load(opts.Destination)
	if err != nil {
		return result, err
	}

	data, err := s.read(opts.Target)
	if err != nil {
		return result, err
	}
	perm, err := s.perm(opts.Target)
	if err != nil {
		return result, err
	}

	table, skipped := ForwardTable(src, dst)
	result.Skipped = skipped
	for _, skip := range skipped {
		s.logSkip(skip)
	}

	content, replacements := table.Apply(string(data))
	result.Replacements = replacements
	for _, r := range replacements {
		s.logReplacement(r)
		if r.Count > 0 {
			result.Changed = true
		}
	}

	if err := canceled(ctx); err != nil {
		return result, err
	}
	if err := s.write(opts.Target, []byte(content), perm); err != nil {
		return result, err
	}
	result.Written = true
	return result, nil
}
