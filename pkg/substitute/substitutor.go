// Package substitute rewrites Auth0 keywords inside text files according
// to mapping documents.
//
// Two modes exist. Swap turns the values of a source environment into the
// values of a destination environment. Restore turns values back into the
// keywords they stand for, keeping a backup of the file it modifies.
package substitute

import (
	"context"
	"os"
	"path/filepath"

	"github.com/alessio/shellescape"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/srevinsaju/keyswap/v1/pkg/mapping"
	"github.com/srevinsaju/keyswap/v1/pkg/meta"
	"github.com/srevinsaju/keyswap/v1/pkg/ui"
	"github.com/srevinsaju/keyswap/v1/pkg/x"
)

type Substitutor struct {
	Fs     afero.Fs
	Logger *logrus.Entry
}

func New(fs afero.Fs, logger *logrus.Entry) *Substitutor {
	return &Substitutor{
		Fs:     fs,
		Logger: logger,
	}
}

type Result struct {
	Replacements []Replacement
	Skipped      []Skip

	// Changed is set when at least one rule matched the target.
	Changed bool

	// Written is set when the target file was rewritten.
	Written bool

	// Backup is the path of the backup file, if one was created.
	Backup string
}

func (r Result) Replaced() int {
	n := 0
	for _, rep := range r.Replacements {
		n += rep.Count
	}
	return n
}

func BackupPath(target string) string {
	return target + meta.BackupSuffix
}

func (s *Substitutor) requireFiles(paths ...string) error {
	for _, p := range paths {
		if !x.FileExists(s.Fs, p) {
			return &MissingFileError{Path: p}
		}
	}
	return nil
}

func (s *Substitutor) load(path string) (mapping.Mapping, error) {
	m, err := mapping.Load(s.Fs, path)
	if err != nil {
		return nil, err
	}
	s.Logger.Debugf("loaded %d mapping(s) from %s", m.Len(), path)
	return m, nil
}

func (s *Substitutor) read(path string) ([]byte, error) {
	data, err := afero.ReadFile(s.Fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read %s", path)
	}
	return data, nil
}

// maxLinks bounds how many symbolic links resolve follows.
const maxLinks = 40

// resolve follows symbolic links at path so that a write replaces the file
// the link points to rather than the link itself. Filesystems without
// symlink support return path unchanged.
func (s *Substitutor) resolve(path string) (string, error) {
	lstater, ok := s.Fs.(afero.Lstater)
	if !ok {
		return path, nil
	}
	for i := 0; i < maxLinks; i++ {
		info, _, err := lstater.LstatIfPossible(path)
		if os.IsNotExist(err) {
			return path, nil
		}
		if err != nil {
			return "", errors.Wrapf(err, "could not stat %s", path)
		}
		if info.Mode()&os.ModeSymlink == 0 {
			return path, nil
		}
		reader, ok := s.Fs.(afero.LinkReader)
		if !ok {
			return path, nil
		}
		dest, err := reader.ReadlinkIfPossible(path)
		if err != nil {
			return "", errors.Wrapf(err, "could not read link %s", path)
		}
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(filepath.Dir(path), dest)
		}
		path = dest
	}
	return "", errors.Errorf("too many levels of symbolic links at %s", path)
}

// write replaces path with data through a temporary file in the same
// directory, so readers see either the old or the new content. A symbolic
// link at path is written through.
func (s *Substitutor) write(path string, data []byte, perm os.FileMode) (err error) {
	path, err = s.resolve(path)
	if err != nil {
		return err
	}
	tmp, err := afero.TempFile(s.Fs, filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrapf(err, "could not create a temporary file for %s", path)
	}
	defer func() {
		if err != nil {
			_ = s.Fs.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "could not write %s", tmp.Name())
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrapf(err, "could not close %s", tmp.Name())
	}
	if err = s.Fs.Chmod(tmp.Name(), perm); err != nil {
		return errors.Wrapf(err, "could not set permissions of %s", tmp.Name())
	}
	if err = s.Fs.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "could not replace %s", path)
	}
	s.Logger.Tracef("wrote %d bytes to %s", len(data), path)
	return nil
}

func (s *Substitutor) perm(path string) (os.FileMode, error) {
	info, err := s.Fs.Stat(path)
	if err != nil {
		return 0, errors.Wrapf(err, "could not stat %s", path)
	}
	return info.Mode().Perm(), nil
}

func (s *Substitutor) logReplacement(r Replacement) {
	s.Logger.WithField("key", r.Key).Infof("replacing %s %s %s",
		shellescape.Quote(r.Search), ui.Arrow(), shellescape.Quote(r.Replace))
	if r.Count == 0 {
		s.Logger.WithField("key", r.Key).Debugf("%s does not occur in the target", shellescape.Quote(r.Search))
	}
}

func (s *Substitutor) logSkip(skip Skip) {
	s.Logger.WithField("key", skip.Key).Warnf("skipping: %s found for %s", skip.Reason, shellescape.Quote(skip.Key))
}

func canceled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, "aborted before writing")
	}
	return nil
}
