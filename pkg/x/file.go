package x

import (
	"github.com/spf13/afero"
)

// FileExists reports whether path exists on fs and is a regular file.
func FileExists(fs afero.Fs, path string) bool {
	f, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return f.Mode().IsRegular()
}
