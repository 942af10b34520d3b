package substitute

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/srevinsaju/keyswap/v1/pkg/diag"
	"github.com/srevinsaju/keyswap/v1/pkg/mapping"
	"github.com/srevinsaju/keyswap/v1/pkg/meta"
)

// MissingFileError is returned when a required path is not a regular file.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("file '%s' not found", e.Path)
}

type MalformedError = mapping.MalformedError

func IsMissingFile(err error) bool {
	_, ok := errors.Cause(err).(*MissingFileError)
	return ok
}

func IsMalformed(err error) bool {
	_, ok := errors.Cause(err).(*MalformedError)
	return ok
}

// Diagnose turns an error returned by a Substitutor into diagnostics
// suitable for the command line.
func Diagnose(err error) diag.Diagnostics {
	var diags diag.Diagnostics
	if err == nil {
		return diags
	}
	switch cause := errors.Cause(err).(type) {
	case *MissingFileError:
		return diags.Append(diag.NewDiagnostic(diag.SeverityError, "file not found",
			fmt.Sprintf("'%s' does not exist or is not a regular file", cause.Path), cause.Path))
	case *MalformedError:
		return diags.Append(diag.NewDiagnostic(diag.SeverityError, "invalid JSON format",
			cause.Err.Error(), cause.Path))
	}
	if errors.Is(err, context.Canceled) {
		return diags.Append(diag.NewDiagnostic(diag.SeverityError, "interrupted",
			"no changes were saved", meta.AppName))
	}
	return diags.Append(diag.NewDiagnostic(diag.SeverityError, "unexpected error", err.Error(), meta.AppName))
}
