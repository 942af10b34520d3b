package diag

import (
	"fmt"
	"io"

	"github.com/srevinsaju/keyswap/v1/pkg/ui"
)

const SeverityError = "error"

type Diagnostic struct {
	Severity string
	Summary  string
	Detail   string
	Source   string
}

func NewDiagnostic(severity, summary, detail, source string) Diagnostic {
	return Diagnostic{
		Severity: severity,
		Summary:  summary,
		Detail:   detail,
		Source:   source,
	}
}

type Diagnostics []Diagnostic

func (d Diagnostics) Append(diag Diagnostic) Diagnostics {
	return append(d, diag)
}

func (d Diagnostics) HasErrors() bool {
	for _, diag := range d {
		if diag.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (d Diagnostic) Error() string {
	if d.Detail == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Summary)
	}
	return fmt.Sprintf("%s: %s, (%s)", d.Severity, d.Summary, d.Detail)
}

func (d Diagnostics) Error() string {
	count := len(d)
	switch {
	case count == 0:
		return "no diagnostics"
	case count == 1:
		return d[0].Error()
	default:
		return fmt.Sprintf("%s, and %d other diagnostic(s)", d[0].Error(), count-1)
	}
}

func NewError(source, message string) Diagnostic {
	return NewDiagnostic(SeverityError, message, "", source)
}

// Write renders every diagnostic to writer.
func (d Diagnostics) Write(writer io.Writer) error {
	for i, diag := range d {
		_, err := fmt.Fprintf(writer, "%s: %s\n\t%s\n\tsource: %s\n\n",
			ui.Red(fmt.Sprintf("diagnostic %d", i+1)),
			ui.Bold(diag.Summary),
			diag.Detail,
			ui.Grey(diag.Source),
		)
		if err != nil {
			return err
		}
	}
	return nil
}
