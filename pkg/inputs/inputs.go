// Package inputs forwards the inputs of a CI run to the step outputs.
//
// Inputs come from two places: the client_payload of the event that
// triggered the run (repository_dispatch) and the INPUT_<NAME> environment
// variables (workflow_dispatch). The latter win on collision.
package inputs

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/go-envparse"
	"github.com/imdario/mergo"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/srevinsaju/keyswap/v1/pkg/meta"
	"github.com/srevinsaju/keyswap/v1/pkg/x"
)

type Inputs map[string]string

func (in Inputs) Keys() []string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Write writes one key=value line per input.
func (in Inputs) Write(w io.Writer) error {
	for _, k := range in.Keys() {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, in[k]); err != nil {
			return err
		}
	}
	return nil
}

// Payload reads the client_payload object of the event file at path.
// Non-string values are kept as compact JSON.
func Payload(fs afero.Fs, path string) (Inputs, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read event payload %s", path)
	}

	var event struct {
		ClientPayload map[string]json.RawMessage `json:"client_payload"`
	}
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, errors.Wrapf(err, "invalid JSON format in '%s'", path)
	}

	in := Inputs{}
	for k, raw := range event.ClientPayload {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			in[k] = s
			continue
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, errors.Wrapf(err, "invalid value for %s in '%s'", k, path)
		}
		compact, err := json.Marshal(v)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid value for %s in '%s'", k, path)
		}
		in[k] = string(compact)
	}
	return in, nil
}

// Environment picks the INPUT_<NAME> variables of environ, keyed by the
// lowercased name.
func Environment(environ []string) Inputs {
	in := Inputs{}
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(k, meta.InputEnvVarPrefix) {
			continue
		}
		in[strings.ToLower(strings.TrimPrefix(k, meta.InputEnvVarPrefix))] = v
	}
	return in
}

func lookup(environ []string, key string) string {
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok && k == key {
			return v
		}
	}
	return ""
}

// Collect merges the event payload named by GITHUB_EVENT_PATH with the
// INPUT_ variables of environ. A missing event file is not an error.
func Collect(fs afero.Fs, environ []string) (Inputs, error) {
	in := Inputs{}
	if path := lookup(environ, meta.EventPathEnvVar); path != "" && x.FileExists(fs, path) {
		payload, err := Payload(fs, path)
		if err != nil {
			return nil, err
		}
		in = payload
	}

	if err := mergo.Merge(&in, Environment(environ), mergo.WithOverride); err != nil {
		return nil, errors.Wrap(err, "could not merge workflow inputs")
	}
	return in, nil
}

// OutputPath returns the step output file named by GITHUB_OUTPUT, if any.
func OutputPath(environ []string) string {
	return lookup(environ, meta.OutputPathEnvVar)
}

// Export appends in to the output file at path, creating it if needed.
func Export(fs afero.Fs, path string, in Inputs) (err error) {
	f, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, "could not open %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "could not close %s", path)
		}
	}()
	if err := in.Write(f); err != nil {
		return errors.Wrapf(err, "could not write to %s", path)
	}
	return nil
}

// ReadOutput parses the output file at path as an env file.
func ReadOutput(fs afero.Fs, path string) (map[string]string, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", path)
	}
	defer f.Close()

	vars, err := envparse.Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse %s", path)
	}
	return vars, nil
}
