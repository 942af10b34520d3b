// Package mapping reads Auth0 keyword mapping documents.
//
// A mapping document is a JSON object with a single interesting field:
//
//	{ "AUTH0_KEYWORD_REPLACE_MAPPINGS": { "<keyword>": "<value>", ... } }
//
// Keys are kept in document order, since substitutions derived from a
// mapping are applied one after the other.
package mapping

import (
	"fmt"
	"io"

	"github.com/bcicen/jstream"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/srevinsaju/keyswap/v1/pkg/meta"
)

type Pair struct {
	Key   string
	Value string

	// Null is set when the document holds a JSON null for Key.
	// Such a pair is treated as if the key was absent.
	Null bool
}

type Mapping []Pair

// Get returns the value of the last occurrence of key.
func (m Mapping) Get(key string) (string, bool) {
	for i := len(m) - 1; i >= 0; i-- {
		if m[i].Key != key {
			continue
		}
		if m[i].Null {
			return "", false
		}
		return m[i].Value, true
	}
	return "", false
}

// Keys returns every distinct key, in the order of its first occurrence.
func (m Mapping) Keys() []string {
	seen := make(map[string]bool, len(m))
	var keys []string
	for _, p := range m {
		if seen[p.Key] {
			continue
		}
		seen[p.Key] = true
		keys = append(keys, p.Key)
	}
	return keys
}

func (m Mapping) Len() int {
	return len(m.Keys())
}

// MalformedError is returned when a mapping document is not valid JSON,
// or does not have the shape of a mapping document.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("invalid JSON format in '%s': %s", e.Path, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

func malformed(source string, format string, args ...any) error {
	return &MalformedError{Path: source, Err: fmt.Errorf(format, args...)}
}

// Parse decodes a mapping document from r. source names the document in
// errors. A document without the mappings field yields an empty Mapping.
func Parse(r io.Reader, source string) (Mapping, error) {
	d := jstream.NewDecoder(r, 0).ObjectAsKVS()

	var values []*jstream.MetaValue
	for mv := range d.Stream() {
		values = append(values, mv)
	}
	if err := d.Err(); err != nil {
		return nil, &MalformedError{Path: source, Err: err}
	}
	switch len(values) {
	case 0:
		return nil, malformed(source, "empty document")
	case 1:
	default:
		return nil, malformed(source, "extra data after the top-level value")
	}

	doc, ok := values[0].Value.(jstream.KVS)
	if !ok {
		return nil, malformed(source, "top-level value is not an object")
	}

	var field any
	found := false
	for _, kv := range doc {
		if kv.Key == meta.MappingsField {
			field = kv.Value
			found = true
		}
	}
	if !found {
		return Mapping{}, nil
	}

	kvs, ok := field.(jstream.KVS)
	if !ok {
		return nil, malformed(source, "%s is not an object", meta.MappingsField)
	}

	m := make(Mapping, 0, len(kvs))
	for _, kv := range kvs {
		switch v := kv.Value.(type) {
		case string:
			m = append(m, Pair{Key: kv.Key, Value: v})
		case nil:
			m = append(m, Pair{Key: kv.Key, Null: true})
		default:
			return nil, malformed(source, "value of %q is not a string", kv.Key)
		}
	}
	return m, nil
}

// Load opens path on fs and parses it as a mapping document.
func Load(fs afero.Fs, path string) (Mapping, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", path)
	}
	defer f.Close()

	return Parse(f, path)
}
