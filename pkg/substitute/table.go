package substitute

import (
	"strings"

	"github.com/srevinsaju/keyswap/v1/pkg/mapping"
)

// Rule replaces every occurrence of Search with Replace. Key is the
// mapping keyword the rule was derived from.
type Rule struct {
	Key     string
	Search  string
	Replace string
}

// Table is an ordered list of rules. Order matters: see Apply.
type Table []Rule

type SkipReason string

const (
	SkipNoSource      SkipReason = "no source mapping"
	SkipNoDestination SkipReason = "no destination mapping"
)

// Skip records a keyword that could not be turned into a rule.
type Skip struct {
	Key    string
	Reason SkipReason
}

// Replacement is the outcome of one rule of a Table on some content.
type Replacement struct {
	Rule
	Count int
}

// ForwardTable derives the rules that turn the values of src into the
// values of dst. Keys are visited in the order of dst; a key without a
// value on either side is skipped.
func ForwardTable(src, dst mapping.Mapping) (Table, []Skip) {
	var table Table
	var skipped []Skip
	for _, key := range dst.Keys() {
		from, ok := src.Get(key)
		if !ok {
			skipped = append(skipped, Skip{Key: key, Reason: SkipNoSource})
			continue
		}
		to, ok := dst.Get(key)
		if !ok {
			skipped = append(skipped, Skip{Key: key, Reason: SkipNoDestination})
			continue
		}
		table = append(table, Rule{Key: key, Search: from, Replace: to})
	}
	return table, skipped
}

// ReverseTable derives the rules that turn the values of m back into their
// keys. Empty and null values are left out. When several keys share a
// value the last key wins, and the rule keeps the position at which the
// value first appeared.
func ReverseTable(m mapping.Mapping) Table {
	var table Table
	index := make(map[string]int)
	for _, p := range m {
		if p.Null || p.Value == "" {
			continue
		}
		if i, ok := index[p.Value]; ok {
			table[i].Key = p.Key
			table[i].Replace = p.Key
			continue
		}
		index[p.Value] = len(table)
		table = append(table, Rule{Key: p.Key, Search: p.Value, Replace: p.Key})
	}
	return table
}

// Apply runs every rule over content, in order. Each rule sees the output
// of the rules before it, so a later rule can match text introduced by an
// earlier one.
func (t Table) Apply(content string) (string, []Replacement) {
	replacements := make([]Replacement, 0, len(t))
	for _, rule := range t {
		n := strings.Count(content, rule.Search)
		if n > 0 {
			content = strings.ReplaceAll(content, rule.Search, rule.Replace)
		}
		replacements = append(replacements, Replacement{Rule: rule, Count: n})
	}
	return content, replacements
}
