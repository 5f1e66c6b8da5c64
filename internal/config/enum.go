package config

import (
	"fmt"
	"sort"
	"strings"
)

// enumNormalizer maps loosely written enumeration values (any case, padded)
// onto their canonical constants.
type enumNormalizer[T ~string] struct {
	values map[string]T
	keys   []string
}

func newEnumNormalizer[T ~string](values ...T) *enumNormalizer[T] {
	n := &enumNormalizer[T]{values: make(map[string]T, len(values))}
	for _, v := range values {
		key := normalizeKey(string(v))
		n.values[key] = v
		n.keys = append(n.keys, key)
	}
	sort.Strings(n.keys)
	return n
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// normalize returns the canonical value for raw and whether it was recognised.
func (n *enumNormalizer[T]) normalize(raw string) (T, bool) {
	v, ok := n.values[normalizeKey(raw)]
	return v, ok
}

// parse is normalize with an error naming the valid options.
func (n *enumNormalizer[T]) parse(field, raw string) (T, error) {
	if v, ok := n.normalize(raw); ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, valid options: %v", field, raw, n.keys)
}
