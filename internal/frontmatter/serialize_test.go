package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanonical_EmptyMap_ReturnsEmpty(t *testing.T) {
	out, err := Canonical(map[string]any{})
	require.NoError(t, err)
	require.Equal(t, "", string(out))
}

func TestCanonical_DeterministicOrderAndTrailingNewline(t *testing.T) {
	fields := map[string]any{
		"b": "two",
		"a": "one",
		"c": 3,
	}

	out1, err := Canonical(fields)
	require.NoError(t, err)
	out2, err := Canonical(fields)
	require.NoError(t, err)
	require.Equal(t, string(out1), string(out2))
	require.Equal(t, "a: one\nb: two\nc: 3\n", string(out1))
}

func TestCanonical_NestedMap_SortsKeysRecursively(t *testing.T) {
	out, err := Canonical(map[string]any{
		"outer": map[string]any{"b": 2, "a": 1},
	})
	require.NoError(t, err)
	require.Equal(t, "outer:\n  a: 1\n  b: 2\n", string(out))
}

func TestCanonical_IgnoresSourceKeyOrder(t *testing.T) {
	a, err := ParseYAML([]byte("title: T\ntags: [x, y]\n"))
	require.NoError(t, err)
	b, err := ParseYAML([]byte("tags:\n  - x\n  - y\ntitle:   T\n"))
	require.NoError(t, err)

	ca, err := Canonical(a)
	require.NoError(t, err)
	cb, err := Canonical(b)
	require.NoError(t, err)
	require.Equal(t, string(ca), string(cb))
}
