package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstHeading(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"atx", "# Hello World\n\nBody\n", "Hello World"},
		{"setext", "Intro\n=====\n", "Intro"},
		{"inline markup", "# The `dict` *type*\n", "The dict type"},
		{"skips lower levels", "## Sub\n\n# Main\n", "Main"},
		{"none", "Just text\n", ""},
		{"code fence is not a heading", "```\n# not a title\n```\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FirstHeading([]byte(tt.body)))
		})
	}
}

func TestParseBody(t *testing.T) {
	root := ParseBody([]byte("# A\n\ntext\n"))
	assert.Equal(t, 2, root.ChildCount())
}
