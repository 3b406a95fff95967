package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("GLOSS_TEST_DIR", "/var/lib/gloss")

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty", path: "", want: ""},
		{name: "absolute unchanged", path: "/tmp/gloss.db", want: "/tmp/gloss.db"},
		{name: "tilde prefix", path: "~/data/gloss.db", want: filepath.Join(home, "data", "gloss.db")},
		{name: "bare tilde", path: "~", want: home},
		{name: "env var", path: "$GLOSS_TEST_DIR/gloss.db", want: "/var/lib/gloss/gloss.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.path))
		})
	}
}
