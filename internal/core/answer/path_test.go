package answer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"tilde only", "~", home},
		{"tilde prefix", "~/answers", filepath.Join(home, "answers")},
		{"absolute", "/var/lib/answers", "/var/lib/answers"},
		{"not a home prefix", "/tmp/~x", "/tmp/~x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandHome(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExpandHome_Relative(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	got, err := ExpandHome("fixtures")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, "fixtures"), got)
}

func TestResolvePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ResolvePath("lang", Options{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "answers", "lang.json"), got)

	got, err = ResolvePath("lang", Options{Cwd: "/srv/answers"})
	require.NoError(t, err)
	assert.Equal(t, "/srv/answers/lang.json", got)
}

func TestNewDocument_NotNil(t *testing.T) {
	doc := NewDocument()
	assert.NotNil(t, doc.Entries)
	assert.NotNil(t, doc.Rollback)

	var zero Document
	zero.normalize()
	assert.NotNil(t, zero.Entries)
	assert.NotNil(t, zero.Rollback)
}
