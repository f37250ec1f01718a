package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveAndList(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.EnsureDirs())

	path, err := s.SaveStylesheet("app", "snow", ".app-surface{}")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ".app-surface{}", string(data))

	_, err = s.SaveStylesheet("minimal", "aurora", "x")
	require.NoError(t, err)
	_, err = s.SaveStylesheet("app", "aurora", "y")
	require.NoError(t, err)

	got, err := s.ListStylesheets()
	require.NoError(t, err)
	want := []string{"app/aurora.css", "app/snow.css", "minimal/aurora.css"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ListStylesheets mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := New(t.TempDir())

	_, err := s.SaveStylesheet("app", "grid", "old")
	require.NoError(t, err)
	path, err := s.SaveStylesheet("app", "grid", "new")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temp file should not remain")
}

func TestStore_RejectsPathNames(t *testing.T) {
	s := New(t.TempDir())

	for _, name := range []string{"", "..", "a/b", `a\b`} {
		_, err := s.SaveStylesheet(name, "grid", "x")
		assert.Error(t, err, "template %q", name)
		_, err = s.SaveStylesheet("app", name, "x")
		assert.Error(t, err, "name %q", name)
	}
}

func TestStore_ListMissingDir(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope"))

	got, err := s.ListStylesheets()
	require.NoError(t, err)
	assert.Empty(t, got)
}
