package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecord() map[string]string {
	return map[string]string{
		"name":             "Thanh Long Nguyen",
		"week_no":          "59",
		"start_date":       "22/04/2024",
		"texts_3":          "- GPS Zeit-Synchronisierung per PPS-Signal\n- Prüfung <bestanden> & \"dokumentiert\"",
		"hour_3":           "18",
		"output_directory": "/home/azubi/Documents/School/Berichtsheft/berichtsheft AP2",
		"empty":            "",
	}
}

func TestRoundTrip(t *testing.T) {
	for _, name := range []string{"config.json", "config.yaml", "config.yml", "config"} {
		t.Run(name, func(t *testing.T) {
			store := Store{Path: filepath.Join(t.TempDir(), "nested", name)}
			want := sampleRecord()

			require.NoError(t, store.Save(want))
			got, err := store.Load()
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
			}

			require.NoError(t, store.Save(got))
			again, err := store.Load()
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(got, again))
		})
	}
}

func TestJSONIsReadable(t *testing.T) {
	store := Store{Path: filepath.Join(t.TempDir(), "config.json")}
	require.NoError(t, store.Save(map[string]string{"texts_2": "Übung <1>"}))

	data, err := os.ReadFile(store.Path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"texts_2\": \"Übung <1>\"\n}\n", string(data))
}

func TestLoadMissingFile(t *testing.T) {
	store := Store{Path: filepath.Join(t.TempDir(), "config.json")}

	_, err := store.Load()

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr), "got %v", err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoadMalformedFile(t *testing.T) {
	store := Store{Path: filepath.Join(t.TempDir(), "config.json")}
	require.NoError(t, os.WriteFile(store.Path, []byte("{not json"), 0o600))

	_, err := store.Load()

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr), "got %v", err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, store.Path, loadErr.Path)
}

func TestSaveUnwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	store := Store{Path: filepath.Join(blocker, "config.json")}

	err := store.Save(sampleRecord())

	var saveErr *SaveError
	assert.True(t, errors.As(err, &saveErr), "got %v", err)
}

func TestSaveNil(t *testing.T) {
	store := Store{Path: filepath.Join(t.TempDir(), "config.yaml")}
	require.NoError(t, store.Save(nil))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", "/home/azubi")

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/azubi", ".berichtsheft_generator", "config.json"), path)
}
