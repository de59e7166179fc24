package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	s := Default()
	assert.Equal(t, 2.0, s.HBar)
	assert.Equal(t, 1, s.AutocutoffMin)
	assert.Equal(t, 100, s.AutocutoffMax)
	assert.Equal(t, 50, s.PNRInternalCutoff)
	require.NoError(t, s.Validate())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"non-positive hbar", func(s *Settings) { s.HBar = 0 }},
		{"autocutoff min below one", func(s *Settings) { s.AutocutoffMin = 0 }},
		{"max below min", func(s *Settings) { s.AutocutoffMax = 0 }},
		{"tiny pnr cutoff", func(s *Settings) { s.PNRInternalCutoff = 1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := Default()
			tc.mutate(&s)
			assert.Error(t, s.Validate())
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lattica.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hbar: 1.0\nautocutoff_max: 60\n"), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.HBar)
	assert.Equal(t, 60, s.AutocutoffMax)
	assert.Equal(t, 1, s.AutocutoffMin, "unset keys keep their defaults")
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("hbar: -3\n"), 0o644))
	_, err = LoadFile(bad)
	assert.Error(t, err, "loaded settings are validated")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LATTICA_HBAR", "1")
	t.Setenv("LATTICA_AUTOCUTOFF_MAX", "80")

	s, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 1.0, s.HBar)
	assert.Equal(t, 80, s.AutocutoffMax)
	assert.Equal(t, 50, s.PNRInternalCutoff)
}

func TestFromEnvRejectsGarbage(t *testing.T) {
	t.Setenv("LATTICA_HBAR", "not-a-number")
	_, err := FromEnv()
	assert.Error(t, err)
}
