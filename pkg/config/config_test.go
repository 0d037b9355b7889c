package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddPortToURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "bare host", raw: "http://localhost", want: "http://localhost:3000/"},
		{name: "existing port replaced", raw: "http://orka.example.com:8080", want: "http://orka.example.com:3000/"},
		{name: "path kept", raw: "https://orka.example.com/api/", want: "https://orka.example.com:3000/api/"},
		{name: "ipv6", raw: "http://[::1]", want: "http://[::1]:3000/"},
		{name: "no scheme", raw: "localhost", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "unparsable", raw: "http://%zz", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := AddPortToURL(tt.raw, APIPort)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad_CreatesDefault(t *testing.T) {
	t.Setenv(envOrkaURL, "")
	os.Unsetenv(envOrkaURL)

	path := filepath.Join(t.TempDir(), "orka", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/", cfg.OrkaURL)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "orkaUrl: http://localhost\n", string(data))
}

func TestLoad_ExistingFile(t *testing.T) {
	t.Setenv(envOrkaURL, "")
	os.Unsetenv(envOrkaURL)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("orkaUrl: https://orka.internal\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://orka.internal:3000/", cfg.OrkaURL)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("orkaUrl: http://from-file\n"), 0644))
	t.Setenv(envOrkaURL, "http://from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:3000/", cfg.OrkaURL)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(envOrkaURL, "")
	os.Unsetenv(envOrkaURL)

	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("orkaUrl: [\n"), 0644))
	_, err := Load(broken)
	assert.Error(t, err)

	badURL := filepath.Join(dir, "bad-url.yaml")
	require.NoError(t, os.WriteFile(badURL, []byte("orkaUrl: not-a-url\n"), 0644))
	_, err = Load(badURL)
	assert.Error(t, err)
}

func TestWithOrkaURL_SaveRoundTrip(t *testing.T) {
	t.Setenv(envOrkaURL, "")
	os.Unsetenv(envOrkaURL)

	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := Load(path)
	require.NoError(t, err)

	next, err := cfg.WithOrkaURL("http://orka.example.com")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000/", cfg.OrkaURL, "original value must not change")
	assert.Equal(t, "http://orka.example.com:3000/", next.OrkaURL)

	require.NoError(t, next.Save(path))
	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, next.OrkaURL, reloaded.OrkaURL)

	_, err = cfg.WithOrkaURL("nope")
	assert.Error(t, err)
}
