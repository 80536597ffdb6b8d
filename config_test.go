package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pdf-stapler.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T) string
		explicit bool
		want     Config
		wantErr  bool
	}{
		{
			name: "missing default path falls back to defaults",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "absent.yaml")
			},
			want: defaultConfig(),
		},
		{
			name: "missing explicit path is an error",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "absent.yaml")
			},
			explicit: true,
			wantErr:  true,
		},
		{
			name: "file values override defaults",
			setup: func(t *testing.T) string {
				return writeConfig(t, "addr: \":9090\"\nmax_files: 5\nmax_pages: 10\n")
			},
			want: Config{Addr: ":9090", MaxFiles: 5, MaxPages: 10, MaxUploadMB: defaultMaxUploadMB},
		},
		{
			name: "partial file keeps remaining defaults",
			setup: func(t *testing.T) string {
				return writeConfig(t, "max_upload_mb: 50\n")
			},
			want: Config{Addr: defaultAddr, MaxFiles: defaultMaxFiles, MaxPages: defaultMaxPages, MaxUploadMB: 50},
		},
		{
			name: "zero and negative values are ignored",
			setup: func(t *testing.T) string {
				return writeConfig(t, "max_files: 0\nmax_pages: -1\n")
			},
			want: defaultConfig(),
		},
		{
			name: "malformed yaml is an error",
			setup: func(t *testing.T) string {
				return writeConfig(t, "max_files: [not an int\n")
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfig(tt.setup(t), tt.explicit)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestMaxUploadBytes(t *testing.T) {
	cfg := Config{MaxUploadMB: 20}
	assert.Equal(t, int64(20*1024*1024), cfg.maxUploadBytes())
}
