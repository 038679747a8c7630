package base

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshline/meshline-go/internal/config"
)

func newTestCommand() (*Command, *cli.MockUi) {
	ui := cli.NewMockUi()
	return &Command{
		UI:  ui,
		Log: hclog.NewNullLogger(),
		FS:  afero.NewMemMapFs(),
	}, ui
}

func TestOutputJSON(t *testing.T) {
	c, ui := newTestCommand()

	code := c.Output(&config.Config{Output: "json"}, map[string]string{"id": "t1"})
	require.Equal(t, 0, code)
	assert.JSONEq(t, `{"id": "t1"}`, ui.OutputWriter.String())
}

func TestOutputYAML(t *testing.T) {
	c, ui := newTestCommand()

	code := c.Output(&config.Config{Output: "yaml"}, map[string]string{"id": "t1"})
	require.Equal(t, 0, code)
	assert.Contains(t, ui.OutputWriter.String(), "id: t1")
}

func TestConfigAppliesLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meshline.hcl")
	require.NoError(t, os.WriteFile(path, []byte("log_level = \"debug\"\n"), 0o600))

	log := hclog.New(&hclog.LoggerOptions{Level: hclog.Warn, Output: io.Discard})
	c := &Command{UI: cli.NewMockUi(), Log: log, FS: afero.NewMemMapFs()}
	require.NoError(t, c.FlagSet("test").Parse([]string{"-config", path}))

	require.False(t, log.IsDebug())
	_, err := c.Config()
	require.NoError(t, err)
	assert.True(t, log.IsDebug())
}

func TestErrorReportsToUI(t *testing.T) {
	c, ui := newTestCommand()

	code := c.Error(assert.AnError)
	assert.Equal(t, 1, code)
	assert.Contains(t, ui.ErrorWriter.String(), assert.AnError.Error())
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "empty means unset",
			value: "",
			want:  time.Time{},
		},
		{
			name:  "date only",
			value: "2024-03-01",
			want:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "RFC3339",
			value: "2024-03-01T10:30:00Z",
			want:  time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			name:    "garbage",
			value:   "next tuesday-ish",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTime(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}
