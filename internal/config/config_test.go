package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Success(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 8080
read_timeout = 15
write_timeout = 15
idle_timeout = 60
shutdown_timeout = 10

[database]
host = "localhost"
port = 5432
user = "booking"
password = "secret"
dbname = "mst_booking"
sslmode = "disable"
max_open_conns = 25
max_idle_conns = 5
conn_max_lifetime = 300

[logs]
file = "logs/app.log"
level = "info"

[metrics]
enabled = true
path = "/metrics"
service_name = "mst-booking-service"

[telegram]
token = "12345:token"
chat_id = 77

[worker]
completion_schedule = "@every 10m"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "host=localhost port=5432 user=booking password=secret dbname=mst_booking sslmode=disable",
		cfg.Database.DSN())
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, int64(77), cfg.Telegram.ChatID)
	assert.Equal(t, "@every 10m", cfg.Worker.CompletionSchedule)
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "no http port",
			content: `
[database]
host = "localhost"
dbname = "mst_booking"
`,
		},
		{
			name: "no database host",
			content: `
[server]
http_port = 8080

[database]
dbname = "mst_booking"
`,
		},
		{
			name: "metrics enabled without path",
			content: `
[server]
http_port = 8080

[database]
host = "localhost"
dbname = "mst_booking"

[metrics]
enabled = true
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("does-not-exist.toml")
	assert.Error(t, err)
}
