package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleINI = `
[aois]
left_x = 20
left_y = 165
left_w = 8
left_h = 150
middle_x = 316
middle_y = 165
middle_w = 8
middle_h = 150
right_x = 612
right_y = 165
right_w = 8
right_h = 150

[stream]
fifo_path = /tmp/corridor-entry.fifo

[aggregator]
url = http://aggregator.local:8080/update_passed
role = entry

[telemetry]
broker_url = tcp://localhost:1883
topic = parking/counter
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "corridor.ini")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadParsesAllSections(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleINI))
	require.NoError(t, err)

	assert.Equal(t, 20.0, cfg.AOIs.Left.X)
	assert.Equal(t, 612.0, cfg.AOIs.Right.X)
	assert.Equal(t, "/tmp/corridor-entry.fifo", cfg.StreamPath)
	assert.Equal(t, "entry", cfg.Role)
	assert.Equal(t, "http://aggregator.local:8080/update_passed", cfg.AggregatorURL)
	assert.Equal(t, "tcp://localhost:1883", cfg.TelemetryBroker)
}

func TestLoadRejectsMissingAOI(t *testing.T) {
	_, err := Load(writeConfig(t, `
[stream]
fifo_path = /tmp/x.fifo
[aggregator]
url = http://x
role = entry
`))
	assert.Error(t, err)
}

func TestLoadRejectsBadRole(t *testing.T) {
	_, err := Load(writeConfig(t, sampleINI+"\n[aggregator]\nrole = sideways\n"))
	assert.Error(t, err)
}

func TestLoadAllowsMissingTelemetrySection(t *testing.T) {
	without := `
[aois]
left_x = 20
left_y = 165
left_w = 8
left_h = 150
middle_x = 316
middle_y = 165
middle_w = 8
middle_h = 150
right_x = 612
right_y = 165
right_w = 8
right_h = 150

[stream]
fifo_path = /tmp/x.fifo

[aggregator]
url = http://x
role = exit
`
	cfg, err := Load(writeConfig(t, without))
	require.NoError(t, err)
	assert.Empty(t, cfg.TelemetryBroker)
}
