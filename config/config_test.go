package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	conf := Default()
	require.NoError(t, conf.Validate())
	assert.Equal(t, "VU3EM-1", conf.Station.Callsign)
	assert.Equal(t, "CQ", conf.Packet.Destination)
	assert.Len(t, conf.Packet.Digipeaters, 9)
	assert.Equal(t, "DIGI1-0", conf.Packet.Digipeaters[0])
	assert.Equal(t, "DIGI9-8", conf.Packet.Digipeaters[8])
	assert.Equal(t, byte(0x30), conf.Packet.Control)
	assert.Equal(t, byte(0xF0), conf.Packet.PID)
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[station]
callsign = "N0CALL-7"

[packet]
destination = "APRS"
digipeaters = ["WIDE1-1", "WIDE2-1"]
control = 3
control_fields = true

[interface]
type = "kiss"
device = "localhost:8001"

[display]
timestamp = "%H:%M:%S"
color = false

[log]
level = "debug"
`)

	conf, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "N0CALL-7", conf.Station.Callsign)
	assert.Equal(t, "APRS", conf.Packet.Destination)
	assert.Equal(t, []string{"WIDE1-1", "WIDE2-1"}, conf.Packet.Digipeaters)
	assert.Equal(t, byte(3), conf.Packet.Control)
	assert.True(t, conf.Packet.ControlFields)
	assert.Equal(t, "kiss", conf.Interface.Type)
	assert.Equal(t, "localhost:8001", conf.Interface.Device)
	assert.Equal(t, 9600, conf.Interface.Baud, "unset keys keep their defaults")
	assert.Equal(t, "%H:%M:%S", conf.Display.Timestamp)
	assert.False(t, conf.Display.Color)
	assert.Equal(t, "debug", conf.Log.Level)
	// Untouched section keeps its default payload
	assert.Equal(t, "THIS IS PACKET %d", conf.Packet.Payload)
	assert.Equal(t, byte(0xF0), conf.Packet.PID)
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
station:
  callsign: VU3EM
packet:
  destination: CQ-2
  digipeaters: [DIGI1-1]
  payload: hello
interface:
  type: none
`)

	conf, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "VU3EM", conf.Station.Callsign)
	assert.Equal(t, "CQ-2", conf.Packet.Destination)
	assert.Equal(t, []string{"DIGI1-1"}, conf.Packet.Digipeaters)
	assert.Equal(t, "hello", conf.Packet.Payload)
}

func TestLoadMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadInvalid(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"syntax", "[station\ncallsign = 1"},
		{"callsign", "[station]\ncallsign = \"N0CALL-99\""},
		{"digipeater", "[packet]\ndigipeaters = [\"\"]"},
		{"interface", "[interface]\ntype = \"agwpe\""},
		{"kiss without device", "[interface]\ntype = \"kiss\""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeFile(t, "config.toml", tc.content))
			assert.Error(t, err)
		})
	}
}
