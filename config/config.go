package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ax25modem/ax25"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the program looks for its configuration.
const DefaultPath = "config.toml"

// Config holds all application configuration
type Config struct {
	Station   StationConfig   `toml:"station" yaml:"station"`
	Packet    PacketConfig    `toml:"packet" yaml:"packet"`
	Interface InterfaceConfig `toml:"interface" yaml:"interface"`
	Display   DisplayConfig   `toml:"display" yaml:"display"`
	Log       LogConfig       `toml:"log" yaml:"log"`
}

// StationConfig holds settings specific to the user's station
type StationConfig struct {
	Callsign string `toml:"callsign" yaml:"callsign"` // CALL or CALL-SSID
}

// PacketConfig describes the packets the station composes.
type PacketConfig struct {
	Destination   string   `toml:"destination" yaml:"destination"`
	Digipeaters   []string `toml:"digipeaters" yaml:"digipeaters"`
	Payload       string   `toml:"payload" yaml:"payload"` // %d is replaced by the packet number
	Control       byte     `toml:"control" yaml:"control"`
	PID           byte     `toml:"pid" yaml:"pid"`
	ControlFields bool     `toml:"control_fields" yaml:"control_fields"` // emit control and PID in frames
}

// InterfaceConfig selects where built frames are sent.
type InterfaceConfig struct {
	Type   string `toml:"type" yaml:"type"`     // "none" or "kiss"
	Device string `toml:"device" yaml:"device"` // serial device path, or host:port for TCP
	Baud   int    `toml:"baud" yaml:"baud"`
	Port   byte   `toml:"port" yaml:"port"` // KISS port number
}

// DisplayConfig controls the diagnostic printer.
type DisplayConfig struct {
	Timestamp string `toml:"timestamp" yaml:"timestamp"` // strftime pattern, empty for none
	Color     bool   `toml:"color" yaml:"color"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// Default returns the configuration used when no file is present. It
// reproduces the demonstration station: VU3EM-1 calling CQ through nine
// relays, one more than a frame can carry.
func Default() Config {
	digis := make([]string, 0, ax25.MaxDigipeaters+1)
	for j := 0; j <= ax25.MaxDigipeaters; j++ {
		digis = append(digis, fmt.Sprintf("DIGI%d-%d", j+1, j))
	}

	return Config{
		Station: StationConfig{Callsign: "VU3EM-1"},
		Packet: PacketConfig{
			Destination: "CQ",
			Digipeaters: digis,
			Payload:     "THIS IS PACKET %d",
			Control:     ax25.DefaultControl,
			PID:         ax25.DefaultPID,
		},
		Interface: InterfaceConfig{Type: "none", Baud: 9600},
		Display:   DisplayConfig{Color: true},
		Log:       LogConfig{Level: "info"},
	}
}

// LoadConfig reads the configuration from the specified path on top of
// Default. Files ending in .yaml or .yml are read as YAML, anything else
// as TOML.
func LoadConfig(path string) (Config, error) {
	conf := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return conf, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &conf)
	default:
		err = toml.Unmarshal(data, &conf)
	}
	if err != nil {
		return conf, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := conf.Validate(); err != nil {
		return conf, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return conf, nil
}

// Validate checks that every address in the configuration parses and the
// interface type is known.
func (c Config) Validate() error {
	if _, _, err := ax25.ParseAddress(c.Station.Callsign); err != nil {
		return fmt.Errorf("station callsign: %w", err)
	}
	if _, _, err := ax25.ParseAddress(c.Packet.Destination); err != nil {
		return fmt.Errorf("packet destination: %w", err)
	}
	for i, digi := range c.Packet.Digipeaters {
		if _, _, err := ax25.ParseAddress(digi); err != nil {
			return fmt.Errorf("digipeater %d: %w", i, err)
		}
	}

	switch strings.ToUpper(c.Interface.Type) {
	case "", "NONE":
	case "KISS":
		if c.Interface.Device == "" {
			return fmt.Errorf("interface device is required for KISS")
		}
	default:
		return fmt.Errorf("unknown interface type: %s", c.Interface.Type)
	}
	return nil
}
