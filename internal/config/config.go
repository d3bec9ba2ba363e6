// Package config handles bridge configuration. A YAML file at the path the
// caller passes to Load may set base values; AEROFLY_BRIDGE_* environment variables
// override it, optionally sourced from a .env file. Everything is read
// once at init time.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every bridge environment variable.
const EnvPrefix = "AEROFLY_BRIDGE_"

// Config is the root configuration for the bridge.
type Config struct {
	TCPPort     int    `yaml:"tcp_port"`
	CommandPort int    `yaml:"command_port"`
	WSEnable    bool   `yaml:"ws_enable"`
	WSPort      int    `yaml:"ws_port"`
	BroadcastMS int    `yaml:"broadcast_ms"`
	SHMName     string `yaml:"shm_name"`
	OffsetsPath string `yaml:"offsets_path"`
	LogLevel    string `yaml:"log_level"`
	LogDir      string `yaml:"log_dir"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		TCPPort:     12345,
		CommandPort: 12346,
		WSEnable:    true,
		WSPort:      8765,
		BroadcastMS: 20,
		SHMName:     "AeroflyBridgeData",
		OffsetsPath: "AeroflyBridge_offsets.json",
		LogLevel:    "info",
		LogDir:      "",
	}
}

// Load builds the effective configuration: defaults, then the YAML file
// at path if it exists, then environment overrides. A missing file is not
// an error; a malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Optional file.
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config YAML %s: %w", path, err)
			}
		}
	}

	// A .env in the working directory feeds the same overrides.
	_ = godotenv.Load()

	cfg.applyEnv()
	cfg.clamp()
	return cfg, nil
}

func (c *Config) applyEnv() {
	envInt("TCP_PORT", &c.TCPPort)
	envInt("COMMAND_PORT", &c.CommandPort)
	envBool("WS_ENABLE", &c.WSEnable)
	envInt("WS_PORT", &c.WSPort)
	envInt("BROADCAST_MS", &c.BroadcastMS)
	envString("SHM_NAME", &c.SHMName)
	envString("OFFSETS_PATH", &c.OffsetsPath)
	envString("LOG_LEVEL", &c.LogLevel)
	envString("LOG_DIR", &c.LogDir)
}

// clamp pulls out-of-range values back to safe defaults.
func (c *Config) clamp() {
	if c.BroadcastMS < 5 {
		c.BroadcastMS = 5
	}
	if c.TCPPort < 1024 || c.TCPPort > 65535 {
		c.TCPPort = 12345
	}
	if c.CommandPort < 1024 || c.CommandPort > 65535 {
		c.CommandPort = 12346
	}
	if c.WSPort < 1024 || c.WSPort > 65535 {
		c.WSPort = 8765
	}
	if c.SHMName == "" {
		c.SHMName = "AeroflyBridgeData"
	}
	if c.OffsetsPath == "" {
		c.OffsetsPath = "AeroflyBridge_offsets.json"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func envString(key string, dst *string) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		*dst = v
	}
}

func envInt(key string, dst *int) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envBool(key string, dst *bool) {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		switch v {
		case "1", "true", "yes", "on":
			*dst = true
		case "0", "false", "no", "off":
			*dst = false
		}
	}
}
