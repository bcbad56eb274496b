package emu

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/kirsle/configdir"

	"ricoh/emu/log"
)

type Config struct {
	Emulation EmulationConfig `toml:"emulation"`
}

type EmulationConfig struct {
	// IllegalOpcodes selects what an undocumented opcode does:
	// "strict" stops execution, "nop" runs it as a 2-cycle NOP.
	IllegalOpcodes string `toml:"illegal_opcodes"`
}

func defaultConfig() Config {
	return Config{
		Emulation: EmulationConfig{
			IllegalOpcodes: "strict",
		},
	}
}

var ConfigDir string = sync.OnceValue(func() string {
	dir := configdir.LocalConfig("ricoh")
	if err := configdir.MakePath(dir); err != nil {
		log.ModEmu.Fatalf("failed to create directory %s: %v", dir, err)
	}
	return dir
})()

const cfgFilename = "config.toml"

// LoadConfigOrDefault loads the configuration from the config
// directory, or provides the default one.
func LoadConfigOrDefault() Config {
	cfg := defaultConfig()
	_, err := toml.DecodeFile(filepath.Join(ConfigDir, cfgFilename), &cfg)
	if err != nil {
		return defaultConfig()
	}
	return cfg
}

// SaveConfig into the config directory.
func SaveConfig(cfg Config) error {
	buf, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(ConfigDir, cfgFilename), buf, 0644)
}

// Apply sets the machine up according to the configuration.
func (nes *NES) Apply(cfg Config) {
	nes.CPU.IllegalNOP = cfg.Emulation.IllegalOpcodes == "nop"
}
