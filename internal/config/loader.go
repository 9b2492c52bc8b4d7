package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const memoryFile = "memory.yaml"

// LoadMemory loads the memory game configuration.
// Search order: customPath -> ~/.arcade/configs/memory.yaml -> ./configs/memory.yaml -> embedded default.
// Values missing from a file keep their defaults.
func LoadMemory(customPath string) (MemoryConfig, error) {
	if customPath != "" {
		cfg, err := readMemory(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	candidates := []string{
		userConfigPath(memoryFile),
		filepath.Join("configs", memoryFile),
	}
	for _, path := range candidates {
		if path == "" {
			continue
		}
		cfg, err := readMemory(path)
		if err == nil && cfg.Validate() == nil {
			return cfg, nil
		}
	}

	return embeddedMemory(), nil
}

// ParseMemory decodes YAML on top of the defaults.
func ParseMemory(data []byte) (MemoryConfig, error) {
	cfg := embeddedMemory()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func readMemory(path string) (MemoryConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return MemoryConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := ParseMemory(data)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func embeddedMemory() MemoryConfig {
	var cfg MemoryConfig
	if err := yaml.Unmarshal(defaultMemoryYAML, &cfg); err != nil || cfg.Validate() != nil {
		return DefaultMemoryConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ResolveMemoryPath returns the file LoadMemory would read, or empty when the
// embedded default is in use. Watchers use it to know what to observe.
func ResolveMemoryPath(customPath string) string {
	if customPath != "" {
		return customPath
	}
	for _, path := range []string{userConfigPath(memoryFile), filepath.Join("configs", memoryFile)} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
