// Package config implements vega's sectioned configuration store: a local
// per-repository file plus an optional global fallback. Remote-related
// settings are intentionally out of scope; this store only carries the
// keys vega itself reads (author identity and the like).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bekucukakin/vega/utils"
)

const FileName = "config"

// Config holds sectioned key/value settings, keyed as "section.key". A
// key with no section lives under the empty-string section.
type Config struct {
	sections map[string]map[string]string
	path     string
}

func newConfig(path string) *Config {
	return &Config{sections: make(map[string]map[string]string), path: path}
}

// LoadLocal reads the repository's local config file, tolerating its
// absence.
func LoadLocal(vegaDir string) (*Config, error) {
	return load(filepath.Join(vegaDir, FileName))
}

// LoadGlobal reads $HOME/.gitconfig, tolerating its absence or an unset
// HOME.
func LoadGlobal() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return newConfig(""), nil
	}
	return load(filepath.Join(home, ".gitconfig"))
}

func load(path string) (*Config, error) {
	cfg := newConfig(path)
	if path == "" || !utils.FileExists(path) {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	section := ""
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.TrimSpace(line[1 : len(line)-1])
			cfg.ensureSection(section)
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		cfg.ensureSection(section)
		cfg.sections[section][key] = value
	}
	return cfg, nil
}

func (c *Config) ensureSection(section string) {
	if _, ok := c.sections[section]; !ok {
		c.sections[section] = make(map[string]string)
	}
}

// Get looks up "section.key" (or a bare top-level "key" when section is
// "").
func (c *Config) Get(section, key string) (string, bool) {
	s, ok := c.sections[section]
	if !ok {
		return "", false
	}
	v, ok := s[key]
	return v, ok
}

// Set stores value under section/key.
func (c *Config) Set(section, key, value string) {
	c.ensureSection(section)
	c.sections[section][key] = value
}

// Save writes the config back to disk via atomic write-temp-then-rename.
func (c *Config) Save() error {
	if c.path == "" {
		return fmt.Errorf("config has no backing file path")
	}
	sections := make([]string, 0, len(c.sections))
	for s := range c.sections {
		sections = append(sections, s)
	}
	sort.Strings(sections)

	var b strings.Builder
	for _, section := range sections {
		keys := c.sections[section]
		if section != "" {
			fmt.Fprintf(&b, "[%s]\n", section)
		}
		names := make([]string, 0, len(keys))
		for k := range keys {
			names = append(names, k)
		}
		sort.Strings(names)
		for _, k := range names {
			fmt.Fprintf(&b, "\t%s = %s\n", k, keys[k])
		}
	}
	return utils.WriteFileAtomic(c.path, []byte(b.String()), 0644)
}

// Resolve merges local over global: a local value wins when both define
// the same section/key.
func Resolve(local, global *Config) *Config {
	merged := newConfig(local.path)
	for section, keys := range global.sections {
		merged.ensureSection(section)
		for k, v := range keys {
			merged.sections[section][k] = v
		}
	}
	for section, keys := range local.sections {
		merged.ensureSection(section)
		for k, v := range keys {
			merged.sections[section][k] = v
		}
	}
	return merged
}
