// Package config loads compiler-wide configuration from a nilva.yaml
// file, with environment variable overrides for the two settings that
// must also work without a config file present: the stdlib search
// directory and the colon-separated search path internal/loader
// consumes.
//
// Grounded on the teacher's internal/eval_harness/spec.go LoadSpec
// (os.ReadFile + yaml.Unmarshal + field validation) and its
// environment-driven stdlib path TODO in internal/loader/loader.go
// (AILANG_STDLIB_PATH), implemented here rather than left as a TODO.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the whole-process compiler configuration.
type Config struct {
	StdlibPath    string   `yaml:"stdlib_path"`
	SearchPath    []string `yaml:"search_path"`
	WarningBudget int      `yaml:"warning_budget"`
	TargetTriple  string   `yaml:"target_triple"`
}

const (
	envStdlib = "NILVA_STDLIB"
	envPath   = "NILVA_PATH"
)

// Default returns the configuration used when no nilva.yaml is present:
// stdlib resolved relative to the running executable, no extra search
// path entries, the spec's default warning budget.
func Default() *Config {
	return &Config{
		StdlibPath:    defaultStdlibPath(),
		WarningBudget: 20,
	}
}

// defaultStdlibPath locates the stdlib directory next to the running
// executable (e.g. <exe-dir>/stdlib), the fallback internal/loader uses
// when neither the config file nor NILVA_STDLIB name one explicitly.
func defaultStdlibPath() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Join(filepath.Dir(exe), "stdlib")
}

// Load reads path as YAML into a Config seeded with Default(), then
// applies NILVA_STDLIB/NILVA_PATH environment overrides on top — the
// same precedence order (file, then environment) the teacher's CLI
// flags-then-env pattern in cmd/ailang/main.go follows.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if cfg.WarningBudget <= 0 {
		cfg.WarningBudget = 20
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(envStdlib); v != "" {
		cfg.StdlibPath = v
	}
	if v := os.Getenv(envPath); v != "" {
		cfg.SearchPath = append(cfg.SearchPath, strings.Split(v, ":")...)
	}
}
