// Package config collects server settings from the environment and
// optionally loads a company profile override from a YAML file.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/oliver/market-intel/internal/intel"
)

type Config struct {
	Port        string
	DataDir     string
	CachePath   string
	CORSOrigins []string
	ProfilePath string
}

// FromEnv reads settings from the environment, falling back to defaults
// suitable for local development.
func FromEnv() Config {
	cfg := Config{
		Port:        os.Getenv("PORT"),
		DataDir:     os.Getenv("DATA_DIR"),
		CachePath:   os.Getenv("CACHE_PATH"),
		ProfilePath: os.Getenv("PROFILE_PATH"),
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.CachePath == "" {
		cfg.CachePath = "sessions.db"
	}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
	return cfg
}

type profileFile struct {
	Profile     *intel.CompanyProfile     `yaml:"profile"`
	Competitors intel.CompetitorDirectory `yaml:"competitors"`
}

// LoadProfile returns the company profile and competitor directory,
// applying overrides from the YAML file at path. An empty path means
// the built-in defaults.
func LoadProfile(path string) (intel.CompanyProfile, intel.CompetitorDirectory, error) {
	profile := intel.DefaultProfile()
	competitors := intel.DefaultCompetitors()
	if path == "" {
		return profile, competitors, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return profile, competitors, fmt.Errorf("read profile %s: %w", path, err)
	}
	var f profileFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return profile, competitors, fmt.Errorf("decode profile %s: %w", path, err)
	}
	if f.Profile != nil {
		profile = *f.Profile
	}
	if f.Competitors != nil {
		competitors = f.Competitors
	}
	return profile, competitors, nil
}
