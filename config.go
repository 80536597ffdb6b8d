package main

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

func defaultConfig() Config {
	return Config{
		Addr:        defaultAddr,
		MaxFiles:    defaultMaxFiles,
		MaxPages:    defaultMaxPages,
		MaxUploadMB: defaultMaxUploadMB,
	}
}

// loadConfig merges an optional YAML file over the defaults. A
// missing file is only an error when the path was given explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}

	if fileCfg.Addr != "" {
		cfg.Addr = fileCfg.Addr
	}
	if fileCfg.MaxFiles > 0 {
		cfg.MaxFiles = fileCfg.MaxFiles
	}
	if fileCfg.MaxPages > 0 {
		cfg.MaxPages = fileCfg.MaxPages
	}
	if fileCfg.MaxUploadMB > 0 {
		cfg.MaxUploadMB = fileCfg.MaxUploadMB
	}
	return cfg, nil
}

func (c Config) maxUploadBytes() int64 {
	return int64(c.MaxUploadMB) * 1024 * 1024
}
