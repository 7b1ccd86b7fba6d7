// SPDX-FileCopyrightText: © 2025 Olivier Meunier <olivier@neokraft.net>
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package configs holds the configuration of every command. Values come
// from an optional TOML file, then from AEOPRESS_* environment variables,
// the latter always winning.
package configs

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/komkom/toml"
)

type config struct {
	Main    configMain    `json:"main"`
	Convert configConvert `json:"convert"`
	Server  configServer  `json:"server"`
	Site    configSite    `json:"site"`
}

type configMain struct {
	LogLevel slog.Level `json:"log_level" env:"LOG_LEVEL"`
	DevMode  bool       `json:"dev_mode" env:"DEV_MODE"`
}

type configConvert struct {
	OutputDir string `json:"output_dir" env:"OUTPUT_DIR"`
	Markdown  bool   `json:"markdown" env:"MARKDOWN"`
	Compress  bool   `json:"compress" env:"COMPRESS"`
	Workers   int    `json:"workers" env:"WORKERS"`
}

type configServer struct {
	Host string `json:"host" env:"SERVER_HOST"`
	Port int    `json:"port" env:"SERVER_PORT"`
}

type configSite struct {
	Name    string `json:"name" env:"SITE_NAME"`
	BaseURL string `json:"base_url" env:"SITE_BASE_URL"`
	Lang    string `json:"lang" env:"SITE_LANG"`
}

// Config is the global configuration. Commands read it after
// LoadConfiguration ran.
var Config = config{
	Main: configMain{
		LogLevel: slog.LevelInfo,
	},
	Server: configServer{
		Host: "127.0.0.1",
		Port: 8004,
	},
	Site: configSite{
		Name: "AEOPress",
		Lang: "en",
	},
}

// LoadConfiguration fills Config from the given TOML file, when not empty,
// then applies environment overrides. A missing explicit file is an error;
// an empty filename only loads the environment.
func LoadConfiguration(filename string) error {
	if filename != "" {
		fd, err := os.Open(filename)
		if err != nil {
			return err
		}
		defer fd.Close() //nolint:errcheck

		dec := json.NewDecoder(toml.New(fd))
		if err := dec.Decode(&Config); err != nil {
			return fmt.Errorf("configuration file %s: %w", filename, err)
		}
	}

	return env.ParseWithOptions(&Config, env.Options{Prefix: "AEOPRESS_"})
}
