// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	qd "github.com/qdlang/quarkdown"
	"github.com/qdlang/quarkdown/stdlib"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const defaultConfigFile = ".qd.yaml"

// Config is the content of a .qd.yaml file.
type Config struct {
	Flavor       string    `yaml:"flavor"`
	Strict       bool      `yaml:"strict"`
	Locale       string    `yaml:"locale,omitempty"`
	Root         string    `yaml:"root,omitempty"`
	Localization []string  `yaml:"localization,omitempty"`
	Log          LogConfig `yaml:"log"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func defaultConfig() *Config {
	return &Config{
		Flavor: "quarkdown",
		Strict: true,
		Log:    LogConfig{Level: "warn"},
	}
}

// loadConfig reads the configuration at path.
// A missing file yields the default configuration.
func loadConfig(path string) (*Config, error) {
	c := defaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if qd.FlavorByName(c.Flavor) == nil {
		return nil, fmt.Errorf("%s: unknown flavor %q", path, c.Flavor)
	}
	return c, nil
}

func (c *Config) logger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if c.Log.Development {
		zc = zap.NewDevelopmentConfig()
	}
	if c.Log.Level != "" {
		level, err := zap.ParseAtomicLevel(c.Log.Level)
		if err != nil {
			return nil, err
		}
		zc.Level = level
	}
	return zc.Build()
}

// options returns the pipeline options for compiling the documents
// in directory dir.
func (c *Config) options(dir string) ([]qd.Option, error) {
	root := dir
	if c.Root != "" {
		root = c.Root
	}
	opts := []qd.Option{
		qd.WithFlavor(qd.FlavorByName(c.Flavor)),
		qd.WithLibraries(stdlib.Library()),
		qd.WithStrict(c.Strict),
		qd.WithLogger(logger),
		qd.WithFileSystem(os.DirFS(root)),
	}
	if c.Locale != "" {
		tag, err := language.Parse(c.Locale)
		if err != nil {
			return nil, fmt.Errorf("locale %q: %v", c.Locale, err)
		}
		opts = append(opts, qd.WithLocale(tag))
	}
	for _, file := range c.Localization {
		data, err := os.ReadFile(filepath.Join(root, file))
		if err != nil {
			return nil, err
		}
		l, err := qd.ParseLocalization(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file, err)
		}
		opts = append(opts, qd.WithLocalization(l))
	}
	return opts, nil
}
