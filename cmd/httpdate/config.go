package main

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Listen  string `yaml:"listen"`
	DB      string `yaml:"db"`
	Pivot   int    `yaml:"pivot"`
	Shared  *bool  `yaml:"shared"`
	LogFile string `yaml:"logFile"`
}

func getConfig(filename string) (Config, error) {
	var config Config
	configBytes, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = yaml.Unmarshal(configBytes, &config)
	return config, err
}

// shared defaults to true: the server answers as an intermediary cache would.
func (c Config) shared() bool {
	return c.Shared == nil || *c.Shared
}
