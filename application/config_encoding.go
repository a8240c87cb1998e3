package application

import (
	"bytes"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/msgbox-sys/msgbox-go/utils"
)

// ConfigLoader provides an interface for implementing
// different application configuration encodings.
type ConfigLoader interface {
	Encode(conf AppConfig) error
	Decode(conf AppConfig) error
}

// TomlLoader implements a ConfigLoader for toml-encoded application
// configurations.
type TomlLoader struct{}

var _ ConfigLoader = (*TomlLoader)(nil)

// Encode saves the given configuration conf in toml encoding.
// If there is any encoding or IO error, Encode() returns an error.
func (ld *TomlLoader) Encode(conf AppConfig) error {
	var confBuf bytes.Buffer

	e := toml.NewEncoder(&confBuf)
	if err := e.Encode(conf); err != nil {
		return err
	}
	return utils.WriteFile(conf.GetPath(), confBuf.Bytes(), 0644)
}

// Decode reads an application configuration from the given toml-encoded
// file. If there is any decoding error, Decode() returns an error.
func (ld *TomlLoader) Decode(conf AppConfig) error {
	if _, err := toml.DecodeFile(conf.GetPath(), conf); err != nil {
		return fmt.Errorf("Failed to load config: %v", err)
	}
	return nil
}
