/* Copyright © 2024 Jeff Berkowitz (pdxjjb@gmail.com) - Affero GPL v3 */

// Package config holds the compiler's tunable constants: lexer buffer
// size, maximum token length, register pool shape, and the output file
// name. Defaults match the reference design (spec.md §4.1, §4.6); an
// optional tsc.toml overrides them, grounded on
// lookbusy1344-arm_emulator/config/config.go's TOML-backed settings file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds every tunable the lexer and register allocator consult at
// construction time, plus the output file name the CLI writes to.
type Config struct {
	// BufferSize is the size in bytes of each of the lexer's two
	// alternating read buffers, B in spec.md §4.1. The last byte of each
	// buffer is reserved as the sentinel, so B-1 bytes are read per fill.
	BufferSize int `toml:"buffer_size"`

	// MaxTokenSize bounds the scratch buffer used to re-match a token
	// whose lexeme straddles a buffer boundary.
	MaxTokenSize int `toml:"max_token_size"`

	// RegisterCount is R in spec.md §4.6: the size of the register pool.
	RegisterCount int `toml:"register_count"`

	// ReservedCount is K in spec.md §4.6: how many low-indexed registers
	// are permanently reserved (the NULL/zero register, by convention
	// register 0). The return-value register is reserved separately by
	// name, not by pool index — see translate.ReturnRegister.
	ReservedCount int `toml:"reserved_count"`

	// OutputName is the fixed assembly output file name (spec.md §6).
	OutputName string `toml:"output_name"`
}

// Default returns the hard-coded defaults used when no tsc.toml is
// present or a field is left unset in one that is.
func Default() Config {
	return Config{
		BufferSize:    4096,
		MaxTokenSize:  256,
		RegisterCount: 16,
		ReservedCount: 1,
		OutputName:    "output.a",
	}
}

// Load reads path as a TOML document and overlays it onto Default(). A
// missing file is not an error: the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decoding %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports a descriptive error if the configuration is internally
// inconsistent (e.g. more reserved registers than the pool holds).
func (c Config) Validate() error {
	if c.RegisterCount <= 0 {
		return fmt.Errorf("config: register_count must be positive, got %d", c.RegisterCount)
	}
	if c.ReservedCount < 0 || c.ReservedCount >= c.RegisterCount {
		return fmt.Errorf("config: reserved_count %d out of range for register_count %d", c.ReservedCount, c.RegisterCount)
	}
	if c.BufferSize < 16 {
		return fmt.Errorf("config: buffer_size must be at least 16, got %d", c.BufferSize)
	}
	if c.MaxTokenSize <= 0 || c.MaxTokenSize >= c.BufferSize {
		return fmt.Errorf("config: max_token_size must be positive and smaller than buffer_size")
	}
	return nil
}
