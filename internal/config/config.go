package config

import (
	"errors"
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag names shared by the command line and the viper keys.
const (
	KeyInput  = "in"
	KeyOutput = "out"
	KeyUseLLM = "use_llm"
)

var (
	ErrMissingInput  = errors.New("input path is required")
	ErrMissingOutput = errors.New("output directory is required")
)

type Config struct {
	// Path to the UTF-8 text file to process.
	InputPath string
	// Directory receiving the artifacts; created if missing.
	OutputDir string
	// Raw enrichment flag as given. Only "1" enables it.
	UseLLMRaw string
}

// Load reads the run configuration from flags. Environment variables and config files are
// deliberately not consulted.
func Load(flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetDefault(KeyUseLLM, "0")
	for _, key := range []string{KeyInput, KeyOutput, KeyUseLLM} {
		f := flags.Lookup(key)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return Config{}, fmt.Errorf("bind flag %s: %w", key, err)
		}
	}

	return Config{
		InputPath: v.GetString(KeyInput),
		OutputDir: v.GetString(KeyOutput),
		UseLLMRaw: v.GetString(KeyUseLLM),
	}, nil
}

func (c Config) Validate() error {
	if c.InputPath == "" {
		return ErrMissingInput
	}
	if c.OutputDir == "" {
		return ErrMissingOutput
	}
	return nil
}

// UseLLM reports whether enrichment was requested. It never triggers any enrichment.
func (c Config) UseLLM() bool {
	return c.UseLLMRaw == "1"
}

// UseLLMFlag is UseLLM as the 0/1 value written into the artifacts.
func (c Config) UseLLMFlag() int {
	if c.UseLLM() {
		return 1
	}
	return 0
}

// Mode names the processing mode implied by the enrichment flag.
func (c Config) Mode() string {
	if c.UseLLM() {
		return "hybrid"
	}
	return "deterministic"
}
