// Package config loads qmlfmt settings from a YAML file and the environment.
//
// Precedence, lowest first: Defaults, the config file, environment
// variables, and finally command line flags applied by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/grindlemire/qmlfmt/pkg/formatter"
)

// DefaultFile is the config file looked up in the working directory when no
// path is given.
const DefaultFile = ".qmlfmt.yaml"

// Config holds every qmlfmt setting.
type Config struct {
	IndentWidth   int      `yaml:"indent_width"`
	Delimiter     string   `yaml:"delimiter"`
	BlankPolicy   string   `yaml:"blank_policy"`
	ClampNegative bool     `yaml:"clamp_negative"`
	Extensions    []string `yaml:"extensions"`
	Jobs          int      `yaml:"jobs"`
	LogFile       string   `yaml:"log_file"`

	// IndentWidthSet records that IndentWidth came from the file, the
	// environment or a flag rather than Defaults.
	IndentWidthSet bool `yaml:"-"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	opts := formatter.DefaultOptions()
	return Config{
		IndentWidth: opts.IndentWidth,
		Delimiter:   string(opts.Delimiter),
		BlankPolicy: opts.BlankPolicy.String(),
		Extensions:  []string{".qml"},
		Jobs:        runtime.NumCPU(),
	}
}

// Load reads the config file at path on top of Defaults. An empty path
// means DefaultFile, which is optional; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := decode(bytes.NewReader(data), &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if hasKey(data, "indent_width") {
		cfg.IndentWidthSet = true
	}
	return cfg, nil
}

func hasKey(data []byte, key string) bool {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return false
	}
	_, ok := raw[key]
	return ok
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// EnvOverlay applies QMLFMT_* variables from environ (KEY=VALUE pairs, as
// returned by os.Environ) to cfg.
func EnvOverlay(cfg Config, environ []string) (Config, error) {
	env := make(map[string]string)
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, "QMLFMT_") {
			env[k] = v
		}
	}

	if v, ok := env["QMLFMT_INDENT_WIDTH"]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return cfg, fmt.Errorf("QMLFMT_INDENT_WIDTH: %w", err)
		}
		cfg.IndentWidth = n
		cfg.IndentWidthSet = true
	}
	if v, ok := env["QMLFMT_DELIMITER"]; ok {
		cfg.Delimiter = v
	}
	if v, ok := env["QMLFMT_BLANK_POLICY"]; ok {
		cfg.BlankPolicy = strings.TrimSpace(v)
	}
	if v, ok := env["QMLFMT_CLAMP_NEGATIVE"]; ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return cfg, fmt.Errorf("QMLFMT_CLAMP_NEGATIVE: %w", err)
		}
		cfg.ClampNegative = b
	}
	if v, ok := env["QMLFMT_EXTENSIONS"]; ok {
		cfg.Extensions = splitList(v)
	}
	if v, ok := env["QMLFMT_JOBS"]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return cfg, fmt.Errorf("QMLFMT_JOBS: %w", err)
		}
		cfg.Jobs = n
	}
	if v, ok := env["QMLFMT_LOG"]; ok {
		cfg.LogFile = strings.TrimSpace(v)
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks the settings that FormatterOptions does not cover.
func (c Config) Validate() error {
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if len(c.Extensions) == 0 {
		return errors.New("at least one file extension is required")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	_, err := c.FormatterOptions()
	return err
}

// FormatterOptions converts the config into validated formatter options.
func (c Config) FormatterOptions() (formatter.Options, error) {
	opts := formatter.DefaultOptions()
	opts.IndentWidth = c.IndentWidth
	opts.ClampNegative = c.ClampNegative

	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return opts, fmt.Errorf("%w: delimiter must be a single character, got %q", formatter.ErrInvalidOptions, c.Delimiter)
	}
	opts.Delimiter, _ = utf8.DecodeRuneInString(c.Delimiter)

	policy, err := formatter.ParseBlankPolicy(c.BlankPolicy)
	if err != nil {
		return opts, err
	}
	opts.BlankPolicy = policy

	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// MatchesExtension reports whether path ends with one of the configured
// extensions.
func (c Config) MatchesExtension(path string) bool {
	for _, ext := range c.Extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
