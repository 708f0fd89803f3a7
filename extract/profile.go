package extract

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/alecthomas/units"
	yaml "gopkg.in/yaml.v3"

	"github.com/moriyoshi/delimscan"
	"github.com/moriyoshi/delimscan/internal/expand"
	"github.com/moriyoshi/delimscan/internal/match"
	"github.com/moriyoshi/delimscan/internal/radix"
	"github.com/moriyoshi/delimscan/types"
)

// Profile is the scanner configuration used for every input.
type Profile struct {
	Mode types.Mode
	// Delimiter is a regular expression, or a literal string if Literal is
	// set. Empty means the default whitespace delimiter.
	Delimiter      string
	Literal        bool
	Radix          int
	GroupSeparator rune
	BufferSize     int
	MaxBufferSize  int
}

func DefaultProfile() Profile {
	return Profile{
		Mode:           types.ModeTokens,
		Radix:          radix.Decimal,
		GroupSeparator: ',',
	}
}

var lookupEnv = expand.Env(os.LookupEnv)

func stringValue(key string, v interface{}) (string, error) {
	switch v := v.(type) {
	case string:
		return expand.Expand(v, lookupEnv), nil
	case int, bool, float64:
		return fmt.Sprint(v), nil
	}
	return "", fmt.Errorf("key %q is not a string", key)
}

func intValue(key string, v interface{}) (int, error) {
	if i, ok := v.(int); ok {
		return i, nil
	}
	s, err := stringValue(key, v)
	if err != nil {
		return 0, err
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("key %q is not an integer: %w", key, err)
	}
	return i, nil
}

func boolValue(key string, v interface{}) (bool, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	s, err := stringValue(key, v)
	if err != nil {
		return false, err
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("key %q is not a boolean: %w", key, err)
	}
	return b, nil
}

// ParseSize accepts a plain byte count or a base-2 size such as "64KiB".
func ParseSize(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	n, err := units.ParseBase2Bytes(s)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func sizeValue(key string, v interface{}) (int, error) {
	if i, ok := v.(int); ok {
		return i, nil
	}
	s, err := stringValue(key, v)
	if err != nil {
		return 0, err
	}
	n, err := ParseSize(s)
	if err != nil {
		return 0, fmt.Errorf("key %q is not a size: %w", key, err)
	}
	return n, nil
}

// ParseGroupSeparator turns s into a separator rune. The empty string
// disables grouping.
func ParseGroupSeparator(s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("group separator must be a single character: %q", s)
	}
	return r, nil
}

// UnmarshalStructure applies the keys of v on top of the current profile.
// String values may refer to environment variables as ${env.NAME} or
// ${env.NAME:-default}.
func (p *Profile) UnmarshalStructure(v map[string]interface{}) error {
	for key, value := range v {
		var err error
		switch key {
		case "mode":
			var s string
			if s, err = stringValue(key, value); err == nil {
				p.Mode, err = types.ParseMode(s)
			}
		case "delimiter":
			p.Delimiter, err = stringValue(key, value)
		case "literal":
			p.Literal, err = boolValue(key, value)
		case "radix":
			p.Radix, err = intValue(key, value)
		case "group_separator":
			var s string
			if s, err = stringValue(key, value); err == nil {
				p.GroupSeparator, err = ParseGroupSeparator(s)
			}
		case "buffer_size":
			p.BufferSize, err = sizeValue(key, value)
		case "max_buffer_size":
			p.MaxBufferSize, err = sizeValue(key, value)
		default:
			err = fmt.Errorf("unknown key %q", key)
		}
		if err != nil {
			return err
		}
	}
	return p.Validate()
}

func (p *Profile) UnmarshalYAML(n *yaml.Node) error {
	var v map[string]interface{}
	if err := n.Decode(&v); err != nil {
		return err
	}
	return p.UnmarshalStructure(v)
}

func (p Profile) Validate() error {
	if _, err := types.ParseMode(string(p.Mode)); err != nil {
		return err
	}
	if !radix.Valid(p.Radix) {
		return fmt.Errorf("%w: %d", delimscan.ErrInvalidRadix, p.Radix)
	}
	if p.Delimiter != "" && !p.Literal {
		if _, err := match.Compile(p.Delimiter); err != nil {
			return fmt.Errorf("invalid delimiter: %w", err)
		}
	}
	if p.BufferSize < 0 || p.MaxBufferSize < 0 {
		return fmt.Errorf("buffer sizes must not be negative")
	}
	return nil
}

func LoadProfileYAML(b []byte) (Profile, error) {
	p := DefaultProfile()
	if err := yaml.Unmarshal(b, &p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func LoadProfileYAMLFile(path string) (Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}
	return LoadProfileYAML(b)
}

// Options translates the profile into scanner options.
func (p Profile) Options() []delimscan.OptionFunc {
	options := []delimscan.OptionFunc{
		delimscan.WithRadix(p.Radix),
		delimscan.WithGroupSeparator(p.GroupSeparator),
		delimscan.WithMaxBufferSize(p.MaxBufferSize),
	}
	if p.BufferSize > 0 {
		options = append(options, delimscan.WithBufferSize(p.BufferSize))
	}
	switch {
	case p.Delimiter == "":
	case p.Literal:
		options = append(options, delimscan.WithLiteralDelimiter(p.Delimiter))
	default:
		options = append(options, delimscan.WithDelimiterPattern(p.Delimiter))
	}
	return options
}

func (p Profile) NewScanner(r io.Reader, logger *slog.Logger) (*delimscan.Scanner, error) {
	return delimscan.NewScanner(r, append(p.Options(), delimscan.WithLogger(logger))...)
}
