package unflatten

import (
	"fmt"
	"unicode"

	"github.com/flatjson/flatjson/errs"
	"github.com/flatjson/flatjson/flatten"
	"github.com/flatjson/flatjson/internal/options"
)

// KeyTransform rewrites a whole flattened key before it is parsed into path
// segments, typically undoing a transform that was applied while flattening.
type KeyTransform func(string) string

// Config carries the knobs for one unflattening pass. The separator and
// brackets must match the configuration the input was flattened with.
type Config struct {
	separator    rune
	leftBracket  rune
	rightBracket rune
	printMode    flatten.PrintMode
	transform    KeyTransform
}

func defaultConfig() Config {
	return Config{
		separator:    '.',
		leftBracket:  '[',
		rightBracket: ']',
		printMode:    flatten.PrintMinimal,
	}
}

func newConfig(opts ...Option) (Config, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Separator returns the configured key separator.
func (c Config) Separator() rune { return c.separator }

// Brackets returns the configured bracket pair.
func (c Config) Brackets() (left, right rune) { return c.leftBracket, c.rightBracket }

// PrintMode returns the configured print mode.
func (c Config) PrintMode() flatten.PrintMode { return c.printMode }

func (c *Config) setSeparator(sep rune) error {
	if sep == '"' || unicode.IsSpace(sep) {
		return fmt.Errorf("%w: %q", errs.ErrInvalidSeparator, sep)
	}
	if sep == c.leftBracket || sep == c.rightBracket {
		return fmt.Errorf("%w: %q is already used as a bracket", errs.ErrInvalidSeparator, sep)
	}
	c.separator = sep
	return nil
}

func (c *Config) setBrackets(left, right rune) error {
	if left == right {
		return fmt.Errorf("%w: left and right cannot both be %q", errs.ErrInvalidBrackets, left)
	}
	for _, br := range [2]rune{left, right} {
		if br == '"' || unicode.IsSpace(br) {
			return fmt.Errorf("%w: %q", errs.ErrInvalidBrackets, br)
		}
		if br == c.separator {
			return fmt.Errorf("%w: %q is already used as the separator", errs.ErrInvalidBrackets, br)
		}
	}
	c.leftBracket, c.rightBracket = left, right
	return nil
}

// Option configures an Unflattener at construction time.
type Option = options.Option[*Config]

// WithSeparator sets the character that joined named key segments when the
// input was flattened. The default is '.'.
func WithSeparator(sep rune) Option {
	return options.New(func(c *Config) error {
		return c.setSeparator(sep)
	})
}

// WithLeftAndRightBrackets sets the bracket pair wrapping array indexes and
// fenced names. The defaults are '[' and ']'.
func WithLeftAndRightBrackets(left, right rune) Option {
	return options.New(func(c *Config) error {
		return c.setBrackets(left, right)
	})
}

// WithPrintMode selects the whitespace layout used by Unflatten. The default
// is flatten.PrintMinimal.
func WithPrintMode(mode flatten.PrintMode) Option {
	return options.New(func(c *Config) error {
		if mode > flatten.PrintPretty {
			return fmt.Errorf("unknown print mode %d", mode)
		}
		c.printMode = mode
		return nil
	})
}

// WithKeyTransform rewrites every flattened key through fn before it is
// parsed. A nil fn restores the identity behavior.
func WithKeyTransform(fn KeyTransform) Option {
	return options.NoError(func(c *Config) {
		c.transform = fn
	})
}
