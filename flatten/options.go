package flatten

import (
	"errors"
	"fmt"

	"github.com/iancoleman/strcase"

	"github.com/flatjson/flatjson/escape"
	"github.com/flatjson/flatjson/internal/options"
)

// Option configures a Flattener at construction time.
type Option = options.Option[*Config]

// WithFlattenMode selects how arrays are traversed. The default is
// ModeNormal.
func WithFlattenMode(mode Mode) Option {
	return options.New(func(c *Config) error {
		if mode > ModeKeepArrays {
			return fmt.Errorf("unknown flatten mode %d", mode)
		}
		c.mode = mode
		return nil
	})
}

// WithPrintMode selects the whitespace layout used by Flatten. The default is
// PrintMinimal.
func WithPrintMode(mode PrintMode) Option {
	return options.New(func(c *Config) error {
		if mode > PrintPretty {
			return fmt.Errorf("unknown print mode %d", mode)
		}
		c.printMode = mode
		return nil
	})
}

// WithSeparator sets the character joining named key segments. The default is
// '.'. The separator may not be whitespace, a double quote, or either
// bracket; violations fail with errs.ErrInvalidSeparator.
func WithSeparator(sep rune) Option {
	return options.New(func(c *Config) error {
		return c.setSeparator(sep)
	})
}

// WithLeftAndRightBrackets sets the bracket pair wrapping array indexes and
// fenced names. The defaults are '[' and ']'. The brackets must differ from
// each other and from the separator, and may not be whitespace or a double
// quote; violations fail with errs.ErrInvalidBrackets.
func WithLeftAndRightBrackets(left, right rune) Option {
	return options.New(func(c *Config) error {
		return c.setBrackets(left, right)
	})
}

// WithStringEscapePolicy sets the policy escaping member names and string
// values. The default is escape.Default.
func WithStringEscapePolicy(p escape.Policy) Option {
	return options.New(func(c *Config) error {
		if p == nil {
			return errors.New("nil escape policy")
		}
		c.policy = p
		return nil
	})
}

// WithKeyTransform rewrites every object member name through fn before key
// encoding. A nil fn restores the identity behavior.
func WithKeyTransform(fn KeyTransform) Option {
	return options.NoError(func(c *Config) {
		c.transform = fn
	})
}

// WithRenderer replaces the renderer used by Flatten.
func WithRenderer(r Renderer) Option {
	return options.New(func(c *Config) error {
		if r == nil {
			return errors.New("nil renderer")
		}
		c.renderer = r
		return nil
	})
}

// Canned key transforms.

// WithSnakeCaseKeys rewrites member names to snake_case.
func WithSnakeCaseKeys() Option { return WithKeyTransform(strcase.ToSnake) }

// WithCamelCaseKeys rewrites member names to lowerCamelCase.
func WithCamelCaseKeys() Option { return WithKeyTransform(strcase.ToLowerCamel) }

// WithScreamingSnakeCaseKeys rewrites member names to SCREAMING_SNAKE_CASE.
func WithScreamingSnakeCaseKeys() Option { return WithKeyTransform(strcase.ToScreamingSnake) }

// WithKebabCaseKeys rewrites member names to kebab-case.
func WithKebabCaseKeys() Option { return WithKeyTransform(strcase.ToKebab) }
