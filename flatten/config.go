package flatten

import (
	"fmt"
	"unicode"

	"github.com/flatjson/flatjson/errs"
	"github.com/flatjson/flatjson/escape"
	"github.com/flatjson/flatjson/internal/options"
)

// RootKey is the reserved key under which a result is stored when the source
// document cannot contribute keys of its own: a bare scalar, a null, an empty
// array, or a whole array kept at the top level.
const RootKey = "root"

// Mode selects how arrays are traversed.
type Mode uint8

const (
	// ModeNormal descends into every non-empty object and array, splitting
	// array positions into indexed key segments.
	ModeNormal Mode = iota

	// ModeKeepArrays descends into objects but keeps arrays whole: an array
	// becomes a single materialized list value, with objects nested inside
	// it flattened into nested mappings.
	ModeKeepArrays
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeKeepArrays:
		return "keep-arrays"
	default:
		return "unknown"
	}
}

// PrintMode selects the whitespace layout of rendered output.
type PrintMode uint8

const (
	// PrintMinimal emits no insignificant whitespace.
	PrintMinimal PrintMode = iota

	// PrintPretty indents nested structure by two spaces.
	PrintPretty
)

// String returns the print mode name.
func (p PrintMode) String() string {
	switch p {
	case PrintMinimal:
		return "minimal"
	case PrintPretty:
		return "pretty"
	default:
		return "unknown"
	}
}

// KeyTransform rewrites an object member name before it is encoded into a
// flattened key. Transforms see the raw decoded name; fencing and escaping
// decisions are made on the transformed result.
type KeyTransform func(string) string

// Config carries the full set of knobs for one flattening pass. It is
// assembled from functional options at construction time and never mutated
// afterwards, so one Flattener can serve concurrent callers.
type Config struct {
	mode         Mode
	printMode    PrintMode
	separator    rune
	leftBracket  rune
	rightBracket rune
	policy       escape.Policy
	transform    KeyTransform
	renderer     Renderer
}

func defaultConfig() Config {
	return Config{
		mode:         ModeNormal,
		printMode:    PrintMinimal,
		separator:    '.',
		leftBracket:  '[',
		rightBracket: ']',
		policy:       escape.Default,
		renderer:     JSONRenderer{},
	}
}

func newConfig(opts ...Option) (Config, error) {
	cfg := defaultConfig()
	if err := options.Apply(&cfg, opts...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Mode returns the configured flatten mode.
func (c Config) Mode() Mode { return c.mode }

// PrintMode returns the configured print mode.
func (c Config) PrintMode() PrintMode { return c.printMode }

// Separator returns the configured key separator.
func (c Config) Separator() rune { return c.separator }

// Brackets returns the configured left and right bracket pair.
func (c Config) Brackets() (left, right rune) { return c.leftBracket, c.rightBracket }

// EscapePolicy returns the configured string escape policy.
func (c Config) EscapePolicy() escape.Policy { return c.policy }

// setSeparator validates sep against the current brackets. The separator and
// the two brackets must stay three distinct characters, none of them
// whitespace or a double quote, or flattened keys could not be split apart
// again.
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
