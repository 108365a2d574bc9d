package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"

	"github.com/flatjson/flatjson"
	"github.com/flatjson/flatjson/compress"
	"github.com/flatjson/flatjson/escape"
	"github.com/flatjson/flatjson/flatten"
	"github.com/flatjson/flatjson/unflatten"
)

// CLI defines the command-line interface.
var CLI struct {
	Input        string `help:"Path to the input document. Reads stdin when omitted." short:"i" type:"path"`
	Output       string `help:"Path to the output document. Writes stdout when omitted." short:"o" type:"path"`
	Unflatten    bool   `help:"Rebuild the nested document from flattened input." short:"u"`
	KeepArrays   bool   `help:"Flatten objects but keep arrays intact." short:"k"`
	Separator    string `help:"Separator between named key segments." short:"s" default:"."`
	LeftBracket  string `help:"Left bracket around array indexes and fenced names." default:"["`
	RightBracket string `help:"Right bracket around array indexes and fenced names." default:"]"`
	Pretty       bool   `help:"Indent the output document." short:"p"`
	Escape       string `help:"String escaping policy for flattened output." enum:"normal,unicode" default:"normal"`
	KeyCase      string `help:"Rewrite member names to a casing convention while flattening." enum:"none,snake,camel,screaming,kebab" default:"none"`
	Compress     string `help:"Output compression. auto derives it from the output extension." enum:"auto,none,gzip,zstd,lz4,s2" default:"auto"`
	Fingerprint  bool   `help:"Print the 64-bit fingerprint of the flattened document instead of the document."`
	Profiles     string `help:"Path to a YAML file of named option profiles." type:"path"`
	Profile      string `help:"Name of the profile to apply from the profiles file."`
	Version      bool   `help:"Show version information." short:"v"`
}

const version = "0.1.0"

func main() {
	parser := kong.Must(&CLI,
		kong.Name("jsonflatten"),
		kong.Description("Flatten nested JSON documents into flat key/value mappings and back."),
		kong.UsageOnError(),
	)

	// On parse errors kong.UsageOnError() has already printed the usage.
	if _, err := parser.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("jsonflatten version %s\n", version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "jsonflatten: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := applyProfile(); err != nil {
		return err
	}
	if CLI.Fingerprint && CLI.Unflatten {
		return errors.New("--fingerprint cannot be combined with --unflatten")
	}

	in, closeIn, err := openInput()
	if err != nil {
		return err
	}
	defer closeIn()

	doc, err := compress.OpenReader(in)
	if err != nil {
		return err
	}
	defer doc.Close()

	if CLI.Fingerprint {
		return runFingerprint(doc)
	}

	result, err := transform(doc)
	if err != nil {
		return err
	}

	format, err := outputFormat()
	if err != nil {
		return err
	}

	return writeOutput(result+"\n", format)
}

func transform(r io.Reader) (string, error) {
	if CLI.Unflatten {
		opts, err := unflattenOptions()
		if err != nil {
			return "", err
		}
		u, err := unflatten.FromReader(r, opts...)
		if err != nil {
			return "", err
		}

		return u.Unflatten()
	}

	opts, err := flattenOptions()
	if err != nil {
		return "", err
	}
	f, err := flatten.FromReader(r, opts...)
	if err != nil {
		return "", err
	}

	return f.Flatten()
}

func runFingerprint(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	opts, err := flattenOptions()
	if err != nil {
		return err
	}
	fp, err := flatjson.Fingerprint(string(data), opts...)
	if err != nil {
		return err
	}

	return writeOutput(fmt.Sprintf("%016x\n", fp), compress.FormatNone)
}

func flattenOptions() ([]flatten.Option, error) {
	sep, left, right, err := keySymbols()
	if err != nil {
		return nil, err
	}

	// Options validate against the configuration built so far, so apply the
	// separator after the brackets when it would clash with the defaults.
	var opts []flatten.Option
	if sep == '[' || sep == ']' {
		opts = append(opts,
			flatten.WithLeftAndRightBrackets(left, right),
			flatten.WithSeparator(sep))
	} else {
		opts = append(opts,
			flatten.WithSeparator(sep),
			flatten.WithLeftAndRightBrackets(left, right))
	}

	switch CLI.Escape {
	case "", "normal":
	case "unicode":
		opts = append(opts, flatten.WithStringEscapePolicy(escape.AllUnicodes))
	default:
		return nil, fmt.Errorf("unknown escape policy %q", CLI.Escape)
	}

	switch CLI.KeyCase {
	case "", "none":
	case "snake":
		opts = append(opts, flatten.WithSnakeCaseKeys())
	case "camel":
		opts = append(opts, flatten.WithCamelCaseKeys())
	case "screaming":
		opts = append(opts, flatten.WithScreamingSnakeCaseKeys())
	case "kebab":
		opts = append(opts, flatten.WithKebabCaseKeys())
	default:
		return nil, fmt.Errorf("unknown key case %q", CLI.KeyCase)
	}

	if CLI.KeepArrays {
		opts = append(opts, flatten.WithFlattenMode(flatten.ModeKeepArrays))
	}
	if CLI.Pretty {
		opts = append(opts, flatten.WithPrintMode(flatten.PrintPretty))
	}

	return opts, nil
}

func unflattenOptions() ([]unflatten.Option, error) {
	sep, left, right, err := keySymbols()
	if err != nil {
		return nil, err
	}

	var opts []unflatten.Option
	if sep == '[' || sep == ']' {
		opts = append(opts,
			unflatten.WithLeftAndRightBrackets(left, right),
			unflatten.WithSeparator(sep))
	} else {
		opts = append(opts,
			unflatten.WithSeparator(sep),
			unflatten.WithLeftAndRightBrackets(left, right))
	}

	if CLI.Pretty {
		opts = append(opts, unflatten.WithPrintMode(flatten.PrintPretty))
	}

	return opts, nil
}

func keySymbols() (sep, left, right rune, err error) {
	if sep, err = singleRune("separator", CLI.Separator); err != nil {
		return 0, 0, 0, err
	}
	if left, err = singleRune("left-bracket", CLI.LeftBracket); err != nil {
		return 0, 0, 0, err
	}
	if right, err = singleRune("right-bracket", CLI.RightBracket); err != nil {
		return 0, 0, 0, err
	}

	return sep, left, right, nil
}

func singleRune(flag, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("--%s must be a single character, got %q", flag, s)
	}
	r, _ := utf8.DecodeRuneInString(s)

	return r, nil
}

func openInput() (io.Reader, func(), error) {
	if CLI.Input != "" {
		f, err := os.Open(CLI.Input)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open input: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}

	info, err := os.Stdin.Stat()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to access stdin: %w", err)
	}
	if info.Mode()&os.ModeCharDevice != 0 {
		return nil, nil, errors.New("no input: pipe a document or pass --input")
	}

	return os.Stdin, func() {}, nil
}

func outputFormat() (compress.Format, error) {
	if CLI.Compress == "" || CLI.Compress == "auto" {
		return compress.FromPath(CLI.Output), nil
	}

	return compress.ParseFormat(CLI.Compress)
}

func writeOutput(text string, format compress.Format) error {
	if CLI.Output == "" {
		return writeStream(os.Stdout, text, format)
	}

	f, err := os.Create(CLI.Output)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := writeStream(f, text, format); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func writeStream(out io.Writer, text string, format compress.Format) error {
	w, err := compress.NewWriter(out, format)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finish output: %w", err)
	}

	return nil
}

// profile is one named preset in a --profiles YAML file. Unset fields leave
// the matching flag untouched.
type profile struct {
	Unflatten    *bool   `yaml:"unflatten"`
	KeepArrays   *bool   `yaml:"keep-arrays"`
	Separator    *string `yaml:"separator"`
	LeftBracket  *string `yaml:"left-bracket"`
	RightBracket *string `yaml:"right-bracket"`
	Pretty       *bool   `yaml:"pretty"`
	Escape       *string `yaml:"escape"`
	KeyCase      *string `yaml:"key-case"`
	Compress     *string `yaml:"compress"`
}

// apply copies the profile's settings over the flag values. Profile settings
// win, so a profile behaves the same regardless of surrounding flags.
func (p profile) apply() {
	if p.Unflatten != nil {
		CLI.Unflatten = *p.Unflatten
	}
	if p.KeepArrays != nil {
		CLI.KeepArrays = *p.KeepArrays
	}
	if p.Separator != nil {
		CLI.Separator = *p.Separator
	}
	if p.LeftBracket != nil {
		CLI.LeftBracket = *p.LeftBracket
	}
	if p.RightBracket != nil {
		CLI.RightBracket = *p.RightBracket
	}
	if p.Pretty != nil {
		CLI.Pretty = *p.Pretty
	}
	if p.Escape != nil {
		CLI.Escape = *p.Escape
	}
	if p.KeyCase != nil {
		CLI.KeyCase = *p.KeyCase
	}
	if p.Compress != nil {
		CLI.Compress = *p.Compress
	}
}

func applyProfile() error {
	if CLI.Profile == "" {
		return nil
	}
	if CLI.Profiles == "" {
		return errors.New("--profile requires --profiles")
	}

	data, err := os.ReadFile(CLI.Profiles)
	if err != nil {
		return fmt.Errorf("failed to read profiles: %w", err)
	}
	var profiles map[string]profile
	if err := yaml.Unmarshal(data, &profiles); err != nil {
		return fmt.Errorf("failed to parse profiles: %w", err)
	}

	p, ok := profiles[CLI.Profile]
	if !ok {
		return fmt.Errorf("profile %q not found in %s", CLI.Profile, CLI.Profiles)
	}
	p.apply()

	return nil
}
