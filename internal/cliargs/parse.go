// Package cliargs splits a pika argument vector into the command, the
// arguments forwarded to the delegate tool, and the dispatcher's own flags.
//
// Flags pika understands are consumed wherever they appear, with one
// exception: -h/--help after the command belongs to the delegate tool.
// Everything else after the command, unknown flags included, is forwarded
// verbatim, and anything after a "--" terminator is never interpreted.
//
// Parsing never rejects input. A value flag given last without a value stays
// unset, and a switch given a value that is not a boolean is treated as set.
package cliargs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// DefaultCommand is used when no command token is present.
const DefaultCommand = "help"

// Parsed is the result of splitting one argument vector.
type Parsed struct {
	Command     string
	CommandArgs []string

	Version     bool
	Help        bool
	DryRun      bool
	Cwd         string
	Contents    string
	ContentsSet bool
	Config      string
}

// Parse interprets args, which exclude the program name. Cwd defaults to the
// process working directory and is always returned absolute. An empty --cwd
// counts as unset.
func Parse(args []string) (Parsed, error) {
	var p Parsed
	fs := newFlagSet(&p)
	command, forwarded, err := walk(fs, args)
	if err != nil {
		return Parsed{}, fmt.Errorf("parse flags: %w", err)
	}
	p.Command, p.CommandArgs = command, forwarded
	p.ContentsSet = fs.Changed("contents")

	cwd := strings.TrimSpace(p.Cwd)
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return Parsed{}, fmt.Errorf("resolve working directory: %w", err)
		}
		cwd = wd
	}
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return Parsed{}, fmt.Errorf("resolve --cwd %q: %w", p.Cwd, err)
	}
	p.Cwd = abs
	return p, nil
}

func newFlagSet(p *Parsed) *pflag.FlagSet {
	fs := pflag.NewFlagSet("pika", pflag.ContinueOnError)
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "dryRun" {
			name = "dry-run"
		}
		return pflag.NormalizedName(name)
	})

	fs.VarPF((*switchValue)(&p.Version), "version", "v", "output the CLI version").NoOptDefVal = "true"
	fs.VarPF((*switchValue)(&p.Help), "help", "h", "output usage information").NoOptDefVal = "true"
	fs.VarPF((*switchValue)(&p.DryRun), "dry-run", "", "don't actually run any commands").NoOptDefVal = "true"
	fs.StringVar(&p.Cwd, "cwd", "", "set the current working directory")
	fs.StringVar(&p.Contents, "contents", "", "(publish) directory passed to np as --contents")
	fs.StringVar(&p.Config, "config", "", "configuration file path")
	return fs
}

// switchValue is a boolean flag that accepts any value. Values strconv
// cannot read as a boolean count as true unless empty.
type switchValue bool

func (s *switchValue) Set(value string) error {
	v, err := strconv.ParseBool(value)
	if err != nil {
		v = value != ""
	}
	*s = switchValue(v)
	return nil
}

func (s *switchValue) String() string   { return strconv.FormatBool(bool(*s)) }
func (s *switchValue) Type() string     { return "bool" }
func (s *switchValue) IsBoolFlag() bool { return true }

// walk reads args in order and sets the flags defined on fs. The first
// positional token is the command; tokens after it are forwarded unless they
// are pika's own flags. Unknown flags never consume a value here, so
// "--verbose build" still finds the build command.
func walk(fs *pflag.FlagSet, args []string) (string, []string, error) {
	var command string
	forwarded := []string{}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			rest := args[i+1:]
			if command == "" {
				if len(rest) == 0 {
					return DefaultCommand, forwarded, nil
				}
				return rest[0], append(forwarded, rest[1:]...), nil
			}
			return command, append(forwarded, args[i:]...), nil

		case strings.HasPrefix(arg, "--"):
			name, value, hasValue := strings.Cut(arg[2:], "=")
			flag := fs.Lookup(name)
			if flag == nil || (command != "" && flag.Name == "help") {
				if command != "" {
					forwarded = append(forwarded, arg)
				}
				continue
			}
			if !hasValue {
				switch {
				case flag.NoOptDefVal != "":
					value = flag.NoOptDefVal
				case i+1 < len(args):
					i++
					value = args[i]
				default:
					continue
				}
			}
			if err := fs.Set(flag.Name, value); err != nil {
				return "", nil, err
			}

		case len(arg) > 1 && arg[0] == '-':
			flags := shorthandSwitches(fs, arg[1:])
			if flags == nil || (command != "" && hasFlag(flags, "help")) {
				if command != "" {
					forwarded = append(forwarded, arg)
				}
				continue
			}
			for _, flag := range flags {
				if err := fs.Set(flag.Name, flag.NoOptDefVal); err != nil {
					return "", nil, err
				}
			}

		default:
			if command == "" {
				command = arg
				continue
			}
			forwarded = append(forwarded, arg)
		}
	}

	if command == "" {
		command = DefaultCommand
	}
	return command, forwarded, nil
}

// shorthandSwitches returns the switches named by a shorthand group such as
// "hv", or nil when any letter is not one of pika's switches.
func shorthandSwitches(fs *pflag.FlagSet, shorthands string) []*pflag.Flag {
	if shorthands == "" || strings.Contains(shorthands, "=") {
		return nil
	}
	var flags []*pflag.Flag
	for _, r := range shorthands {
		if r > 127 {
			return nil
		}
		flag := fs.ShorthandLookup(string(r))
		if flag == nil || flag.NoOptDefVal == "" {
			return nil
		}
		flags = append(flags, flag)
	}
	return flags
}

func hasFlag(flags []*pflag.Flag, name string) bool {
	for _, flag := range flags {
		if flag.Name == name {
			return true
		}
	}
	return false
}
