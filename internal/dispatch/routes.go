package dispatch

import (
	"slices"

	"pika/internal/cliargs"
	"pika/internal/config"
)

// Command names a routable pika command.
type Command string

const (
	CommandHelp    Command = "help"
	CommandBuild   Command = "build"
	CommandInstall Command = "install"
	CommandPublish Command = "publish"
)

// route describes how a command reaches its delegate tool.
type route struct {
	// tool is the package the runner starts.
	tool string
	// probe is the package looked up in node_modules before running.
	probe string
	// recommend is named in the tip when probe is not installed locally.
	recommend string
	// args builds the delegate arguments.
	args func(p cliargs.Parsed, cfg *config.Config) []string
}

var routes = map[Command]route{
	CommandInstall: {
		tool:      "@pika/web",
		probe:     "@pika/web",
		recommend: "@pika/web",
		args:      forwardArgs,
	},
	CommandBuild: {
		tool:      "@pika/pack",
		probe:     "@pika/pack",
		recommend: "@pika/pack",
		args: func(p cliargs.Parsed, _ *config.Config) []string {
			return append([]string{"build"}, p.CommandArgs...)
		},
	},
	CommandPublish: {
		tool:      "np",
		probe:     "@pika/pack",
		recommend: "np",
		args:      publishArgs,
	},
}

// Commands lists the commands that dispatch to a delegate tool, sorted.
func Commands() []Command {
	out := make([]Command, 0, len(routes))
	for name := range routes {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Delegates reports whether p would start a delegate tool rather than print
// the version, the usage text or the not-recognized message.
func Delegates(p cliargs.Parsed) bool {
	if p.Version || p.Help || p.Command == string(CommandHelp) {
		return false
	}
	_, ok := lookup(p.Command)
	return ok
}

func lookup(name string) (route, bool) {
	r, ok := routes[Command(name)]
	return r, ok
}

func forwardArgs(p cliargs.Parsed, _ *config.Config) []string {
	return append([]string{}, p.CommandArgs...)
}

// publishArgs always hands np exactly one --contents: the user's value when
// given, otherwise the configured default.
func publishArgs(p cliargs.Parsed, cfg *config.Config) []string {
	contents := cfg.Publish.Contents
	if p.ContentsSet {
		contents = p.Contents
	}
	args := append([]string{}, p.CommandArgs...)
	return append(args, "--contents", contents)
}
