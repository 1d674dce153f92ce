package dispatch

import (
	"fmt"

	"pika/internal/output"
)

const commandDocsURL = "https://www.pika.dev/cli/commands/"

func usage() output.Styled {
	line := func(name, desc string) string {
		return fmt.Sprintf("\n  %-20s", name) + desc
	}
	docs := func(cmd Command) []any {
		return []any{fmt.Sprintf("\n  %-20s", string(cmd)), output.Underline(commandDocsURL + string(cmd))}
	}

	block := output.Styled{
		output.Bold("Usage:"),
		"\n  pika [command] [flags]\n",
		output.Bold("Commands:"),
		line(string(CommandHelp), "output usage information"),
	}
	for _, cmd := range Commands() {
		block = append(block, docs(cmd)...)
	}
	block = append(block,
		"\n",
		output.Bold("Global Options:"),
		line("-v, --version", "output the CLI version"),
		line("-h, --help", "output usage information"),
		line("--cwd", "set the current working directory"),
		line("--dry-run", "don't actually run any commands"),
		line("--contents", "(publish) directory passed to np as --contents"),
		line("--config", "configuration file path"),
	)
	return block
}
