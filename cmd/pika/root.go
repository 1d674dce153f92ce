package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:                "pika [command] [flags]",
		Short:              "Run pika tooling (@pika/web, @pika/pack, np) through npx",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableFlagParsing: true,
		Args:               cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := newCommandContext(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			_, err := ctx.dispatch(cmd.Context(), args)
			return err
		},
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	return rootCmd
}
