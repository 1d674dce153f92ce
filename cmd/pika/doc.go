// Package main hosts the pika CLI entrypoint.
//
// The Cobra root command hands its raw arguments to the dispatcher, which
// owns flag parsing, routing, and delegate invocation. This package only
// resolves configuration, builds the diagnostics logger, and maps dispatcher
// errors onto the process exit status.
package main
