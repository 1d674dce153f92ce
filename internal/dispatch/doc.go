// Package dispatch routes a parsed pika invocation to exactly one outcome:
// the CLI version, the usage text, a delegate tool run through the package
// runner, or a "not recognized" notice followed by usage.
//
// Each Run builds its own run context (identifier, dry-run switch, effective
// working directory, output sink, logger) so a Dispatcher carries no mutable
// state between runs and can be shared. Every line a run prints is returned
// as an output.Log for callers and tests to inspect.
package dispatch
