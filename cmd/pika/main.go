package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"pika/internal/runner"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(exitCode(err, os.Stderr))
	}
}

// exitCode reports err on stderr and picks the process exit status. A
// delegate that exited non-zero lends its own status.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	if !errors.Is(err, context.Canceled) {
		fmt.Fprintln(stderr, err)
	}
	var exitErr *runner.ExitError
	if errors.As(err, &exitErr) && exitErr.Code > 0 {
		return exitErr.Code
	}
	return 1
}
