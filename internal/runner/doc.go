// Package runner starts delegate tools through the package runner (npx by
// default) with the caller's terminal attached.
//
// The child inherits stdin, stdout, and stderr so interactive prompts pass
// through untouched. A non-zero exit surfaces as *ExitError carrying the
// child's status so the CLI can exit with the same code.
//
// Prefer this package over ad-hoc exec.Command usage so exit status mapping
// stays consistent and tests can swap the Executor.
package runner
