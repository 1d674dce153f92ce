// Package deps reports whether the external tools pika relies on are
// available: the package runner binary on PATH and delegate packages in the
// project's node_modules tree.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external binary pika relies on.
type Requirement struct {
	Name    string
	Command string
}

// Status reports the availability of a dependency.
type Status struct {
	Name      string
	Command   string
	Available bool
	Path      string
	Detail    string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:    req.Name,
			Command: cmd,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := exec.LookPath(cmd)
		if err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = path
		results = append(results, status)
	}
	return results
}
