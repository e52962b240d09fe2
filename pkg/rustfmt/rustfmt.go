package rustfmt

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultPath is the rustfmt binary looked up in PATH when no explicit path is configured
const DefaultPath = "rustfmt"

// Runner pipes source text through rustfmt
type Runner struct {
	Path    string   // rustfmt binary, DefaultPath when empty
	Edition string   // passed as --edition unless Args already selects one
	Args    []string // extra command line arguments
}

func (r Runner) binary() string {
	if r.Path == "" {
		return DefaultPath
	}
	return r.Path
}

// CommandArgs returns the arguments rustfmt is invoked with
func (r Runner) CommandArgs() []string {
	var args []string
	if r.Edition != "" && !hasEditionArg(r.Args) {
		args = append(args, "--edition", r.Edition)
	}
	return append(args, r.Args...)
}

func hasEditionArg(args []string) bool {
	for _, arg := range args {
		if arg == "--edition" || strings.HasPrefix(arg, "--edition=") {
			return true
		}
	}
	return false
}

// Format runs rustfmt with src on stdin and returns its stdout
func (r Runner) Format(ctx context.Context, src []byte) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.binary(), r.CommandArgs()...)
	cmd.Stdin = bytes.NewReader(src)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w\n%s", r.binary(), err, msg)
		}
		return nil, fmt.Errorf("%s: %w", r.binary(), err)
	}
	return stdout.Bytes(), nil
}
