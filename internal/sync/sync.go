// Package sync runs the user's configured sync commands in one shell
// session, so working-directory changes and variables carry across commands.
package sync

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/jepemo/mystuff/internal/config"
)

// Options controls a sync run.
type Options struct {
	DryRun          bool
	Verbose         bool
	ContinueOnError bool

	// Stdout and Stderr receive command output in verbose mode. They
	// default to the process streams when nil.
	Stdout io.Writer
	Stderr io.Writer
}

// Script builds the shell script for the given commands. Without
// continueOnError the script stops at the first failing command; with it,
// every command runs and the script exits non-zero when any failed.
func Script(commands []string, continueOnError bool) string {
	var b strings.Builder
	if continueOnError {
		b.WriteString("_sync_failed=0\n")
		for _, cmd := range commands {
			fmt.Fprintf(&b, "(%s) || _sync_failed=1\n", cmd)
		}
		b.WriteString("exit $_sync_failed\n")
		return b.String()
	}

	b.WriteString("set -e\n")
	b.WriteString(strings.Join(commands, "\n"))
	b.WriteString("\n")
	return b.String()
}

// Run executes the configured commands from the data directory with
// MYSTUFF_HOME exported. In dry-run mode it only prints the command list.
func Run(dataDir string, commands []string, opts Options) error {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	if len(commands) == 0 {
		fmt.Fprintln(stdout, "No commands to execute")
		return nil
	}

	if opts.Verbose || opts.DryRun {
		for i, cmd := range commands {
			fmt.Fprintf(stdout, "[%d/%d] %s\n", i+1, len(commands), cmd)
		}
	}
	if opts.DryRun {
		return nil
	}

	cmd := exec.Command("bash", "-c", Script(commands, opts.ContinueOnError))
	cmd.Dir = dataDir
	cmd.Env = append(os.Environ(), config.EnvDataDir+"="+dataDir)
	if opts.Verbose {
		cmd.Stdout = stdout
		cmd.Stderr = stderr
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("sync commands failed: %w", err)
	}
	return nil
}
