// Package editor launches the user's editor on a file.
package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Open runs the editor on filePath in the foreground with the terminal
// attached, returning once the editor exits.
//
// If the editor value contains spaces (e.g. "open -a Cursor" or "code --wait")
// it is executed via the shell so the arguments are handled correctly.
func Open(editorCmd, filePath string) error {
	if editorCmd == "" {
		return fmt.Errorf("no editor configured (set $EDITOR or 'editor' in config)")
	}

	var cmd *exec.Cmd
	if strings.Contains(editorCmd, " ") {
		cmd = exec.Command("sh", "-c", editorCmd+" "+shellQuote(filePath))
	} else {
		cmd = exec.Command(editorCmd, filePath)
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %q: %w", editorCmd, err)
	}
	return nil
}

// shellQuote quotes a string for safe use in shell commands.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}
