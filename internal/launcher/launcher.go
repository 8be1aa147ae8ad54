// Package launcher builds the command that opens a file in the user's editor.
package launcher

import (
	"fmt"
	"os"
	"os/exec"

	"mvdan.cc/sh/v3/shell"
)

// DefaultCommand is used when no open command is configured.
const DefaultCommand = "edit"

// Command splits template with shell word rules, expanding environment
// variables, and appends path as the final argument.
func Command(template, path string) ([]string, error) {
	args, err := shell.Fields(template, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("parse open command %q: %w", template, err)
	}
	if len(args) == 0 {
		args = []string{DefaultCommand}
	}
	return append(args, path), nil
}

// Cmd returns the process that opens path, run from dir.
func Cmd(template, dir, path string) (*exec.Cmd, error) {
	args, err := Command(template, path)
	if err != nil {
		return nil, err
	}
	if _, err := exec.LookPath(args[0]); err != nil {
		return nil, fmt.Errorf("open command: %w", err)
	}
	c := exec.Command(args[0], args[1:]...)
	c.Dir = dir
	return c, nil
}
