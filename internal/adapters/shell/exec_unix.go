//go:build unix

package shell

import (
	"os/exec"
	"syscall"
)

func shellCommand(command string) (string, []string) {
	return "sh", []string{"-c", command}
}

// setGracefulShutdown sends SIGTERM to the shell on cancellation.
// The child stays in brisk's process group so it keeps the terminal.
func setGracefulShutdown(cmd *exec.Cmd) {
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
}
