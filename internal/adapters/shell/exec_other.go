//go:build !unix

package shell

import "os/exec"

func shellCommand(command string) (string, []string) {
	return "cmd", []string{"/C", command}
}

// setGracefulShutdown is a no-op on non-Unix platforms.
// cmd.Cancel defaults to os.Process.Kill.
func setGracefulShutdown(_ *exec.Cmd) {}
