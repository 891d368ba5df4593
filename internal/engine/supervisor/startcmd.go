package supervisor

import (
	"os"
	"path/filepath"

	"go.trai.ch/brisk/internal/core/domain"
)

// StartRule maps a package-manager lock file to that manager's start command.
type StartRule struct {
	LockFile string
	Command  string
}

// DefaultStartRules is the lock-file lookup order used when no run command is configured.
var DefaultStartRules = []StartRule{
	{LockFile: "package-lock.json", Command: "npm start"},
	{LockFile: "yarn.lock", Command: "yarn start"},
	{LockFile: "pnpm-lock.yaml", Command: "pnpm start"},
	{LockFile: "bun.lockb", Command: "bun start"},
}

// FileExists reports whether path exists on the local filesystem.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DetectStartCommand returns the command of the first rule whose lock file exists in dir.
func DetectStartCommand(dir string, rules []StartRule, exists func(path string) bool) (string, error) {
	for _, rule := range rules {
		if exists(filepath.Join(dir, rule.LockFile)) {
			return rule.Command, nil
		}
	}
	return "", domain.ErrNoStartCommandFound
}
