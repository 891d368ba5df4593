package domain

import "path/filepath"

const (
	// BriskDirName is the name of the hidden per-project directory holding generated artifacts.
	BriskDirName = ".brisk"

	// AmbientDeclFileName is the name of the generated ambient type declaration file.
	AmbientDeclFileName = "env.d.ts"

	// GeneratedTsconfigFileName is the name of the generated base project configuration.
	GeneratedTsconfigFileName = "tsconfig.json"

	// ConfigFileName is the name of the optional user config file.
	ConfigFileName = "brisk.config.yaml"

	// PackageManifestFileName is the name of the consuming project's package metadata.
	PackageManifestFileName = "package.json"

	// DefaultEnvFile is the default env file loaded before NODE_ENV is read.
	DefaultEnvFile = ".env"

	// DefaultSourceDir is the default directory scanned for entry points.
	DefaultSourceDir = "src"

	// DefaultOutDir is the default bundle output directory.
	DefaultOutDir = "dist"

	// TypeScriptConfigFileName is the project config of TypeScript projects.
	TypeScriptConfigFileName = "tsconfig.json"

	// JavaScriptConfigFileName is the project config of JavaScript projects.
	JavaScriptConfigFileName = "jsconfig.json"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// ArtifactPaths locates the generated artifacts of one project.
type ArtifactPaths struct {
	// Dir is the directory the artifacts are written into.
	Dir string
	// SourceDir is the project source tree referenced by the generated tsconfig.
	SourceDir string
}

// AmbientDeclPath returns the path of the ambient declaration file.
func (p ArtifactPaths) AmbientDeclPath() string {
	return filepath.Join(p.Dir, AmbientDeclFileName)
}

// TsconfigPath returns the path of the generated project configuration.
func (p ArtifactPaths) TsconfigPath() string {
	return filepath.Join(p.Dir, GeneratedTsconfigFileName)
}

// DefaultBriskPath returns the default directory for generated artifacts relative to the project root.
func DefaultBriskPath() string {
	return BriskDirName
}

// GeneratedTsconfigRef returns the path user configs extend, relative to the project root.
func GeneratedTsconfigRef() string {
	return "./" + BriskDirName + "/" + GeneratedTsconfigFileName
}
