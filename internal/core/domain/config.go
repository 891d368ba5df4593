// Package domain contains the build configuration model shared by every brisk component.
package domain

import "path/filepath"

// Mode selects the environment the bundle is built for.
type Mode string

const (
	// ModeDevelopment keeps DEV-labelled blocks and drops PROD-labelled ones.
	ModeDevelopment Mode = "development"
	// ModeProduction keeps PROD-labelled blocks and drops DEV-labelled ones.
	ModeProduction Mode = "production"
)

// Valid reports whether m is one of the two supported modes.
func (m Mode) Valid() bool {
	return m == ModeDevelopment || m == ModeProduction
}

// Format selects the module output shape.
type Format string

const (
	// FormatESM emits ECMAScript modules.
	FormatESM Format = "esm"
	// FormatCJS emits CommonJS modules.
	FormatCJS Format = "cjs"
)

// Valid reports whether f is one of the two supported formats.
func (f Format) Valid() bool {
	return f == FormatESM || f == FormatCJS
}

// Language is the declared source language of the consuming project.
type Language string

const (
	// LanguageTypeScript projects are configured through tsconfig.json.
	LanguageTypeScript Language = "typescript"
	// LanguageJavaScript projects are configured through jsconfig.json.
	LanguageJavaScript Language = "javascript"
)

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	return l == LanguageTypeScript || l == LanguageJavaScript
}

// ProjectConfigFileName returns the default project config file for the language.
func (l Language) ProjectConfigFileName() string {
	if l == LanguageJavaScript {
		return JavaScriptConfigFileName
	}
	return TypeScriptConfigFileName
}

// WatchConfig holds the watch-mode settings of a build.
type WatchConfig struct {
	// Command is the run command executed after successful rebuilds.
	// Nil means the command is detected from the project's lock file,
	// an empty string disables the run step.
	Command *string
}

// BuildConfiguration is the resolved configuration of one invocation.
// It is created once by the config resolver and must not be mutated afterwards.
type BuildConfiguration struct {
	Mode          Mode
	Format        Format
	Language      Language
	DefineVersion bool
	Defines       map[string]string
	DropLabels    []string
	TsconfigPath  string
	EnvFilePath   string
	Sourcemap     bool
	// SuppressWarnings hides warnings from both brisk and the bundling engine.
	SuppressWarnings bool
	// Root is the absolute project root all other paths are relative to.
	Root      string
	SourceDir string
	OutDir    string
	// Watch is nil unless watch mode was requested.
	Watch *WatchConfig
}

// Watching reports whether watch mode is enabled.
func (c *BuildConfiguration) Watching() bool {
	return c.Watch != nil
}

// ArtifactPaths returns where the generated artifacts of this project live.
func (c *BuildConfiguration) ArtifactPaths() ArtifactPaths {
	return ArtifactPaths{
		Dir:       c.abs(DefaultBriskPath()),
		SourceDir: c.abs(c.SourceDir),
	}
}

// SourcePath returns the absolute source directory.
func (c *BuildConfiguration) SourcePath() string {
	return c.abs(c.SourceDir)
}

// OutPath returns the absolute output directory.
func (c *BuildConfiguration) OutPath() string {
	return c.abs(c.OutDir)
}

func (c *BuildConfiguration) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Root, path)
}

// BuildOptions is the raw input of the build command.
// Nil pointers mean the corresponding flag was not given.
type BuildOptions struct {
	Root         string
	ConfigPath   string
	Tsconfig     *string
	Format       *string
	Mode         *string
	Language     *string
	Sourcemap    *bool
	Watch        bool
	WatchCommand *string
	NoWarnings   bool
}

// BuildResult summarizes the outcome of one engine build.
type BuildResult struct {
	Errors   int
	Warnings int
}

// Failed reports whether the build produced errors.
func (r BuildResult) Failed() bool {
	return r.Errors > 0
}
