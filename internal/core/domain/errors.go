package domain

import "go.trai.ch/zerr"

var (
	// ErrConfig is the parent of every configuration error that aborts before a build starts.
	ErrConfig = zerr.New("invalid configuration")

	// ErrInvalidMode is returned when the resolved mode is neither development nor production.
	ErrInvalidMode = zerr.Wrap(ErrConfig, "invalid mode, expected 'development' or 'production'")

	// ErrInvalidFormat is returned when the module format is neither esm nor cjs.
	ErrInvalidFormat = zerr.Wrap(ErrConfig, "invalid format, expected 'esm' or 'cjs'")

	// ErrInvalidLanguage is returned when the project language is not recognized.
	ErrInvalidLanguage = zerr.Wrap(ErrConfig, "invalid language, expected 'typescript' or 'javascript'")

	// ErrWatchCommandWithoutWatch is returned when a watch command is given without enabling watch mode.
	ErrWatchCommandWithoutWatch = zerr.Wrap(ErrConfig, "--watch-command requires --watch")

	// ErrConfigLoadFailed is returned when an existing user config file cannot be read or parsed.
	ErrConfigLoadFailed = zerr.New("failed to load config file")

	// ErrEnvFileLoadFailed is returned when an existing env file cannot be parsed.
	ErrEnvFileLoadFailed = zerr.New("failed to load env file")

	// ErrMissingProjectConfig is returned when the tsconfig/jsconfig file is absent or malformed.
	ErrMissingProjectConfig = zerr.New("missing or invalid project config")

	// ErrPackageManifest is returned when package.json cannot provide the version to inject.
	ErrPackageManifest = zerr.New("failed to read version from package.json")

	// ErrArtifactWriteFailed is returned when a generated artifact cannot be written.
	ErrArtifactWriteFailed = zerr.New("failed to write generated artifact")

	// ErrNoEntryPoints is returned when the source directory contains no buildable files.
	ErrNoEntryPoints = zerr.New("no entry points found")

	// ErrBundlerContextFailed is returned when the bundling engine rejects the build options.
	ErrBundlerContextFailed = zerr.New("failed to create bundling context")

	// ErrWatchFailed is returned when file watching cannot be started.
	ErrWatchFailed = zerr.New("failed to start watching")

	// ErrBuildFailed is returned when a one-shot build reported errors.
	ErrBuildFailed = zerr.New("build failed")

	// ErrNoStartCommandFound is returned when no run command is configured and no lock file is present.
	ErrNoStartCommandFound = zerr.New("no start command found, set watch.command or add a lock file")

	// ErrCommandExecutionFailed is returned when the run command exits with a failure.
	ErrCommandExecutionFailed = zerr.New("command execution failed")
)
