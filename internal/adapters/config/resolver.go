// Package config resolves the build configuration of one brisk invocation.
package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/tailscale/hujson"
	"go.trai.ch/brisk/internal/core/domain"
	"go.trai.ch/brisk/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// NodeEnvVar overrides the resolved mode when set to a non-empty value.
const NodeEnvVar = "NODE_ENV"

// Resolver implements ports.ConfigResolver.
type Resolver struct {
	logger    ports.Logger
	fs        FileSystem
	lookupEnv func(key string) (string, bool)
	setEnv    func(key, value string) error
	getwd     func() (string, error)
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithEnv replaces the process environment accessors.
func WithEnv(lookup func(key string) (string, bool), set func(key, value string) error) Option {
	return func(r *Resolver) {
		r.lookupEnv = lookup
		r.setEnv = set
	}
}

// WithWorkingDir replaces the working directory used when no root is given.
func WithWorkingDir(getwd func() (string, error)) Option {
	return func(r *Resolver) {
		r.getwd = getwd
	}
}

// NewResolver creates a new Resolver reading project files through fsys.
func NewResolver(logger ports.Logger, fsys FileSystem, opts ...Option) *Resolver {
	r := &Resolver{
		logger:    logger,
		fs:        fsys,
		lookupEnv: os.LookupEnv,
		setEnv:    os.Setenv,
		getwd:     os.Getwd,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// settings holds the raw values while the layers are merged.
type settings struct {
	mode          string
	format        string
	language      string
	tsconfig      string
	envFile       string
	sourceDir     string
	outDir        string
	defineVersion bool
	sourcemap     bool
	defines       map[string]string
	dropLabels    []string
	watchCommand  *string
}

func defaultSettings() settings {
	return settings{
		mode:          string(domain.ModeDevelopment),
		format:        string(domain.FormatESM),
		language:      string(domain.LanguageTypeScript),
		envFile:       domain.DefaultEnvFile,
		sourceDir:     domain.DefaultSourceDir,
		outDir:        domain.DefaultOutDir,
		defineVersion: true,
	}
}

// Resolve merges defaults, the user config file and the CLI options into a validated configuration.
func (r *Resolver) Resolve(ctx context.Context, opts domain.BuildOptions) (*domain.BuildConfiguration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.WatchCommand != nil && !opts.Watch {
		return nil, domain.ErrWatchCommandWithoutWatch
	}

	root, err := r.resolveRoot(opts.Root)
	if err != nil {
		return nil, err
	}

	s := defaultSettings()

	loaded := r.Load(configPath(root, opts.ConfigPath))
	switch loaded.Status {
	case LoadFailed:
		return nil, errors.Join(domain.ErrConfigLoadFailed, zerr.With(loaded.Err, "path", loaded.Path))
	case LoadFound:
		s.applyFile(&loaded.Config)
	case LoadAbsent:
	}

	s.applyOptions(&opts)

	if err := r.loadEnvFile(resolvePath(root, s.envFile)); err != nil {
		return nil, err
	}

	if nodeEnv, ok := r.lookupEnv(NodeEnvVar); ok && nodeEnv != "" {
		s.mode = nodeEnv
		r.logger.Info(fmt.Sprintf("[config] mode overridden by %s=%s", NodeEnvVar, nodeEnv))
	}

	mode, format, language, err := s.validate()
	if err != nil {
		return nil, err
	}

	if s.tsconfig == "" {
		s.tsconfig = language.ProjectConfigFileName()
	}
	if err := r.checkProjectConfig(root, s.tsconfig); err != nil {
		return nil, err
	}

	var version string
	if s.defineVersion {
		version, err = r.readVersion(filepath.Join(root, domain.PackageManifestFileName))
		if err != nil {
			return nil, err
		}
	}

	cfg := &domain.BuildConfiguration{
		Mode:             mode,
		Format:           format,
		Language:         language,
		DefineVersion:    s.defineVersion,
		Defines:          domain.BuildDefines(mode, version, s.defines),
		DropLabels:       domain.DropLabelsFor(mode, s.dropLabels),
		TsconfigPath:     s.tsconfig,
		EnvFilePath:      s.envFile,
		Sourcemap:        s.sourcemap,
		SuppressWarnings: opts.NoWarnings,
		Root:             root,
		SourceDir:        s.sourceDir,
		OutDir:           s.outDir,
	}
	if opts.Watch {
		cfg.Watch = &domain.WatchConfig{Command: s.watchCommand}
	}

	return cfg, nil
}

// Load reads the optional user config file at path.
func (r *Resolver) Load(path string) LoadResult {
	info, err := r.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return LoadResult{Status: LoadAbsent, Path: path}
		}
		return LoadResult{Status: LoadFailed, Path: path, Err: zerr.Wrap(err, "stat config file")}
	}
	if info.IsDir() {
		return LoadResult{Status: LoadFailed, Path: path, Err: zerr.New("config path is a directory")}
	}

	data, err := r.fs.ReadFile(path)
	if err != nil {
		return LoadResult{Status: LoadFailed, Path: path, Err: zerr.Wrap(err, "read config file")}
	}

	var uc UserConfig
	if err := yaml.Unmarshal(data, &uc); err != nil {
		return LoadResult{Status: LoadFailed, Path: path, Err: zerr.Wrap(err, "parse config file")}
	}

	return LoadResult{Status: LoadFound, Path: path, Config: uc}
}

func (r *Resolver) resolveRoot(root string) (string, error) {
	if root == "" {
		wd, err := r.getwd()
		if err != nil {
			return "", zerr.Wrap(err, "determine working directory")
		}
		root = wd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "resolve project root"), "root", root)
	}
	return abs, nil
}

func (s *settings) applyFile(uc *UserConfig) {
	setIf(&s.mode, uc.Mode)
	setIf(&s.format, uc.Format)
	setIf(&s.language, uc.Language)
	setIf(&s.tsconfig, uc.Tsconfig)
	setIf(&s.envFile, uc.Env)
	setIf(&s.sourceDir, uc.Source)
	setIf(&s.outDir, uc.OutDir)
	setIf(&s.defineVersion, uc.DefineVersion)
	setIf(&s.sourcemap, uc.Sourcemap)

	if uc.Define != nil {
		s.defines = uc.Define
	}
	if uc.DropLabels != nil {
		s.dropLabels = uc.DropLabels
	}
	if uc.Watch != nil && uc.Watch.Command != nil {
		s.watchCommand = uc.Watch.Command
	}
}

func (s *settings) applyOptions(opts *domain.BuildOptions) {
	setIf(&s.mode, opts.Mode)
	setIf(&s.format, opts.Format)
	setIf(&s.language, opts.Language)
	setIf(&s.tsconfig, opts.Tsconfig)
	setIf(&s.sourcemap, opts.Sourcemap)

	if opts.WatchCommand != nil {
		s.watchCommand = opts.WatchCommand
	}
}

func (s *settings) validate() (domain.Mode, domain.Format, domain.Language, error) {
	mode := domain.Mode(s.mode)
	if !mode.Valid() {
		return "", "", "", errors.Join(domain.ErrInvalidMode, zerr.With(zerr.New("unsupported mode"), "mode", s.mode))
	}

	format := domain.Format(s.format)
	if !format.Valid() {
		return "", "", "", errors.Join(domain.ErrInvalidFormat, zerr.With(zerr.New("unsupported format"), "format", s.format))
	}

	language := domain.Language(s.language)
	if !language.Valid() {
		return "", "", "", errors.Join(domain.ErrInvalidLanguage, zerr.With(zerr.New("unsupported language"), "language", s.language))
	}

	return mode, format, language, nil
}

// loadEnvFile loads path into the process environment without overriding
// variables that are already set. A missing file is skipped.
func (r *Resolver) loadEnvFile(path string) error {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.Join(domain.ErrEnvFileLoadFailed, zerr.With(zerr.Wrap(err, "read env file"), "path", path))
	}

	vars, err := godotenv.Parse(bytes.NewReader(data))
	if err != nil {
		return errors.Join(domain.ErrEnvFileLoadFailed, zerr.With(zerr.Wrap(err, "parse env file"), "path", path))
	}

	for key, value := range vars {
		if _, exists := r.lookupEnv(key); exists {
			continue
		}
		if err := r.setEnv(key, value); err != nil {
			return errors.Join(domain.ErrEnvFileLoadFailed, zerr.With(zerr.Wrap(err, "set env var"), "key", key))
		}
	}
	return nil
}

// checkProjectConfig requires the tsconfig/jsconfig file to exist and parse,
// and warns when it does not extend the generated configuration.
func (r *Resolver) checkProjectConfig(root, name string) error {
	path := resolvePath(root, name)
	guidance := fmt.Sprintf("[config] %s must exist and extend %q, e.g. {\"extends\": %q}",
		name, domain.GeneratedTsconfigRef(), domain.GeneratedTsconfigRef())

	data, err := r.fs.ReadFile(path)
	if err != nil {
		r.logger.Warn(guidance)
		return errors.Join(domain.ErrMissingProjectConfig, zerr.With(zerr.Wrap(err, "read project config"), "path", path))
	}

	standard, err := hujson.Standardize(data)
	if err != nil {
		r.logger.Warn(guidance)
		return errors.Join(domain.ErrMissingProjectConfig, zerr.With(zerr.Wrap(err, "parse project config"), "path", path))
	}

	var dto tsconfigDTO
	if err := json.Unmarshal(standard, &dto); err != nil {
		r.logger.Warn(guidance)
		return errors.Join(domain.ErrMissingProjectConfig, zerr.With(zerr.Wrap(err, "decode project config"), "path", path))
	}

	generated := filepath.Join(root, domain.DefaultBriskPath(), domain.GeneratedTsconfigFileName)
	if !extendsPath(filepath.Dir(path), dto.Extends, generated) {
		r.logger.Warn(fmt.Sprintf("%s does not extend %s, generated defines will not be typed",
			name, domain.GeneratedTsconfigRef()))
	}
	return nil
}

// extendsPath reports whether the extends value (a string or a list of strings)
// references target, relative to dir.
func extendsPath(dir string, extends any, target string) bool {
	var refs []string
	switch v := extends.(type) {
	case string:
		refs = []string{v}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				refs = append(refs, s)
			}
		}
	}

	for _, ref := range refs {
		p := filepath.Clean(resolvePath(dir, filepath.FromSlash(ref)))
		if p == target || p+".json" == target {
			return true
		}
	}
	return false
}

func (r *Resolver) readVersion(path string) (string, error) {
	data, err := r.fs.ReadFile(path)
	if err != nil {
		return "", errors.Join(domain.ErrPackageManifest, zerr.With(zerr.Wrap(err, "read package manifest"), "path", path))
	}

	var manifest manifestDTO
	if err := json.Unmarshal(data, &manifest); err != nil {
		return "", errors.Join(domain.ErrPackageManifest, zerr.With(zerr.Wrap(err, "parse package manifest"), "path", path))
	}

	version := strings.TrimSpace(manifest.Version)
	if version == "" {
		return "", errors.Join(domain.ErrPackageManifest, zerr.With(zerr.New("package manifest has no version"), "path", path))
	}
	return version, nil
}

func configPath(root, path string) string {
	if path == "" {
		return filepath.Join(root, domain.ConfigFileName)
	}
	return resolvePath(root, path)
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
