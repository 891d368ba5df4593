package config_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/brisk/internal/adapters/config"
	"go.trai.ch/brisk/internal/core/domain"
	"go.trai.ch/brisk/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const extendingTsconfig = `{
  // generated base
  "extends": "./.brisk/tsconfig.json",
  "compilerOptions": {},
}
`

type fakeEnv map[string]string

func (e fakeEnv) lookup(key string) (string, bool) {
	v, ok := e[key]
	return v, ok
}

func (e fakeEnv) set(key, value string) error {
	e[key] = value
	return nil
}

func createFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
}

// newProject creates a minimal project with a package manifest and an extending tsconfig.
func newProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	createFile(t, root, "package.json", `{"name": "app", "version": "1.4.0"}`)
	createFile(t, root, "tsconfig.json", extendingTsconfig)
	return root
}

func newResolver(t *testing.T, env fakeEnv) (*config.Resolver, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	return config.NewResolver(mockLogger, config.NewOSFS(), config.WithEnv(env.lookup, env.set)), mockLogger
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func TestResolve_Defaults(t *testing.T) {
	root := newProject(t)
	r, _ := newResolver(t, fakeEnv{})

	cfg, err := r.Resolve(t.Context(), domain.BuildOptions{Root: root})
	require.NoError(t, err)

	assert.Equal(t, domain.ModeDevelopment, cfg.Mode)
	assert.Equal(t, domain.FormatESM, cfg.Format)
	assert.Equal(t, domain.LanguageTypeScript, cfg.Language)
	assert.True(t, cfg.DefineVersion)
	assert.False(t, cfg.Sourcemap)
	assert.Equal(t, "tsconfig.json", cfg.TsconfigPath)
	assert.Equal(t, ".env", cfg.EnvFilePath)
	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, "src", cfg.SourceDir)
	assert.Equal(t, "dist", cfg.OutDir)
	assert.Nil(t, cfg.Watch)
	assert.Equal(t, map[string]string{
		"__DEV__":     "true",
		"__PROD__":    "false",
		"__VERSION__": `"1.4.0"`,
	}, cfg.Defines)
	assert.Equal(t, []string{"PROD"}, cfg.DropLabels)
}

func TestResolve_Precedence(t *testing.T) {
	root := newProject(t)
	createFile(t, root, "brisk.config.yaml", `
format: cjs
mode: production
sourcemap: true
dropLabels: [TRACE]
define:
  API_URL: '"https://api.example.com"'
watch:
  command: node dist/index.js
`)

	t.Run("file overrides defaults", func(t *testing.T) {
		r, _ := newResolver(t, fakeEnv{})

		cfg, err := r.Resolve(t.Context(), domain.BuildOptions{Root: root})
		require.NoError(t, err)

		assert.Equal(t, domain.FormatCJS, cfg.Format)
		assert.Equal(t, domain.ModeProduction, cfg.Mode)
		assert.True(t, cfg.Sourcemap)
		assert.Equal(t, []string{"DEV", "TRACE"}, cfg.DropLabels)
		assert.Equal(t, `"https://api.example.com"`, cfg.Defines["API_URL"])
		assert.Equal(t, "true", cfg.Defines["__PROD__"])
	})

	t.Run("cli overrides file", func(t *testing.T) {
		r, _ := newResolver(t, fakeEnv{})

		cfg, err := r.Resolve(t.Context(), domain.BuildOptions{
			Root:         root,
			Format:       strPtr("esm"),
			Mode:         strPtr("development"),
			Sourcemap:    boolPtr(false),
			Watch:        true,
			WatchCommand: strPtr("node dist/server.js"),
		})
		require.NoError(t, err)

		assert.Equal(t, domain.FormatESM, cfg.Format)
		assert.Equal(t, domain.ModeDevelopment, cfg.Mode)
		assert.False(t, cfg.Sourcemap)
		require.NotNil(t, cfg.Watch)
		require.NotNil(t, cfg.Watch.Command)
		assert.Equal(t, "node dist/server.js", *cfg.Watch.Command)
	})

	t.Run("file watch command used when flag absent", func(t *testing.T) {
		r, _ := newResolver(t, fakeEnv{})

		cfg, err := r.Resolve(t.Context(), domain.BuildOptions{Root: root, Watch: true})
		require.NoError(t, err)

		require.NotNil(t, cfg.Watch.Command)
		assert.Equal(t, "node dist/index.js", *cfg.Watch.Command)
	})

	t.Run("node env overrides cli", func(t *testing.T) {
		r, mockLogger := newResolver(t, fakeEnv{"NODE_ENV": "development"})
		mockLogger.EXPECT().Info("[config] mode overridden by NODE_ENV=development")

		cfg, err := r.Resolve(t.Context(), domain.BuildOptions{Root: root, Mode: strPtr("production")})
		require.NoError(t, err)

		assert.Equal(t, domain.ModeDevelopment, cfg.Mode)
		assert.Equal(t, []string{"PROD", "TRACE"}, cfg.DropLabels)
	})
}

func TestResolve_EmptyNodeEnvIgnored(t *testing.T) {
	root := newProject(t)
	r, _ := newResolver(t, fakeEnv{"NODE_ENV": ""})

	cfg, err := r.Resolve(t.Context(), domain.BuildOptions{Root: root, Mode: strPtr("production")})
	require.NoError(t, err)
	assert.Equal(t, domain.ModeProduction, cfg.Mode)
}

func TestResolve_EnvFileSetsNodeEnv(t *testing.T) {
	root := newProject(t)
	createFile(t, root, ".env", "NODE_ENV=production\nAPI_KEY=secret\n")

	env := fakeEnv{"API_KEY": "from-shell"}
	r, mockLogger := newResolver(t, env)
	mockLogger.EXPECT().Info("[config] mode overridden by NODE_ENV=production")

	cfg, err := r.Resolve(t.Context(), domain.BuildOptions{Root: root})
	require.NoError(t, err)

	assert.Equal(t, domain.ModeProduction, cfg.Mode)
	assert.Equal(t, "production", env["NODE_ENV"])
	assert.Equal(t, "from-shell", env["API_KEY"], "existing variables are not overridden")
}

func TestResolve_CustomEnvFile(t *testing.T) {
	root := newProject(t)
	createFile(t, root, "brisk.config.yaml", "env: config/.env.local\n")
	createFile(t, root, "config/.env.local", "FEATURE=on\n")

	env := fakeEnv{}
	r, _ := newResolver(t, env)

	cfg, err := r.Resolve(t.Context(), domain.BuildOptions{Root: root})
	require.NoError(t, err)

	assert.Equal(t, "config/.env.local", cfg.EnvFilePath)
	assert.Equal(t, "on", env["FEATURE"])
}

func TestResolve_WatchCommandWithoutWatch(t *testing.T) {
	root := newProject(t)
	r, _ := newResolver(t, fakeEnv{})

	_, err := r.Resolve(t.Context(), domain.BuildOptions{Root: root, WatchCommand: strPtr("npm start")})
	require.ErrorIs(t, err, domain.ErrWatchCommandWithoutWatch)
	require.ErrorIs(t, err, domain.ErrConfig)

	_, statErr := os.Stat(filepath.Join(root, ".brisk"))
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "no artifacts may be written")
}

func TestResolve_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		opts domain.BuildOptions
		env  fakeEnv
		want error
	}{
		{name: "mode flag", opts: domain.BuildOptions{Mode: strPtr("staging")}, want: domain.ErrInvalidMode},
		{name: "node env", env: fakeEnv{"NODE_ENV": "test"}, want: domain.ErrInvalidMode},
		{name: "format", opts: domain.BuildOptions{Format: strPtr("iife")}, want: domain.ErrInvalidFormat},
		{name: "language", opts: domain.BuildOptions{Language: strPtr("coffee")}, want: domain.ErrInvalidLanguage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := newProject(t)
			env := tt.env
			if env == nil {
				env = fakeEnv{}
			}
			r, mockLogger := newResolver(t, env)
			mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()

			tt.opts.Root = root
			_, err := r.Resolve(t.Context(), tt.opts)

			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, domain.ErrConfig)
		})
	}
}

func TestResolve_ConfigLoadFailed(t *testing.T) {
	root := newProject(t)
	createFile(t, root, "brisk.config.yaml", "format: [unterminated\n")
	r, _ := newResolver(t, fakeEnv{})

	_, err := r.Resolve(t.Context(), domain.BuildOptions{Root: root})
	require.ErrorIs(t, err, domain.ErrConfigLoadFailed)
}

func TestResolve_ExplicitConfigPath(t *testing.T) {
	root := newProject(t)
	createFile(t, root, "configs/build.yaml", "format: cjs\n")
	r, _ := newResolver(t, fakeEnv{})

	cfg, err := r.Resolve(t.Context(), domain.BuildOptions{Root: root, ConfigPath: "configs/build.yaml"})
	require.NoError(t, err)
	assert.Equal(t, domain.FormatCJS, cfg.Format)
}

func TestResolve_ProjectConfig(t *testing.T) {
	t.Run("missing tsconfig", func(t *testing.T) {
		root := t.TempDir()
		createFile(t, root, "package.json", `{"version": "1.0.0"}`)
		r, mockLogger := newResolver(t, fakeEnv{})
		mockLogger.EXPECT().Warn(gomock.Any())

		_, err := r.Resolve(t.Context(), domain.BuildOptions{Root: root})
		require.ErrorIs(t, err, domain.ErrMissingProjectConfig)
	})

	t.Run("malformed tsconfig", func(t *testing.T) {
		root := newProject(t)
		createFile(t, root, "tsconfig.json", `{"extends": `)
		r, mockLogger := newResolver(t, fakeEnv{})
		mockLogger.EXPECT().Warn(gomock.Any())

		_, err := r.Resolve(t.Context(), domain.BuildOptions{Root: root})
		require.ErrorIs(t, err, domain.ErrMissingProjectConfig)
	})

	t.Run("not extending warns", func(t *testing.T) {
		root := newProject(t)
		createFile(t, root, "tsconfig.json", `{"compilerOptions": {"strict": true}}`)
		r, mockLogger := newResolver(t, fakeEnv{})
		mockLogger.EXPECT().Warn("tsconfig.json does not extend ./.brisk/tsconfig.json, generated defines will not be typed")

		_, err := r.Resolve(t.Context(), domain.BuildOptions{Root: root})
		require.NoError(t, err)
	})

	t.Run("extends list", func(t *testing.T) {
		root := newProject(t)
		createFile(t, root, "tsconfig.json", `{"extends": ["@tsconfig/node22", ".brisk/tsconfig"]}`)
		r, _ := newResolver(t, fakeEnv{})

		_, err := r.Resolve(t.Context(), domain.BuildOptions{Root: root})
		require.NoError(t, err)
	})

	t.Run("javascript uses jsconfig", func(t *testing.T) {
		root := newProject(t)
		createFile(t, root, "jsconfig.json", extendingTsconfig)
		r, _ := newResolver(t, fakeEnv{})

		cfg, err := r.Resolve(t.Context(), domain.BuildOptions{Root: root, Language: strPtr("javascript")})
		require.NoError(t, err)
		assert.Equal(t, "jsconfig.json", cfg.TsconfigPath)
	})

	t.Run("explicit path", func(t *testing.T) {
		root := newProject(t)
		createFile(t, root, "tsconfig.build.json", extendingTsconfig)
		r, _ := newResolver(t, fakeEnv{})

		cfg, err := r.Resolve(t.Context(), domain.BuildOptions{Root: root, Tsconfig: strPtr("tsconfig.build.json")})
		require.NoError(t, err)
		assert.Equal(t, "tsconfig.build.json", cfg.TsconfigPath)
	})
}

func TestResolve_PackageManifest(t *testing.T) {
	t.Run("missing manifest", func(t *testing.T) {
		root := t.TempDir()
		createFile(t, root, "tsconfig.json", extendingTsconfig)
		r, _ := newResolver(t, fakeEnv{})

		_, err := r.Resolve(t.Context(), domain.BuildOptions{Root: root})
		require.ErrorIs(t, err, domain.ErrPackageManifest)
	})

	t.Run("no version", func(t *testing.T) {
		root := newProject(t)
		createFile(t, root, "package.json", `{"name": "app"}`)
		r, _ := newResolver(t, fakeEnv{})

		_, err := r.Resolve(t.Context(), domain.BuildOptions{Root: root})
		require.ErrorIs(t, err, domain.ErrPackageManifest)
	})

	t.Run("version injection disabled", func(t *testing.T) {
		root := t.TempDir()
		createFile(t, root, "tsconfig.json", extendingTsconfig)
		createFile(t, root, "brisk.config.yaml", "defineVersion: false\n")
		r, _ := newResolver(t, fakeEnv{})

		cfg, err := r.Resolve(t.Context(), domain.BuildOptions{Root: root})
		require.NoError(t, err)
		assert.NotContains(t, cfg.Defines, "__VERSION__")
	})
}

func TestResolve_WorkingDirectoryRoot(t *testing.T) {
	root := newProject(t)
	ctrl := gomock.NewController(t)
	env := fakeEnv{}
	r := config.NewResolver(mocks.NewMockLogger(ctrl), config.NewOSFS(),
		config.WithEnv(env.lookup, env.set),
		config.WithWorkingDir(func() (string, error) { return root, nil }),
	)

	cfg, err := r.Resolve(t.Context(), domain.BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, root, cfg.Root)
}

func TestLoad_Status(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "project")
	fsys := config.NewMapFSAdapter(root, fstest.MapFS{
		"brisk.config.yaml": {Data: []byte("mode: production\nwatch:\n  command: \"\"\n")},
		"broken.yaml":       {Data: []byte("mode: [\n")},
		"configs":           {Mode: fs.ModeDir},
	})
	r := config.NewResolver(mocks.NewMockLogger(gomock.NewController(t)), fsys)

	found := r.Load(filepath.Join(root, "brisk.config.yaml"))
	require.Equal(t, config.LoadFound, found.Status)
	require.NotNil(t, found.Config.Mode)
	assert.Equal(t, "production", *found.Config.Mode)
	require.NotNil(t, found.Config.Watch)
	require.NotNil(t, found.Config.Watch.Command)
	assert.Empty(t, *found.Config.Watch.Command, "an explicit empty command disables the run step")

	absent := r.Load(filepath.Join(root, "missing.yaml"))
	assert.Equal(t, config.LoadAbsent, absent.Status)
	require.NoError(t, absent.Err)

	failed := r.Load(filepath.Join(root, "broken.yaml"))
	assert.Equal(t, config.LoadFailed, failed.Status)
	require.Error(t, failed.Err)

	dir := r.Load(filepath.Join(root, "configs"))
	assert.Equal(t, config.LoadFailed, dir.Status)
	require.ErrorContains(t, dir.Err, "is a directory")
}

func TestResolve_ConfigPathIsDirectory(t *testing.T) {
	root := newProject(t)
	require.NoError(t, os.Mkdir(filepath.Join(root, domain.ConfigFileName), domain.DirPerm))
	r, _ := newResolver(t, fakeEnv{})

	_, err := r.Resolve(t.Context(), domain.BuildOptions{Root: root})
	require.ErrorIs(t, err, domain.ErrConfigLoadFailed)
}
