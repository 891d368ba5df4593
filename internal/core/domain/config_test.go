package domain_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/brisk/internal/core/domain"
)

func TestBuildDefines(t *testing.T) {
	tests := []struct {
		name     string
		mode     domain.Mode
		version  string
		user     map[string]string
		expected map[string]string
	}{
		{
			name:    "development without version",
			mode:    domain.ModeDevelopment,
			version: "",
			expected: map[string]string{
				"__DEV__":  "true",
				"__PROD__": "false",
			},
		},
		{
			name:    "production with version",
			mode:    domain.ModeProduction,
			version: "1.2.3",
			expected: map[string]string{
				"__DEV__":     "false",
				"__PROD__":    "true",
				"__VERSION__": `"1.2.3"`,
			},
		},
		{
			name:    "user defines cannot override mode booleans",
			mode:    domain.ModeDevelopment,
			version: "",
			user: map[string]string{
				"__DEV__": "false",
				"API_URL": `"https://example.com"`,
			},
			expected: map[string]string{
				"__DEV__":  "true",
				"__PROD__": "false",
				"API_URL":  `"https://example.com"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.BuildDefines(tt.mode, tt.version, tt.user)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDropLabelsFor(t *testing.T) {
	assert.Equal(t, []string{"PROD"}, domain.DropLabelsFor(domain.ModeDevelopment, nil))
	assert.Equal(t, []string{"DEV"}, domain.DropLabelsFor(domain.ModeProduction, nil))
	assert.Equal(t,
		[]string{"DEBUG", "DEV", "TRACE"},
		domain.DropLabelsFor(domain.ModeProduction, []string{"TRACE", "DEBUG", "DEV", ""}),
	)
}

func TestEngineDefines(t *testing.T) {
	cfg := &domain.BuildConfiguration{
		Mode:    domain.ModeProduction,
		Defines: domain.BuildDefines(domain.ModeProduction, "", nil),
	}

	got := domain.EngineDefines(cfg)

	assert.Equal(t, `"production"`, got["process.env.NODE_ENV"])
	assert.Equal(t, "false", got["import.meta.env.DEV"])
	assert.Equal(t, "true", got["import.meta.env.PROD"])
	assert.Equal(t, "true", got["__PROD__"])
	assert.NotContains(t, cfg.Defines, "process.env.NODE_ENV", "engine defines must not leak into the configuration")
}

func TestModeAndFormatValidity(t *testing.T) {
	assert.True(t, domain.ModeDevelopment.Valid())
	assert.True(t, domain.ModeProduction.Valid())
	assert.False(t, domain.Mode("test").Valid())
	assert.False(t, domain.Mode("").Valid())

	assert.True(t, domain.FormatESM.Valid())
	assert.True(t, domain.FormatCJS.Valid())
	assert.False(t, domain.Format("iife").Valid())

	assert.Equal(t, "tsconfig.json", domain.LanguageTypeScript.ProjectConfigFileName())
	assert.Equal(t, "jsconfig.json", domain.LanguageJavaScript.ProjectConfigFileName())
}

func TestConfigErrorsShareParent(t *testing.T) {
	for _, err := range []error{
		domain.ErrInvalidMode,
		domain.ErrInvalidFormat,
		domain.ErrInvalidLanguage,
		domain.ErrWatchCommandWithoutWatch,
	} {
		require.True(t, errors.Is(err, domain.ErrConfig), "%v should be a config error", err)
	}
	assert.False(t, errors.Is(domain.ErrConfigLoadFailed, domain.ErrConfig))
}

func TestBuildConfigurationPaths(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "project")
	cfg := &domain.BuildConfiguration{
		Root:      root,
		SourceDir: "src",
		OutDir:    filepath.Join(root, "build"),
	}

	paths := cfg.ArtifactPaths()
	assert.Equal(t, filepath.Join(root, ".brisk"), paths.Dir)
	assert.Equal(t, filepath.Join(root, "src"), paths.SourceDir)
	assert.Equal(t, filepath.Join(root, ".brisk", "env.d.ts"), paths.AmbientDeclPath())
	assert.Equal(t, filepath.Join(root, ".brisk", "tsconfig.json"), paths.TsconfigPath())
	assert.Equal(t, filepath.Join(root, "build"), cfg.OutPath())
	assert.False(t, cfg.Watching())

	cfg.Watch = &domain.WatchConfig{}
	assert.True(t, cfg.Watching())
	assert.Equal(t, "./.brisk/tsconfig.json", domain.GeneratedTsconfigRef())
}
