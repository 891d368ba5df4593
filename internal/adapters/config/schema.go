package config

// UserConfig represents the structure of the brisk.config.yaml file.
// Pointer fields distinguish an absent key from its zero value.
type UserConfig struct {
	DefineVersion *bool             `yaml:"defineVersion"`
	Format        *string           `yaml:"format"`
	DropLabels    []string          `yaml:"dropLabels"`
	Define        map[string]string `yaml:"define"`
	Tsconfig      *string           `yaml:"tsconfig"`
	Mode          *string           `yaml:"mode"`
	Env           *string           `yaml:"env"`
	Sourcemap     *bool             `yaml:"sourcemap"`
	Watch         *WatchDTO         `yaml:"watch"`
	Language      *string           `yaml:"language"`
	Source        *string           `yaml:"source"`
	OutDir        *string           `yaml:"outdir"`
}

// WatchDTO represents the watch section of the user config.
type WatchDTO struct {
	Command *string `yaml:"command"`
}

// LoadStatus classifies the outcome of loading the optional user config.
type LoadStatus int

const (
	// LoadAbsent means no config file exists at the resolved path.
	LoadAbsent LoadStatus = iota
	// LoadFound means the file was read and parsed.
	LoadFound
	// LoadFailed means the file exists but could not be read or parsed.
	LoadFailed
)

// LoadResult is the outcome of loading the optional user config.
type LoadResult struct {
	Status LoadStatus
	Path   string
	// Config is only meaningful when Status is LoadFound.
	Config UserConfig
	// Err is set when Status is LoadFailed.
	Err error
}

// tsconfigDTO is the part of a tsconfig/jsconfig file the resolver inspects.
type tsconfigDTO struct {
	Extends any `json:"extends"`
}

// manifestDTO is the part of package.json the resolver inspects.
type manifestDTO struct {
	Version string `json:"version"`
}
