package domain

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"
)

const (
	// DevDefine is true in development builds.
	DevDefine = "__DEV__"
	// ProdDefine is true in production builds.
	ProdDefine = "__PROD__"
	// VersionDefine holds the consuming project's version when version injection is on.
	VersionDefine = "__VERSION__"

	// LabelDev guards blocks that only exist in development builds.
	LabelDev = "DEV"
	// LabelProd guards blocks that only exist in production builds.
	LabelProd = "PROD"
)

// InactiveLabel returns the drop label of the mode that is not being built.
func (m Mode) InactiveLabel() string {
	if m == ModeProduction {
		return LabelDev
	}
	return LabelProd
}

// BuildDefines assembles the define map of a configuration.
// User defines are applied first so the mode booleans and the version always win.
// An empty version leaves __VERSION__ undefined.
func BuildDefines(mode Mode, version string, user map[string]string) map[string]string {
	defines := make(map[string]string, len(user)+3)
	maps.Copy(defines, user)

	defines[DevDefine] = strconv.FormatBool(mode == ModeDevelopment)
	defines[ProdDefine] = strconv.FormatBool(mode == ModeProduction)
	if version != "" {
		defines[VersionDefine] = jsonString(version)
	}
	return defines
}

// DropLabelsFor returns the sorted set of labels stripped at build time:
// the inactive mode's label plus every user label.
func DropLabelsFor(mode Mode, user []string) []string {
	labels := make([]string, 0, len(user)+1)
	labels = append(labels, mode.InactiveLabel())
	for _, l := range user {
		if l != "" {
			labels = append(labels, l)
		}
	}
	slices.Sort(labels)
	return slices.Compact(labels)
}

// EngineDefines returns the define map handed to the bundling engine:
// the configuration's defines plus the engine-level environment flags.
func EngineDefines(cfg *BuildConfiguration) map[string]string {
	defines := make(map[string]string, len(cfg.Defines)+3)
	maps.Copy(defines, cfg.Defines)

	defines["process.env.NODE_ENV"] = jsonString(string(cfg.Mode))
	defines["import.meta.env.DEV"] = strconv.FormatBool(cfg.Mode == ModeDevelopment)
	defines["import.meta.env.PROD"] = strconv.FormatBool(cfg.Mode == ModeProduction)
	return defines
}

func jsonString(s string) string {
	b, _ := json.Marshal(s) //nolint:errchkjson // marshaling a string cannot fail
	return string(b)
}
