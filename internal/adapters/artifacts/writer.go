// Package artifacts writes the generated files the bundling engine and editors read.
package artifacts

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/brisk/internal/core/domain"
	"go.trai.ch/zerr"
)

// Header is the first line of every generated declaration file.
const Header = "// Code generated by brisk. DO NOT EDIT."

var (
	identifierRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	numberRe     = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)
)

// Writer implements ports.ArtifactWriter on the local filesystem.
type Writer struct {
	mu sync.Mutex
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write regenerates the ambient declaration file and the base tsconfig in paths.Dir.
func (w *Writer) Write(ctx context.Context, format domain.Format, defines map[string]string, paths domain.ArtifactPaths) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tsconfig, err := RenderTsconfig(format, paths)
	if err != nil {
		return errors.Join(domain.ErrArtifactWriteFailed, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := os.MkdirAll(paths.Dir, domain.DirPerm); err != nil {
		return errors.Join(domain.ErrArtifactWriteFailed, zerr.With(zerr.Wrap(err, "create artifact directory"), "path", paths.Dir))
	}

	if err := writeFile(paths.AmbientDeclPath(), RenderAmbientDecl(defines)); err != nil {
		return err
	}
	return writeFile(paths.TsconfigPath(), tsconfig)
}

func writeFile(path string, data []byte) error {
	//nolint:gosec // path is derived from the project root
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return errors.Join(domain.ErrArtifactWriteFailed, zerr.With(zerr.Wrap(err, "write artifact"), "path", path))
	}
	return nil
}

// RenderAmbientDecl renders one `declare const` line per identifier-shaped define, sorted by name.
// Dotted defines such as process.env.NODE_ENV have no ambient declaration.
func RenderAmbientDecl(defines map[string]string) []byte {
	names := make([]string, 0, len(defines))
	for name := range defines {
		if identifierRe.MatchString(name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)

	var b strings.Builder
	b.WriteString(Header)
	b.WriteString("\n\n")
	for _, name := range names {
		b.WriteString("declare const ")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(literalType(defines[name]))
		b.WriteString(";\n")
	}
	return []byte(b.String())
}

// literalType infers the TypeScript type of a JS literal.
func literalType(literal string) string {
	literal = strings.TrimSpace(literal)
	switch {
	case literal == "true" || literal == "false":
		return "boolean"
	case numberRe.MatchString(literal):
		return "number"
	case strings.HasPrefix(literal, `"`):
		var s string
		if json.Unmarshal([]byte(literal), &s) == nil {
			return "string"
		}
	}
	return "unknown"
}

type compilerOptions struct {
	Target            string `json:"target"`
	Module            string `json:"module"`
	ModuleResolution  string `json:"moduleResolution"`
	Strict            bool   `json:"strict"`
	ESModuleInterop   bool   `json:"esModuleInterop"`
	SkipLibCheck      bool   `json:"skipLibCheck"`
	ResolveJSONModule bool   `json:"resolveJsonModule"`
	IsolatedModules   bool   `json:"isolatedModules"`
	AllowJS           bool   `json:"allowJs"`
	NoEmit            bool   `json:"noEmit"`
}

type tsconfigFile struct {
	CompilerOptions compilerOptions `json:"compilerOptions"`
	Include         []string        `json:"include"`
}

// RenderTsconfig renders the base project configuration user configs extend.
// Include paths are relative to paths.Dir.
func RenderTsconfig(format domain.Format, paths domain.ArtifactPaths) ([]byte, error) {
	module, resolution := "ESNext", "Bundler"
	if format == domain.FormatCJS {
		module, resolution = "CommonJS", "Node10"
	}

	source, err := filepath.Rel(paths.Dir, paths.SourceDir)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "relativize source directory"), "source", paths.SourceDir)
	}

	file := tsconfigFile{
		CompilerOptions: compilerOptions{
			Target:            "ES2022",
			Module:            module,
			ModuleResolution:  resolution,
			Strict:            true,
			ESModuleInterop:   true,
			SkipLibCheck:      true,
			ResolveJSONModule: true,
			IsolatedModules:   true,
			AllowJS:           true,
			NoEmit:            true,
		},
		Include: []string{domain.AmbientDeclFileName, filepath.ToSlash(source)},
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return nil, zerr.Wrap(err, "marshal tsconfig")
	}
	return append(data, '\n'), nil
}
