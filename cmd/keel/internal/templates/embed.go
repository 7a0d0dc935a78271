// Package templates provides embedded template files for project creation.
package templates

import (
	"embed"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed init
var FS embed.FS

// InitData contains the values substituted into the init templates.
type InitData struct {
	ProjectName string
	ModulePath  string
}

// Render reads the embedded template at path and executes it with data.
func Render(path string, data InitData) (string, error) {
	content, err := FS.ReadFile(path)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(path).Parse(string(content))
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ListFiles returns all files in the embedded filesystem under the given
// path.
func ListFiles(path string) ([]string, error) {
	var files []string
	err := fs.WalkDir(FS, path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			files = append(files, p)
		}
		return nil
	})
	return files, err
}

// ReadFile reads a file from the embedded filesystem.
func ReadFile(path string) ([]byte, error) {
	return FS.ReadFile(path)
}
