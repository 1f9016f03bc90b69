// Package levels holds the built-in level files, so the binaries work without any file around.
package levels

import (
	"embed"
	"path"
	"slices"
	"strings"

	"github.com/janpfeifer/chaseGo/internal/match"
	"github.com/pkg/errors"
)

//go:embed *.yaml
var levelFiles embed.FS

// Names of the built-in levels, sorted.
func Names() []string {
	entries, err := levelFiles.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())))
	}
	slices.Sort(names)
	return names
}

// Load a built-in level by name, or, if there is no such built-in level, from the file with the given path.
func Load(name string) (*match.Level, error) {
	contents, err := levelFiles.ReadFile(name + ".yaml")
	if err != nil {
		return match.LoadLevel(name)
	}
	level, err := match.ParseLevel(contents)
	if err != nil {
		return nil, errors.WithMessagef(err, "built-in level %q", name)
	}
	return level, nil
}
