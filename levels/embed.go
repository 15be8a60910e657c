// Package levels embeds the built-in tengo level layouts.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/milk9111/sandpit/level"
)

//go:embed *.tengo
var ScriptsFS embed.FS

var ErrNotFound = errors.New("levels: script not found")

// Load resolves name to a level script. An existing file on disk wins;
// otherwise name is looked up among the embedded scripts, with or without
// its .tengo extension.
func Load(name string) (*level.Script, error) {
	if name == "" {
		return nil, ErrNotFound
	}
	if info, err := os.Stat(name); err == nil && !info.IsDir() {
		return level.LoadScript(name)
	}
	clean := cleanScriptPath(name)
	src, err := ScriptsFS.ReadFile(clean)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return level.NewScript(clean, src), nil
}

// Names lists the embedded scripts without extension.
func Names() []string {
	matches, _ := fs.Glob(ScriptsFS, "*.tengo")
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(m, ".tengo"))
	}
	sort.Strings(names)
	return names
}

func cleanScriptPath(name string) string {
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	if !strings.HasSuffix(s, ".tengo") {
		s += ".tengo"
	}
	return s
}
