package qmd

import (
	"os"
	"path/filepath"
	"strings"
)

// wellKnownDirs are prepended to PATH so qmd and its runtime are found even
// when installed in user-local locations the parent process doesn't know about.
func wellKnownDirs() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	dirs := []string{}
	if home != "" {
		dirs = append(dirs,
			filepath.Join(home, ".local", "bin"),
			filepath.Join(home, ".cargo", "bin"),
			filepath.Join(home, ".bun", "bin"),
			filepath.Join(home, "go", "bin"),
		)
	}
	dirs = append(dirs, "/usr/local/bin", "/opt/homebrew/bin")
	return dirs
}

// Env returns a copy of base with the PATH entry rebuilt: the extra directory
// first, then well-known install directories, then the inherited search path.
// Every other variable passes through untouched.
func Env(base []string, extraDir string) []string {
	sep := string(os.PathListSeparator)

	prepend := []string{}
	if extraDir != "" {
		prepend = append(prepend, extraDir)
	}
	prepend = append(prepend, wellKnownDirs()...)

	env := make([]string, 0, len(base)+1)
	found := false
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok && k == "PATH" {
			found = true
			env = append(env, "PATH="+strings.Join(append(prepend, v), sep))
			continue
		}
		env = append(env, kv)
	}
	if !found {
		env = append(env, "PATH="+strings.Join(prepend, sep))
	}
	return env
}
