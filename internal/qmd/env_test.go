package qmd

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnv_PrependsExtraDirFirst(t *testing.T) {
	base := []string{"HOME=/home/u", "PATH=/usr/bin:/bin", "LANG=C"}

	env := Env(base, "/opt/qmd/bin")

	path := pathEntry(t, env)
	parts := strings.Split(path, string(os.PathListSeparator))
	require.Equal(t, "/opt/qmd/bin", parts[0], "extra dir comes first")
	require.Contains(t, parts, "/usr/local/bin")
	require.Equal(t, "/bin", parts[len(parts)-1], "inherited path comes last")
}

func TestEnv_NoExtraDir(t *testing.T) {
	base := []string{"PATH=/usr/bin"}

	env := Env(base, "")

	path := pathEntry(t, env)
	parts := strings.Split(path, string(os.PathListSeparator))
	require.NotEqual(t, "", parts[0])
	require.Contains(t, parts, "/usr/local/bin")
	require.Equal(t, "/usr/bin", parts[len(parts)-1])
}

func TestEnv_OtherVariablesUntouched(t *testing.T) {
	base := []string{"HOME=/home/u", "PATH=/usr/bin", "EDITOR=vi"}

	env := Env(base, "/extra")

	require.Contains(t, env, "HOME=/home/u")
	require.Contains(t, env, "EDITOR=vi")
	require.Len(t, env, len(base))
}

func TestEnv_MissingPathGetsOne(t *testing.T) {
	env := Env([]string{"HOME=/home/u"}, "/extra")

	path := pathEntry(t, env)
	require.True(t, strings.HasPrefix(path, "/extra"+string(os.PathListSeparator)))
}

func pathEntry(t *testing.T, env []string) string {
	t.Helper()
	for _, kv := range env {
		if strings.HasPrefix(kv, "PATH=") {
			return strings.TrimPrefix(kv, "PATH=")
		}
	}
	t.Fatal("no PATH entry in env")
	return ""
}
