package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sr "github.com/example/drillbot/internal/spaced_repetition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append(args, "--env-file", ""))
	require.NoError(t, rootCmd.Execute(), "drillbot %s", strings.Join(args, " "))
	return out.String()
}

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("DRILLBOT_DATABASE_DRIVER", "sqlite3")
	t.Setenv("DRILLBOT_DATABASE_DSN", filepath.Join(dir, "drill.db"))
	t.Setenv("DRILLBOT_DRILL_ALGORITHM", "sm5")
	t.Setenv("DRILLBOT_LOG_LEVEL", "error")
	return dir
}

func TestImportGradeAndMatrixRoundTrip(t *testing.T) {
	dir := setupEnv(t)
	deck := filepath.Join(dir, "deck.csv")
	require.NoError(t, os.WriteFile(deck, []byte("q,a\nFrance?,Paris,capitals\nSpain?,Madrid,capitals\n"), 0o600))

	out := run(t, "import", deck, "--deck-col", "C", "--start-row", "2")
	assert.Contains(t, out, "2 imported")

	out = run(t, "due")
	assert.Contains(t, out, "new (2)")
	assert.Contains(t, out, "2 cards due")

	out = run(t, "grade", "1", "5")
	assert.Contains(t, out, "1: interval -1.00 ->")

	out = run(t, "due")
	assert.Contains(t, out, "1 cards due")

	exported := filepath.Join(dir, "matrix.json")
	run(t, "matrix", "export", exported)
	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	var m sr.Matrix
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, 1, m.Len())

	replacement := filepath.Join(dir, "replacement.json")
	require.NoError(t, os.WriteFile(replacement, []byte(`{"2":{"2.5":2.7},"3":{"2.36":2.2}}`), 0o600))
	assert.Contains(t, run(t, "matrix", "import", replacement), "Imported 2 matrix entries")
	out = run(t, "matrix", "show")
	assert.Contains(t, out, "2 entries")
	assert.Contains(t, out, "n=2\tef=2.5\tof=2.7")

	workbook := filepath.Join(dir, "state.xlsx")
	assert.Contains(t, run(t, "export", workbook), "Exported 2 cards")
	assert.FileExists(t, workbook)
}

func TestSimulate(t *testing.T) {
	setupEnv(t)

	out := run(t, "simulate", "--algorithm", "simple8", "--steps", "10", "--seed", "3", "if", "else", "for")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 10)

	again := run(t, "simulate", "--algorithm", "simple8", "--steps", "10", "--seed", "3", "if", "else", "for")
	assert.Equal(t, out, again)
}
