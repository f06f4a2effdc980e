package commands_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/findash/internal/config"
	"github.com/cleared-dev/findash/internal/model"
)

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runFindash(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized findash project")

	for _, d := range []string{"data", "output", "config"} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}

	_, err = os.Stat(filepath.Join(dir, "data", ".gitkeep"))
	assert.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "output/")
}

func TestInit_Categories(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runFindash(t, "init", dir)
	require.NoError(t, err)

	rules, err := config.Load(filepath.Join(dir, "config", "categories.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default().Categories, rules.Categories)
	assert.Equal(t, model.CategoryIncome, rules.Categories[0].Category)
	assert.NotEmpty(t, rules.Budgets)
}

func TestInit_KeepsExistingCategories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config", "categories.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  Mine: [x]\n"), 0o644))

	out, _, err := runFindash(t, "init", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Keeping existing")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Mine")

	_, _, err = runFindash(t, "init", dir, "--force")
	require.NoError(t, err)
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Mine")
}
