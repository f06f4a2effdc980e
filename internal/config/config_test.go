package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTestdata(t *testing.T) {
	rules, err := Load("../../testdata/categories.yaml")
	require.NoError(t, err)

	var names []string
	for _, r := range rules.Categories {
		names = append(names, r.Category)
	}
	assert.Equal(t, []string{"Income", "Groceries", "Subscriptions", "Gas", "Dining", "Transfer"}, names)
	assert.Equal(t, []string{"payroll", "direct dep"}, rules.Categories[0].Keywords)

	require.Len(t, rules.Budgets, 2)
	assert.Equal(t, "Groceries", rules.Budgets[0].Category)
	assert.Equal(t, "400.00", rules.Budgets[0].Limit.StringFixed(2))
	assert.Equal(t, "100.50", rules.Budgets[1].Limit.StringFixed(2))
	assert.Equal(t, []string{"withdrawal", "deposits"}, rules.TransferSignals)
}

func TestRoundTrip(t *testing.T) {
	rules := Default()
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, Save(path, rules))

	got, err := Load(path)
	require.NoError(t, err)

	require.Len(t, got.Categories, len(rules.Categories))
	for i := range rules.Categories {
		assert.Equal(t, rules.Categories[i].Category, got.Categories[i].Category)
		assert.Equal(t, rules.Categories[i].Keywords, got.Categories[i].Keywords)
	}
	require.Len(t, got.Budgets, len(rules.Budgets))
	for i := range rules.Budgets {
		assert.Equal(t, rules.Budgets[i].Category, got.Budgets[i].Category)
		assert.True(t, rules.Budgets[i].Limit.Equal(got.Budgets[i].Limit))
	}
	assert.Equal(t, rules.TransferSignals, got.TransferSignals)
}

func TestLoadNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.yaml")
	_, err := Load(path)
	require.Error(t, err)

	var cnf *ConfigNotFoundError
	require.True(t, errors.As(err, &cnf))
	assert.Equal(t, path, cnf.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadMalformed(t *testing.T) {
	tests := map[string]string{
		"not yaml":        "categories: [unterminated\n",
		"list not map":    "categories:\n  - a\n  - b\n",
		"bad budget":      "categories:\n  A: [x]\nbudgets:\n  A: lots\n",
		"no categories":   "budgets:\n  A: 10\n",
		"keywords scalar": "categories:\n  A: {x: y}\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "categories.yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadDefaultsTransferSignals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  Food: [cafe]\n  Empty:\n"), 0o644))

	rules, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultTransferSignals, rules.TransferSignals)
	assert.Empty(t, rules.Budgets)
	require.Len(t, rules.Categories, 2)
	assert.Nil(t, rules.Categories[1].Keywords)
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.yaml")
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "categories:")
	assert.Contains(t, contents, "Groceries: 500")
	assert.Contains(t, contents, "- withdrawal")
	assert.Less(t, indexOf(contents, "Income:"), indexOf(contents, "Transfer:"))
}

func TestBudgetMap(t *testing.T) {
	m := Default().BudgetMap()
	assert.Equal(t, "500", m["Groceries"].String())
	_, ok := m["Gas"]
	assert.False(t, ok)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
