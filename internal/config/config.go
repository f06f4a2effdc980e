package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultTransferSignals are BankCategory values that force the Transfer
// category: Cash App cash-outs and add-cash movements.
var DefaultTransferSignals = []string{"withdrawal", "deposits"}

// Rules represents categories.yaml: ordered keyword rules, optional budgets
// and the bank-category values treated as transfers.
type Rules struct {
	Categories      RuleList   `yaml:"categories"`
	Budgets         BudgetList `yaml:"budgets,omitempty"`
	TransferSignals []string   `yaml:"transfer_signals,omitempty"`
}

// Rule maps one category to the keywords that select it.
type Rule struct {
	Category string
	Keywords []string
}

// Budget is a monthly spending limit for a category.
type Budget struct {
	Category string
	Limit    decimal.Decimal
}

// RuleList keeps the file order of the categories mapping; the first
// matching rule wins.
type RuleList []Rule

// BudgetList keeps the file order of the budgets mapping.
type BudgetList []Budget

// ConfigNotFoundError is returned when the rules file does not exist.
type ConfigNotFoundError struct {
	Path string
}

func (e *ConfigNotFoundError) Error() string {
	return fmt.Sprintf("categories config not found: %s", e.Path)
}

func (e *ConfigNotFoundError) Unwrap() error { return os.ErrNotExist }

// Load reads a categories.yaml file from disk.
func Load(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, &ConfigNotFoundError{Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if len(rules.Categories) == 0 {
		return nil, fmt.Errorf("parsing config %s: no categories defined", path)
	}
	if len(rules.TransferSignals) == 0 {
		rules.TransferSignals = append([]string(nil), DefaultTransferSignals...)
	}
	return &rules, nil
}

// Save writes Rules to a YAML file.
func Save(path string, rules *Rules) error {
	data, err := yaml.Marshal(rules)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// BudgetMap returns the budgets keyed by category.
func (r *Rules) BudgetMap() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(r.Budgets))
	for _, b := range r.Budgets {
		m[b.Category] = b.Limit
	}
	return m
}

// UnmarshalYAML decodes a mapping of category -> keyword list in order.
func (l *RuleList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: categories must be a mapping", value.Line)
	}
	var out RuleList
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		var keywords []string
		if val.Kind != yaml.ScalarNode || val.Tag != "!!null" {
			if err := val.Decode(&keywords); err != nil {
				return fmt.Errorf("line %d: keywords for %q: %w", val.Line, key.Value, err)
			}
		}
		out = append(out, Rule{Category: key.Value, Keywords: keywords})
	}
	*l = out
	return nil
}

// MarshalYAML encodes the rules as an ordered mapping.
func (l RuleList) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, r := range l {
		var val yaml.Node
		if err := val.Encode(r.Keywords); err != nil {
			return nil, err
		}
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: r.Category}, &val)
	}
	return node, nil
}

// UnmarshalYAML decodes a mapping of category -> limit in order.
func (l *BudgetList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: budgets must be a mapping", value.Line)
	}
	var out BudgetList
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		limit, err := decimal.NewFromString(val.Value)
		if err != nil {
			return fmt.Errorf("line %d: budget for %q: %w", val.Line, key.Value, err)
		}
		out = append(out, Budget{Category: key.Value, Limit: limit})
	}
	*l = out
	return nil
}

// MarshalYAML encodes the budgets as an ordered mapping.
func (l BudgetList) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, b := range l {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: b.Category},
			&yaml.Node{Kind: yaml.ScalarNode, Value: b.Limit.String()},
		)
	}
	return node, nil
}
