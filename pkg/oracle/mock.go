package oracle

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed fallback_rules.yaml
var fallbackRulesYAML []byte

type fallbackRule struct {
	Keywords []string `yaml:"keywords"`
	Answer   string   `yaml:"answer"`
}

type fallbackRules struct {
	Rules   []fallbackRule `yaml:"rules"`
	Default string         `yaml:"default"`
}

// MockResponder produces deterministic local answers by keyword matching,
// so the user always gets a response when the chatbot endpoint errors out
// or times out.
type MockResponder struct {
	rules []fallbackRule
	def   string
}

// NewMockResponder loads the embedded rule table.
func NewMockResponder() *MockResponder {
	r, err := newMockResponder(fallbackRulesYAML)
	if err != nil {
		// The rule table ships inside the binary; failing to parse it is
		// a build defect, not a runtime condition.
		panic(fmt.Sprintf("oracle: embedded fallback rules are invalid: %v", err))
	}
	return r
}

// NewMockResponderFromYAML loads a custom rule table, replacing the embedded
// defaults.
func NewMockResponderFromYAML(data []byte) (*MockResponder, error) {
	return newMockResponder(data)
}

func newMockResponder(data []byte) (*MockResponder, error) {
	var parsed fallbackRules
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("oracle: failed to parse fallback rules: %w", err)
	}
	if strings.TrimSpace(parsed.Default) == "" {
		return nil, fmt.Errorf("oracle: fallback rules need a default answer")
	}
	return &MockResponder{
		rules: parsed.Rules,
		def:   strings.TrimSpace(parsed.Default),
	}, nil
}

// Respond returns the first rule whose keyword appears in the question, or
// the default answer.
func (m *MockResponder) Respond(question string) string {
	q := strings.ToLower(question)
	for _, rule := range m.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(q, strings.ToLower(keyword)) {
				return strings.TrimSpace(rule.Answer)
			}
		}
	}
	return m.def
}
