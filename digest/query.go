package digest

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Niches maps an interest token to a hand-tuned search expression. A Niches
// value is built once at startup and only read afterwards.
type Niches struct {
	filters map[string]string
}

func DefaultNiches() Niches {
	return NewNiches(map[string]string{
		"ai":           `neural networks -"machine learning"`,
		"gardening":    `heirloom -"home depot"`,
		"retro_gaming": `"CRT" -"nintendo"`,
	})
}

func NewNiches(filters map[string]string) Niches {
	copied := make(map[string]string, len(filters))
	for k, v := range filters {
		copied[k] = v
	}
	return Niches{filters: copied}
}

// LoadNiches reads a YAML mapping of token to expression.
func LoadNiches(path string) (Niches, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Niches{}, fmt.Errorf("could not read niches file: %w", err)
	}
	filters := map[string]string{}
	if err := yaml.Unmarshal(data, &filters); err != nil {
		return Niches{}, fmt.Errorf("could not parse niches file %s: %w", path, err)
	}
	return NewNiches(filters), nil
}

func (n Niches) Expand(interest string) string {
	if expr, ok := n.filters[interest]; ok {
		return expr
	}
	return interest
}

func (n Niches) Len() int {
	return len(n.filters)
}

// BuildQuery ORs the parenthesized expansion of every interest, in input
// order. Tokens are not escaped.
func (n Niches) BuildQuery(interests []string) string {
	clauses := make([]string, 0, len(interests))
	for _, interest := range interests {
		clauses = append(clauses, "("+n.Expand(interest)+")")
	}
	return strings.Join(clauses, " OR ")
}

// ParseInterests splits a comma separated list, dropping blank tokens.
func ParseInterests(raw string) []string {
	interests := []string{}
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		interests = append(interests, token)
	}
	return interests
}
