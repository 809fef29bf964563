package classify

import (
	_ "embed"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var rulesYAML []byte

type Subcategory struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

type Rule struct {
	Name          string        `yaml:"name"`
	Keywords      []string      `yaml:"keywords"`
	Subcategories []Subcategory `yaml:"subcategories"`
}

var (
	rulesOnce sync.Once
	rules     []Rule
)

// Rules returns the category rule table in declaration order.
func Rules() []Rule {
	rulesOnce.Do(func() {
		if err := yaml.Unmarshal(rulesYAML, &rules); err != nil {
			panic("classify: invalid rules.yaml: " + err.Error())
		}
		// keywords must be lowercase for the containment scan
		for _, r := range rules {
			lower(r.Keywords)
			for _, sc := range r.Subcategories {
				lower(sc.Keywords)
			}
		}
	})
	return rules
}

func lower(ss []string) {
	for i, s := range ss {
		ss[i] = strings.ToLower(strings.TrimSpace(s))
	}
}
