package news

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed outlets.yaml
var outletsYAML []byte

type Outlet struct {
	Name    string   `yaml:"name"`
	ID      string   `yaml:"id"`
	Domain  string   `yaml:"domain"`
	Aliases []string `yaml:"aliases"`
}

type OutletTable struct {
	Outlets           []Outlet `yaml:"outlets"`
	DefaultComparison []string `yaml:"default_comparison"`
}

var outlets = mustLoadOutlets(outletsYAML)

func mustLoadOutlets(data []byte) *OutletTable {
	t, err := ParseOutlets(data)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseOutlets decodes an outlet table from YAML.
func ParseOutlets(data []byte) (*OutletTable, error) {
	var t OutletTable
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse outlets: %w", err)
	}
	for i, o := range t.Outlets {
		if o.Name == "" || o.Domain == "" {
			return nil, fmt.Errorf("parse outlets: entry %d needs name and domain", i)
		}
	}
	return &t, nil
}

// Lookup finds an outlet by display name or alias, ignoring case.
func (t *OutletTable) Lookup(name string) (Outlet, bool) {
	for _, o := range t.Outlets {
		if strings.EqualFold(o.Name, name) {
			return o, true
		}
		for _, alias := range o.Aliases {
			if strings.EqualFold(alias, name) {
				return o, true
			}
		}
	}
	return Outlet{}, false
}

// ForHost finds the outlet whose domain is host or a parent of host.
func (t *OutletTable) ForHost(host string) (Outlet, bool) {
	host = strings.ToLower(host)
	for _, o := range t.Outlets {
		if host == o.Domain || strings.HasSuffix(host, "."+o.Domain) {
			return o, true
		}
	}
	return Outlet{}, false
}

// DefaultOutlets are compared when a request names none.
func DefaultOutlets() []string {
	return append([]string{}, outlets.DefaultComparison...)
}

// DisplayName maps a bare host (no leading "www.") to an outlet name,
// or returns the host unchanged.
func DisplayName(host string) string {
	if o, ok := outlets.ForHost(host); ok {
		return o.Name
	}
	return host
}

// sourceID is the NewsAPI id for a source name, or the name itself.
func sourceID(source string) string {
	if o, ok := outlets.Lookup(source); ok && o.ID != "" {
		return o.ID
	}
	return source
}

// sourceDomain is the site used for domain-scoped queries.
func sourceDomain(source string) string {
	if o, ok := outlets.Lookup(source); ok {
		return o.Domain
	}
	return slugDomain(sourceID(source))
}

// slugDomain guesses a domain from a source id: "the-washington-post" -> "washington.post.com".
func slugDomain(id string) string {
	d := strings.ToLower(strings.TrimSpace(id))
	d = strings.TrimPrefix(d, "the-")
	d = strings.ReplaceAll(d, " ", "-")
	d = strings.ReplaceAll(d, "-", ".")
	return d + ".com"
}
