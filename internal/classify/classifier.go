// Package classify assigns exam questions to syllabus domains by scoring
// configurable keyword lists against the question text.
package classify

import "strings"

// Classifier scores question text against a fixed taxonomy. Instances are
// immutable; reloading configuration means constructing a new one.
type Classifier struct {
	domains       []Domain
	defaultDomain string
}

// New builds a classifier for the given taxonomy. A nil taxonomy uses the
// built-in default.
func New(t *Taxonomy) *Classifier {
	if t == nil {
		t = DefaultTaxonomy()
	}
	return &Classifier{domains: t.Domains, defaultDomain: t.DefaultDomain}
}

// Load reads and validates a taxonomy file and wraps it in a classifier.
func Load(path string) (*Classifier, error) {
	t, err := LoadTaxonomy(path)
	if err != nil {
		return nil, err
	}
	return New(t), nil
}

// Classify returns the id of the domain whose keywords occur most often as
// substrings of the lowercased text. Equal scores resolve to the domain
// listed first in the taxonomy; a best score of zero resolves to the default
// domain.
func (c *Classifier) Classify(text string) string {
	if text == "" {
		return c.defaultDomain
	}
	lower := strings.ToLower(text)
	bestID := ""
	bestScore := 0
	for _, d := range c.domains {
		score := 0
		for _, kw := range d.Keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > bestScore {
			bestID = d.ID
			bestScore = score
		}
	}
	if bestScore > 0 {
		return bestID
	}
	return c.defaultDomain
}

// DomainName resolves a domain id to its display name. Unknown ids resolve
// to the id itself so callers always get something printable.
func (c *Classifier) DomainName(id string) string {
	for _, d := range c.domains {
		if d.ID == id {
			return d.Name
		}
	}
	return id
}

// Domains returns the configured domains in taxonomy order.
func (c *Classifier) Domains() []Domain {
	return c.domains
}

// DefaultDomain returns the id assigned when no keyword matches.
func (c *Classifier) DefaultDomain() string {
	return c.defaultDomain
}
