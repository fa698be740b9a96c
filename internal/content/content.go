// Package content loads the portfolio copy rendered by the page.
package content

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/anmolrajas/portfolio/internal/errors"
)

//go:embed portfolio.yaml
var defaultPortfolio []byte

// Link is an external profile link.
type Link struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

// Owner is who the portfolio belongs to.
type Owner struct {
	Name     string `yaml:"name"`
	Title    string `yaml:"title"`
	Tagline  string `yaml:"tagline"`
	Email    string `yaml:"email"`
	Location string `yaml:"location"`
	Links    []Link `yaml:"links"`
}

// Item is one entry inside a section: a project, a job, a skill group.
type Item struct {
	Heading    string   `yaml:"heading"`
	Subheading string   `yaml:"subheading,omitempty"`
	Period     string   `yaml:"period,omitempty"`
	Text       string   `yaml:"text,omitempty"`
	Tags       []string `yaml:"tags,omitempty"`
}

// Section is a named region of the page, in document order.
type Section struct {
	ID    string `yaml:"id"`
	Nav   string `yaml:"nav"`
	Title string `yaml:"title"`
	Body  string `yaml:"body,omitempty"`
	Items []Item `yaml:"items,omitempty"`
}

// Portfolio is the full page content.
type Portfolio struct {
	Owner    Owner     `yaml:"owner"`
	Sections []Section `yaml:"sections"`
}

// Default returns the embedded portfolio.
func Default() *Portfolio {
	p, err := Parse(defaultPortfolio)
	if err != nil {
		panic(fmt.Sprintf("embedded portfolio is invalid: %v", err))
	}
	return p
}

// Load reads a portfolio from path, or returns the embedded default when
// path is empty.
func Load(path string) (*Portfolio, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.E(errors.Op("content.Load"), errors.KindConfig, path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, errors.E(errors.Op("content.Load"), errors.KindConfig, path, err)
	}
	return p, nil
}

// Parse decodes and validates portfolio YAML.
func Parse(data []byte) (*Portfolio, error) {
	var p Portfolio
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse portfolio: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	for i := range p.Sections {
		s := &p.Sections[i]
		s.Body = strings.TrimRight(s.Body, "\n")
		if s.Nav == "" {
			s.Nav = s.Title
		}
	}
	return &p, nil
}

// Validate requires at least one section and unique, non-empty ids.
func (p *Portfolio) Validate() error {
	if len(p.Sections) == 0 {
		return fmt.Errorf("portfolio has no sections")
	}
	seen := make(map[string]bool, len(p.Sections))
	for i, s := range p.Sections {
		if s.ID == "" {
			return fmt.Errorf("section %d has no id", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("duplicate section id %q", s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

// SectionIndex returns the position of the section with id, or -1.
func (p *Portfolio) SectionIndex(id string) int {
	for i, s := range p.Sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}
