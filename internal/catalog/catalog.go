// Package catalog holds the target roles a resume can be scored against.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/spigell/careersuite/internal/matcher"
)

//go:embed roles.yaml
var defaultRoles []byte

// ErrRoleNotFound is returned by Find when no role matches.
var ErrRoleNotFound = errors.New("role not found")

// Role is a target role with its distinguishing keywords.
type Role struct {
	ID       string   `yaml:"id" json:"id" validate:"required"`
	Title    string   `yaml:"title" json:"title" validate:"required"`
	Keywords []string `yaml:"keywords" json:"keywords" validate:"min=1,dive,required"`
}

// JobText joins the keywords into text the matcher can tokenize.
func (r Role) JobText() string {
	return strings.Join(r.Keywords, ", ")
}

// Target converts the role into a matcher target.
func (r Role) Target() matcher.Target {
	return matcher.Target{Name: r.Title, Text: r.JobText()}
}

// Catalog is an ordered list of roles.
type Catalog struct {
	Roles []Role `yaml:"roles" json:"roles" validate:"min=1,dive"`
}

// Default returns the built-in catalog.
func Default() (*Catalog, error) {
	return Parse(defaultRoles)
}

// Load reads a catalog from a YAML file. An empty path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading role catalog %q: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("role catalog %q: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks required fields and that role ids are unique.
func (c *Catalog) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validate catalog: %w", err)
	}

	seen := make(map[string]struct{}, len(c.Roles))
	for _, r := range c.Roles {
		id := strings.ToLower(r.ID)
		if _, ok := seen[id]; ok {
			return fmt.Errorf("duplicate role id %q", r.ID)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// Find looks a role up by id or title, ignoring case.
func (c *Catalog) Find(idOrTitle string) (Role, error) {
	key := strings.TrimSpace(idOrTitle)
	for _, r := range c.Roles {
		if strings.EqualFold(r.ID, key) || strings.EqualFold(r.Title, key) {
			return r, nil
		}
	}
	return Role{}, fmt.Errorf("%w: %q (known: %s)", ErrRoleNotFound, idOrTitle, strings.Join(c.Titles(), ", "))
}

// Titles returns the role titles in catalog order.
func (c *Catalog) Titles() []string {
	titles := make([]string, 0, len(c.Roles))
	for _, r := range c.Roles {
		titles = append(titles, r.Title)
	}
	return titles
}
