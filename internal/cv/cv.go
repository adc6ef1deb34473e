// Package cv builds a printable CV from a structured YAML or JSON document.
package cv

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const monthLayout = "2006-01"

// CV is the document rendered to HTML and PDF.
type CV struct {
	Personal   Personal     `yaml:"personal" json:"personal"`
	Skills     []string     `yaml:"skills" json:"skills" validate:"dive,required"`
	Experience []Experience `yaml:"experience" json:"experience" validate:"dive"`
	Education  []Education  `yaml:"education" json:"education" validate:"dive"`
}

type Personal struct {
	FullName string `yaml:"full_name" json:"full_name" validate:"required"`
	Title    string `yaml:"title" json:"title"`
	Email    string `yaml:"email" json:"email" validate:"omitempty,email"`
	Phone    string `yaml:"phone" json:"phone"`
	Location string `yaml:"location" json:"location"`
	LinkedIn string `yaml:"linkedin" json:"linkedin" validate:"omitempty,url"`
	GitHub   string `yaml:"github" json:"github" validate:"omitempty,url"`
	Summary  string `yaml:"summary" json:"summary"`
}

type Experience struct {
	Company     string `yaml:"company" json:"company" validate:"required"`
	Role        string `yaml:"role" json:"role" validate:"required"`
	Start       string `yaml:"start" json:"start" validate:"omitempty,datetime=2006-01"`
	End         string `yaml:"end" json:"end" validate:"omitempty,datetime=2006-01"`
	Description string `yaml:"description" json:"description"`
}

type Education struct {
	School string `yaml:"school" json:"school" validate:"required"`
	Degree string `yaml:"degree" json:"degree"`
	Field  string `yaml:"field" json:"field"`
	Start  string `yaml:"start" json:"start" validate:"omitempty,datetime=2006-01"`
	End    string `yaml:"end" json:"end" validate:"omitempty,datetime=2006-01"`
}

// FieldError names one invalid field by its document path, e.g. "experience[0].start".
type FieldError struct {
	Field string
	Rule  string
}

// ValidationError lists every invalid field of a CV.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Field, f.Rule))
	}
	return "invalid cv: " + strings.Join(parts, ", ")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate returns a *ValidationError when any field is invalid.
func (c *CV) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate cv: %w", err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		_, path, _ := strings.Cut(fe.Namespace(), ".")
		out.Fields = append(out.Fields, FieldError{Field: path, Rule: fe.Tag()})
	}
	return out
}

// Load reads a CV from a .yaml, .yml or .json file. Unknown keys are rejected.
func Load(path string) (*CV, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading cv %q: %w", path, err)
	}

	var c CV
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&c)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&c)
	default:
		return nil, fmt.Errorf("cv %q: unsupported format %q", path, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode cv %q: %w", path, err)
	}

	return &c, nil
}

// FormatMonth renders "2020-01" as "Jan 2020". An empty value is an ongoing
// period and unparsable input is returned unchanged.
func FormatMonth(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "Present"
	}
	t, err := time.Parse(monthLayout, value)
	if err != nil {
		return value
	}
	return t.Format("Jan 2006")
}
