package rules

import (
	"fmt"
	"maps"
	"regexp"
)

// Category groups fields that share a constraint.
type Category string

const (
	Phone           Category = "phone"
	Email           Category = "email"
	ContainerNumber Category = "containerNumber"
	BookingNumber   Category = "bookingNumber"
	Date            Category = "date"
	Weight          Category = "weight"
	Volume          Category = "volume"
	Name            Category = "name"
	Address         Category = "address"
	Description     Category = "description"
	Port            Category = "port"
)

// Constraint describes what a valid value of a category looks like.
// Zero length bounds mean "unbounded"; Min and Max are nil when the
// category is not numeric.
type Constraint struct {
	Pattern   *regexp.Regexp
	MinLength int
	MaxLength int
	Min       *float64
	Max       *float64
	// Layout is the time layout for date categories.
	Layout   string
	Examples []string
}

// Example returns the i-th example value, or an empty string.
func (c Constraint) Example(i int) string {
	if i < 0 || i >= len(c.Examples) {
		return ""
	}
	return c.Examples[i]
}

// Matches reports whether v satisfies the pattern. A constraint without
// a pattern matches everything.
func (c Constraint) Matches(v string) bool {
	if c.Pattern == nil {
		return true
	}
	return c.Pattern.MatchString(v)
}

// Registry is a read-only table of constraints and message templates.
// Build one with New and pass it explicitly to the pipeline stages.
type Registry struct {
	constraints map[Category]Constraint
	messages    map[MessageKey]string
}

// Option customizes a Registry at construction time.
type Option func(*Registry)

// WithConstraint replaces the constraint of a single category.
func WithConstraint(cat Category, c Constraint) Option {
	return func(r *Registry) {
		r.constraints[cat] = c
	}
}

// WithMessages overrides message templates, e.g. for a localized registry.
// Keys missing from m keep their default template.
func WithMessages(m map[MessageKey]string) Option {
	return func(r *Registry) {
		for k, v := range m {
			if v != "" {
				r.messages[k] = v
			}
		}
	}
}

// New returns a registry loaded with the default shipping constraints.
func New(opts ...Option) *Registry {
	r := &Registry{
		constraints: defaultConstraints(),
		messages:    maps.Clone(defaultMessages),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Constraint returns the constraint for cat. It panics for an unknown
// category: the category set is closed and a miss is a programming error.
func (r *Registry) Constraint(cat Category) Constraint {
	c, ok := r.constraints[cat]
	if !ok {
		panic(fmt.Sprintf("rules: unknown category %q", cat))
	}
	return c
}

func defaultConstraints() map[Category]Constraint {
	return map[Category]Constraint{
		// Whitespace is the Unicode White_Space set, the same one
		// sanitizer.KeepPhoneChars keeps.
		Phone: {
			Pattern:   regexp.MustCompile(`^[\d\s\v\x{85}\p{Z}\-+()]+$`),
			MinLength: 10,
			MaxLength: 20,
		},
		Email: {
			Pattern: regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`),
		},
		ContainerNumber: {
			Pattern:  regexp.MustCompile(`^[A-Z]{4}\d{7}$`),
			Examples: []string{"ABCD1234567"},
		},
		// Length is checked apart from the charset so each failure gets its own code.
		BookingNumber: {
			Pattern:   regexp.MustCompile(`^[A-Z0-9]+$`),
			MinLength: 6,
			MaxLength: 20,
		},
		Date: {
			Layout:   "2006-01-02",
			Examples: []string{"YYYY-MM-DD"},
		},
		Weight: {
			Min: bound(0),
			Max: bound(100000),
		},
		Volume: {
			Min: bound(0),
			Max: bound(10000),
		},
		Name: {
			Pattern:   regexp.MustCompile(`^[a-zA-Z\s\-.']+$`),
			MinLength: 2,
			MaxLength: 100,
		},
		Address: {
			MinLength: 10,
			MaxLength: 500,
		},
		Description: {
			MinLength: 5,
			MaxLength: 1000,
		},
		Port: {
			Pattern:   regexp.MustCompile(`^[A-Z]{5}$`),
			MinLength: 5,
			MaxLength: 5,
			Examples:  []string{"USNYC", "CNSHA"},
		},
	}
}

func bound(v float64) *float64 {
	return &v
}
