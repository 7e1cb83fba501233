package validator

import (
	"regexp"
	"time"
	"unicode/utf8"
)

// Present fails when value is empty. Whitespace counts as content.
func Present(value string, issue Issue) Rule {
	return Rule{
		Check: func() bool { return value != "" },
		Issue: issue,
	}
}

// PresentNum fails when value is nil. Zero counts as present.
func PresentNum[T Numeric](value *T, issue Issue) Rule {
	return Rule{
		Check: func() bool { return value != nil },
		Issue: issue,
	}
}

// Matches fails when value does not match re.
func Matches(value string, re *regexp.Regexp, issue Issue) Rule {
	return Rule{
		Check: func() bool { return re.MatchString(value) },
		Issue: issue,
	}
}

// MatchesAny fails when value matches none of the patterns.
func MatchesAny(value string, issue Issue, patterns ...*regexp.Regexp) Rule {
	return Rule{
		Check: func() bool {
			for _, re := range patterns {
				if re.MatchString(value) {
					return true
				}
			}
			return false
		},
		Issue: issue,
	}
}

// MinRunes fails when value has fewer than min characters.
func MinRunes(value string, min int, issue Issue) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) >= min },
		Issue: issue,
	}
}

// MaxRunes fails when value has more than max characters.
func MaxRunes(value string, max int, issue Issue) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Issue: issue,
	}
}

// RunesBetween fails when the character count of value is outside [min, max].
func RunesBetween(value string, min, max int, issue Issue) Rule {
	return Rule{
		Check: func() bool {
			n := utf8.RuneCountInString(value)
			return n >= min && n <= max
		},
		Issue: issue,
	}
}

// AtLeast fails when value < min.
func AtLeast[T Numeric](value, min T, issue Issue) Rule {
	return Rule{
		Check: func() bool { return value >= min },
		Issue: issue,
	}
}

// AtMost fails when value > max.
func AtMost[T Numeric](value, max T, issue Issue) Rule {
	return Rule{
		Check: func() bool { return value <= max },
		Issue: issue,
	}
}

// DateLayout fails when value cannot be parsed with layout.
func DateLayout(value, layout string, issue Issue) Rule {
	return Rule{
		Check: func() bool {
			_, err := time.Parse(layout, value)
			return err == nil
		},
		Issue: issue,
	}
}

// After fails when t is not strictly after ref.
func After(t, ref time.Time, issue Issue) Rule {
	return Rule{
		Check: func() bool { return t.After(ref) },
		Issue: issue,
	}
}

// NotBefore fails when t is before ref. Equal instants pass.
func NotBefore(t, ref time.Time, issue Issue) Rule {
	return Rule{
		Check: func() bool { return !t.Before(ref) },
		Issue: issue,
	}
}

// NotEqual fails when a == b.
func NotEqual[T comparable](a, b T, issue Issue) Rule {
	return Rule{
		Check: func() bool { return a != b },
		Issue: issue,
	}
}

// When guards rule with cond: the rule is only evaluated when cond holds.
func When(cond bool, rule Rule) Rule {
	return Rule{
		Check: func() bool { return !cond || rule.Check() },
		Issue: rule.Issue,
	}
}

// WhenPresent evaluates rule only for non-empty values.
func WhenPresent(value string, rule Rule) Rule {
	return When(value != "", rule)
}
