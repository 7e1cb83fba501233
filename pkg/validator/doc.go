// Package validator provides a small, composable rule core for field-level
// validation with severities.
//
// A Rule pairs a boolean Check with the Issue reported when the check fails.
// Apply evaluates rules in order, never short-circuits, and returns every
// failing rule's issue. Issues carry a severity: only SeverityError blocks
// validity, warnings and info entries are advisory.
//
// # Usage
//
//	issues := validator.Apply(
//	    validator.Present(name, validator.NewError("name", "REQUIRED_FIELD", "Name is required")),
//	    validator.WhenPresent(port, validator.Matches(port, portRe,
//	        validator.NewError("port", "INVALID_FORMAT", "Invalid port code").
//	            WithSuggestion("Example: USNYC"))),
//	    validator.AtMost(weight, 100000,
//	        validator.NewWarning("weight", "OUT_OF_RANGE", "Weight seems unusually high")),
//	)
//	if err := issues.Err(); err != nil {
//	    // at least one error-severity issue
//	}
//
// # Error Handling
//
// Issues implements error. Issues.Err returns nil when only advisory
// issues are present, so callers can gate on it directly. AsIssues
// recovers the issue list from a wrapped error chain.
//
// Length rules count characters (runes), not bytes.
package validator
