// Package rules is the declarative constraint table used by the SI
// auto-fixer and validator.
//
// A Registry maps each field Category (container number, port code, date,
// weight, ...) to a Constraint: a regular expression, length or numeric
// bounds, a time layout and example values for user hints. It also holds
// the message templates used to build issue messages and suggestions, so a
// localized registry is just a different template set:
//
//	reg := rules.New(rules.WithMessages(map[rules.MessageKey]string{
//		rules.MsgRequired: "%s ist erforderlich",
//	}))
//
// Registries carry no mutable state after New returns and may be shared
// between goroutines.
//
// Field display names are derived mechanically from identifiers:
//
//	rules.DisplayName("portOfLoading") // "Port Of Loading"
//	rules.Label("portOfLoading")       // "Port of loading"
package rules
