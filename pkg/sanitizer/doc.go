// Package sanitizer provides small, pure string transforms used to
// normalize user-entered shipping data, plus the Apply and Compose helpers
// for chaining them into pipelines:
//
//	containerCode := sanitizer.Compose(
//	    sanitizer.RemoveWhitespace,
//	    sanitizer.ToUpper,
//	)
//
//	containerCode(" abcd 123 4567") // "ABCD1234567"
//
// All helpers are stateless and Unicode-aware; length is measured in runes.
package sanitizer
