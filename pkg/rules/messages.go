package rules

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MessageKey identifies a user-facing message template.
type MessageKey string

const (
	MsgRequired         MessageKey = "required"
	MsgInvalidFormat    MessageKey = "invalidFormat"
	MsgMinLength        MessageKey = "minLength"
	MsgMaxLength        MessageKey = "maxLength"
	MsgLengthBetween    MessageKey = "lengthBetween"
	MsgAlphanumeric     MessageKey = "alphanumeric"
	MsgMinValue         MessageKey = "minValue"
	MsgMaxValue         MessageKey = "maxValue"
	MsgUnusuallyHigh    MessageKey = "unusuallyHigh"
	MsgInvalidPhone     MessageKey = "invalidPhone"
	MsgInvalidEmail     MessageKey = "invalidEmail"
	MsgInvalidContact   MessageKey = "invalidContact"
	MsgInvalidDate      MessageKey = "invalidDate"
	MsgPastDate         MessageKey = "pastDate"
	MsgDateOrder        MessageKey = "dateOrder"
	MsgInvalidContainer MessageKey = "invalidContainer"
	MsgInvalidPort      MessageKey = "invalidPort"
	MsgSamePorts        MessageKey = "samePorts"

	HintContainer   MessageKey = "hintContainer"
	HintPort        MessageKey = "hintPort"
	HintDateFormat  MessageKey = "hintDateFormat"
	HintVerifyDate  MessageKey = "hintVerifyDate"
	HintVerifyPorts MessageKey = "hintVerifyPorts"
	HintContact     MessageKey = "hintContact"
	HintVerifyValue MessageKey = "hintVerifyValue"
)

// Templates use fmt verbs; the first argument is always the field label
// when the template names a field.
var defaultMessages = map[MessageKey]string{
	MsgRequired:         "%s is required",
	MsgInvalidFormat:    "%s must be in %s format",
	MsgMinLength:        "%s must be at least %d characters",
	MsgMaxLength:        "%s must not exceed %d characters",
	MsgLengthBetween:    "%s must be between %d and %d characters",
	MsgAlphanumeric:     "%s must contain only letters and numbers",
	MsgMinValue:         "%s must be at least %v",
	MsgMaxValue:         "%s must not exceed %v",
	MsgUnusuallyHigh:    "%s seems unusually high",
	MsgInvalidPhone:     "Invalid phone number format",
	MsgInvalidEmail:     "Invalid email address",
	MsgInvalidContact:   "Contact format may be invalid",
	MsgInvalidDate:      "Invalid date format (use YYYY-MM-DD)",
	MsgPastDate:         "Date must be in the future",
	MsgDateOrder:        "Requested ship date must be after cargo ready date",
	MsgInvalidContainer: "Invalid container number (format: 4 letters + 7 digits)",
	MsgInvalidPort:      "Invalid port code (use 5-letter UN/LOCODE)",
	MsgSamePorts:        "Port of loading and discharge are the same",

	HintContainer:   "Example: %s (4 letters + 7 digits)",
	HintPort:        "Example: %s (5-letter code)",
	HintDateFormat:  "Use format: YYYY-MM-DD",
	HintVerifyDate:  "Verify the date is correct",
	HintVerifyPorts: "Verify this is correct",
	HintContact:     "Should be phone number or email",
	HintVerifyValue: "Verify the %s value",
}

// Message renders the template for key with args.
func (r *Registry) Message(key MessageKey, args ...any) string {
	tmpl, ok := r.messages[key]
	if !ok {
		return string(key)
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// DisplayName turns a camelCase field identifier into a title:
// a space goes before each internal uppercase letter and the first
// letter is capitalized ("shipperName" -> "Shipper Name").
func DisplayName(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return cases.Title(language.English, cases.NoLower).String(strings.TrimSpace(b.String()))
}

// Label is the sentence-case form of DisplayName used inside messages
// ("shipperName" -> "Shipper name").
func Label(field string) string {
	words := strings.Fields(DisplayName(field))
	lower := cases.Lower(language.English)
	for i := 1; i < len(words); i++ {
		words[i] = lower.String(words[i])
	}
	return strings.Join(words, " ")
}
