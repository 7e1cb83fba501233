// Package autofix normalizes common data-entry inconsistencies in SI records
// before validation: code casing and spacing, port code length, date layout,
// surrounding whitespace and phone number noise.
package autofix

import (
	"github.com/dmitrymomot/irisprep/pkg/rules"
	"github.com/dmitrymomot/irisprep/pkg/sanitizer"
	"github.com/dmitrymomot/irisprep/pkg/si"
)

// Reasons attached to fixes, one per transform category.
const (
	ReasonCodeFormat = "Converted to uppercase and removed spaces"
	ReasonPortCode   = "Converted to uppercase UN/LOCODE format"
	ReasonDate       = "Standardized to YYYY-MM-DD format"
	ReasonTrimmed    = "Removed leading/trailing whitespace"
	ReasonPhone      = "Standardized phone number format"
)

// Fix records one corrective change to a field.
type Fix struct {
	Field         si.Field `json:"field"`
	OriginalValue string   `json:"originalValue"`
	FixedValue    string   `json:"fixedValue"`
	Reason        string   `json:"reason"`
}

// Result is the corrected record and the fixes applied to it, in stage order.
type Result struct {
	Data  si.Record
	Fixes []Fix
}

type stage struct {
	fields    []si.Field
	reason    string
	transform func(string) string
}

func stages(reg *rules.Registry) []stage {
	portLen := reg.Constraint(rules.Port).MaxLength

	return []stage{
		{
			fields:    []si.Field{si.ContainerNumber},
			reason:    ReasonCodeFormat,
			transform: sanitizer.Compose(sanitizer.RemoveWhitespace, sanitizer.ToUpper),
		},
		{
			fields:    []si.Field{si.BookingNumber},
			reason:    ReasonCodeFormat,
			transform: sanitizer.Compose(sanitizer.RemoveWhitespace, sanitizer.ToUpper),
		},
		{
			fields:    []si.Field{si.PortOfLoading, si.PortOfDischarge},
			reason:    ReasonPortCode,
			transform: sanitizer.Compose(sanitizer.RemoveWhitespace, sanitizer.ToUpper, sanitizer.Truncate(portLen)),
		},
		{
			fields:    []si.Field{si.CargoReadyDate, si.RequestedShipDate},
			reason:    ReasonDate,
			transform: NormalizeDate,
		},
		{
			fields:    si.TextFields(),
			reason:    ReasonTrimmed,
			transform: sanitizer.Trim,
		},
		{
			fields:    []si.Field{si.ShipperContact, si.ConsigneeContact},
			reason:    ReasonPhone,
			transform: sanitizer.Compose(sanitizer.KeepPhoneChars, sanitizer.Trim),
		},
	}
}

// Apply runs every normalization stage over a copy of rec and returns the
// copy with the list of changes. rec itself is never modified.
//
// Stages run in a fixed order and each stage that changes a field records
// its own Fix against the value as it entered that stage, so a field may
// appear more than once. Empty fields are left alone.
func Apply(reg *rules.Registry, rec si.Record) Result {
	data := rec.Clone()
	fixes := make([]Fix, 0)

	for _, st := range stages(reg) {
		for _, field := range st.fields {
			before, ok := data.Text(field)
			if !ok || before == "" {
				continue
			}
			after := st.transform(before)
			if after == before {
				continue
			}
			data.SetText(field, after)
			fixes = append(fixes, Fix{
				Field:         field,
				OriginalValue: before,
				FixedValue:    after,
				Reason:        st.reason,
			})
		}
	}

	return Result{Data: data, Fixes: fixes}
}
