// Package sicheck validates auto-fixed SI records against the rule registry.
package sicheck

import (
	"strings"
	"time"

	"github.com/dmitrymomot/irisprep/pkg/rules"
	"github.com/dmitrymomot/irisprep/pkg/si"
	v "github.com/dmitrymomot/irisprep/pkg/validator"
)

// Issue codes.
const (
	CodeRequiredField    = "REQUIRED_FIELD"
	CodeInvalidFormat    = "INVALID_FORMAT"
	CodeInvalidLength    = "INVALID_LENGTH"
	CodeSamePorts        = "SAME_PORTS"
	CodeInvalidDate      = "INVALID_DATE"
	CodePastDate         = "PAST_DATE"
	CodeInvalidDateOrder = "INVALID_DATE_ORDER"
	CodeInvalidContact   = "INVALID_CONTACT"
	// CodeOutOfRange is used both for the hard minimum (error) and the
	// advisory maximum (warning); severity tells them apart.
	CodeOutOfRange = "OUT_OF_RANGE"
	CodeTooShort   = "TOO_SHORT"
	CodeTooLong    = "TOO_LONG"
)

// Validate runs every rule group over rec and returns the issues in group
// order. rec is expected to be auto-fixed already. now is the reference
// instant for future-date checks; dates are read as midnight in now's location.
func Validate(reg *rules.Registry, rec si.Record, now time.Time) v.Issues {
	c := checker{reg: reg, rec: rec, now: now}

	groups := [][]v.Rule{
		c.required(),
		c.container(),
		c.booking(),
		c.ports(),
		c.dates(),
		c.contacts(),
		c.measures(),
		c.lengths(rules.Name, si.ShipperName, si.ConsigneeName),
		c.lengths(rules.Address, si.ShipperAddress, si.ConsigneeAddress),
		c.lengths(rules.Description, si.CargoDescription),
	}

	var all []v.Rule
	for _, g := range groups {
		all = append(all, g...)
	}
	return v.Apply(all...)
}

type checker struct {
	reg *rules.Registry
	rec si.Record
	now time.Time
}

func (c checker) text(f si.Field) string {
	s, _ := c.rec.Text(f)
	return s
}

func (c checker) required() []v.Rule {
	fields := si.RequiredFields()
	out := make([]v.Rule, 0, len(fields))
	for _, f := range fields {
		issue := v.NewError(string(f), CodeRequiredField, c.reg.Message(rules.MsgRequired, rules.DisplayName(string(f))))
		if f.IsNumeric() {
			out = append(out, v.PresentNum(c.rec.Number(f), issue))
			continue
		}
		out = append(out, v.Present(c.text(f), issue))
	}
	return out
}

func (c checker) container() []v.Rule {
	val := c.rec.ContainerNumber
	cons := c.reg.Constraint(rules.ContainerNumber)

	return []v.Rule{
		v.WhenPresent(val, v.Matches(val, cons.Pattern,
			v.NewError(string(si.ContainerNumber), CodeInvalidFormat, c.reg.Message(rules.MsgInvalidContainer)).
				WithSuggestion(c.reg.Message(rules.HintContainer, cons.Example(0))))),
	}
}

func (c checker) booking() []v.Rule {
	val := c.rec.BookingNumber
	cons := c.reg.Constraint(rules.BookingNumber)
	label := rules.Label(string(si.BookingNumber))
	field := string(si.BookingNumber)

	return []v.Rule{
		v.WhenPresent(val, v.RunesBetween(val, cons.MinLength, cons.MaxLength,
			v.NewError(field, CodeInvalidLength, c.reg.Message(rules.MsgLengthBetween, label, cons.MinLength, cons.MaxLength)))),
		v.WhenPresent(val, v.Matches(val, cons.Pattern,
			v.NewError(field, CodeInvalidFormat, c.reg.Message(rules.MsgAlphanumeric, label)))),
	}
}

func (c checker) ports() []v.Rule {
	loading, discharge := c.rec.PortOfLoading, c.rec.PortOfDischarge
	cons := c.reg.Constraint(rules.Port)
	msg := c.reg.Message(rules.MsgInvalidPort)

	return []v.Rule{
		v.WhenPresent(loading, v.Matches(loading, cons.Pattern,
			v.NewError(string(si.PortOfLoading), CodeInvalidFormat, msg).
				WithSuggestion(c.reg.Message(rules.HintPort, cons.Example(0))))),
		v.WhenPresent(discharge, v.Matches(discharge, cons.Pattern,
			v.NewError(string(si.PortOfDischarge), CodeInvalidFormat, msg).
				WithSuggestion(c.reg.Message(rules.HintPort, cons.Example(1))))),
		v.When(loading != "" && discharge != "", v.NotEqual(loading, discharge,
			v.NewWarning(string(si.PortOfDischarge), CodeSamePorts, c.reg.Message(rules.MsgSamePorts)).
				WithSuggestion(c.reg.Message(rules.HintVerifyPorts)))),
	}
}

func (c checker) dates() []v.Rule {
	layout := c.reg.Constraint(rules.Date).Layout
	var out []v.Rule

	parsed := make(map[si.Field]time.Time, 2)
	for _, f := range []si.Field{si.CargoReadyDate, si.RequestedShipDate} {
		val := c.text(f)
		if val == "" {
			continue
		}
		d, err := time.ParseInLocation(layout, val, c.now.Location())
		if err != nil {
			out = append(out, v.DateLayout(val, layout,
				v.NewError(string(f), CodeInvalidDate, c.reg.Message(rules.MsgInvalidDate)).
					WithSuggestion(c.reg.Message(rules.HintDateFormat))))
			continue
		}
		parsed[f] = d
		out = append(out, v.After(d, c.now,
			v.NewWarning(string(f), CodePastDate, c.reg.Message(rules.MsgPastDate)).
				WithSuggestion(c.reg.Message(rules.HintVerifyDate))))
	}

	ready, okReady := parsed[si.CargoReadyDate]
	ship, okShip := parsed[si.RequestedShipDate]
	if okReady && okShip {
		out = append(out, v.NotBefore(ship, ready,
			v.NewError(string(si.RequestedShipDate), CodeInvalidDateOrder, c.reg.Message(rules.MsgDateOrder))))
	}
	return out
}

func (c checker) contacts() []v.Rule {
	phone := c.reg.Constraint(rules.Phone).Pattern
	email := c.reg.Constraint(rules.Email).Pattern

	var out []v.Rule
	for _, f := range []si.Field{si.ShipperContact, si.ConsigneeContact} {
		val := c.text(f)
		out = append(out, v.WhenPresent(val, v.MatchesAny(val,
			v.NewWarning(string(f), CodeInvalidContact, c.reg.Message(rules.MsgInvalidContact)).
				WithSuggestion(c.reg.Message(rules.HintContact)),
			phone, email)))
	}
	return out
}

func (c checker) measures() []v.Rule {
	var out []v.Rule
	for _, m := range []struct {
		field si.Field
		cat   rules.Category
	}{
		{si.Weight, rules.Weight},
		{si.Volume, rules.Volume},
	} {
		val := c.rec.Number(m.field)
		if val == nil {
			continue
		}
		cons := c.reg.Constraint(m.cat)
		label := rules.Label(string(m.field))
		if cons.Min != nil {
			out = append(out, v.AtLeast(*val, *cons.Min,
				v.NewError(string(m.field), CodeOutOfRange, c.reg.Message(rules.MsgMinValue, label, *cons.Min))))
		}
		if cons.Max != nil {
			out = append(out, v.AtMost(*val, *cons.Max,
				v.NewWarning(string(m.field), CodeOutOfRange, c.reg.Message(rules.MsgUnusuallyHigh, label)).
					WithSuggestion(c.reg.Message(rules.HintVerifyValue, strings.ToLower(label)))))
		}
	}
	return out
}

// lengths checks character-count bounds of a category for each field,
// shipper side first.
func (c checker) lengths(cat rules.Category, fields ...si.Field) []v.Rule {
	cons := c.reg.Constraint(cat)

	var out []v.Rule
	for _, f := range fields {
		val := c.text(f)
		label := rules.Label(string(f))
		out = append(out,
			v.WhenPresent(val, v.MinRunes(val, cons.MinLength,
				v.NewError(string(f), CodeTooShort, c.reg.Message(rules.MsgMinLength, label, cons.MinLength)))),
			v.WhenPresent(val, v.MaxRunes(val, cons.MaxLength,
				v.NewError(string(f), CodeTooLong, c.reg.Message(rules.MsgMaxLength, label, cons.MaxLength)))),
		)
	}
	return out
}
