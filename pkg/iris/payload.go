package iris

import (
	"cmp"
	"time"

	"github.com/dmitrymomot/irisprep/pkg/si"
)

// ResponseStatus is the processing state IRIS reports for a submission.
type ResponseStatus string

const (
	StatusAccepted ResponseStatus = "accepted"
	StatusRejected ResponseStatus = "rejected"
	StatusPending  ResponseStatus = "pending"
)

type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Contact string `json:"contact"`
}

type Weight struct {
	Value float64       `json:"value"`
	Unit  si.WeightUnit `json:"unit"`
}

type Volume struct {
	Value float64       `json:"value"`
	Unit  si.VolumeUnit `json:"unit"`
}

type Cargo struct {
	Description     string `json:"description"`
	ContainerNumber string `json:"containerNumber"`
	Weight          Weight `json:"weight"`
	Volume          Volume `json:"volume"`
}

type Shipping struct {
	PortOfLoading   string `json:"portOfLoading"`
	PortOfDischarge string `json:"portOfDischarge"`
	VesselName      string `json:"vesselName,omitempty"`
	VoyageNumber    string `json:"voyageNumber,omitempty"`
}

type Dates struct {
	CargoReady        string `json:"cargoReady"`
	RequestedShipDate string `json:"requestedShipDate"`
}

// ShippingInstruction is the nested document IRIS accepts.
type ShippingInstruction struct {
	BookingNumber string   `json:"bookingNumber"`
	Shipper       Party    `json:"shipper"`
	Consignee     Party    `json:"consignee"`
	Cargo         Cargo    `json:"cargo"`
	Shipping      Shipping `json:"shipping"`
	Dates         Dates    `json:"dates"`
}

// NewShippingInstruction maps a flat record onto the IRIS document.
// Missing units default to KG and CBM; missing measures map to 0.
func NewShippingInstruction(rec si.Record) ShippingInstruction {
	shipper, consignee := rec.Shipper(), rec.Consignee()
	cargo, ship := rec.Cargo(), rec.Shipping()

	return ShippingInstruction{
		BookingNumber: ship.BookingNumber,
		Shipper:       Party{Name: shipper.Name, Address: shipper.Address, Contact: shipper.Contact},
		Consignee:     Party{Name: consignee.Name, Address: consignee.Address, Contact: consignee.Contact},
		Cargo: Cargo{
			Description:     cargo.Description,
			ContainerNumber: cargo.ContainerNumber,
			Weight:          Weight{Value: deref(cargo.Weight), Unit: cmp.Or(cargo.WeightUnit, si.WeightKG)},
			Volume:          Volume{Value: deref(cargo.Volume), Unit: cmp.Or(cargo.VolumeUnit, si.VolumeCBM)},
		},
		Shipping: Shipping{
			PortOfLoading:   ship.PortOfLoading,
			PortOfDischarge: ship.PortOfDischarge,
			VesselName:      ship.VesselName,
			VoyageNumber:    ship.VoyageNumber,
		},
		Dates: Dates{
			CargoReady:        rec.CargoReadyDate,
			RequestedShipDate: rec.RequestedShipDate,
		},
	}
}

// SubmissionRequest is the body posted to IRIS.
type SubmissionRequest struct {
	ShippingInstruction ShippingInstruction `json:"shippingInstruction"`
	SubmittedBy         string              `json:"submittedBy"`
	Timestamp           time.Time           `json:"timestamp"`
}

// NewSubmissionRequest builds a request for rec stamped with at.
func NewSubmissionRequest(rec si.Record, submittedBy string, at time.Time) SubmissionRequest {
	return SubmissionRequest{
		ShippingInstruction: NewShippingInstruction(rec),
		SubmittedBy:         submittedBy,
		Timestamp:           at,
	}
}

// Error is a problem IRIS reports against a submitted document.
type Error struct {
	Code     string `json:"code"`
	Field    string `json:"field,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// SubmissionResponse is the IRIS reply to a submission.
type SubmissionResponse struct {
	Success         bool           `json:"success"`
	ReferenceNumber string         `json:"referenceNumber"`
	Status          ResponseStatus `json:"status"`
	Message         string         `json:"message"`
	Timestamp       time.Time      `json:"timestamp"`
	Errors          []Error        `json:"errors,omitempty"`
}

// Accepted reports whether IRIS took the submission for processing.
// A pending response counts as accepted.
func (r SubmissionResponse) Accepted() bool {
	return r.Success && r.Status != StatusRejected
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
