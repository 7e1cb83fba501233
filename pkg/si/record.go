// Package si defines the Shipping Instruction record handled by the
// validation pipeline and the field identifiers used to address it.
package si

import "time"

// Status is the lifecycle state of an extracted SI record.
type Status string

const (
	StatusPending   Status = "pending"
	StatusExtracted Status = "extracted"
	StatusValidated Status = "validated"
	StatusSubmitted Status = "submitted"
)

type WeightUnit string

const (
	WeightKG  WeightUnit = "KG"
	WeightLBS WeightUnit = "LBS"
)

type VolumeUnit string

const (
	VolumeCBM VolumeUnit = "CBM"
	VolumeCFT VolumeUnit = "CFT"
)

// ValidationSummary is attached to a record returned from the validation endpoint.
type ValidationSummary struct {
	IsValid          bool      `json:"isValid" yaml:"isValid"`
	ValidatedAt      time.Time `json:"validatedAt" yaml:"validatedAt"`
	AutoFixesApplied int       `json:"autoFixesApplied" yaml:"autoFixesApplied"`
}

// Record is a Shipping Instruction as produced by the extraction step.
// The wire shape is flat; Party, Cargo and ShippingDetails are read-only views.
//
// Weight and Volume are pointers so that an absent value can be told apart from 0.
type Record struct {
	ID         string    `json:"id" yaml:"id"`
	FileName   string    `json:"fileName" yaml:"fileName"`
	UploadedAt time.Time `json:"uploadedAt,omitzero" yaml:"uploadedAt,omitempty"`
	Status     Status    `json:"status,omitempty" yaml:"status,omitempty"`

	ShipperName    string `json:"shipperName" yaml:"shipperName"`
	ShipperAddress string `json:"shipperAddress" yaml:"shipperAddress"`
	ShipperContact string `json:"shipperContact" yaml:"shipperContact"`

	ConsigneeName    string `json:"consigneeName" yaml:"consigneeName"`
	ConsigneeAddress string `json:"consigneeAddress" yaml:"consigneeAddress"`
	ConsigneeContact string `json:"consigneeContact" yaml:"consigneeContact"`

	CargoDescription string     `json:"cargoDescription" yaml:"cargoDescription"`
	ContainerNumber  string     `json:"containerNumber" yaml:"containerNumber"`
	Weight           *float64   `json:"weight,omitempty" yaml:"weight,omitempty"`
	WeightUnit       WeightUnit `json:"weightUnit,omitempty" yaml:"weightUnit,omitempty"`
	Volume           *float64   `json:"volume,omitempty" yaml:"volume,omitempty"`
	VolumeUnit       VolumeUnit `json:"volumeUnit,omitempty" yaml:"volumeUnit,omitempty"`

	PortOfLoading   string `json:"portOfLoading" yaml:"portOfLoading"`
	PortOfDischarge string `json:"portOfDischarge" yaml:"portOfDischarge"`
	VesselName      string `json:"vesselName,omitempty" yaml:"vesselName,omitempty"`
	VoyageNumber    string `json:"voyageNumber,omitempty" yaml:"voyageNumber,omitempty"`
	BookingNumber   string `json:"bookingNumber" yaml:"bookingNumber"`

	CargoReadyDate    string `json:"cargoReadyDate" yaml:"cargoReadyDate"`
	RequestedShipDate string `json:"requestedShipDate" yaml:"requestedShipDate"`

	ValidationResult *ValidationSummary `json:"validationResult,omitempty" yaml:"validationResult,omitempty"`
}

// Party is a shipper or consignee.
type Party struct {
	Name    string
	Address string
	Contact string
}

type Cargo struct {
	Description     string
	ContainerNumber string
	Weight          *float64
	WeightUnit      WeightUnit
	Volume          *float64
	VolumeUnit      VolumeUnit
}

type ShippingDetails struct {
	PortOfLoading   string
	PortOfDischarge string
	VesselName      string
	VoyageNumber    string
	BookingNumber   string
}

func (r Record) Shipper() Party {
	return Party{Name: r.ShipperName, Address: r.ShipperAddress, Contact: r.ShipperContact}
}

func (r Record) Consignee() Party {
	return Party{Name: r.ConsigneeName, Address: r.ConsigneeAddress, Contact: r.ConsigneeContact}
}

func (r Record) Cargo() Cargo {
	return Cargo{
		Description:     r.CargoDescription,
		ContainerNumber: r.ContainerNumber,
		Weight:          r.Weight,
		WeightUnit:      r.WeightUnit,
		Volume:          r.Volume,
		VolumeUnit:      r.VolumeUnit,
	}
}

func (r Record) Shipping() ShippingDetails {
	return ShippingDetails{
		PortOfLoading:   r.PortOfLoading,
		PortOfDischarge: r.PortOfDischarge,
		VesselName:      r.VesselName,
		VoyageNumber:    r.VoyageNumber,
		BookingNumber:   r.BookingNumber,
	}
}

// Clone returns a deep copy. Pointer fields are copied so that the clone
// and the original never share mutable state.
func (r Record) Clone() Record {
	c := r
	if r.Weight != nil {
		w := *r.Weight
		c.Weight = &w
	}
	if r.Volume != nil {
		v := *r.Volume
		c.Volume = &v
	}
	if r.ValidationResult != nil {
		s := *r.ValidationResult
		c.ValidationResult = &s
	}
	return c
}

// Float returns a pointer to v, handy for building records in code.
func Float(v float64) *float64 {
	return &v
}
