package si

// Field is the wire identifier of a business field of a Record.
type Field string

const (
	ShipperName       Field = "shipperName"
	ShipperAddress    Field = "shipperAddress"
	ShipperContact    Field = "shipperContact"
	ConsigneeName     Field = "consigneeName"
	ConsigneeAddress  Field = "consigneeAddress"
	ConsigneeContact  Field = "consigneeContact"
	CargoDescription  Field = "cargoDescription"
	ContainerNumber   Field = "containerNumber"
	BookingNumber     Field = "bookingNumber"
	PortOfLoading     Field = "portOfLoading"
	PortOfDischarge   Field = "portOfDischarge"
	VesselName        Field = "vesselName"
	VoyageNumber      Field = "voyageNumber"
	CargoReadyDate    Field = "cargoReadyDate"
	RequestedShipDate Field = "requestedShipDate"
	Weight            Field = "weight"
	Volume            Field = "volume"
)

func (f Field) String() string {
	return string(f)
}

// BusinessFields returns the 17 fields that count towards validation metadata,
// in counting order.
func BusinessFields() []Field {
	return []Field{
		ShipperName, ShipperAddress, ShipperContact,
		ConsigneeName, ConsigneeAddress, ConsigneeContact,
		CargoDescription, ContainerNumber, BookingNumber,
		PortOfLoading, PortOfDischarge, VesselName, VoyageNumber,
		CargoReadyDate, RequestedShipDate,
		Weight, Volume,
	}
}

// RequiredFields returns the business fields a record must carry.
// Vessel name and voyage number are optional.
func RequiredFields() []Field {
	return []Field{
		ShipperName, ShipperAddress, ShipperContact,
		ConsigneeName, ConsigneeAddress, ConsigneeContact,
		CargoDescription, ContainerNumber, BookingNumber,
		PortOfLoading, PortOfDischarge,
		CargoReadyDate, RequestedShipDate,
		Weight, Volume,
	}
}

// TextFields returns the free-form string fields subject to whitespace trimming.
func TextFields() []Field {
	return []Field{
		ShipperName, ShipperAddress, ShipperContact,
		ConsigneeName, ConsigneeAddress, ConsigneeContact,
		CargoDescription, ContainerNumber, BookingNumber,
		PortOfLoading, PortOfDischarge, VesselName, VoyageNumber,
	}
}

// IsNumeric reports whether f holds a number rather than a string.
func (f Field) IsNumeric() bool {
	return f == Weight || f == Volume
}

// Text returns the value of a string field. The second result is false
// for numeric or unknown fields.
func (r Record) Text(f Field) (string, bool) {
	if p := r.textRef(f); p != nil {
		return *p, true
	}
	return "", false
}

// SetText assigns a string field. It reports false for numeric or unknown fields.
func (r *Record) SetText(f Field, v string) bool {
	p := r.textRef(f)
	if p == nil {
		return false
	}
	*p = v
	return true
}

// Number returns the value of a numeric field, or nil when it is absent.
func (r Record) Number(f Field) *float64 {
	switch f {
	case Weight:
		return r.Weight
	case Volume:
		return r.Volume
	default:
		return nil
	}
}

// IsEmpty reports whether f carries no value: an empty string or an absent number.
// Zero is a value.
func (r Record) IsEmpty(f Field) bool {
	if f.IsNumeric() {
		return r.Number(f) == nil
	}
	v, ok := r.Text(f)
	return !ok || v == ""
}

func (r *Record) textRef(f Field) *string {
	switch f {
	case ShipperName:
		return &r.ShipperName
	case ShipperAddress:
		return &r.ShipperAddress
	case ShipperContact:
		return &r.ShipperContact
	case ConsigneeName:
		return &r.ConsigneeName
	case ConsigneeAddress:
		return &r.ConsigneeAddress
	case ConsigneeContact:
		return &r.ConsigneeContact
	case CargoDescription:
		return &r.CargoDescription
	case ContainerNumber:
		return &r.ContainerNumber
	case BookingNumber:
		return &r.BookingNumber
	case PortOfLoading:
		return &r.PortOfLoading
	case PortOfDischarge:
		return &r.PortOfDischarge
	case VesselName:
		return &r.VesselName
	case VoyageNumber:
		return &r.VoyageNumber
	case CargoReadyDate:
		return &r.CargoReadyDate
	case RequestedShipDate:
		return &r.RequestedShipDate
	default:
		return nil
	}
}
