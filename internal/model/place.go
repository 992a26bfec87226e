package model

// Property keys of school and park features.
const (
	KeySchoolName     = "NAME"
	KeySchoolTypeDesc = "SCHOOL_TYPE_DESC"
	KeySchoolType     = "schooltype"
	KeyParkName       = "ASSET_NAME"
	KeyParkAmenities  = "AMENITIES"
)

// School is a school location.
type School struct {
	Name     string `json:"name"`
	TypeDesc string `json:"type_desc,omitempty"`
	Type     string `json:"type,omitempty"`
}

// DisplayType prefers the long type description, then the short code.
func (s School) DisplayType() string {
	switch {
	case s.TypeDesc != "":
		return s.TypeDesc
	case s.Type != "":
		return s.Type
	default:
		return NotAvailable
	}
}

// Park is a park asset.
type Park struct {
	Name      string `json:"name"`
	Amenities string `json:"amenities,omitempty"`
}

// NotAvailable is displayed for optional attributes that are absent.
const NotAvailable = "N/A"

// ParseSchool builds a School from feature properties.
func ParseSchool(props Properties) (School, error) {
	name, err := props.RequiredString(KeySchoolName)
	if err != nil {
		return School{}, err
	}
	desc, _ := props.String(KeySchoolTypeDesc)
	typ, _ := props.String(KeySchoolType)
	return School{Name: name, TypeDesc: desc, Type: typ}, nil
}

// ParsePark builds a Park from feature properties.
func ParsePark(props Properties) (Park, error) {
	name, err := props.RequiredString(KeyParkName)
	if err != nil {
		return Park{}, err
	}
	amenities, _ := props.String(KeyParkAmenities)
	return Park{Name: name, Amenities: amenities}, nil
}
