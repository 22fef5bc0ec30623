package models

import (
	"errors"
	"regexp"
)

// ============================================================
// Form Fields
// ============================================================

type Field string

const (
	FieldSquareFeet Field = "squareFeet"
	FieldBedrooms   Field = "bedrooms"
	FieldBathrooms  Field = "bathrooms"
	FieldGarages    Field = "garages"
)

// Fields lists the form fields in display order.
var Fields = []Field{FieldSquareFeet, FieldBedrooms, FieldBathrooms, FieldGarages}

var ErrUnknownField = errors.New("unknown field")

var digitsOnly = regexp.MustCompile(`^\d+$`)

// ParseField maps a route parameter onto a form field.
func ParseField(name string) (Field, error) {
	for _, f := range Fields {
		if string(f) == name {
			return f, nil
		}
	}
	return "", ErrUnknownField
}

// Label is the human name of the field, used in notifications and the page.
func (f Field) Label() string {
	switch f {
	case FieldSquareFeet:
		return "Square Feet"
	case FieldBedrooms:
		return "Bedrooms"
	case FieldBathrooms:
		return "Bathrooms"
	case FieldGarages:
		return "Garages"
	}
	return string(f)
}

// ============================================================
// Form Inputs
// ============================================================

// FormInputs holds the four raw field values. Every value is either empty or
// consists of ASCII digits only; With is the only way to change a field.
type FormInputs struct {
	SquareFeet string `json:"squareFeet"`
	Bedrooms   string `json:"bedrooms"`
	Bathrooms  string `json:"bathrooms"`
	Garages    string `json:"garages"`
}

// AcceptsValue reports whether value may be stored in a field.
func AcceptsValue(value string) bool {
	return value == "" || digitsOnly.MatchString(value)
}

// With returns a copy of the inputs with field set to value. A value that is
// neither empty nor all digits is discarded and the inputs come back unchanged
// with accepted=false.
func (in FormInputs) With(field Field, value string) (out FormInputs, accepted bool) {
	if !AcceptsValue(value) {
		return in, false
	}

	out = in
	switch field {
	case FieldSquareFeet:
		out.SquareFeet = value
	case FieldBedrooms:
		out.Bedrooms = value
	case FieldBathrooms:
		out.Bathrooms = value
	case FieldGarages:
		out.Garages = value
	default:
		return in, false
	}
	return out, true
}

// Get returns the current value of field.
func (in FormInputs) Get(field Field) string {
	switch field {
	case FieldSquareFeet:
		return in.SquareFeet
	case FieldBedrooms:
		return in.Bedrooms
	case FieldBathrooms:
		return in.Bathrooms
	case FieldGarages:
		return in.Garages
	}
	return ""
}
