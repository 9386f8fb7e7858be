package catalog

import (
	"errors"
	"strings"
)

const (
	FieldDescription = "description"
	FieldImg         = "img"
	FieldPrice       = "price"
)

// ValidationError names the fields of a garment that are missing or malformed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "required data not supplied: " + strings.Join(e.Fields, ", ")
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
