package catalog

import (
	"math"
	"strconv"
	"strings"
)

type Garment struct {
	Description string  `json:"description" yaml:"description"`
	Img         string  `json:"img" yaml:"img"`
	Gender      string  `json:"gender,omitempty" yaml:"gender,omitempty"`
	Season      string  `json:"season,omitempty" yaml:"season,omitempty"`
	Price       float64 `json:"price" yaml:"price"`
}

// Validate checks the fields every stored garment must carry.
func (g Garment) Validate() error {
	var fields []string
	if strings.TrimSpace(g.Description) == "" {
		fields = append(fields, FieldDescription)
	}
	if strings.TrimSpace(g.Img) == "" {
		fields = append(fields, FieldImg)
	}
	if !validPrice(g.Price) {
		fields = append(fields, FieldPrice)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// GarmentInput is a create request as it arrives from a form or JSON body,
// before any parsing.
type GarmentInput struct {
	Description string
	Img         string
	Gender      string
	Season      string
	Price       string
}

func (in GarmentInput) Garment() (Garment, error) {
	g := Garment{
		Description: strings.TrimSpace(in.Description),
		Img:         strings.TrimSpace(in.Img),
		Gender:      strings.TrimSpace(in.Gender),
		Season:      strings.TrimSpace(in.Season),
	}

	var fields []string
	if g.Description == "" {
		fields = append(fields, FieldDescription)
	}
	if g.Img == "" {
		fields = append(fields, FieldImg)
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	if err != nil || !validPrice(price) {
		fields = append(fields, FieldPrice)
	} else {
		g.Price = price
	}

	if len(fields) > 0 {
		return Garment{}, &ValidationError{Fields: fields}
	}
	return g, nil
}

func validPrice(p float64) bool {
	return !math.IsNaN(p) && !math.IsInf(p, 0) && p >= 0
}
