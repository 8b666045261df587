package models

import (
	"time"

	"github.com/yigit/mototransporte/internal/pkg/validation"
)

// Vehicle is a bus or van assigned to routes
type Vehicle struct {
	ID           string    `json:"id"`
	Plate        string    `json:"plate"`
	Brand        string    `json:"brand"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	Capacity     int       `json:"capacity"`
	Color        *string   `json:"color"`
	Status       Status    `json:"status"`
	RegisteredAt time.Time `json:"registeredAt"`
}

func (v Vehicle) GetID() string { return v.ID }

// Apply copies every field present in f onto the vehicle. Plates are stored normalized.
func (v *Vehicle) Apply(f validation.Fields) {
	if _, ok := f[validation.FieldPlate]; ok {
		v.Plate = validation.NormalizePlate(f.String(validation.FieldPlate))
	}
	if _, ok := f[validation.FieldBrand]; ok {
		v.Brand = f.Trimmed(validation.FieldBrand)
	}
	if _, ok := f[validation.FieldModel]; ok {
		v.Model = f.Trimmed(validation.FieldModel)
	}
	if _, ok := f[validation.FieldYear]; ok {
		v.Year = intField(f, validation.FieldYear)
	}
	if _, ok := f[validation.FieldCapacity]; ok {
		v.Capacity = intField(f, validation.FieldCapacity)
	}
	if _, ok := f[validation.FieldColor]; ok {
		v.Color = optionalString(f, validation.FieldColor)
	}
	if status := f.Trimmed(validation.FieldStatus); status != "" {
		v.Status = Status(status)
	}
}

// Fields exposes the vehicle as a raw payload for validation.
func (v Vehicle) Fields() validation.Fields {
	return validation.Fields{
		validation.FieldPlate:    v.Plate,
		validation.FieldBrand:    v.Brand,
		validation.FieldModel:    v.Model,
		validation.FieldYear:     v.Year,
		validation.FieldCapacity: v.Capacity,
		validation.FieldColor:    fieldOrNil(v.Color),
		validation.FieldStatus:   string(v.Status),
	}
}
