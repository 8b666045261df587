package models

import (
	"time"

	"github.com/yigit/mototransporte/internal/pkg/validation"
)

// Driver operates a vehicle on a route
type Driver struct {
	ID            string    `json:"id"`
	NationalID    string    `json:"nationalId"`
	FullName      string    `json:"fullName"`
	Phone         string    `json:"phone"`
	LicenseNumber string    `json:"licenseNumber"`
	LicenseExpiry Date      `json:"licenseExpiry"`
	Email         *string   `json:"email"`
	Status        Status    `json:"status"`
	HiredAt       time.Time `json:"hiredAt"`
}

func (d Driver) GetID() string { return d.ID }

// Apply copies every field present in f onto the driver.
func (d *Driver) Apply(f validation.Fields) {
	if _, ok := f[validation.FieldNationalID]; ok {
		d.NationalID = validation.NormalizeNationalID(f.String(validation.FieldNationalID))
	}
	if _, ok := f[validation.FieldFullName]; ok {
		d.FullName = f.Trimmed(validation.FieldFullName)
	}
	if _, ok := f[validation.FieldPhone]; ok {
		d.Phone = f.Trimmed(validation.FieldPhone)
	}
	if _, ok := f[validation.FieldLicenseNumber]; ok {
		d.LicenseNumber = f.Trimmed(validation.FieldLicenseNumber)
	}
	if _, ok := f[validation.FieldLicenseExpiry]; ok {
		d.LicenseExpiry = dateField(f, validation.FieldLicenseExpiry)
	}
	if _, ok := f[validation.FieldEmail]; ok {
		d.Email = optionalString(f, validation.FieldEmail)
	}
	if status := f.Trimmed(validation.FieldStatus); status != "" {
		d.Status = Status(status)
	}
}

// Fields exposes the driver as a raw payload for validation.
func (d Driver) Fields() validation.Fields {
	return validation.Fields{
		validation.FieldNationalID:    d.NationalID,
		validation.FieldFullName:      d.FullName,
		validation.FieldPhone:         d.Phone,
		validation.FieldLicenseNumber: d.LicenseNumber,
		validation.FieldLicenseExpiry: d.LicenseExpiry.String(),
		validation.FieldEmail:         fieldOrNil(d.Email),
		validation.FieldStatus:        string(d.Status),
	}
}
