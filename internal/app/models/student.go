package models

import (
	"time"

	"github.com/yigit/mototransporte/internal/pkg/helpers"
	"github.com/yigit/mototransporte/internal/pkg/validation"
)

// Student is a child transported on a route
type Student struct {
	ID           string    `json:"id"`
	NationalID   string    `json:"nationalId"`
	FullName     string    `json:"fullName"`
	BirthDate    Date      `json:"birthDate"`
	Address      string    `json:"address"`
	Phone        string    `json:"phone"`
	ParentEmail  *string   `json:"parentEmail"`
	RouteID      *string   `json:"routeId"`
	Status       Status    `json:"status"`
	RegisteredAt time.Time `json:"registeredAt"`
}

func (s Student) GetID() string { return s.ID }

// Age in whole years at now.
func (s Student) Age(now time.Time) int {
	return helpers.CalculateAge(s.BirthDate.At(now.Location()), now)
}

// Apply copies every field present in f onto the student. The id and the
// registration timestamp are never taken from f.
func (s *Student) Apply(f validation.Fields) {
	if _, ok := f[validation.FieldNationalID]; ok {
		s.NationalID = validation.NormalizeNationalID(f.String(validation.FieldNationalID))
	}
	if _, ok := f[validation.FieldFullName]; ok {
		s.FullName = f.Trimmed(validation.FieldFullName)
	}
	if _, ok := f[validation.FieldBirthDate]; ok {
		s.BirthDate = dateField(f, validation.FieldBirthDate)
	}
	if _, ok := f[validation.FieldAddress]; ok {
		s.Address = f.Trimmed(validation.FieldAddress)
	}
	if _, ok := f[validation.FieldPhone]; ok {
		s.Phone = f.Trimmed(validation.FieldPhone)
	}
	if _, ok := f[validation.FieldParentEmail]; ok {
		s.ParentEmail = optionalString(f, validation.FieldParentEmail)
	}
	if _, ok := f[validation.FieldRouteID]; ok {
		s.RouteID = optionalString(f, validation.FieldRouteID)
	}
	if status := f.Trimmed(validation.FieldStatus); status != "" {
		s.Status = Status(status)
	}
}

// Fields exposes the student as a raw payload for validation.
func (s Student) Fields() validation.Fields {
	return validation.Fields{
		validation.FieldNationalID:  s.NationalID,
		validation.FieldFullName:    s.FullName,
		validation.FieldBirthDate:   s.BirthDate.String(),
		validation.FieldAddress:     s.Address,
		validation.FieldPhone:       s.Phone,
		validation.FieldParentEmail: fieldOrNil(s.ParentEmail),
		validation.FieldRouteID:     fieldOrNil(s.RouteID),
		validation.FieldStatus:      string(s.Status),
	}
}
