package models

import (
	"time"

	"github.com/yigit/mototransporte/internal/pkg/validation"
)

// Route is a pickup/drop-off circuit served by one driver and one vehicle
type Route struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Zone        string    `json:"zone"`
	PickupTime  string    `json:"pickupTime"`
	DropoffTime string    `json:"dropoffTime"`
	DriverID    *string   `json:"driverId"`
	VehicleID   *string   `json:"vehicleId"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (r Route) GetID() string { return r.ID }

// Incomplete reports a route missing its driver or its vehicle.
func (r Route) Incomplete() bool {
	return StringValue(r.DriverID) == "" || StringValue(r.VehicleID) == ""
}

// Apply copies every field present in f onto the route.
func (r *Route) Apply(f validation.Fields) {
	if _, ok := f[validation.FieldName]; ok {
		r.Name = f.Trimmed(validation.FieldName)
	}
	if _, ok := f[validation.FieldZone]; ok {
		r.Zone = f.Trimmed(validation.FieldZone)
	}
	if _, ok := f[validation.FieldPickupTime]; ok {
		r.PickupTime = f.Trimmed(validation.FieldPickupTime)
	}
	if _, ok := f[validation.FieldDropoffTime]; ok {
		r.DropoffTime = f.Trimmed(validation.FieldDropoffTime)
	}
	if _, ok := f[validation.FieldDriverID]; ok {
		r.DriverID = optionalString(f, validation.FieldDriverID)
	}
	if _, ok := f[validation.FieldVehicleID]; ok {
		r.VehicleID = optionalString(f, validation.FieldVehicleID)
	}
	if status := f.Trimmed(validation.FieldStatus); status != "" {
		r.Status = Status(status)
	}
}

// Fields exposes the route as a raw payload for validation.
func (r Route) Fields() validation.Fields {
	return validation.Fields{
		validation.FieldName:        r.Name,
		validation.FieldZone:        r.Zone,
		validation.FieldPickupTime:  r.PickupTime,
		validation.FieldDropoffTime: r.DropoffTime,
		validation.FieldDriverID:    fieldOrNil(r.DriverID),
		validation.FieldVehicleID:   fieldOrNil(r.VehicleID),
		validation.FieldStatus:      string(r.Status),
	}
}
