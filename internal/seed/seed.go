package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/mototransporte/internal/app/models"
	"github.com/yigit/mototransporte/internal/app/services"
	"github.com/yigit/mototransporte/internal/pkg/helpers"
	"github.com/yigit/mototransporte/internal/pkg/validation"
)

// CreateDefaultData fills an empty store with a small demo fleet. Records go
// through the services, so they are validated like operator input. Nothing is
// created when any collection already holds data.
func CreateDefaultData(ctx context.Context, svc *services.Services, validator *validation.Validator, lgr zerolog.Logger) error {
	if len(svc.StudentService.List())+len(svc.DriverService.List())+len(svc.VehicleService.List())+len(svc.RouteService.List()) > 0 {
		lgr.Info().Msg("Store already has data, skipping demo data")
		return nil
	}

	lgr.Info().Msg("Creating demo data (drivers/vehicles/routes/students)...")
	now := validator.Now()
	var finalErr error // To collect potential errors without stopping the process

	// --- Drivers --- //
	driverIDs := make([]string, 0, 2)
	for _, f := range []validation.Fields{
		{
			validation.FieldNationalID:    "4567890-LP",
			validation.FieldFullName:      "Juan Carlos Mamani",
			validation.FieldPhone:         "71234567",
			validation.FieldLicenseNumber: "C-1234567",
			validation.FieldLicenseExpiry: now.AddDate(1, 0, 0).Format(helpers.DateLayout),
		},
		{
			validation.FieldNationalID:    "5678901-SC",
			validation.FieldFullName:      "María Elena Quispe",
			validation.FieldPhone:         "+591 72345678",
			validation.FieldLicenseNumber: "B-7654321",
			validation.FieldLicenseExpiry: now.AddDate(0, 0, 20).Format(helpers.DateLayout),
			validation.FieldEmail:         "maria.quispe@example.com",
		},
	} {
		d, err := svc.DriverService.Create(ctx, f)
		if err != nil {
			lgr.Error().Err(err).Str("nationalId", f.String(validation.FieldNationalID)).Msg("Error creating demo driver")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		driverIDs = append(driverIDs, d.ID)
	}

	// --- Vehicles --- //
	vehicleIDs := make([]string, 0, 2)
	for _, f := range []validation.Fields{
		{
			validation.FieldPlate:    "1234ABC",
			validation.FieldBrand:    "Toyota",
			validation.FieldModel:    "Hiace",
			validation.FieldYear:     2020,
			validation.FieldCapacity: 15,
			validation.FieldColor:    "Blanco",
		},
		{
			validation.FieldPlate:    "5678XYZ",
			validation.FieldBrand:    "Nissan",
			validation.FieldModel:    "Urvan",
			validation.FieldYear:     2018,
			validation.FieldCapacity: 12,
			validation.FieldStatus:   string(models.StatusMaintenance),
		},
	} {
		v, err := svc.VehicleService.Create(ctx, f)
		if err != nil {
			lgr.Error().Err(err).Str("plate", f.String(validation.FieldPlate)).Msg("Error creating demo vehicle")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		vehicleIDs = append(vehicleIDs, v.ID)
	}

	// --- Routes --- //
	north := validation.Fields{
		validation.FieldName:        "Ruta Norte",
		validation.FieldZone:        "Zona Norte",
		validation.FieldPickupTime:  "06:45",
		validation.FieldDropoffTime: "07:40",
	}
	if len(driverIDs) > 0 && len(vehicleIDs) > 0 {
		north[validation.FieldDriverID] = driverIDs[0]
		north[validation.FieldVehicleID] = vehicleIDs[0]
	}
	south := validation.Fields{
		validation.FieldName:        "Ruta Sur",
		validation.FieldZone:        "Zona Sur",
		validation.FieldPickupTime:  "07:00",
		validation.FieldDropoffTime: "07:50",
	}
	if len(driverIDs) > 1 {
		south[validation.FieldDriverID] = driverIDs[1]
	}

	routeIDs := make([]string, 0, 2)
	for _, f := range []validation.Fields{north, south} {
		r, err := svc.RouteService.Create(ctx, f)
		if err != nil {
			lgr.Error().Err(err).Str("name", f.String(validation.FieldName)).Msg("Error creating demo route")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		routeIDs = append(routeIDs, r.ID)
	}

	// --- Students --- //
	students := []validation.Fields{
		{
			validation.FieldNationalID:  "12345678",
			validation.FieldFullName:    "Lucía Fernández Rojas",
			validation.FieldBirthDate:   now.AddDate(-9, -2, 0).Format(helpers.DateLayout),
			validation.FieldAddress:     "Av. Busch 1450, Miraflores",
			validation.FieldPhone:       "78901234",
			validation.FieldParentEmail: "familia.fernandez@example.com",
		},
		{
			validation.FieldNationalID: "9876543-CBBA",
			validation.FieldFullName:   "Diego Alejandro Choque",
			validation.FieldBirthDate:  now.AddDate(-12, -5, 0).Format(helpers.DateLayout),
			validation.FieldAddress:    "Calle Jordán 233, Centro",
			validation.FieldPhone:      "+591 76543210",
		},
	}
	for i, f := range students {
		if i < len(routeIDs) {
			f[validation.FieldRouteID] = routeIDs[i]
		}
		if _, err := svc.StudentService.Create(ctx, f); err != nil {
			lgr.Error().Err(err).Str("nationalId", f.String(validation.FieldNationalID)).Msg("Error creating demo student")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Demo data created.")
	}
	return finalErr
}
