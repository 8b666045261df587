package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mototransporte/internal/app/models"
	"github.com/yigit/mototransporte/internal/pkg/apperrors"
	"github.com/yigit/mototransporte/internal/pkg/validation"
	"github.com/yigit/mototransporte/internal/storage"
)

var fixedNow = time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store  *storage.MemoryStore
	facade *storage.LocalFacade
	repos  *Repositories
}

func newFixture(t *testing.T, store storage.KeyValueStore) *fixture {
	t.Helper()
	mem, _ := store.(*storage.MemoryStore)
	if store == nil {
		mem = storage.NewMemoryStore()
		store = mem
	}
	facade := storage.NewLocalFacade(store, 0, zerolog.Nop())
	t.Cleanup(func() { _ = facade.Close() })

	v := validation.New(validation.Options{Now: func() time.Time { return fixedNow }})
	return &fixture{
		store:  mem,
		facade: facade,
		repos:  NewRepositories(facade, v, zerolog.Nop()),
	}
}

func studentFields() validation.Fields {
	return validation.Fields{
		validation.FieldNationalID: "1234567-lp",
		validation.FieldFullName:   "Lucía Mamani Quispe",
		validation.FieldBirthDate:  "2015-03-09",
		validation.FieldAddress:    "Calle Sucre 123, Zona Central",
		validation.FieldPhone:      "78901234",
	}
}

func vehicleFields() validation.Fields {
	return validation.Fields{
		validation.FieldPlate:    "1234ABC",
		validation.FieldBrand:    "Toyota",
		validation.FieldModel:    "Hiace",
		validation.FieldYear:     2020.0,
		validation.FieldCapacity: 15.0,
	}
}

func driverFields(nationalID, expiry string) validation.Fields {
	return validation.Fields{
		validation.FieldNationalID:    nationalID,
		validation.FieldFullName:      "Juan Carlos Rojas",
		validation.FieldPhone:         "+591 71234567",
		validation.FieldLicenseNumber: "B-1234567",
		validation.FieldLicenseExpiry: expiry,
	}
}

func routeFields() validation.Fields {
	return validation.Fields{
		validation.FieldName:        "Ruta Norte",
		validation.FieldZone:        "Norte",
		validation.FieldPickupTime:  "07:00",
		validation.FieldDropoffTime: "08:00",
	}
}

func TestStudentCreate(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	s, err := f.repos.StudentRepository.Create(ctx, studentFields())
	require.NoError(t, err)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "1234567-LP", s.NationalID)
	assert.Equal(t, models.StatusActive, s.Status)
	assert.Equal(t, fixedNow, s.RegisteredAt)
	assert.Nil(t, s.ParentEmail)

	records, err := f.facade.Get(models.CollectionStudents).Await(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestStudentCreateDuplicateNationalID(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.repos.StudentRepository.Create(ctx, studentFields())
	require.NoError(t, err)

	dup := studentFields()
	dup[validation.FieldNationalID] = "1234567-LP"
	dup[validation.FieldFullName] = "Otro Nombre"
	_, err = f.repos.StudentRepository.Create(ctx, dup)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)
	assert.ErrorIs(t, err, apperrors.ErrNationalIDExists)
	assert.False(t, errors.Is(err, apperrors.ErrValidationFailed))
	assert.Equal(t, 1, f.repos.StudentRepository.Count())
}

func TestStudentCreateValidationFailure(t *testing.T) {
	f := newFixture(t, nil)

	payload := studentFields()
	payload[validation.FieldPhone] = "123"
	payload[validation.FieldAddress] = "corta"
	_, err := f.repos.StudentRepository.Create(context.Background(), payload)

	require.ErrorIs(t, err, apperrors.ErrValidationFailed)
	var errs *validation.Errors
	require.True(t, errors.As(err, &errs))
	assert.Len(t, errs.Fields, 2)
	assert.Zero(t, f.repos.StudentRepository.Count())
}

func TestStudentUpdateMergesAndKeepsNationalID(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	s, err := f.repos.StudentRepository.Create(ctx, studentFields())
	require.NoError(t, err)

	updated, err := f.repos.StudentRepository.Update(ctx, s.ID, validation.Fields{
		validation.FieldPhone:      "71234567",
		validation.FieldNationalID: "1234567-LP",
	})
	require.NoError(t, err)
	assert.Equal(t, "71234567", updated.Phone)
	assert.Equal(t, s.Address, updated.Address)
	assert.Equal(t, s.RegisteredAt, updated.RegisteredAt)

	cached, err := f.repos.StudentRepository.GetByID(s.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, cached)

	_, err = f.repos.StudentRepository.Update(ctx, s.ID, validation.Fields{validation.FieldNationalID: "7654321"})
	var errs *validation.Errors
	require.True(t, errors.As(err, &errs))
	assert.True(t, errs.Has(validation.FieldNationalID, validation.KindImmutable))
}

func TestUpdateAndDeleteUnknownID(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.repos.RouteRepository.Update(ctx, "missing", routeFields())
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.ErrorIs(t, err, apperrors.ErrRouteNotFound)

	err = f.repos.DriverRepository.Delete(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrDriverNotFound)
}

func TestVehicleScenario(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	v, err := f.repos.VehicleRepository.Create(ctx, vehicleFields())
	require.NoError(t, err)
	assert.Equal(t, models.StatusAvailable, v.Status)
	assert.Equal(t, 2020, v.Year)
	assert.Equal(t, 15, v.Capacity)

	again := vehicleFields()
	again[validation.FieldPlate] = "1234-abc"
	_, err = f.repos.VehicleRepository.Create(ctx, again)
	assert.ErrorIs(t, err, apperrors.ErrPlateExists)
	assert.Len(t, f.repos.VehicleRepository.List(), 1)

	_, err = f.repos.VehicleRepository.Update(ctx, v.ID, validation.Fields{validation.FieldStatus: "maintenance"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.repos.VehicleRepository.CountByStatus(models.StatusMaintenance))
}

func TestDeleteDriverLeavesRouteReference(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	d, err := f.repos.DriverRepository.Create(ctx, driverFields("7654321", "2027-05-01"))
	require.NoError(t, err)

	payload := routeFields()
	payload[validation.FieldDriverID] = d.ID
	r, err := f.repos.RouteRepository.Create(ctx, payload)
	require.NoError(t, err)

	require.NoError(t, f.repos.DriverRepository.Delete(ctx, d.ID))
	assert.Zero(t, f.repos.DriverRepository.Count())

	route, err := f.repos.RouteRepository.GetByID(r.ID)
	require.NoError(t, err)
	assert.Equal(t, d.ID, models.StringValue(route.DriverID))
}

func TestSearchDefaultsAndExplicitFields(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.repos.StudentRepository.Create(ctx, studentFields())
	require.NoError(t, err)

	assert.Len(t, f.repos.StudentRepository.Search("SUCRE"), 1)
	assert.Len(t, f.repos.StudentRepository.Search("lucía"), 1)
	assert.Empty(t, f.repos.StudentRepository.Search("sucre", validation.FieldFullName))
	assert.Len(t, f.repos.StudentRepository.Search(""), 1)
}

func TestExpiringLicenses(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.repos.DriverRepository.Create(ctx, driverFields("1111111", "2026-11-16"))
	require.NoError(t, err)
	_, err = f.repos.DriverRepository.Create(ctx, driverFields("2222222", "2026-11-17"))
	require.NoError(t, err)

	expiring := f.repos.DriverRepository.ExpiringLicenses(fixedNow, 30)
	require.Len(t, expiring, 1)
	assert.Equal(t, "1111111", expiring[0].NationalID)
}

func TestLoadAllFallsBackToEmpty(t *testing.T) {
	store := storage.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.SetItem(ctx, models.CollectionRoutes, []byte("not json")))
	require.NoError(t, store.SetItem(ctx, models.CollectionVehicles, []byte(`[{"id":"v1","plate":"1234ABC","year":2020,"capacity":15,"status":"available"}]`)))

	f := newFixture(t, store)
	failed := f.repos.LoadAll(ctx)

	require.Len(t, failed, 1)
	assert.ErrorIs(t, failed[models.CollectionRoutes], storage.ErrCorrupted)
	assert.Empty(t, f.repos.RouteRepository.List())
	assert.Len(t, f.repos.VehicleRepository.List(), 1)
}

func TestCountByRoute(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	payload := studentFields()
	payload[validation.FieldRouteID] = "r1"
	_, err := f.repos.StudentRepository.Create(ctx, payload)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"r1": 1}, f.repos.StudentRepository.CountByRoute())
}
