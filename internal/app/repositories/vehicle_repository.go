package repositories

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"github.com/yigit/mototransporte/internal/app/models"
	"github.com/yigit/mototransporte/internal/pkg/apperrors"
	"github.com/yigit/mototransporte/internal/pkg/validation"
	"github.com/yigit/mototransporte/internal/storage"
)

// VehicleSearchFields are filtered when the caller names none.
var VehicleSearchFields = []string{
	validation.FieldPlate,
	validation.FieldBrand,
	validation.FieldModel,
}

// VehicleRepository keeps the vehicles collection
type VehicleRepository struct {
	*collection[models.Vehicle]
	validator *validation.Validator
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(facade storage.Facade, validator *validation.Validator, log zerolog.Logger) *VehicleRepository {
	return &VehicleRepository{
		collection: newCollection[models.Vehicle](models.CollectionVehicles, facade, log),
		validator:  validator,
	}
}

// GetByID returns the cached vehicle with id
func (r *VehicleRepository) GetByID(id string) (models.Vehicle, error) {
	v, ok := r.get(id)
	if !ok {
		return models.Vehicle{}, apperrors.NewEntityNotFoundError(apperrors.ErrVehicleNotFound, id)
	}
	return v, nil
}

func (r *VehicleRepository) findByPlate(normalized string) (models.Vehicle, bool) {
	for _, v := range r.items {
		if validation.NormalizePlate(v.Plate) == normalized {
			return v, true
		}
	}
	return models.Vehicle{}, false
}

// Create validates f, rejects a duplicate plate and stores the new vehicle
func (r *VehicleRepository) Create(ctx context.Context, f validation.Fields) (models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if errs := r.validator.Vehicle(f); !errs.Valid() {
		r.log.Debug().Err(errs).Msg("Vehicle rejected")
		return models.Vehicle{}, errs
	}

	plate := validation.NormalizePlate(f.String(validation.FieldPlate))
	if _, exists := r.findByPlate(plate); exists {
		return models.Vehicle{}, apperrors.NewDuplicateKeyError(apperrors.ErrPlateExists, validation.FieldPlate, plate)
	}

	vehicle := models.Vehicle{
		ID:           newID(),
		Status:       models.StatusAvailable,
		RegisteredAt: r.validator.Now().UTC(),
	}
	vehicle.Apply(f)

	if err := r.put(ctx, vehicle); err != nil {
		return models.Vehicle{}, err
	}
	return vehicle, nil
}

// Update validates the stored vehicle merged with patch and persists the result.
// The plate cannot change.
func (r *VehicleRepository) Update(ctx context.Context, id string, patch validation.Fields) (models.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Vehicle{}, apperrors.NewEntityNotFoundError(apperrors.ErrVehicleNotFound, id)
	}
	existing := r.items[i]

	errs := r.validator.Vehicle(existing.Fields().Merge(patch))
	if patch.Has(validation.FieldPlate) &&
		validation.NormalizePlate(patch.String(validation.FieldPlate)) != validation.NormalizePlate(existing.Plate) {
		errs.Add(validation.FieldPlate, validation.KindImmutable)
	}
	if !errs.Valid() {
		return models.Vehicle{}, errs
	}

	updated := existing
	updated.Apply(patch)

	stored, err := r.replace(ctx, updated)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Vehicle{}, apperrors.NewEntityNotFoundError(apperrors.ErrVehicleNotFound, id)
	}
	return stored, err
}

// Delete removes the vehicle from storage and the cache. Routes keep their vehicleId.
func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	if !r.Exists(id) {
		return apperrors.NewEntityNotFoundError(apperrors.ErrVehicleNotFound, id)
	}
	err := r.remove(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.NewEntityNotFoundError(apperrors.ErrVehicleNotFound, id)
	}
	return err
}

// Search filters by fields, or by VehicleSearchFields when none are given
func (r *VehicleRepository) Search(term string, fields ...string) []models.Vehicle {
	if len(fields) == 0 {
		fields = VehicleSearchFields
	}
	return r.Filter(term, fields...)
}

// CountByStatus counts vehicles in status
func (r *VehicleRepository) CountByStatus(status models.Status) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, v := range r.items {
		if v.Status == status {
			n++
		}
	}
	return n
}
