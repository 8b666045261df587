package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/mototransporte/internal/app/models"
	"github.com/yigit/mototransporte/internal/pkg/apperrors"
	"github.com/yigit/mototransporte/internal/pkg/helpers"
	"github.com/yigit/mototransporte/internal/pkg/validation"
	"github.com/yigit/mototransporte/internal/storage"
)

// DriverSearchFields are filtered when the caller names none.
var DriverSearchFields = []string{
	validation.FieldNationalID,
	validation.FieldFullName,
	validation.FieldLicenseNumber,
	validation.FieldPhone,
}

// DriverRepository keeps the drivers collection
type DriverRepository struct {
	*collection[models.Driver]
	validator *validation.Validator
}

// NewDriverRepository creates a new driver repository
func NewDriverRepository(facade storage.Facade, validator *validation.Validator, log zerolog.Logger) *DriverRepository {
	return &DriverRepository{
		collection: newCollection[models.Driver](models.CollectionDrivers, facade, log),
		validator:  validator,
	}
}

// GetByID returns the cached driver with id
func (r *DriverRepository) GetByID(id string) (models.Driver, error) {
	d, ok := r.get(id)
	if !ok {
		return models.Driver{}, apperrors.NewEntityNotFoundError(apperrors.ErrDriverNotFound, id)
	}
	return d, nil
}

func (r *DriverRepository) findByNationalID(normalized string) (models.Driver, bool) {
	for _, d := range r.items {
		if validation.NormalizeNationalID(d.NationalID) == normalized {
			return d, true
		}
	}
	return models.Driver{}, false
}

// Create validates f, rejects a duplicate national id and stores the new driver
func (r *DriverRepository) Create(ctx context.Context, f validation.Fields) (models.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if errs := r.validator.Driver(f); !errs.Valid() {
		r.log.Debug().Err(errs).Msg("Driver rejected")
		return models.Driver{}, errs
	}

	nationalID := validation.NormalizeNationalID(f.String(validation.FieldNationalID))
	if _, exists := r.findByNationalID(nationalID); exists {
		return models.Driver{}, apperrors.NewDuplicateKeyError(apperrors.ErrNationalIDExists, validation.FieldNationalID, nationalID)
	}

	driver := models.Driver{
		ID:      newID(),
		Status:  models.StatusActive,
		HiredAt: r.validator.Now().UTC(),
	}
	driver.Apply(f)

	if err := r.put(ctx, driver); err != nil {
		return models.Driver{}, err
	}
	return driver, nil
}

// Update validates the stored driver merged with patch and persists the result.
// The national id cannot change.
func (r *DriverRepository) Update(ctx context.Context, id string, patch validation.Fields) (models.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Driver{}, apperrors.NewEntityNotFoundError(apperrors.ErrDriverNotFound, id)
	}
	existing := r.items[i]

	errs := r.validator.Driver(existing.Fields().Merge(patch))
	if patch.Has(validation.FieldNationalID) &&
		validation.NormalizeNationalID(patch.String(validation.FieldNationalID)) != validation.NormalizeNationalID(existing.NationalID) {
		errs.Add(validation.FieldNationalID, validation.KindImmutable)
	}
	if !errs.Valid() {
		return models.Driver{}, errs
	}

	updated := existing
	updated.Apply(patch)

	stored, err := r.replace(ctx, updated)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Driver{}, apperrors.NewEntityNotFoundError(apperrors.ErrDriverNotFound, id)
	}
	return stored, err
}

// Delete removes the driver from storage and the cache. Routes keep their driverId.
func (r *DriverRepository) Delete(ctx context.Context, id string) error {
	if !r.Exists(id) {
		return apperrors.NewEntityNotFoundError(apperrors.ErrDriverNotFound, id)
	}
	err := r.remove(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.NewEntityNotFoundError(apperrors.ErrDriverNotFound, id)
	}
	return err
}

// Search filters by fields, or by DriverSearchFields when none are given
func (r *DriverRepository) Search(term string, fields ...string) []models.Driver {
	if len(fields) == 0 {
		fields = DriverSearchFields
	}
	return r.Filter(term, fields...)
}

// ExpiringLicenses returns drivers whose license expires between today and
// today+days, both inclusive.
func (r *DriverRepository) ExpiringLicenses(now time.Time, days int) []models.Driver {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Driver{}
	for _, d := range r.items {
		if d.LicenseExpiry.IsZero() {
			continue
		}
		if helpers.WithinDays(d.LicenseExpiry.At(now.Location()), now, days) {
			out = append(out, d)
		}
	}
	return out
}
