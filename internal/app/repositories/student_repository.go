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

// StudentSearchFields are filtered when the caller names none.
var StudentSearchFields = []string{
	validation.FieldNationalID,
	validation.FieldFullName,
	validation.FieldAddress,
	validation.FieldPhone,
}

// StudentRepository keeps the students collection
type StudentRepository struct {
	*collection[models.Student]
	validator *validation.Validator
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(facade storage.Facade, validator *validation.Validator, log zerolog.Logger) *StudentRepository {
	return &StudentRepository{
		collection: newCollection[models.Student](models.CollectionStudents, facade, log),
		validator:  validator,
	}
}

// GetByID returns the cached student with id
func (r *StudentRepository) GetByID(id string) (models.Student, error) {
	s, ok := r.get(id)
	if !ok {
		return models.Student{}, apperrors.NewEntityNotFoundError(apperrors.ErrStudentNotFound, id)
	}
	return s, nil
}

func (r *StudentRepository) findByNationalID(normalized string) (models.Student, bool) {
	for _, s := range r.items {
		if validation.NormalizeNationalID(s.NationalID) == normalized {
			return s, true
		}
	}
	return models.Student{}, false
}

// Create validates f, rejects a duplicate national id and stores the new student
func (r *StudentRepository) Create(ctx context.Context, f validation.Fields) (models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if errs := r.validator.Student(f); !errs.Valid() {
		r.log.Debug().Err(errs).Msg("Student rejected")
		return models.Student{}, errs
	}

	nationalID := validation.NormalizeNationalID(f.String(validation.FieldNationalID))
	if _, exists := r.findByNationalID(nationalID); exists {
		return models.Student{}, apperrors.NewDuplicateKeyError(apperrors.ErrNationalIDExists, validation.FieldNationalID, nationalID)
	}

	student := models.Student{
		ID:           newID(),
		Status:       models.StatusActive,
		RegisteredAt: r.validator.Now().UTC(),
	}
	student.Apply(f)

	if err := r.put(ctx, student); err != nil {
		return models.Student{}, err
	}
	return student, nil
}

// Update validates the stored student merged with patch and persists the result.
// The national id cannot change.
func (r *StudentRepository) Update(ctx context.Context, id string, patch validation.Fields) (models.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Student{}, apperrors.NewEntityNotFoundError(apperrors.ErrStudentNotFound, id)
	}
	existing := r.items[i]

	errs := r.validator.Student(existing.Fields().Merge(patch))
	if patch.Has(validation.FieldNationalID) &&
		validation.NormalizeNationalID(patch.String(validation.FieldNationalID)) != validation.NormalizeNationalID(existing.NationalID) {
		errs.Add(validation.FieldNationalID, validation.KindImmutable)
	}
	if !errs.Valid() {
		return models.Student{}, errs
	}

	updated := existing
	updated.Apply(patch)

	stored, err := r.replace(ctx, updated)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Student{}, apperrors.NewEntityNotFoundError(apperrors.ErrStudentNotFound, id)
	}
	return stored, err
}

// Delete removes the student from storage and the cache
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	if !r.Exists(id) {
		return apperrors.NewEntityNotFoundError(apperrors.ErrStudentNotFound, id)
	}
	err := r.remove(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.NewEntityNotFoundError(apperrors.ErrStudentNotFound, id)
	}
	return err
}

// Search filters by fields, or by StudentSearchFields when none are given
func (r *StudentRepository) Search(term string, fields ...string) []models.Student {
	if len(fields) == 0 {
		fields = StudentSearchFields
	}
	return r.Filter(term, fields...)
}

// CountByRoute returns how many students reference each route id
func (r *StudentRepository) CountByRoute() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[string]int)
	for _, s := range r.items {
		if id := models.StringValue(s.RouteID); id != "" {
			counts[id]++
		}
	}
	return counts
}
