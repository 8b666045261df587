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

// RouteSearchFields are filtered when the caller names none.
var RouteSearchFields = []string{
	validation.FieldName,
	validation.FieldZone,
}

// RouteRepository keeps the routes collection
type RouteRepository struct {
	*collection[models.Route]
	validator *validation.Validator
}

// NewRouteRepository creates a new route repository
func NewRouteRepository(facade storage.Facade, validator *validation.Validator, log zerolog.Logger) *RouteRepository {
	return &RouteRepository{
		collection: newCollection[models.Route](models.CollectionRoutes, facade, log),
		validator:  validator,
	}
}

// GetByID returns the cached route with id
func (r *RouteRepository) GetByID(id string) (models.Route, error) {
	route, ok := r.get(id)
	if !ok {
		return models.Route{}, apperrors.NewEntityNotFoundError(apperrors.ErrRouteNotFound, id)
	}
	return route, nil
}

// Create validates f and stores the new route
func (r *RouteRepository) Create(ctx context.Context, f validation.Fields) (models.Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if errs := r.validator.Route(f); !errs.Valid() {
		r.log.Debug().Err(errs).Msg("Route rejected")
		return models.Route{}, errs
	}

	route := models.Route{
		ID:        newID(),
		Status:    models.StatusActive,
		CreatedAt: r.validator.Now().UTC(),
	}
	route.Apply(f)

	if err := r.put(ctx, route); err != nil {
		return models.Route{}, err
	}
	return route, nil
}

// Update validates the stored route merged with patch and persists the result
func (r *RouteRepository) Update(ctx context.Context, id string, patch validation.Fields) (models.Route, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return models.Route{}, apperrors.NewEntityNotFoundError(apperrors.ErrRouteNotFound, id)
	}
	existing := r.items[i]

	if errs := r.validator.Route(existing.Fields().Merge(patch)); !errs.Valid() {
		return models.Route{}, errs
	}

	updated := existing
	updated.Apply(patch)

	stored, err := r.replace(ctx, updated)
	if errors.Is(err, storage.ErrNotFound) {
		return models.Route{}, apperrors.NewEntityNotFoundError(apperrors.ErrRouteNotFound, id)
	}
	return stored, err
}

// Delete removes the route from storage and the cache. Students keep their routeId.
func (r *RouteRepository) Delete(ctx context.Context, id string) error {
	if !r.Exists(id) {
		return apperrors.NewEntityNotFoundError(apperrors.ErrRouteNotFound, id)
	}
	err := r.remove(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return apperrors.NewEntityNotFoundError(apperrors.ErrRouteNotFound, id)
	}
	return err
}

// Search filters by fields, or by RouteSearchFields when none are given
func (r *RouteRepository) Search(term string, fields ...string) []models.Route {
	if len(fields) == 0 {
		fields = RouteSearchFields
	}
	return r.Filter(term, fields...)
}
