package repositories

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/mototransporte/internal/pkg/validation"
	"github.com/yigit/mototransporte/internal/storage"
)

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository *StudentRepository
	DriverRepository  *DriverRepository
	VehicleRepository *VehicleRepository
	RouteRepository   *RouteRepository
}

// NewRepositories initializes all repositories over one storage facade
func NewRepositories(facade storage.Facade, validator *validation.Validator, log zerolog.Logger) *Repositories {
	return &Repositories{
		StudentRepository: NewStudentRepository(facade, validator, log),
		DriverRepository:  NewDriverRepository(facade, validator, log),
		VehicleRepository: NewVehicleRepository(facade, validator, log),
		RouteRepository:   NewRouteRepository(facade, validator, log),
	}
}

// LoadAll fills every cache from storage. A collection that cannot be read is
// left empty; the failures are returned so the caller can report them.
func (r *Repositories) LoadAll(ctx context.Context) map[string]error {
	loaders := map[string]func(context.Context) error{
		r.StudentRepository.name: r.StudentRepository.Load,
		r.DriverRepository.name:  r.DriverRepository.Load,
		r.VehicleRepository.name: r.VehicleRepository.Load,
		r.RouteRepository.name:   r.RouteRepository.Load,
	}
	failed := make(map[string]error)
	for name, load := range loaders {
		if err := load(ctx); err != nil {
			failed[name] = err
		}
	}
	return failed
}
