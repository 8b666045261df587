package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/mototransporte/internal/app/models"
	"github.com/yigit/mototransporte/internal/app/repositories"
	"github.com/yigit/mototransporte/internal/pkg/apperrors"
	"github.com/yigit/mototransporte/internal/pkg/validation"
	"github.com/yigit/mototransporte/internal/storage"
	"golang.org/x/text/message"
)

// EntityService is the operator facing surface for one entity type. Every
// mutation reports its outcome through the Notifier; Delete asks the Confirmer
// first.
type EntityService[T models.Entity] interface {
	List() []T
	Search(term string, fields ...string) []T
	Get(id string) (T, error)
	Create(ctx context.Context, f validation.Fields) (T, error)
	Update(ctx context.Context, id string, patch validation.Fields) (T, error)
	Delete(ctx context.Context, id string) error
}

type (
	StudentService = EntityService[models.Student]
	DriverService  = EntityService[models.Driver]
	VehicleService = EntityService[models.Vehicle]
	RouteService   = EntityService[models.Route]
)

// entityStore is implemented by the repositories.
type entityStore[T models.Entity] interface {
	List() []T
	Search(term string, fields ...string) []T
	GetByID(id string) (T, error)
	Create(ctx context.Context, f validation.Fields) (T, error)
	Update(ctx context.Context, id string, patch validation.Fields) (T, error)
	Delete(ctx context.Context, id string) error
}

// reference names the collection a field must point into.
type reference struct {
	field  string
	exists func(id string) bool
}

// fielded records expose their stored values for validation.
type fielded interface {
	models.Entity
	Fields() validation.Fields
}

type entityServiceImpl[T fielded] struct {
	store      entityStore[T]
	label      string
	validate   func(validation.Fields) *validation.Errors
	references []reference
	confirmer  Confirmer
	notifier   Notifier
	printer    *message.Printer
	logger     zerolog.Logger
}

// NewStudentService creates the student service. routeId must name a stored route.
func NewStudentService(repos *repositories.Repositories, validator *validation.Validator, opts Options) StudentService {
	return &entityServiceImpl[models.Student]{
		store:    repos.StudentRepository,
		label:    "entity.student",
		validate: validator.Student,
		references: []reference{
			{field: validation.FieldRouteID, exists: repos.RouteRepository.Exists},
		},
		confirmer: opts.Confirmer,
		notifier:  opts.Notifier,
		printer:   newPrinter(opts.Locale),
		logger:    opts.Logger.With().Str("service", models.CollectionStudents).Logger(),
	}
}

// NewDriverService creates the driver service
func NewDriverService(repos *repositories.Repositories, opts Options) DriverService {
	return &entityServiceImpl[models.Driver]{
		store:     repos.DriverRepository,
		label:     "entity.driver",
		confirmer: opts.Confirmer,
		notifier:  opts.Notifier,
		printer:   newPrinter(opts.Locale),
		logger:    opts.Logger.With().Str("service", models.CollectionDrivers).Logger(),
	}
}

// NewVehicleService creates the vehicle service
func NewVehicleService(repos *repositories.Repositories, opts Options) VehicleService {
	return &entityServiceImpl[models.Vehicle]{
		store:     repos.VehicleRepository,
		label:     "entity.vehicle",
		confirmer: opts.Confirmer,
		notifier:  opts.Notifier,
		printer:   newPrinter(opts.Locale),
		logger:    opts.Logger.With().Str("service", models.CollectionVehicles).Logger(),
	}
}

// NewRouteService creates the route service. driverId and vehicleId must name
// stored records when set.
func NewRouteService(repos *repositories.Repositories, validator *validation.Validator, opts Options) RouteService {
	return &entityServiceImpl[models.Route]{
		store:    repos.RouteRepository,
		label:    "entity.route",
		validate: validator.Route,
		references: []reference{
			{field: validation.FieldDriverID, exists: repos.DriverRepository.Exists},
			{field: validation.FieldVehicleID, exists: repos.VehicleRepository.Exists},
		},
		confirmer: opts.Confirmer,
		notifier:  opts.Notifier,
		printer:   newPrinter(opts.Locale),
		logger:    opts.Logger.With().Str("service", models.CollectionRoutes).Logger(),
	}
}

func (s *entityServiceImpl[T]) List() []T {
	return s.store.List()
}

func (s *entityServiceImpl[T]) Search(term string, fields ...string) []T {
	return s.store.Search(term, fields...)
}

func (s *entityServiceImpl[T]) Get(id string) (T, error) {
	return s.store.GetByID(id)
}

func (s *entityServiceImpl[T]) Create(ctx context.Context, f validation.Fields) (T, error) {
	var zero T
	if refs := s.checkReferences(f, nil); !refs.Valid() {
		errs := &validation.Errors{}
		if s.validate != nil {
			errs = s.validate(f)
		}
		errs.Fields = append(errs.Fields, refs.Fields...)
		return zero, s.fail(errs)
	}

	item, err := s.store.Create(ctx, f)
	if err != nil {
		return zero, s.fail(err)
	}
	s.notifier.Notify(models.NotificationSuccess, s.printer.Sprintf(msgCreated, s.entity()))
	return item, nil
}

func (s *entityServiceImpl[T]) Update(ctx context.Context, id string, patch validation.Fields) (T, error) {
	var zero T
	existing, err := s.store.GetByID(id)
	if err != nil {
		return zero, s.fail(err)
	}
	if refs := s.checkReferences(patch, existing.Fields()); !refs.Valid() {
		errs := &validation.Errors{}
		if s.validate != nil {
			errs = s.validate(existing.Fields().Merge(patch))
		}
		errs.Fields = append(errs.Fields, refs.Fields...)
		return zero, s.fail(errs)
	}

	item, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return zero, s.fail(err)
	}
	s.notifier.Notify(models.NotificationSuccess, s.printer.Sprintf(msgUpdated, s.entity()))
	return item, nil
}

// Delete asks for confirmation and removes the record. Dependents keep their
// reference to it.
func (s *entityServiceImpl[T]) Delete(ctx context.Context, id string) error {
	if _, err := s.store.GetByID(id); err != nil {
		return s.fail(err)
	}

	ok, err := s.confirmer.Confirm(ctx, s.printer.Sprintf(msgDeleteTitle, s.entity()), s.printer.Sprintf(msgDeleteBody))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: delete %s", apperrors.ErrConfirmationDeclined, id)
	}

	if err := s.store.Delete(ctx, id); err != nil {
		return s.fail(err)
	}
	s.notifier.Notify(models.NotificationSuccess, s.printer.Sprintf(msgDeleted, s.entity()))
	return nil
}

// checkReferences reports set reference fields that do not resolve. A value
// equal to the stored one is left alone, so a dangling id can be resubmitted.
func (s *entityServiceImpl[T]) checkReferences(f, stored validation.Fields) *validation.Errors {
	errs := &validation.Errors{}
	for _, ref := range s.references {
		id := f.Trimmed(ref.field)
		if id == "" || id == stored.Trimmed(ref.field) {
			continue
		}
		if !ref.exists(id) {
			errs.Add(ref.field, validation.KindReference)
		}
	}
	return errs
}

func (s *entityServiceImpl[T]) entity() string {
	return s.printer.Sprintf(s.label)
}

// fail notifies the operator about err and returns it unchanged.
func (s *entityServiceImpl[T]) fail(err error) error {
	var custom *apperrors.CustomError
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		s.notifier.Notify(models.NotificationWarning, s.printer.Sprintf(msgInvalid))
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		field, value := "", ""
		if errors.As(err, &custom) {
			field, _ = custom.Details["field"].(string)
			value, _ = custom.Details["value"].(string)
		}
		s.notifier.Notify(models.NotificationError, s.printer.Sprintf(msgDuplicate, field, value))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		s.notifier.Notify(models.NotificationError, s.printer.Sprintf(msgNotFound, s.entity()))
	case errors.Is(err, storage.ErrQuotaExceeded):
		s.logger.Error().Err(err).Msg("Storage quota exceeded")
		s.notifier.Notify(models.NotificationError, s.printer.Sprintf(msgStorageFull))
	default:
		s.logger.Error().Err(err).Msg("Storage operation failed")
		s.notifier.Notify(models.NotificationError, s.printer.Sprintf(msgStorage))
	}
	return err
}
