// Package services layers operator interaction (confirmation and
// notifications), cross-entity checks and backups over the repositories.
package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/mototransporte/internal/app/models"
	"github.com/yigit/mototransporte/internal/app/repositories"
	"github.com/yigit/mototransporte/internal/pkg/validation"
	"github.com/yigit/mototransporte/internal/storage"
	"golang.org/x/text/language"
)

// Confirmer asks the operator to approve a destructive operation.
type Confirmer interface {
	Confirm(ctx context.Context, title, message string) (bool, error)
}

// Notifier presents the outcome of an operation to the operator.
type Notifier interface {
	Notify(kind models.NotificationKind, message string)
}

// AutoConfirmer answers every confirmation with its own value.
type AutoConfirmer bool

func (a AutoConfirmer) Confirm(context.Context, string, string) (bool, error) {
	return bool(a), nil
}

type confirmationKey struct{}

// WithConfirmation records an answer given ahead of the prompt, as clients of
// the HTTP API do with confirm=true.
func WithConfirmation(ctx context.Context, confirmed bool) context.Context {
	return context.WithValue(ctx, confirmationKey{}, confirmed)
}

// ContextConfirmer answers with the value stored by WithConfirmation and
// declines when there is none.
type ContextConfirmer struct{}

func (ContextConfirmer) Confirm(ctx context.Context, _, _ string) (bool, error) {
	confirmed, _ := ctx.Value(confirmationKey{}).(bool)
	return confirmed, nil
}

// LogNotifier writes notifications to a logger.
type LogNotifier struct {
	Logger zerolog.Logger
}

func (n LogNotifier) Notify(kind models.NotificationKind, message string) {
	ev := n.Logger.Info()
	switch kind {
	case models.NotificationWarning:
		ev = n.Logger.Warn()
	case models.NotificationError:
		ev = n.Logger.Error()
	}
	ev.Str("kind", string(kind)).Msg(message)
}

// Options configures the services.
type Options struct {
	Confirmer Confirmer
	Notifier  Notifier
	// Locale selects the language of notifications and prompts.
	Locale language.Tag
	Logger zerolog.Logger
}

// Services holds all the service instances
type Services struct {
	StudentService   StudentService
	DriverService    DriverService
	VehicleService   VehicleService
	RouteService     RouteService
	DashboardService DashboardService
	BackupService    BackupService
}

// NewServices wires every service over the same repositories
func NewServices(repos *repositories.Repositories, facade storage.Facade, validator *validation.Validator, opts Options) *Services {
	if opts.Confirmer == nil {
		opts.Confirmer = AutoConfirmer(false)
	}
	if opts.Notifier == nil {
		opts.Notifier = LogNotifier{Logger: opts.Logger}
	}
	if opts.Locale == language.Und {
		opts.Locale = language.Spanish
	}

	return &Services{
		StudentService:   NewStudentService(repos, validator, opts),
		DriverService:    NewDriverService(repos, opts),
		VehicleService:   NewVehicleService(repos, opts),
		RouteService:     NewRouteService(repos, validator, opts),
		DashboardService: NewDashboardService(repos, validator, opts.Locale),
		BackupService:    NewBackupService(repos, facade, validator, opts),
	}
}
