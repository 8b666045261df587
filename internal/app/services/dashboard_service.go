package services

import (
	"github.com/yigit/mototransporte/internal/app/models"
	"github.com/yigit/mototransporte/internal/app/repositories"
	"github.com/yigit/mototransporte/internal/pkg/validation"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Notification codes
const (
	CodeLicenseExpiring = "license_expiring"
	CodeMaintenance     = "vehicles_maintenance"
	CodeIncomplete      = "routes_incomplete"
	CodeAllClear        = "all_clear"
)

// Fields matched by the global search, per collection.
var (
	globalStudentFields = []string{validation.FieldNationalID, validation.FieldFullName}
	globalRouteFields   = []string{validation.FieldName, validation.FieldZone}
	globalDriverFields  = []string{validation.FieldNationalID, validation.FieldFullName}
	globalVehicleFields = []string{validation.FieldPlate, validation.FieldBrand}
)

// DashboardService computes read-side views over the current caches. Nothing is
// stored; every call recomputes from scratch.
type DashboardService interface {
	Dashboard() models.Dashboard
	Search(term string) models.SearchResults
	RouteSummaries() []models.RouteSummary
}

type dashboardServiceImpl struct {
	repos     *repositories.Repositories
	validator *validation.Validator
	printer   *message.Printer
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(repos *repositories.Repositories, validator *validation.Validator, locale language.Tag) DashboardService {
	return &dashboardServiceImpl{
		repos:     repos,
		validator: validator,
		printer:   newPrinter(locale),
	}
}

func (s *dashboardServiceImpl) Dashboard() models.Dashboard {
	now := s.validator.Now()
	d := models.Dashboard{
		Totals: models.Totals{
			Students: s.repos.StudentRepository.Count(),
			Routes:   s.repos.RouteRepository.Count(),
			Drivers:  s.repos.DriverRepository.Count(),
			Vehicles: s.repos.VehicleRepository.Count(),
		},
		ExpiringLicenses:      s.repos.DriverRepository.ExpiringLicenses(now, validation.LicenseWarnDays),
		VehiclesInMaintenance: s.repos.VehicleRepository.CountByStatus(models.StatusMaintenance),
		StudentsPerRoute:      s.repos.StudentRepository.CountByRoute(),
		Notifications:         []models.Notification{},
	}

	for _, r := range s.repos.RouteRepository.List() {
		if s.unassigned(r) {
			d.IncompleteRoutes++
		}
		if !r.Incomplete() && s.unassigned(r) {
			d.DanglingReferences++
		}
	}
	for _, st := range s.repos.StudentRepository.List() {
		if id := models.StringValue(st.RouteID); id != "" && !s.repos.RouteRepository.Exists(id) {
			d.DanglingReferences++
		}
	}

	for _, drv := range d.ExpiringLicenses {
		d.Notifications = append(d.Notifications, models.Notification{
			Kind:    models.NotificationWarning,
			Code:    CodeLicenseExpiring,
			Message: s.printer.Sprintf(msgLicenseExpires, drv.FullName),
			Subject: drv.ID,
		})
	}
	if d.VehiclesInMaintenance > 0 {
		d.Notifications = append(d.Notifications, models.Notification{
			Kind:    models.NotificationInfo,
			Code:    CodeMaintenance,
			Message: s.printer.Sprintf(msgMaintenance, d.VehiclesInMaintenance),
		})
	}
	if d.IncompleteRoutes > 0 {
		d.Notifications = append(d.Notifications, models.Notification{
			Kind:    models.NotificationWarning,
			Code:    CodeIncomplete,
			Message: s.printer.Sprintf(msgIncomplete, d.IncompleteRoutes),
		})
	}
	if len(d.Notifications) == 0 {
		d.Notifications = append(d.Notifications, models.Notification{
			Kind:    models.NotificationSuccess,
			Code:    CodeAllClear,
			Message: s.printer.Sprintf(msgAllClear),
		})
	}
	return d
}

// unassigned reports a route whose driver or vehicle is missing or no longer stored.
func (s *dashboardServiceImpl) unassigned(r models.Route) bool {
	if r.Incomplete() {
		return true
	}
	return !s.repos.DriverRepository.Exists(*r.DriverID) || !s.repos.VehicleRepository.Exists(*r.VehicleID)
}

func (s *dashboardServiceImpl) Search(term string) models.SearchResults {
	return models.SearchResults{
		Term:     term,
		Students: s.repos.StudentRepository.Search(term, globalStudentFields...),
		Routes:   s.repos.RouteRepository.Search(term, globalRouteFields...),
		Drivers:  s.repos.DriverRepository.Search(term, globalDriverFields...),
		Vehicles: s.repos.VehicleRepository.Search(term, globalVehicleFields...),
	}
}

// RouteSummaries resolves each route's driver and vehicle for display. A
// reference that does not resolve is shown as unassigned.
func (s *dashboardServiceImpl) RouteSummaries() []models.RouteSummary {
	counts := s.repos.StudentRepository.CountByRoute()
	unassigned := s.printer.Sprintf(msgUnassigned)

	routes := s.repos.RouteRepository.List()
	out := make([]models.RouteSummary, 0, len(routes))
	for _, r := range routes {
		summary := models.RouteSummary{
			Route:        r,
			DriverName:   unassigned,
			VehiclePlate: unassigned,
			StudentCount: counts[r.ID],
			Incomplete:   s.unassigned(r),
		}
		if drv, err := s.repos.DriverRepository.GetByID(models.StringValue(r.DriverID)); err == nil {
			summary.DriverName = drv.FullName
		}
		if v, err := s.repos.VehicleRepository.GetByID(models.StringValue(r.VehicleID)); err == nil {
			summary.VehiclePlate = v.Plate
		}
		out = append(out, summary)
	}
	return out
}
