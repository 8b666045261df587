package models

// NotificationKind classifies a notification
type NotificationKind string

const (
	NotificationWarning NotificationKind = "warning"
	NotificationInfo    NotificationKind = "info"
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is one alert shown to the operator
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	// Subject is the id of the entity the alert refers to, when there is one.
	Subject string `json:"subject,omitempty"`
}

// Totals counts records per collection
type Totals struct {
	Students int `json:"students"`
	Routes   int `json:"routes"`
	Drivers  int `json:"drivers"`
	Vehicles int `json:"vehicles"`
}

// Dashboard aggregates the derived views shown on the landing page
type Dashboard struct {
	Totals                Totals         `json:"totals"`
	ExpiringLicenses      []Driver       `json:"expiringLicenses"`
	VehiclesInMaintenance int            `json:"vehiclesInMaintenance"`
	IncompleteRoutes      int            `json:"incompleteRoutes"`
	DanglingReferences    int            `json:"danglingReferences"`
	StudentsPerRoute      map[string]int `json:"studentsPerRoute"`
	Notifications         []Notification `json:"notifications"`
}

// RouteSummary is a route with its assignments resolved for display
type RouteSummary struct {
	Route        Route  `json:"route"`
	DriverName   string `json:"driverName"`
	VehiclePlate string `json:"vehiclePlate"`
	StudentCount int    `json:"studentCount"`
	Incomplete   bool   `json:"incomplete"`
}

// SearchResults groups global search matches by collection
type SearchResults struct {
	Term     string    `json:"term"`
	Students []Student `json:"students"`
	Routes   []Route   `json:"routes"`
	Drivers  []Driver  `json:"drivers"`
	Vehicles []Vehicle `json:"vehicles"`
}

// Total number of matches across collections.
func (r SearchResults) Total() int {
	return len(r.Students) + len(r.Routes) + len(r.Drivers) + len(r.Vehicles)
}
