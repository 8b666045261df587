package services

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var notices = catalog.NewBuilder(catalog.Fallback(language.English))

// Message keys
const (
	msgCreated        = "notice.created"
	msgUpdated        = "notice.updated"
	msgDeleted        = "notice.deleted"
	msgInvalid        = "notice.invalid"
	msgDuplicate      = "notice.duplicate"
	msgNotFound       = "notice.notFound"
	msgStorage        = "notice.storage"
	msgStorageFull    = "notice.storageFull"
	msgDeleteTitle    = "confirm.delete.title"
	msgDeleteBody     = "confirm.delete.message"
	msgClearTitle     = "confirm.clear.title"
	msgClearBody      = "confirm.clear.message"
	msgExported       = "notice.exported"
	msgImported       = "notice.imported"
	msgImportFailed   = "notice.importFailed"
	msgCleared        = "notice.cleared"
	msgLicenseExpires = "dashboard.licenseExpiring"
	msgMaintenance    = "dashboard.maintenance"
	msgIncomplete     = "dashboard.incomplete"
	msgAllClear       = "dashboard.allClear"
	msgUnassigned     = "summary.unassigned"
)

func init() {
	for _, e := range []struct{ key, en, es string }{
		{"entity.student", "Student", "Estudiante"},
		{"entity.driver", "Driver", "Conductor"},
		{"entity.vehicle", "Vehicle", "Vehículo"},
		{"entity.route", "Route", "Ruta"},
		{msgCreated, "%[1]s registered successfully", "%[1]s registrado correctamente"},
		{msgUpdated, "%[1]s updated successfully", "%[1]s actualizado correctamente"},
		{msgDeleted, "%[1]s deleted", "%[1]s eliminado"},
		{msgInvalid, "Please correct the highlighted fields", "Corrija los campos marcados"},
		{msgDuplicate, "A record with %[1]s %[2]s already exists", "Ya existe un registro con %[1]s %[2]s"},
		{msgNotFound, "%[1]s not found", "%[1]s no encontrado"},
		{msgStorage, "The data could not be saved", "No se pudieron guardar los datos"},
		{msgStorageFull, "Storage is full, export and clear old data", "El almacenamiento está lleno, exporte y limpie datos antiguos"},
		{msgDeleteTitle, "Delete %[1]s?", "¿Eliminar %[1]s?"},
		{msgDeleteBody, "This action cannot be undone", "Esta acción no se puede deshacer"},
		{msgClearTitle, "Delete ALL data?", "¿Eliminar TODOS los datos?"},
		{msgClearBody, "This permanently removes every student, route, driver and vehicle. It cannot be undone.",
			"Esta acción eliminará permanentemente todos los estudiantes, rutas, conductores y vehículos. No se puede deshacer."},
		{msgExported, "Data exported to %[1]s", "Datos exportados correctamente en %[1]s"},
		{msgImported, "Data imported successfully", "Los datos se han importado correctamente"},
		{msgImportFailed, "The file is not a valid backup", "El archivo no es un respaldo válido"},
		{msgCleared, "All data has been deleted", "Todos los datos han sido eliminados"},
		{msgLicenseExpires, "License of driver %[1]s expires soon", "La licencia del conductor %[1]s vence pronto"},
		{msgMaintenance, "%[1]d vehicle(s) under maintenance", "%[1]d vehículo(s) en mantenimiento"},
		{msgIncomplete, "%[1]d route(s) without driver or vehicle", "%[1]d ruta(s) sin conductor o vehículo asignado"},
		{msgAllClear, "All clear, no pending notifications", "Todo está en orden, no hay notificaciones pendientes"},
		{msgUnassigned, "Unassigned", "Sin asignar"},
	} {
		if err := notices.SetString(language.English, e.key, e.en); err != nil {
			panic(err)
		}
		if err := notices.SetString(language.Spanish, e.key, e.es); err != nil {
			panic(err)
		}
	}
}

func newPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(notices))
}
