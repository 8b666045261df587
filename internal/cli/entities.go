package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/yigit/mototransporte/internal/app/models"
	"github.com/yigit/mototransporte/internal/app/services"
	"github.com/yigit/mototransporte/internal/pkg/validation"
)

// entityView describes how one collection is exposed on the command line.
type entityView[T models.Entity] struct {
	use     string
	short   string
	service func(*services.Services) services.EntityService[T]
	header  []string
	row     func(item T, now time.Time) []string
}

var studentView = entityView[models.Student]{
	use:     "students",
	short:   "Manage students",
	service: func(s *services.Services) services.StudentService { return s.StudentService },
	header:  []string{"ID", "CI", "NAME", "AGE", "PHONE", "ROUTE", "STATUS"},
	row:     func(s models.Student, now time.Time) []string {
		return []string{s.ID, s.NationalID, s.FullName, strconv.Itoa(s.Age(now)),
			validation.FormatPhone(s.Phone), models.StringValue(s.RouteID), string(s.Status)}
	},
}

var driverView = entityView[models.Driver]{
	use:     "drivers",
	short:   "Manage drivers",
	service: func(s *services.Services) services.DriverService { return s.DriverService },
	header:  []string{"ID", "CI", "NAME", "LICENSE", "EXPIRES", "PHONE", "STATUS"},
	row:     func(d models.Driver, _ time.Time) []string {
		return []string{d.ID, d.NationalID, d.FullName, d.LicenseNumber, d.LicenseExpiry.String(),
			validation.FormatPhone(d.Phone), string(d.Status)}
	},
}

var vehicleView = entityView[models.Vehicle]{
	use:     "vehicles",
	short:   "Manage vehicles",
	service: func(s *services.Services) services.VehicleService { return s.VehicleService },
	header:  []string{"ID", "PLATE", "BRAND", "MODEL", "YEAR", "CAPACITY", "STATUS"},
	row:     func(v models.Vehicle, _ time.Time) []string {
		return []string{v.ID, v.Plate, v.Brand, v.Model, strconv.Itoa(v.Year), strconv.Itoa(v.Capacity), string(v.Status)}
	},
}

var routeView = entityView[models.Route]{
	use:     "routes",
	short:   "Manage routes",
	service: func(s *services.Services) services.RouteService { return s.RouteService },
	header:  []string{"ID", "NAME", "ZONE", "PICKUP", "DROPOFF", "DRIVER", "VEHICLE", "STATUS"},
	row:     func(r models.Route, _ time.Time) []string {
		return []string{r.ID, r.Name, r.Zone, r.PickupTime, r.DropoffTime,
			models.StringValue(r.DriverID), models.StringValue(r.VehicleID), string(r.Status)}
	},
}

func newEntityCommand[T models.Entity](a *app, view entityView[T]) *cobra.Command {
	cmd := &cobra.Command{
		Use:   view.use,
		Short: view.short,
	}

	var search string
	var fields []string
	list := &cobra.Command{
		Use:   "list",
		Short: "List records, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := view.service(a.deps.Services)
			items := svc.List()
			if search != "" {
				items = svc.Search(search, fields...)
			}
			now := a.deps.Validator.Now()
			return writeTable(a.streams.Out, view.header, items, func(item T) []string { return view.row(item, now) })
		},
	}
	list.Flags().StringVarP(&search, "search", "q", "", "case-insensitive text to look for")
	list.Flags().StringSliceVar(&fields, "fields", nil, "fields to search in (default depends on the collection)")

	show := &cobra.Command{
		Use:   "show ID",
		Short: "Print one record as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := view.service(a.deps.Services).Get(args[0])
			if err != nil {
				return err
			}
			return writeJSON(a.streams.Out, item)
		},
	}

	var sets []string
	var payload string
	add := &cobra.Command{
		Use:   "add",
		Short: "Create a record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := readPayload(payload, sets)
			if err != nil {
				return err
			}
			var created T
			err = loading(a.streams.Err, "saving", func() error {
				created, err = view.service(a.deps.Services).Create(cmd.Context(), f)
				return err
			})
			if err != nil {
				return a.explain(err)
			}
			fmt.Fprintln(a.streams.Out, created.GetID())
			return nil
		},
	}
	addPayloadFlags(add, &sets, &payload)

	var updateSets []string
	var updatePayload string
	update := &cobra.Command{
		Use:   "update ID",
		Short: "Change fields of a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := readPayload(updatePayload, updateSets)
			if err != nil {
				return err
			}
			var updated T
			err = loading(a.streams.Err, "saving", func() error {
				updated, err = view.service(a.deps.Services).Update(cmd.Context(), args[0], f)
				return err
			})
			if err != nil {
				return a.explain(err)
			}
			return writeJSON(a.streams.Out, updated)
		},
	}
	addPayloadFlags(update, &updateSets, &updatePayload)

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a record after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return loading(a.streams.Err, "deleting", func() error {
				return view.service(a.deps.Services).Delete(cmd.Context(), args[0])
			})
		},
	}

	cmd.AddCommand(list, show, add, update, del)
	return cmd
}

func addPayloadFlags(cmd *cobra.Command, sets *[]string, payload *string) {
	cmd.Flags().StringArrayVar(sets, "set", nil, "field assignment as key=value, repeatable")
	cmd.Flags().StringVar(payload, "json", "", "fields as a JSON object; --set values win")
}

// readPayload merges a JSON object with key=value assignments.
func readPayload(raw string, sets []string) (validation.Fields, error) {
	f := validation.Fields{}
	if strings.TrimSpace(raw) != "" {
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			return nil, fmt.Errorf("--json: %w", err)
		}
	}
	assigned, err := parseAssignments(sets)
	if err != nil {
		return nil, err
	}
	return f.Merge(assigned), nil
}

func writeTable[T any](out io.Writer, header []string, items []T, row func(T) []string) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, item := range items {
		fmt.Fprintln(w, strings.Join(row(item), "\t"))
	}
	return w.Flush()
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
