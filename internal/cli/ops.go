package cli

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/yigit/mototransporte/internal/app/models"
	"github.com/yigit/mototransporte/internal/pkg/filestorage"
	"github.com/yigit/mototransporte/internal/seed"
)

func newDashboardCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show totals and pending notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := a.deps.Services.DashboardService.Dashboard()

			w := tabwriter.NewWriter(a.streams.Out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Students\t%d\n", d.Totals.Students)
			fmt.Fprintf(w, "Routes\t%d\n", d.Totals.Routes)
			fmt.Fprintf(w, "Drivers\t%d\n", d.Totals.Drivers)
			fmt.Fprintf(w, "Vehicles\t%d\n", d.Totals.Vehicles)
			fmt.Fprintf(w, "In maintenance\t%d\n", d.VehiclesInMaintenance)
			fmt.Fprintf(w, "Incomplete routes\t%d\n", d.IncompleteRoutes)
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintln(a.streams.Out)
			for _, n := range d.Notifications {
				fmt.Fprintf(a.streams.Out, "%s %s\n", notificationPrefix[n.Kind], n.Message)
			}
			return nil
		},
	}
}

func newRouteSummaryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "List routes with driver, vehicle and student count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summaries := a.deps.Services.DashboardService.RouteSummaries()
			header := []string{"ID", "NAME", "DRIVER", "VEHICLE", "STUDENTS", "COMPLETE"}
			return writeTable(a.streams.Out, header, summaries, func(s models.RouteSummary) []string {
				complete := "yes"
				if s.Incomplete {
					complete = "no"
				}
				return []string{s.Route.ID, s.Route.Name, s.DriverName, s.VehiclePlate, strconv.Itoa(s.StudentCount), complete}
			})
		},
	}
}

func newSearchCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search TERM",
		Short: "Search every collection",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := a.deps.Services.DashboardService.Search(strings.Join(args, " "))

			w := tabwriter.NewWriter(a.streams.Out, 0, 0, 2, ' ', 0)
			for _, s := range r.Students {
				fmt.Fprintf(w, "%s\t%s\t%s\n", models.CollectionStudents, s.ID, s.FullName)
			}
			for _, rt := range r.Routes {
				fmt.Fprintf(w, "%s\t%s\t%s\n", models.CollectionRoutes, rt.ID, rt.Name)
			}
			for _, d := range r.Drivers {
				fmt.Fprintf(w, "%s\t%s\t%s\n", models.CollectionDrivers, d.ID, d.FullName)
			}
			for _, v := range r.Vehicles {
				fmt.Fprintf(w, "%s\t%s\t%s\n", models.CollectionVehicles, v.ID, v.Plate)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(a.streams.Err, "%d match(es)\n", r.Total())
			return nil
		},
	}
}

func newExportCommand(a *app) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every collection to a dated JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var files filestorage.FileStorage = a.deps.FileStorage
			if dir != "" {
				local, err := filestorage.NewLocalStorage(dir)
				if err != nil {
					return err
				}
				files = local
			}
			var path string
			err := loading(a.streams.Err, "exporting", func() (err error) {
				path, err = a.deps.Services.BackupService.WriteExport(cmd.Context(), files)
				return err
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(a.streams.Out, path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "directory to write to instead of the configured one")
	return cmd
}

func newImportCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace collections with the ones found in an export file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var counts map[string]int
			err = loading(a.streams.Err, "importing", func() (err error) {
				counts, err = a.deps.Services.BackupService.Import(cmd.Context(), raw)
				return err
			})
			if err != nil {
				return err
			}
			names := make([]string, 0, len(counts))
			for name := range counts {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(a.streams.Out, "%s\t%d\n", name, counts[name])
			}
			return nil
		},
	}
}

func newClearCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored record after confirmation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return loading(a.streams.Err, "clearing", func() error {
				return a.deps.Services.BackupService.ClearAll(cmd.Context())
			})
		},
	}
}

func newSeedCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create demo records when storage is empty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return seed.CreateDefaultData(cmd.Context(), a.deps.Services, a.deps.Validator, a.deps.Logger)
		},
	}
}
