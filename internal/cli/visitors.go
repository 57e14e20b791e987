package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"gatehouse/internal/platform/config"
	"gatehouse/internal/platform/logger"
	"gatehouse/internal/visitor/models"
	"gatehouse/internal/visitor/service"
)

func newVisitorsCmd() *cobra.Command {
	var (
		asJSON    bool
		classOnly string
	)

	cmd := &cobra.Command{
		Use:   "visitors",
		Short: "List visitor records from the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVisitors(cmd.Context(), asJSON, classOnly)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output JSON instead of a table")
	cmd.Flags().StringVar(&classOnly, "class", "", "filter by classification (clean|violator|banned)")

	return cmd
}

func runVisitors(ctx context.Context, asJSON bool, classOnly string) error {
	switch classOnly {
	case "", string(models.Clean), string(models.Violator), string(models.Banned):
	default:
		return fmt.Errorf("unknown classification %q", classOnly)
	}

	cfg := config.FromEnv()
	log := logger.New()

	deps, err := buildDeps(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.close(log)

	svc := service.New(deps.store, service.WithLogger(log))
	records, err := svc.ListRegistered(ctx)
	if err != nil {
		return err
	}

	if classOnly != "" {
		filtered := records[:0]
		for _, r := range records {
			if string(r.Classify()) == classOnly {
				filtered = append(filtered, r)
			}
		}
		records = filtered
	}

	if asJSON {
		return json.NewEncoder(os.Stdout).Encode(records)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tVISITING\tWINDOW\tCLASS\tLAST VISIT")
	for _, r := range records {
		lastVisit := "-"
		if r.LastVisitDate != nil {
			lastVisit = r.LastVisitDate.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Profile.Name, r.VisitedPersonName, r.Window, r.Classify(), lastVisit)
	}
	return w.Flush()
}
