package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"gatehouse/internal/platform/config"
	"gatehouse/internal/platform/logger"
	"gatehouse/internal/visitor/models"
	"gatehouse/internal/visitor/service"
	id "gatehouse/pkg/domain"
	"gatehouse/pkg/requestcontext"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the configured store with sample visitors",
		Long:  "Registers a small set of sample visitors in the configured store and walks them through check-in, check-out, and compliance annotations. Intended for demo and manual testing against Postgres or Redis.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.Context())
		},
	}
}

func runSeed(ctx context.Context) error {
	cfg := config.FromEnv()
	log := logger.New()

	deps, err := buildDeps(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.close(log)

	svc := service.New(deps.store, service.WithLogger(log))
	ctx = requestcontext.WithTime(ctx, time.Now())

	samples := []struct {
		params service.RegisterParams
		visit  func(context.Context, id.VisitorID) error
	}{
		{
			params: service.RegisterParams{
				Profile:           models.Profile{Name: "Maria Santos", Sex: "F", Contact: "0917-555-0101"},
				Relationship:      "sister",
				VisitedPersonID:   id.NewDetaineeID(),
				VisitedPersonName: "Jose Santos",
			},
			visit: func(ctx context.Context, visitorID id.VisitorID) error {
				if _, err := svc.CheckIn(ctx, visitorID); err != nil {
					return err
				}
				_, err := svc.CheckOut(ctx, visitorID)
				return err
			},
		},
		{
			params: service.RegisterParams{
				Profile:           models.Profile{Name: "Pedro Reyes", Sex: "M"},
				Relationship:      "friend",
				VisitedPersonID:   id.NewDetaineeID(),
				VisitedPersonName: "Ramon Cruz",
			},
			visit: func(ctx context.Context, visitorID id.VisitorID) error {
				if _, err := svc.CheckIn(ctx, visitorID); err != nil {
					return err
				}
				_, err := svc.RecordViolation(ctx, visitorID, models.ViolationContraband, "found contraband at screening")
				return err
			},
		},
		{
			params: service.RegisterParams{
				Profile:           models.Profile{Name: "Lucia Dizon", Sex: "F"},
				Relationship:      "mother",
				VisitedPersonID:   id.NewDetaineeID(),
				VisitedPersonName: "Antonio Dizon",
			},
			visit: func(ctx context.Context, visitorID id.VisitorID) error {
				if _, err := svc.CheckIn(ctx, visitorID); err != nil {
					return err
				}
				if _, err := svc.CheckOut(ctx, visitorID); err != nil {
					return err
				}
				_, err := svc.Ban(ctx, visitorID, "30 days", "repeated contraband attempts")
				return err
			},
		},
		{
			params: service.RegisterParams{
				Profile:           models.Profile{Name: "Carmen Lim", Sex: "F"},
				Relationship:      "wife",
				VisitedPersonID:   id.NewDetaineeID(),
				VisitedPersonName: "Daniel Lim",
			},
		},
	}

	for _, sample := range samples {
		record, err := svc.Register(ctx, sample.params)
		if err != nil {
			return fmt.Errorf("seed %s: %w", sample.params.Profile.Name, err)
		}
		if sample.visit != nil {
			if err := sample.visit(ctx, record.ID); err != nil {
				return fmt.Errorf("seed %s: %w", sample.params.Profile.Name, err)
			}
		}
		fmt.Printf("seeded %s (%s)\n", sample.params.Profile.Name, record.ID)
	}
	return nil
}
