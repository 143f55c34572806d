package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/facility-atlas/pkg/models/domain"
	"github.com/de-tools/facility-atlas/pkg/services/seed"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

type SeedCmd struct {
	env  *Env
	opts seed.Options
	now  func() time.Time
}

func NewSeedCmd(env *Env) *cobra.Command {
	now := time.Now
	sc := &SeedCmd{env: env, opts: seed.DefaultOptions(now()), now: now}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a demo data set into the database",
		RunE:  sc.run,
	}

	cmd.Flags().IntVar(&sc.opts.Days, "days", sc.opts.Days, "Spread records over this many days either side of today")
	cmd.Flags().IntVar(&sc.opts.Maintenance, "maintenance", sc.opts.Maintenance, "Number of maintenance tasks")
	cmd.Flags().IntVar(&sc.opts.Bookings, "bookings", sc.opts.Bookings, "Number of bookings")
	cmd.Flags().IntVar(&sc.opts.Inspections, "inspections", sc.opts.Inspections, "Number of HSE inspections")

	return cmd
}

func (sc *SeedCmd) run(cmd *cobra.Command, _ []string) error {
	sc.opts.Today = sc.now()
	records, err := seed.DemoRecords(sc.opts)
	if err != nil {
		return err
	}

	err = sc.env.RunInTx(cmd.Context(), func(ctx context.Context) error {
		return sc.env.Records.Add(ctx, records...)
	})
	if err != nil {
		return fmt.Errorf("failed to seed records: %w", err)
	}

	groups := domain.GroupByKind(records)
	for _, k := range domain.Kinds {
		if _, err := fmt.Fprintf(sc.env.Output, "%s %d %s\n",
			color.New(color.FgGreen).Sprint("seeded"), len(groups[k]), k.Label()); err != nil {
			return err
		}
	}
	return nil
}
