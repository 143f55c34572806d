package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/facility-atlas/pkg/config"
	"github.com/de-tools/facility-atlas/pkg/runtime/pdf"
	"github.com/de-tools/facility-atlas/pkg/runtime/xlsx"
	profiles "github.com/de-tools/facility-atlas/pkg/services/config"
	"github.com/de-tools/facility-atlas/pkg/services/report"
	"github.com/de-tools/facility-atlas/pkg/store/sqlite"
	"github.com/de-tools/facility-atlas/pkg/store/sqlite/records"
	"github.com/rs/zerolog"
)

// App holds the services both entrypoints are built from.
type App struct {
	DB       *sql.DB
	Records  records.Store
	Reports  report.Service
	Profiles profiles.Registry
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := zerolog.Ctx(ctx)

	registry, err := profiles.NewRegistry(cfg.Report.Profiles)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile registry: %w", err)
	}
	if cfg.Report.Profiles != "" {
		names, _ := registry.GetProfiles()
		logger.Info().Strs("profiles", names).Msgf("report profiles loaded from `%s`", cfg.Report.Profiles)
	}

	opts := report.DefaultOptions()
	opts.Layout.RowsPerPage = cfg.Report.RowsPerPage
	opts.CurrencySymbol = cfg.Report.CurrencySymbol
	opts.Facility = cfg.Report.Facility
	composer, err := report.NewComposer(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create report composer: %w", err)
	}

	db, err := sqlite.NewDB(ctx, sqlite.Settings{DbPath: cfg.Database.Path})
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite instance: %w", err)
	}

	store, err := records.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create record store: %w", err)
	}

	svc, err := report.NewService(report.Dependencies{
		Records:  store,
		Composer: composer,
		Serializers: []report.Serializer{
			pdf.NewSerializer(composer.Layout()),
			xlsx.NewSerializer(),
		},
		Profiles: registry,
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create report service: %w", err)
	}

	logger.Info().Str("database", cfg.Database.Path).Msg("record store ready")

	return &App{DB: db, Records: store, Reports: svc, Profiles: registry}, nil
}

// RunInTx runs fn in a database transaction the record store picks up from ctx.
func (a *App) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return sqlite.RunInTx(ctx, a.DB, fn)
}

func (a *App) Close() error {
	return a.DB.Close()
}
