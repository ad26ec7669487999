package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"equitie-backend/internal/application/auth"
	"equitie-backend/internal/application/transactions"
	"equitie-backend/internal/config"
	"equitie-backend/internal/infrastructure/database"

	"github.com/glebarez/sqlite"
	"github.com/google/subcommands"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var commands = []subcommands.Command{
	&migrateCmd{},
	&seedCmd{},
	&priceCmd{out: os.Stdout},
	&tokenCmd{out: os.Stdout},
}

// dbFlags selects the target database: a local SQLite file when -sqlite is
// set, otherwise the Postgres URL from the environment.
type dbFlags struct {
	sqlitePath string
}

func (d *dbFlags) register(f *flag.FlagSet) {
	f.StringVar(&d.sqlitePath, "sqlite", "", "Path of a SQLite database file to use instead of the configured Postgres database.")
}

func (d *dbFlags) open() (*gorm.DB, error) {
	if d.sqlitePath != "" {
		return gorm.Open(sqlite.Open(d.sqlitePath), &gorm.Config{})
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("no database configured: set DATABASE_URL_DEV (or _PROD/_TEST) or pass -sqlite")
	}
	return database.Open(cfg.DatabaseURL)
}

type migrateCmd struct {
	dbFlags
}

func (*migrateCmd) Name() string     { return "migrate" }
func (*migrateCmd) Synopsis() string { return "create or update all tables" }
func (*migrateCmd) Usage() string {
	return `admin migrate [-sqlite <path>]

  Runs AutoMigrate for every back-office table.
`
}

func (m *migrateCmd) SetFlags(f *flag.FlagSet) { m.register(f) }

func (m *migrateCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := m.open()
	if err != nil {
		log.Error().Err(err).Msg("open database")
		return subcommands.ExitFailure
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Error().Err(err).Msg("migrate")
		return subcommands.ExitFailure
	}
	log.Info().Msg("migration complete")
	return subcommands.ExitSuccess
}

type seedCmd struct {
	dbFlags
}

func (*seedCmd) Name() string     { return "seed" }
func (*seedCmd) Synopsis() string { return "insert the reference transaction and fee types" }
func (*seedCmd) Usage() string {
	return `admin seed [-sqlite <path>]

  Inserts the default transaction types and fee types. Safe to run repeatedly.
`
}

func (s *seedCmd) SetFlags(f *flag.FlagSet) { s.register(f) }

func (s *seedCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := s.open()
	if err != nil {
		log.Error().Err(err).Msg("open database")
		return subcommands.ExitFailure
	}
	if err := database.Seed(ctx, db); err != nil {
		log.Error().Err(err).Msg("seed")
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type priceCmd struct {
	commit string
	units  string
	out    io.Writer
}

func (*priceCmd) Name() string     { return "price" }
func (*priceCmd) Synopsis() string { return "print the price per unit for a commitment and unit count" }
func (*priceCmd) Usage() string {
	return `admin price -commit <amount> -units <count>

  Prints net capital commitment divided by number of units, or 0 when units is 0.
`
}

func (p *priceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.commit, "commit", "0", "Net capital commitment.")
	f.StringVar(&p.units, "units", "0", "Number of units.")
}

func (p *priceCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	commit, err := decimal.NewFromString(p.commit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -commit: %v\n", err)
		return subcommands.ExitUsageError
	}
	units, err := decimal.NewFromString(p.units)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -units: %v\n", err)
		return subcommands.ExitUsageError
	}
	fmt.Fprintln(p.out, transactions.PricePerUnit(commit, units).String())
	return subcommands.ExitSuccess
}

type tokenCmd struct {
	userID string
	email  string
	ttl    time.Duration
	out    io.Writer
}

func (*tokenCmd) Name() string     { return "token" }
func (*tokenCmd) Synopsis() string { return "mint a development session token" }
func (*tokenCmd) Usage() string {
	return `admin token -user <id> [-email <email>] [-ttl <duration>]

  Prints an HS256 token signed with SUPABASE_JWT_SECRET, for local testing of
  GET /api/v1/auth/session.
`
}

func (t *tokenCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&t.userID, "user", "", "Subject (user id) of the token.")
	f.StringVar(&t.email, "email", "", "Email claim.")
	f.DurationVar(&t.ttl, "ttl", time.Hour, "Token lifetime.")
}

func (t *tokenCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if t.userID == "" {
		fmt.Fprintln(os.Stderr, "-user is required")
		return subcommands.ExitUsageError
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	tok, err := auth.GenerateToken(cfg.SupabaseJWTSecret, t.userID, t.email, t.ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(t.out, tok)
	return subcommands.ExitSuccess
}
