package main

import (
	"bytes"
	"context"
	"flag"
	"path/filepath"
	"testing"

	"equitie-backend/internal/domain"

	"github.com/google/subcommands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	require.NoError(t, f.Parse(args))
	return c.Execute(context.Background(), f)
}

func TestPrice(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, subcommands.ExitSuccess, run(t, &priceCmd{out: &out}, "-commit", "1000000", "-units", "8000"))
	assert.Equal(t, "125\n", out.String())

	out.Reset()
	assert.Equal(t, subcommands.ExitSuccess, run(t, &priceCmd{out: &out}, "-commit", "50000", "-units", "0"))
	assert.Equal(t, "0\n", out.String())

	assert.Equal(t, subcommands.ExitUsageError, run(t, &priceCmd{out: &out}, "-commit", "abc"))
}

func TestMigrateAndSeed_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admin.db")
	assert.Equal(t, subcommands.ExitSuccess, run(t, &migrateCmd{}, "-sqlite", path))
	assert.Equal(t, subcommands.ExitSuccess, run(t, &seedCmd{}, "-sqlite", path))
	assert.Equal(t, subcommands.ExitSuccess, run(t, &seedCmd{}, "-sqlite", path))

	db, err := (&dbFlags{sqlitePath: path}).open()
	require.NoError(t, err)
	var n int64
	require.NoError(t, db.Model(&domain.FeeType{}).Count(&n).Error)
	assert.EqualValues(t, len(domain.DefaultFeeTypes), n)
}

func TestToken(t *testing.T) {
	t.Setenv("SUPABASE_JWT_SECRET", "cli-secret")
	var out bytes.Buffer
	assert.Equal(t, subcommands.ExitSuccess, run(t, &tokenCmd{out: &out}, "-user", "u-1", "-email", "a@b.co"))
	assert.NotEmpty(t, out.String())
	assert.Equal(t, subcommands.ExitUsageError, run(t, &tokenCmd{out: &out}))
}
