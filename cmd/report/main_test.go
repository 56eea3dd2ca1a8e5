package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartboard/internal/dataset"
)

const moviesCSV = `year,ActorId,Name,MovieId,Title,genre,Country,gross
2001,101,Harrison Ford,5001,Sample Quest,Adventure,USA,150
2005,104,Kate Winslet,5005,Harbor Lights,Drama,UK,61
`

const speciesCSV = `species,protection,defense,attack,feeding,satisfaction,sexual_reproduction
Lion,7.5,8.0,9.0,1,2,6.0
Tortoise,9.5,9.0,2.0,2,4,3.0
Falcon,5.0,4.5,8.5,3,6,5.5
`

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Drama", "Comedy"}, splitList("Drama, Comedy"))
	assert.Nil(t, splitList(""))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	moviesPath := filepath.Join(dir, "movies.csv")
	speciesPath := filepath.Join(dir, "species.csv")
	require.NoError(t, os.WriteFile(moviesPath, []byte(moviesCSV), 0o644))
	require.NoError(t, os.WriteFile(speciesPath, []byte(speciesCSV), 0o644))

	outDir := filepath.Join(dir, "report")
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	err := run(logger, moviesPath, speciesPath, outDir,
		dataset.DefaultGenres, 1986, 2016,
		dataset.DefaultMetrics, "feeding", "satisfaction")
	require.NoError(t, err)

	for _, name := range []string{"movies.xlsx", "gross.png", "metrics.png", "regression.png"} {
		info, err := os.Stat(filepath.Join(outDir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

func TestRun_MissingDataset(t *testing.T) {
	dir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	err := run(logger, filepath.Join(dir, "missing.csv"), filepath.Join(dir, "missing2.csv"),
		filepath.Join(dir, "out"), dataset.DefaultGenres, 2000, 2016,
		dataset.DefaultMetrics, "feeding", "satisfaction")
	assert.Error(t, err)
}
