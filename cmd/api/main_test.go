package main

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"corpusapi/internal/config"
	"corpusapi/internal/repository/postgres"
	"corpusapi/internal/repository/sqlite"
)

func TestNewDocumentRepository(t *testing.T) {
	db := &sql.DB{}

	repo, err := newDocumentRepository(config.DatabaseConfig{Driver: "postgres", QueryTimeoutSec: 5}, db)
	require.NoError(t, err)
	assert.IsType(t, &postgres.DocumentPostgres{}, repo)

	repo, err = newDocumentRepository(config.DatabaseConfig{Driver: "sqlite", QueryTimeoutSec: 5}, db)
	require.NoError(t, err)
	assert.IsType(t, &sqlite.DocumentSQLite{}, repo)

	_, err = newDocumentRepository(config.DatabaseConfig{Driver: "oracle"}, db)
	assert.ErrorContains(t, err, "oracle")
}

func TestDBLocation(t *testing.T) {
	assert.Equal(t, "db.internal", dbLocation(config.DatabaseConfig{Driver: "postgres", Host: "db.internal", Password: "secret"}))
	assert.Equal(t, "/data/Doc.db", dbLocation(config.DatabaseConfig{Driver: "sqlite", SQLitePath: "/data/Doc.db"}))
}
