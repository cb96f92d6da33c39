package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/model"
)

func TestDialectorFor(t *testing.T) {
	tests := []struct {
		name    string
		uri     string
		dialect string
		wantErr bool
	}{
		{name: "empty uses sqlite", uri: "", dialect: "sqlite"},
		{name: "sqlite relative", uri: "sqlite:///project.db", dialect: "sqlite"},
		{name: "sqlite memory", uri: "sqlite://:memory:", dialect: "sqlite"},
		{name: "mysql", uri: "mysql://u:p@tcp(localhost:3306)/site?parseTime=true", dialect: "mysql"},
		{name: "postgres", uri: "postgres://u:p@localhost:5432/site", dialect: "postgres"},
		{name: "postgresql scheme", uri: "postgresql://u:p@localhost:5432/site", dialect: "postgres"},
		{name: "sqlite without path", uri: "sqlite:///", wantErr: true},
		{name: "unknown scheme", uri: "mongodb://localhost", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := dialectorFor(tt.uri)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.dialect, d.Name())
		})
	}
}

func TestOpenMigrateReset(t *testing.T) {
	gormDB, err := Open("sqlite://:memory:")
	require.NoError(t, err)

	require.NoError(t, Migrate(gormDB))
	for _, table := range model.AllModels() {
		assert.True(t, gormDB.Migrator().HasTable(table))
	}

	require.NoError(t, Reset(gormDB))
	for _, table := range model.AllModels() {
		assert.False(t, gormDB.Migrator().HasTable(table))
	}
}
