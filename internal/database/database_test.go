package database

import (
	"context"
	"testing"

	"bridgehead/internal/config"
	"bridgehead/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestConfigurePool(t *testing.T) {
	db := openSQLite(t)
	cfg := &config.Config{
		DBDriver:                 DriverPostgres,
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}
	require.NoError(t, configurePool(db, cfg))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 10, sqlDB.Stats().MaxOpenConnections)

	cfg.DBDriver = DriverSQLite
	require.NoError(t, configurePool(db, cfg))
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestDialector(t *testing.T) {
	d, err := Dialector(&config.Config{DBDriver: DriverSQLite, DBSQLitePath: ":memory:"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	d, err = Dialector(&config.Config{DBDriver: DriverPostgres})
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())

	_, err = Dialector(&config.Config{DBDriver: "mysql"})
	assert.Error(t, err)
}

func TestApplySchema_SQLiteUsesAutoMigrate(t *testing.T) {
	db := openSQLite(t)
	cfg := &config.Config{DBDriver: DriverSQLite, Env: "test", DBSchemaMode: SchemaModeSQL}

	require.NoError(t, ApplySchema(context.Background(), db, cfg))

	for _, m := range PersistentModels() {
		assert.True(t, db.Migrator().HasTable(m))
	}
	assert.True(t, db.Migrator().HasIndex(&models.Interaction{}, "idx_interaction_post_user_type"))
}

func TestSchemaPolicy(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Config
		runSQL  bool
		runAuto bool
		wantErr bool
	}{
		{"hybrid development", config.Config{DBDriver: DriverPostgres, Env: "development", DBSchemaMode: SchemaModeHybrid}, true, true, false},
		{"hybrid production", config.Config{DBDriver: DriverPostgres, Env: "production", DBSchemaMode: SchemaModeHybrid}, true, false, false},
		{"empty mode is hybrid", config.Config{DBDriver: DriverPostgres, Env: "test"}, true, true, false},
		{"sql only", config.Config{DBDriver: DriverPostgres, Env: "production", DBSchemaMode: SchemaModeSQL}, true, false, false},
		{"auto in production refused", config.Config{DBDriver: DriverPostgres, Env: "production", DBSchemaMode: SchemaModeAuto}, false, false, true},
		{"unknown mode", config.Config{DBDriver: DriverPostgres, Env: "test", DBSchemaMode: "yolo"}, false, false, true},
		{"sqlite always auto", config.Config{DBDriver: DriverSQLite, Env: "test", DBSchemaMode: SchemaModeSQL}, false, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runSQL, runAuto, err := schemaPolicy(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.runSQL, runSQL)
			assert.Equal(t, tt.runAuto, runAuto)
		})
	}
}

func TestEmbeddedMigrations(t *testing.T) {
	all := GetMigrations()
	require.NotEmpty(t, all)
	assert.Equal(t, 1, all[0].Version)
	assert.Equal(t, "community", all[0].Name)
	assert.Contains(t, all[0].UpScript, "idx_interaction_post_user_type")
	assert.Contains(t, all[0].DownScript, "DROP TABLE IF EXISTS interactions")
	assert.Equal(t, "000001_community", all[0].String())
	assert.Nil(t, GetMigrationByVersion(999))
}

func TestValidateAppliedVersions(t *testing.T) {
	registered := []Migration{{Version: 1}, {Version: 2}}
	assert.NoError(t, validateAppliedVersions(nil, registered))
	assert.NoError(t, validateAppliedVersions([]int{1, 2}, registered))

	err := validateAppliedVersions([]int{1, 7, 3}, registered)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "000003, 000007")
}
