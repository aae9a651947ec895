// cmd/emre/migrate.go
package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/emresys/emre/internal/config"
	"github.com/emresys/emre/internal/model"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create database extensions, enum types and tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrations()
		},
	}
}

// enumTypes maps postgres enum type names to their values. Created with
// DO-block guards so migrate is safe to run repeatedly.
var enumTypes = map[string][]string{
	"organization_type":  {"emergency_response", "resource_distribution", "volunteer_coordination", "disaster_relief"},
	"visibility_type":    {"public", "private"},
	"org_role":           {"admin", "member"},
	"membership_status":  {"pending", "active", "denied"},
	"team_type":          {"response", "medical", "rescue", "logistics", "support"},
	"team_status":        {"active", "inactive", "standby"},
	"team_role":          {"leader", "member", "dispatcher"},
	"incident_type":      {"emergency", "resource_request", "status_update"},
	"incident_priority":  {"critical", "high", "medium", "low"},
	"incident_status":    {"open", "in_progress", "resolved", "closed"},
	"update_type":        {"status_change", "resource_update", "general_update"},
	"resource_type":      {"vehicle", "equipment", "medical", "supply", "personnel", "other"},
	"resource_status":    {"available", "in_use", "out_of_service", "reserved"},
	"resource_condition": {"excellent", "good", "fair", "poor"},
}

func runMigrations() error {
	cfg := config.Load()

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	// Enum types and extensions go through database/sql: gorm's AutoMigrate
	// cannot create postgres enum types.
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	if _, err := sqlDB.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`); err != nil {
		return fmt.Errorf("creating extension pgcrypto: %w", err)
	}

	for name, values := range enumTypes {
		stmt := fmt.Sprintf(`DO $$ BEGIN
			CREATE TYPE %s AS ENUM (%s);
		EXCEPTION WHEN duplicate_object THEN NULL;
		END $$;`, name, quoteEnumValues(values))
		if _, err := sqlDB.Exec(stmt); err != nil {
			return fmt.Errorf("creating enum type %s: %w", name, err)
		}
		slog.Info("enum type ready", "type", name)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Info),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return fmt.Errorf("connecting with gorm: %w", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Organization{},
		&model.OrganizationMembership{},
		&model.Team{},
		&model.TeamMembership{},
		&model.Incident{},
		&model.IncidentUpdate{},
		&model.Resource{},
		&model.ResourceAssignment{},
	); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}

	slog.Info("migrations complete")
	return nil
}

func quoteEnumValues(values []string) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ", "
		}
		out += "'" + v + "'"
	}
	return out
}
