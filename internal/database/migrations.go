package database

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"github.com/rs/zerolog/log"
	"github.com/yukikurage/apqp-tracker/internal/models"
	"gorm.io/gorm"
)

// Models lists every persisted entity, parents before children.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.Client{},
		&models.Project{},
		&models.ProjectClient{},
		&models.ProjectPermission{},
		&models.PhaseTemplate{},
		&models.Phase{},
		&models.Task{},
		&models.HistoryLog{},
		&models.Document{},
	}
}

// lookupIndexes back the default orderings and the foreign-key filters
// that the tag-declared indexes do not cover.
var lookupIndexes = []struct {
	table   string
	name    string
	columns string
}{
	{"tasks", "idx_tasks_phase_created", "phase_id, created_at"},
	{"history_logs", "idx_history_logs_project_timestamp", "project_id, timestamp"},
	{"documents", "idx_documents_phase_uploaded", "phase_id, uploaded_at"},
	{"project_permissions", "idx_project_permissions_granted", "project_id, granted_at"},
}

// AddIndexes creates the lookup indexes that do not exist yet.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range lookupIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			log.Debug().Str("index", idx.name).Msg("Index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		log.Info().Str("index", idx.name).Str("table", idx.table).Msg("Created index")
	}

	return nil
}

func migrations() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202610010001_lookup_indexes",
			Migrate: func(tx *gorm.DB) error {
				return AddIndexes(tx)
			},
			Rollback: func(tx *gorm.DB) error {
				for _, idx := range lookupIndexes {
					if err := tx.Migrator().DropIndex(idx.table, idx.name); err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}

// Migrate brings the schema up to date. A fresh database gets the full
// schema in one step; an existing one runs the pending migrations.
func Migrate(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")

	m := gormigrate.New(db, gormigrate.DefaultOptions, migrations())
	m.InitSchema(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(Models()...); err != nil {
			return err
		}
		return AddIndexes(tx)
	})

	if err := m.Migrate(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info().Msg("Database migrations completed")
	return nil
}
