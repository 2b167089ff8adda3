package migrations

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

type Migration struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"unique;not null"`
	Batch     int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

type MigrationFunc func(*gorm.DB) error

type MigrationDefinition struct {
	Name string
	Up   MigrationFunc
	Down MigrationFunc
}

type Migrator struct {
	db         *gorm.DB
	migrations []MigrationDefinition
}

func NewMigrator(db *gorm.DB) *Migrator {
	db.AutoMigrate(&Migration{})
	return &Migrator{db: db}
}

func (m *Migrator) AddMigration(migration MigrationDefinition) {
	m.migrations = append(m.migrations, migration)
}

// Migrate runs every pending migration in order, each in its own
// transaction, recording the batch it ran in.
func (m *Migrator) Migrate() error {
	log.Println("Running database migrations...")

	batch := m.latestBatch() + 1

	for _, migration := range m.migrations {
		if m.hasRun(migration.Name) {
			continue
		}

		log.Printf("Migrating: %s", migration.Name)

		err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return err
			}
			return tx.Create(&Migration{Name: migration.Name, Batch: batch}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.Name, err)
		}

		log.Printf("Migrated: %s", migration.Name)
	}

	log.Println("Migration completed successfully")
	return nil
}

// Rollback undoes the given number of batches, newest first.
func (m *Migrator) Rollback(steps int) error {
	if steps <= 0 {
		steps = 1
	}

	log.Printf("Rolling back %d batch(es)...", steps)

	batch := m.latestBatch()

	for i := 0; i < steps && batch > 0; i++ {
		var records []Migration
		m.db.Where("batch = ?", batch).Order("id DESC").Find(&records)

		for _, record := range records {
			migration := m.find(record.Name)
			if migration == nil {
				return fmt.Errorf("migration definition not found: %s", record.Name)
			}
			if migration.Down == nil {
				return fmt.Errorf("rollback not defined for migration: %s", record.Name)
			}

			log.Printf("Rolling back: %s", record.Name)

			err := m.db.Transaction(func(tx *gorm.DB) error {
				if err := migration.Down(tx); err != nil {
					return err
				}
				return tx.Delete(&record).Error
			})
			if err != nil {
				return fmt.Errorf("rollback failed for %s: %w", record.Name, err)
			}
		}

		batch--
	}

	log.Println("Rollback completed successfully")
	return nil
}

func (m *Migrator) hasRun(name string) bool {
	var count int64
	m.db.Model(&Migration{}).Where("name = ?", name).Count(&count)
	return count > 0
}

func (m *Migrator) latestBatch() int {
	var migration Migration
	m.db.Order("batch DESC").First(&migration)
	return migration.Batch
}

func (m *Migrator) find(name string) *MigrationDefinition {
	for i := range m.migrations {
		if m.migrations[i].Name == name {
			return &m.migrations[i]
		}
	}
	return nil
}
