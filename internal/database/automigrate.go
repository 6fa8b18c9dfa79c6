package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
)

// models lists every persisted entity in dependency order
func models() []interface{} {
	return []interface{}{
		&domain.User{},
		&domain.Board{},
		&domain.Column{},
		&domain.Card{},
		&domain.Share{},
	}
}

// AutoMigrate creates or updates the tables, indexes, and foreign keys of all domain models
func AutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	migrator := db.Migrator()

	for _, m := range models() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(m); err != nil {
			return fmt.Errorf("failed to parse model: %w", err)
		}
		table := stmt.Schema.Table
		existed := migrator.HasTable(m)

		if err := db.AutoMigrate(m); err != nil {
			logger.Error("Failed to migrate table",
				zap.String("table", table),
				zap.Bool("table_existed", existed),
				zap.Error(err),
			)
			return fmt.Errorf("failed to migrate table %s: %w", table, err)
		}

		logger.Debug("Migrated table",
			zap.String("table", table),
			zap.Bool("was_existing", existed),
		)
	}

	logger.Info("Auto-migration completed", zap.Int("tables", len(models())))
	return nil
}
