package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"secure-calculator/internal/models"
)

// History persists calculations in the same database as the users table.
type History struct {
	db *gorm.DB
}

// NewHistory wraps an already opened store handle with gorm and migrates the
// calculations table.
func NewHistory(conn *sql.DB) (*History, error) {
	db, err := gorm.Open(sqlite.New(sqlite.Config{Conn: conn}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect history: %w", err)
	}
	if err := db.AutoMigrate(&models.Calculation{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history: %w", err)
	}
	return &History{db: db}, nil
}

// Record stores c and fills in its ID and CreatedAt.
func (h *History) Record(ctx context.Context, c *models.Calculation) error {
	if err := h.db.WithContext(ctx).Create(c).Error; err != nil {
		log.Error("failed to record calculation", "user_id", c.UserID, "error", err)
		return fmt.Errorf("failed to record calculation: %w", err)
	}
	return nil
}

// ListByUser returns the newest calculations of a user first. A limit of
// zero or less returns all of them.
func (h *History) ListByUser(ctx context.Context, userID int64, limit int) ([]models.Calculation, error) {
	var calcs []models.Calculation
	q := h.db.WithContext(ctx).Where("user_id = ?", userID).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&calcs).Error; err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	return calcs, nil
}
