package services

import (
	"errors"
	"time"

	"github.com/durveshgosavi-netizen/cblens/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MenuService owns the catalog of dishes and their per-100g reference
// nutrition. Everything the scaler computes starts from a row here.
type MenuService struct {
	db *gorm.DB
}

func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{db: db}
}

// UpsertMenu bulk-loads a day's menu, replacing rows that already exist.
// Items without an ID or name are rejected wholesale so a bad upload doesn't
// half-apply.
func (s *MenuService) UpsertMenu(items []models.MenuItem) error {
	if len(items) == 0 {
		return errors.New("empty menu upload")
	}
	for _, it := range items {
		if it.ID == "" || it.Name == "" {
			return errors.New("menu item missing id or name")
		}
	}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&items).Error
}

func (s *MenuService) ListMenu(location string, day time.Time) ([]models.MenuItem, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var items []models.MenuItem
	q := s.db.Where("menu_date >= ? AND menu_date < ?", start, end).Order("name ASC")
	if location != "" {
		q = q.Where("canteen_location = ?", location)
	}
	err := q.Find(&items).Error
	return items, err
}

func (s *MenuService) GetMenuItem(id string) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := s.db.First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
