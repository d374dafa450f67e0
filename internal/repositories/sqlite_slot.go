package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SlotRecord is the gorm model behind SQLiteSlot.
type SlotRecord struct {
	Name      string    `gorm:"primarykey;size:100"`
	Payload   string    `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for SlotRecord.
func (SlotRecord) TableName() string {
	return "storage_slots"
}

// SQLiteSlot stores the payload in a SQLite database through gorm.
type SQLiteSlot struct {
	db   *gorm.DB
	name string
}

// NewSQLiteSlot migrates the storage_slots table and returns the slot.
func NewSQLiteSlot(db *gorm.DB, name string) (*SQLiteSlot, error) {
	if name == "" {
		name = DefaultSlotName
	}
	if err := db.AutoMigrate(&SlotRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate storage_slots: %w", err)
	}
	return &SQLiteSlot{db: db, name: name}, nil
}

func (s *SQLiteSlot) Name() string { return s.name }

func (s *SQLiteSlot) Read(ctx context.Context) ([]byte, error) {
	var rec SlotRecord
	if err := s.db.WithContext(ctx).First(&rec, "name = ?", s.name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotEmpty
		}
		return nil, fmt.Errorf("failed to read slot %s: %w", s.name, err)
	}
	return []byte(rec.Payload), nil
}

// Write upserts the row keyed by slot name.
func (s *SQLiteSlot) Write(ctx context.Context, data []byte) error {
	rec := SlotRecord{Name: s.name, Payload: string(data)}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to write slot %s: %w", s.name, err)
	}
	return nil
}
