package gormcache

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"lendingbook/internal/domain/ledger"
)

// The cache is a single slot: one row, overwritten wholesale on every save.
const slotKey = "lendingData"

type snapshotRow struct {
	SlotKey  string `gorm:"column:slot_key;primaryKey;size:64"`
	Document []byte `gorm:"column:document;type:blob"`
}

func (snapshotRow) TableName() string { return "snapshots" }

type Store struct{ db *gorm.DB }

func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&snapshotRow{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Load returns the last snapshot written, or absent on first run.
// Absence is not an error.
func (s *Store) Load(ctx context.Context) (*ledger.Ledger, bool, error) {
	var row snapshotRow
	res := s.db.WithContext(ctx).Where("slot_key = ?", slotKey).First(&row)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if res.Error != nil {
		return nil, false, res.Error
	}
	var l ledger.Ledger
	if err := json.Unmarshal(row.Document, &l); err != nil {
		return nil, false, err
	}
	return &l, true, nil
}

func (s *Store) Save(ctx context.Context, l *ledger.Ledger) error {
	doc, err := json.Marshal(l)
	if err != nil {
		return err
	}
	row := snapshotRow{SlotKey: slotKey, Document: doc}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"document"}),
		}).
		Create(&row).Error
}
