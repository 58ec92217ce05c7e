package storage

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is a single named blob: the ledger serializes its full record
// array into it on every mutation.
type Store interface {
	// Load returns the blob contents, or (nil, nil) when no blob exists.
	Load() ([]byte, error)
	Save(data []byte) error
	Delete() error
}

type Blob struct {
	Key   string `gorm:"primaryKey;size:255"`
	Value string `gorm:"type:text"`
}

// TableName overrides the table name
func (Blob) TableName() string {
	return "blobs"
}

type GormStore struct {
	db  *gorm.DB
	key string
}

func NewGormStore(db *gorm.DB, key string) *GormStore {
	return &GormStore{db: db, key: key}
}

func (s *GormStore) Load() ([]byte, error) {
	var blob Blob
	err := s.db.First(&blob, "key = ?", s.key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load blob %q: %w", s.key, err)
	}
	return []byte(blob.Value), nil
}

func (s *GormStore) Save(data []byte) error {
	blob := Blob{Key: s.key, Value: string(data)}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&blob).Error
	if err != nil {
		return fmt.Errorf("failed to save blob %q: %w", s.key, err)
	}
	return nil
}

func (s *GormStore) Delete() error {
	if err := s.db.Delete(&Blob{}, "key = ?", s.key).Error; err != nil {
		return fmt.Errorf("failed to delete blob %q: %w", s.key, err)
	}
	return nil
}
