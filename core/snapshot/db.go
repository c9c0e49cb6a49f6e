package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"card-manager/core/card"
	"card-manager/core/reconcile"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Row is one stored snapshot.
type Row struct {
	Workspace string `gorm:"column:workspace;primaryKey;size:64"`
	Body      []byte `gorm:"column:body"`
	Cards     int    `gorm:"column:cards"`
	UpdatedAt time.Time
}

// DBStore keeps one row per workspace.
type DBStore struct {
	db    *gorm.DB
	table string
}

// NewDBStore creates a DBStore over table.
func NewDBStore(db *gorm.DB, table string) *DBStore {
	if table == "" {
		table = "card_snapshots"
	}
	return &DBStore{db: db, table: table}
}

// Migrate creates or updates the snapshot table.
func (s *DBStore) Migrate() error {
	if s.db == nil {
		return fmt.Errorf("database store not connected")
	}
	return s.db.Table(s.table).AutoMigrate(&Row{})
}

// Load implements Store.
func (s *DBStore) Load(ctx context.Context, workspace string) ([]reconcile.Record, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database store not connected")
	}
	var row Row
	err := s.db.WithContext(ctx).Table(s.table).Where("workspace = ?", workspace).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", workspace, err)
	}
	return Decode(bytes.NewReader(row.Body))
}

// Save implements Store.
func (s *DBStore) Save(ctx context.Context, workspace string, cards []card.Card) error {
	if s.db == nil {
		return fmt.Errorf("database store not connected")
	}
	doc, err := Encode(cards)
	if err != nil {
		return err
	}
	row := Row{Workspace: workspace, Body: doc, Cards: len(cards), UpdatedAt: time.Now()}
	err = s.db.WithContext(ctx).Table(s.table).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "workspace"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "cards", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", workspace, err)
	}
	return nil
}

// Remove implements Store.
func (s *DBStore) Remove(ctx context.Context, workspace string) error {
	if s.db == nil {
		return fmt.Errorf("database store not connected")
	}
	err := s.db.WithContext(ctx).Table(s.table).Where("workspace = ?", workspace).Delete(&Row{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove snapshot %s: %w", workspace, err)
	}
	return nil
}

// Workspaces implements Store.
func (s *DBStore) Workspaces(ctx context.Context) ([]string, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database store not connected")
	}
	out := []string{}
	err := s.db.WithContext(ctx).Table(s.table).Order("workspace").Pluck("workspace", &out).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return out, nil
}
