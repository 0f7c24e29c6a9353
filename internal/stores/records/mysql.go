package records

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/vitalmesh/frontdesk/internal/patient"
)

// SnapshotList serializes a record's session snapshots into a single JSON
// column, so the row replace stays atomic.
type SnapshotList []patient.Snapshot

// Value implements the driver.Valuer interface for database storage
func (l SnapshotList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface for database retrieval
func (l *SnapshotList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into SnapshotList", value)
	}

	if err := json.Unmarshal(bytes, l); err != nil {
		return fmt.Errorf("failed to unmarshal SnapshotList: %w", err)
	}
	return nil
}

// recordRow is the GORM model backing one patient record.
type recordRow struct {
	Identifier string    `gorm:"primaryKey;size:255"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`

	Name          *string      `gorm:"size:255"`
	PatientID     *string      `gorm:"column:patient_id;size:255"`
	LastUpdated   time.Time    `gorm:"column:last_updated"`
	TotalSessions int          `gorm:"column:total_sessions"`
	Sessions      SnapshotList `gorm:"column:sessions;type:longtext;not null"`
}

// TableName specifies the database table name for GORM
func (recordRow) TableName() string {
	return "patient_records"
}

// MySqlStore handles patient record persistence using GORM
type MySqlStore struct {
	db    *gorm.DB
	locks keyedMutex
}

// NewMySqlStore creates a new record store with GORM connection
func NewMySqlStore(databaseURL string) (*MySqlStore, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&recordRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return &MySqlStore{db: db}, nil
}

// Checkpoint appends a fresh snapshot of the session to the patient's record
// row. A missing or unreadable row is treated as an empty prior record.
func (s *MySqlStore) Checkpoint(ctx context.Context, sess *patient.Session) error {
	identifier := sess.Identifier()
	unlock := s.locks.Lock(identifier)
	defer unlock()

	record := &PatientRecord{Identifier: identifier}

	var row recordRow
	result := s.db.WithContext(ctx).First(&row, "identifier = ?", identifier)
	switch {
	case result.Error == nil:
		record = rowToRecord(&row)
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		// first checkpoint for this identifier
	default:
		log.Printf("[RECORDS]: Failed to load record for %q, starting fresh: %v", identifier, result.Error)
	}

	record.Append(sess.Snapshot(), time.Now())

	row = recordRow{
		Identifier:    identifier,
		Name:          record.Name,
		PatientID:     record.ID,
		LastUpdated:   record.LastUpdated,
		TotalSessions: record.TotalSessions,
		Sessions:      SnapshotList(record.Sessions),
	}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("failed to save record for %q: %w", identifier, err)
	}
	return nil
}

// Load fetches the record stored under an identifier.
func (s *MySqlStore) Load(ctx context.Context, identifier string) (*PatientRecord, error) {
	var row recordRow
	result := s.db.WithContext(ctx).First(&row, "identifier = ?", identifier)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", result.Error)
	}
	return rowToRecord(&row), nil
}

// List returns all records, most recently updated first.
func (s *MySqlStore) List(ctx context.Context) ([]*PatientRecord, error) {
	var rows []recordRow
	result := s.db.WithContext(ctx).Order("last_updated DESC").Find(&rows)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list records: %w", result.Error)
	}

	records := make([]*PatientRecord, 0, len(rows))
	for i := range rows {
		records = append(records, rowToRecord(&rows[i]))
	}
	return records, nil
}

// Latest returns the most recently updated record.
func (s *MySqlStore) Latest(ctx context.Context) (*PatientRecord, error) {
	var row recordRow
	result := s.db.WithContext(ctx).Order("last_updated DESC").First(&row)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get latest record: %w", result.Error)
	}
	return rowToRecord(&row), nil
}

// Prune removes records not updated within the retention window.
func (s *MySqlStore) Prune(ctx context.Context, olderThan time.Duration) (int, error) {
	cutoff := time.Now().Add(-olderThan)
	result := s.db.WithContext(ctx).Where("last_updated < ?", cutoff).Delete(&recordRow{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to prune records: %w", result.Error)
	}
	return int(result.RowsAffected), nil
}

// Close closes the database connection
func (s *MySqlStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}

func rowToRecord(row *recordRow) *PatientRecord {
	return &PatientRecord{
		Name:          row.Name,
		ID:            row.PatientID,
		LastUpdated:   row.LastUpdated,
		TotalSessions: row.TotalSessions,
		Sessions:      []patient.Snapshot(row.Sessions),
		Identifier:    row.Identifier,
	}
}
