// Package journal keeps a write-only diagnostic record of mode transitions
// and sampler failures. The engine never reads it back; it exists so a user
// can reconstruct why the screen did or did not stay awake.
package journal

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Transition records one presentation-mode state change.
type Transition struct {
	ID        uint      `gorm:"primaryKey"`
	Timestamp time.Time `gorm:"not null;index"`
	From      string    `gorm:"not null"`
	To        string    `gorm:"not null"`
	Source    string    `gorm:"not null"` // "auto" or "manual"
	Reason    string
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// ProbeError records a failed sample tick.
type ProbeError struct {
	ID        uint      `gorm:"primaryKey"`
	Timestamp time.Time `gorm:"not null;index"`
	Message   string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// Journal wraps the sqlite database holding the diagnostic records.
type Journal struct {
	db *gorm.DB
}

// Open creates or opens the journal database at path and migrates the
// schema.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create journal directory")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open journal database")
	}

	if err := db.AutoMigrate(&Transition{}, &ProbeError{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate journal schema")
	}

	return &Journal{db: db}, nil
}

// RecordTransition stores one state change.
func (j *Journal) RecordTransition(from, to, source, reason string) error {
	t := &Transition{
		Timestamp: time.Now(),
		From:      from,
		To:        to,
		Source:    source,
		Reason:    reason,
	}
	if result := j.db.Create(t); result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert transition")
	}
	return nil
}

// RecordProbeError stores one failed sample.
func (j *Journal) RecordProbeError(message string) error {
	e := &ProbeError{
		Timestamp: time.Now(),
		Message:   message,
	}
	if result := j.db.Create(e); result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert probe error")
	}
	return nil
}

// RecentTransitions returns the latest transitions, newest first, for the
// status command.
func (j *Journal) RecentTransitions(limit int) ([]Transition, error) {
	var transitions []Transition
	result := j.db.Order("timestamp DESC").Limit(limit).Find(&transitions)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query transitions")
	}
	return transitions, nil
}

// Close releases the underlying database handle.
func (j *Journal) Close() error {
	sqlDB, err := j.db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get underlying sql.DB")
	}
	return sqlDB.Close()
}
