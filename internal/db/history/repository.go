package history

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	SaveSnapshot(snapshot *Snapshot) error
	GetRange(locationID string, from, to time.Time) ([]Snapshot, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type SQLRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) SaveSnapshot(snapshot *Snapshot) error {
	if snapshot.CapturedAt.IsZero() {
		snapshot.CapturedAt = time.Now().UTC()
	}

	return r.db.Create(snapshot).Error
}

func (r *SQLRepository) GetRange(locationID string, from, to time.Time) ([]Snapshot, error) {
	var snapshots []Snapshot
	err := r.db.
		Where("location_id = ? AND captured_at BETWEEN ? AND ?", locationID, from, to).
		Order("captured_at ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

func (r *SQLRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("captured_at < ?", cutoff).Delete(&Snapshot{})
	return result.RowsAffected, result.Error
}
