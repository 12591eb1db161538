package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventscript-team/eventscript/internal/domain/entities"
	"github.com/eventscript-team/eventscript/internal/domain/repositories"
)

// scriptRepository implements the ScriptRepository interface
type scriptRepository struct {
	db *gorm.DB
}

// NewScriptRepository creates a new script segment repository
func NewScriptRepository(db *gorm.DB) repositories.ScriptRepository {
	return &scriptRepository{db: db}
}

// FindByEventID retrieves all script segments for an event ordered by position
func (r *scriptRepository) FindByEventID(ctx context.Context, eventID uuid.UUID) ([]*entities.ScriptSegment, error) {
	var segments []*entities.ScriptSegment
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("position ASC").
		Find(&segments).Error
	return segments, err
}

// FindByID retrieves one script segment
func (r *scriptRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ScriptSegment, error) {
	var segment entities.ScriptSegment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&segment).Error

	if err != nil {
		return nil, err
	}
	return &segment, nil
}

// ReplaceForEvent deletes every script segment for the event and inserts the
// new batch in one transaction
func (r *scriptRepository) ReplaceForEvent(ctx context.Context, eventID uuid.UUID, segments []*entities.ScriptSegment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", eventID).Delete(&entities.ScriptSegment{}).Error; err != nil {
			return err
		}
		if len(segments) == 0 {
			return nil
		}
		return tx.Create(&segments).Error
	})
}

// SplitSegment deletes the original segment and inserts its chunks in one
// transaction
func (r *scriptRepository) SplitSegment(ctx context.Context, originalID uuid.UUID, chunks []*entities.ScriptSegment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&entities.ScriptSegment{}, originalID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(&chunks).Error
	})
}

// CountByEventID returns the number of script segments stored for an event
func (r *scriptRepository) CountByEventID(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.ScriptSegment{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}
