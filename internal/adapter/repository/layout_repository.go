package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eventscript-team/eventscript/internal/domain/entities"
	"github.com/eventscript-team/eventscript/internal/domain/repositories"
)

// layoutRepository implements the normalized LayoutRepository interface
type layoutRepository struct {
	db *gorm.DB
}

// NewLayoutRepository creates a new normalized layout repository
func NewLayoutRepository(db *gorm.DB) repositories.LayoutRepository {
	return &layoutRepository{db: db}
}

// FindByEventID retrieves a layout with its segments ordered by position
func (r *layoutRepository) FindByEventID(ctx context.Context, eventID uuid.UUID) (*entities.EventLayout, error) {
	var layout entities.EventLayout
	err := r.db.WithContext(ctx).
		Preload("Segments", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("event_id = ?", eventID).
		First(&layout).Error

	if err != nil {
		return nil, err
	}
	return &layout, nil
}

// ReplaceSegments replaces the whole segment set for an event in one
// transaction, guarded by a per-event advisory lock so two concurrent
// regenerations cannot interleave their delete and insert phases.
func (r *layoutRepository) ReplaceSegments(ctx context.Context, eventID uuid.UUID, segments []entities.LayoutSegment) (*entities.EventLayout, error) {
	var layout entities.EventLayout

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.lockEvent(tx, eventID); err != nil {
			return err
		}

		err := tx.Where("event_id = ?", eventID).First(&layout).Error
		switch {
		case err == gorm.ErrRecordNotFound:
			layout = entities.EventLayout{
				ID:            uuid.New(),
				EventID:       eventID,
				LayoutVersion: 0,
			}
			if err := tx.Create(&layout).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		}

		if err := tx.Where("layout_id = ?", layout.ID).Delete(&entities.LayoutSegment{}).Error; err != nil {
			return err
		}

		total := 0
		for i := range segments {
			segments[i].LayoutID = layout.ID
			total += segments[i].Duration
		}
		if len(segments) > 0 {
			if err := tx.Create(&segments).Error; err != nil {
				return err
			}
		}

		layout.Segments = segments
		layout.TotalDuration = total
		layout.LayoutVersion++
		layout.UpdatedAt = time.Now().UTC()

		return tx.Model(&entities.EventLayout{}).
			Where("id = ?", layout.ID).
			Updates(map[string]interface{}{
				"total_duration": layout.TotalDuration,
				"layout_version": layout.LayoutVersion,
				"updated_at":     layout.UpdatedAt,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return &layout, nil
}

// AddSegment appends one segment, assigning the next contiguous order
func (r *layoutRepository) AddSegment(ctx context.Context, eventID uuid.UUID, segment *entities.LayoutSegment) (*entities.EventLayout, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var layout entities.EventLayout
		if err := tx.Where("event_id = ?", eventID).First(&layout).Error; err != nil {
			return err
		}

		var maxOrder int64
		if err := tx.Model(&entities.LayoutSegment{}).
			Where("layout_id = ?", layout.ID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxOrder).Error; err != nil {
			return err
		}

		segment.LayoutID = layout.ID
		segment.Order = int(maxOrder) + 1
		if segment.ID == uuid.Nil {
			segment.ID = uuid.New()
		}
		if err := tx.Create(segment).Error; err != nil {
			return err
		}

		return r.bumpLayout(tx, layout.ID, segment.Duration)
	})
	if err != nil {
		return nil, err
	}

	return r.FindByEventID(ctx, eventID)
}

// UpdateSegment updates one segment in place, adjusting total_duration by
// the duration delta
func (r *layoutRepository) UpdateSegment(ctx context.Context, eventID uuid.UUID, segment *entities.LayoutSegment) (*entities.EventLayout, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var layout entities.EventLayout
		if err := tx.Where("event_id = ?", eventID).First(&layout).Error; err != nil {
			return err
		}

		var existing entities.LayoutSegment
		if err := tx.Where("id = ? AND layout_id = ?", segment.ID, layout.ID).First(&existing).Error; err != nil {
			return err
		}

		delta := segment.Duration - existing.Duration

		updates := map[string]interface{}{
			"name":        segment.Name,
			"type":        segment.Type,
			"description": segment.Description,
			"duration":    segment.Duration,
		}
		if segment.CustomProperties != nil {
			updates["custom_properties"] = segment.CustomProperties
		}
		if err := tx.Model(&entities.LayoutSegment{}).
			Where("id = ?", existing.ID).
			Updates(updates).Error; err != nil {
			return err
		}

		return r.bumpLayout(tx, layout.ID, delta)
	})
	if err != nil {
		return nil, err
	}

	return r.FindByEventID(ctx, eventID)
}

// DeleteSegment removes one segment and reindexes the remaining orders to
// stay contiguous
func (r *layoutRepository) DeleteSegment(ctx context.Context, eventID uuid.UUID, segmentID uuid.UUID) (*entities.EventLayout, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var layout entities.EventLayout
		if err := tx.Where("event_id = ?", eventID).First(&layout).Error; err != nil {
			return err
		}

		var existing entities.LayoutSegment
		if err := tx.Where("id = ? AND layout_id = ?", segmentID, layout.ID).First(&existing).Error; err != nil {
			return err
		}

		if err := tx.Delete(&entities.LayoutSegment{}, existing.ID).Error; err != nil {
			return err
		}

		var remaining []entities.LayoutSegment
		if err := tx.Where("layout_id = ?", layout.ID).
			Order("position ASC").
			Find(&remaining).Error; err != nil {
			return err
		}
		for i := range remaining {
			if remaining[i].Order != i+1 {
				if err := tx.Model(&entities.LayoutSegment{}).
					Where("id = ?", remaining[i].ID).
					Update("position", i+1).Error; err != nil {
					return err
				}
			}
		}

		return r.bumpLayout(tx, layout.ID, -existing.Duration)
	})
	if err != nil {
		return nil, err
	}

	return r.FindByEventID(ctx, eventID)
}

// bumpLayout increments the version and applies a duration delta to the
// total_duration aggregate
func (r *layoutRepository) bumpLayout(tx *gorm.DB, layoutID uuid.UUID, durationDelta int) error {
	return tx.Model(&entities.EventLayout{}).
		Where("id = ?", layoutID).
		Updates(map[string]interface{}{
			"total_duration": gorm.Expr("total_duration + ?", durationDelta),
			"layout_version": gorm.Expr("layout_version + 1"),
			"updated_at":     time.Now().UTC(),
		}).Error
}

// lockEvent takes a transaction-scoped advisory lock keyed by the event id.
// Only Postgres supports advisory locks; on other dialects (sqlite in tests)
// the transaction itself is the only guard.
func (r *layoutRepository) lockEvent(tx *gorm.DB, eventID uuid.UUID) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", eventID.String()).Error
}
