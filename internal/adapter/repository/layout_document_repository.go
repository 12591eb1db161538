package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/eventscript-team/eventscript/internal/domain/entities"
	"github.com/eventscript-team/eventscript/internal/domain/repositories"
)

// layoutDocumentRepository implements the embedded-document representation:
// the whole layout lives in one JSON column, read and written as a unit.
type layoutDocumentRepository struct {
	db *gorm.DB
}

// NewLayoutDocumentRepository creates a new embedded-document repository
func NewLayoutDocumentRepository(db *gorm.DB) repositories.LayoutDocumentRepository {
	return &layoutDocumentRepository{db: db}
}

// Get retrieves the document row for an event
func (r *layoutDocumentRepository) Get(ctx context.Context, eventID uuid.UUID) (*entities.LayoutDocument, error) {
	var doc entities.LayoutDocument
	err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		First(&doc).Error

	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Decode retrieves and decodes the document payload for an event
func (r *layoutDocumentRepository) Decode(ctx context.Context, eventID uuid.UUID) (*entities.DocumentPayload, error) {
	doc, err := r.Get(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrDocumentNotFound
		}
		return nil, err
	}

	var payload entities.DocumentPayload
	if err := json.Unmarshal(doc.Document, &payload); err != nil {
		return nil, fmt.Errorf("corrupt layout document for event %s: %w", eventID, err)
	}
	return &payload, nil
}

// Save persists the whole payload back, overwriting any previous document
func (r *layoutDocumentRepository) Save(ctx context.Context, eventID uuid.UUID, payload entities.DocumentPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode layout document: %w", err)
	}

	doc := entities.LayoutDocument{
		EventID:   eventID,
		Document:  datatypes.JSON(raw),
		UpdatedAt: time.Now().UTC(),
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"document", "updated_at"}),
		}).
		Create(&doc).Error
}
