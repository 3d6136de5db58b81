package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/backend/internal/domain/commerce"
	"github.com/orderdesk/backend/internal/domain/shared"
	"github.com/orderdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCommentRepository implements commerce.CommentRepository using GORM
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// GetByID finds a comment by its internal id.
func (r *GormCommentRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*commerce.OrderComment, error) {
	var model models.OrderCommentModel
	if err := r.conn(ctx, tx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateReadError(err)
	}
	return model.ToDomain(), nil
}

// ListByOrder returns an order's comments oldest first.
func (r *GormCommentRepository) ListByOrder(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) ([]commerce.OrderComment, error) {
	var commentModels []models.OrderCommentModel
	if err := r.conn(ctx, tx).
		Where("order_id = ?", orderID).
		Order("created_at").
		Find(&commentModels).Error; err != nil {
		return nil, err
	}
	comments := make([]commerce.OrderComment, len(commentModels))
	for i, m := range commentModels {
		comments[i] = *m.ToDomain()
	}
	return comments, nil
}

// Create persists a new comment.
func (r *GormCommentRepository) Create(ctx context.Context, tx *gorm.DB, comment *commerce.OrderComment) error {
	if err := comment.Validate(); err != nil {
		return err
	}
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	if err := scope.Create(models.OrderCommentModelFromDomain(comment)).Error; err != nil {
		_ = rollback()
		return translateWriteError(err, "channelCommentId")
	}
	return commit()
}

// Update persists changes to an existing comment.
func (r *GormCommentRepository) Update(ctx context.Context, tx *gorm.DB, comment *commerce.OrderComment) error {
	if err := comment.Validate(); err != nil {
		return err
	}
	comment.UpdatedAt = time.Now()
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	if err := scope.Save(models.OrderCommentModelFromDomain(comment)).Error; err != nil {
		_ = rollback()
		return translateWriteError(err, "channelCommentId")
	}
	return commit()
}

// Delete removes a comment.
func (r *GormCommentRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	scope, commit, rollback := Acquire(ctx, r.db, tx)
	result := scope.Delete(&models.OrderCommentModel{}, "id = ?", id)
	if result.Error != nil {
		_ = rollback()
		return translateWriteError(result.Error, "id")
	}
	if result.RowsAffected == 0 {
		_ = rollback()
		return shared.ErrNotFound
	}
	return commit()
}

// UpsertByChannelID reconciles a comment against the row with the same
// channel comment id, then re-fetches the result. A comment without a
// channel identity is always created.
func (r *GormCommentRepository) UpsertByChannelID(ctx context.Context, tx *gorm.DB, comment *commerce.OrderComment) (*commerce.OrderComment, error) {
	if err := comment.Validate(); err != nil {
		return nil, err
	}
	scope, commit, rollback := Acquire(ctx, r.db, tx)

	var existing models.OrderCommentModel
	err := gorm.ErrRecordNotFound
	if comment.ChannelCommentID != nil {
		err = scope.Where("channel_comment_id = ?", *comment.ChannelCommentID).First(&existing).Error
	}
	switch {
	case err == nil:
		comment.ID = existing.ID
		comment.CreatedAt = existing.CreatedAt
		comment.UpdatedAt = time.Now()
		if err := scope.Save(models.OrderCommentModelFromDomain(comment)).Error; err != nil {
			_ = rollback()
			return nil, translateWriteError(err, "channelCommentId")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := scope.Create(models.OrderCommentModelFromDomain(comment)).Error; err != nil {
			_ = rollback()
			return nil, translateWriteError(err, "channelCommentId")
		}
	default:
		_ = rollback()
		return nil, err
	}

	var reread models.OrderCommentModel
	if err := scope.First(&reread, "id = ?", comment.ID).Error; err != nil {
		_ = rollback()
		return nil, translateReadError(err)
	}
	if err := commit(); err != nil {
		return nil, err
	}
	return reread.ToDomain(), nil
}
