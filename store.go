package imageservice

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// ImageStore is the persistence contract for images, likes and comments.
// Listing is slice-paginated: the store fetches one extra row to compute the
// has-more flag, ordered most-recent-first. Transaction runs fn against a
// store bound to a database transaction; the database serializes concurrent
// like toggles on the same image through the row lock taken by
// GetImageForUpdate.
type ImageStore interface {
	Transaction(ctx context.Context, fn func(tx ImageStore) error) error

	CreateImage(ctx context.Context, image *Image) error
	GetImage(ctx context.Context, imageID int64) (Image, error)
	GetImageForUpdate(ctx context.Context, imageID int64) (Image, error)
	GetImageWithLike(ctx context.Context, currentUserID, imageID int64) (ImageWithLike, error)
	ListImagesWithLike(ctx context.Context, currentUserID int64, page, size int) ([]ImageWithLike, bool, error)
	ListImagesByOwnerWithLike(ctx context.Context, ownerID int64, page, size int) ([]ImageWithLike, bool, error)
	UpdateImageLikes(ctx context.Context, imageID, delta int64) error

	GetLike(ctx context.Context, userID, imageID int64) (Like, error)
	CreateLike(ctx context.Context, like *Like) error
	DeleteLike(ctx context.Context, likeID int64) error

	CreateComment(ctx context.Context, comment *Comment) error
	GetComment(ctx context.Context, commentID int64) (Comment, error)
	UpdateCommentContent(ctx context.Context, commentID int64, content string) error
	DeleteComment(ctx context.Context, commentID int64) error
	ListCommentsByImage(ctx context.Context, imageID, currentUserID int64, page, size int) ([]CommentWithAuthor, bool, error)
}

type PostgresImageStore struct {
	db *gorm.DB
}

func NewPostgresImageStore(dsn string, logLevel int) (*PostgresImageStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.LogLevel(logLevel)),
	})
	if err != nil {
		return nil, err
	}

	sqldb, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxOpenConns(50)
	// SetConnMaxLifetime sets the maximum amount of time a connection may be reused.
	sqldb.SetConnMaxLifetime(time.Hour)

	return &PostgresImageStore{db: db}, nil
}

func (s *PostgresImageStore) AutoMigrate() error {
	return s.db.AutoMigrate(&Image{}, &Like{}, &Comment{})
}

func (s *PostgresImageStore) Transaction(ctx context.Context, fn func(tx ImageStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresImageStore{db: tx})
	})
}

func (s *PostgresImageStore) CreateImage(ctx context.Context, image *Image) error {
	return s.db.WithContext(ctx).Create(image).Error
}

func (s *PostgresImageStore) GetImage(ctx context.Context, imageID int64) (Image, error) {
	var image Image

	if err := s.db.WithContext(ctx).First(&image, imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Image{}, ErrImageNotFound
		}
		return Image{}, err
	}

	return image, nil
}

// GetImageForUpdate reads an image under a row lock so that concurrent like
// toggles on the same image are serialized by the database.
func (s *PostgresImageStore) GetImageForUpdate(ctx context.Context, imageID int64) (Image, error) {
	var image Image

	err := s.db.WithContext(ctx).Clauses(clause.Locking{
		Strength: "UPDATE",
	}).First(&image, imageID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Image{}, ErrImageNotFound
		}
		return Image{}, err
	}

	return image, nil
}

const imageWithLikeSelect = "images.id, images.url, images.description, images.uploaded_at, " +
	"images.likes, images.user_id, likes.id IS NOT NULL AS liked"

func (s *PostgresImageStore) imagesWithLike(ctx context.Context, currentUserID int64) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("images").
		Select(imageWithLikeSelect).
		Joins("LEFT JOIN likes ON likes.image_id = images.id AND likes.user_id = ?", currentUserID)
}

func (s *PostgresImageStore) GetImageWithLike(ctx context.Context, currentUserID, imageID int64) (ImageWithLike, error) {
	var row ImageWithLike

	err := s.imagesWithLike(ctx, currentUserID).
		Where("images.id = ?", imageID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ImageWithLike{}, ErrImageNotFound
		}
		return ImageWithLike{}, err
	}

	return row, nil
}

func (s *PostgresImageStore) ListImagesWithLike(ctx context.Context, currentUserID int64, page, size int) ([]ImageWithLike, bool, error) {
	var rows []ImageWithLike

	err := s.imagesWithLike(ctx, currentUserID).
		Order("images.uploaded_at DESC, images.id DESC").
		Offset(page * size).
		Limit(size + 1).
		Scan(&rows).Error
	if err != nil {
		return nil, false, err
	}

	rows, hasNext := trimSlice(rows, size)
	return rows, hasNext, nil
}

func (s *PostgresImageStore) ListImagesByOwnerWithLike(ctx context.Context, ownerID int64, page, size int) ([]ImageWithLike, bool, error) {
	var rows []ImageWithLike

	err := s.imagesWithLike(ctx, ownerID).
		Where("images.user_id = ?", ownerID).
		Order("images.uploaded_at DESC, images.id DESC").
		Offset(page * size).
		Limit(size + 1).
		Scan(&rows).Error
	if err != nil {
		return nil, false, err
	}

	rows, hasNext := trimSlice(rows, size)
	return rows, hasNext, nil
}

func (s *PostgresImageStore) UpdateImageLikes(ctx context.Context, imageID, delta int64) error {
	return s.db.WithContext(ctx).
		Model(&Image{}).
		Where("id = ?", imageID).
		UpdateColumn("likes", gorm.Expr("likes + ?", delta)).Error
}

func (s *PostgresImageStore) GetLike(ctx context.Context, userID, imageID int64) (Like, error) {
	var like Like

	err := s.db.WithContext(ctx).
		Where("user_id = ? AND image_id = ?", userID, imageID).
		First(&like).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Like{}, ErrLikeNotFound
		}
		return Like{}, err
	}

	return like, nil
}

func (s *PostgresImageStore) CreateLike(ctx context.Context, like *Like) error {
	return s.db.WithContext(ctx).Create(like).Error
}

func (s *PostgresImageStore) DeleteLike(ctx context.Context, likeID int64) error {
	return s.db.WithContext(ctx).Delete(&Like{}, likeID).Error
}

func (s *PostgresImageStore) CreateComment(ctx context.Context, comment *Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *PostgresImageStore) GetComment(ctx context.Context, commentID int64) (Comment, error) {
	var comment Comment

	if err := s.db.WithContext(ctx).First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Comment{}, ErrCommentNotFound
		}
		return Comment{}, err
	}

	return comment, nil
}

func (s *PostgresImageStore) UpdateCommentContent(ctx context.Context, commentID int64, content string) error {
	return s.db.WithContext(ctx).
		Model(&Comment{}).
		Where("id = ?", commentID).
		UpdateColumn("content", content).Error
}

func (s *PostgresImageStore) DeleteComment(ctx context.Context, commentID int64) error {
	return s.db.WithContext(ctx).Delete(&Comment{}, commentID).Error
}

func (s *PostgresImageStore) ListCommentsByImage(ctx context.Context, imageID, currentUserID int64, page, size int) ([]CommentWithAuthor, bool, error) {
	var rows []CommentWithAuthor

	err := s.db.WithContext(ctx).
		Table("comments").
		Select("comments.id, comments.content, comments.created_at, comments.user_id, "+
			"comments.image_id, comments.user_id = ? AS is_owner", currentUserID).
		Where("comments.image_id = ?", imageID).
		Order("comments.created_at DESC, comments.id DESC").
		Offset(page * size).
		Limit(size + 1).
		Scan(&rows).Error
	if err != nil {
		return nil, false, err
	}

	rows, hasNext := trimSlice(rows, size)
	return rows, hasNext, nil
}

// trimSlice cuts a size+1 query result down to the page size and reports
// whether a further page exists.
func trimSlice[T any](rows []T, size int) ([]T, bool) {
	if len(rows) > size {
		return rows[:size], true
	}
	return rows, false
}
