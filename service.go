package imageservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/pixshare/image-service/log"
)

const (
	StatusLiked    = "Liked"
	StatusDisliked = "Disliked"

	maxContentLength = 300
)

var allowedImageTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/bmp":  {},
	"image/webp": {},
}

// NameResolver resolves user ids to display names through the auth service.
type NameResolver interface {
	GetUserNames(ctx context.Context, userIDs []int64) (map[int64]string, error)
}

// ObjectStore stores image blobs under a key and serves them from a public URL.
type ObjectStore interface {
	Upload(ctx context.Context, key string, object io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

// ActivityEmitter publishes activity events. Implementations deliver in the
// background and only log failures; none of these calls blocks or fails the
// operation that triggered it.
type ActivityEmitter interface {
	SendAddLike(userID, imageID int64)
	SendRemoveLike(userID, imageID int64)
	SendCreateComment(userID, imageID, commentID int64, content string)
	SendRemoveComment(userID, imageID, commentID int64)
}

// UploadFile is an inbound image file with its declared size and content type.
type UploadFile struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Filename    string
}

// ImageService coordinates the store, the object storage, the auth service
// and the activity stream for every image, like and comment operation.
type ImageService struct {
	store    ImageStore
	objects  ObjectStore
	accounts NameResolver
	events   ActivityEmitter

	minImageBytes int64
	maxImageBytes int64
}

func NewImageService(store ImageStore, objects ObjectStore, accounts NameResolver, events ActivityEmitter, minImageBytes, maxImageBytes int64) *ImageService {
	return &ImageService{
		store:    store,
		objects:  objects,
		accounts: accounts,
		events:   events,

		minImageBytes: minImageBytes,
		maxImageBytes: maxImageBytes,
	}
}

// Upload validates the file, stores the blob and persists the image row.
// If the row cannot be persisted after the blob went out, the blob is
// removed again on a best-effort basis before the original error surfaces.
func (s *ImageService) Upload(ctx context.Context, userID int64, description string, file UploadFile) (Image, error) {
	if err := s.validateImageFile(file); err != nil {
		return Image{}, err
	}

	key := StorageKey(userID, file.Filename)
	url, err := s.objects.Upload(ctx, key, file.Reader, file.Size, file.ContentType)
	if err != nil {
		return Image{}, fmt.Errorf("fail to upload image to object storage: %w", err)
	}

	image := Image{
		URL:         url,
		Description: description,
		UploadedAt:  time.Now(),
		Likes:       0,
		UserID:      userID,
	}

	if err := s.store.CreateImage(ctx, &image); err != nil {
		if derr := s.objects.Delete(ctx, key); derr != nil {
			log.Warn("fail to remove object after image create failure",
				zap.String("key", key), zap.Error(derr))
		}
		return Image{}, err
	}

	return image, nil
}

func (s *ImageService) validateImageFile(file UploadFile) error {
	if file.Reader == nil || file.Size == 0 {
		return ErrImageFileRequired
	}

	if file.Size < s.minImageBytes {
		return fmt.Errorf("%w: minimum size is %d bytes", ErrInvalidImageSize, s.minImageBytes)
	}
	if file.Size > s.maxImageBytes {
		return fmt.Errorf("%w: maximum size is %d bytes", ErrInvalidImageSize, s.maxImageBytes)
	}

	if _, ok := allowedImageTypes[file.ContentType]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidImageType, file.ContentType)
	}

	return nil
}

// GetImage returns a single image with the acting user's like flag and the
// owner's resolved display name.
func (s *ImageService) GetImage(ctx context.Context, currentUserID, imageID int64) (ImageWithLike, error) {
	row, err := s.store.GetImageWithLike(ctx, currentUserID, imageID)
	if err != nil {
		return ImageWithLike{}, err
	}

	names, err := s.accounts.GetUserNames(ctx, []int64{row.UserID})
	if err != nil {
		return ImageWithLike{}, fmt.Errorf("fail to resolve user names: %w", err)
	}
	row.UserName = names[row.UserID]

	return row, nil
}

// ListImages returns a page of all images, most recent first, with like flags
// for the acting user and owner names resolved in a single auth service call.
func (s *ImageService) ListImages(ctx context.Context, currentUserID int64, page, size int) (Slice[ImageWithLike], error) {
	rows, hasNext, err := s.store.ListImagesWithLike(ctx, currentUserID, page, size)
	if err != nil {
		return Slice[ImageWithLike]{}, err
	}

	if err := s.fillImageUserNames(ctx, rows); err != nil {
		return Slice[ImageWithLike]{}, err
	}

	return Slice[ImageWithLike]{
		Content:    rows,
		PageNumber: page,
		PageSize:   size,
		HasNext:    hasNext,
	}, nil
}

// ListImagesByOwner returns a page of the given user's own images.
func (s *ImageService) ListImagesByOwner(ctx context.Context, ownerID int64, page, size int) (Slice[ImageWithLike], error) {
	rows, hasNext, err := s.store.ListImagesByOwnerWithLike(ctx, ownerID, page, size)
	if err != nil {
		return Slice[ImageWithLike]{}, err
	}

	if err := s.fillImageUserNames(ctx, rows); err != nil {
		return Slice[ImageWithLike]{}, err
	}

	return Slice[ImageWithLike]{
		Content:    rows,
		PageNumber: page,
		PageSize:   size,
		HasNext:    hasNext,
	}, nil
}

func (s *ImageService) fillImageUserNames(ctx context.Context, rows []ImageWithLike) error {
	if len(rows) == 0 {
		return nil
	}

	userIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		userIDs = append(userIDs, row.UserID)
	}

	names, err := s.accounts.GetUserNames(ctx, distinctIDs(userIDs))
	if err != nil {
		return fmt.Errorf("fail to resolve user names: %w", err)
	}

	for i := range rows {
		rows[i].UserName = names[rows[i].UserID]
	}
	return nil
}

// ToggleLike creates or removes the acting user's like on an image and keeps
// the denormalized counter in step, all inside one store transaction. It
// returns StatusLiked or StatusDisliked.
func (s *ImageService) ToggleLike(ctx context.Context, userID, imageID int64) (string, error) {
	var status string

	err := s.store.Transaction(ctx, func(tx ImageStore) error {
		image, err := tx.GetImageForUpdate(ctx, imageID)
		if err != nil {
			return err
		}

		like, err := tx.GetLike(ctx, userID, image.ID)
		switch {
		case errors.Is(err, ErrLikeNotFound):
			newLike := Like{
				ImageID:   image.ID,
				UserID:    userID,
				CreatedAt: time.Now(),
			}
			if err := tx.CreateLike(ctx, &newLike); err != nil {
				return err
			}
			if err := tx.UpdateImageLikes(ctx, image.ID, 1); err != nil {
				return err
			}
			status = StatusLiked

		case err != nil:
			return err

		default:
			if err := tx.DeleteLike(ctx, like.ID); err != nil {
				return err
			}
			if err := tx.UpdateImageLikes(ctx, image.ID, -1); err != nil {
				return err
			}
			status = StatusDisliked
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	if status == StatusLiked {
		s.events.SendAddLike(userID, imageID)
	} else {
		s.events.SendRemoveLike(userID, imageID)
	}

	return status, nil
}

// AddComment persists a comment on an existing image and returns it with the
// author's resolved display name.
func (s *ImageService) AddComment(ctx context.Context, userID, imageID int64, content string) (CommentWithAuthor, error) {
	if err := validateContent(content); err != nil {
		return CommentWithAuthor{}, err
	}

	image, err := s.store.GetImage(ctx, imageID)
	if err != nil {
		return CommentWithAuthor{}, err
	}

	names, err := s.accounts.GetUserNames(ctx, []int64{userID})
	if err != nil {
		return CommentWithAuthor{}, fmt.Errorf("fail to resolve user names: %w", err)
	}

	comment := Comment{
		ImageID:   image.ID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateComment(ctx, &comment); err != nil {
		return CommentWithAuthor{}, err
	}

	s.events.SendCreateComment(userID, image.ID, comment.ID, comment.Content)

	return CommentWithAuthor{
		ID:        comment.ID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UserID:    userID,
		ImageID:   image.ID,
		IsOwner:   true,
		UserName:  names[userID],
	}, nil
}

// UpdateComment replaces a comment's content. Only the author may update it.
func (s *ImageService) UpdateComment(ctx context.Context, userID, imageID, commentID int64, content string) (Comment, error) {
	if err := validateContent(content); err != nil {
		return Comment{}, err
	}

	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		return Comment{}, err
	}
	if _, err := s.store.GetImage(ctx, imageID); err != nil {
		return Comment{}, err
	}

	if comment.UserID != userID {
		return Comment{}, fmt.Errorf("%w: you cannot update a comment that is not yours", ErrNotAllowed)
	}

	if err := s.store.UpdateCommentContent(ctx, comment.ID, content); err != nil {
		return Comment{}, err
	}

	comment.Content = content
	return comment, nil
}

// DeleteComment removes a comment. The author may always delete it; the
// image owner may delete any comment under their image.
func (s *ImageService) DeleteComment(ctx context.Context, userID, imageID, commentID int64) error {
	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	image, err := s.store.GetImage(ctx, imageID)
	if err != nil {
		return err
	}

	isCommentOwner := comment.UserID == userID
	isImageOwner := image.UserID == userID
	if !isCommentOwner && !isImageOwner {
		return fmt.Errorf("%w: you cannot delete a comment that is not yours or from an image that is not yours", ErrNotAllowed)
	}

	if err := s.store.DeleteComment(ctx, comment.ID); err != nil {
		return err
	}

	s.events.SendRemoveComment(userID, image.ID, comment.ID)
	return nil
}

// ListComments returns a page of an image's comments, most recent first,
// with author flags for the acting user and author names resolved in a
// single auth service call.
func (s *ImageService) ListComments(ctx context.Context, imageID, currentUserID int64, page, size int) (Slice[CommentWithAuthor], error) {
	rows, hasNext, err := s.store.ListCommentsByImage(ctx, imageID, currentUserID, page, size)
	if err != nil {
		return Slice[CommentWithAuthor]{}, err
	}

	if len(rows) > 0 {
		userIDs := make([]int64, 0, len(rows))
		for _, row := range rows {
			userIDs = append(userIDs, row.UserID)
		}

		names, err := s.accounts.GetUserNames(ctx, distinctIDs(userIDs))
		if err != nil {
			return Slice[CommentWithAuthor]{}, fmt.Errorf("fail to resolve user names: %w", err)
		}

		for i := range rows {
			rows[i].UserName = names[rows[i].UserID]
		}
	}

	return Slice[CommentWithAuthor]{
		Content:    rows,
		PageNumber: page,
		PageSize:   size,
		HasNext:    hasNext,
	}, nil
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrBlankContent
	}
	if utf8.RuneCountInString(content) > maxContentLength {
		return fmt.Errorf("%w: maximum length is %d characters", ErrContentTooLong, maxContentLength)
	}
	return nil
}
