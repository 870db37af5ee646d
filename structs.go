package imageservice

import (
	"time"
)

// Image is a picture uploaded by a user. Likes is a denormalized counter
// which is kept in sync with the likes table inside the toggle transaction.
type Image struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	URL         string    `gorm:"size:2048;not null" json:"url"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
	UploadedAt  time.Time `gorm:"index:idx_images_uploaded_at,sort:desc" json:"uploadedAt"`
	Likes       int64     `gorm:"not null;default:0" json:"likes"`
	UserID      int64     `gorm:"index;not null" json:"userId"`
}

// Like marks that a user likes an image. There is at most one row per
// (UserID, ImageID) pair. The pair is checked inside the toggle transaction
// rather than by a database constraint.
type Like struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	ImageID   int64     `gorm:"index;not null" json:"imageId"`
	UserID    int64     `gorm:"index;not null" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comment is a user comment attached to an image. Only Content is mutable.
type Comment struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	ImageID   int64     `gorm:"index;not null" json:"imageId"`
	UserID    int64     `gorm:"index;not null" json:"userId"`
	Content   string    `gorm:"size:300;not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ImageWithLike is the read shape for images: the image row joined with a
// flag telling whether the acting user likes it. UserName is left empty by
// the store and back-filled by the service from the auth service.
type ImageWithLike struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt"`
	Likes       int64     `json:"likes"`
	Liked       bool      `json:"likedByCurrentUser"`
	UserName    string    `json:"userName,omitempty"`
	UserID      int64     `json:"userId"`
}

// CommentWithAuthor is the read shape for comments. IsOwner tells whether
// the acting user wrote the comment. UserName is back-filled by the service.
type CommentWithAuthor struct {
	ID        int64     `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UserID    int64     `json:"userId"`
	ImageID   int64     `json:"imageId"`
	IsOwner   bool      `json:"isOwner"`
	UserName  string    `json:"userName,omitempty"`
}

// Slice is a page of content with a has-more flag. No total count is
// queried: the store fetches one row beyond the page size to decide HasNext.
type Slice[T any] struct {
	Content    []T  `json:"content"`
	PageNumber int  `json:"pageNumber"`
	PageSize   int  `json:"pageSize"`
	HasNext    bool `json:"hasNext"`
}
