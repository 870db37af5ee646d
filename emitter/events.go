package emitter

import "time"

// LikeEvent notifies that a user added or removed a like on an image. The
// stream it goes to tells which of the two happened.
type LikeEvent struct {
	UserID    int64     `json:"userId"`
	ImageID   int64     `json:"imageId"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewLikeEvent(userID, imageID int64) LikeEvent {
	return LikeEvent{
		UserID:    userID,
		ImageID:   imageID,
		CreatedAt: time.Now(),
	}
}

// CommentEvent notifies that a user created or removed a comment on an
// image. Content is only set on creation.
type CommentEvent struct {
	UserID    int64     `json:"userId"`
	ImageID   int64     `json:"imageId"`
	CommentID int64     `json:"commentId"`
	Content   string    `json:"content,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewCommentEvent(userID, imageID, commentID int64, content string) CommentEvent {
	return CommentEvent{
		UserID:    userID,
		ImageID:   imageID,
		CommentID: commentID,
		Content:   content,
		CreatedAt: time.Now(),
	}
}
