package imageservice

import "fmt"

var (
	ErrImageFileRequired = fmt.Errorf("image file is required")
	ErrInvalidImageSize  = fmt.Errorf("invalid image size")
	ErrInvalidImageType  = fmt.Errorf("unsupported image type")
	ErrBlankContent      = fmt.Errorf("comment content must not be blank")
	ErrContentTooLong    = fmt.Errorf("comment content is too long")

	ErrImageNotFound   = fmt.Errorf("image not found")
	ErrCommentNotFound = fmt.Errorf("comment not found")
	ErrLikeNotFound    = fmt.Errorf("like not found")

	ErrNotAllowed = fmt.Errorf("operation not allowed")
)
