package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pixshare/image-service/traceutils"
)

type commentRequest struct {
	Content string `json:"content" binding:"required,max=300"`
}

// AddComment creates a comment on an image.
func (s *ImageAPIServer) AddComment(c *gin.Context) {
	traceutils.SetHandlerTag(c, "AddComment")

	imageID, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid image id", err)
		return
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid parameters", err)
		return
	}

	comment, err := s.service.AddComment(c, currentUserID(c), imageID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

// ListComments returns a page of an image's comments, most recent first.
func (s *ImageAPIServer) ListComments(c *gin.Context) {
	traceutils.SetHandlerTag(c, "ListComments")

	imageID, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid image id", err)
		return
	}

	params, err := bindPageParams(c, 5)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid parameters", err)
		return
	}

	page, err := s.service.ListComments(c, imageID, currentUserID(c), params.Page, params.Size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// UpdateComment replaces a comment's content. Author only.
func (s *ImageAPIServer) UpdateComment(c *gin.Context) {
	traceutils.SetHandlerTag(c, "UpdateComment")

	imageID, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid image id", err)
		return
	}
	commentID, err := pathID(c, "commentId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid comment id", err)
		return
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid parameters", err)
		return
	}

	comment, err := s.service.UpdateComment(c, currentUserID(c), imageID, commentID, req.Content)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment. Allowed for the comment author and for
// the image owner.
func (s *ImageAPIServer) DeleteComment(c *gin.Context) {
	traceutils.SetHandlerTag(c, "DeleteComment")

	imageID, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid image id", err)
		return
	}
	commentID, err := pathID(c, "commentId")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid comment id", err)
		return
	}

	if err := s.service.DeleteComment(c, currentUserID(c), imageID, commentID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
