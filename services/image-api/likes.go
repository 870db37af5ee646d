package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pixshare/image-service/traceutils"
)

// ToggleLike adds or removes the acting user's like on an image and returns
// the resulting status, "Liked" or "Disliked".
func (s *ImageAPIServer) ToggleLike(c *gin.Context) {
	traceutils.SetHandlerTag(c, "ToggleLike")

	imageID, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid image id", err)
		return
	}

	status, err := s.service.ToggleLike(c, currentUserID(c), imageID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.String(http.StatusOK, status)
}
