package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	imageservice "github.com/pixshare/image-service"
	"github.com/pixshare/image-service/traceutils"
)

func abortWithError(c *gin.Context, code int, message string, traceErr error) {
	log.WithError(traceErr).Error(message)
	traceutils.CaptureException(c, traceErr)

	c.AbortWithStatusJSON(code, gin.H{
		"message": message,
	})
}

// respondError maps domain errors onto HTTP statuses. Anything unrecognized
// is a dependency or store failure and surfaces as a server error.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, imageservice.ErrImageNotFound),
		errors.Is(err, imageservice.ErrCommentNotFound):
		abortWithError(c, http.StatusNotFound, err.Error(), err)

	case errors.Is(err, imageservice.ErrNotAllowed):
		abortWithError(c, http.StatusForbidden, err.Error(), err)

	case errors.Is(err, imageservice.ErrImageFileRequired),
		errors.Is(err, imageservice.ErrInvalidImageSize),
		errors.Is(err, imageservice.ErrInvalidImageType),
		errors.Is(err, imageservice.ErrBlankContent),
		errors.Is(err, imageservice.ErrContentTooLong):
		abortWithError(c, http.StatusBadRequest, err.Error(), err)

	default:
		abortWithError(c, http.StatusInternalServerError, "internal error", err)
	}
}
