package main

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	imageservice "github.com/pixshare/image-service"
	"github.com/pixshare/image-service/traceutils"
)

type pageParams struct {
	Page int `form:"page"`
	Size int `form:"size"`
}

func bindPageParams(c *gin.Context, defaultSize int) (pageParams, error) {
	params := pageParams{Page: 0, Size: defaultSize}
	if err := c.ShouldBindQuery(&params); err != nil {
		return params, err
	}
	if params.Page < 0 || params.Size <= 0 {
		return params, fmt.Errorf("page must be non-negative and size positive")
	}
	return params, nil
}

func pathID(c *gin.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// UploadImage accepts a multipart form with a "file" part and an optional
// "description" field.
func (s *ImageAPIServer) UploadImage(c *gin.Context) {
	traceutils.SetHandlerTag(c, "UploadImage")

	var form struct {
		Description string `form:"description" binding:"max=255"`
	}
	if err := c.ShouldBind(&form); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid parameters", err)
		return
	}

	var file imageservice.UploadFile
	if header, err := c.FormFile("file"); err == nil {
		f, err := header.Open()
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "unreadable file part", err)
			return
		}
		defer f.Close()

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			// the part carries no declared type, sniff it from the payload
			mtype, err := mimetype.DetectReader(f)
			if err != nil {
				abortWithError(c, http.StatusBadRequest, "unreadable file part", err)
				return
			}
			if _, err := f.Seek(0, io.SeekStart); err != nil {
				abortWithError(c, http.StatusBadRequest, "unreadable file part", err)
				return
			}
			contentType = mtype.String()
		}

		file = imageservice.UploadFile{
			Reader:      f,
			Size:        header.Size,
			ContentType: contentType,
			Filename:    header.Filename,
		}
	}

	image, err := s.service.Upload(c, currentUserID(c), form.Description, file)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, image)
}

// GetImage returns a single image with the acting user's like flag and the
// owner's display name.
func (s *ImageAPIServer) GetImage(c *gin.Context) {
	traceutils.SetHandlerTag(c, "GetImage")

	imageID, err := pathID(c, "id")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid image id", err)
		return
	}

	image, err := s.service.GetImage(c, currentUserID(c), imageID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, image)
}

// ListImages returns a page of all images, most recent first.
func (s *ImageAPIServer) ListImages(c *gin.Context) {
	traceutils.SetHandlerTag(c, "ListImages")

	params, err := bindPageParams(c, 20)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid parameters", err)
		return
	}

	page, err := s.service.ListImages(c, currentUserID(c), params.Page, params.Size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// ListOwnImages returns a page of the acting user's own images.
func (s *ImageAPIServer) ListOwnImages(c *gin.Context) {
	traceutils.SetHandlerTag(c, "ListOwnImages")

	params, err := bindPageParams(c, 20)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid parameters", err)
		return
	}

	page, err := s.service.ListImagesByOwner(c, currentUserID(c), params.Page, params.Size)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}
