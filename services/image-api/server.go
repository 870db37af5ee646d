package main

import (
	"github.com/gin-gonic/gin"

	imageservice "github.com/pixshare/image-service"
)

type ImageAPIServer struct {
	route   *gin.Engine
	service *imageservice.ImageService
}

func NewImageAPIServer(service *imageservice.ImageService) *ImageAPIServer {
	r := gin.New()

	return &ImageAPIServer{
		route:   r,
		service: service,
	}
}

func (s *ImageAPIServer) Run(port string) error {
	return s.route.Run(port)
}
