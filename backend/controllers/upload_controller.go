package controllers

import (
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"thinkhabit/backend/config"
	"thinkhabit/backend/storage"
	"thinkhabit/backend/utils"
)

const maxUploadSize = 5 * 1024 * 1024

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

type UploadController struct {
	Storage *storage.Client
	Cfg     *config.Config
	Logger  *log.Logger
}

func NewUploadController(cfg *config.Config, logger *log.Logger) *UploadController {
	return &UploadController{
		Storage: storage.NewClient(cfg),
		Cfg:     cfg,
		Logger:  logger,
	}
}

// UploadImage godoc
// @Summary Upload a journal image
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /upload/image [post]
func (upc *UploadController) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.BadRequest(c, "Missing file")
	}
	if fileHeader.Size > maxUploadSize {
		return utils.BadRequest(c, "File exceeds the 5MB limit")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExt[ext] {
		return utils.BadRequest(c, "Only jpg, png and webp images are allowed")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return utils.InternalServerError(c, "Could not read file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxUploadSize+1))
	if err != nil {
		return utils.InternalServerError(c, "Could not read file")
	}
	if int64(len(data)) > maxUploadSize {
		return utils.BadRequest(c, "File exceeds the 5MB limit")
	}

	encoded, contentType, err := storage.ProcessImage(data)
	if err != nil {
		return utils.BadRequest(c, "File is not a valid image")
	}

	name := strings.TrimSuffix(fileHeader.Filename, ext) + ".webp"
	key := storage.ObjectKey("journals", name)

	publicURL, err := upc.Storage.Upload(key, contentType, encoded)
	if err != nil {
		upc.Logger.Printf("upload: %v", err)
		return utils.InternalServerError(c, "Upload failed")
	}

	return utils.Created(c, fiber.Map{"url": publicURL})
}
