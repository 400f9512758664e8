package handlers

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"portfolio/api-server/manager"
	"portfolio/api-server/mediastore"
	"portfolio/api-server/models"
	"portfolio/api-server/utils"
)

// uploadFieldName is the fixed multipart field the admin UI sends files in.
const uploadFieldName = "media"

// UploadMedia receives a multipart batch of files and uploads them
// concurrently into the project's media folder. The batch is
// all-or-nothing; a failed batch may still leave completed uploads in the
// CDN, and the caller retries.
func (h *ApplicationHandler) UploadMedia(c *fiber.Ctx) error {
	projectID := c.Query("projectId")
	if projectID == "" {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "query parameter 'projectId' is required")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("cannot parse multipart form: %v", err))
	}

	fileHeaders := form.File[uploadFieldName]
	if len(fileHeaders) == 0 {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "no files were uploaded")
	}

	files := make([]manager.UploadFile, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		file, err := header.Open()
		if err != nil {
			return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("cannot open uploaded file %s: %v", header.Filename, err))
		}
		defer file.Close()
		files = append(files, manager.UploadFile{
			Filename: header.Filename,
			Content:  file,
		})
	}

	assets, err := h.Manager.UploadBatch(c.UserContext(), projectID, files)
	if err != nil {
		return h.respondError(c, err)
	}

	h.Logger.WithFields(map[string]interface{}{
		"project": projectID,
		"count":   len(assets),
	}).Info("Media batch uploaded")
	return c.Status(fiber.StatusOK).JSON(assets)
}

type signUploadRequest struct {
	Folder string `json:"folder"`
	Kind   string `json:"kind"`
}

// SignUpload returns the signed parameters a client needs for a
// direct-to-CDN upload, bypassing this server for the payload itself.
func (h *ApplicationHandler) SignUpload(c *fiber.Ctx) error {
	var req signUploadRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("cannot parse sign-upload JSON: %v", err))
	}

	folder := req.Folder
	if folder == "" {
		folder = mediastore.FolderRoot
	}

	signed, err := h.Media.SignUploadParams(folder, models.MediaKind(req.Kind), time.Now().Unix())
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(signed)
}
