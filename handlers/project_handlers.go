package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"portfolio/api-server/manager"
	"portfolio/api-server/models"
	"portfolio/api-server/utils"
)

// statusForError maps manager errors onto HTTP status codes.
func statusForError(err error) int {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrProjectNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *ApplicationHandler) respondError(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	if status >= fiber.StatusInternalServerError {
		h.Logger.WithError(err).Error("Request failed with upstream error")
	}
	return utils.RespondWithError(c, status, err.Error())
}

// ListProjects returns all projects ordered by publication date
// descending. Public, no side effects.
func (h *ApplicationHandler) ListProjects(c *fiber.Ctx) error {
	resp, err := h.Manager.Dispatch(c.UserContext(), manager.Request{Kind: manager.OpList})
	if err != nil {
		return h.respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(resp.Projects)
}

// CreateProject stores a new project and returns it with the assigned
// identifier.
func (h *ApplicationHandler) CreateProject(c *fiber.Ctx) error {
	var project models.Project
	if err := c.BodyParser(&project); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("cannot parse project JSON: %v", err))
	}

	resp, err := h.Manager.Dispatch(c.UserContext(), manager.Request{
		Kind:   manager.OpCreate,
		Create: &project,
	})
	if err != nil {
		return h.respondError(c, err)
	}

	h.Logger.WithField("project", resp.Created.ID.Hex()).Info("Project created")
	return c.Status(fiber.StatusCreated).JSON(resp.Created)
}

type updateDetailsRequest struct {
	LongDescription *string   `json:"longDescription"`
	Images          *[]string `json:"images"`
	Videos          *[]string `json:"videos"`
	DocumentURL     *string   `json:"documentUrl"`
}

type updateProjectRequest struct {
	ID               string                `json:"_id" validate:"required"`
	Title            *string               `json:"title"`
	Slug             *string               `json:"slug"`
	ShortDescription *string               `json:"shortDescription"`
	PublicationDate  *string               `json:"publicationDate"`
	CoverImageURL    *string               `json:"coverImageUrl"`
	SourceCodeURL    *string               `json:"sourceCodeUrl"`
	PreviewURL       *string               `json:"previewUrl"`
	Details          *updateDetailsRequest `json:"details"`
}

// UpdateProject applies a field-level update to an existing project and
// returns the modified count.
func (h *ApplicationHandler) UpdateProject(c *fiber.Ctx) error {
	var req updateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("cannot parse update JSON: %v", err))
	}
	if err := h.Validate.Struct(&req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, utils.FormatValidationErrors(err))
	}

	input := &manager.UpdateInput{
		ID:               req.ID,
		Title:            req.Title,
		Slug:             req.Slug,
		ShortDescription: req.ShortDescription,
		PublicationDate:  req.PublicationDate,
		CoverImageURL:    req.CoverImageURL,
		SourceCodeURL:    req.SourceCodeURL,
		PreviewURL:       req.PreviewURL,
	}
	if req.Details != nil {
		input.LongDescription = req.Details.LongDescription
		input.Images = req.Details.Images
		input.Videos = req.Details.Videos
		input.DocumentURL = req.Details.DocumentURL
	}

	resp, err := h.Manager.Dispatch(c.UserContext(), manager.Request{
		Kind:   manager.OpUpdate,
		Update: input,
	})
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"modifiedCount": resp.ModifiedCount,
	})
}

// DeleteProject removes a project record and its remote media folder. A
// media cleanup failure does not abort the deletion; it is reported in the
// response as mediaCleanupWarning.
func (h *ApplicationHandler) DeleteProject(c *fiber.Ctx) error {
	id := c.Query("identifier")
	if id == "" {
		id = c.Query("_id")
	}
	if id == "" {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "query parameter 'identifier' is required")
	}

	resp, err := h.Manager.Dispatch(c.UserContext(), manager.Request{
		Kind:     manager.OpDelete,
		DeleteID: id,
	})
	if err != nil {
		return h.respondError(c, err)
	}

	h.Logger.WithField("project", id).Info("Project deleted")
	return c.Status(fiber.StatusOK).JSON(resp.Delete)
}

type removeMediaRequest struct {
	ID        string `json:"_id" validate:"required"`
	MediaURL  string `json:"mediaUrl" validate:"required"`
	MediaKind string `json:"mediaKind" validate:"required,oneof=image video document"`
}

// RemoveProjectMedia detaches a single media URL from a project and, when
// the URL maps back to a managed remote object, deletes that object.
// Returns an acknowledgment; the caller re-fetches the record if needed.
func (h *ApplicationHandler) RemoveProjectMedia(c *fiber.Ctx) error {
	var req removeMediaRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("cannot parse media removal JSON: %v", err))
	}
	if err := h.Validate.Struct(&req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, utils.FormatValidationErrors(err))
	}

	_, err := h.Manager.Dispatch(c.UserContext(), manager.Request{
		Kind: manager.OpRemoveMedia,
		RemoveMedia: &manager.RemoveMediaInput{
			ID:   req.ID,
			URL:  req.MediaURL,
			Kind: models.MediaKind(req.MediaKind),
		},
	})
	if err != nil {
		return h.respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
	})
}
