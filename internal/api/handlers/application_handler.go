package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MahmudHudayiTaner/kafka-proje/internal/dto"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/models"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/service"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/validation"
)

type ApplicationHandler struct {
	applications *service.ApplicationService
	logger       *zap.Logger
}

func NewApplicationHandler(applications *service.ApplicationService, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		applications: applications,
		logger:       logger,
	}
}

// Submit is the public intake endpoint. The form is multipart so the
// applicant can attach the payment receipt in the same request.
func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	// The dekont attachment is optional.
	file, err := c.FormFile("dekont")
	if err != nil {
		file = nil
	}

	resp, err := h.applications.Submit(c.Context(), &req, file)
	if err != nil {
		if isValidationError(err) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		h.logger.Error("Application submit failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Application could not be saved",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	resp, err := h.applications.List(c.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list applications", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list applications",
		})
	}

	return c.JSON(resp)
}

func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application id",
		})
	}

	resp, err := h.applications.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrApplicationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Application not found",
			})
		}
		h.logger.Error("Failed to get application", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get application",
		})
	}

	return c.JSON(resp)
}

func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application id",
		})
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	status := models.ApplicationStatus(body.Status)
	switch status {
	case models.ApplicationPending, models.ApplicationApproved, models.ApplicationRejected:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status",
		})
	}

	if err := h.applications.UpdateStatus(c.Context(), id, status); err != nil {
		if errors.Is(err, service.ErrApplicationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Application not found",
			})
		}
		h.logger.Error("Failed to update application status", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update application",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ApplicationHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application id",
		})
	}

	if err := h.applications.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrApplicationNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Application not found",
			})
		}
		h.logger.Error("Failed to delete application", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete application",
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func isValidationError(err error) bool {
	return errors.Is(err, validation.ErrRequired) ||
		errors.Is(err, validation.ErrInvalidName) ||
		errors.Is(err, validation.ErrInvalidPhone) ||
		errors.Is(err, validation.ErrInvalidEmail) ||
		errors.Is(err, validation.ErrInvalidDate) ||
		errors.Is(err, validation.ErrNotPDF) ||
		errors.Is(err, validation.ErrFileTooLarge)
}
