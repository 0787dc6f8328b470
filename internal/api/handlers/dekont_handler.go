package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MahmudHudayiTaner/kafka-proje/internal/dto"
	"github.com/MahmudHudayiTaner/kafka-proje/internal/service"
)

type DekontHandler struct {
	dekonts *service.DekontService
	logger  *zap.Logger
}

func NewDekontHandler(dekonts *service.DekontService, logger *zap.Logger) *DekontHandler {
	return &DekontHandler{
		dekonts: dekonts,
		logger:  logger,
	}
}

func (h *DekontHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	analyses, err := h.dekonts.List(c.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list dekont analyses", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list analyses",
		})
	}

	resp := make([]*dto.DekontAnalysisResponse, 0, len(analyses))
	for _, a := range analyses {
		resp = append(resp, service.AnalysisToResponse(a))
	}
	return c.JSON(resp)
}

func (h *DekontHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid analysis id",
		})
	}

	analysis, err := h.dekonts.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Analysis not found",
		})
	}

	return c.JSON(service.AnalysisToResponse(analysis))
}
