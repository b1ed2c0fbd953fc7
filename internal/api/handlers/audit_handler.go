package handlers

import (
	"time"

	"formadoc/internal/dto"
	"formadoc/internal/models"
	"formadoc/internal/repository"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuditHandler serves the back-office review queue. repo is nil when the
// audit database is disabled; the endpoint then answers with an empty list.
type AuditHandler struct {
	repo   *repository.CheckRepository
	logger *zap.Logger
}

func NewAuditHandler(repo *repository.CheckRepository, logger *zap.Logger) *AuditHandler {
	return &AuditHandler{
		repo:   repo,
		logger: logger,
	}
}

// ListChecks godoc
// @Summary List recent check verdicts
// @Tags checks
// @Produce json
// @Param status query string false "Filter by verdict status: OK, REVIEW or FAIL"
// @Param limit query int false "Max rows, default 50"
// @Success 200 {object} dto.ListChecksResponse
// @Router /api/v1/checks [get]
func (h *AuditHandler) ListChecks(c *fiber.Ctx) error {
	resp := &dto.ListChecksResponse{Checks: []dto.CheckRecordResponse{}}

	if h.repo == nil {
		return c.Status(fiber.StatusOK).JSON(resp)
	}

	status := models.VerdictStatus(c.Query("status"))
	limit := c.QueryInt("limit", 50)

	records, err := h.repo.ListRecent(c.Context(), status, limit)
	if err != nil {
		h.logger.Error("Failed to list check records", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list checks",
		})
	}

	for _, rec := range records {
		resp.Checks = append(resp.Checks, dto.CheckRecordResponse{
			ID:         rec.ID.String(),
			DocType:    string(rec.DocType),
			Status:     string(rec.Status),
			Reason:     rec.Reason,
			Confidence: rec.Confidence,
			OCRMethod:  rec.OCRMethod,
			TextLength: rec.TextLength,
			CreatedAt:  rec.CreatedAt.Format(time.RFC3339),
		})
	}
	resp.Count = len(resp.Checks)

	return c.Status(fiber.StatusOK).JSON(resp)
}
