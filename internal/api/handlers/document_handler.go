package handlers

import (
	"strings"

	"formadoc/internal/dto"
	"formadoc/internal/models"
	"formadoc/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DocumentHandler exposes the verification pipeline over HTTP. Every
// business outcome is a 200 with a verdict body; 4xx is reserved for
// malformed requests, and panics degrade to a 200 REVIEW so the onboarding
// UI always gets something it can render.
type DocumentHandler struct {
	checkService    *service.CheckService
	identityService *service.IdentityService
	contractService *service.ContractService
	cvService       *service.CVService
	ocrService      *service.OCRService
	logger          *zap.Logger
}

func NewDocumentHandler(
	checkService *service.CheckService,
	identityService *service.IdentityService,
	contractService *service.ContractService,
	cvService *service.CVService,
	ocrService *service.OCRService,
	logger *zap.Logger,
) *DocumentHandler {
	return &DocumentHandler{
		checkService:    checkService,
		identityService: identityService,
		contractService: contractService,
		cvService:       cvService,
		ocrService:      ocrService,
		logger:          logger,
	}
}

// CheckDocument godoc
// @Summary Check an administrative document
// @Description Run the verification pipeline: text acquisition, signature match, validity, identity comparison
// @Tags documents
// @Accept json
// @Produce json
// @Param request body dto.CheckRequest true "Document to check"
// @Success 200 {object} dto.VerdictResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/documents/check [post]
func (h *DocumentHandler) CheckDocument(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Panic during document check", zap.Any("panic", r))
			err = c.Status(fiber.StatusOK).JSON(&dto.VerdictResponse{
				Status:  string(models.StatusReview),
				Reason:  models.ReasonInternalError,
				Message: "⚠️ Vérification automatique indisponible (à vérifier)",
			})
		}
	}()

	var req dto.CheckRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(req.DocType) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "docType is required",
		})
	}
	switch models.ContentType(req.ContentType) {
	case models.ContentTypePDFText:
		if req.Text == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "text is required for contentType pdf_text",
			})
		}
	case models.ContentTypeImage:
		if req.FileBase64 == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "fileBase64 is required for contentType image",
			})
		}
	}

	resp := h.checkService.Check(c.Context(), &req)
	if resp.Reason == models.ReasonBadContentType {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}
	return c.Status(fiber.StatusOK).JSON(resp)
}

// VerifyIdentity godoc
// @Summary Verify an identity document photo against a declared identity
// @Tags documents
// @Accept json
// @Produce json
// @Param request body dto.VerifyIdentityRequest true "Identity photo and expected name"
// @Success 200 {object} dto.VerifyIdentityResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/documents/verify-identity [post]
func (h *DocumentHandler) VerifyIdentity(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Panic during identity verification", zap.Any("panic", r))
			err = c.Status(fiber.StatusOK).JSON(&dto.VerifyIdentityResponse{
				Valide: false,
				Error:  "Vérification automatique indisponible",
			})
		}
	}()

	var req dto.VerifyIdentityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.FileBase64 == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "fileBase64 manquant",
		})
	}
	if strings.TrimSpace(req.Nom) == "" || strings.TrimSpace(req.Prenom) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Nom et prénom requis",
		})
	}

	return c.Status(fiber.StatusOK).JSON(h.identityService.VerifyIdentity(c.Context(), &req))
}

// ExtractContractFields godoc
// @Summary Aggregate contract fields from a trainer's document set
// @Tags documents
// @Accept json
// @Produce json
// @Param request body dto.ExtractContractFieldsRequest true "Documents plus declared identity"
// @Success 200 {object} dto.ExtractContractFieldsResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/documents/extract-contract-fields [post]
func (h *DocumentHandler) ExtractContractFields(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Panic during contract extraction", zap.Any("panic", r))
			err = c.Status(fiber.StatusOK).JSON(&dto.ExtractContractFieldsResponse{
				Success: false,
				Error:   "Extraction automatique indisponible",
			})
		}
	}()

	var req dto.ExtractContractFieldsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if len(req.Documents) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "documents is required",
		})
	}
	if strings.TrimSpace(req.Nom) == "" || strings.TrimSpace(req.Prenom) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "nom et prenom requis",
		})
	}

	return c.Status(fiber.StatusOK).JSON(h.contractService.ExtractContractFields(c.Context(), &req))
}

// ExtractText godoc
// @Summary Extract raw text from a document
// @Tags documents
// @Accept json
// @Produce json
// @Param request body dto.ExtractTextRequest true "Document bytes"
// @Success 200 {object} dto.ExtractTextResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/documents/extract-text [post]
func (h *DocumentHandler) ExtractText(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Panic during text extraction", zap.Any("panic", r))
			err = c.Status(fiber.StatusOK).JSON(&dto.ExtractTextResponse{
				Success: false,
				Error:   "Extraction automatique indisponible",
			})
		}
	}()

	var req dto.ExtractTextRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.FileBase64 == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "fileBase64 manquant",
		})
	}

	data, err := service.DecodeBase64Payload(req.FileBase64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "fileBase64 invalide",
		})
	}

	text, method, err := h.ocrService.ExtractFromBytes(c.Context(), data)
	if err != nil {
		h.logger.Warn("Text extraction failed", zap.Error(err))
		return c.Status(fiber.StatusOK).JSON(&dto.ExtractTextResponse{
			Success:   false,
			OCRMethod: method,
			Error:     "Aucun texte extrait du document",
		})
	}

	return c.Status(fiber.StatusOK).JSON(&dto.ExtractTextResponse{
		Success:    true,
		Text:       text,
		OCRMethod:  method,
		TextLength: len(text),
	})
}

// AnalyzeCV godoc
// @Summary Extract identity, contacts and skills from a CV
// @Tags documents
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeCVRequest true "CV bytes"
// @Success 200 {object} dto.AnalyzeCVResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/documents/analyze-cv [post]
func (h *DocumentHandler) AnalyzeCV(c *fiber.Ctx) (err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("Panic during CV analysis", zap.Any("panic", r))
			err = c.Status(fiber.StatusOK).JSON(&dto.AnalyzeCVResponse{
				Success: false,
				Error:   "Analyse automatique indisponible",
			})
		}
	}()

	var req dto.AnalyzeCVRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.FileBase64 == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "fileBase64 manquant",
		})
	}

	return c.Status(fiber.StatusOK).JSON(h.cvService.AnalyzeCV(c.Context(), &req))
}
