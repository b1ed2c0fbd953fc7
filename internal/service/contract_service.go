package service

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"formadoc/internal/dto"
	"formadoc/internal/extract"
	"formadoc/internal/models"
	"formadoc/pkg/metrics"

	"go.uber.org/zap"
)

// companyFieldsExtractor is the AI fallback for company fields; nil when the
// LLM is not configured.
type companyFieldsExtractor interface {
	ExtractCompanyFields(ctx context.Context, docType, text string) (*extract.CompanyFields, error)
}

// ContractService aggregates contract-ready fields across a trainer's
// document set: company identity from the registry extracts, bank details
// from the RIB, representative identity from the onboarding form.
type ContractService struct {
	extractor textExtractor
	llm       companyFieldsExtractor
	metrics   *metrics.Metrics
	service   string
	logger    *zap.Logger
}

func NewContractService(extractor textExtractor, llm companyFieldsExtractor, m *metrics.Metrics, service string, logger *zap.Logger) *ContractService {
	return &ContractService{
		extractor: extractor,
		llm:       llm,
		metrics:   m,
		service:   service,
		logger:    logger,
	}
}

// Registry documents carry the authoritative company identity; attestations
// only corroborate it. Higher rank wins field conflicts.
var companyDocRank = map[models.DocType]int{
	models.DocTypeKbis:        5,
	models.DocTypeDeclaration: 4,
	models.DocTypeURSSAF:      3,
	models.DocTypeFiscale:     2,
	models.DocTypeAssurance:   1,
}

func (s *ContractService) ExtractContractFields(ctx context.Context, req *dto.ExtractContractFieldsRequest) *dto.ExtractContractFieldsResponse {
	docs := make([]dto.ContractDocument, len(req.Documents))
	copy(docs, req.Documents)
	sort.SliceStable(docs, func(i, j int) bool {
		ri := companyDocRank[models.DocType(strings.ToLower(docs[i].Type))]
		rj := companyDocRank[models.DocType(strings.ToLower(docs[j].Type))]
		return ri > rj
	})

	var company extract.CompanyFields
	var iban, bic, role string
	processed := 0
	warning := ""
	model := "none"

	for _, doc := range docs {
		docType := models.DocType(strings.ToLower(strings.TrimSpace(doc.Type)))

		data, err := DecodeBase64Payload(doc.FileBase64)
		if err != nil {
			s.logger.Warn("Skipping document with invalid payload",
				zap.String("doc_type", string(docType)),
				zap.Error(err),
			)
			continue
		}

		text, _, err := s.extractor.ExtractFromBytes(ctx, data)
		if err != nil {
			s.logger.Warn("Text extraction failed for contract document",
				zap.String("doc_type", string(docType)),
				zap.Error(err),
			)
		}
		text = extract.Normalize(text)
		processed++

		switch docType {
		case models.DocTypeRIB:
			if iban == "" {
				iban = extract.IBAN(text)
			}
			if bic == "" {
				bic = extract.BIC(text)
			}
			continue
		case models.DocTypeIdentite, models.DocTypeCV:
			continue
		}

		textLen := utf8.RuneCountInString(text)
		if textLen < 80 {
			warning = "Texte PDF trop faible (scan / image). Extraction partielle uniquement."
		}

		docFields := extract.CompanyFieldsFromText(text)

		if s.llm != nil && textLen >= 80 {
			aiFields, err := s.llm.ExtractCompanyFields(ctx, string(docType), text)
			s.metrics.RecordLLM(s.service, "extract_company_fields", err)
			if err != nil {
				s.logger.Warn("AI company extraction failed, keeping regex fields",
					zap.String("doc_type", string(docType)),
					zap.Error(err),
				)
			} else {
				// AI output wins over the regex pass for the same document.
				docFields = extract.MergeCompanyFields(docFields, *aiFields)
				model = "GigaChat"
			}
		}

		// Fields already claimed by a higher-ranked document stay.
		company = extract.MergeCompanyFields(docFields, company)

		if role == "" {
			role = extract.RepresentativeRole(text)
		}
	}

	company = extract.CleanCompanyFields(company)
	postal, city := extract.PostalCity(company.Adresse)

	prestataire := &dto.Prestataire{
		Nom:                  strings.TrimSpace(req.Nom),
		Prenom:               strings.TrimSpace(req.Prenom),
		Denomination:         company.Denomination,
		Siren:                company.Siren,
		Siret:                company.Siret,
		RCS:                  company.RCS,
		Adresse:              company.Adresse,
		CodePostal:           postal,
		Ville:                city,
		Representant:         strings.TrimSpace(req.Prenom + " " + req.Nom),
		FonctionRepresentant: role,
		IBAN:                 iban,
		BIC:                  bic,
	}

	s.logger.Info("Contract fields aggregated",
		zap.Int("documents", processed),
		zap.Bool("has_siren", company.Siren != ""),
		zap.Bool("has_iban", iban != ""),
	)

	return &dto.ExtractContractFieldsResponse{
		Success:     true,
		Prestataire: prestataire,
		Meta: &dto.ContractMeta{
			DocumentsProcessed: processed,
			Model:              model,
			Warning:            warning,
		},
	}
}
