package service

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"formadoc/internal/dto"
	"formadoc/internal/extract"
	"formadoc/pkg/metrics"

	"go.uber.org/zap"
)

// cvAnalyzer is the AI extraction path for CVs; nil when the LLM is not
// configured, in which case the regex pass alone answers.
type cvAnalyzer interface {
	AnalyzeCV(ctx context.Context, text string) (*CVExtraction, error)
}

// CVService extracts trainer identity, contacts and skills from a CV. The
// regex pass always runs so an AI outage never loses email and phone.
type CVService struct {
	extractor textExtractor
	llm       cvAnalyzer
	metrics   *metrics.Metrics
	service   string
	logger    *zap.Logger
}

func NewCVService(extractor textExtractor, llm cvAnalyzer, m *metrics.Metrics, service string, logger *zap.Logger) *CVService {
	return &CVService{
		extractor: extractor,
		llm:       llm,
		metrics:   m,
		service:   service,
		logger:    logger,
	}
}

const maxSkills = 20

// Skill vocabulary of the training domains the platform onboards for.
var skillKeywords = []string{
	"cybersecurite", "cybersécurité", "securite", "sécurité", "pentest", "ethical hacking",
	"soc", "siem", "firewall", "ids", "ips", "vulnerability", "iso27001",

	"linux", "unix", "windows server", "active directory", "vmware", "docker", "kubernetes",

	"reseau", "réseau", "cisco", "juniper", "tcp/ip", "vpn", "lan", "wan", "vlan",

	"python", "java", "javascript", "c++", "php", "ruby", "go", "rust",
	"react", "angular", "vue", "node.js", "django", "flask",

	"sql", "mysql", "postgresql", "mongodb", "nosql", "big data", "hadoop", "spark",

	"aws", "azure", "gcp", "cloud computing", "devops", "terraform", "ansible",

	"formation", "formateur", "pedagogie", "pédagogie", "enseignement", "coaching",

	"agile", "scrum", "kanban", "jira", "confluence", "git", "gitlab", "github",
}

func (s *CVService) AnalyzeCV(ctx context.Context, req *dto.AnalyzeCVRequest) *dto.AnalyzeCVResponse {
	data, err := DecodeBase64Payload(req.FileBase64)
	if err != nil {
		return &dto.AnalyzeCVResponse{Success: false, Error: "fileBase64 invalide"}
	}

	text, _, err := s.extractor.ExtractFromBytes(ctx, data)
	if err != nil {
		s.logger.Warn("CV text extraction failed", zap.Error(err))
	}
	text = extract.Normalize(text)

	regexEmail := extract.Email(text)
	regexPhone := extract.Phone(text)
	regexSkills := SkillsFromText(text)

	textLen := utf8.RuneCountInString(text)
	if textLen < 80 {
		return &dto.AnalyzeCVResponse{
			Success: true,
			Data: &dto.CVData{
				Email:     regexEmail,
				Telephone: regexPhone,
				Skills:    []string{},
				SkillsRaw: "",
			},
			Meta: &dto.CVMeta{TextLength: textLen},
		}
	}

	var ai *CVExtraction
	model := "none"
	if s.llm != nil {
		extracted, err := s.llm.AnalyzeCV(ctx, text)
		s.metrics.RecordLLM(s.service, "analyze_cv", err)
		if err != nil {
			s.logger.Warn("AI CV analysis failed, keeping regex fields", zap.Error(err))
		} else {
			ai = extracted
			model = "GigaChat"
		}
	}
	if ai == nil {
		ai = &CVExtraction{}
	}

	// AI skills first, regex finds fill in behind them.
	skills := mergeSkills(normalizeSkills(ai.Skills), regexSkills)
	if len(skills) > maxSkills {
		skills = skills[:maxSkills]
	}

	email := cleanEmail(ai.Email)
	if email == "" {
		email = regexEmail
	}
	phone := cleanPhone(ai.Telephone)
	if phone == "" {
		phone = regexPhone
	}

	resp := &dto.AnalyzeCVResponse{
		Success: true,
		Data: &dto.CVData{
			Nom:       strings.TrimSpace(ai.Nom),
			Prenom:    strings.TrimSpace(ai.Prenom),
			Email:     email,
			Telephone: phone,
			Adresse:   strings.TrimSpace(ai.Adresse),
			Skills:    skills,
			SkillsRaw: strings.Join(skills, ", "),
		},
		Meta: &dto.CVMeta{
			TextLength:  textLen,
			Model:       model,
			SkillsFound: len(skills),
		},
	}

	s.logger.Info("CV analyzed",
		zap.Int("text_length", textLen),
		zap.Int("skills", len(skills)),
	)

	return resp
}

// SkillsFromText matches the skill vocabulary against CV text, normalized and
// deduplicated.
func SkillsFromText(text string) []string {
	textLower := strings.ToLower(text)

	var found []string
	seen := make(map[string]bool)
	for _, skill := range skillKeywords {
		if strings.Contains(textLower, strings.ToLower(skill)) {
			normalized := normalizeSkill(skill)
			if normalized != "" && !seen[normalized] {
				seen[normalized] = true
				found = append(found, normalized)
			}
		}
	}
	return found
}

var skillCharRe = regexp.MustCompile(`[^a-z0-9+#.\s-]`)

func normalizeSkill(skill string) string {
	s := strings.ToLower(skill)
	s = extract.StripDiacritics(s)
	s = skillCharRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

func normalizeSkills(skills []string) []string {
	var out []string
	for _, skill := range skills {
		if normalized := normalizeSkill(skill); normalized != "" {
			out = append(out, normalized)
		}
	}
	return out
}

func mergeSkills(primary, secondary []string) []string {
	seen := make(map[string]bool)
	merged := []string{}
	for _, list := range [][]string{primary, secondary} {
		for _, skill := range list {
			if !seen[skill] {
				seen[skill] = true
				merged = append(merged, skill)
			}
		}
	}
	return merged
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[a-zA-Z]{2,}$`)

func cleanEmail(v string) string {
	v = strings.TrimSpace(v)
	if emailRe.MatchString(v) {
		return v
	}
	return ""
}

func cleanPhone(v string) string {
	v = strings.TrimSpace(v)
	digits := 0
	for _, r := range v {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits >= 8 {
		return v
	}
	return ""
}
