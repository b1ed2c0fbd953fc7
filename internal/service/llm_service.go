package service

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"formadoc/internal/extract"
	"formadoc/pkg/config"

	"github.com/Role1776/gigago"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LLMService wraps the GigaChat API for structured field extraction from
// administrative documents and CVs, plus vision transcription of scans the
// OCR engines could not read.
type LLMService struct {
	client      *gigago.Client
	model       *gigago.GenerativeModel
	config      *config.GigaChatConfig
	logger      *zap.Logger
	httpClient  *http.Client
	baseURL     string
	accessToken string
}

func buildSystemInstruction() string {
	return `Tu es un extracteur d'informations de documents administratifs francais (KBIS, attestations URSSAF, attestations fiscales, assurances, casiers judiciaires, RIB, CV).

Regles:
- Tu reponds UNIQUEMENT en JSON valide, sans aucun texte autour, sans markdown.
- Si une information est absente du document, tu renvoies une chaine vide "".
- Tu n'inventes JAMAIS de valeurs : chaque champ extrait doit etre present dans le texte fourni.
- siren = 9 chiffres, siret = 14 chiffres, dates au format JJ-MM-AAAA.
- denomination = raison sociale telle qu'elle apparait dans le document.
- adresse = rue + code postal + ville si present.`
}

func NewLLMService(cfg *config.GigaChatConfig, logger *zap.Logger) (*LLMService, error) {
	ctx := context.Background()

	opts := []gigago.Option{
		gigago.WithCustomScope(cfg.Scope),
	}
	if cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, cfg.APIKey, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel("GigaChat")
	model.SystemInstruction = buildSystemInstruction()
	model.Temperature = 0.1

	httpClient := &http.Client{}
	if cfg.InsecureSkipVerify {
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	// Access token is needed for file uploads and the vision endpoint.
	accessToken, err := getAccessToken(ctx, cfg, httpClient, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to get access token: %w", err)
	}

	return &LLMService{
		client:      client,
		model:       model,
		config:      cfg,
		logger:      logger,
		httpClient:  httpClient,
		accessToken: accessToken,
		baseURL:     "https://gigachat.devices.sberbank.ru/api/v1",
	}, nil
}

// getAccessToken obtains an OAuth access token for direct REST calls.
// The API key is expected to be Base64-encoded already.
func getAccessToken(ctx context.Context, cfg *config.GigaChatConfig, httpClient *http.Client, logger *zap.Logger) (string, error) {
	oauthURL := "https://ngw.devices.sberbank.ru:9443/api/v2/oauth"

	formData := url.Values{}
	formData.Set("scope", cfg.Scope)

	req, err := http.NewRequestWithContext(ctx, "POST", oauthURL, strings.NewReader(formData.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create OAuth request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("RqUID", uuid.New().String())
	req.Header.Set("Authorization", "Basic "+cfg.APIKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to get access token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		logger.Error("OAuth request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("response", string(bodyBytes)),
		)
		return "", fmt.Errorf("OAuth failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var oauthResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&oauthResp); err != nil {
		return "", fmt.Errorf("failed to decode OAuth response: %w", err)
	}
	if oauthResp.AccessToken == "" {
		return "", fmt.Errorf("empty access token in OAuth response")
	}

	logger.Info("Access token obtained", zap.Int("expires_in", oauthResp.ExpiresIn))
	return oauthResp.AccessToken, nil
}

// ExtractCompanyFields asks the model for the contract-relevant company
// fields found in a document's text. Input is capped so a long KBIS does not
// blow the context window.
func (s *LLMService) ExtractCompanyFields(ctx context.Context, docType, text string) (*extract.CompanyFields, error) {
	text = strings.TrimSpace(text)
	if len(text) < 10 {
		return &extract.CompanyFields{}, nil
	}
	if len(text) > 9000 {
		text = text[:9000]
	}

	prompt := fmt.Sprintf(`Type de document: %s

Extrait les informations de ce document et renvoie UNIQUEMENT ce JSON:
{
  "siren": "",
  "siret": "",
  "rcs": "",
  "denomination": "",
  "adresse": "",
  "date_emission": "",
  "date_expiration": ""
}

Texte du document:
%s`, docType, text)

	content, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var fields extract.CompanyFields
	if err := unmarshalModelJSON(content, &fields); err != nil {
		return nil, fmt.Errorf("failed to parse company fields: %w, content: %s", err, content)
	}

	s.logger.Info("Company fields extracted via LLM",
		zap.String("doc_type", docType),
		zap.Bool("has_siren", fields.Siren != ""),
	)

	return &fields, nil
}

// CVExtraction is the model's answer for a CV, before merging with the
// regex-extracted contacts.
type CVExtraction struct {
	Nom       string   `json:"nom"`
	Prenom    string   `json:"prenom"`
	Email     string   `json:"email"`
	Telephone string   `json:"telephone"`
	Adresse   string   `json:"adresse"`
	Skills    []string `json:"skills"`
}

// AnalyzeCV extracts identity, contacts and skills from CV text.
func (s *LLMService) AnalyzeCV(ctx context.Context, text string) (*CVExtraction, error) {
	text = strings.TrimSpace(text)
	if len(text) < 10 {
		return &CVExtraction{}, nil
	}
	if len(text) > 9000 {
		text = text[:9000]
	}

	prompt := fmt.Sprintf(`Extrait les informations de ce CV et renvoie UNIQUEMENT ce JSON:
{
  "nom": "",
  "prenom": "",
  "email": "",
  "telephone": "",
  "adresse": "",
  "skills": []
}

Contraintes:
- "email" = une seule adresse
- "telephone" = un seul numero
- "adresse" doit inclure rue + code postal + ville si present
- "skills" = tableau de competences techniques/metiers (ex: ["cybersecurite","linux","python","formation"])

Texte du CV:
%s`, text)

	content, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var cv CVExtraction
	if err := unmarshalModelJSON(content, &cv); err != nil {
		return nil, fmt.Errorf("failed to parse CV extraction: %w, content: %s", err, content)
	}

	s.logger.Info("CV analyzed via LLM", zap.Int("skills", len(cv.Skills)))
	return &cv, nil
}

func (s *LLMService) generate(ctx context.Context, prompt string) (string, error) {
	messages := []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	}

	resp, err := s.model.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from LLM")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// unmarshalModelJSON tolerates markdown fences and prose around the JSON
// object: it first tries a direct parse, then the outermost brace slice.
func unmarshalModelJSON(content string, v any) error {
	trimmed := strings.TrimSpace(content)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	if err := json.Unmarshal([]byte(trimmed), v); err == nil {
		return nil
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return fmt.Errorf("no JSON object in model output")
	}
	return json.Unmarshal([]byte(trimmed[start:end+1]), v)
}

// UploadFile uploads a document to GigaChat and returns the file ID used by
// vision requests.
func (s *LLMService) UploadFile(ctx context.Context, fileReader io.Reader, fileName string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	// "general" purpose allows the file in subsequent generation requests.
	if err := writer.WriteField("purpose", "general"); err != nil {
		return "", fmt.Errorf("failed to write purpose field: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		switch ext {
		case ".pdf":
			mimeType = "application/pdf"
		case ".png":
			mimeType = "image/png"
		default:
			mimeType = "image/jpeg"
		}
	}

	part, err := writer.CreatePart(map[string][]string{
		"Content-Type":        {mimeType},
		"Content-Disposition": {fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName)},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, fileReader); err != nil {
		return "", fmt.Errorf("failed to copy file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/files", &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var uploadResp struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	s.logger.Info("File uploaded to GigaChat", zap.String("file_id", uploadResp.ID))
	return uploadResp.ID, nil
}

// TranscribeImage reads all visible text from a scanned document photo. It is
// the last extraction resort after OCR.space and tesseract.
func (s *LLMService) TranscribeImage(ctx context.Context, imageBytes []byte, fileName string) (string, error) {
	fileID, err := s.UploadFile(ctx, bytes.NewReader(imageBytes), fileName)
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	prompt := `Lis tout le texte visible sur ce document administratif francais (carte d'identite, attestation, extrait KBIS...).
Recopie les lignes avec leurs libelles (Nom/Surname, Prenoms/Given names, Date d'expiration/Expiry date, SIREN, SIRET...).
Renvoie uniquement le texte lu, sans commentaire. Si le texte est illisible, renvoie une chaine vide.`

	return s.transcribeViaVisionAPI(ctx, fileID, prompt)
}

func (s *LLMService) transcribeViaVisionAPI(ctx context.Context, fileID, prompt string) (string, error) {
	// Attachments format per GigaChat docs: [["file_id"]].
	requestBody := map[string]interface{}{
		"model": "GigaChat",
		"messages": []map[string]interface{}{
			{
				"role":        "user",
				"content":     prompt,
				"attachments": [][]string{{fileID}},
			},
		},
		"temperature": 0.1,
		"stream":      false,
	}

	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("vision API failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var visionResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&visionResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(visionResp.Choices) == 0 {
		return "", fmt.Errorf("no response from Vision API")
	}

	text := strings.TrimSpace(visionResp.Choices[0].Message.Content)

	// The model sometimes answers with a refusal instead of a transcription.
	textLower := strings.ToLower(text)
	errorPhrases := []string{
		"je ne peux pas",
		"je n'arrive pas",
		"fournissez le contenu",
		"cannot help",
		"cannot process",
		"please provide",
	}
	for _, phrase := range errorPhrases {
		if strings.Contains(textLower, phrase) {
			s.logger.Warn("Vision model returned refusal instead of transcription",
				zap.String("message", text),
			)
			return "", fmt.Errorf("model returned error message: %s", text)
		}
	}

	s.logger.Info("Text transcribed via GigaChat Vision", zap.Int("text_length", len(text)))
	return text, nil
}

func (s *LLMService) Close() error {
	if s.client != nil {
		s.client.Close()
	}
	return nil
}
