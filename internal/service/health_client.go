package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"travelhealth/internal/config"
	"travelhealth/internal/model"
)

// HealthClient wraps the AI analysis backend. Every call carries a bounded
// timeout; a non-2xx status or transport failure surfaces as an error the
// caller treats as a recoverable network fault.
type HealthClient struct {
	config     *config.BackendConfig
	httpClient *http.Client
}

// NewHealthClient creates a new backend client
func NewHealthClient(cfg *config.BackendConfig) *HealthClient {
	if cfg == nil {
		cfg = config.DefaultBackendConfig()
	}
	return &HealthClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// flexFloat accepts a JSON number or a numeric string. The backend returns
// model output verbatim, so "7.58" and 7.58 are both valid.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("invalid numeric value %q: %w", s, err)
	}
	*f = flexFloat(v)
	return nil
}

type submissionPayload struct {
	Responses   []model.AnsweredQuestion `json:"responses"`
	UserID      string                   `json:"userId"`
	CompletedAt time.Time                `json:"completedAt"`
}

// Summarize requests a narrative summary for a completed submission
func (c *HealthClient) Summarize(ctx context.Context, record *model.SubmissionRecord) (string, error) {
	payload := submissionPayload{
		Responses:   record.Responses,
		UserID:      record.UserID,
		CompletedAt: record.CompletedAt,
	}

	body, err := c.postJSON(ctx, config.PathSummarize, payload)
	if err != nil {
		return "", err
	}

	var resp struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse summarize response: %w", err)
	}
	return resp.Summary, nil
}

// GeneralHealthScore requests the 0-10 health score for a completed submission
func (c *HealthClient) GeneralHealthScore(ctx context.Context, record *model.SubmissionRecord) (float64, error) {
	payload := submissionPayload{
		Responses:   record.Responses,
		UserID:      record.UserID,
		CompletedAt: record.CompletedAt,
	}

	body, err := c.postJSON(ctx, config.PathHealthScore, payload)
	if err != nil {
		return 0, err
	}

	var resp struct {
		HealthScore flexFloat `json:"healthScore"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("failed to parse health score response: %w", err)
	}
	return float64(resp.HealthScore), nil
}

// Translate translates display text into the target language
func (c *HealthClient) Translate(ctx context.Context, text, from, to string) (string, error) {
	payload := map[string]interface{}{
		"text": text,
		"from": from,
		"to":   []string{to},
	}

	body, err := c.postJSON(ctx, config.PathTranslate, payload)
	if err != nil {
		return "", err
	}

	var resp struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse translate response: %w", err)
	}
	if len(resp.Translations) == 0 {
		return "", fmt.Errorf("empty translation response")
	}
	return resp.Translations[0].TranslatedText, nil
}

// TripPayload is the multipart payload shared by the trip analysis and trip
// score endpoints: the city pair, the user's flattened responses, and the
// reference diet datasets for both cities.
type TripPayload struct {
	CurrentCity     string
	DestinationCity string
	Responses       []model.AnsweredQuestion
	CurrentDiet     string
	DestinationDiet string
}

// AnalyzeTrip requests the narrative travel-health analysis
func (c *HealthClient) AnalyzeTrip(ctx context.Context, p *TripPayload) (string, error) {
	body, err := c.postMultipart(ctx, config.PathTripAnalyze, p)
	if err != nil {
		return "", err
	}

	var resp struct {
		Analysis string `json:"analysis"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse analysis response: %w", err)
	}
	return resp.Analysis, nil
}

// TripScore requests the numeric travel health score
func (c *HealthClient) TripScore(ctx context.Context, p *TripPayload) (float64, error) {
	body, err := c.postMultipart(ctx, config.PathTripScore, p)
	if err != nil {
		return 0, err
	}

	var resp struct {
		TravelHealthScore flexFloat `json:"travelHealthScore"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("failed to parse trip score response: %w", err)
	}
	return float64(resp.TravelHealthScore), nil
}

func (c *HealthClient) postJSON(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.config.Endpoint(path), bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, path)
}

// dietWorkbook converts a CSV diet dataset into xlsx bytes. The analysis
// backend parses the uploaded diet parts as Excel workbooks, so the text
// stored in Mongo is converted at the transport edge.
func dietWorkbook(csvText string) ([]byte, error) {
	records, err := csv.NewReader(strings.NewReader(csvText)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid diet dataset: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, record := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow("Sheet1", cell, &record); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (c *HealthClient) postMultipart(ctx context.Context, path string, p *TripPayload) ([]byte, error) {
	responsesJSON, err := json.Marshal(p.Responses)
	if err != nil {
		return nil, err
	}
	currentDiet, err := dietWorkbook(p.CurrentDiet)
	if err != nil {
		return nil, err
	}
	destinationDiet, err := dietWorkbook(p.DestinationDiet)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("current_city", p.CurrentCity); err != nil {
		return nil, err
	}
	if err := w.WriteField("destination_city", p.DestinationCity); err != nil {
		return nil, err
	}

	files := []struct {
		field, name string
		content     []byte
	}{
		{"responses", "responses.json", responsesJSON},
		{"current_city_diet", p.CurrentCity + "_diet.xlsx", currentDiet},
		{"destination_city_diet", p.DestinationCity + "_diet.xlsx", destinationDiet},
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(f.content); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.config.Endpoint(path), &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(req, path)
}

func (c *HealthClient) do(req *http.Request, path string) ([]byte, error) {
	log.Printf("[Health Client] POST %s", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[Health Client] ERROR: request failed for %s: %v", path, err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[Health Client] ERROR: failed to read response body: %v", err)
		return nil, err
	}

	if resp.StatusCode >= 400 {
		log.Printf("[Health Client] ERROR: backend returned %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("backend error %d on %s", resp.StatusCode, path)
	}

	log.Printf("[Health Client] SUCCESS: %s (%d bytes)", path, len(body))
	return body, nil
}
