package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"travelhealth/internal/config"
	"travelhealth/internal/model"
)

func newTestClient(handler http.Handler) (*HealthClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewHealthClient(&config.BackendConfig{BaseURL: server.URL, TimeoutMS: 5000})
	return client, server
}

func sampleRecord() *model.SubmissionRecord {
	return &model.SubmissionRecord{
		ID:          "sub-1",
		UserID:      "u1",
		Responses:   sampleResponses(),
		CompletedAt: time.Now(),
	}
}

func TestFlexFloatUnmarshal(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{`7.58`, 7.58, false},
		{`"7.58"`, 7.58, false},
		{`10`, 10, false},
		{`"0"`, 0, false},
		{`" 6.5 "`, 6.5, false},
		{`"8/10"`, 0, true},
		{`"not a score"`, 0, true},
		{`null`, 0, true},
	}
	for _, tc := range cases {
		var f flexFloat
		err := json.Unmarshal([]byte(tc.in), &f)
		if tc.wantErr {
			if err == nil {
				t.Errorf("Unmarshal(%s) = %v, want error", tc.in, float64(f))
			}
			continue
		}
		if err != nil {
			t.Errorf("Unmarshal(%s): %v", tc.in, err)
			continue
		}
		if float64(f) != tc.want {
			t.Errorf("Unmarshal(%s) = %v, want %v", tc.in, float64(f), tc.want)
		}
	}
}

func TestSummarizeSendsResponsesAndParsesSummary(t *testing.T) {
	var got submissionPayload
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != config.PathSummarize {
			t.Errorf("path = %q, want %q", r.URL.Path, config.PathSummarize)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Errorf("request body not valid JSON: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"summary": "generally healthy"})
	}))
	defer server.Close()

	summary, err := client.Summarize(context.Background(), sampleRecord())
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if summary != "generally healthy" {
		t.Errorf("summary = %q", summary)
	}
	if got.UserID != "u1" || len(got.Responses) != len(sampleResponses()) {
		t.Errorf("payload = %+v, want full response set for u1", got)
	}
}

func TestGeneralHealthScoreParsesStringScore(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Model output comes back verbatim, sometimes quoted.
		w.Write([]byte(`{"healthScore": "7.58"}`))
	}))
	defer server.Close()

	score, err := client.GeneralHealthScore(context.Background(), sampleRecord())
	if err != nil {
		t.Fatalf("GeneralHealthScore: %v", err)
	}
	if score != 7.58 {
		t.Errorf("score = %v, want 7.58", score)
	}
}

func TestTripEndpointsSendMultipartPayload(t *testing.T) {
	payload := &TripPayload{
		CurrentCity:     "Mumbai",
		DestinationCity: "London",
		Responses:       sampleResponses(),
		CurrentDiet:     "food,calories\ndal,120",
		DestinationDiet: "food,calories\nporridge,150",
	}

	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("request is not multipart: %v", err)
		}
		if got := r.FormValue("current_city"); got != "Mumbai" {
			t.Errorf("current_city = %q", got)
		}
		if got := r.FormValue("destination_city"); got != "London" {
			t.Errorf("destination_city = %q", got)
		}
		file, header, err := r.FormFile("responses")
		if err != nil {
			t.Errorf("missing file field %q: %v", "responses", err)
		} else {
			if header.Filename != "responses.json" {
				t.Errorf("responses filename = %q", header.Filename)
			}
			file.Close()
		}

		// The backend opens the diet parts as Excel workbooks.
		for _, field := range []string{"current_city_diet", "destination_city_diet"} {
			file, header, err := r.FormFile(field)
			if err != nil {
				t.Errorf("missing file field %q: %v", field, err)
				continue
			}
			if !strings.HasSuffix(header.Filename, "_diet.xlsx") {
				t.Errorf("%s filename = %q, want *_diet.xlsx", field, header.Filename)
			}
			wb, err := excelize.OpenReader(file)
			if err != nil {
				t.Errorf("%s is not a readable workbook: %v", field, err)
				file.Close()
				continue
			}
			rows, err := wb.GetRows("Sheet1")
			if err != nil || len(rows) < 2 {
				t.Errorf("%s workbook rows = %v (err %v), want header plus data", field, rows, err)
			}
			wb.Close()
			file.Close()
		}

		switch r.URL.Path {
		case config.PathTripAnalyze:
			json.NewEncoder(w).Encode(map[string]string{"analysis": "stay hydrated"})
		case config.PathTripScore:
			w.Write([]byte(`{"travelHealthScore": 8.25}`))
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	defer server.Close()

	analysis, err := client.AnalyzeTrip(context.Background(), payload)
	if err != nil {
		t.Fatalf("AnalyzeTrip: %v", err)
	}
	if analysis != "stay hydrated" {
		t.Errorf("analysis = %q", analysis)
	}

	score, err := client.TripScore(context.Background(), payload)
	if err != nil {
		t.Fatalf("TripScore: %v", err)
	}
	if score != 8.25 {
		t.Errorf("score = %v, want 8.25", score)
	}
}

func TestTranslateParsesFirstTranslation(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != config.PathTranslate {
			t.Errorf("path = %q, want %q", r.URL.Path, config.PathTranslate)
		}
		w.Write([]byte(`{"translations": [{"translatedText": "Hola"}]}`))
	}))
	defer server.Close()

	out, err := client.Translate(context.Background(), "Hello", "en", "es")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if out != "Hola" {
		t.Errorf("translation = %q, want Hola", out)
	}
}

func TestClientSurfacesBackendErrors(t *testing.T) {
	client, server := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	if _, err := client.Summarize(context.Background(), sampleRecord()); err == nil {
		t.Error("Summarize succeeded on a 500 response")
	}
	if _, err := client.GeneralHealthScore(context.Background(), sampleRecord()); err == nil {
		t.Error("GeneralHealthScore succeeded on a 500 response")
	}
	if _, err := client.TripScore(context.Background(), &TripPayload{}); err == nil {
		t.Error("TripScore succeeded on a 500 response")
	}
}
