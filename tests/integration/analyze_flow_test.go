package integration

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/adapters/parser"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/cache"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/classifier"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/core/services"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/domain"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/pkg/config"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/server"
	"github.com/amiable-anand/Whatsapp-Chat-Analyzer/internal/server/usecase"
)

const chatExport = "15/12/2023, 10:30 - Alice: Good morning everyone! \U0001F60A\n" +
	"15/12/2023, 10:32 - Bob: <Media omitted>\n" +
	"15/12/2023, 10:35 - Alice: Morning! How is everyone doing?"

type reportStatusResponse struct {
	ReportID     string         `json:"report_id"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	Report       *domain.Report `json:"report,omitempty"`
}

func newServer(t *testing.T) *server.Server {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 8080
	cfg.Server.MaxUploadSizeMB = 1
	cfg.Server.ShutdownTimeoutSeconds = 5
	cfg.Processing.CacheTTLMinutes = 60
	cfg.Processing.ReportTTLHours = 1
	cfg.Classifier.Provider = config.ProviderRules
	cfg.Classifier.BatchSize = 100
	cfg.Classifier.ToxicityThreshold = 0.7
	cfg.Logging.Level = "info"
	require.NoError(t, cfg.Validate())

	sentiment := services.NewSentimentService(classifier.NewRuleSentiment(), cfg.Classifier.BatchSize)
	toxicity := services.NewToxicityService(nil, cfg.Classifier.ToxicityThreshold)

	uc := usecase.NewAnalyzeChatUseCase(cfg, parser.NewWhatsAppParser(), sentiment, toxicity, nil, cache.NewStore())

	srv, err := server.New(cfg, uc, server.NewReportStore())
	require.NoError(t, err)
	return srv
}

func uploadExport(t *testing.T, srv *server.Server, content string) string {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "chat.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["report_id"])
	return resp["report_id"]
}

func pollReport(t *testing.T, srv *server.Server, reportID string) reportStatusResponse {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/"+reportID+"/", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var resp reportStatusResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		if resp.Status == "completed" || resp.Status == "failed" {
			return resp
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("report never reached a terminal status")
	return reportStatusResponse{}
}

func TestAnalyzeFlow(t *testing.T) {
	srv := newServer(t)

	reportID := uploadExport(t, srv, chatExport)
	resp := pollReport(t, srv, reportID)

	require.Equal(t, "completed", resp.Status)
	require.NotNil(t, resp.Report)
	report := resp.Report

	t.Run("basic stats", func(t *testing.T) {
		assert.Equal(t, 3, report.BasicStats.TotalMessages)
		assert.Equal(t, 2, report.BasicStats.UniqueUsers)
		assert.Equal(t, 1, report.BasicStats.MediaMessages)
		assert.Equal(t, "2023-12-15 to 2023-12-15", report.BasicStats.DateRange)
	})

	t.Run("user ranking", func(t *testing.T) {
		require.Len(t, report.UserStats.ActiveUsers, 2)
		assert.Equal(t, "Alice", report.UserStats.ActiveUsers[0].User)
		assert.Equal(t, 2, report.UserStats.ActiveUsers[0].MessageCount)
		assert.Equal(t, "Bob", report.UserStats.ActiveUsers[1].User)
		assert.Equal(t, 1, report.UserStats.ActiveUsers[1].MessageCount)
	})

	t.Run("trending words exclude stop words", func(t *testing.T) {
		trending := map[string]int{}
		for _, word := range report.KeywordStats.TrendingWords {
			trending[word.Word] = word.Count
		}
		assert.Equal(t, 2, trending["morning"])
		assert.Equal(t, 2, trending["everyone"])
		assert.NotContains(t, trending, "good")
		assert.NotContains(t, trending, "hello")
	})

	t.Run("emoji usage", func(t *testing.T) {
		assert.Equal(t, 1, report.EmojiStats.TotalEmojis)
		assert.Equal(t, 1, report.EmojiStats.UniqueEmojis)
		require.Len(t, report.EmojiStats.TopEmojis, 1)
		assert.Equal(t, "\U0001F60A", report.EmojiStats.TopEmojis[0].Emoji)
	})

	t.Run("chart series", func(t *testing.T) {
		assert.Equal(t, map[string]int{"text": 2, "media": 1}, report.Charts.MessageTypes)
		assert.Equal(t, 3, report.Charts.HourlyActivity[10])
	})

	t.Run("stats endpoint", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/"+reportID+"/stats", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var stats domain.BasicStats
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
		assert.Equal(t, 3, stats.TotalMessages)
	})

	t.Run("csv export endpoint", func(t *testing.T) {
		rec := httptest.NewRecorder()
		srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/reports/"+reportID+"/export/csv", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Type,Key,Value")
		assert.Contains(t, rec.Body.String(), "Keyword,morning,2")
	})
}

func TestAnalyzeFlow_IndependentRuns(t *testing.T) {
	srv := newServer(t)

	firstID := uploadExport(t, srv, chatExport)
	secondID := uploadExport(t, srv, "16/12/2023, 09:00 - Carol: totally different conversation today")

	first := pollReport(t, srv, firstID)
	second := pollReport(t, srv, secondID)

	require.Equal(t, "completed", first.Status)
	require.Equal(t, "completed", second.Status)

	assert.NotEqual(t, firstID, secondID)
	assert.Equal(t, 3, first.Report.BasicStats.TotalMessages)
	assert.Equal(t, 1, second.Report.BasicStats.TotalMessages)
	assert.Equal(t, "Carol", second.Report.UserStats.ActiveUsers[0].User)
}

func TestAnalyzeFlow_UnparseableExport(t *testing.T) {
	srv := newServer(t)

	reportID := uploadExport(t, srv, "this file has no message headers at all")
	resp := pollReport(t, srv, reportID)

	assert.Equal(t, "failed", resp.Status)
	assert.NotEmpty(t, resp.ErrorMessage)
	assert.Nil(t, resp.Report)
}
