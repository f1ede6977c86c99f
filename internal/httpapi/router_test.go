package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/kittyguard/harmreport/internal/chatlog"
)

const testAPIKey = "test-key"

type fakePublisher struct {
	published []string
}

func (f *fakePublisher) PublishJob(_ context.Context, jobID string) error {
	f.published = append(f.published, jobID)
	return nil
}

func newTestRouter(t *testing.T, threshold int) (*gin.Engine, *fakePublisher) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&chatlog.Entry{}, &chatlog.Job{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	pub := &fakePublisher{}
	svc := chatlog.NewService(chatlog.NewRepo(db), nil, pub, threshold, zap.NewNop())
	return NewRouter(svc, testAPIKey, zap.NewNop()), pub
}

func doJSON(r *gin.Engine, method, path, apiKey string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const ingestBody = `{
  "user_id": 7,
  "original_text": "바보라고 말했다",
  "processed_text": "문장 중 유해한 단어들: [바보]\n대체 제안 형식: '완곡한 표현'\n대체 문장: '조금 아쉽네요'"
}`

func TestPingIsOpen(t *testing.T) {
	r, _ := newTestRouter(t, 10)
	w := doJSON(r, http.MethodGet, "/ping", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("ping status = %d", w.Code)
	}
}

func TestAPIKeyRequired(t *testing.T) {
	r, _ := newTestRouter(t, 10)

	w := doJSON(r, http.MethodPost, "/process_chat_data", "", ingestBody)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing key status = %d", w.Code)
	}
	w = doJSON(r, http.MethodPost, "/process_chat_data", "wrong-key", ingestBody)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong key status = %d", w.Code)
	}
}

func TestProcessChatData(t *testing.T) {
	r, _ := newTestRouter(t, 10)

	w := doJSON(r, http.MethodPost, "/process_chat_data", testAPIKey, ingestBody)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}
	var resp struct {
		Code int `json:"code"`
		Data struct {
			EntryID uint64 `json:"entry_id"`
			Message string `json:"message"`
			JobID   string `json:"job_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code != 0 || resp.Data.EntryID == 0 {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Data.Message != "Chat data logged for user 7." || resp.Data.JobID != "" {
		t.Fatalf("below threshold should not trigger: %+v", resp.Data)
	}
}

func TestProcessChatDataTriggersJob(t *testing.T) {
	r, pub := newTestRouter(t, 2)

	doJSON(r, http.MethodPost, "/process_chat_data", testAPIKey, ingestBody)
	w := doJSON(r, http.MethodPost, "/process_chat_data", testAPIKey, ingestBody)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Data struct {
			Message string `json:"message"`
			JobID   string `json:"job_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(resp.Data.Message, "Report generation triggered.") {
		t.Fatalf("message = %q", resp.Data.Message)
	}
	if resp.Data.JobID == "" || len(pub.published) != 1 || pub.published[0] != resp.Data.JobID {
		t.Fatalf("job_id = %q, published = %v", resp.Data.JobID, pub.published)
	}

	// the queued job is queryable right away
	w = doJSON(r, http.MethodGet, "/jobs/"+resp.Data.JobID, testAPIKey, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get job status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"queued"`) {
		t.Fatalf("job body = %s", w.Body)
	}
}

func TestProcessChatDataRejectsBadBody(t *testing.T) {
	r, _ := newTestRouter(t, 10)
	w := doJSON(r, http.MethodPost, "/process_chat_data", testAPIKey, `{"user_id": 7}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestGetJobNotFound(t *testing.T) {
	r, _ := newTestRouter(t, 10)
	w := doJSON(r, http.MethodGet, "/jobs/does-not-exist", testAPIKey, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "40004") {
		t.Fatalf("body = %s", w.Body)
	}
}
