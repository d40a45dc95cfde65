package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"quiz-api-service/internal/app"
	"quiz-api-service/internal/domain"
	"quiz-api-service/internal/infra/memory"
)

const testAdminKey = "secret-key"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	repo := memory.NewRepository()
	service := app.NewQuizService(repo, repo)
	return NewRouter(service, testAdminKey, log)
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any, adminKey string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if adminKey != "" {
		req.Header.Set(AdminKeyHeader, adminKey)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func quizDefinition() map[string]any {
	return map[string]any{
		"title": "T",
		"questions": []map[string]any{
			{
				"type": "single_choice",
				"text": "Q1",
				"options": []map[string]any{
					{"text": "A", "is_correct": true},
					{"text": "B", "is_correct": false},
				},
			},
		},
	}
}

func createQuiz(t *testing.T, router *gin.Engine) (quizID string, view domain.PublicQuiz) {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/quiz", quizDefinition(), testAdminKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("create status %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Message string `json:"message"`
		QuizID  string `json:"quiz_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.QuizID == "" || created.Message == "" {
		t.Fatalf("expected message and quiz_id, got %s", rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/quiz/"+created.QuizID, nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status %d: %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode quiz view: %v", err)
	}
	return created.QuizID, view
}

func TestCreateAndGetQuizPublicView(t *testing.T) {
	router := newTestRouter(t)
	_, view := createQuiz(t, router)

	if len(view.Questions) != 1 || len(view.Questions[0].Options) != 2 {
		t.Fatalf("expected 1 question with 2 options, got %+v", view.Questions)
	}

	rec := doJSON(t, router, http.MethodGet, "/quiz/"+view.ID, nil, "")
	if strings.Contains(rec.Body.String(), "is_correct") {
		t.Fatalf("public view leaks is_correct: %s", rec.Body.String())
	}
}

func TestSubmitCorrectAnswer(t *testing.T) {
	router := newTestRouter(t)
	quizID, view := createQuiz(t, router)

	rec := doJSON(t, router, http.MethodPost, "/quiz/"+quizID+"/submit", map[string]any{
		"answers": []map[string]any{
			{"question_id": view.Questions[0].ID, "selected_option_ids": []string{view.Questions[0].Options[0].ID}},
		},
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("submit status %d: %s", rec.Code, rec.Body.String())
	}

	var result domain.SubmissionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.TotalScore != 1 || result.MaxScore != 1 {
		t.Fatalf("expected 1/1, got %d/%d", result.TotalScore, result.MaxScore)
	}
	if len(result.PerQuestion) != 1 || !result.PerQuestion[0].Correct {
		t.Fatalf("expected correct per-question result, got %+v", result.PerQuestion)
	}
}

func TestSubmitWrongAnswerGetsFeedback(t *testing.T) {
	router := newTestRouter(t)
	quizID, view := createQuiz(t, router)

	rec := doJSON(t, router, http.MethodPost, "/quiz/"+quizID+"/submit", map[string]any{
		"answers": []map[string]any{
			{"question_id": view.Questions[0].ID, "selected_option_ids": []string{view.Questions[0].Options[1].ID}},
		},
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("submit status %d: %s", rec.Code, rec.Body.String())
	}

	var result domain.SubmissionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.TotalScore != 0 || result.PerQuestion[0].Correct {
		t.Fatalf("expected incorrect result, got %+v", result)
	}
	// Option A was created first, so it is the correct one.
	want := view.Questions[0].Options[0].ID
	if len(result.PerQuestion[0].CorrectOptionIDs) != 1 || result.PerQuestion[0].CorrectOptionIDs[0] != want {
		t.Fatalf("expected correct option %q revealed, got %v", want, result.PerQuestion[0].CorrectOptionIDs)
	}
}

func TestSubmitUnknownQuestionSkipped(t *testing.T) {
	router := newTestRouter(t)
	quizID, view := createQuiz(t, router)

	rec := doJSON(t, router, http.MethodPost, "/quiz/"+quizID+"/submit", map[string]any{
		"answers": []map[string]any{
			{"question_id": "not-a-question", "selected_option_ids": []string{view.Questions[0].Options[0].ID}},
		},
	}, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("submit status %d: %s", rec.Code, rec.Body.String())
	}

	var result domain.SubmissionResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.TotalScore != 0 || len(result.PerQuestion) != 0 {
		t.Fatalf("unknown question must be skipped, got %+v", result)
	}
}

func TestCreateQuizValidationFailure(t *testing.T) {
	router := newTestRouter(t)

	def := quizDefinition()
	def["questions"].([]map[string]any)[0]["options"] = []map[string]any{
		{"text": "A", "is_correct": true},
		{"text": "B", "is_correct": true},
	}
	rec := doJSON(t, router, http.MethodPost, "/quiz", def, testAdminKey)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(resp.Fields) == 0 {
		t.Fatalf("expected field-level detail, got %s", rec.Body.String())
	}
}

func TestAdminGate(t *testing.T) {
	router := newTestRouter(t)

	// Missing key.
	rec := doJSON(t, router, http.MethodPost, "/quiz", quizDefinition(), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", rec.Code)
	}

	// Wrong key.
	rec = doJSON(t, router, http.MethodPost, "/quiz", quizDefinition(), "wrong")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with wrong key, got %d", rec.Code)
	}
}

func TestAdminGateDisabledWithoutConfiguredKey(t *testing.T) {
	gin.SetMode(gin.TestMode)
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	repo := memory.NewRepository()
	router := NewRouter(app.NewQuizService(repo, repo), "", log)

	rec := doJSON(t, router, http.MethodPost, "/quiz", quizDefinition(), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 when no key is configured, got %d", rec.Code)
	}
}

func TestGetUnknownQuiz(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/quiz/ghost", nil, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSubmitUnknownQuiz(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/quiz/ghost/submit", map[string]any{
		"answers": []map[string]any{{"question_id": "q1", "selected_option_ids": []string{"a"}}},
	}, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListSubmissionsAdminOnly(t *testing.T) {
	router := newTestRouter(t)
	quizID, view := createQuiz(t, router)

	doJSON(t, router, http.MethodPost, "/quiz/"+quizID+"/submit", map[string]any{
		"answers": []map[string]any{
			{"question_id": view.Questions[0].ID, "selected_option_ids": []string{view.Questions[0].Options[0].ID}},
		},
	}, "")

	rec := doJSON(t, router, http.MethodGet, "/quiz/"+quizID+"/submissions", nil, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without admin key, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/quiz/"+quizID+"/submissions", nil, testAdminKey)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Submissions []domain.Submission `json:"submissions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Submissions) != 1 || resp.Submissions[0].Score != 1 {
		t.Fatalf("expected one stored submission with score 1, got %+v", resp.Submissions)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("expected liveness body, got %s", rec.Body.String())
	}
}
