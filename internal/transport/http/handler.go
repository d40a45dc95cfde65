package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"quiz-api-service/internal/app"
	"quiz-api-service/internal/domain"
)

// Handler exposes the quiz use cases over REST.
type Handler struct {
	service *app.QuizService
	log     *logrus.Logger
}

func NewHandler(service *app.QuizService, log *logrus.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// NewRouter wires the REST routes. Quiz creation and submission review sit
// behind the admin gate.
func NewRouter(service *app.QuizService, adminKey string, log *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log))

	h := NewHandler(service, log)
	router.GET("/", h.Health)
	router.GET("/quiz/:quiz_id", h.GetQuiz)
	router.POST("/quiz/:quiz_id/submit", h.SubmitQuiz)

	admin := router.Group("/", AdminAuth(adminKey))
	admin.POST("/quiz", h.CreateQuiz)
	admin.GET("/quiz/:quiz_id/submissions", h.ListSubmissions)

	return router
}

// ErrorResponse is the JSON error envelope. Fields carries validation detail.
type ErrorResponse struct {
	Error  string              `json:"error"`
	Fields []domain.FieldError `json:"fields,omitempty"`
}

type createQuizResponse struct {
	Message string `json:"message"`
	QuizID  string `json:"quiz_id"`
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) CreateQuiz(c *gin.Context) {
	var input app.QuizInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	quiz, err := h.service.CreateQuiz(c.Request.Context(), input)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, createQuizResponse{
		Message: "Quiz created successfully",
		QuizID:  quiz.ID,
	})
}

func (h *Handler) GetQuiz(c *gin.Context) {
	view, err := h.service.GetPublicQuiz(c.Request.Context(), c.Param("quiz_id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *Handler) SubmitQuiz(c *gin.Context) {
	var input app.SubmissionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	result, err := h.service.SubmitQuiz(c.Request.Context(), c.Param("quiz_id"), input)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) ListSubmissions(c *gin.Context) {
	submissions, err := h.service.ListSubmissions(c.Request.Context(), c.Param("quiz_id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"submissions": submissions})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	if verr, ok := domain.AsValidationError(err); ok {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:  "validation failed",
			Fields: verr.Fields,
		})
		return
	}
	if errors.Is(err, domain.ErrQuizNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "quiz not found"})
		return
	}
	h.log.WithError(err).Error("request failed")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
