package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"taskhub/internal/domain"
	"taskhub/internal/logger"
	"taskhub/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	Auth  *service.AuthService
	Tasks *service.TaskService
}

func NewHandler(db *pgxpool.Pool, tokens *service.TokenService) *Handler {
	return &Handler{
		Auth:  service.NewAuthService(db, tokens),
		Tasks: service.NewTaskService(db),
	}
}

// respondError maps the error taxonomy onto stable status codes. Detail
// strings are non-contractual and never carry internal identifiers; an
// unrecognized error is logged and reported as a bare 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationDetail(err)})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
	case errors.Is(err, domain.ErrUnauthenticated):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "could not validate credentials"})
	default:
		logger.Error("request failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func validationDetail(err error) string {
	return strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
}

// taskResponse is the wire shape of a task: the integer id travels as a
// string, timestamps are RFC3339 UTC.
type taskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   bool       `json:"completed"`
	UserID      string     `json:"user_id"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	var due *time.Time
	if t.DueDate != nil {
		u := t.DueDate.UTC()
		due = &u
	}
	return taskResponse{
		ID:          strconv64(t.ID),
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		UserID:      t.UserID,
		DueDate:     due,
		Priority:    t.Priority,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
