package handlers

import (
	"net/http"
	"strconv"
	"time"

	"taskhub/internal/domain"
	"taskhub/internal/http/middleware"
	"taskhub/internal/service"

	"github.com/gin-gonic/gin"
)

type taskListResponse struct {
	Tasks  []taskResponse `json:"tasks"`
	Total  int64          `json:"total"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}

func (h *Handler) ListTasks(c *gin.Context) {
	session, ok := middleware.SessionAccount(c)
	if !ok {
		respondError(c, domain.ErrUnauthenticated)
		return
	}

	filter, err := parseListQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	tasks, total, err := h.Tasks.List(c.Request.Context(), session, c.Param("user_id"), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	c.JSON(http.StatusOK, taskListResponse{
		Tasks:  out,
		Total:  total,
		Offset: filter.Offset,
		Limit:  filter.Limit,
	})
}

type createTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Completed   *bool      `json:"completed"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *string    `json:"priority"`
}

func (h *Handler) CreateTask(c *gin.Context) {
	session, ok := middleware.SessionAccount(c)
	if !ok {
		respondError(c, domain.ErrUnauthenticated)
		return
	}

	var req createTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	completed := false
	if req.Completed != nil {
		completed = *req.Completed
	}

	params := service.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Completed:   completed,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
	}
	task, err := h.Tasks.Create(c.Request.Context(), session, c.Param("user_id"), params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTaskResponse(task))
}

func (h *Handler) GetTask(c *gin.Context) {
	session, ok := middleware.SessionAccount(c)
	if !ok {
		respondError(c, domain.ErrUnauthenticated)
		return
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	task, err := h.Tasks.Get(c.Request.Context(), session, c.Param("user_id"), taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task))
}

type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Completed   *bool      `json:"completed"`
	DueDate     *time.Time `json:"due_date"`
	Priority    *string    `json:"priority"`
}

func (h *Handler) UpdateTask(c *gin.Context) {
	session, ok := middleware.SessionAccount(c)
	if !ok {
		respondError(c, domain.ErrUnauthenticated)
		return
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req updateTaskRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
		return
	}

	update := domain.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
	}

	task, err := h.Tasks.Update(c.Request.Context(), session, c.Param("user_id"), taskID, update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (h *Handler) DeleteTask(c *gin.Context) {
	session, ok := middleware.SessionAccount(c)
	if !ok {
		respondError(c, domain.ErrUnauthenticated)
		return
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.Tasks.Delete(c.Request.Context(), session, c.Param("user_id"), taskID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type toggleCompleteRequest struct {
	Completed *bool `json:"completed"`
}

// CompleteTask sets the completion flag to the value in the body; despite
// the route name it is not a toggle.
func (h *Handler) CompleteTask(c *gin.Context) {
	session, ok := middleware.SessionAccount(c)
	if !ok {
		respondError(c, domain.ErrUnauthenticated)
		return
	}

	taskID, err := parseTaskID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req toggleCompleteRequest
	if err := c.BindJSON(&req); err != nil || req.Completed == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "completed field is required"})
		return
	}

	task, err := h.Tasks.SetCompleted(c.Request.Context(), session, c.Param("user_id"), taskID, *req.Completed)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task))
}

// parseTaskID converts the string id path segment to the storage key. A
// non-integer id is a validation error, deliberately distinct from the 404
// an unknown id produces.
func parseTaskID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, domain.Validationf("invalid task ID format")
	}
	return id, nil
}

func parseListQuery(c *gin.Context) (domain.TaskFilter, error) {
	f := domain.TaskFilter{Limit: 50, Offset: 0}

	if v := c.Query("completed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, domain.Validationf("completed must be a boolean")
		}
		f.Completed = &b
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			return f, domain.Validationf("limit must be between 1 and 100")
		}
		f.Limit = n
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, domain.Validationf("offset must be non-negative")
		}
		f.Offset = n
	}
	return f, nil
}

func strconv64(id int64) string {
	return strconv.FormatInt(id, 10)
}
