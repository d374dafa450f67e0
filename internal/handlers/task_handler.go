package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/models"
	"taskboard/internal/services"
)

type TaskHandler struct {
	service services.TaskService
}

func NewTaskHandler(service services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req models.TaskInsert
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	log.Printf("[task][create] payload title=%q status=%q due=%q", req.Title, req.Status, req.DueDate)

	// validated here so the form gets field errors before the store is touched
	if err := req.Validate(); err != nil {
		respondStoreError(c, "[task][create]", err)
		return
	}

	task, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondStoreError(c, "[task][create]", err)
		return
	}
	log.Printf("[task][create][ok] id=%s title=%q", task.ID, task.Title)
	c.JSON(http.StatusCreated, task)
}

// GET /tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	id := c.Param("id")
	task, ok := h.service.Get(id)
	if !ok {
		log.Printf("[task][getByID][404] id=%s", id)
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// GET /tasks?status=All|Pending|In Progress|Completed&order=asc|desc
func (h *TaskHandler) List(c *gin.Context) {
	status, ascending, err := listQuery(c)
	if err != nil {
		log.Printf("[task][list][bad] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tasks := h.service.View(status, ascending)
	log.Printf("[task][list][ok] status=%q asc=%v count=%d", status, ascending, len(tasks))
	c.JSON(http.StatusOK, tasks)
}

// GET /tasks/completed?order=asc|desc
func (h *TaskHandler) Completed(c *gin.Context) {
	ascending, err := parseOrder(c.DefaultQuery("order", "asc"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.service.Completed(ascending))
}

// GET /tasks/stats
func (h *TaskHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Stats())
}

// PUT /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var req models.TaskUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		respondStoreError(c, "[task][update]", err)
		return
	}

	task, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondStoreError(c, "[task][update]", err)
		return
	}
	if task == nil {
		log.Printf("[task][update][404] id=%s", id)
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	log.Printf("[task][update][ok] id=%s status=%q", id, task.Status)
	c.JSON(http.StatusOK, task)
}

// DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	removed, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, "[task][delete]", err)
		return
	}
	if !removed {
		log.Printf("[task][delete][404] id=%s", id)
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	log.Printf("[task][delete][ok] id=%s", id)
	c.Status(http.StatusNoContent)
}

// POST /tasks/reload
func (h *TaskHandler) Reload(c *gin.Context) {
	res := h.service.Load(c.Request.Context())
	body := gin.H{"outcome": res.Outcome, "count": len(res.Tasks)}
	if res.Err != nil {
		body["warning"] = res.Err.Error()
	}
	c.JSON(http.StatusOK, body)
}

// GET /health
func (h *TaskHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "tasks": h.service.Stats().Total})
}
