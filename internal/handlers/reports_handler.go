package handlers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/models"
	"taskboard/internal/pdf"
	"taskboard/internal/services"
)

type ReportHandler struct {
	service services.TaskService
	gen     pdf.Generator
}

func NewReportHandler(service services.TaskService, gen pdf.Generator) *ReportHandler {
	return &ReportHandler{service: service, gen: gen}
}

// GET /reports/tasks.pdf?status=&order=
func (h *ReportHandler) TasksPDF(c *gin.Context) {
	status, ascending, err := listQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report := BuildReport(h.service, status, ascending, time.Now())
	var buf bytes.Buffer
	if err := h.gen.Generate(&buf, report); err != nil {
		log.Printf("[report][pdf][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render report"})
		return
	}
	log.Printf("[report][pdf][ok] status=%q count=%d bytes=%d", status, len(report.Tasks), buf.Len())

	c.Header("Content-Disposition", `attachment; filename="tasks.pdf"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// BuildReport snapshots the board for rendering.
func BuildReport(svc services.TaskService, status models.TaskStatus, ascending bool, now time.Time) pdf.TaskReport {
	title := "All Tasks"
	if status != models.StatusAll {
		title = fmt.Sprintf("%s Tasks", status)
	}
	return pdf.TaskReport{
		Title:       title,
		Filter:      status,
		Ascending:   ascending,
		GeneratedAt: now,
		Stats:       svc.Stats(),
		Tasks:       svc.View(status, ascending),
	}
}
