package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskboard/internal/models"
	"taskboard/internal/services"
)

// listQuery reads ?status= and ?order= shared by the list, completed and report endpoints.
func listQuery(c *gin.Context) (status models.TaskStatus, ascending bool, err error) {
	status = models.TaskStatus(c.DefaultQuery("status", string(models.StatusAll)))
	if !status.ValidFilter() {
		return "", false, fmt.Errorf("invalid status %q", status)
	}
	ascending, err = parseOrder(c.DefaultQuery("order", "asc"))
	return status, ascending, err
}

func parseOrder(v string) (bool, error) {
	switch strings.ToLower(v) {
	case "asc", "":
		return true, nil
	case "desc":
		return false, nil
	}
	return false, fmt.Errorf("invalid order %q (asc|desc)", v)
}

// respondStoreError maps store errors to HTTP responses. tag is the log prefix, e.g. "[task][create]".
func respondStoreError(c *gin.Context, tag string, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		log.Printf("%s[invalid] %v", tag, verr)
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, services.ErrSaveFailed):
		log.Printf("%s[err] %v", tag, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": services.ErrSaveFailed.Error()})
	default:
		log.Printf("%s[err] %v", tag, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
