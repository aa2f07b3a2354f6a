package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"

	"fleet-manager-backend/internal/mailer"
	"fleet-manager-backend/internal/maintenance"
	"fleet-manager-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store     store.Store
	monitor   *maintenance.Monitor
	mailer    mailer.Sender
	webpush   *webpush.Options
	reportDir string
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, monitor *maintenance.Monitor, m mailer.Sender, webpushOptions *webpush.Options, reportDir string) *Handler {
	return &Handler{
		store:     s,
		monitor:   monitor,
		mailer:    m,
		webpush:   webpushOptions,
		reportDir: reportDir,
	}
}

// respondError maps the store error taxonomy onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	var conflict *store.ConflictError
	var notFound *store.NotFoundError
	var invalid *store.ValidationError
	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &invalid):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

const dateLayout = "2006-01-02"

func parseDate(c *gin.Context, field, value string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid " + field + ": use YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}
