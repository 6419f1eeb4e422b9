package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookshelf/internal/database"
)

// HealthResponse reports service liveness plus shelf totals so a probe
// can tell an empty database apart from a broken one.
type HealthResponse struct {
	Status   string `json:"status"`
	Time     string `json:"time"`
	Version  string `json:"version,omitempty"`
	Database string `json:"database"`
	Books    int64  `json:"books"`
	Users    int64  `json:"users"`
}

type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	health := HealthResponse{
		Status:   "healthy",
		Time:     time.Now().Format(time.RFC3339),
		Version:  h.version,
		Database: "ok",
	}

	if h.db == nil {
		health.Database = "not configured"
	} else if err := h.ping(); err != nil {
		health.Status = "unhealthy"
		health.Database = "error: " + err.Error()
	} else {
		// Counts are informational; a failure here still means the
		// store is not answering queries.
		books, _, err := h.db.GetBookStats()
		if err == nil {
			health.Books = books
			health.Users, err = h.db.GetUserCount()
		}
		if err != nil {
			health.Status = "unhealthy"
			health.Database = "error: " + err.Error()
		}
	}

	statusCode := http.StatusOK
	if health.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

func (h *HealthController) ping() error {
	sqlDB, err := h.db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
