package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

type createRequest struct {
	GameID string `json:"game_id"`
	Player string `json:"player"`
}

type errorResponse struct {
	Error string     `json:"error"`
	Round *RoundView `json:"round,omitempty"`
}

// NewRouter builds the HTTP handler for the hub.
func NewRouter(h *Hub, logger *log.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))

	r.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"rounds": h.Count(),
		})
	})

	v1 := r.Group("/v1")
	v1.GET("/rounds", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rounds": h.IDs()})
	})
	v1.POST("/rounds", func(c *gin.Context) {
		var req createRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
				return
			}
		}
		view, err := h.Create(req.GameID, req.Player)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, view)
	})
	v1.GET("/rounds/:id", func(c *gin.Context) {
		view, err := h.Get(c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	})
	v1.DELETE("/rounds/:id", func(c *gin.Context) {
		if err := h.Delete(c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
	v1.POST("/rounds/:id/start", func(c *gin.Context) {
		writeIntent(c, "round is not idle")(h.Start(c.Param("id")))
	})
	v1.POST("/rounds/:id/restart", func(c *gin.Context) {
		writeIntent(c, "round is busy")(h.Restart(c.Param("id")))
	})
	v1.POST("/rounds/:id/cards/:index", func(c *gin.Context) {
		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "card index must be an integer"})
			return
		}
		writeIntent(c, "card cannot be flipped now")(h.Select(c.Param("id"), index))
	})

	v1.GET("/scores/:game_id", func(c *gin.Context) {
		limit := 10
		if s := c.Query("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				c.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
				return
			}
			limit = n
		}
		results, err := h.TopScores(c.Param("game_id"), limit)
		if err != nil {
			writeError(c, err)
			return
		}
		out := make([]gin.H, 0, len(results))
		for i, r := range results {
			out = append(out, gin.H{
				"rank":        i + 1,
				"round_id":    r.RoundID,
				"player":      r.Player,
				"score":       r.Score,
				"moves":       r.Moves,
				"pairs":       r.Pairs,
				"duration_ms": r.Duration.Milliseconds(),
				"created_at":  r.CreatedAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{"game_id": c.Param("game_id"), "scores": out})
	})

	return r
}

// writeIntent answers an engine intent: 200 when accepted, 409 with the
// unchanged round when rejected.
func writeIntent(c *gin.Context, rejected string) func(RoundView, bool, error) {
	return func(view RoundView, ok bool, err error) {
		switch {
		case err != nil:
			writeError(c, err)
		case !ok:
			c.JSON(http.StatusConflict, errorResponse{Error: rejected, Round: &view})
		default:
			c.JSON(http.StatusOK, view)
		}
	}
}

func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrRoundNotFound):
		status = http.StatusNotFound
	case errors.Is(err, ErrUnknownGame):
		status = http.StatusBadRequest
	case errors.Is(err, ErrNoStore):
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, errorResponse{Error: err.Error()})
}

func requestLogger(logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if logger == nil {
			return
		}
		logger.Debug("http",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"took", time.Since(start),
		)
	}
}
