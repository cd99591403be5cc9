package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ai-growth-planner/internal/app"
	"ai-growth-planner/internal/logger"
	"ai-growth-planner/internal/plan"
)

// Handler holds the handler dependencies.
type Handler struct {
	app *app.App
	log *logger.Logger
}

// generateRequest is the flat generation payload: the idea plus the optional
// business-context fields.
type generateRequest struct {
	Idea           string `json:"idea"`
	Customer       string `json:"customer"`
	Offer          string `json:"offer"`
	Differentiator string `json:"differentiator"`
	Price          string `json:"price"`
	Geography      string `json:"geography"`
	Goal           string `json:"goal"`
	Notes          string `json:"notes"`
}

func (r generateRequest) inputs() plan.Inputs {
	return plan.Inputs{
		Customer:       strings.TrimSpace(r.Customer),
		Offer:          strings.TrimSpace(r.Offer),
		Differentiator: strings.TrimSpace(r.Differentiator),
		Price:          strings.TrimSpace(r.Price),
		Geography:      strings.TrimSpace(r.Geography),
		Goal:           strings.TrimSpace(r.Goal),
		Notes:          strings.TrimSpace(r.Notes),
	}
}

// GET /healthcheck
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// POST /api/plan
func (h *Handler) GeneratePlan(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	p, err := h.app.GeneratePlan(c.Request.Context(), req.Idea, req.inputs())
	if err != nil {
		if errors.Is(err, app.ErrEmptyIdea) {
			c.JSON(http.StatusBadRequest, gin.H{"error": app.ErrEmptyIdea.Error()})
			return
		}
		h.log.Error("plan generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, p)
}

// GET /api/plan
func (h *Handler) GetPlan(c *gin.Context) {
	p, err := h.app.LatestPlan()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": app.ErrNoPlan.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /api/plan
func (h *Handler) DeletePlan(c *gin.Context) {
	if err := h.app.ClearPlan(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

// GET /api/calendar
func (h *Handler) GetCalendar(c *gin.Context) {
	days, checklist := h.app.Calendar()
	c.JSON(http.StatusOK, gin.H{
		"days":     days,
		"identity": checklist.Identity(),
		"checks":   checklist.Map(),
	})
}

type toggleRequest struct {
	Day  int `json:"day"`
	Task int `json:"task"`
}

// POST /api/checks/toggle
func (h *Handler) ToggleCheck(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	done, err := h.app.ToggleCheck(req.Day, req.Task)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"day": req.Day, "task": req.Task, "done": done})
}

// POST /api/checks/reset
func (h *Handler) ResetChecks(c *gin.Context) {
	if err := h.app.ResetChecks(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reset": true})
}

// GET /api/export/plan
func (h *Handler) ExportPlan(c *gin.Context) {
	text, err := h.app.ExportPlanText()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": app.ErrNoPlan.Error()})
		return
	}
	c.String(http.StatusOK, text)
}

// GET /api/export/calendar
func (h *Handler) ExportCalendar(c *gin.Context) {
	c.String(http.StatusOK, h.app.ExportCalendarText())
}

type clipRequest struct {
	URL string `json:"url"`
}

// POST /api/clip
func (h *Handler) ClipURL(c *gin.Context) {
	var req clipRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.URL) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	brief, err := h.app.ClipURL(c.Request.Context(), strings.TrimSpace(req.URL))
	if err != nil {
		h.log.Error("clip failed", "url", req.URL, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, brief)
}
