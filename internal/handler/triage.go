package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"triage-backend/internal/models"
	"triage-backend/internal/pipeline"
	"triage-backend/internal/repository"
)

type TriageHandler interface {
	Analyze(c *gin.Context)
	SyncBatch(c *gin.Context)
	GetVisit(c *gin.Context)
	GetUnsyncedVisits(c *gin.Context)
	MarkVisitSynced(c *gin.Context)
}

type triageHandler struct {
	controller *pipeline.Controller
	visitRepo  repository.VisitRepository
	logger     *zap.Logger
}

func NewTriageHandler(controller *pipeline.Controller, visitRepo repository.VisitRepository, logger *zap.Logger) TriageHandler {
	return &triageHandler{
		controller: controller,
		visitRepo:  visitRepo,
		logger:     logger,
	}
}

// AnalyzeResponse is the payload returned for one triage run.
type AnalyzeResponse struct {
	VisitID          string                                      `json:"visit_id"`
	Timestamp        time.Time                                   `json:"timestamp"`
	RiskScores       models.ScoringResult                        `json:"result"`
	Plan             models.ActionPlan                           `json:"plan"`
	Evidence         map[models.ImageSlot]models.EvidenceFinding `json:"evidence,omitempty"`
	OfflineProcessed bool                                        `json:"offline_processed"`
	Persisted        bool                                        `json:"persisted"`
}

// Analyze handles POST /api/v1/analyze: one full pipeline run over one report.
func (h *triageHandler) Analyze(c *gin.Context) {
	var raw models.RawInput
	if err := c.ShouldBindJSON(&raw); err != nil {
		h.logger.Warn("Failed to bind analyze request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	outcome, err := h.controller.Run(c.Request.Context(), raw)
	if err != nil {
		var vErr *pipeline.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  "validation failed",
				"fields": vErr.Fields,
			})
			return
		}
		h.logger.Error("Pipeline run failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process triage request"})
		return
	}

	c.JSON(http.StatusOK, toAnalyzeResponse(outcome))
}

// SyncItemResult reports the outcome for one entry of a sync batch.
type SyncItemResult struct {
	PatientID   string              `json:"patient_id"`
	VisitID     string              `json:"visit_id,omitempty"`
	Status      string              `json:"status"`
	TriageLevel models.RiskLevel    `json:"triage_level,omitempty"`
	Error       string              `json:"error,omitempty"`
	Fields      []models.FieldError `json:"fields,omitempty"`
}

// SyncBatch handles POST /api/v1/sync: replays a batch of reports recorded
// offline through the full pipeline. Each item is processed independently;
// one bad report never fails the batch.
func (h *triageHandler) SyncBatch(c *gin.Context) {
	var batch []models.RawInput
	if err := c.ShouldBindJSON(&batch); err != nil {
		h.logger.Warn("Failed to bind sync batch", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	results := make([]SyncItemResult, 0, len(batch))
	successful := 0
	for _, raw := range batch {
		// Replayed visits get the full rule set, not the offline subset.
		raw.OfflineMode = false

		outcome, err := h.controller.Run(c.Request.Context(), raw)
		if err != nil {
			item := SyncItemResult{PatientID: raw.PatientID, Status: "error", Error: err.Error()}
			var vErr *pipeline.ValidationError
			if errors.As(err, &vErr) {
				item.Fields = vErr.Fields
			}
			results = append(results, item)
			continue
		}

		successful++
		results = append(results, SyncItemResult{
			PatientID:   raw.PatientID,
			VisitID:     outcome.Visit.VisitID,
			Status:      "success",
			TriageLevel: outcome.Visit.Result.TriageLevel,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total":      len(batch),
		"successful": successful,
		"failed":     len(batch) - successful,
		"results":    results,
	})
}

// GetVisit handles GET /api/v1/visit/:id.
func (h *triageHandler) GetVisit(c *gin.Context) {
	visitID := c.Param("id")

	visit, err := h.visitRepo.GetVisitByID(visitID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "visit not found"})
			return
		}
		h.logger.Error("Failed to get visit", zap.String("visit_id", visitID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve visit"})
		return
	}

	c.JSON(http.StatusOK, visit)
}

// GetUnsyncedVisits handles GET /api/v1/visits/unsynced: the backlog of
// visits awaiting upstream sync, optionally filtered by worker.
func (h *triageHandler) GetUnsyncedVisits(c *gin.Context) {
	workerID := c.Query("worker_id")

	visits, err := h.visitRepo.GetUnsyncedVisits(workerID)
	if err != nil {
		h.logger.Error("Failed to list unsynced visits", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list unsynced visits"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  len(visits),
		"visits": visits,
	})
}

// MarkVisitSynced handles POST /api/v1/visit/:id/synced: the acknowledgement
// that flips a queued visit's sync flag once it has been replayed upstream.
func (h *triageHandler) MarkVisitSynced(c *gin.Context) {
	visitID := c.Param("id")

	if err := h.visitRepo.MarkSynced(visitID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "visit not found"})
			return
		}
		h.logger.Error("Failed to mark visit synced", zap.String("visit_id", visitID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to mark visit synced"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"visit_id": visitID, "synced": true})
}

func toAnalyzeResponse(outcome *pipeline.Outcome) AnalyzeResponse {
	return AnalyzeResponse{
		VisitID:          outcome.Visit.VisitID,
		Timestamp:        outcome.Visit.Timestamp,
		RiskScores:       outcome.Visit.Result,
		Plan:             outcome.Visit.Plan,
		Evidence:         outcome.Visit.Evidence,
		OfflineProcessed: outcome.Visit.OfflineProcessed,
		Persisted:        outcome.Persisted,
	}
}
