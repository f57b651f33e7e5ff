package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"triage-backend/internal/evidence"
	"triage-backend/internal/intake"
	"triage-backend/internal/models"
	"triage-backend/internal/planner"
	"triage-backend/internal/repository"
	"triage-backend/internal/scoring"
)

// State names one step of a pipeline run. Each run moves strictly forward;
// there are no retries within a single request.
type State string

const (
	StateReceived          State = "received"
	StateValidating        State = "validating"
	StateFailed            State = "failed"
	StateNormalized        State = "normalized"
	StateEvidenceExtracted State = "evidence_extracted"
	StateScored            State = "scored"
	StatePlanned           State = "planned"
	StateCompleted         State = "completed"
)

// ValidationError carries the field-level detail for a rejected request.
// It is the only pipeline error surfaced to callers as a hard failure.
type ValidationError struct {
	Fields []models.FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Outcome is the terminal result of one successful pipeline run. Persisted
// is false when the store was unavailable; the triage result is returned
// regardless, since withholding a decision over a storage hiccup is not
// acceptable in this setting.
type Outcome struct {
	Visit     *models.Visit
	Persisted bool
}

// Controller sequences intake, evidence extraction, scoring, and planning,
// and hands the assembled Visit to persistence. All intermediate state is
// request-local and immutable once built, so concurrent runs need no locks.
type Controller struct {
	extractor *evidence.Extractor
	engine    *scoring.Engine
	planner   *planner.Planner
	visits    repository.VisitRepository
	logger    *zap.Logger
}

func NewController(
	extractor *evidence.Extractor,
	engine *scoring.Engine,
	plan *planner.Planner,
	visits repository.VisitRepository,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		extractor: extractor,
		engine:    engine,
		planner:   plan,
		visits:    visits,
		logger:    logger,
	}
}

// Run executes one synchronous pipeline pass over a raw report.
// Validation failure short-circuits to the Failed state and returns a
// *ValidationError; later stages are never invoked. Evidence trouble is
// non-fatal and scoring proceeds with whatever findings survived.
func (c *Controller) Run(ctx context.Context, raw models.RawInput) (*Outcome, error) {
	visitID := newVisitID()
	state := StateReceived
	c.logger.Info("Pipeline run started", zap.String("visit_id", visitID), zap.String("state", string(state)))

	state = StateValidating
	normalized, fieldErrs := intake.Normalize(raw)
	if len(fieldErrs) > 0 {
		state = StateFailed
		c.logger.Info("Pipeline run rejected by validation",
			zap.String("visit_id", visitID),
			zap.String("state", string(state)),
			zap.Int("field_errors", len(fieldErrs)))
		return nil, &ValidationError{Fields: fieldErrs}
	}
	state = StateNormalized

	// Evidence extraction completes before scoring starts: strict ordering,
	// no speculative execution.
	var findings map[models.ImageSlot]models.EvidenceFinding
	if normalized.IsOffline {
		// Offline visits carry no analyzable photos by definition.
		findings = map[models.ImageSlot]models.EvidenceFinding{}
	} else {
		findings = c.extractor.Extract(ctx, raw.CameraInputs)
	}
	state = StateEvidenceExtracted

	result := c.engine.Score(normalized, findings)
	state = StateScored

	plan := c.planner.Plan(normalized, result, raw.Language)
	state = StatePlanned

	visit := &models.Visit{
		VisitID:          visitID,
		PatientID:        raw.PatientID,
		WorkerID:         raw.WorkerID,
		Timestamp:        time.Now().UTC(),
		Input:            raw,
		Evidence:         findings,
		Result:           *result,
		Plan:             *plan,
		OfflineProcessed: result.OfflineProcessed,
		// Online runs are stored already synced; offline-processed visits
		// stay queued until the sync replay acknowledges them.
		Synced: !result.OfflineProcessed,
	}

	persisted := true
	if err := c.visits.SaveVisit(visit); err != nil {
		// Degraded success: the computed triage decision still goes back to
		// the caller; the external layer owns any retry queueing.
		persisted = false
		c.logger.Error("Failed to persist visit, returning result unpersisted",
			zap.String("visit_id", visitID), zap.Error(err))
	}

	state = StateCompleted
	c.logger.Info("Pipeline run completed",
		zap.String("visit_id", visitID),
		zap.String("state", string(state)),
		zap.String("triage_level", string(result.TriageLevel)),
		zap.Bool("offline_processed", result.OfflineProcessed),
		zap.Bool("persisted", persisted))

	return &Outcome{Visit: visit, Persisted: persisted}, nil
}

// newVisitID generates a short unique visit identifier, e.g. "v_3fa85f642b88".
func newVisitID() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("v_%s", hex[:12])
}
