package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"triage-backend/internal/evidence"
	"triage-backend/internal/models"
	"triage-backend/internal/planner"
	"triage-backend/internal/repository"
	"triage-backend/internal/scoring"
)

func intPtr(v int) *int { return &v }

// memoryVisitRepo is an in-memory stand-in for the Postgres repository.
type memoryVisitRepo struct {
	visits  map[string]*models.Visit
	nextID  int64
	failing bool
}

func newMemoryVisitRepo() *memoryVisitRepo {
	return &memoryVisitRepo{visits: map[string]*models.Visit{}}
}

func (r *memoryVisitRepo) SaveVisit(visit *models.Visit) error {
	if r.failing {
		return errors.New("store unavailable")
	}
	r.nextID++
	visit.ID = r.nextID
	r.visits[visit.VisitID] = visit
	return nil
}

func (r *memoryVisitRepo) GetVisitByID(visitID string) (*models.Visit, error) {
	visit, ok := r.visits[visitID]
	if !ok {
		return nil, errors.New("not found")
	}
	return visit, nil
}

func (r *memoryVisitRepo) MarkSynced(visitID string) error {
	visit, ok := r.visits[visitID]
	if !ok {
		return errors.New("not found")
	}
	visit.Synced = true
	return nil
}

func (r *memoryVisitRepo) GetUnsyncedVisits(workerID string) ([]*models.Visit, error) {
	var out []*models.Visit
	for _, v := range r.visits {
		if !v.Synced && (workerID == "" || v.WorkerID == workerID) {
			out = append(out, v)
		}
	}
	return out, nil
}

var _ repository.VisitRepository = (*memoryVisitRepo)(nil)

func newTestController(repo repository.VisitRepository) *Controller {
	logger := zap.NewNop()
	return NewController(
		evidence.NewExtractor(evidence.NewStubAnalyzer(), logger),
		scoring.NewEngine(logger),
		planner.NewPlanner(logger),
		repo,
		logger,
	)
}

func validInput() models.RawInput {
	return models.RawInput{
		Age:       intPtr(28),
		Sex:       models.SexFemale,
		Pregnant:  true,
		WorkerID:  "CHW001",
		PatientID: "PAT001",
		Language:  models.LanguageEnglish,
		Symptoms:  []string{"headache", "swelling"},
		Vitals: models.Vitals{
			BPSystolic:  intPtr(150),
			BPDiastolic: intPtr(95),
		},
		GestationalWeeks: intPtr(32),
	}
}

func TestRun_CompletesAndPersists(t *testing.T) {
	repo := newMemoryVisitRepo()
	controller := newTestController(repo)

	outcome, err := controller.Run(context.Background(), validInput())

	require.NoError(t, err)
	assert.True(t, outcome.Persisted)
	require.NotNil(t, outcome.Visit)

	visit := outcome.Visit
	assert.True(t, strings.HasPrefix(visit.VisitID, "v_"))
	assert.Len(t, visit.VisitID, 14)
	assert.Equal(t, "PAT001", visit.PatientID)
	assert.Equal(t, models.LevelUrgent, visit.Result.TriageLevel)
	assert.Equal(t, string(models.DomainMaternal), visit.Result.PrimaryConcern)
	assert.NotEmpty(t, visit.Plan.Summary)
	assert.False(t, visit.OfflineProcessed)
	// Online runs are stored already synced.
	assert.True(t, visit.Synced)

	stored, err := repo.GetVisitByID(visit.VisitID)
	require.NoError(t, err)
	assert.Equal(t, visit, stored)
}

func TestRun_ValidationShortCircuit(t *testing.T) {
	repo := newMemoryVisitRepo()
	controller := newTestController(repo)

	input := validInput()
	input.Age = nil
	input.Vitals.BPSystolic = intPtr(400)

	outcome, err := controller.Run(context.Background(), input)

	require.Error(t, err)
	assert.Nil(t, outcome)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.GreaterOrEqual(t, len(verr.Fields), 2)
	// Nothing may reach the store on a rejected request.
	assert.Empty(t, repo.visits)
}

func TestRun_PersistenceFailureIsDegradedSuccess(t *testing.T) {
	repo := newMemoryVisitRepo()
	repo.failing = true
	controller := newTestController(repo)

	outcome, err := controller.Run(context.Background(), validInput())

	require.NoError(t, err)
	assert.False(t, outcome.Persisted)
	require.NotNil(t, outcome.Visit)
	// The triage decision still comes back intact.
	assert.Equal(t, models.LevelUrgent, outcome.Visit.Result.TriageLevel)
}

func TestRun_OfflineSkipsEvidence(t *testing.T) {
	repo := newMemoryVisitRepo()
	controller := newTestController(repo)

	input := models.RawInput{
		Age:         intPtr(35),
		Sex:         models.SexFemale,
		WorkerID:    "CHW002",
		PatientID:   "PAT002",
		OfflineMode: true,
		Vitals: models.Vitals{
			RandomGlucose: intPtr(220),
		},
		// Photos attached to an offline report must be ignored, not analyzed.
		CameraInputs: &models.CameraInputs{ConjunctivaPhoto: "not-even-base64"},
	}

	outcome, err := controller.Run(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, outcome.Visit.OfflineProcessed)
	assert.Empty(t, outcome.Visit.Evidence)
	assert.Equal(t, models.LevelHigh, outcome.Visit.Result.TriageLevel)
	assert.Equal(t, string(models.DomainGlycemic), outcome.Visit.Result.PrimaryConcern)
	// Offline-processed visits stay queued for sync.
	assert.False(t, outcome.Visit.Synced)

	backlog, err := repo.GetUnsyncedVisits("")
	require.NoError(t, err)
	require.Len(t, backlog, 1)
	assert.Equal(t, outcome.Visit.VisitID, backlog[0].VisitID)
}

func TestRun_UniqueVisitIDs(t *testing.T) {
	repo := newMemoryVisitRepo()
	controller := newTestController(repo)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		outcome, err := controller.Run(context.Background(), validInput())
		require.NoError(t, err)
		assert.False(t, seen[outcome.Visit.VisitID], "duplicate visit id %s", outcome.Visit.VisitID)
		seen[outcome.Visit.VisitID] = true
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: []models.FieldError{
		{Field: "age", Message: "age is required"},
		{Field: "bp_systolic", Message: "out of range"},
	}}

	assert.Equal(t, "validation failed: age: age is required; bp_systolic: out of range", err.Error())
}
