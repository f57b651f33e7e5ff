package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"triage-backend/internal/models"
)

// VisitRepository is the persistence sink for completed pipeline runs.
// The core treats it as append-with-acknowledgement; only this layer may
// later flip the synced flag.
type VisitRepository interface {
	SaveVisit(visit *models.Visit) error
	GetVisitByID(visitID string) (*models.Visit, error)
	MarkSynced(visitID string) error
	GetUnsyncedVisits(workerID string) ([]*models.Visit, error)
}

type visitRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewVisitRepository(db *sqlx.DB, logger *zap.Logger) VisitRepository {
	return &visitRepository{db: db, logger: logger}
}

// visitRow mirrors the 'visits' table; JSONB columns travel as raw bytes.
type visitRow struct {
	ID               int64     `db:"id"`
	VisitID          string    `db:"visit_id"`
	PatientID        string    `db:"patient_id"`
	WorkerID         string    `db:"worker_id"`
	Timestamp        time.Time `db:"timestamp"`
	InputPayload     []byte    `db:"input_payload"`
	Evidence         []byte    `db:"evidence"`
	ScoringResult    []byte    `db:"scoring_result"`
	ActionPlan       []byte    `db:"action_plan"`
	TriageLevel      string    `db:"triage_level"`
	PrimaryConcern   string    `db:"primary_concern"`
	OfflineProcessed bool      `db:"offline_processed"`
	Synced           bool      `db:"synced"`
}

func (r *visitRepository) SaveVisit(visit *models.Visit) error {
	row, err := toRow(visit)
	if err != nil {
		return fmt.Errorf("encode visit %s: %w", visit.VisitID, err)
	}

	query := `INSERT INTO visits (visit_id, patient_id, worker_id, timestamp, input_payload, evidence, scoring_result, action_plan, triage_level, primary_concern, offline_processed, synced)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	err = r.db.QueryRowx(query,
		row.VisitID, row.PatientID, row.WorkerID, row.Timestamp,
		row.InputPayload, row.Evidence, row.ScoringResult, row.ActionPlan,
		row.TriageLevel, row.PrimaryConcern, row.OfflineProcessed, row.Synced,
	).Scan(&visit.ID)
	if err != nil {
		return fmt.Errorf("insert visit %s: %w", visit.VisitID, err)
	}

	r.logger.Info("Visit stored",
		zap.String("visit_id", visit.VisitID),
		zap.String("triage_level", row.TriageLevel))
	return nil
}

func (r *visitRepository) GetVisitByID(visitID string) (*models.Visit, error) {
	var row visitRow
	query := `SELECT id, visit_id, patient_id, worker_id, timestamp, input_payload, evidence, scoring_result, action_plan, triage_level, primary_concern, offline_processed, synced
	          FROM visits WHERE visit_id = $1`
	if err := r.db.Get(&row, query, visitID); err != nil {
		return nil, err
	}
	return fromRow(&row)
}

func (r *visitRepository) MarkSynced(visitID string) error {
	result, err := r.db.Exec(`UPDATE visits SET synced = true WHERE visit_id = $1`, visitID)
	if err != nil {
		return fmt.Errorf("mark visit %s synced: %w", visitID, err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("visit %s: %w", visitID, sql.ErrNoRows)
	}
	return nil
}

// GetUnsyncedVisits lists visits still awaiting upstream sync, oldest first.
// An empty workerID returns the whole backlog.
func (r *visitRepository) GetUnsyncedVisits(workerID string) ([]*models.Visit, error) {
	var rows []visitRow
	query := `SELECT id, visit_id, patient_id, worker_id, timestamp, input_payload, evidence, scoring_result, action_plan, triage_level, primary_concern, offline_processed, synced
	          FROM visits WHERE synced = false`
	args := []interface{}{}
	if workerID != "" {
		query += ` AND worker_id = $1`
		args = append(args, workerID)
	}
	query += ` ORDER BY timestamp`
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, err
	}

	visits := make([]*models.Visit, 0, len(rows))
	for i := range rows {
		visit, err := fromRow(&rows[i])
		if err != nil {
			r.logger.Error("Failed to decode stored visit, skipping",
				zap.String("visit_id", rows[i].VisitID), zap.Error(err))
			continue
		}
		visits = append(visits, visit)
	}
	return visits, nil
}

func toRow(visit *models.Visit) (*visitRow, error) {
	input, err := json.Marshal(visit.Input)
	if err != nil {
		return nil, err
	}
	evidence, err := json.Marshal(visit.Evidence)
	if err != nil {
		return nil, err
	}
	result, err := json.Marshal(visit.Result)
	if err != nil {
		return nil, err
	}
	plan, err := json.Marshal(visit.Plan)
	if err != nil {
		return nil, err
	}

	return &visitRow{
		VisitID:          visit.VisitID,
		PatientID:        visit.PatientID,
		WorkerID:         visit.WorkerID,
		Timestamp:        visit.Timestamp,
		InputPayload:     input,
		Evidence:         evidence,
		ScoringResult:    result,
		ActionPlan:       plan,
		TriageLevel:      string(visit.Result.TriageLevel),
		PrimaryConcern:   visit.Result.PrimaryConcern,
		OfflineProcessed: visit.OfflineProcessed,
		Synced:           visit.Synced,
	}, nil
}

func fromRow(row *visitRow) (*models.Visit, error) {
	visit := &models.Visit{
		ID:               row.ID,
		VisitID:          row.VisitID,
		PatientID:        row.PatientID,
		WorkerID:         row.WorkerID,
		Timestamp:        row.Timestamp,
		OfflineProcessed: row.OfflineProcessed,
		Synced:           row.Synced,
	}

	if err := json.Unmarshal(row.InputPayload, &visit.Input); err != nil {
		return nil, fmt.Errorf("decode input payload: %w", err)
	}
	if len(row.Evidence) > 0 {
		if err := json.Unmarshal(row.Evidence, &visit.Evidence); err != nil {
			return nil, fmt.Errorf("decode evidence: %w", err)
		}
	}
	if err := json.Unmarshal(row.ScoringResult, &visit.Result); err != nil {
		return nil, fmt.Errorf("decode scoring result: %w", err)
	}
	if err := json.Unmarshal(row.ActionPlan, &visit.Plan); err != nil {
		return nil, fmt.Errorf("decode action plan: %w", err)
	}
	return visit, nil
}
