package models

import "time"

// Visit is the persisted record of one completed pipeline run, stored in
// the 'visits' table. The core builds it once at pipeline completion and
// never mutates it; only the persistence layer flips Synced later.
type Visit struct {
	ID        int64     `json:"-"`
	VisitID   string    `json:"visit_id"`
	PatientID string    `json:"patient_id"`
	WorkerID  string    `json:"worker_id"`
	Timestamp time.Time `json:"timestamp"`

	Input    RawInput                      `json:"input"`
	Evidence map[ImageSlot]EvidenceFinding `json:"evidence,omitempty"`
	Result   ScoringResult                 `json:"result"`
	Plan     ActionPlan                    `json:"plan"`

	OfflineProcessed bool `json:"offline_processed"`
	Synced           bool `json:"synced"`
}
