package services

import (
	"errors"
	"sync"
	"time"

	"botica/internal/repos"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("sesión de verificación no encontrada")

// AuditService holds inventory verification sessions. The working set is
// process-local and ephemeral: finishing or cancelling a session discards
// it, and nothing is persisted.
type AuditService struct {
	Inv *repos.InventoryRepo

	mu       sync.Mutex
	sessions map[string]*auditSession
}

type auditSession struct {
	startedAt time.Time
	records   map[int64]VerificationRecord
}

type VerificationRecord struct {
	InventoryID    int64  `json:"inventory_id"`
	ActualQuantity int64  `json:"actual_quantity"`
	Notes          string `json:"notes,omitempty"`
	VerifiedBy     string `json:"verified_by,omitempty"`
	VerifiedAt     string `json:"verified_at"`
}

// AuditReportRow is one finished-report line: the record plus the
// difference against the system quantity at finish time.
type AuditReportRow struct {
	VerificationRecord
	SystemQuantity int64 `json:"system_quantity"`
	Difference     int64 `json:"difference"`
}

type AuditReport struct {
	SessionID     string           `json:"session_id"`
	StartedAt     string           `json:"started_at"`
	FinishedAt    string           `json:"finished_at"`
	VerifiedItems int              `json:"verified_items"`
	Rows          []AuditReportRow `json:"rows"`
}

func NewAuditService(inv *repos.InventoryRepo) *AuditService {
	return &AuditService{Inv: inv, sessions: make(map[string]*auditSession)}
}

// Start opens a new verification session and returns its id.
func (s *AuditService) Start() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &auditSession{
		startedAt: time.Now().UTC(),
		records:   make(map[int64]VerificationRecord),
	}
	s.mu.Unlock()
	return id
}

// Verify upserts the count for one inventory row. Re-verifying an item
// overwrites its previous record.
func (s *AuditService) Verify(sessionID string, rec VerificationRecord) error {
	if _, err := s.Inv.Get(rec.InventoryID); err != nil {
		return err
	}
	rec.VerifiedAt = time.Now().UTC().Format(time.RFC3339)

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}
	sess.records[rec.InventoryID] = rec
	return nil
}

// Progress returns the records captured so far.
func (s *AuditService) Progress(sessionID string) ([]VerificationRecord, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, "", ErrSessionNotFound
	}
	out := make([]VerificationRecord, 0, len(sess.records))
	for _, rec := range sess.records {
		out = append(out, rec)
	}
	return out, sess.startedAt.Format(time.RFC3339), nil
}

// Finish computes differences against current stock, discards the
// session and returns the report.
func (s *AuditService) Finish(sessionID string) (AuditReport, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()
	if !ok {
		return AuditReport{}, ErrSessionNotFound
	}

	report := AuditReport{
		SessionID:     sessionID,
		StartedAt:     sess.startedAt.Format(time.RFC3339),
		FinishedAt:    time.Now().UTC().Format(time.RFC3339),
		VerifiedItems: len(sess.records),
		Rows:          make([]AuditReportRow, 0, len(sess.records)),
	}
	for _, rec := range sess.records {
		row := AuditReportRow{VerificationRecord: rec}
		if qty, err := s.Inv.Qty(rec.InventoryID); err == nil {
			row.SystemQuantity = qty
			row.Difference = rec.ActualQuantity - qty
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}

// Cancel discards a session without producing a report.
func (s *AuditService) Cancel(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return false
	}
	delete(s.sessions, sessionID)
	return true
}
