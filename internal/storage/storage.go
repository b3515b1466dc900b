// Package storage provides persistence for the analysis service:
// decision requests, their debate reports, and per-agent debate logs.
package storage

import (
	"time"

	"github.com/google/uuid"

	"github.com/cogitolab/cogito/internal/core"
)

// DecisionRequest stores the initial user prompt.
type DecisionRequest struct {
	ID        string    `json:"request_id"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDecisionRequest creates a request record for a topic.
func NewDecisionRequest(topic string) *DecisionRequest {
	return &DecisionRequest{
		ID:        uuid.NewString(),
		Topic:     topic,
		CreatedAt: time.Now(),
	}
}

// DebateReport stores the final decision matrix for a request.
type DebateReport struct {
	ID        string             `json:"report_id"`
	RequestID string             `json:"request_id"`
	Matrix    *core.DebateResult `json:"matrix"`
	CreatedAt time.Time          `json:"created_at"`
}

// NewDebateReport creates a report record for a request.
func NewDebateReport(requestID string, matrix *core.DebateResult) *DebateReport {
	return &DebateReport{
		ID:        uuid.NewString(),
		RequestID: requestID,
		Matrix:    matrix,
		CreatedAt: time.Now(),
	}
}

// DebateLog stores one agent message produced while debating a request.
type DebateLog struct {
	ID        string    `json:"log_id"`
	RequestID string    `json:"request_id"`
	AgentRole string    `json:"agent_role"` // thesis, antithesis, synthesist
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewDebateLog creates a log record for a request.
func NewDebateLog(requestID, agentRole, content string) *DebateLog {
	return &DebateLog{
		ID:        uuid.NewString(),
		RequestID: requestID,
		AgentRole: agentRole,
		Content:   content,
		CreatedAt: time.Now(),
	}
}

// ReportSummary is a lightweight representation for listing reports.
type ReportSummary struct {
	RequestID  string    `json:"request_id"`
	Topic      string    `json:"topic"`
	Confidence int       `json:"confidence"`
	CreatedAt  time.Time `json:"created_at"`
}

// Storage defines the interface for service persistence.
type Storage interface {
	// Initialize sets up the storage (creates tables, etc.)
	Initialize() error

	// Close closes the storage connection.
	Close() error

	// Request operations
	CreateRequest(req *DecisionRequest) error
	GetRequest(id string) (*DecisionRequest, error)

	// Report operations
	SaveReport(report *DebateReport) error
	GetReportByRequest(requestID string) (*DebateReport, error)
	ListReports(limit, offset int) ([]*ReportSummary, error)

	// Log operations
	AddLog(log *DebateLog) error
	GetLogs(requestID string) ([]*DebateLog, error)
}
