package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cogitolab/cogito/internal/core"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// DefaultDBPath returns the default database location.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cogito/cogito.db"
	}
	return filepath.Join(home, ".cogito", "cogito.db")
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SQLiteStorage{
		db:   db,
		path: dbPath,
	}, nil
}

// Initialize creates the database schema.
func (s *SQLiteStorage) Initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS decision_requests (
		request_id TEXT PRIMARY KEY,
		user_prompt TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS debate_reports (
		report_id TEXT PRIMARY KEY,
		request_id TEXT NOT NULL,
		decision_matrix_json TEXT,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (request_id) REFERENCES decision_requests(request_id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS debate_logs (
		log_id TEXT PRIMARY KEY,
		request_id TEXT NOT NULL,
		agent_role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (request_id) REFERENCES decision_requests(request_id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_reports_request_id ON debate_reports(request_id);
	CREATE INDEX IF NOT EXISTS idx_logs_request_id ON debate_logs(request_id);
	CREATE INDEX IF NOT EXISTS idx_requests_created_at ON decision_requests(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// CreateRequest persists a decision request.
func (s *SQLiteStorage) CreateRequest(req *DecisionRequest) error {
	query := `INSERT INTO decision_requests (request_id, user_prompt, created_at) VALUES (?, ?, ?)`
	if _, err := s.db.Exec(query, req.ID, req.Topic, req.CreatedAt); err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return nil
}

// GetRequest retrieves a decision request by ID.
func (s *SQLiteStorage) GetRequest(id string) (*DecisionRequest, error) {
	query := `SELECT request_id, user_prompt, created_at FROM decision_requests WHERE request_id = ?`

	req := &DecisionRequest{}
	err := s.db.QueryRow(query, id).Scan(&req.ID, &req.Topic, &req.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return req, nil
}

// SaveReport persists a debate report.
func (s *SQLiteStorage) SaveReport(report *DebateReport) error {
	var matrixJSON *string
	if report.Matrix != nil {
		data, err := json.Marshal(report.Matrix)
		if err != nil {
			return fmt.Errorf("failed to marshal decision matrix: %w", err)
		}
		str := string(data)
		matrixJSON = &str
	}

	query := `INSERT INTO debate_reports (report_id, request_id, decision_matrix_json, created_at) VALUES (?, ?, ?, ?)`
	if _, err := s.db.Exec(query, report.ID, report.RequestID, matrixJSON, report.CreatedAt); err != nil {
		return fmt.Errorf("failed to save report: %w", err)
	}
	return nil
}

// GetReportByRequest retrieves the report for a request.
func (s *SQLiteStorage) GetReportByRequest(requestID string) (*DebateReport, error) {
	query := `SELECT report_id, request_id, decision_matrix_json, created_at FROM debate_reports WHERE request_id = ? ORDER BY created_at DESC LIMIT 1`

	report := &DebateReport{}
	var matrixJSON sql.NullString
	err := s.db.QueryRow(query, requestID).Scan(&report.ID, &report.RequestID, &matrixJSON, &report.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report: %w", err)
	}

	if matrixJSON.Valid {
		var matrix core.DebateResult
		if err := json.Unmarshal([]byte(matrixJSON.String), &matrix); err != nil {
			return nil, fmt.Errorf("failed to unmarshal decision matrix: %w", err)
		}
		report.Matrix = &matrix
	}
	return report, nil
}

// ListReports returns recent reports, newest first.
func (s *SQLiteStorage) ListReports(limit, offset int) ([]*ReportSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
	SELECT r.request_id, q.user_prompt, r.decision_matrix_json, r.created_at
	FROM debate_reports r
	JOIN decision_requests q ON q.request_id = r.request_id
	ORDER BY r.created_at DESC
	LIMIT ? OFFSET ?`

	rows, err := s.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var summaries []*ReportSummary
	for rows.Next() {
		summary := &ReportSummary{}
		var matrixJSON sql.NullString
		if err := rows.Scan(&summary.RequestID, &summary.Topic, &matrixJSON, &summary.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		if matrixJSON.Valid {
			var matrix core.DebateResult
			if err := json.Unmarshal([]byte(matrixJSON.String), &matrix); err == nil && matrix.Synthesis != nil {
				summary.Confidence = core.ClampConfidence(matrix.Synthesis.Confidence)
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// AddLog persists a debate log entry.
func (s *SQLiteStorage) AddLog(log *DebateLog) error {
	query := `INSERT INTO debate_logs (log_id, request_id, agent_role, content, created_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := s.db.Exec(query, log.ID, log.RequestID, log.AgentRole, log.Content, log.CreatedAt); err != nil {
		return fmt.Errorf("failed to add log: %w", err)
	}
	return nil
}

// GetLogs retrieves the debate logs for a request in order.
func (s *SQLiteStorage) GetLogs(requestID string) ([]*DebateLog, error) {
	query := `SELECT log_id, request_id, agent_role, content, created_at FROM debate_logs WHERE request_id = ? ORDER BY created_at ASC`

	rows, err := s.db.Query(query, requestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get logs: %w", err)
	}
	defer rows.Close()

	var logs []*DebateLog
	for rows.Next() {
		log := &DebateLog{}
		if err := rows.Scan(&log.ID, &log.RequestID, &log.AgentRole, &log.Content, &log.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan log: %w", err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}
