package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/threewin/bmc-mentor/backend/internal/model/project"
	"github.com/threewin/bmc-mentor/backend/internal/model/user"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	// WAL mode for better concurrency under parallel requests.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS projects (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		student_name TEXT NOT NULL,
		title TEXT NOT NULL,
		description TEXT,
		phone TEXT,
		logo_path TEXT,
		document_path TEXT,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_projects_created ON projects(created_at);

	CREATE TABLE IF NOT EXISTS designs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		student_id TEXT NOT NULL,
		design_type TEXT NOT NULL,
		design_data TEXT,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_designs_student ON designs(student_id, created_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateUser inserts a new account, mapping the unique-email violation to
// ErrDuplicateEmail.
func (s *SQLiteStore) CreateUser(ctx context.Context, name, email, passwordHash string) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (name, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		name, email, passwordHash, time.Now().Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicateEmail
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// GetUserByEmail returns the user or nil when absent.
func (s *SQLiteStore) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = ?`, email)

	var u user.User
	var createdAt int64
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user row: %w", err)
	}
	u.CreatedAt = time.Unix(createdAt, 0)
	return &u, nil
}

// InsertProject stores a submission and returns its id.
func (s *SQLiteStore) InsertProject(ctx context.Context, p *project.Project) (int64, error) {
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (student_name, title, description, phone, logo_path, document_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.StudentName, p.Title, p.Description, p.Phone,
		nullable(p.LogoPath), nullable(p.DocumentPath), createdAt.Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// ListProjects returns all submissions, newest first.
func (s *SQLiteStore) ListProjects(ctx context.Context) ([]project.Project, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, student_name, title, description, phone, logo_path, document_path, created_at
		 FROM projects ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var projects []project.Project
	for rows.Next() {
		var p project.Project
		var logo, doc sql.NullString
		var createdAt int64
		if err := rows.Scan(&p.ID, &p.StudentName, &p.Title, &p.Description, &p.Phone, &logo, &doc, &createdAt); err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}
		p.LogoPath = logo.String
		p.DocumentPath = doc.String
		p.CreatedAt = time.Unix(createdAt, 0)
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// InsertDesign stores a saved design artifact.
func (s *SQLiteStore) InsertDesign(ctx context.Context, d *project.Design) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO designs (student_id, design_type, design_data, created_at) VALUES (?, ?, ?, ?)`,
		d.StudentID, d.DesignType, d.DesignData, time.Now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert design: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// ListDesignsByStudent returns a student's designs, newest first.
func (s *SQLiteStore) ListDesignsByStudent(ctx context.Context, studentID string) ([]project.Design, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, student_id, design_type, design_data, created_at
		 FROM designs WHERE student_id = ? ORDER BY created_at DESC, id DESC`, studentID)
	if err != nil {
		return nil, fmt.Errorf("query designs: %w", err)
	}
	defer rows.Close()

	var designs []project.Design
	for rows.Next() {
		var d project.Design
		var data sql.NullString
		var createdAt int64
		if err := rows.Scan(&d.ID, &d.StudentID, &d.DesignType, &data, &createdAt); err != nil {
			return nil, fmt.Errorf("scan design row: %w", err)
		}
		d.DesignData = data.String
		d.CreatedAt = time.Unix(createdAt, 0)
		designs = append(designs, d)
	}
	return designs, rows.Err()
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
