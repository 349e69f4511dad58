package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/me/matchably/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and returns a Store.
// Use ":memory:" for an in-memory database (useful in tests).
func NewSQLiteStore(dbPath string, logger *slog.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma fk: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		logger: logger.With("component", "store"),
	}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	s.logger.Debug("sql", "op", "migrate")
	return migrate(ctx, s.db)
}

// --- Session operations ---

func (s *SQLiteStore) CreateSession(ctx context.Context, sess *model.Session) error {
	s.logger.Debug("sql", "op", "insert", "table", "sessions", "id", sess.ID)

	var tokenExp int64
	if !sess.TokenExp.IsZero() {
		tokenExp = sess.TokenExp.Unix()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, name, email, role, token, token_exp, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.UserID, sess.Name, sess.Email, string(sess.Role),
		sess.Token, tokenExp,
		sess.CreatedAt.Unix(), sess.ExpiresAt.Unix(),
	)
	return err
}

func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*model.Session, error) {
	s.logger.Debug("sql", "op", "select", "table", "sessions", "id", id)

	var sess model.Session
	var role string
	var tokenExp, createdAt, expiresAt int64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, email, role, token, token_exp, created_at, expires_at
		 FROM sessions WHERE id = ?`, id,
	).Scan(&sess.ID, &sess.UserID, &sess.Name, &sess.Email, &role,
		&sess.Token, &tokenExp, &createdAt, &expiresAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sess.Role = model.UserRole(role)
	if tokenExp != 0 {
		sess.TokenExp = time.Unix(tokenExp, 0)
	}
	sess.CreatedAt = time.Unix(createdAt, 0)
	sess.ExpiresAt = time.Unix(expiresAt, 0)

	return &sess, nil
}

func (s *SQLiteStore) DeleteSession(ctx context.Context, id string) error {
	s.logger.Debug("sql", "op", "delete", "table", "sessions", "id", id)

	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	return err
}

func (s *SQLiteStore) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	s.logger.Debug("sql", "op", "delete_expired", "table", "sessions")

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, time.Now().Unix())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *SQLiteStore) DeleteSessionsByEmail(ctx context.Context, email string) (int64, error) {
	s.logger.Debug("sql", "op", "delete_by_email", "table", "sessions", "email", email)

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE email = ?`, email)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// --- Campaign snapshot operations ---

// UpsertCampaigns replaces the snapshot rows for the given campaigns,
// preserving list order through the position column.
func (s *SQLiteStore) UpsertCampaigns(ctx context.Context, campaigns []model.CampaignSummary) error {
	s.logger.Debug("sql", "op", "upsert", "table", "campaigns", "count", len(campaigns))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for i, c := range campaigns {
		platformsJSON, err := json.Marshal(c.Platforms)
		if err != nil {
			return fmt.Errorf("marshal platforms: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO campaigns (id, title, brand, description, platforms, image,
			 deadline, recruitment_end_date, status, recruiting, approved_applicants, position, fetched_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(id) DO UPDATE SET
			 title=excluded.title, brand=excluded.brand, description=excluded.description,
			 platforms=excluded.platforms, image=excluded.image, deadline=excluded.deadline,
			 recruitment_end_date=excluded.recruitment_end_date, status=excluded.status,
			 recruiting=excluded.recruiting, approved_applicants=excluded.approved_applicants,
			 position=excluded.position, fetched_at=excluded.fetched_at`,
			c.ID, c.Title, c.Brand, c.Description, string(platformsJSON), c.Image,
			formatTime(c.Deadline), formatTime(c.RecruitmentEndDate), string(c.Status),
			c.Recruiting, c.ApprovedApplicants, i, now,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) ListCampaigns(ctx context.Context) ([]model.CampaignSummary, error) {
	s.logger.Debug("sql", "op", "list", "table", "campaigns")

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, brand, description, platforms, image,
		 deadline, recruitment_end_date, status, recruiting, approved_applicants
		 FROM campaigns ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var campaigns []model.CampaignSummary
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, rows.Err()
}

func (s *SQLiteStore) GetCampaign(ctx context.Context, id string) (*model.CampaignSummary, error) {
	s.logger.Debug("sql", "op", "select", "table", "campaigns", "id", id)

	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, brand, description, platforms, image,
		 deadline, recruitment_end_date, status, recruiting, approved_applicants
		 FROM campaigns WHERE id = ?`, id)
	c, err := scanCampaign(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *SQLiteStore) DeleteCampaign(ctx context.Context, id string) error {
	s.logger.Debug("sql", "op", "delete", "table", "campaigns", "id", id)

	result, err := s.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("campaign %s not found", id)
	}
	return nil
}

// --- scan helpers ---

type scanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row scanner) (*model.CampaignSummary, error) {
	var c model.CampaignSummary
	var platformsJSON, deadline, recruitmentEnd, status string

	err := row.Scan(&c.ID, &c.Title, &c.Brand, &c.Description, &platformsJSON, &c.Image,
		&deadline, &recruitmentEnd, &status, &c.Recruiting, &c.ApprovedApplicants)
	if err != nil {
		return nil, err
	}

	c.Status = model.CampaignStatus(status)
	json.Unmarshal([]byte(platformsJSON), &c.Platforms)
	c.Deadline = parseTime(deadline)
	c.RecruitmentEndDate = parseTime(recruitmentEnd)

	return &c, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}
