// Package store holds the hand-written pgx queries for users, boards,
// memberships, and chart snapshots. Row-not-found is reported as
// pgx.ErrNoRows so callers can map it to their own sentinel errors.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

type BoardRole string

const (
	BoardRoleOwner  BoardRole = "owner"
	BoardRoleEditor BoardRole = "editor"
)

type User struct {
	ID          string
	Email       string
	Password    string
	DisplayName string
	CreatedAt   time.Time
}

type Board struct {
	ID        string
	Name      string
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type BoardMember struct {
	BoardID string
	UserID  string
	Role    BoardRole
}

// MemberInfo is a board member joined with the user row behind it.
type MemberInfo struct {
	UserID      string
	Role        BoardRole
	DisplayName string
	Email       string
}

type Snapshot struct {
	ID        string
	BoardID   string
	Version   int32
	Options   json.RawMessage
	CreatedAt time.Time
}

func (s *Store) CreateUser(ctx context.Context, u User) (User, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (id, email, password, display_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, password, display_name, created_at`,
		u.ID, u.Email, u.Password, u.DisplayName)
	var out User
	err := row.Scan(&out.ID, &out.Email, &out.Password, &out.DisplayName, &out.CreatedAt)
	return out, err
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, password, display_name, created_at
		FROM users WHERE email = $1`, email)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

func (s *Store) GetUserByID(ctx context.Context, id string) (User, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, email, password, display_name, created_at
		FROM users WHERE id = $1`, id)
	var u User
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.CreatedAt)
	return u, err
}

func (s *Store) CreateBoard(ctx context.Context, id, name, ownerID string) (Board, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO boards (id, name, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, owner_id, created_at, updated_at`,
		id, name, ownerID)
	var b Board
	err := row.Scan(&b.ID, &b.Name, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (s *Store) GetBoard(ctx context.Context, id string) (Board, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, name, owner_id, created_at, updated_at
		FROM boards WHERE id = $1`, id)
	var b Board
	err := row.Scan(&b.ID, &b.Name, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (s *Store) ListBoardsForUser(ctx context.Context, userID string) ([]Board, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT b.id, b.name, b.owner_id, b.created_at, b.updated_at
		FROM boards b
		JOIN board_members m ON m.board_id = b.id
		WHERE m.user_id = $1
		ORDER BY b.updated_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var boards []Board
	for rows.Next() {
		var b Board
		if err := rows.Scan(&b.ID, &b.Name, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

func (s *Store) DeleteBoard(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM boards WHERE id = $1`, id)
	return err
}

func (s *Store) AddBoardMember(ctx context.Context, boardID, userID string, role BoardRole) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO board_members (board_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (board_id, user_id) DO NOTHING`,
		boardID, userID, role)
	return err
}

func (s *Store) GetBoardMember(ctx context.Context, boardID, userID string) (BoardMember, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT board_id, user_id, role
		FROM board_members WHERE board_id = $1 AND user_id = $2`,
		boardID, userID)
	var m BoardMember
	err := row.Scan(&m.BoardID, &m.UserID, &m.Role)
	return m, err
}

func (s *Store) ListBoardMembers(ctx context.Context, boardID string) ([]MemberInfo, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT m.user_id, m.role, u.display_name, u.email
		FROM board_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.board_id = $1
		ORDER BY m.role, u.display_name`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []MemberInfo
	for rows.Next() {
		var m MemberInfo
		if err := rows.Scan(&m.UserID, &m.Role, &m.DisplayName, &m.Email); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *Store) RemoveBoardMember(ctx context.Context, boardID, userID string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM board_members WHERE board_id = $1 AND user_id = $2`,
		boardID, userID)
	return err
}

// SaveSnapshot appends a new snapshot at the next version for the board and
// bumps the board's updated_at timestamp.
func (s *Store) SaveSnapshot(ctx context.Context, id, boardID string, options json.RawMessage) (Snapshot, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO chart_snapshots (id, board_id, version, options)
		VALUES ($1, $2,
			COALESCE((SELECT MAX(version) FROM chart_snapshots WHERE board_id = $2), 0) + 1,
			$3)
		RETURNING id, board_id, version, options, created_at`,
		id, boardID, options)
	var snap Snapshot
	if err := row.Scan(&snap.ID, &snap.BoardID, &snap.Version, &snap.Options, &snap.CreatedAt); err != nil {
		return Snapshot{}, err
	}

	if _, err := s.pool.Exec(ctx, `UPDATE boards SET updated_at = now() WHERE id = $1`, boardID); err != nil {
		return Snapshot{}, fmt.Errorf("touch board: %w", err)
	}
	return snap, nil
}

func (s *Store) GetLatestSnapshot(ctx context.Context, boardID string) (Snapshot, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, board_id, version, options, created_at
		FROM chart_snapshots
		WHERE board_id = $1
		ORDER BY version DESC
		LIMIT 1`, boardID)
	var snap Snapshot
	err := row.Scan(&snap.ID, &snap.BoardID, &snap.Version, &snap.Options, &snap.CreatedAt)
	return snap, err
}
