package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vizkit/vizkit/backend-go/internal/chart"
	"github.com/vizkit/vizkit/backend-go/internal/store"
	"github.com/vizkit/vizkit/backend-go/internal/typeid"
)

var (
	ErrNotFound       = errors.New("board not found")
	ErrForbidden      = errors.New("forbidden")
	ErrNotMember      = errors.New("not a board member")
	ErrInvalidOptions = errors.New("invalid chart options")
)

type Service struct {
	store *store.Store
}

func NewService(st *store.Store) *Service {
	return &Service{store: st}
}

type Board struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerID   string `json:"ownerId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type Member struct {
	UserID      string `json:"userId"`
	Role        string `json:"role"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

func (s *Service) Create(ctx context.Context, name, ownerID string) (*Board, error) {
	boardID := typeid.NewBoardID()

	dbBoard, err := s.store.CreateBoard(ctx, boardID, name, ownerID)
	if err != nil {
		return nil, fmt.Errorf("create board: %w", err)
	}

	// Add owner as member
	if err := s.store.AddBoardMember(ctx, boardID, ownerID, store.BoardRoleOwner); err != nil {
		return nil, fmt.Errorf("add owner as member: %w", err)
	}

	// Seed the board with the sample chart so the canvas is never blank.
	_, err = s.store.SaveSnapshot(ctx, typeid.NewSnapshotID(), boardID, chart.SampleOptionsJSON())
	if err != nil {
		return nil, fmt.Errorf("create initial snapshot: %w", err)
	}

	return dbBoardToBoard(dbBoard), nil
}

func (s *Service) Get(ctx context.Context, boardID, userID string) (*Board, error) {
	if err := s.CheckMembership(ctx, boardID, userID); err != nil {
		return nil, err
	}

	dbBoard, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get board: %w", err)
	}

	return dbBoardToBoard(dbBoard), nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Board, error) {
	dbBoards, err := s.store.ListBoardsForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}

	boards := make([]Board, len(dbBoards))
	for i, b := range dbBoards {
		boards[i] = *dbBoardToBoard(b)
	}

	return boards, nil
}

func (s *Service) Delete(ctx context.Context, boardID, userID string) error {
	dbBoard, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get board: %w", err)
	}

	if dbBoard.OwnerID != userID {
		return ErrForbidden
	}

	return s.store.DeleteBoard(ctx, boardID)
}

func (s *Service) InviteByEmail(ctx context.Context, boardID, ownerID, inviteeEmail string) error {
	// Verify the requester is the owner
	dbBoard, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get board: %w", err)
	}

	if dbBoard.OwnerID != ownerID {
		return ErrForbidden
	}

	invitee, err := s.store.GetUserByEmail(ctx, inviteeEmail)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.New("user not found")
		}
		return fmt.Errorf("find user: %w", err)
	}

	return s.store.AddBoardMember(ctx, boardID, invitee.ID, store.BoardRoleEditor)
}

func (s *Service) ListMembers(ctx context.Context, boardID, userID string) ([]Member, error) {
	if err := s.CheckMembership(ctx, boardID, userID); err != nil {
		return nil, err
	}

	dbMembers, err := s.store.ListBoardMembers(ctx, boardID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	members := make([]Member, len(dbMembers))
	for i, m := range dbMembers {
		members[i] = Member{
			UserID:      m.UserID,
			Role:        string(m.Role),
			DisplayName: m.DisplayName,
			Email:       m.Email,
		}
	}

	return members, nil
}

func (s *Service) RemoveMember(ctx context.Context, boardID, ownerID, targetUserID string) error {
	dbBoard, err := s.store.GetBoard(ctx, boardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("get board: %w", err)
	}

	if dbBoard.OwnerID != ownerID {
		return ErrForbidden
	}

	if targetUserID == ownerID {
		return errors.New("cannot remove board owner")
	}

	return s.store.RemoveBoardMember(ctx, boardID, targetUserID)
}

// GetLatestOptions returns the most recent chart options snapshot for the
// board, as stored JSON.
func (s *Service) GetLatestOptions(ctx context.Context, boardID, userID string) (json.RawMessage, error) {
	if err := s.CheckMembership(ctx, boardID, userID); err != nil {
		return nil, err
	}

	snap, err := s.store.GetLatestSnapshot(ctx, boardID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	return snap.Options, nil
}

// SaveOptions validates the chart options and appends a new snapshot
// version. Invalid options never reach the database.
func (s *Service) SaveOptions(ctx context.Context, boardID, userID string, options json.RawMessage) error {
	if err := s.CheckMembership(ctx, boardID, userID); err != nil {
		return err
	}

	if err := chart.ValidateOptions(options); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	_, err := s.store.SaveSnapshot(ctx, typeid.NewSnapshotID(), boardID, options)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *Service) CheckMembership(ctx context.Context, boardID, userID string) error {
	_, err := s.store.GetBoardMember(ctx, boardID, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotMember
		}
		return fmt.Errorf("check membership: %w", err)
	}
	return nil
}

func dbBoardToBoard(b store.Board) *Board {
	return &Board{
		ID:        b.ID,
		Name:      b.Name,
		OwnerID:   b.OwnerID,
		CreatedAt: b.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: b.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
