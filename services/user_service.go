package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"taskQuestAPI/internal/apperr"
	"taskQuestAPI/internal/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserService struct {
	db *pgxpool.Pool
}

func NewUserService(db *pgxpool.Pool) *UserService {
	return &UserService{db: db}
}

const userColumns = `id, clerk_id, email, display_name, role, parent_id, points, current_streak, last_streak_date::text,
	medal_bronze, medal_silver, medal_gold, medal_diamond, email_verified, created_at, updated_at`

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(
		&u.ID,
		&u.ClerkID,
		&u.Email,
		&u.DisplayName,
		&u.Role,
		&u.ParentID,
		&u.Points,
		&u.CurrentStreak,
		&u.LastStreakDate,
		&u.Medals.Bronze,
		&u.Medals.Silver,
		&u.Medals.Gold,
		&u.Medals.Diamond,
		&u.EmailVerified,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.User, error) {
	role := req.Role
	if role == "" {
		role = user.RoleStudent
	}
	if !role.IsValid() {
		return nil, apperr.Validation("unknown role %q", req.Role)
	}

	var parentID *string
	if req.ParentID != "" {
		parentID = &req.ParentID
	}

	query := `
	INSERT INTO users (id, clerk_id, email, display_name, role, parent_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING ` + userColumns

	u, err := scanUser(s.db.QueryRow(
		ctx,
		query,
		uuid.New().String(),
		req.ClerkID,
		req.Email,
		req.DisplayName,
		role,
		parentID,
		time.Now(),
		time.Now(),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}

func (s *UserService) GetUserByClerkID(ctx context.Context, clerkID string) (*user.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE clerk_id = $1`, clerkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user for clerk id %s", clerkID)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*user.User, error) {
	u, err := scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user %s", id)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// UpdateUserFromClerk syncs profile fields pushed by a Clerk user.updated
// webhook.
func (s *UserService) UpdateUserFromClerk(ctx context.Context, clerkID, email, displayName string, emailVerified bool) error {
	tag, err := s.db.Exec(ctx, `
	UPDATE users
	SET email = $1, display_name = $2, email_verified = $3, updated_at = $4
	WHERE clerk_id = $5
	`, email, displayName, emailVerified, time.Now(), clerkID)
	if err != nil {
		return fmt.Errorf("failed to sync user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("user for clerk id %s", clerkID)
	}
	return nil
}

func (s *UserService) DeleteByClerkID(ctx context.Context, clerkID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM users WHERE clerk_id = $1`, clerkID)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (s *UserService) UpdateProfile(ctx context.Context, clerkID string, req *user.UpdateProfileRequest) (*user.User, error) {
	if req.DisplayName == "" {
		return nil, apperr.Validation("displayName is required")
	}
	u, err := scanUser(s.db.QueryRow(ctx, `
	UPDATE users
	SET display_name = $1, updated_at = $2
	WHERE clerk_id = $3
	RETURNING `+userColumns, req.DisplayName, time.Now(), clerkID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user for clerk id %s", clerkID)
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return u, nil
}

// GetChildren lists the students linked to a parent.
func (s *UserService) GetChildren(ctx context.Context, parentID string) ([]*user.User, error) {
	rows, err := s.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE parent_id = $1 ORDER BY display_name`, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}
	defer rows.Close()

	var children []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		children = append(children, u)
	}
	return children, rows.Err()
}

// IsParentOf reports whether parentID is the linked parent of childID.
func (s *UserService) IsParentOf(ctx context.Context, parentID, childID string) (bool, error) {
	var ok bool
	err := s.db.QueryRow(ctx, `
	SELECT EXISTS (SELECT 1 FROM users WHERE id = $1 AND parent_id = $2)
	`, childID, parentID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("failed to check parent link: %w", err)
	}
	return ok, nil
}

func (s *UserService) GetBalance(ctx context.Context, userID string) (*user.BalanceSummary, error) {
	b := &user.BalanceSummary{}
	err := s.db.QueryRow(ctx, `
	SELECT points, current_streak, medal_bronze, medal_silver, medal_gold, medal_diamond
	FROM users
	WHERE id = $1
	`, userID).Scan(
		&b.Points,
		&b.CurrentStreak,
		&b.Medals.Bronze,
		&b.Medals.Silver,
		&b.Medals.Gold,
		&b.Medals.Diamond,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user %s", userID)
		}
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	return b, nil
}
