package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/entities"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/repository"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/pkg/logger"
)

type PostgresRepository struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresRepository(pool *pgxpool.Pool, log logger.Logger) repository.Repository {
	return &PostgresRepository{pool: pool, logger: log}
}

func (r *PostgresRepository) ListUsers(ctx context.Context, search string) ([]entities.UserProfile, error) {
	var rows pgx.Rows
	var err error
	if search != "" {
		pattern := "%" + search + "%"
		rows, err = r.pool.Query(ctx, `SELECT id, email, display_name, is_super_admin, created_at FROM user_profiles WHERE email ILIKE $1 OR display_name ILIKE $1 ORDER BY created_at DESC`, pattern)
	} else {
		rows, err = r.pool.Query(ctx, `SELECT id, email, display_name, is_super_admin, created_at FROM user_profiles ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entities.UserProfile
	for rows.Next() {
		var u entities.UserProfile
		if err = rows.Scan(&u.ID, &u.Email, &u.DisplayName, &u.IsSuperAdmin, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *PostgresRepository) GetUser(ctx context.Context, userID string) (entities.UserProfile, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, email, display_name, is_super_admin, created_at FROM user_profiles WHERE id=$1`, userID)
	var u entities.UserProfile
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.IsSuperAdmin, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.UserProfile{}, entities.ErrUserNotFound
	}
	if err != nil {
		return entities.UserProfile{}, err
	}
	return u, nil
}

func (r *PostgresRepository) SetSuperAdmin(ctx context.Context, userID string, isSuperAdmin bool) (entities.UserProfile, error) {
	row := r.pool.QueryRow(ctx, `UPDATE user_profiles SET is_super_admin=$2 WHERE id=$1 RETURNING id, email, display_name, is_super_admin, created_at`, userID, isSuperAdmin)
	var u entities.UserProfile
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.IsSuperAdmin, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.UserProfile{}, entities.ErrUserNotFound
	}
	if err != nil {
		return entities.UserProfile{}, err
	}
	r.logger.Info("super admin flag updated", "user_id", userID, "is_super_admin", isSuperAdmin)
	return u, nil
}

func (r *PostgresRepository) CountTeamMemberships(ctx context.Context, userIDs []string) (map[string]entities.TeamMembershipCounts, error) {
	if len(userIDs) == 0 {
		return map[string]entities.TeamMembershipCounts{}, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT user_id, COUNT(*), COUNT(*) FILTER (WHERE role='admin') FROM team_members WHERE user_id = ANY($1::uuid[]) GROUP BY user_id`, userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]entities.TeamMembershipCounts)
	for rows.Next() {
		var id string
		var counts entities.TeamMembershipCounts
		if err = rows.Scan(&id, &counts.TeamCount, &counts.AdminTeamCount); err != nil {
			return nil, err
		}
		result[id] = counts
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
