package postgres

import (
	"context"
	"time"
)

func (r *PostgresRepository) CountUsers(ctx context.Context) (int, error) {
	return r.countRow(ctx, `SELECT COUNT(*) FROM user_profiles`)
}

func (r *PostgresRepository) CountTeams(ctx context.Context) (int, error) {
	return r.countRow(ctx, `SELECT COUNT(*) FROM teams`)
}

func (r *PostgresRepository) CountSuperAdmins(ctx context.Context) (int, error) {
	return r.countRow(ctx, `SELECT COUNT(*) FROM user_profiles WHERE is_super_admin=true`)
}

func (r *PostgresRepository) CountServes(ctx context.Context) (int, error) {
	return r.countRow(ctx, `SELECT COUNT(*) FROM serves`)
}

func (r *PostgresRepository) CountServesByTeam(ctx context.Context, teamID string) (int, error) {
	return r.countRow(ctx, `SELECT COUNT(*) FROM serves WHERE team_id=$1`, teamID)
}

func (r *PostgresRepository) CountUsersCreatedSince(ctx context.Context, since time.Time) (int, error) {
	return r.countRow(ctx, `SELECT COUNT(*) FROM user_profiles WHERE created_at >= $1`, since)
}

func (r *PostgresRepository) CountTeamActivitySince(ctx context.Context, teamID string, since time.Time) (int, error) {
	return r.countRow(ctx, `SELECT COUNT(*) FROM team_activity_audit WHERE team_id=$1 AND created_at >= $2`, teamID, since)
}

func (r *PostgresRepository) countRow(ctx context.Context, query string, args ...any) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
