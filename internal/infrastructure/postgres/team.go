package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/entities"
)

func (r *PostgresRepository) CreateTeam(ctx context.Context, name string, createdBy string) (entities.Team, error) {
	r.logger.Debug("creating team", "name", name)
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		r.logger.Error("failed to begin transaction", "error", err)
		return entities.Team{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var team entities.Team
	err = tx.QueryRow(ctx, `INSERT INTO teams (id, name, created_by) VALUES ($1,$2,$3) RETURNING id, name, created_by, created_at`,
		uuid.NewString(), name, createdBy,
	).Scan(&team.ID, &team.Name, &team.CreatedBy, &team.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Error("team already exists", "name", name)
			return entities.Team{}, entities.ErrTeamExists
		}
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			r.logger.Error("creator not found", "user_id", createdBy)
			return entities.Team{}, entities.ErrUserNotFound
		}
		r.logger.Error("failed to insert team", "error", err)
		return entities.Team{}, err
	}

	// The creator starts as the team's sole admin.
	_, err = tx.Exec(ctx, `INSERT INTO team_members (team_id, user_id, role) VALUES ($1,$2,$3)`, team.ID, createdBy, string(entities.RoleAdmin))
	if err != nil {
		r.logger.Error("failed to insert creator membership", "team_id", team.ID, "error", err)
		return entities.Team{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		r.logger.Error("failed to commit transaction", "error", err)
		return entities.Team{}, err
	}
	r.logger.Info("team created", "name", name, "team_id", team.ID)
	return team, nil
}

func (r *PostgresRepository) GetTeam(ctx context.Context, teamID string) (entities.Team, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, name, created_by, created_at FROM teams WHERE id=$1`, teamID)
	var team entities.Team
	err := row.Scan(&team.ID, &team.Name, &team.CreatedBy, &team.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.Team{}, entities.ErrTeamNotFound
	}
	if err != nil {
		return entities.Team{}, err
	}
	return team, nil
}

func (r *PostgresRepository) ListTeams(ctx context.Context) ([]entities.TeamWithCounts, error) {
	rows, err := r.pool.Query(ctx, `SELECT t.id, t.name, t.created_by, t.created_at,
        COUNT(m.user_id), COUNT(m.user_id) FILTER (WHERE m.role='admin')
        FROM teams t LEFT JOIN team_members m ON m.team_id=t.id
        GROUP BY t.id ORDER BY t.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var teams []entities.TeamWithCounts
	for rows.Next() {
		var t entities.TeamWithCounts
		if err = rows.Scan(&t.ID, &t.Name, &t.CreatedBy, &t.CreatedAt, &t.MemberCount, &t.AdminCount); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *PostgresRepository) ListTeamMembers(ctx context.Context, teamID string) ([]entities.TeamMember, error) {
	rows, err := r.pool.Query(ctx, `SELECT m.team_id, m.user_id, m.role, m.joined_at, u.email, u.display_name
        FROM team_members m JOIN user_profiles u ON u.id=m.user_id
        WHERE m.team_id=$1 ORDER BY m.joined_at`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []entities.TeamMember
	for rows.Next() {
		var m entities.TeamMember
		var role string
		if err = rows.Scan(&m.TeamID, &m.UserID, &role, &m.JoinedAt, &m.Email, &m.DisplayName); err != nil {
			return nil, err
		}
		m.Role = entities.Role(role)
		members = append(members, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(members) == 0 {
		if _, err = r.GetTeam(ctx, teamID); err != nil {
			return nil, err
		}
	}
	return members, nil
}

func (r *PostgresRepository) SetMemberRole(ctx context.Context, teamID string, userID string, role entities.Role) (entities.TeamMember, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE team_members SET role=$3 WHERE team_id=$1 AND user_id=$2`, teamID, userID, string(role))
	if err != nil {
		return entities.TeamMember{}, err
	}
	if tag.RowsAffected() == 0 {
		return entities.TeamMember{}, entities.ErrMemberNotFound
	}
	r.logger.Info("member role updated", "team_id", teamID, "user_id", userID, "role", role)
	return r.GetMember(ctx, teamID, userID)
}

func (r *PostgresRepository) RemoveMember(ctx context.Context, teamID string, userID string) (entities.TeamMember, error) {
	r.logger.Debug("removing member", "team_id", teamID, "user_id", userID)
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return entities.TeamMember{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	member, err := r.getMemberTx(ctx, tx, teamID, userID)
	if err != nil {
		return entities.TeamMember{}, err
	}

	if _, err = tx.Exec(ctx, `DELETE FROM team_members WHERE team_id=$1 AND user_id=$2`, teamID, userID); err != nil {
		return entities.TeamMember{}, err
	}

	if err = tx.Commit(ctx); err != nil {
		return entities.TeamMember{}, err
	}
	r.logger.Info("member removed", "team_id", teamID, "user_id", userID)
	return member, nil
}

func (r *PostgresRepository) GetMember(ctx context.Context, teamID string, userID string) (entities.TeamMember, error) {
	return r.scanMember(r.pool.QueryRow(ctx, `SELECT m.team_id, m.user_id, m.role, m.joined_at, u.email, u.display_name
        FROM team_members m JOIN user_profiles u ON u.id=m.user_id
        WHERE m.team_id=$1 AND m.user_id=$2`, teamID, userID))
}

func (r *PostgresRepository) getMemberTx(ctx context.Context, tx pgx.Tx, teamID string, userID string) (entities.TeamMember, error) {
	return r.scanMember(tx.QueryRow(ctx, `SELECT m.team_id, m.user_id, m.role, m.joined_at, u.email, u.display_name
        FROM team_members m JOIN user_profiles u ON u.id=m.user_id
        WHERE m.team_id=$1 AND m.user_id=$2`, teamID, userID))
}

func (r *PostgresRepository) scanMember(row pgx.Row) (entities.TeamMember, error) {
	var m entities.TeamMember
	var role string
	err := row.Scan(&m.TeamID, &m.UserID, &role, &m.JoinedAt, &m.Email, &m.DisplayName)
	if errors.Is(err, pgx.ErrNoRows) {
		return entities.TeamMember{}, entities.ErrMemberNotFound
	}
	if err != nil {
		return entities.TeamMember{}, err
	}
	m.Role = entities.Role(role)
	return m, nil
}

func (r *PostgresRepository) CreateInvitation(ctx context.Context, inv entities.Invitation) (entities.Invitation, error) {
	r.logger.Debug("creating invitation", "team_id", inv.TeamID, "email", inv.Email)
	row := r.pool.QueryRow(ctx, `INSERT INTO team_invitations (id, team_id, email, role, status, token, invited_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, team_id, email, role, status, token, invited_by, created_at`,
		inv.ID, inv.TeamID, inv.Email, string(inv.Role), string(inv.Status), inv.Token, inv.InvitedBy,
	)
	var out entities.Invitation
	var role, status string
	err := row.Scan(&out.ID, &out.TeamID, &out.Email, &role, &status, &out.Token, &out.InvitedBy, &out.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Error("invitation already pending", "team_id", inv.TeamID, "email", inv.Email)
			return entities.Invitation{}, entities.ErrInviteExists
		}
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return entities.Invitation{}, entities.ErrTeamNotFound
		}
		r.logger.Error("failed to insert invitation", "error", err)
		return entities.Invitation{}, err
	}
	out.Role = entities.Role(role)
	out.Status = entities.InvitationStatus(status)
	r.logger.Info("invitation created", "team_id", out.TeamID, "email", out.Email)
	return out, nil
}

func (r *PostgresRepository) ListInvitations(ctx context.Context, teamID string) ([]entities.Invitation, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, team_id, email, role, status, token, invited_by, created_at
        FROM team_invitations WHERE team_id=$1 ORDER BY created_at DESC`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invitations []entities.Invitation
	for rows.Next() {
		var inv entities.Invitation
		var role, status string
		if err = rows.Scan(&inv.ID, &inv.TeamID, &inv.Email, &role, &status, &inv.Token, &inv.InvitedBy, &inv.CreatedAt); err != nil {
			return nil, err
		}
		inv.Role = entities.Role(role)
		inv.Status = entities.InvitationStatus(status)
		invitations = append(invitations, inv)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return invitations, nil
}
