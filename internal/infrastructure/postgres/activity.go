package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/entities"
)

func (r *PostgresRepository) ListTeamActivity(ctx context.Context, teamID string, limit int) ([]entities.ActivityWithActor, error) {
	rows, err := r.pool.Query(ctx, `SELECT a.id, a.team_id, a.actor_id, a.action, a.details, a.created_at,
        COALESCE(u.email, ''), COALESCE(u.display_name, '')
        FROM team_activity_audit a LEFT JOIN user_profiles u ON u.id=a.actor_id
        WHERE a.team_id=$1 ORDER BY a.created_at DESC LIMIT $2`, teamID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []entities.ActivityWithActor
	for rows.Next() {
		var rec entities.ActivityWithActor
		var action string
		var raw []byte
		if err = rows.Scan(&rec.ID, &rec.TeamID, &rec.ActorID, &action, &raw, &rec.CreatedAt, &rec.ActorEmail, &rec.ActorDisplayName); err != nil {
			return nil, err
		}
		rec.Action = entities.ActivityAction(action)
		details, err := entities.DecodeActivityDetails(rec.Action, raw)
		if err != nil {
			return nil, err
		}
		rec.Details = details
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PostgresRepository) CreateActivityRecord(ctx context.Context, record entities.ActivityRecord) (entities.ActivityRecord, error) {
	raw, err := entities.EncodeActivityDetails(record.Details)
	if err != nil {
		return entities.ActivityRecord{}, err
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	row := r.pool.QueryRow(ctx, `INSERT INTO team_activity_audit (id, team_id, actor_id, action, details)
        VALUES ($1,$2,$3,$4,$5) RETURNING created_at`,
		record.ID, record.TeamID, record.ActorID, string(record.Action), raw,
	)
	if err := row.Scan(&record.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return entities.ActivityRecord{}, entities.ErrTeamNotFound
		}
		r.logger.Error("failed to insert activity record", "team_id", record.TeamID, "error", err)
		return entities.ActivityRecord{}, err
	}
	return record, nil
}
