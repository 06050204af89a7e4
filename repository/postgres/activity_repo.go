package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/studyplanner/domain"
	"github.com/fastygo/studyplanner/repository"
)

type activityRepository struct {
	pool *pgxpool.Pool
}

// NewActivityRepository returns a Postgres-backed implementation of ActivityRepository.
func NewActivityRepository(pool *pgxpool.Pool) repository.ActivityRepository {
	return &activityRepository{pool: pool}
}

func (r *activityRepository) List(ctx context.Context) ([]domain.Activity, error) {
	const query = `
	SELECT id, title, description, activity_date, activity_time, subject, priority, completed
	FROM activities
	ORDER BY created_at, id
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []domain.Activity{}
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *activity)
	}
	return activities, rows.Err()
}

func (r *activityRepository) GetByID(ctx context.Context, id domain.ID) (*domain.Activity, error) {
	const query = `
	SELECT id, title, description, activity_date, activity_time, subject, priority, completed
	FROM activities
	WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id.String())
	return scanActivity(row)
}

func (r *activityRepository) Create(ctx context.Context, draft domain.Draft) (*domain.Activity, error) {
	activity := draft.NewActivity(domain.ID(uuid.NewString()))
	if draft.Completed != nil {
		activity.Completed = *draft.Completed
	}

	const query = `
	INSERT INTO activities (id, title, description, activity_date, activity_time, subject, priority, completed)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := r.pool.Exec(ctx, query,
		activity.ID.String(),
		activity.Title,
		activity.Description,
		activity.Date,
		activity.Time,
		activity.Subject,
		string(activity.Priority),
		activity.Completed,
	); err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepository) Update(ctx context.Context, activity *domain.Activity) error {
	if activity == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE activities
	SET title = $2,
		description = $3,
		activity_date = $4,
		activity_time = $5,
		subject = $6,
		priority = $7,
		completed = $8,
		updated_at = NOW()
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		activity.ID.String(),
		activity.Title,
		activity.Description,
		activity.Date,
		activity.Time,
		activity.Subject,
		string(activity.Priority),
		activity.Completed,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

func (r *activityRepository) Upsert(ctx context.Context, activity *domain.Activity) error {
	if activity == nil || activity.ID == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
	INSERT INTO activities (id, title, description, activity_date, activity_time, subject, priority, completed)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE
	SET title = EXCLUDED.title,
		description = EXCLUDED.description,
		activity_date = EXCLUDED.activity_date,
		activity_time = EXCLUDED.activity_time,
		subject = EXCLUDED.subject,
		priority = EXCLUDED.priority,
		completed = EXCLUDED.completed,
		updated_at = NOW()
	`
	_, err := r.pool.Exec(ctx, query,
		activity.ID.String(),
		activity.Title,
		activity.Description,
		activity.Date,
		activity.Time,
		activity.Subject,
		string(activity.Priority),
		activity.Completed,
	)
	return err
}

func (r *activityRepository) Delete(ctx context.Context, id domain.ID) error {
	const query = `DELETE FROM activities WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id.String())
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrActivityNotFound
	}
	return nil
}

func scanActivity(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Activity, error) {
	var (
		activity domain.Activity
		id       string
		priority string
	)

	if err := row.Scan(
		&id,
		&activity.Title,
		&activity.Description,
		&activity.Date,
		&activity.Time,
		&activity.Subject,
		&priority,
		&activity.Completed,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrActivityNotFound
		}
		return nil, err
	}

	activity.ID = domain.ID(id)
	activity.Priority = domain.Priority(priority)
	return &activity, nil
}
