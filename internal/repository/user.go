package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kovalevdm/disaster-alert-service/internal/models"
	"github.com/kovalevdm/disaster-alert-service/internal/service"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) service.UserRepository {
	return &UserRepository{db: db}
}

// FindNearby возвращает пользователей с push-токеном в радиусе radiusMeters
// от центра (граница включительно), отсортированных по возрастанию
// расстояния. Порядок при равном расстоянии не определен.
func (r *UserRepository) FindNearby(ctx context.Context, center models.Point, radiusMeters float64) ([]*models.User, error) {
	if err := center.Validate(); err != nil {
		return nil, err
	}

	query := `
		SELECT
			id,
			name,
			COALESCE(email, '') AS email,
			push_token,
			ST_Y(location::geometry) AS latitude,
			ST_X(location::geometry) AS longitude,
			ST_Distance(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography) AS distance_meters,
			created_at,
			updated_at
		FROM users
		WHERE push_token IS NOT NULL
			AND location IS NOT NULL
			AND ST_DWithin(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
		ORDER BY distance_meters ASC;
	`
	rows, err := r.db.Query(ctx, query, center.Longitude, center.Latitude, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("failed to find nearby users: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user := &models.User{}
		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.PushToken,
			&user.Latitude,
			&user.Longitude,
			&user.DistanceMeters,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row in FindNearby: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows in FindNearby: %w", err)
	}
	return users, nil
}

// FindAllWithPushToken возвращает всех пользователей с push-токеном
func (r *UserRepository) FindAllWithPushToken(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT
			id,
			name,
			COALESCE(email, '') AS email,
			push_token,
			ST_Y(location::geometry) AS latitude,
			ST_X(location::geometry) AS longitude,
			created_at,
			updated_at
		FROM users
		WHERE push_token IS NOT NULL;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users with push token: %w", err)
	}
	defer rows.Close()

	users := make([]*models.User, 0)
	for rows.Next() {
		user := &models.User{}
		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.PushToken,
			&user.Latitude,
			&user.Longitude,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating user rows: %w", err)
	}
	return users, nil
}

// Upsert создает или обновляет пользователя по стабильному идентификатору.
// Обновляются только переданные поля: пустое имя, email или отсутствующие
// координаты не затирают уже сохраненные значения.
func (r *UserRepository) Upsert(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, name, email, push_token, location)
		VALUES ($1, $2, NULLIF($3, ''), $4,
			CASE WHEN $5::float8 IS NOT NULL AND $6::float8 IS NOT NULL
				THEN ST_SetSRID(ST_MakePoint($6, $5), 4326)::geography
			END)
		ON CONFLICT (id) DO UPDATE SET
			push_token = EXCLUDED.push_token,
			name       = COALESCE(NULLIF(EXCLUDED.name, ''), users.name),
			email      = COALESCE(EXCLUDED.email, users.email),
			location   = COALESCE(EXCLUDED.location, users.location),
			updated_at = NOW()
		RETURNING created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PushToken,
		user.Latitude,
		user.Longitude,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}
