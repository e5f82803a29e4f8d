package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/kovalevdm/disaster-alert-service/internal/models"
	"github.com/kovalevdm/disaster-alert-service/internal/service"
)

const sosCacheTTL = 5 * time.Minute

// Базовый набор колонок SOS-запроса; координаты извлекаются из geography-колонки
const sosColumns = `
	id,
	title,
	description,
	ST_Y(location::geometry) AS latitude,
	ST_X(location::geometry) AS longitude,
	severity,
	status,
	reporter_id,
	reminder_count,
	last_reminder_at,
	created_at,
	updated_at`

type SosRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewSosRepository(db *pgxpool.Pool, redisClient *redis.Client) service.SosRepository {
	return &SosRepository{
		db:          db,
		redisClient: redisClient,
	}
}

// Create создает новую запись SOS-запроса в бд
func (r *SosRepository) Create(ctx context.Context, sos *models.SosRequest) error {
	query := `
		INSERT INTO sos_requests (title, description, location, severity, status, reporter_id)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326)::geography, $5, $6, $7)
		RETURNING id, reminder_count, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		sos.Title,
		sos.Description,
		sos.Longitude,
		sos.Latitude,
		sos.Severity,
		sos.Status,
		sos.ReporterID,
	).Scan(&sos.ID, &sos.ReminderCount, &sos.CreatedAt, &sos.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create sos request: %w", err)
	}
	return nil
}

// GetByID возвращает SOS-запрос по его UUID
func (r *SosRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SosRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM sos_requests WHERE id = $1;`, sosColumns)

	sos, err := scanSosRow(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("sos request %s: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get sos request by id: %w", err)
	}
	return sos, nil
}

// Delete полностью удаляет SOS-запрос
func (r *SosRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM sos_requests WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sos request: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("sos request %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// Filter возвращает SOS-запросы по критериям.
// При заданном центре сортировка идет по удаленности от него (вторично -
// по убыванию даты создания), иначе - только по убыванию даты создания.
func (r *SosRepository) Filter(ctx context.Context, filter models.SosFilter) ([]*models.SosRequest, error) {
	var (
		where   []string
		args    []any
		orderBy = "created_at DESC"
	)

	if filter.Severity != "" && filter.Severity != "All" {
		args = append(args, filter.Severity)
		where = append(where, fmt.Sprintf("severity = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		where = append(where, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where = append(where, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.Center != nil {
		args = append(args, filter.Center.Longitude, filter.Center.Latitude, filter.RadiusMeters)
		lonIdx, latIdx, radIdx := len(args)-2, len(args)-1, len(args)
		where = append(where, fmt.Sprintf(
			"ST_DWithin(location, ST_SetSRID(ST_MakePoint($%d, $%d), 4326)::geography, $%d)",
			lonIdx, latIdx, radIdx,
		))
		orderBy = fmt.Sprintf(
			"ST_Distance(location, ST_SetSRID(ST_MakePoint($%d, $%d), 4326)::geography) ASC, created_at DESC",
			lonIdx, latIdx,
		)
	}

	query := fmt.Sprintf(`SELECT %s FROM sos_requests`, sosColumns)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY %s LIMIT $%d;", orderBy, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to filter sos requests: %w", err)
	}
	defer rows.Close()

	return collectSosRows(rows)
}

// FindStale возвращает незакрытые SOS-запросы старше cutoff, еще не
// исчерпавшие лимит напоминаний. Достигшие лимита в выборку не попадают.
func (r *SosRepository) FindStale(ctx context.Context, cutoff time.Time, maxReminders int) ([]*models.SosRequest, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM sos_requests
		WHERE status = $1
			AND created_at <= $2
			AND reminder_count < $3
		ORDER BY created_at ASC;`, sosColumns)

	rows, err := r.db.Query(ctx, query, models.StatusPending, cutoff, maxReminders)
	if err != nil {
		return nil, fmt.Errorf("failed to find stale sos requests: %w", err)
	}
	defer rows.Close()

	return collectSosRows(rows)
}

// IncrementReminder атомарно увеличивает счетчик напоминаний и фиксирует
// время последней попытки
func (r *SosRepository) IncrementReminder(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE sos_requests SET
			reminder_count = reminder_count + 1,
			last_reminder_at = NOW(),
			updated_at = NOW()
		WHERE id = $1;
	`
	cmdTag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to increment reminder count: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("sos request %s: %w", id, models.ErrNotFound)
	}
	return nil
}

// GetSosFromCache пытается получить SOS-запрос из Redis
func (r *SosRepository) GetSosFromCache(ctx context.Context, id uuid.UUID) (*models.SosRequest, error) {
	key := fmt.Sprintf("sos:%s", id.String())
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get sos request from cache: %w", err)
	}

	sos := &models.SosRequest{}
	if err := json.Unmarshal(val, sos); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sos request from cache: %w", err)
	}
	return sos, nil
}

// SetSosCache сохраняет SOS-запрос в Redis
func (r *SosRepository) SetSosCache(ctx context.Context, sos *models.SosRequest) error {
	key := fmt.Sprintf("sos:%s", sos.ID.String())
	val, err := json.Marshal(sos)
	if err != nil {
		return fmt.Errorf("failed to marshal sos request for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, key, val, sosCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set sos request in cache: %w", err)
	}
	return nil
}

// InvalidateSosCache удаляет SOS-запрос из Redis кэша
func (r *SosRepository) InvalidateSosCache(ctx context.Context, id uuid.UUID) error {
	key := fmt.Sprintf("sos:%s", id.String())
	if err := r.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate sos request cache: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSosRow(row rowScanner) (*models.SosRequest, error) {
	sos := &models.SosRequest{}
	err := row.Scan(
		&sos.ID,
		&sos.Title,
		&sos.Description,
		&sos.Latitude,
		&sos.Longitude,
		&sos.Severity,
		&sos.Status,
		&sos.ReporterID,
		&sos.ReminderCount,
		&sos.LastReminderAt,
		&sos.CreatedAt,
		&sos.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return sos, nil
}

func collectSosRows(rows pgx.Rows) ([]*models.SosRequest, error) {
	sosList := make([]*models.SosRequest, 0)
	for rows.Next() {
		sos, err := scanSosRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sos request row: %w", err)
		}
		sosList = append(sosList, sos)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sos request rows: %w", err)
	}
	return sosList, nil
}
