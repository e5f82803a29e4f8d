package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Severity - уровень серьезности SOS-запроса
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// Статусы жизненного цикла SOS-запроса
const (
	StatusPending  = "pending"
	StatusResolved = "resolved"
)

var (
	// ErrNotFound - запись не найдена в хранилище
	ErrNotFound = errors.New("not found")

	// ErrInvalidLocation - координаты отсутствуют или вне допустимого диапазона
	ErrInvalidLocation = errors.New("invalid location")
)

// SosRequest - SOS-запрос с геопривязкой
type SosRequest struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Latitude       float64    `json:"latitude"`
	Longitude      float64    `json:"longitude"`
	Severity       Severity   `json:"severity"`
	Status         string     `json:"status"`
	ReporterID     *uuid.UUID `json:"reporter_id,omitempty"`
	ReminderCount  int        `json:"reminder_count"`
	LastReminderAt *time.Time `json:"last_reminder_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Point - географическая точка (WGS84)
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate проверяет, что координаты попадают в допустимый диапазон
func (p Point) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return ErrInvalidLocation
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return ErrInvalidLocation
	}
	return nil
}

// Region - круговая область вокруг точки, радиус в метрах
type Region struct {
	Center       Point   `json:"center"`
	RadiusMeters float64 `json:"radius_meters"`
}

// SosFilter - критерии выборки SOS-запросов.
// При заданном Center результат сортируется по удаленности от центра,
// иначе - по убыванию даты создания.
type SosFilter struct {
	Center       *Point
	RadiusMeters float64
	Severity     Severity // пустое значение или "All" - без фильтра по серьезности
	From         *time.Time
	To           *time.Time
	Limit        int
}
