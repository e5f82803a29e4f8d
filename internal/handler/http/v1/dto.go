package v1

import (
	"time"

	"github.com/google/uuid"
)

// LocationDTO - точка в формате GeoJSON-координат [lon, lat]
// @Description Географическая точка, координаты в порядке [долгота, широта]
type LocationDTO struct {
	Coordinates []float64 `json:"coordinates" validate:"required,len=2"`
}

// RegionDTO - круговая область вокруг точки
// @Description Круговая область: центр [долгота, широта] и радиус в метрах
type RegionDTO struct {
	Coordinates  []float64 `json:"coordinates" validate:"required,len=2"`
	RadiusMeters float64   `json:"radius_meters" validate:"required,gt=0"`
}

// CreateSosRequest DTO для создания SOS-запроса
// @Description DTO для создания SOS-запроса
type CreateSosRequest struct {
	Title              string       `json:"title,omitempty" validate:"omitempty,max=255"`
	Description        string       `json:"description,omitempty"`
	Location           *LocationDTO `json:"location" validate:"required"`
	Severity           string       `json:"severity,omitempty" validate:"omitempty,oneof=Critical High Medium Low"`
	ReporterID         *uuid.UUID   `json:"reporter_id,omitempty"`
	NotifyRadiusMeters float64      `json:"notify_radius_meters,omitempty" validate:"omitempty,gt=0"`
}

// FilterSosRequest DTO для фильтрации SOS-запросов
// @Description DTO для фильтрации SOS-запросов
type FilterSosRequest struct {
	Center       *LocationDTO `json:"center,omitempty"`
	RadiusMeters float64      `json:"radius_meters,omitempty" validate:"omitempty,gt=0"`
	Severity     string       `json:"severity,omitempty" validate:"omitempty,oneof=Critical High Medium Low All"`
	From         *time.Time   `json:"from,omitempty"`
	To           *time.Time   `json:"to,omitempty"`
	Limit        int          `json:"limit,omitempty" validate:"omitempty,gt=0,lte=500"`
}

// BroadcastRequest DTO для массовой рассылки
// @Description DTO для массовой рассылки; без region уведомляются все пользователи с токеном
type BroadcastRequest struct {
	Message string     `json:"message" validate:"required"`
	Region  *RegionDTO `json:"region,omitempty"`
}

// NotifyNearbyRequest DTO для адресной рассылки возле точки
// @Description DTO для адресной рассылки: центр берется из sos_id либо из координат
type NotifyNearbyRequest struct {
	SosID        *uuid.UUID `json:"sos_id,omitempty"`
	Coordinates  []float64  `json:"coordinates,omitempty" validate:"omitempty,len=2"`
	RadiusMeters float64    `json:"radius_meters,omitempty" validate:"omitempty,gt=0"`
	Message      string     `json:"message,omitempty"`
}

// RegisterTokenRequest DTO для регистрации push-токена
// @Description DTO для регистрации push-токена; user_id обязателен
type RegisterTokenRequest struct {
	UserID    uuid.UUID    `json:"user_id" validate:"required"`
	PushToken string       `json:"push_token" validate:"required"`
	Location  *LocationDTO `json:"location,omitempty"`
	Name      string       `json:"name,omitempty"`
	Email     string       `json:"email,omitempty" validate:"omitempty,email"`
}

// SosResponse DTO для ответа с информацией о SOS-запросе
// @Description DTO для ответа с информацией о SOS-запросе
type SosResponse struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Latitude       float64    `json:"latitude"`
	Longitude      float64    `json:"longitude"`
	Severity       string     `json:"severity"`
	Status         string     `json:"status"`
	ReporterID     *uuid.UUID `json:"reporter_id,omitempty"`
	ReminderCount  int        `json:"reminder_count"`
	LastReminderAt *time.Time `json:"last_reminder_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NotifyResponse DTO для ответа рассылки
// @Description DTO для ответа рассылки
type NotifyResponse struct {
	Notified int `json:"notified"`
}

// UserResponse DTO для ответа с информацией о пользователе
// @Description DTO для ответа с информацией о пользователе
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
