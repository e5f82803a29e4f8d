package models

import (
	"time"

	"github.com/google/uuid"
)

// User - зарегистрированный получатель push-уведомлений.
// PushToken и координаты опциональны: без токена пользователь не получает
// уведомления, без координат - не попадает в гео-выборки.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name,omitempty"`
	Email          string    `json:"email,omitempty"`
	PushToken      *string   `json:"push_token,omitempty"`
	Latitude       *float64  `json:"latitude,omitempty"`
	Longitude      *float64  `json:"longitude,omitempty"`
	DistanceMeters float64   `json:"distance_meters,omitempty"` // заполняется гео-запросом
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
