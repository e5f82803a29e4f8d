package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kovalevdm/disaster-alert-service/internal/config"
	"github.com/kovalevdm/disaster-alert-service/internal/events"
	"github.com/kovalevdm/disaster-alert-service/internal/models"
	"github.com/kovalevdm/disaster-alert-service/internal/notifier"
)

//go:generate mockgen -source=sos.go -destination=mocks/mock.go -package=mocks

// SosRepository определяет контракт хранилища SOS-запросов
type SosRepository interface {
	Create(ctx context.Context, sos *models.SosRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SosRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Filter(ctx context.Context, filter models.SosFilter) ([]*models.SosRequest, error)
	FindStale(ctx context.Context, cutoff time.Time, maxReminders int) ([]*models.SosRequest, error)
	IncrementReminder(ctx context.Context, id uuid.UUID) error
	GetSosFromCache(ctx context.Context, id uuid.UUID) (*models.SosRequest, error)
	SetSosCache(ctx context.Context, sos *models.SosRequest) error
	InvalidateSosCache(ctx context.Context, id uuid.UUID) error
}

// UserRepository определяет контракт гео-индекса получателей уведомлений.
// FindNearby возвращает только пользователей с push-токеном, по возрастанию
// расстояния от центра; граница радиуса включительна.
type UserRepository interface {
	FindNearby(ctx context.Context, center models.Point, radiusMeters float64) ([]*models.User, error)
	FindAllWithPushToken(ctx context.Context) ([]*models.User, error)
	Upsert(ctx context.Context, user *models.User) error
}

// NotifyNearbyParams - параметры адресной рассылки возле точки.
// Центр берется либо из существующего SOS-запроса, либо из координат.
type NotifyNearbyParams struct {
	SosID        *uuid.UUID
	Center       *models.Point
	RadiusMeters float64
	Message      string
}

// SosService определяет контракт бизнес-логики SOS-запросов и рассылок
type SosService interface {
	ReportSos(ctx context.Context, sos *models.SosRequest, notifyRadiusMeters float64) error
	GetSos(ctx context.Context, id uuid.UUID) (*models.SosRequest, error)
	DeleteSos(ctx context.Context, id uuid.UUID) error
	FilterSos(ctx context.Context, filter models.SosFilter) ([]*models.SosRequest, error)
	Broadcast(ctx context.Context, message string, region *models.Region) (int, error)
	NotifyNearby(ctx context.Context, params NotifyNearbyParams) (int, error)
	RegisterPushToken(ctx context.Context, user *models.User) error
}

type sosService struct {
	repo      SosRepository
	users     UserRepository
	push      notifier.PushSender
	publisher events.EventPublisher
	logger    *logrus.Logger
	cfg       *config.Config
}

func NewSosService(repo SosRepository, users UserRepository, push notifier.PushSender, publisher events.EventPublisher, logger *logrus.Logger, cfg *config.Config) SosService {
	return &sosService{
		repo:      repo,
		users:     users,
		push:      push,
		publisher: publisher,
		logger:    logger,
		cfg:       cfg,
	}
}

// ReportSos сохраняет SOS-запрос и запускает рассылку уведомлений поблизости.
// Рассылка и событие живого канала - best-effort: их отказ не отменяет
// созданную запись и не возвращается вызывающему.
func (s *sosService) ReportSos(ctx context.Context, sos *models.SosRequest, notifyRadiusMeters float64) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":  "sos",
		"method":   "ReportSos",
		"severity": sos.Severity,
	})

	point := models.Point{Latitude: sos.Latitude, Longitude: sos.Longitude}
	if err := point.Validate(); err != nil {
		log.WithError(err).Warn("Rejected sos report with invalid location")
		return err
	}

	if sos.Title == "" {
		sos.Title = "SOS Alert"
	}
	if sos.Severity == "" {
		sos.Severity = models.SeverityMedium
	}
	sos.Status = models.StatusPending

	if err := s.repo.Create(ctx, sos); err != nil {
		log.WithError(err).Error("Failed to create sos request in repository")
		return fmt.Errorf("service: could not create sos request: %w", err)
	}
	log = log.WithField("sos_id", sos.ID)
	log.Info("Sos request created")

	// Событие для подключенных real-time клиентов, без подтверждения
	if err := s.publisher.Publish(ctx, events.SosEvent{Type: events.EventSosNew, SosID: sos.ID, Sos: sos}); err != nil {
		log.WithError(err).Warn("Failed to publish sos:new event")
	}

	radius := notifyRadiusMeters
	if radius <= 0 {
		radius = s.cfg.NotifyRadiusMeters
	}

	notified, err := s.fanout(ctx, sos, radius)
	if err != nil {
		log.WithError(err).Error("Fan-out failed for created sos request")
		return nil
	}

	log.WithFields(logrus.Fields{
		"notified":      notified,
		"radius_meters": radius,
	}).Info("Fan-out completed for created sos request")
	return nil
}

// fanout находит получателей в радиусе, исключает автора и отправляет push
func (s *sosService) fanout(ctx context.Context, sos *models.SosRequest, radiusMeters float64) (int, error) {
	nearby, err := s.users.FindNearby(ctx, models.Point{Latitude: sos.Latitude, Longitude: sos.Longitude}, radiusMeters)
	if err != nil {
		return 0, fmt.Errorf("find nearby users: %w", err)
	}

	tokens := make([]string, 0, len(nearby))
	for _, user := range nearby {
		if sos.ReporterID != nil && user.ID == *sos.ReporterID {
			// Автор SOS о собственном запросе не уведомляется
			continue
		}
		if user.PushToken != nil {
			tokens = append(tokens, *user.PushToken)
		}
	}

	body := fmt.Sprintf("%s SOS nearby: %s", sos.Severity, sos.Title)
	return s.push.Send(ctx, tokens, "Disaster Alert", body, map[string]any{
		"sos_id":    sos.ID.String(),
		"severity":  string(sos.Severity),
		"latitude":  sos.Latitude,
		"longitude": sos.Longitude,
	})
}

// GetSos получает SOS-запрос, сначала из кеша, затем из бд
func (s *sosService) GetSos(ctx context.Context, id uuid.UUID) (*models.SosRequest, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "sos",
		"method":  "GetSos",
		"sos_id":  id,
	})

	cached, err := s.repo.GetSosFromCache(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to read sos request from cache")
	} else if cached != nil {
		return cached, nil
	}

	sos, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get sos request from repository")
		return nil, fmt.Errorf("service: could not get sos request: %w", err)
	}

	if err := s.repo.SetSosCache(ctx, sos); err != nil {
		log.WithError(err).Warn("Failed to cache sos request")
	}
	return sos, nil
}

// DeleteSos удаляет SOS-запрос и публикует событие отзыва для live-клиентов
func (s *sosService) DeleteSos(ctx context.Context, id uuid.UUID) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "sos",
		"method":  "DeleteSos",
		"sos_id":  id,
	})

	if err := s.repo.Delete(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to delete sos request")
		return fmt.Errorf("service: could not delete sos request: %w", err)
	}

	if err := s.repo.InvalidateSosCache(ctx, id); err != nil {
		log.WithError(err).Warn("Failed to invalidate sos request cache")
	}

	if err := s.publisher.Publish(ctx, events.SosEvent{Type: events.EventSosRemoved, SosID: id}); err != nil {
		log.WithError(err).Warn("Failed to publish sos:removed event")
	}

	log.Info("Sos request deleted")
	return nil
}

// FilterSos возвращает SOS-запросы по критериям с нормализацией лимитов
func (s *sosService) FilterSos(ctx context.Context, filter models.SosFilter) ([]*models.SosRequest, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "sos",
		"method":  "FilterSos",
	})

	if filter.Center != nil {
		if err := filter.Center.Validate(); err != nil {
			log.WithError(err).Warn("Rejected filter with invalid center")
			return nil, err
		}
		if filter.RadiusMeters <= 0 {
			filter.RadiusMeters = s.cfg.NotifyRadiusMeters
		}
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 500 {
		filter.Limit = 500
	}

	sosList, err := s.repo.Filter(ctx, filter)
	if err != nil {
		log.WithError(err).Error("Failed to filter sos requests")
		return nil, fmt.Errorf("service: could not filter sos requests: %w", err)
	}

	log.WithField("count", len(sosList)).Debug("Sos requests filtered")
	return sosList, nil
}

// Broadcast рассылает сообщение всем пользователям с push-токеном либо
// только пользователям внутри заданной области. Возвращает число адресатов,
// по которым была предпринята попытка доставки.
func (s *sosService) Broadcast(ctx context.Context, message string, region *models.Region) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "sos",
		"method":  "Broadcast",
	})

	var (
		recipients []*models.User
		err        error
	)
	if region != nil {
		if err := region.Center.Validate(); err != nil {
			log.WithError(err).Warn("Rejected broadcast with invalid region")
			return 0, err
		}
		radius := region.RadiusMeters
		if radius <= 0 {
			radius = s.cfg.NotifyRadiusMeters
		}
		recipients, err = s.users.FindNearby(ctx, region.Center, radius)
	} else {
		recipients, err = s.users.FindAllWithPushToken(ctx)
	}
	if err != nil {
		log.WithError(err).Error("Failed to select broadcast recipients")
		return 0, fmt.Errorf("service: could not select broadcast recipients: %w", err)
	}

	notified, err := s.push.Send(ctx, collectTokens(recipients), "Disaster Alert", message, map[string]any{
		"type": "BROADCAST",
	})
	if err != nil {
		// Отказ доставки не отменяет операцию рассылки
		log.WithError(err).Error("Broadcast delivery failed")
	}

	log.WithField("notified", notified).Info("Broadcast completed")
	return notified, nil
}

// NotifyNearby рассылает сообщение пользователям возле точки, взятой либо из
// существующего SOS-запроса, либо из переданных координат
func (s *sosService) NotifyNearby(ctx context.Context, params NotifyNearbyParams) (int, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "sos",
		"method":  "NotifyNearby",
	})

	var center models.Point
	switch {
	case params.SosID != nil:
		sos, err := s.GetSos(ctx, *params.SosID)
		if err != nil {
			return 0, err
		}
		center = models.Point{Latitude: sos.Latitude, Longitude: sos.Longitude}
	case params.Center != nil:
		center = *params.Center
		if err := center.Validate(); err != nil {
			log.WithError(err).Warn("Rejected nearby notification with invalid coordinates")
			return 0, err
		}
	default:
		log.Warn("Nearby notification without sos id or coordinates")
		return 0, models.ErrInvalidLocation
	}

	radius := params.RadiusMeters
	if radius <= 0 {
		radius = s.cfg.NotifyRadiusMeters
	}

	recipients, err := s.users.FindNearby(ctx, center, radius)
	if err != nil {
		log.WithError(err).Error("Failed to find nearby notification recipients")
		return 0, fmt.Errorf("service: could not find nearby users: %w", err)
	}

	message := params.Message
	if message == "" {
		message = fmt.Sprintf("Alert nearby (%.0fm)", radius)
	}

	notified, err := s.push.Send(ctx, collectTokens(recipients), "Disaster Alert", message, map[string]any{
		"type":      "NEARBY",
		"latitude":  center.Latitude,
		"longitude": center.Longitude,
	})
	if err != nil {
		log.WithError(err).Error("Nearby notification delivery failed")
	}

	log.WithFields(logrus.Fields{
		"notified":      notified,
		"radius_meters": radius,
	}).Info("Nearby notification completed")
	return notified, nil
}

// RegisterPushToken сохраняет push-токен и необязательное местоположение
// пользователя. Идентификатор обязан прийти от вызывающего: новые личности
// при регистрации токена не создаются неявно.
func (s *sosService) RegisterPushToken(ctx context.Context, user *models.User) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "sos",
		"method":  "RegisterPushToken",
		"user_id": user.ID,
	})

	if user.ID == uuid.Nil {
		return fmt.Errorf("service: user id is required for token registration")
	}
	if user.Latitude != nil || user.Longitude != nil {
		if user.Latitude == nil || user.Longitude == nil {
			return models.ErrInvalidLocation
		}
		point := models.Point{Latitude: *user.Latitude, Longitude: *user.Longitude}
		if err := point.Validate(); err != nil {
			log.WithError(err).Warn("Rejected token registration with invalid location")
			return err
		}
	}

	if err := s.users.Upsert(ctx, user); err != nil {
		log.WithError(err).Error("Failed to upsert user")
		return fmt.Errorf("service: could not register push token: %w", err)
	}

	log.Info("Push token registered")
	return nil
}

func collectTokens(users []*models.User) []string {
	tokens := make([]string, 0, len(users))
	for _, user := range users {
		if user.PushToken != nil && *user.PushToken != "" {
			tokens = append(tokens, *user.PushToken)
		}
	}
	return tokens
}
