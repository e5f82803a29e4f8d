package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kovalevdm/disaster-alert-service/internal/config"
	"github.com/kovalevdm/disaster-alert-service/internal/models"
	"github.com/kovalevdm/disaster-alert-service/internal/notifier"
	"github.com/kovalevdm/disaster-alert-service/internal/service"
)

// ReminderScheduler - периодическая задача повторных уведомлений по
// незакрытым SOS-запросам. Счетчик напоминаний растет при каждой обработке
// запроса, даже если получателей рядом не нашлось: так запрос гарантированно
// доходит до лимита и выпадает из последующих сканирований.
//
// Рассчитан на запуск в единственном экземпляре: два планировщика над одной
// базой могут напомнить об одном запросе дважды в пересекающихся циклах.
type ReminderScheduler struct {
	repo    service.SosRepository
	users   service.UserRepository
	push    notifier.PushSender
	logger  *logrus.Logger
	cfg     *config.Config
	running atomic.Bool
}

// NewReminderScheduler создает новый ReminderScheduler
func NewReminderScheduler(repo service.SosRepository, users service.UserRepository, push notifier.PushSender, logger *logrus.Logger, cfg *config.Config) *ReminderScheduler {
	return &ReminderScheduler{
		repo:   repo,
		users:  users,
		push:   push,
		logger: logger,
		cfg:    cfg,
	}
}

// Start запускает горутину планировщика. Тик, пришедший во время еще
// идущего цикла, пропускается, а не ставится в очередь.
func (s *ReminderScheduler) Start(ctx context.Context) {
	s.logger.WithField("interval", s.cfg.ReminderInterval.String()).Info("Starting reminder scheduler")

	go func() {
		ticker := time.NewTicker(s.cfg.ReminderInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				s.logger.Info("Stopping reminder scheduler")
				return
			case <-ticker.C:
				if !s.running.CompareAndSwap(false, true) {
					s.logger.Warn("Previous reminder cycle still running, skipping tick")
					continue
				}
				s.RunCycle(ctx)
				s.running.Store(false)
			}
		}
	}()
}

// RunCycle выполняет один цикл напоминаний. Ошибка обработки отдельного
// запроса логируется и не прерывает цикл; недоступность хранилища обрывает
// текущий цикл, но не останавливает планировщик.
func (s *ReminderScheduler) RunCycle(ctx context.Context) {
	log := s.logger.WithField("component", "reminder_scheduler")

	cutoff := time.Now().Add(-time.Duration(s.cfg.ReminderThresholdMinutes) * time.Minute)
	stale, err := s.repo.FindStale(ctx, cutoff, s.cfg.ReminderMaxPerSos)
	if err != nil {
		log.WithError(err).Error("Failed to scan stale sos requests, aborting cycle")
		return
	}

	log.WithField("count", len(stale)).Debug("Stale sos requests selected for reminders")

	for _, sos := range stale {
		if err := s.remind(ctx, sos); err != nil {
			log.WithError(err).WithField("sos_id", sos.ID).Error("Failed to process reminder for sos request")
		}
	}
}

// remind обрабатывает напоминание по одному SOS-запросу
func (s *ReminderScheduler) remind(ctx context.Context, sos *models.SosRequest) error {
	log := s.logger.WithFields(logrus.Fields{
		"component":      "reminder_scheduler",
		"sos_id":         sos.ID,
		"reminder_count": sos.ReminderCount,
	})

	center := models.Point{Latitude: sos.Latitude, Longitude: sos.Longitude}
	nearby, err := s.users.FindNearby(ctx, center, s.cfg.ReminderRadiusMeters)
	if err != nil {
		return fmt.Errorf("find nearby users: %w", err)
	}

	tokens := make([]string, 0, len(nearby))
	for _, user := range nearby {
		if user.PushToken != nil {
			tokens = append(tokens, *user.PushToken)
		}
	}

	if len(tokens) == 0 {
		// Счетчик растет и без получателей, иначе изолированный запрос
		// пересканировался бы бесконечно
		log.Debug("No reminder recipients found, incrementing counter anyway")
		return s.repo.IncrementReminder(ctx, sos.ID)
	}

	body := fmt.Sprintf("Reminder: %s needs attention (severity: %s)", sos.Title, sos.Severity)
	notified, err := s.push.Send(ctx, tokens, "Disaster Alert", body, map[string]any{
		"sos_id":   sos.ID.String(),
		"severity": string(sos.Severity),
	})
	if err != nil {
		// Отказ доставки не освобождает от инкремента: прогресс к лимиту
		// должен быть монотонным
		log.WithError(err).Error("Reminder delivery failed")
	} else {
		log.WithField("notified", notified).Info("Reminder sent")
	}

	return s.repo.IncrementReminder(ctx, sos.ID)
}
