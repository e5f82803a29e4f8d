package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kovalevdm/disaster-alert-service/internal/config"
)

//go:generate mockgen -source=expo.go -destination=mocks/mock.go -package=mocks

// PushSender - контракт доставки push-уведомлений.
// Send возвращает количество адресов, по которым была предпринята попытка
// доставки (после отбрасывания невалидных токенов). Подтверждение доставки
// шлюзом не отслеживается.
type PushSender interface {
	Send(ctx context.Context, tokens []string, title, body string, data map[string]any) (int, error)
}

// pushMessage - одно сообщение в формате Expo push API
type pushMessage struct {
	To    string         `json:"to"`
	Sound string         `json:"sound"`
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Data  map[string]any `json:"data,omitempty"`
}

// ExpoPushSender - реализация PushSender поверх HTTP API Expo.
// Сообщения режутся на чанки по лимиту шлюза и отправляются последовательно;
// отказ одного чанка не прерывает отправку остальных.
type ExpoPushSender struct {
	url        string
	chunkSize  int
	logger     *logrus.Logger
	httpClient *http.Client
}

// NewExpoPushSender создает новый ExpoPushSender
func NewExpoPushSender(cfg *config.Config, logger *logrus.Logger) *ExpoPushSender {
	chunkSize := cfg.PushChunkSize
	if chunkSize <= 0 {
		chunkSize = 100
	}
	return &ExpoPushSender{
		url:       cfg.ExpoPushURL,
		chunkSize: chunkSize,
		logger:    logger,
		httpClient: &http.Client{
			Timeout: cfg.PushTimeout,
		},
	}
}

// IsExpoPushToken проверяет формат токена на стороне клиента
func IsExpoPushToken(token string) bool {
	return (strings.HasPrefix(token, "ExponentPushToken[") || strings.HasPrefix(token, "ExpoPushToken[")) &&
		strings.HasSuffix(token, "]")
}

// Send отбрасывает невалидные токены, режет остаток на чанки и отправляет их
// по очереди. Ошибка чанка логируется, остальные чанки все равно уходят.
func (s *ExpoPushSender) Send(ctx context.Context, tokens []string, title, body string, data map[string]any) (int, error) {
	log := s.logger.WithField("component", "push_sender")

	messages := make([]pushMessage, 0, len(tokens))
	dropped := 0
	for _, token := range tokens {
		if !IsExpoPushToken(token) {
			dropped++
			continue
		}
		messages = append(messages, pushMessage{
			To:    token,
			Sound: "default",
			Title: title,
			Body:  body,
			Data:  data,
		})
	}
	if dropped > 0 {
		log.WithField("dropped", dropped).Warn("Dropped invalid push tokens")
	}
	if len(messages) == 0 {
		return 0, nil
	}

	for start := 0; start < len(messages); start += s.chunkSize {
		end := min(start+s.chunkSize, len(messages))
		if err := s.sendChunk(ctx, messages[start:end]); err != nil {
			// Частичный отказ - штатная ситуация, а не исключение
			log.WithError(err).WithFields(logrus.Fields{
				"chunk_start": start,
				"chunk_size":  end - start,
			}).Error("Failed to deliver push chunk")
		}
	}

	log.WithField("attempted", len(messages)).Debug("Push fan-out completed")
	return len(messages), nil
}

func (s *ExpoPushSender) sendChunk(ctx context.Context, chunk []pushMessage) error {
	payload, err := json.Marshal(chunk)
	if err != nil {
		return fmt.Errorf("failed to marshal push chunk: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send push chunk: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push gateway returned status %d", resp.StatusCode)
	}
	return nil
}
