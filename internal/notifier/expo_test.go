package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kovalevdm/disaster-alert-service/internal/config"
)

// newTestSender — вспомогательная функция для создания отправителя поверх тестового сервера.
func newTestSender(t *testing.T, chunkSize int, handler http.HandlerFunc) *ExpoPushSender {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		ExpoPushURL:   server.URL,
		PushChunkSize: chunkSize,
		PushTimeout:   5 * time.Second,
	}
	return NewExpoPushSender(cfg, logger)
}

func TestIsExpoPushToken(t *testing.T) {
	assert.True(t, IsExpoPushToken("ExponentPushToken[xxxxxxxx]"))
	assert.True(t, IsExpoPushToken("ExpoPushToken[xxxxxxxx]"))
	assert.False(t, IsExpoPushToken("ExponentPushToken[xxxxxxxx"))
	assert.False(t, IsExpoPushToken("fcm-token-123"))
	assert.False(t, IsExpoPushToken(""))
}

func TestSend_FiltersInvalidTokens(t *testing.T) {
	// Подготовка
	var (
		mu       sync.Mutex
		received []pushMessage
	)
	sender := newTestSender(t, 100, func(w http.ResponseWriter, r *http.Request) {
		var chunk []pushMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&chunk))
		mu.Lock()
		received = append(received, chunk...)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})

	tokens := []string{
		"ExponentPushToken[valid-1]",
		"not-a-token",
		"ExponentPushToken[valid-2]",
		"apns-device-token",
	}

	// Действие
	attempted, err := sender.Send(context.Background(), tokens, "Disaster Alert", "Тест", nil)

	// Проверки: невалидные токены отброшены до отправки
	require.NoError(t, err)
	assert.Equal(t, 2, attempted)
	require.Len(t, received, 2)
	assert.Equal(t, "ExponentPushToken[valid-1]", received[0].To)
	assert.Equal(t, "ExponentPushToken[valid-2]", received[1].To)
	assert.Equal(t, "default", received[0].Sound)
}

func TestSend_AllTokensInvalid(t *testing.T) {
	// Подготовка: сервер не должен получить ни одного запроса
	sender := newTestSender(t, 100, func(w http.ResponseWriter, r *http.Request) {
		t.Error("push gateway should not be called")
	})

	// Действие
	attempted, err := sender.Send(context.Background(), []string{"bad-1", "bad-2"}, "Disaster Alert", "Тест", nil)

	// Проверки
	require.NoError(t, err)
	assert.Zero(t, attempted)
}

func TestSend_ChunksLargeBatches(t *testing.T) {
	// Подготовка
	var (
		mu         sync.Mutex
		chunkSizes []int
	)
	sender := newTestSender(t, 100, func(w http.ResponseWriter, r *http.Request) {
		var chunk []pushMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&chunk))
		mu.Lock()
		chunkSizes = append(chunkSizes, len(chunk))
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})

	tokens := make([]string, 0, 250)
	for i := 0; i < 250; i++ {
		tokens = append(tokens, "ExponentPushToken[batch]")
	}

	// Действие
	attempted, err := sender.Send(context.Background(), tokens, "Disaster Alert", "Массовая рассылка", nil)

	// Проверки: 250 сообщений режутся на чанки 100+100+50
	require.NoError(t, err)
	assert.Equal(t, 250, attempted)
	assert.Equal(t, []int{100, 100, 50}, chunkSizes)
}

func TestSend_ChunkFailureDoesNotStopOthers(t *testing.T) {
	// Подготовка: второй чанк падает, остальные уходят
	var (
		mu    sync.Mutex
		calls int
	)
	sender := newTestSender(t, 1, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		current := calls
		mu.Unlock()
		if current == 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	tokens := []string{
		"ExponentPushToken[1]",
		"ExponentPushToken[2]",
		"ExponentPushToken[3]",
	}

	// Действие
	attempted, err := sender.Send(context.Background(), tokens, "Disaster Alert", "Тест", nil)

	// Проверки: отказ чанка не возвращается и не прерывает отправку
	require.NoError(t, err)
	assert.Equal(t, 3, attempted)
	assert.Equal(t, 3, calls)
}

func TestSend_PassesDataPayload(t *testing.T) {
	// Подготовка
	var (
		mu       sync.Mutex
		received []pushMessage
	)
	sender := newTestSender(t, 100, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var chunk []pushMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&chunk))
		mu.Lock()
		received = append(received, chunk...)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	})

	data := map[string]any{"sos_id": "abc", "severity": "High"}

	// Действие
	_, err := sender.Send(context.Background(), []string{"ExponentPushToken[x]"}, "Disaster Alert", "High SOS nearby: Пожар", data)

	// Проверки
	require.NoError(t, err)
	require.Len(t, received, 1)
	assert.Equal(t, "High SOS nearby: Пожар", received[0].Body)
	assert.Equal(t, "abc", received[0].Data["sos_id"])
	assert.Equal(t, "High", received[0].Data["severity"])
}
