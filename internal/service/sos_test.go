package service_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kovalevdm/disaster-alert-service/internal/config"
	"github.com/kovalevdm/disaster-alert-service/internal/events"
	events_mocks "github.com/kovalevdm/disaster-alert-service/internal/events/mocks"
	"github.com/kovalevdm/disaster-alert-service/internal/models"
	notifier_mocks "github.com/kovalevdm/disaster-alert-service/internal/notifier/mocks"
	svc "github.com/kovalevdm/disaster-alert-service/internal/service"
	"github.com/kovalevdm/disaster-alert-service/internal/service/mocks"
)

// newTestSosService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestSosService(t *testing.T) (svc.SosService, *mocks.MockSosRepository, *mocks.MockUserRepository, *notifier_mocks.MockPushSender, *events_mocks.MockEventPublisher) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockSosRepository(ctrl)
	usersMock := mocks.NewMockUserRepository(ctrl)
	pushMock := notifier_mocks.NewMockPushSender(ctrl)
	publisherMock := events_mocks.NewMockEventPublisher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		NotifyRadiusMeters: 5000,
	}

	service := svc.NewSosService(repoMock, usersMock, pushMock, publisherMock, logger, cfg)
	return service, repoMock, usersMock, pushMock, publisherMock
}

func strPtr(s string) *string { return &s }

func TestReportSos_Success_FanOut(t *testing.T) {
	// Подготовка
	service, repoMock, usersMock, pushMock, publisherMock := newTestSosService(t)
	ctx := context.Background()
	sosID := uuid.New()
	sos := &models.SosRequest{
		Title:     "Наводнение на набережной",
		Latitude:  55.75,
		Longitude: 37.61,
		Severity:  models.SeverityHigh,
	}
	nearby := []*models.User{
		{ID: uuid.New(), PushToken: strPtr("ExponentPushToken[aaa]")},
		{ID: uuid.New(), PushToken: strPtr("ExponentPushToken[bbb]")},
	}

	// Ожидания
	// 1. Сохранение в БД
	repoMock.EXPECT().
		Create(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, s *models.SosRequest) error {
			// Симулируем, что БД присвоила ID
			s.ID = sosID
			return nil
		}).Times(1)

	// 2. Событие живого канала
	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Do(func(ctx context.Context, event events.SosEvent) {
			assert.Equal(t, events.EventSosNew, event.Type)
			assert.Equal(t, sosID, event.SosID)
		}).Return(nil).Times(1)

	// 3. Поиск получателей в радиусе по умолчанию
	usersMock.EXPECT().
		FindNearby(ctx, models.Point{Latitude: 55.75, Longitude: 37.61}, 5000.0).
		Return(nearby, nil).
		Times(1)

	// 4. Отправка push обоим получателям
	pushMock.EXPECT().
		Send(ctx, []string{"ExponentPushToken[aaa]", "ExponentPushToken[bbb]"}, "Disaster Alert", "High SOS nearby: Наводнение на набережной", gomock.Any()).
		Return(2, nil).
		Times(1)

	// Действие
	err := service.ReportSos(ctx, sos, 0)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, sos.Status)
}

func TestReportSos_ExcludesReporter(t *testing.T) {
	// Подготовка
	service, repoMock, usersMock, pushMock, publisherMock := newTestSosService(t)
	ctx := context.Background()
	reporterID := uuid.New()
	sos := &models.SosRequest{
		Title:      "Пожар",
		Latitude:   55.75,
		Longitude:  37.61,
		Severity:   models.SeverityCritical,
		ReporterID: &reporterID,
	}
	nearby := []*models.User{
		// Автор тоже попал в выборку по радиусу
		{ID: reporterID, PushToken: strPtr("ExponentPushToken[reporter]")},
		{ID: uuid.New(), PushToken: strPtr("ExponentPushToken[other]")},
	}

	// Ожидания
	repoMock.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(1)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)
	usersMock.EXPECT().FindNearby(ctx, gomock.Any(), 5000.0).Return(nearby, nil).Times(1)

	// Токен автора не должен попасть в рассылку
	pushMock.EXPECT().
		Send(ctx, []string{"ExponentPushToken[other]"}, "Disaster Alert", gomock.Any(), gomock.Any()).
		Return(1, nil).
		Times(1)

	// Действие
	err := service.ReportSos(ctx, sos, 0)

	// Проверки
	require.NoError(t, err)
}

func TestReportSos_Defaults(t *testing.T) {
	// Подготовка
	service, repoMock, usersMock, pushMock, publisherMock := newTestSosService(t)
	ctx := context.Background()
	sos := &models.SosRequest{
		Latitude:  10.0,
		Longitude: 20.0,
		// Title и Severity не заданы
	}

	// Ожидания
	repoMock.EXPECT().
		Create(ctx, gomock.Any()).
		Do(func(ctx context.Context, s *models.SosRequest) {
			assert.Equal(t, "SOS Alert", s.Title)
			assert.Equal(t, models.SeverityMedium, s.Severity)
			assert.Equal(t, models.StatusPending, s.Status)
		}).Return(nil).Times(1)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)
	usersMock.EXPECT().FindNearby(ctx, gomock.Any(), gomock.Any()).Return(nil, nil).Times(1)
	pushMock.EXPECT().Send(ctx, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil).Times(1)

	// Действие
	err := service.ReportSos(ctx, sos, 0)

	// Проверки
	require.NoError(t, err)
}

func TestReportSos_InvalidLocation(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _ := newTestSosService(t)
	ctx := context.Background()
	sos := &models.SosRequest{
		Title:     "Широта вне диапазона",
		Latitude:  91.0,
		Longitude: 20.0,
	}

	// Ожидания: репозиторий не должен вызываться
	repoMock.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	err := service.ReportSos(ctx, sos, 0)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidLocation)
}

func TestReportSos_FanOutFailureDoesNotFailReport(t *testing.T) {
	// Подготовка
	service, repoMock, usersMock, pushMock, publisherMock := newTestSosService(t)
	ctx := context.Background()
	sos := &models.SosRequest{
		Title:     "Запрос с упавшей рассылкой",
		Latitude:  55.75,
		Longitude: 37.61,
		Severity:  models.SeverityLow,
	}

	// Ожидания
	repoMock.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(1)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)
	usersMock.EXPECT().
		FindNearby(ctx, gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("гео-индекс недоступен")).
		Times(1)
	pushMock.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	err := service.ReportSos(ctx, sos, 0)

	// Проверки: запись создана, отказ рассылки не возвращается вызывающему
	require.NoError(t, err)
}

func TestReportSos_CustomRadius(t *testing.T) {
	// Подготовка
	service, repoMock, usersMock, pushMock, publisherMock := newTestSosService(t)
	ctx := context.Background()
	sos := &models.SosRequest{
		Title:     "Запрос с явным радиусом",
		Latitude:  55.75,
		Longitude: 37.61,
		Severity:  models.SeverityMedium,
	}

	// Ожидания: радиус из запроса имеет приоритет над конфигом
	repoMock.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(1)
	publisherMock.EXPECT().Publish(ctx, gomock.Any()).Return(nil).Times(1)
	usersMock.EXPECT().FindNearby(ctx, gomock.Any(), 1200.0).Return(nil, nil).Times(1)
	pushMock.EXPECT().Send(ctx, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil).Times(1)

	// Действие
	err := service.ReportSos(ctx, sos, 1200)

	// Проверки
	require.NoError(t, err)
}

func TestGetSos_Success_FromCache(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _ := newTestSosService(t)
	ctx := context.Background()
	sosID := uuid.New()
	expectedSos := &models.SosRequest{
		ID:    sosID,
		Title: "Запрос из кеша",
	}

	// Ожидания
	repoMock.EXPECT().
		GetSosFromCache(ctx, sosID).
		Return(expectedSos, nil).
		Times(1)

	// Действие
	sos, err := service.GetSos(ctx, sosID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedSos, sos)
}

func TestGetSos_Success_FromDB(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _ := newTestSosService(t)
	ctx := context.Background()
	sosID := uuid.New()
	expectedSos := &models.SosRequest{
		ID:    sosID,
		Title: "Запрос из БД",
	}

	// Ожидания
	// 1. Промах кеша
	repoMock.EXPECT().
		GetSosFromCache(ctx, sosID).
		Return(nil, nil).
		Times(1)

	// 2. Попадание в БД
	repoMock.EXPECT().
		GetByID(ctx, sosID).
		Return(expectedSos, nil).
		Times(1)

	// 3. Запись в кеш
	repoMock.EXPECT().
		SetSosCache(ctx, expectedSos).
		Return(nil).
		Times(1)

	// Действие
	sos, err := service.GetSos(ctx, sosID)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expectedSos, sos)
}

func TestGetSos_NotFound(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _ := newTestSosService(t)
	ctx := context.Background()
	sosID := uuid.New()

	// Ожидания
	repoMock.EXPECT().GetSosFromCache(ctx, sosID).Return(nil, nil).Times(1)
	repoMock.EXPECT().
		GetByID(ctx, sosID).
		Return(nil, fmt.Errorf("repository: %w", models.ErrNotFound)).
		Times(1)

	// Действие
	sos, err := service.GetSos(ctx, sosID)

	// Проверки
	require.Error(t, err)
	assert.Nil(t, sos)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDeleteSos_Success(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, publisherMock := newTestSosService(t)
	ctx := context.Background()
	sosID := uuid.New()

	// Ожидания
	repoMock.EXPECT().Delete(ctx, sosID).Return(nil).Times(1)
	repoMock.EXPECT().InvalidateSosCache(ctx, sosID).Return(nil).Times(1)
	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Do(func(ctx context.Context, event events.SosEvent) {
			assert.Equal(t, events.EventSosRemoved, event.Type)
			assert.Equal(t, sosID, event.SosID)
		}).Return(nil).Times(1)

	// Действие
	err := service.DeleteSos(ctx, sosID)

	// Проверки
	require.NoError(t, err)
}

func TestDeleteSos_NotFound(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, publisherMock := newTestSosService(t)
	ctx := context.Background()
	sosID := uuid.New()

	// Ожидания
	repoMock.EXPECT().
		Delete(ctx, sosID).
		Return(fmt.Errorf("repository: %w", models.ErrNotFound)).
		Times(1)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	err := service.DeleteSos(ctx, sosID)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFilterSos_Success_DefaultLimit(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _ := newTestSosService(t)
	ctx := context.Background()
	expected := []*models.SosRequest{
		{ID: uuid.New(), Title: "Первый"},
		{ID: uuid.New(), Title: "Второй"},
	}

	// Ожидания: нулевой лимит нормализуется в 50
	repoMock.EXPECT().
		Filter(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, filter models.SosFilter) ([]*models.SosRequest, error) {
			assert.Equal(t, 50, filter.Limit)
			return expected, nil
		}).Times(1)

	// Действие
	sosList, err := service.FilterSos(ctx, models.SosFilter{})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, sosList)
}

func TestFilterSos_DefaultRadiusWithCenter(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _ := newTestSosService(t)
	ctx := context.Background()
	center := &models.Point{Latitude: 55.75, Longitude: 37.61}

	// Ожидания: при центре без радиуса подставляется радиус из конфига
	repoMock.EXPECT().
		Filter(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, filter models.SosFilter) ([]*models.SosRequest, error) {
			assert.Equal(t, 5000.0, filter.RadiusMeters)
			return nil, nil
		}).Times(1)

	// Действие
	_, err := service.FilterSos(ctx, models.SosFilter{Center: center})

	// Проверки
	require.NoError(t, err)
}

func TestFilterSos_InvalidCenter(t *testing.T) {
	// Подготовка
	service, repoMock, _, _, _ := newTestSosService(t)
	ctx := context.Background()
	center := &models.Point{Latitude: 10.0, Longitude: 200.0}

	// Ожидания: репозиторий не должен вызываться
	repoMock.EXPECT().Filter(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	sosList, err := service.FilterSos(ctx, models.SosFilter{Center: center})

	// Проверки
	require.Error(t, err)
	assert.Nil(t, sosList)
	assert.ErrorIs(t, err, models.ErrInvalidLocation)
}

func TestBroadcast_AllUsers(t *testing.T) {
	// Подготовка
	service, _, usersMock, pushMock, _ := newTestSosService(t)
	ctx := context.Background()
	recipients := []*models.User{
		{ID: uuid.New(), PushToken: strPtr("ExponentPushToken[aaa]")},
		{ID: uuid.New(), PushToken: strPtr("ExponentPushToken[bbb]")},
		{ID: uuid.New()}, // Пользователь без токена в рассылку не попадает
	}

	// Ожидания
	usersMock.EXPECT().FindAllWithPushToken(ctx).Return(recipients, nil).Times(1)
	pushMock.EXPECT().
		Send(ctx, []string{"ExponentPushToken[aaa]", "ExponentPushToken[bbb]"}, "Disaster Alert", "Учебная тревога", gomock.Any()).
		Return(2, nil).
		Times(1)

	// Действие
	notified, err := service.Broadcast(ctx, "Учебная тревога", nil)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 2, notified)
}

func TestBroadcast_Region(t *testing.T) {
	// Подготовка
	service, _, usersMock, pushMock, _ := newTestSosService(t)
	ctx := context.Background()
	region := &models.Region{
		Center:       models.Point{Latitude: 55.75, Longitude: 37.61},
		RadiusMeters: 3000,
	}
	recipients := []*models.User{
		{ID: uuid.New(), PushToken: strPtr("ExponentPushToken[ccc]")},
	}

	// Ожидания
	usersMock.EXPECT().FindNearby(ctx, region.Center, 3000.0).Return(recipients, nil).Times(1)
	pushMock.EXPECT().
		Send(ctx, []string{"ExponentPushToken[ccc]"}, "Disaster Alert", "Эвакуация района", gomock.Any()).
		Return(1, nil).
		Times(1)

	// Действие
	notified, err := service.Broadcast(ctx, "Эвакуация района", region)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 1, notified)
}

func TestBroadcast_InvalidRegion(t *testing.T) {
	// Подготовка
	service, _, usersMock, _, _ := newTestSosService(t)
	ctx := context.Background()
	region := &models.Region{
		Center:       models.Point{Latitude: -95.0, Longitude: 37.61},
		RadiusMeters: 3000,
	}

	// Ожидания: выборка получателей не выполняется
	usersMock.EXPECT().FindNearby(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	notified, err := service.Broadcast(ctx, "Сообщение", region)

	// Проверки
	require.Error(t, err)
	assert.Zero(t, notified)
	assert.ErrorIs(t, err, models.ErrInvalidLocation)
}

func TestBroadcast_DeliveryFailureKeepsCount(t *testing.T) {
	// Подготовка
	service, _, usersMock, pushMock, _ := newTestSosService(t)
	ctx := context.Background()
	recipients := []*models.User{
		{ID: uuid.New(), PushToken: strPtr("ExponentPushToken[aaa]")},
	}

	// Ожидания: отказ шлюза логируется, операция не считается проваленной
	usersMock.EXPECT().FindAllWithPushToken(ctx).Return(recipients, nil).Times(1)
	pushMock.EXPECT().
		Send(ctx, gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(0, fmt.Errorf("шлюз недоступен")).
		Times(1)

	// Действие
	notified, err := service.Broadcast(ctx, "Сообщение", nil)

	// Проверки
	require.NoError(t, err)
	assert.Zero(t, notified)
}

func TestNotifyNearby_FromSos(t *testing.T) {
	// Подготовка
	service, repoMock, usersMock, pushMock, _ := newTestSosService(t)
	ctx := context.Background()
	sosID := uuid.New()
	sos := &models.SosRequest{
		ID:        sosID,
		Title:     "Существующий запрос",
		Latitude:  55.75,
		Longitude: 37.61,
	}
	recipients := []*models.User{
		{ID: uuid.New(), PushToken: strPtr("ExponentPushToken[aaa]")},
	}

	// Ожидания
	// 1. Центр берется из SOS-запроса (через кеш)
	repoMock.EXPECT().GetSosFromCache(ctx, sosID).Return(sos, nil).Times(1)

	// 2. Поиск получателей вокруг запроса
	usersMock.EXPECT().
		FindNearby(ctx, models.Point{Latitude: 55.75, Longitude: 37.61}, 5000.0).
		Return(recipients, nil).
		Times(1)

	// 3. Отправка с текстом из параметров
	pushMock.EXPECT().
		Send(ctx, []string{"ExponentPushToken[aaa]"}, "Disaster Alert", "Оставайтесь дома", gomock.Any()).
		Return(1, nil).
		Times(1)

	// Действие
	notified, err := service.NotifyNearby(ctx, svc.NotifyNearbyParams{SosID: &sosID, Message: "Оставайтесь дома"})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 1, notified)
}

func TestNotifyNearby_FromCoordinates(t *testing.T) {
	// Подготовка
	service, _, usersMock, pushMock, _ := newTestSosService(t)
	ctx := context.Background()
	center := &models.Point{Latitude: 55.75, Longitude: 37.61}
	recipients := []*models.User{
		{ID: uuid.New(), PushToken: strPtr("ExponentPushToken[aaa]")},
	}

	// Ожидания: при пустом сообщении подставляется текст по умолчанию
	usersMock.EXPECT().FindNearby(ctx, *center, 2000.0).Return(recipients, nil).Times(1)
	pushMock.EXPECT().
		Send(ctx, gomock.Any(), "Disaster Alert", "Alert nearby (2000m)", gomock.Any()).
		Return(1, nil).
		Times(1)

	// Действие
	notified, err := service.NotifyNearby(ctx, svc.NotifyNearbyParams{Center: center, RadiusMeters: 2000})

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, 1, notified)
}

func TestNotifyNearby_NoCenter(t *testing.T) {
	// Подготовка
	service, _, usersMock, _, _ := newTestSosService(t)
	ctx := context.Background()

	// Ожидания
	usersMock.EXPECT().FindNearby(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	notified, err := service.NotifyNearby(ctx, svc.NotifyNearbyParams{})

	// Проверки
	require.Error(t, err)
	assert.Zero(t, notified)
	assert.ErrorIs(t, err, models.ErrInvalidLocation)
}

func TestNotifyNearby_SosNotFound(t *testing.T) {
	// Подготовка
	service, repoMock, usersMock, _, _ := newTestSosService(t)
	ctx := context.Background()
	sosID := uuid.New()

	// Ожидания
	repoMock.EXPECT().GetSosFromCache(ctx, sosID).Return(nil, nil).Times(1)
	repoMock.EXPECT().
		GetByID(ctx, sosID).
		Return(nil, fmt.Errorf("repository: %w", models.ErrNotFound)).
		Times(1)
	usersMock.EXPECT().FindNearby(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	notified, err := service.NotifyNearby(ctx, svc.NotifyNearbyParams{SosID: &sosID})

	// Проверки
	require.Error(t, err)
	assert.Zero(t, notified)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRegisterPushToken_Success(t *testing.T) {
	// Подготовка
	service, _, usersMock, _, _ := newTestSosService(t)
	ctx := context.Background()
	lat, lon := 55.75, 37.61
	user := &models.User{
		ID:        uuid.New(),
		PushToken: strPtr("ExponentPushToken[aaa]"),
		Latitude:  &lat,
		Longitude: &lon,
	}

	// Ожидания
	usersMock.EXPECT().Upsert(ctx, user).Return(nil).Times(1)

	// Действие
	err := service.RegisterPushToken(ctx, user)

	// Проверки
	require.NoError(t, err)
}

func TestRegisterPushToken_MissingID(t *testing.T) {
	// Подготовка
	service, _, usersMock, _, _ := newTestSosService(t)
	ctx := context.Background()
	user := &models.User{
		PushToken: strPtr("ExponentPushToken[aaa]"),
	}

	// Ожидания
	usersMock.EXPECT().Upsert(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	err := service.RegisterPushToken(ctx, user)

	// Проверки
	require.Error(t, err)
	assert.ErrorContains(t, err, "user id is required")
}

func TestRegisterPushToken_UnpairedCoordinates(t *testing.T) {
	// Подготовка
	service, _, usersMock, _, _ := newTestSosService(t)
	ctx := context.Background()
	lat := 55.75
	user := &models.User{
		ID:        uuid.New(),
		PushToken: strPtr("ExponentPushToken[aaa]"),
		Latitude:  &lat,
		// Longitude отсутствует
	}

	// Ожидания
	usersMock.EXPECT().Upsert(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	err := service.RegisterPushToken(ctx, user)

	// Проверки
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrInvalidLocation)
}
