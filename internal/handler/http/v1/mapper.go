package v1

import (
	"github.com/kovalevdm/disaster-alert-service/internal/models"
)

// DTOToSosModel преобразует DTO создания в доменную модель.
// Координаты приходят в порядке [долгота, широта].
func DTOToSosModel(dto CreateSosRequest) *models.SosRequest {
	sos := &models.SosRequest{
		Title:       dto.Title,
		Description: dto.Description,
		Severity:    models.Severity(dto.Severity),
		ReporterID:  dto.ReporterID,
	}
	if dto.Location != nil && len(dto.Location.Coordinates) == 2 {
		sos.Longitude = dto.Location.Coordinates[0]
		sos.Latitude = dto.Location.Coordinates[1]
	}
	return sos
}

// DTOToSosFilter преобразует DTO фильтра в доменный фильтр
func DTOToSosFilter(dto FilterSosRequest) models.SosFilter {
	filter := models.SosFilter{
		RadiusMeters: dto.RadiusMeters,
		Severity:     models.Severity(dto.Severity),
		From:         dto.From,
		To:           dto.To,
		Limit:        dto.Limit,
	}
	if dto.Center != nil && len(dto.Center.Coordinates) == 2 {
		filter.Center = &models.Point{
			Longitude: dto.Center.Coordinates[0],
			Latitude:  dto.Center.Coordinates[1],
		}
	}
	return filter
}

// DTOToUserModel преобразует DTO регистрации токена в доменную модель
func DTOToUserModel(dto RegisterTokenRequest) *models.User {
	user := &models.User{
		ID:        dto.UserID,
		Name:      dto.Name,
		Email:     dto.Email,
		PushToken: &dto.PushToken,
	}
	if dto.Location != nil && len(dto.Location.Coordinates) == 2 {
		lon, lat := dto.Location.Coordinates[0], dto.Location.Coordinates[1]
		user.Longitude = &lon
		user.Latitude = &lat
	}
	return user
}

// ModelToSosResponse преобразует доменную модель в DTO для ответа
func ModelToSosResponse(model *models.SosRequest) *SosResponse {
	return &SosResponse{
		ID:             model.ID,
		Title:          model.Title,
		Description:    model.Description,
		Latitude:       model.Latitude,
		Longitude:      model.Longitude,
		Severity:       string(model.Severity),
		Status:         model.Status,
		ReporterID:     model.ReporterID,
		ReminderCount:  model.ReminderCount,
		LastReminderAt: model.LastReminderAt,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

// ModelsToSosResponses преобразует слайс моделей в слайс DTO
func ModelsToSosResponses(models []*models.SosRequest) []*SosResponse {
	responses := make([]*SosResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToSosResponse(model)
	}
	return responses
}

// ModelToUserResponse преобразует доменную модель пользователя в DTO
func ModelToUserResponse(model *models.User) *UserResponse {
	return &UserResponse{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Latitude:  model.Latitude,
		Longitude: model.Longitude,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
