package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/kovalevdm/disaster-alert-service/internal/config"
	"github.com/kovalevdm/disaster-alert-service/internal/models"
	"github.com/kovalevdm/disaster-alert-service/internal/service"
)

type Handler struct {
	sosService service.SosService
	logger     *logrus.Logger
	validate   *validator.Validate
	cfg        *config.Config
}

func NewHandler(sosService service.SosService, logger *logrus.Logger, cfg *config.Config) *Handler {
	return &Handler{
		sosService: sosService,
		logger:     logger,
		validate:   validator.New(),
		cfg:        cfg,
	}
}

// respondServiceError отображает ошибки сервиса на HTTP-статусы
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidLocation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid location"})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "sos request not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// @Summary Report a new SOS request
// @Description Create a new SOS request and fan out push notifications to nearby users. Notification delivery is best-effort and never fails the request.
// @Tags SOS
// @Accept json
// @Produce json
// @Param sos body CreateSosRequest true "SOS report request"
// @Success 201 {object} SosResponse
// @Failure 400 {object} map[string]string "Invalid request body or location"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sos [post]
func (h *Handler) createSos(c *gin.Context) {
	var input CreateSosRequest
	log := h.logger.WithField("method", "createSos")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToSosModel(input)
	if err := h.sosService.ReportSos(c.Request.Context(), model, input.NotifyRadiusMeters); err != nil {
		log.WithError(err).Error("Failed to report sos in service")
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ModelToSosResponse(model))
}

// @Summary Get SOS request by ID
// @Description Get a single SOS request by its ID.
// @Tags SOS
// @Accept json
// @Produce json
// @Param id path string true "SOS request ID"
// @Success 200 {object} SosResponse
// @Failure 400 {object} map[string]string "Invalid SOS request ID"
// @Failure 404 {object} map[string]string "SOS request not found"
// @Router /sos/{id} [get]
func (h *Handler) getSos(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sos request ID"})
		return
	}
	log := h.logger.WithField("method", "getSos").WithField("id", id)

	sos, err := h.sosService.GetSos(c.Request.Context(), id)
	if err != nil {
		log.WithError(err).Warn("Failed to get sos request from service")
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ModelToSosResponse(sos))
}

// @Summary Delete an SOS request
// @Description Delete an SOS request by ID and publish a retraction event to live clients.
// @Tags SOS
// @Accept json
// @Produce json
// @Param id path string true "SOS request ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid SOS request ID"
// @Failure 404 {object} map[string]string "SOS request not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sos/{id} [delete]
func (h *Handler) deleteSos(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sos request ID"})
		return
	}
	log := h.logger.WithField("method", "deleteSos").WithField("id", id)

	if err := h.sosService.DeleteSos(c.Request.Context(), id); err != nil {
		log.WithError(err).Warn("Failed to delete sos request in service")
		respondServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Filter SOS requests
// @Description Filter SOS requests by time range, severity and geo-radius. With a center the result is ordered by distance, otherwise newest-first.
// @Tags SOS
// @Accept json
// @Produce json
// @Param filter body FilterSosRequest true "Filter criteria"
// @Success 200 {array} SosResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sos/filter [post]
func (h *Handler) filterSos(c *gin.Context) {
	var input FilterSosRequest
	log := h.logger.WithField("method", "filterSos")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sosList, err := h.sosService.FilterSos(c.Request.Context(), DTOToSosFilter(input))
	if err != nil {
		log.WithError(err).Error("Failed to filter sos requests in service")
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ModelsToSosResponses(sosList))
}

// @Summary Broadcast a notification
// @Description Send a push notification to all users with a push token, optionally limited to a circular region. Requires API key.
// @Tags Notifications
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param broadcast body BroadcastRequest true "Broadcast request"
// @Success 200 {object} NotifyResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /notify/broadcast [post]
func (h *Handler) broadcast(c *gin.Context) {
	var input BroadcastRequest
	log := h.logger.WithField("method", "broadcast")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var region *models.Region
	if input.Region != nil {
		region = &models.Region{
			Center: models.Point{
				Longitude: input.Region.Coordinates[0],
				Latitude:  input.Region.Coordinates[1],
			},
			RadiusMeters: input.Region.RadiusMeters,
		}
	}

	notified, err := h.sosService.Broadcast(c.Request.Context(), input.Message, region)
	if err != nil {
		log.WithError(err).Error("Failed to broadcast in service")
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, NotifyResponse{Notified: notified})
}

// @Summary Notify users near a point
// @Description Send a push notification to users near an existing SOS request or near explicit coordinates. Requires API key.
// @Tags Notifications
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param notify body NotifyNearbyRequest true "Nearby notification request"
// @Success 200 {object} NotifyResponse
// @Failure 400 {object} map[string]string "Invalid request body or coordinates"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "SOS request not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /notify/nearby [post]
func (h *Handler) notifyNearby(c *gin.Context) {
	var input NotifyNearbyRequest
	log := h.logger.WithField("method", "notifyNearby")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	params := service.NotifyNearbyParams{
		SosID:        input.SosID,
		RadiusMeters: input.RadiusMeters,
		Message:      input.Message,
	}
	if input.SosID == nil && len(input.Coordinates) == 2 {
		params.Center = &models.Point{
			Longitude: input.Coordinates[0],
			Latitude:  input.Coordinates[1],
		}
	}

	notified, err := h.sosService.NotifyNearby(c.Request.Context(), params)
	if err != nil {
		log.WithError(err).Error("Failed to notify nearby in service")
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, NotifyResponse{Notified: notified})
}

// @Summary Register a push token
// @Description Save or update a user's push token and optional location. Requires a caller-supplied stable user ID.
// @Tags Tokens
// @Accept json
// @Produce json
// @Param registration body RegisterTokenRequest true "Token registration request"
// @Success 200 {object} UserResponse
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /token/register [post]
func (h *Handler) registerToken(c *gin.Context) {
	var input RegisterTokenRequest
	log := h.logger.WithField("method", "registerToken")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := DTOToUserModel(input)
	if err := h.sosService.RegisterPushToken(c.Request.Context(), user); err != nil {
		log.WithError(err).Error("Failed to register push token in service")
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, ModelToUserResponse(user))
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
