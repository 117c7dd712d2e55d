package handlers

import (
	"errors"
	"net/http"

	"kasa_bridge/internal/kasa"
	"kasa_bridge/internal/models"
	"kasa_bridge/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK      = "ok"
	statusOn      = "on"
	statusOff     = "off"
	statusTimedOn = "timed_on"
	statusAutoOff = "auto_off_set"

	errTurnOn          = "failed to turn on light"
	errTurnOff         = "failed to turn off light"
	errTimedOn         = "failed to set timed light"
	errAutoOff         = "failed to update auto-off"
	errInvalidBodyPref = "invalid body: "
)

// logAndJSONError logs err under logKey and writes userMsg. Device failures
// map to 502, invalid minutes to 400, anything else to 500.
func (h *Handler) logAndJSONError(c *gin.Context, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrInvalidMinutes):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, kasa.ErrCommandFailed):
		code = http.StatusBadGateway
	}
	c.JSON(code, gin.H{"error": userMsg})
}

type timedRequest struct {
	Minutes int `json:"minutes" binding:"required"`
}

type autoOffRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
	Minutes *int  `json:"minutes,omitempty"`
}

// TimedOnRequest is an exported model for Swagger docs of the timed payload.
type TimedOnRequest struct {
	// Minutes until the plug switches itself off
	Minutes int `json:"minutes" example:"30"`
}

// AutoOffRequest is an exported model for Swagger docs of the auto-off payload.
type AutoOffRequest struct {
	Enabled bool `json:"enabled" example:"true"`
	// Optional; when set it is written before the enabled flag
	Minutes int `json:"minutes,omitempty" example:"45"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      Turn the light on
// @Description  Switches the plug on and disables auto-off
// @Tags         light
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/light/on [post]
// @Security     BearerAuth
func (h *Handler) turnOn(c *gin.Context) {
	ctx := service.WithTrigger(c.Request.Context(), models.TriggerAPI)
	if err := h.services.Light.TurnOnPlain(ctx); err != nil {
		h.logAndJSONError(c, errTurnOn, "api_turn_on_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOn})
}

// @Summary      Turn the light off
// @Tags         light
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/v1/light/off [post]
// @Security     BearerAuth
func (h *Handler) turnOff(c *gin.Context) {
	ctx := service.WithTrigger(c.Request.Context(), models.TriggerAPI)
	if err := h.services.Light.TurnOff(ctx); err != nil {
		h.logAndJSONError(c, errTurnOff, "api_turn_off_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusOff})
}

// @Summary      Turn the light on for a while
// @Description  Switches the plug on and lets it switch itself off after the given minutes
// @Tags         light
// @Accept       json
// @Produce      json
// @Param        body  body      TimedOnRequest  true  "Timer payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/light/timed [post]
// @Security     BearerAuth
func (h *Handler) turnOnTimed(c *gin.Context) {
	var req timedRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	ctx := service.WithTrigger(c.Request.Context(), models.TriggerAPI)
	if err := h.services.Light.TurnOnTimed(ctx, req.Minutes); err != nil {
		h.logAndJSONError(c, errTimedOn, "api_timed_on_failed", err, "minutes", req.Minutes)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": statusTimedOn, "minutes": req.Minutes})
}

// @Summary      Configure auto-off
// @Tags         light
// @Accept       json
// @Produce      json
// @Param        body  body      AutoOffRequest  true  "Auto-off payload"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/v1/light/auto-off [post]
// @Security     BearerAuth
func (h *Handler) setAutoOff(c *gin.Context) {
	var req autoOffRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	ctx := service.WithTrigger(c.Request.Context(), models.TriggerAPI)
	if err := h.services.Light.SetAutoOff(ctx, *req.Enabled, req.Minutes); err != nil {
		h.logAndJSONError(c, errAutoOff, "api_auto_off_failed", err, "enabled", *req.Enabled)
		return
	}
	resp := gin.H{"status": statusAutoOff, "enabled": *req.Enabled}
	if req.Minutes != nil {
		resp["minutes"] = *req.Minutes
	}
	c.JSON(http.StatusOK, resp)
}

// @Summary      Bridge status
// @Description  Control channel and registered schedule
// @Tags         system
// @Produce      json
// @Success      200  {object}  models.Status
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/status [get]
// @Security     BearerAuth
func (h *Handler) getStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.status())
}
