package handlers

import (
	"errors"
	"net/http"

	"github.com/christophersalem/hebard-hot-tub/internal/models"
	"github.com/christophersalem/hebard-hot-tub/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK  = "ok"
	ackBody   = "OK"
	errRecord = "failed to record event"

	errStorageUnavailable = "event log storage unavailable"
	errHeaderMissing      = "event log is not initialized: header row missing"
)

// Query parameter names sent by the pool controller.
const (
	paramPump     = "pump"
	paramHeater   = "heater"
	paramTub      = "tub"
	paramSolar    = "solar"
	paramDelta    = "delta"
	paramAction   = "action"
	paramNote     = "note"
	paramDuration = "duration"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

func fieldsFromQuery(c *gin.Context) models.EventFields {
	return models.EventFields{
		Pump:     c.Query(paramPump),
		Heater:   c.Query(paramHeater),
		Tub:      c.Query(paramTub),
		Solar:    c.Query(paramSolar),
		Delta:    c.Query(paramDelta),
		Action:   c.Query(paramAction),
		Note:     c.Query(paramNote),
		Duration: c.Query(paramDuration),
	}
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

// @Summary      Record controller event
// @Description  Prepends one row below the header and keeps the newest 500 rows. Values are stored as sent.
// @Tags         events
// @Produce      plain
// @Param        pump      query  string  false  "Pump state token"    example(🔆)
// @Param        heater    query  string  false  "Heater state token"  example(🟢)
// @Param        tub       query  string  false  "Hot tub temperature"  example(101.3)
// @Param        solar     query  string  false  "Solar surface temperature"  example(112.0)
// @Param        delta     query  string  false  "Solar minus tub"  example(10.7)
// @Param        action    query  string  false  "Action taken"  example(Pump ON)
// @Param        note      query  string  false  "Free text"
// @Param        duration  query  string  false  "Time in previous pump state"  example(2 hours 15 minutes)
// @Success      200  {string}  string  "OK"
// @Failure      429  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /exec [get]
func (h *Handler) recordEvent(c *gin.Context) {
	ctx := c.Request.Context()
	f := fieldsFromQuery(c)

	rec, err := h.services.EventLog.RecordEvent(ctx, f)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHeaderMissing):
			h.logAndJSONError(c, http.StatusInternalServerError, errHeaderMissing, "record_event_header_missing", err)
		case errors.Is(err, service.ErrStorageUnavailable):
			h.logAndJSONError(c, http.StatusServiceUnavailable, errStorageUnavailable, "record_event_storage_failed", err,
				"action", f.Action)
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errRecord, "record_event_failed", err)
		}
		return
	}

	if h.log != nil {
		h.log.Debugw("event_recorded", "id", rec.ID, "pump", rec.Pump, "action", rec.Action)
	}
	c.String(http.StatusOK, ackBody)
}
