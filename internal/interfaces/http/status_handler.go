package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// StatusHandler endpoint de diagnóstico con uptime y metadatos del deploy.
type StatusHandler struct {
	started time.Time
	version string
	commit  string
}

// NewStatusHandler construye el handler fijando el instante de arranque.
func NewStatusHandler(version, commit string) *StatusHandler {
	return &StatusHandler{started: time.Now(), version: version, commit: commit}
}

// Get godoc
// @Summary      Estado del servicio
// @Tags         status
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /status [get]
func (h *StatusHandler) Get(c *fiber.Ctx) error {
	headers := map[string]string{}
	for k, v := range c.GetReqHeaders() {
		if len(v) > 0 {
			headers[k] = v[0]
		}
	}
	return c.JSON(fiber.Map{
		"commit":  h.commit,
		"started": h.started,
		"uptime":  time.Since(h.started).Seconds(),
		"version": h.version,
		"host":    c.Hostname(),
		"ip":      c.IP(),
		"headers": headers,
	})
}
