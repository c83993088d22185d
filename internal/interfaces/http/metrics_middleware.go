package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// HTTPObserver recibe una observación por petición atendida.
type HTTPObserver interface {
	ObserveHTTP(route, method string, code int, took time.Duration)
}

// MetricsMiddleware mide cada petición usando el patrón de la ruta (/api/reference/:kind),
// no la URL concreta, para acotar la cardinalidad.
func MetricsMiddleware(obs HTTPObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		started := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := "unknown"
		if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
			route = r.Path
		}
		obs.ObserveHTTP(route, c.Method(), status, time.Since(started))
		return err
	}
}
