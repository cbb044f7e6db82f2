package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/bodega-api/internal/application/dto"
	"github.com/tu-usuario/bodega-api/internal/infrastructure/cache"
)

// RateLimit limita peticiones por IP usando un contador en Redis con TTL.
// Si client es nil (Redis desactivado) el middleware es un no-op.
func RateLimit(client *cache.RedisClient, max int64, window time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if client == nil {
			return c.Next()
		}
		key := fmt.Sprintf("ratelimit:%s:%s", c.Path(), c.IP())
		count, err := client.Incr(c.Context(), key, window)
		if err != nil {
			// Redis caído no debe tumbar el login
			return c.Next()
		}
		if count > max {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiadas peticiones, intente más tarde"})
		}
		return c.Next()
	}
}
