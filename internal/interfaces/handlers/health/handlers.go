package health

import (
	"encoding/json"
	"strconv"
	"time"

	healthsvc "equitie-backend/internal/application/health"
	"equitie-backend/internal/middleware"
	"equitie-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const serviceName = "equitie-api"

// Handlers holds dependencies for health endpoints. Rdb, DB and Storage may be nil.
type Handlers struct {
	Rdb            *redis.Client
	DB             healthsvc.DBPinger
	Storage        healthsvc.StoragePinger
	HealthAdminKey string
}

// Reset clears the traffic counters. Requires query key=HEALTH_ADMIN_KEY.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	key := c.Query("key")
	if key == "" || key != h.HealthAdminKey {
		return response.Error(c, "Unauthorized", fiber.StatusForbidden, nil)
	}
	if h.Rdb == nil {
		return response.Error(c, "Redis is not configured", fiber.StatusServiceUnavailable, nil)
	}
	ctx := c.UserContext()
	keys := []string{middleware.KeyReqTotal, middleware.KeyReqErrors, middleware.KeyResTime, middleware.KeyResCount, middleware.KeyStartTime, middleware.KeyLastReq, middleware.KeyErrorLog}
	if err := h.Rdb.Del(ctx, keys...).Err(); err != nil {
		return response.Internal(c, err.Error())
	}
	if err := h.Rdb.Set(ctx, middleware.KeyStartTime, strconv.FormatInt(time.Now().UnixMilli(), 10), 0).Err(); err != nil {
		return response.Internal(c, err.Error())
	}
	return response.Success(c, "Stats reset successfully", fiber.Map{"success": true}, nil)
}

// JSON reports service status, runtime, traffic and dependency health.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := healthsvc.CollectHealth(c.UserContext(), h.Rdb, h.DB, h.Storage)
	return c.JSON(fiber.Map{
		"service":      serviceName,
		"status":       result.Status,
		"runtime":      result.Runtime,
		"traffic":      result.Traffic,
		"dependencies": result.Dependencies,
	})
}

// Errors returns the last 50 logged 5xx responses, newest first.
func (h *Handlers) Errors(c *fiber.Ctx) error {
	out := make([]map[string]interface{}, 0)
	if h.Rdb == nil {
		return c.JSON(out)
	}
	entries, err := h.Rdb.LRange(c.UserContext(), middleware.KeyErrorLog, 0, 49).Result()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(out)
	}
	for _, s := range entries {
		var m map[string]interface{}
		if json.Unmarshal([]byte(s), &m) == nil && m != nil {
			out = append(out, m)
		}
	}
	return c.JSON(out)
}
