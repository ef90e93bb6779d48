package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/JuanCVO/CelesteRestaurant-Frontend/internal/infra"
)

// Health reports the process and its collaborators: the session backend and
// the POS API circuit breaker state. rdb is nil with the memory backend.
func Health(rdb *redis.Client, breaker *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		estado := gin.H{
			"status":      "ok",
			"pos_breaker": breaker.State().String(),
		}

		if rdb != nil {
			if err := rdb.Ping(c.Request.Context()).Err(); err != nil {
				estado["status"] = "degraded"
				estado["redis"] = "down"
			} else {
				estado["redis"] = "ok"
			}
		}

		estado["time"] = time.Now().UTC().Format(time.RFC3339)
		c.JSON(http.StatusOK, estado)
	}
}
