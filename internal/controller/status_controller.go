package controller

import (
	"research-assistant-be/internal/pkg/serverutils"
	"research-assistant-be/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type IStatusController interface {
	RegisterRoutes(r fiber.Router)
	Health(ctx *fiber.Ctx) error
	Services(ctx *fiber.Ctx) error
}

// ServiceInfo names the configured AI backends for the status report.
type ServiceInfo struct {
	LLMProvider       string
	LLMModel          string
	EmbeddingProvider string
}

type statusController struct {
	db            *gorm.DB
	rdb           *redis.Client
	natsConnected bool
	info          ServiceInfo
}

func NewStatusController(db *gorm.DB, rdb *redis.Client, natsConnected bool, info ServiceInfo) IStatusController {
	return &statusController{
		db:            db,
		rdb:           rdb,
		natsConnected: natsConnected,
		info:          info,
	}
}

func (c *statusController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Health)
	r.Get("/status/services", c.Services)
}

func (c *statusController) Health(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"status": "ok"})
}

func (c *statusController) Services(ctx *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(c.db); err != nil {
		dbStatus = "unreachable"
	}

	redisStatus := "not configured"
	if c.rdb != nil {
		redisStatus = "ok"
		if err := c.rdb.Ping(ctx.Context()).Err(); err != nil {
			redisStatus = "unreachable"
		}
	}

	natsStatus := "not connected"
	if c.natsConnected {
		natsStatus = "ok"
	}

	return ctx.JSON(serverutils.SuccessResponse("Service status", fiber.Map{
		"database": dbStatus,
		"redis":    redisStatus,
		"nats":     natsStatus,
		"llm": fiber.Map{
			"provider": c.info.LLMProvider,
			"model":    c.info.LLMModel,
		},
		"embedding": fiber.Map{
			"provider": c.info.EmbeddingProvider,
		},
	}))
}
