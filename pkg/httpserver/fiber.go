package httpserver

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"weather-dashboard/config"
)

const bodyLimit = 1024 * 1024

func InitFiberServer(appName string, cnf config.ServerConfig) *fiber.App {
	s := fiber.New(fiber.Config{
		AppName:      appName,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		BodyLimit:    bodyLimit,
		ReadTimeout:  seconds(cnf.ReadTimeout),
		WriteTimeout: seconds(cnf.WriteTimeout),
		IdleTimeout:  seconds(cnf.IdleTimeout),
		ErrorHandler: errorHandler,
	})

	s.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	s.Use(cors.New())
	s.Use(healthcheck.New(healthcheck.Config{
		LivenessEndpoint:  "/manage/health",
		ReadinessEndpoint: "/manage/ready",
	}))

	return s
}

// errorHandler answers unhandled errors in the same JSON shape the handlers use.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}

	return c.Status(code).JSON(fiber.Map{"error": msg})
}

func seconds(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}
