package admin

import (
	"errors"

	"pollos-backend/internal/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// GET /api/store/keys
func ListKeysHandler(s storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		keys, err := ListKeys(s)
		if err != nil {
			return err
		}
		return c.JSON(keys)
	}
}

// GET /api/store/keys/:key
func ShowKeyHandler(s storage.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		e, err := Show(s, c.Params("key"))
		if errors.Is(err, ErrKeyNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Clave no encontrada")
		}
		if err != nil {
			return err
		}
		return c.JSON(e)
	}
}

// DELETE /api/store/keys/:key
func DeleteKeyHandler(s storage.Store, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Params("key")
		e, err := Remove(s, key)
		if errors.Is(err, ErrKeyNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Clave no encontrada")
		}
		if err != nil {
			return err
		}
		logger.Warn("store key removed",
			zap.String("key", key),
			zap.String("kind", string(e.Kind)),
			zap.Int("bytes", e.Bytes),
		)
		return c.SendStatus(fiber.StatusNoContent)
	}
}
