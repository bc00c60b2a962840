package audit

import (
	"pollos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"created_at"`
	LedgerKey   string             `json:"ledger_key"`
	OrderIndex  int                `json:"order_index"`
	OrderID     string             `json:"order_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	BeforeData  string             `json:"before_data"`
	AfterData   string             `json:"after_data"`
}

// GET /api/audit-logs?key=01-01-2024&limit=50
func ListAuditLogsHandler(svc *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := c.QueryInt("limit", 100)
		if limit <= 0 || limit > 1000 {
			return fiber.NewError(fiber.StatusBadRequest, "limit debe estar entre 1 y 1000")
		}

		logs, err := svc.List(c.Query("key"), limit)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo leer el historial")
		}

		resp := make([]AuditLogResponse, 0, len(logs))
		for _, l := range logs {
			resp = append(resp, AuditLogResponse{
				ID:          l.ID,
				CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
				LedgerKey:   l.LedgerKey,
				OrderIndex:  l.OrderIndex,
				OrderID:     l.OrderID,
				Action:      l.Action,
				Description: l.Description,
				BeforeData:  l.BeforeData,
				AfterData:   l.AfterData,
			})
		}
		return c.JSON(resp)
	}
}
