package export

import (
	"errors"
	"fmt"

	"pollos-backend/internal/daykey"
	"pollos-backend/internal/order"
	"pollos-backend/internal/totals"

	"github.com/gofiber/fiber/v2"
)

// LedgerSource loads a day ledger by key.
type LedgerSource interface {
	Ledger(key string) (daykey.Day, order.Ledger, error)
	Prices() totals.PriceTable
}

// GET /api/days/:date/export
func DownloadHandler(src LedgerSource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day, l, err := src.Ledger(c.Params("date"))
		if errors.Is(err, daykey.ErrInvalidKey) {
			return fiber.NewError(fiber.StatusBadRequest, "Fecha inválida, el formato es DD-MM-YYYY")
		}
		if err != nil {
			return err
		}

		f, err := Workbook(day, l, src.Prices())
		if err != nil {
			return fmt.Errorf("build workbook %s: %w", day.Key, err)
		}
		defer f.Close()

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fmt.Errorf("write workbook %s: %w", day.Key, err)
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Attachment(FileName(day))
		return c.Send(buf.Bytes())
	}
}
