package board

import (
	"errors"

	"pollos-backend/internal/clients"
	"pollos-backend/internal/daykey"
	"pollos-backend/internal/order"
	"pollos-backend/internal/totals"

	"github.com/gofiber/fiber/v2"
)

type OrderView struct {
	order.Entry
	Price float64 `json:"price"`
}

type OvenSteps struct {
	Chickens      []float64 `json:"chickens"`
	PotatoesPlus  []float64 `json:"potatoes_plus"`
	PotatoesMinus []float64 `json:"potatoes_minus"`
}

type LedgerView struct {
	Day       daykey.Day        `json:"day"`
	Orders    []OrderView       `json:"orders"`
	Summary   totals.Summary    `json:"summary"`
	Prices    totals.PriceTable `json:"prices"`
	OvenSteps OvenSteps         `json:"oven_steps"`
}

type OvenRequest struct {
	Chickens float64 `json:"chickens"`
	Potatoes float64 `json:"potatoes"`
}

func (s *Service) view(day daykey.Day, l order.Ledger, includeDeleted bool) LedgerView {
	entries := l.Entries(includeDeleted)
	orders := make([]OrderView, 0, len(entries))
	for _, e := range entries {
		orders = append(orders, OrderView{Entry: e, Price: s.Price(e.Record)})
	}
	return LedgerView{
		Day:     day,
		Orders:  orders,
		Summary: s.Summary(l),
		Prices:  s.prices,
		OvenSteps: OvenSteps{
			Chickens:      ChickenSteps,
			PotatoesPlus:  PotatoPlusSteps,
			PotatoesMinus: PotatoMinusSteps,
		},
	}
}

// toFiberError maps core errors to HTTP statuses. Anything else is left for
// the app's error handler.
func toFiberError(err error) error {
	switch {
	case errors.Is(err, order.ErrInvalidOrder):
		return fiber.NewError(fiber.StatusUnprocessableEntity, "El pedido necesita un nombre y al menos un producto")
	case errors.Is(err, order.ErrIndexOutOfRange):
		return fiber.NewError(fiber.StatusNotFound, "Pedido no encontrado")
	case errors.Is(err, daykey.ErrInvalidKey):
		return fiber.NewError(fiber.StatusBadRequest, "Fecha inválida, el formato es DD-MM-YYYY")
	case errors.Is(err, ErrBadSchedule):
		return fiber.NewError(fiber.StatusBadRequest, "Día de la semana desconocido o repetido, o lugar vacío")
	}
	return err
}

func indexParam(c *fiber.Ctx) (int, error) {
	idx, err := c.ParamsInt("index")
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Índice de pedido inválido")
	}
	return idx, nil
}

// respond re-reads the day so the view carries the resolved descriptor.
func (s *Service) respond(c *fiber.Ctx, status int, l order.Ledger) error {
	day, err := s.Day(c.Params("date"))
	if err != nil {
		return toFiberError(err)
	}
	return c.Status(status).JSON(s.view(day, l, c.QueryBool("deleted", false)))
}

// GET /api/today
func TodayHandler(s *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day, err := s.Today()
		if err != nil {
			return err
		}
		return c.JSON(day)
	}
}

// GET /api/days/:date?deleted=true
func GetLedgerHandler(s *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day, l, err := s.Ledger(c.Params("date"))
		if err != nil {
			return toFiberError(err)
		}
		return c.JSON(s.view(day, l, c.QueryBool("deleted", false)))
	}
}

// POST /api/days/:date/orders
func CreateOrderHandler(s *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body order.Form
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		l, err := s.AddOrder(c.Params("date"), body)
		if err != nil {
			return toFiberError(err)
		}
		return s.respond(c, fiber.StatusCreated, l)
	}
}

// PUT /api/days/:date/orders/:index
func UpdateOrderHandler(s *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idx, err := indexParam(c)
		if err != nil {
			return err
		}
		var body order.Form
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		l, err := s.UpdateOrder(c.Params("date"), idx, body)
		if err != nil {
			return toFiberError(err)
		}
		return s.respond(c, fiber.StatusOK, l)
	}
}

// DELETE /api/days/:date/orders/:index
func DeleteOrderHandler(s *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idx, err := indexParam(c)
		if err != nil {
			return err
		}
		l, err := s.DeleteOrder(c.Params("date"), idx)
		if err != nil {
			return toFiberError(err)
		}
		return s.respond(c, fiber.StatusOK, l)
	}
}

// POST /api/days/:date/orders/:index/delivered
func ToggleDeliveredHandler(s *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		idx, err := indexParam(c)
		if err != nil {
			return err
		}
		l, err := s.ToggleDelivered(c.Params("date"), idx)
		if err != nil {
			return toFiberError(err)
		}
		return s.respond(c, fiber.StatusOK, l)
	}
}

// POST /api/days/:date/oven adds deltas, PUT /api/days/:date/oven sets the counters.
func OvenHandler(s *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body OvenRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		var (
			l   order.Ledger
			err error
		)
		if c.Method() == fiber.MethodPut {
			l, err = s.SetOven(c.Params("date"), body.Chickens, body.Potatoes)
		} else {
			l, err = s.AdjustOven(c.Params("date"), body.Chickens, body.Potatoes)
		}
		if err != nil {
			return toFiberError(err)
		}
		return s.respond(c, fiber.StatusOK, l)
	}
}

// GET /api/clients?locality=Villanueva&q=an
// Without locality, today's locality is used.
func ClientSuggestionsHandler(s *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		locality := c.Query("locality")
		if locality == "" {
			day, err := s.Today()
			if err != nil {
				return err
			}
			locality = day.Locality
		}
		list, err := s.Suggestions(locality, c.Query("q"))
		if err != nil {
			return err
		}
		if list == nil {
			list = []clients.Client{}
		}
		return c.JSON(list)
	}
}

// GET /api/schedule
func GetScheduleHandler(s *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sched, err := s.Schedule()
		if err != nil {
			return err
		}
		return c.JSON(sched.Map())
	}
}

// PUT /api/schedule {"Lunes": "Alcalá"}
func UpdateScheduleHandler(s *Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body map[string]string
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}
		sched, err := s.SetSchedule(body)
		if err != nil {
			return toFiberError(err)
		}
		return c.JSON(sched.Map())
	}
}
