package export

import (
	"fmt"
	"strings"

	"pollos-backend/internal/daykey"
	"pollos-backend/internal/order"
	"pollos-backend/internal/totals"

	"github.com/xuri/excelize/v2"
)

const (
	OrdersSheet = "Pedidos"
	TotalsSheet = "Totales"
)

var orderHeaders = []string{"Hora", "Nombre", "Pollos", "Patatas", "Pagado", "Teléfono", "Entregado", "Preferencias", "Precio"}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}

// Workbook writes the visible orders of a day and its totals. The caller closes the file.
func Workbook(day daykey.Day, l order.Ledger, prices totals.PriceTable) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", OrdersSheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(TotalsSheet); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetSheetRow(OrdersSheet, "A1", &orderHeaders); err != nil {
		f.Close()
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetRowStyle(OrdersSheet, 1, 1, bold); err != nil {
		f.Close()
		return nil, err
	}

	for i, r := range l.All(false) {
		prefs := make([]string, 0, len(r.Preferences))
		for _, p := range r.Preferences {
			prefs = append(prefs, string(p))
		}
		row := []any{
			r.Time,
			r.Name,
			r.Chickens,
			r.Potatoes,
			yesNo(r.Paid),
			yesNo(r.Phone),
			yesNo(r.Delivered),
			strings.Join(prefs, " "),
			totals.Price(r, prices),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(OrdersSheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
	}

	s := totals.Summarize(l, prices)
	rows := [][]any{
		{day.Title, day.DateLabel},
		{"", "Pollos", "Patatas"},
		{"Pedidos", s.Ordered.Chickens, s.Ordered.Potatoes},
		{"Entregados", s.Delivered.Chickens, s.Delivered.Potatoes},
		{"Pendientes", s.Pending.Chickens, s.Pending.Potatoes},
		{"Horno", s.Oven.Chickens, s.Oven.Potatoes},
		{"Sobran", s.Surplus.Chickens, s.Surplus.Potatoes},
		{"Total", s.Revenue},
		{"Cobrado", s.Collected},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(TotalsSheet, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

// FileName is the download name of a day's workbook.
func FileName(day daykey.Day) string {
	return fmt.Sprintf("pedidos-%s.xlsx", day.Key)
}
