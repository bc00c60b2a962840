package export

import (
	"bytes"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"pollos-backend/internal/board"
	"pollos-backend/internal/daykey"
	"pollos-backend/internal/order"
	"pollos-backend/internal/storage"
	"pollos-backend/internal/totals"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var prices = totals.PriceTable{FullChicken: 11, HalfChicken: 6, FullPotato: 4, HalfPotato: 2.5}

func TestWorkbook(t *testing.T) {
	r := daykey.NewResolver(daykey.DefaultSchedule, time.UTC)
	day, err := r.Parse("01-01-2024")
	require.NoError(t, err)

	l := order.Ledger{Orders: []order.Record{
		{Name: "Ana", Chickens: 2.5, Time: "12:00", Paid: true, Preferences: order.Preferences{order.PrefMuchSalt, order.PrefEye}},
		{Name: "Borrado", Chickens: 1, Time: "12:30", Deleted: true},
		{Name: "Luis", Potatoes: 1, Time: "13:00", Delivered: true},
	}, OvenChickenStock: 3}

	f, err := Workbook(day, l, prices)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(OrdersSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Hora", rows[0][0])
	assert.Equal(t, []string{"12:00", "Ana", "2.5", "0", "Sí", "No", "No", "(MS) (👁)", "28"}, rows[1])
	assert.Equal(t, "Luis", rows[2][1])

	totalsRows, err := f.GetRows(TotalsSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alcalá", "01-01-2024 - Lunes"}, totalsRows[0])
	assert.Equal(t, []string{"Sobran", "0.5", "-1"}, totalsRows[6])
	assert.Equal(t, []string{"Total", "32"}, totalsRows[7])

	assert.Equal(t, "pedidos-01-01-2024.xlsx", FileName(day))

	styleID, err := f.GetCellStyle(OrdersSheet, "A1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

type failingSource struct{ err error }

func (s failingSource) Ledger(string) (daykey.Day, order.Ledger, error) {
	return daykey.Day{}, order.Ledger{}, s.err
}

func (failingSource) Prices() totals.PriceTable { return prices }

func TestDownloadHandlerErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid key", daykey.ErrInvalidKey, 400},
		{"store failure", errors.New("read ledger 01-01-2024: connection refused"), 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/days/:date/export", DownloadHandler(failingSource{err: tt.err}))

			resp, err := app.Test(httptest.NewRequest("GET", "/days/01-01-2024/export", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestDownloadHandler(t *testing.T) {
	svc, err := board.NewService(board.Options{
		Store:    storage.NewMemoryStore(),
		Resolver: daykey.NewResolver(daykey.DefaultSchedule, time.UTC),
		Prices:   prices,
	})
	require.NoError(t, err)
	_, err = svc.AddOrder("01-01-2024", order.Form{Name: "Ana", Chickens: "1", Time: "12:00"})
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/days/:date/export", DownloadHandler(svc))

	resp, err := app.Test(httptest.NewRequest("GET", "/days/01-01-2024/export", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "pedidos-01-01-2024.xlsx")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(body))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(OrdersSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	resp, err = app.Test(httptest.NewRequest("GET", "/days/2024-01-01/export", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}
