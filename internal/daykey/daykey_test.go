package daykey

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyAndLabel(t *testing.T) {
	d := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "01-01-2024", Key(d))
	assert.Equal(t, "01-01-2024 - Lunes", Label(d))
}

func TestResolve(t *testing.T) {
	r := NewResolver(DefaultSchedule, time.UTC)

	day := r.Resolve(time.Date(2024, 1, 7, 10, 0, 0, 0, time.UTC)) // Sunday
	assert.Equal(t, "07-01-2024", day.Key)
	assert.Equal(t, "Domingo", day.Weekday)
	assert.Equal(t, DefaultSchedule[0], day.Locality)
	assert.Equal(t, day.Locality, day.Title)
	assert.Equal(t, "07-01-2024 - Domingo", day.DateLabel)
}

func TestResolveUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	r := NewResolver(DefaultSchedule, loc)

	// 23:00 UTC on Monday is already Tuesday at UTC+2
	day := r.Resolve(time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, "02-01-2024", day.Key)
	assert.Equal(t, "Martes", day.Weekday)
}

func TestToday(t *testing.T) {
	r := NewResolver(DefaultSchedule, time.UTC)
	r.Now = func() time.Time { return time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC) }
	assert.Equal(t, "15-03-2024", r.Today().Key)
	assert.Equal(t, 9, r.Clock().Hour())
}

func TestParse(t *testing.T) {
	r := NewResolver(DefaultSchedule, time.UTC)

	day, err := r.Parse("01-01-2024")
	require.NoError(t, err)
	assert.Equal(t, "Lunes", day.Weekday)
	assert.Equal(t, DefaultSchedule[1], day.Title)

	for _, bad := range []string{"2024-01-01", "32-01-2024", "", "orders"} {
		_, err := r.Parse(bad)
		assert.ErrorIs(t, err, ErrInvalidKey, bad)
	}
}

func TestSchedule(t *testing.T) {
	s, err := ScheduleFromLabels([]string{"A", "B", "C", "D", "E", "F", "G"})
	require.NoError(t, err)
	assert.Equal(t, "G", s.Locality(time.Saturday))

	_, err = ScheduleFromLabels([]string{"A"})
	assert.Error(t, err)
	_, err = ScheduleFromLabels([]string{"A", "B", "C", " ", "E", "F", "G"})
	assert.Error(t, err)

	merged, skipped := s.Merge(map[string]string{"miércoles": "Meco", "SABADO": "Fresno", "funday": "X", "Lunes": " "})
	assert.Equal(t, "Meco", merged.Locality(time.Wednesday))
	assert.Equal(t, "Fresno", merged.Locality(time.Saturday))
	assert.Equal(t, "B", merged.Locality(time.Monday))
	assert.ElementsMatch(t, []string{"funday", "Lunes"}, skipped)
	assert.Equal(t, "C", s.Locality(time.Tuesday))

	assert.Equal(t, "Meco", merged.Map()["Miércoles"])

	// "miercoles" sorts after "Miércoles", so it is applied last every time
	for range 20 {
		merged, skipped = s.Merge(map[string]string{"Miércoles": "Daganzo", "miercoles": "Fresno"})
		assert.Empty(t, skipped)
		assert.Equal(t, "Fresno", merged.Locality(time.Wednesday))
	}
}
