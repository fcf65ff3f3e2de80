package reconcile

import (
	"time"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// Calendar resuelve cualquier fecha al bucket semanal que la contiene.
// Es una tabla de lookup pura construida desde la dimensión calendario;
// una fecha ausente de la tabla se reporta como no resuelta y las etapas
// posteriores la tratan con sus políticas de relleno/descarte.
type Calendar struct {
	buckets map[string]entity.WeekBucket
}

// NewCalendar construye el lookup. La semana siguiente es WeekStart + 7 días.
func NewCalendar(entries []entity.CalendarEntry) *Calendar {
	buckets := make(map[string]entity.WeekBucket, len(entries))
	for _, e := range entries {
		ws := normalizeDate(e.WeekStart)
		buckets[dateKey(e.Date)] = entity.WeekBucket{
			WeekStart:     ws,
			NextWeekStart: ws.AddDate(0, 0, 7),
		}
	}
	return &Calendar{buckets: buckets}
}

// Resolve devuelve el bucket de la semana que contiene la fecha.
func (c *Calendar) Resolve(date time.Time) (entity.WeekBucket, bool) {
	b, ok := c.buckets[dateKey(date)]
	return b, ok
}

// dateKey colapsa la fecha a día calendario; la hora y la zona no participan
// en el bucketing.
func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
