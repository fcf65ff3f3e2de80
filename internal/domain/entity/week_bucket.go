package entity

import "time"

// CalendarEntry es una fila de la dimensión calendario: un día y el inicio
// de la semana que lo contiene.
type CalendarEntry struct {
	Date      time.Time
	WeekStart time.Time
}

// WeekBucket es la semana canónica de reporte: su inicio y el inicio de la
// semana inmediatamente siguiente (WeekStart + 7 días).
type WeekBucket struct {
	WeekStart     time.Time
	NextWeekStart time.Time
}
