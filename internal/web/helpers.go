package web

import (
	"fmt"
	"time"
)

func formatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

func formatRating(v float64) string {
	return fmt.Sprintf("%.0f", v)
}

func formatDelta(v float64) string {
	return fmt.Sprintf("%+.0f", v)
}
