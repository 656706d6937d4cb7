// Package formatting holds small display helpers shared by screens.
package formatting

import (
	"fmt"
	"time"
)

// Pluralize picks the singular or plural form for a Spanish count.
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// CountStudents renders "1 estudiante" / "3 estudiantes".
func CountStudents(n int) string {
	return fmt.Sprintf("%d %s", n, Pluralize(n, "estudiante", "estudiantes"))
}

// FormatDate renders a timestamp the way registration dates are shown.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}
