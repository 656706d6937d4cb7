package formatting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCountStudents(t *testing.T) {
	require.Equal(t, "0 estudiantes", CountStudents(0))
	require.Equal(t, "1 estudiante", CountStudents(1))
	require.Equal(t, "3 estudiantes", CountStudents(3))
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2025, 3, 9, 18, 5, 0, 0, time.UTC)
	require.Equal(t, "09/03/2025 18:05", FormatDate(ts))
}
