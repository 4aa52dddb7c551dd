package performance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyFullWeek(t *testing.T) {
	assert.Equal(t, StatusPerfect, Classify(6, 0, 0, 6))
	assert.Equal(t, StatusMinorLates, Classify(6, 1, 0, 6))
	assert.Equal(t, StatusFewLates, Classify(6, 2, 0, 6))
	assert.Equal(t, StatusFewLates, Classify(6, 3, 0, 6))
	assert.Equal(t, StatusFrequentlyLate, Classify(6, 4, 0, 6))
}

func TestClassifyPartialWeek(t *testing.T) {
	// Absen separuh minggu atau lebih menang atas aturan telat
	assert.Equal(t, StatusPoorAttendance, Classify(2, 0, 4, 6))
	assert.Equal(t, StatusPoorAttendance, Classify(3, 3, 3, 6))

	assert.Equal(t, StatusFrequentlyLate, Classify(4, 3, 2, 6))
	assert.Equal(t, StatusIrregular, Classify(4, 1, 2, 6))
	assert.Equal(t, StatusSomeAbsences, Classify(4, 0, 2, 6))
}

func TestScore(t *testing.T) {
	assert.Equal(t, 100, Score(6, 0, 6))
	assert.Equal(t, 83, Score(6, 2, 6))
	assert.Equal(t, 42, Score(3, 1, 6))
	assert.Equal(t, 0, Score(0, 0, 6))
}
