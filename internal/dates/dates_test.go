package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestShiftYear_RegularDate tests shifting an ordinary date between years
func TestShiftYear_RegularDate(t *testing.T) {
	shifted := ShiftYear(date(2023, time.March, 15), 2019)
	assert.Equal(t, date(2019, time.March, 15), shifted)
}

// TestShiftYear_LeapDayIntoNonLeapYear tests the Feb 29 fallback
func TestShiftYear_LeapDayIntoNonLeapYear(t *testing.T) {
	shifted := ShiftYear(date(2024, time.February, 29), 2023)
	assert.Equal(t, date(2023, time.February, 28), shifted)
}

// TestShiftYear_LeapDayIntoLeapYear tests Feb 29 staying put across leap years
func TestShiftYear_LeapDayIntoLeapYear(t *testing.T) {
	shifted := ShiftYear(date(2024, time.February, 29), 2020)
	assert.Equal(t, date(2020, time.February, 29), shifted)
}

// TestShiftYear_DiscardsTimeOfDay tests that results land on UTC midnight
func TestShiftYear_DiscardsTimeOfDay(t *testing.T) {
	input := time.Date(2023, time.June, 1, 15, 30, 45, 0, time.UTC)
	shifted := ShiftYear(input, 2020)
	assert.Equal(t, date(2020, time.June, 1), shifted)
}

// TestShiftWindow_SameYear tests a window fully inside one calendar year
func TestShiftWindow_SameYear(t *testing.T) {
	start, end := ShiftWindow(date(2023, time.March, 1), date(2023, time.April, 15), 2020)
	assert.Equal(t, date(2020, time.March, 1), start)
	assert.Equal(t, date(2020, time.April, 15), end)
}

// TestShiftWindow_CrossYearBoundary tests a December-to-January window:
// the shifted end would precede the start, so it lands in the next year
func TestShiftWindow_CrossYearBoundary(t *testing.T) {
	start, end := ShiftWindow(date(2023, time.December, 15), date(2024, time.January, 20), 2020)
	assert.Equal(t, date(2020, time.December, 15), start)
	assert.Equal(t, date(2021, time.January, 20), end)
	assert.True(t, start.Before(end))
}

// TestShiftWindow_LeapDayEnd tests a window ending on Feb 29 shifted into
// a non-leap year
func TestShiftWindow_LeapDayEnd(t *testing.T) {
	start, end := ShiftWindow(date(2024, time.February, 1), date(2024, time.February, 29), 2023)
	assert.Equal(t, date(2023, time.February, 1), start)
	assert.Equal(t, date(2023, time.February, 28), end)
}
