package payroll

import (
	"testing"

	"go-payroll/internal/employee"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.46, Round2(3.456))
	assert.Equal(t, 3.45, Round2(3.454))
	assert.Equal(t, 0.0, Round2(0))
}

func TestGross(t *testing.T) {
	assert.Equal(t, 3060.0, Gross(48))
	assert.Equal(t, 956.25, Gross(15))
	assert.Equal(t, 0.0, Gross(0))
}

func TestCalculateLateDeduction(t *testing.T) {
	// 3060/minggu = 1.0625 per menit
	assert.Equal(t, 39.31, CalculateLateDeduction(3060, 0, 37))
	assert.Equal(t, 63.75, CalculateLateDeduction(3060, 1, 0))
	assert.Equal(t, 0.0, CalculateLateDeduction(3060, 0, 0))
	assert.Equal(t, 0.0, CalculateLateDeduction(0, 2, 15))
}

func TestNet(t *testing.T) {
	assert.Equal(t, 166.94, Net(956.25, 750, 39.31))
	// Potongan melebihi gross tidak boleh jadi negatif
	assert.Equal(t, 0.0, Net(100, 750, 0))
}

func TestWeeklySalaryFor(t *testing.T) {
	assert.Equal(t, FallbackWeeklySalary, WeeklySalaryFor(nil))
	assert.Equal(t, FallbackWeeklySalary, WeeklySalaryFor(&employee.Employee{}))
	assert.Equal(t, 1000.0, WeeklySalaryFor(&employee.Employee{AnnualSalary: 52000}))
}
