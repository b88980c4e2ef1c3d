package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatKina(t *testing.T) {
	assert.Equal(t, "K950", FormatKina(950))
	assert.Equal(t, "K1.2K", FormatKina(1_234))
	assert.Equal(t, "K769.9M", FormatKina(769_900_000))
	assert.Equal(t, "K3.2B", FormatKina(3_200_000_000))
	assert.Equal(t, "K-1.5M", FormatKina(-1_500_000))
}

func TestFormatBillions(t *testing.T) {
	assert.Equal(t, "K30.91B", FormatBillions(30_913_000_000))
	assert.Equal(t, "K0.80B", FormatBillions(800_000_000))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "987", FormatNumber(987))
	assert.Equal(t, "1,234,567", FormatNumber(1_234_567))
	assert.Equal(t, "-12,000", FormatNumber(-12_000))
}

func TestFormatGrowth(t *testing.T) {
	assert.Equal(t, "+15.8%", FormatGrowth(15.84, true))
	assert.Equal(t, "-3.0%", FormatGrowth(-3.0, true))
	assert.Equal(t, "n/a", FormatGrowth(0, false))
}

func TestFormatPerCapita(t *testing.T) {
	assert.Equal(t, "K3,035", FormatPerCapita(3034.6, true))
	assert.Equal(t, "n/a", FormatPerCapita(0, false))
}

func TestFormatDelta(t *testing.T) {
	assert.Equal(t, "+K400.0M", FormatDelta(3_200_000_000, 2_800_000_000))
	assert.Equal(t, "-K400.0M", FormatDelta(2_800_000_000, 3_200_000_000))
}
