package shared_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/bikesim-go/internal/domain/shared"
)

func TestPeriod_NextRollsOverDecember(t *testing.T) {
	assert.Equal(t, shared.MustPeriod(1, 2025), shared.MustPeriod(12, 2024).Next())
	assert.Equal(t, shared.MustPeriod(7, 2024), shared.MustPeriod(6, 2024).Next())
}

func TestPeriod_Minus(t *testing.T) {
	tests := []struct {
		from   shared.Period
		months int
		want   shared.Period
	}{
		{shared.MustPeriod(3, 2024), 0, shared.MustPeriod(3, 2024)},
		{shared.MustPeriod(3, 2024), 2, shared.MustPeriod(1, 2024)},
		{shared.MustPeriod(1, 2024), 1, shared.MustPeriod(12, 2023)},
		{shared.MustPeriod(2, 2024), 14, shared.MustPeriod(12, 2022)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.Minus(tt.months), "%s minus %d", tt.from, tt.months)
	}
}

func TestPeriod_MonthsSince(t *testing.T) {
	assert.Equal(t, 3, shared.MustPeriod(2, 2024).MonthsSince(shared.MustPeriod(11, 2023)))
	assert.Equal(t, 0, shared.MustPeriod(2, 2024).MonthsSince(shared.MustPeriod(2, 2024)))
	assert.Equal(t, 0, shared.MustPeriod(1, 2024).MonthsSince(shared.MustPeriod(6, 2024)), "never negative")
}

func TestPeriod_Before(t *testing.T) {
	assert.True(t, shared.MustPeriod(12, 2023).Before(shared.MustPeriod(1, 2024)))
	assert.True(t, shared.MustPeriod(3, 2024).Before(shared.MustPeriod(4, 2024)))
	assert.False(t, shared.MustPeriod(4, 2024).Before(shared.MustPeriod(4, 2024)))
}

func TestPeriod_IsSalesMonth(t *testing.T) {
	var salesMonths []int
	for m := 1; m <= 12; m++ {
		if shared.MustPeriod(m, 2024).IsSalesMonth(3) {
			salesMonths = append(salesMonths, m)
		}
	}
	assert.Equal(t, []int{3, 6, 9, 12}, salesMonths)

	assert.True(t, shared.MustPeriod(5, 2024).IsSalesMonth(1))
	assert.True(t, shared.MustPeriod(5, 2024).IsSalesMonth(0))
}

func TestNewPeriod_Validation(t *testing.T) {
	_, err := shared.NewPeriod(0, 2024)
	var validation *shared.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "month", validation.Field)

	_, err = shared.NewPeriod(13, 2024)
	assert.Error(t, err)

	_, err = shared.NewPeriod(5, 0)
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "year", validation.Field)

	p, err := shared.NewPeriod(5, 2024)
	require.NoError(t, err)
	assert.Equal(t, "2024-05", p.String())
}

func TestMustPeriod_PanicsOnInvalidMonth(t *testing.T) {
	assert.Panics(t, func() { shared.MustPeriod(13, 2024) })
}
