package precision

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRoundDown(t *testing.T) {
	cases := []struct {
		name  string
		value string
		step  string
		want  string
	}{
		{"truncates to step", "0.123456", "0.001", "0.123"},
		{"already multiple", "2.5", "0.5", "2.5"},
		{"below one step", "0.0009", "0.001", "0"},
		{"zero value", "0", "0.001", "0"},
		{"integer step", "107", "5", "105"},
		{"tick size 0.1", "27123.47", "0.1", "27123.4"},
		// float64 тут дал бы 0.28999...; decimal обязан дать точные 0.29
		{"no binary drift", "0.29", "0.01", "0.29"},
		{"negative goes to floor", "-0.123", "0.01", "-0.13"},
		{"negative multiple stays", "-0.12", "0.01", "-0.12"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := RoundDown(d(tc.value), d(tc.step))
			require.NoError(t, err)
			require.True(t, got.Equal(d(tc.want)), "got %s, want %s", got, tc.want)

			// результат не превышает вход и кратен шагу
			require.True(t, got.LessThanOrEqual(d(tc.value)))
			_, rem := got.QuoRem(d(tc.step), 0)
			require.True(t, rem.IsZero(), "remainder %s", rem)

			// повторное округление ничего не меняет
			again, err := RoundDown(got, d(tc.step))
			require.NoError(t, err)
			require.True(t, again.Equal(got))
		})
	}
}

func TestRoundDownInvalidStep(t *testing.T) {
	for _, step := range []string{"0", "-0.001"} {
		_, err := RoundDown(d("1.23"), d(step))
		require.ErrorIs(t, err, ErrInvalidStep, "step=%s", step)
	}
}
