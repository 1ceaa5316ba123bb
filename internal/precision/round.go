package precision

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var ErrInvalidStep = errors.New("step must be positive")

// RoundDown приводит value к ближайшему кратному step снизу.
// Вверх не округляем никогда: биржа отклонит количество сверх доступного,
// а отклонённый ордер ретраем не лечится.
//
// Считаем целым частным QuoRem — без деления с плавающей точностью,
// результат бит-в-бит воспроизводим.
func RoundDown(value, step decimal.Decimal) (decimal.Decimal, error) {
	if step.Sign() <= 0 {
		return decimal.Decimal{}, errors.Wrapf(ErrInvalidStep, "step=%s", step)
	}

	q, r := value.QuoRem(step, 0)
	if r.Sign() < 0 {
		// QuoRem усекает к нулю; для отрицательных value доводим до floor,
		// чтобы результат оставался <= value
		q = q.Sub(decimal.NewFromInt(1))
	}
	return q.Mul(step), nil
}
