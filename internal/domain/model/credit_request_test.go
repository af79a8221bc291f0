package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okralabs/okra/internal/domain/model"
	"github.com/okralabs/okra/internal/domain/valueobject"
)

func intPtr(v int) *int { return &v }

func TestNewInstallmentRequest(t *testing.T) {
	t.Run("builds a validated request with defaults", func(t *testing.T) {
		req, err := model.NewInstallmentRequest("", decimal.NewFromInt(5_000), 24, "", nil)
		require.NoError(t, err)
		assert.Equal(t, valueobject.KindInstallment, req.Kind())
		assert.Equal(t, "unknown", req.ActorID())
		assert.Equal(t, "general", req.Purpose())
		assert.Equal(t, 24, req.TermMonths())
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-100)} {
			_, err := model.NewInstallmentRequest("a", amount, 24, "", nil)
			var verr *valueobject.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, valueobject.CodeAmountNotPositive, verr.Code)
		}
	})

	t.Run("rejects terms outside the window", func(t *testing.T) {
		for _, term := range []int{0, -1, 61} {
			_, err := model.NewInstallmentRequest("a", decimal.NewFromInt(5_000), term, "", nil)
			var verr *valueobject.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, valueobject.CodeTermOutOfRange, verr.Code)
		}
	})

	t.Run("rejects out-of-range profile scores", func(t *testing.T) {
		for _, score := range []int{299, 851} {
			profile := &valueobject.CreditProfile{CreditScore: intPtr(score)}
			_, err := model.NewInstallmentRequest("a", decimal.NewFromInt(5_000), 24, "", profile)
			var verr *valueobject.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, valueobject.CodeScoreOutOfRange, verr.Code)
		}
	})

	t.Run("rejects negative income and out-of-range DTI", func(t *testing.T) {
		profile := &valueobject.CreditProfile{AnnualIncome: decimal.NewFromInt(-1)}
		_, err := model.NewInstallmentRequest("a", decimal.NewFromInt(5_000), 24, "", profile)
		var verr *valueobject.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, valueobject.CodeNegativeValue, verr.Code)

		profile = &valueobject.CreditProfile{DebtToIncomeRatio: decimal.NewFromFloat(1.2)}
		_, err = model.NewInstallmentRequest("a", decimal.NewFromInt(5_000), 24, "", profile)
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, valueobject.CodeRatioOutOfRange, verr.Code)
	})
}

func TestNewBNPLRequest(t *testing.T) {
	t.Run("builds a validated request with defaults", func(t *testing.T) {
		req, err := model.NewBNPLRequest("", decimal.NewFromInt(800), 4,
			valueobject.BNPLSignals{OnTimeRate: 0.9, Utilization: 0.2})
		require.NoError(t, err)
		assert.Equal(t, valueobject.KindBNPL, req.Kind())
		assert.Equal(t, "anonymous", req.ActorID())
		assert.Equal(t, "bnpl", req.Purpose())
	})

	t.Run("rejects behavioral ratios outside the unit interval", func(t *testing.T) {
		cases := []valueobject.BNPLSignals{
			{OnTimeRate: -0.1, Utilization: 0.5},
			{OnTimeRate: 1.1, Utilization: 0.5},
			{OnTimeRate: 0.5, Utilization: -0.1},
			{OnTimeRate: 0.5, Utilization: 1.1},
		}
		for _, signals := range cases {
			_, err := model.NewBNPLRequest("a", decimal.NewFromInt(800), 4, signals)
			var verr *valueobject.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, valueobject.CodeRatioOutOfRange, verr.Code)
		}
	})

	t.Run("boundary ratios are accepted", func(t *testing.T) {
		_, err := model.NewBNPLRequest("a", decimal.NewFromInt(800), 4,
			valueobject.BNPLSignals{OnTimeRate: 0, Utilization: 1})
		require.NoError(t, err)
	})
}
