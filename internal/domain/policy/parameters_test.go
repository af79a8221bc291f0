package policy_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okralabs/okra/internal/domain/policy"
)

func TestDefault(t *testing.T) {
	params := policy.Default()
	require.NoError(t, params.Validate())

	assert.Equal(t, policy.DefaultVersion, params.Version)
	assert.Equal(t, 720, params.Installment.AutoApproveScore)
	assert.Equal(t, 650, params.Installment.ReviewScore)
	assert.True(t, params.Installment.MaxDTI.Equal(decimal.NewFromFloat(0.45)))
	assert.Len(t, params.Installment.RateTiers, 5)
	assert.Len(t, params.Installment.LimitBands, 4)
	assert.Equal(t, 0.60, params.BNPL.MinScore)
	assert.Equal(t, 0.50, params.BNPL.ReviewScore)
	assert.Equal(t, 12, params.BNPL.MaxTenor)
	assert.Equal(t, 750, params.Installment.SignalBands.CreditExcellent)
	assert.Equal(t, 0.35, params.Installment.SignalBands.DTIModerate)
}

func TestParameters_Validate(t *testing.T) {
	modify := func(fn func(*policy.Parameters)) *policy.Parameters {
		params := policy.Default()
		fn(params)
		return params
	}

	cases := []struct {
		name   string
		params *policy.Parameters
		want   string
	}{
		{
			name:   "missing version",
			params: modify(func(p *policy.Parameters) { p.Version = "" }),
			want:   "version",
		},
		{
			name: "inverted installment amount bounds",
			params: modify(func(p *policy.Parameters) {
				p.Installment.MaxAmount = decimal.NewFromInt(500)
			}),
			want: "amount bounds",
		},
		{
			name: "review threshold above auto-approve",
			params: modify(func(p *policy.Parameters) {
				p.Installment.ReviewScore = 800
			}),
			want: "auto-approve",
		},
		{
			name: "empty rate tier table",
			params: modify(func(p *policy.Parameters) {
				p.Installment.RateTiers = nil
			}),
			want: "rate tier",
		},
		{
			name: "rate tiers missing zero floor",
			params: modify(func(p *policy.Parameters) {
				p.Installment.RateTiers = p.Installment.RateTiers[:3]
			}),
			want: "zero-floor",
		},
		{
			name: "rate tiers out of order",
			params: modify(func(p *policy.Parameters) {
				tiers := p.Installment.RateTiers
				tiers[0], tiers[1] = tiers[1], tiers[0]
			}),
			want: "descending",
		},
		{
			name: "limit bands missing zero floor",
			params: modify(func(p *policy.Parameters) {
				p.Installment.LimitBands = p.Installment.LimitBands[:2]
			}),
			want: "zero-floor",
		},
		{
			name: "installment weights off unit sum",
			params: modify(func(p *policy.Parameters) {
				p.Installment.Weights.Credit = 0.50
			}),
			want: "sum to 1.0",
		},
		{
			name: "negative weight",
			params: modify(func(p *policy.Parameters) {
				p.BNPL.Weights.Amount = -0.20
			}),
			want: "not be negative",
		},
		{
			name: "bnpl tenor bounds inconsistent",
			params: modify(func(p *policy.Parameters) {
				p.BNPL.MaxTenor = 1
			}),
			want: "tenor bounds",
		},
		{
			name: "bnpl review above approval threshold",
			params: modify(func(p *policy.Parameters) {
				p.BNPL.ReviewScore = 0.70
			}),
			want: "approval threshold",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.params.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestStore(t *testing.T) {
	t.Run("rejects invalid parameters at creation", func(t *testing.T) {
		broken := policy.Default()
		broken.Version = ""
		_, err := policy.NewStore(broken)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid policy parameters")
	})

	t.Run("serves the seeded snapshot", func(t *testing.T) {
		params := policy.Default()
		store, err := policy.NewStore(params)
		require.NoError(t, err)
		assert.Same(t, params, store.Current())
	})

	t.Run("swap replaces the snapshot atomically", func(t *testing.T) {
		store, err := policy.NewStore(policy.Default())
		require.NoError(t, err)

		next := policy.Default()
		next.Version = "v1.1.0"
		require.NoError(t, store.Swap(next))
		assert.Equal(t, "v1.1.0", store.Current().Version)
	})

	t.Run("swap keeps the old snapshot on invalid input", func(t *testing.T) {
		store, err := policy.NewStore(policy.Default())
		require.NoError(t, err)

		broken := policy.Default()
		broken.Installment.RateTiers = nil
		require.Error(t, store.Swap(broken))
		assert.Equal(t, policy.DefaultVersion, store.Current().Version)
	})
}
