package revenue

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/streamcost-estimator/internal/model"
)

func aggregateLive() model.RevenueAssumptions {
	return model.RevenueAssumptions{
		LiveAdsEnabled:               true,
		AverageDailyUniqueViewers:    1000,
		AverageViewingHoursPerViewer: 2,
		AdSpotsPerHour:               4,
		CPMRate:                      15,
		PeakTimeMultiplier:           model.Float(1),
		SeasonalMultiplier:           model.Float(1),
		DemographicMultiplier:        model.Float(1),
	}
}

func TestCalculate_AggregateLiveFallback(t *testing.T) {
	calc := Calculate(aggregateLive(), model.Costs{}, nil, nil)

	assert.InDelta(t, 3600.00, calc.LiveAdRevenue, 1e-9)
	assert.InDelta(t, 3600.00, calc.TotalRevenue, 1e-9)
	assert.Empty(t, calc.ChannelRevenues)
	assert.Nil(t, calc.PremiumSponsorshipRevenue)
}

func TestCalculate_FallbackConsistency(t *testing.T) {
	a := model.DefaultRevenueAssumptions()

	calc := Calculate(a, model.Costs{}, []model.ChannelStat{}, []model.VODCategoryStat{})

	for _, v := range []float64{calc.LiveAdRevenue, calc.PaidProgrammingRevenue, calc.VODAdRevenue, calc.TotalRevenue} {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		assert.GreaterOrEqual(t, v, 0.0)
	}
	assert.Positive(t, calc.LiveAdRevenue)
	assert.Positive(t, calc.VODAdRevenue)
}

func TestCalculate_Multipliers(t *testing.T) {
	a := aggregateLive()
	a.PeakTimeMultiplier = model.Float(1.5)
	a.SeasonalMultiplier = model.Float(2)
	a.DemographicMultiplier = model.Float(0.5)

	calc := Calculate(a, model.Costs{}, nil, nil)
	assert.InDelta(t, 5400.00, calc.LiveAdRevenue, 1e-9)

	t.Run("absent multipliers default to one", func(t *testing.T) {
		a := aggregateLive()
		a.PeakTimeMultiplier = nil
		a.SeasonalMultiplier = nil
		a.DemographicMultiplier = nil
		assert.InDelta(t, 3600.00, Calculate(a, model.Costs{}, nil, nil).LiveAdRevenue, 1e-9)
	})
}

func TestCalculate_PerChannel(t *testing.T) {
	channels := []model.ChannelStat{
		{ID: "news", Name: "News", Viewership: 1000, AverageRetentionMinutes: 30, AdSpotsPerHour: 4, CPMRate: 20},
		{ID: "sports", Name: "Sports", Viewership: 500, AverageRetentionMinutes: 60, AdSpotsPerHour: 2, CPMRate: 10, FillRate: model.Float(100)},
		{ID: "off", Name: "Off Air", Viewership: 9999, AverageRetentionMinutes: 60, AdSpotsPerHour: 10, CPMRate: 50, Enabled: model.Bool(false)},
	}

	calc := Calculate(aggregateLive(), model.Costs{}, channels, nil)

	require.Len(t, calc.ChannelRevenues, 3)
	// 1000 * 0.5h * 4 * 75% * 20/1000 * 30 days
	assert.InDelta(t, 900.0, calc.ChannelRevenues[0].Revenue, 1e-9)
	// 500 * 1h * 2 * 100% * 10/1000 * 30 days
	assert.InDelta(t, 300.0, calc.ChannelRevenues[1].Revenue, 1e-9)

	assert.Equal(t, "off", calc.ChannelRevenues[2].ChannelID)
	assert.False(t, calc.ChannelRevenues[2].Enabled)
	assert.Zero(t, calc.ChannelRevenues[2].Revenue)

	assert.InDelta(t, 1200.0, calc.LiveAdRevenue, 1e-9, "detail supersedes aggregate fields")
}

func TestCalculate_DisabledChannelContributesNothing(t *testing.T) {
	base := []model.ChannelStat{
		{ID: "a", Viewership: 1200, AverageRetentionMinutes: 40, AdSpotsPerHour: 6, CPMRate: 14},
	}
	withDisabled := append([]model.ChannelStat{}, base...)
	withDisabled = append(withDisabled, model.ChannelStat{
		ID: "b", Viewership: 5000, AverageRetentionMinutes: 90, AdSpotsPerHour: 12, CPMRate: 40, Enabled: model.Bool(false),
	})

	a := aggregateLive()
	without := Calculate(a, model.Costs{}, base, nil)
	with := Calculate(a, model.Costs{}, withDisabled, nil)

	assert.Equal(t, without.LiveAdRevenue, with.LiveAdRevenue)
	assert.Zero(t, with.ChannelRevenues[1].Revenue)
}

func TestCalculate_DefaultFillRate(t *testing.T) {
	channels := []model.ChannelStat{{ID: "a", Viewership: 1000, AverageRetentionMinutes: 60, AdSpotsPerHour: 1, CPMRate: 10}}

	a := aggregateLive()
	a.DefaultFillRate = model.Float(50)

	// 1000 * 1 * 1 * 50% * 10/1000 * 30
	assert.InDelta(t, 150.0, Calculate(a, model.Costs{}, channels, nil).LiveAdRevenue, 1e-9)

	a.DefaultFillRate = nil
	assert.InDelta(t, 225.0, Calculate(a, model.Costs{}, channels, nil).LiveAdRevenue, 1e-9)
}

func TestCalculate_LiveAdsDisabled(t *testing.T) {
	a := aggregateLive()
	a.LiveAdsEnabled = false
	channels := []model.ChannelStat{{ID: "a", Viewership: 1000, AverageRetentionMinutes: 60, AdSpotsPerHour: 1, CPMRate: 10}}

	assert.Zero(t, Calculate(a, model.Costs{}, nil, nil).LiveAdRevenue)

	calc := Calculate(a, model.Costs{}, channels, nil)
	assert.Zero(t, calc.LiveAdRevenue)
	require.Len(t, calc.ChannelRevenues, 1)
	assert.Zero(t, calc.ChannelRevenues[0].Revenue)
}

func TestCalculate_PaidProgramming(t *testing.T) {
	a := model.RevenueAssumptions{
		PaidProgrammingEnabled:  true,
		MonthlyPaidBlocks:       20,
		RatePerBlock:            250,
		PremiumSponsorshipCount: 2,
		PremiumSponsorshipRate:  1500,
	}

	calc := Calculate(a, model.Costs{}, nil, nil)
	assert.InDelta(t, 5000.0, calc.PaidProgrammingRevenue, 1e-9)
	assert.Nil(t, calc.PremiumSponsorshipRevenue)

	a.PremiumSponsorshipEnabled = true
	calc = Calculate(a, model.Costs{}, nil, nil)
	assert.InDelta(t, 8000.0, calc.PaidProgrammingRevenue, 1e-9)
	require.NotNil(t, calc.PremiumSponsorshipRevenue)
	assert.InDelta(t, 3000.0, *calc.PremiumSponsorshipRevenue, 1e-9)
	assert.InDelta(t, 8000.0, calc.TotalRevenue, 1e-9, "premium is counted once")

	a.PaidProgrammingEnabled = false
	assert.Zero(t, Calculate(a, model.Costs{}, nil, nil).PaidProgrammingRevenue)
}

func TestCalculate_VODAds(t *testing.T) {
	a := model.RevenueAssumptions{
		VODAdsEnabled:           true,
		MonthlyVODViews:         20000,
		AdSpotsPerVODView:       2,
		VODCPMRate:              18,
		VODSkipRate:             model.Float(0.25),
		VODCompletionRate:       model.Float(0.8),
		VODPremiumPlacementRate: model.Float(0.1),
	}

	t.Run("aggregate fallback", func(t *testing.T) {
		// 20000 * 2 * 18/1000 * 0.75 * 0.8 * 1.1
		assert.InDelta(t, 475.2, Calculate(a, model.Costs{}, nil, nil).VODAdRevenue, 1e-9)
	})

	t.Run("per category", func(t *testing.T) {
		categories := []model.VODCategoryStat{
			{ID: "news", Name: "News", MonthlyViews: 10000, AdSpotsPerView: 2, CPMRate: 20, FillRate: model.Float(50)},
			{ID: "docs", Name: "Docs", MonthlyViews: 1000, AdSpotsPerView: 1, CPMRate: 10},
		}
		calc := Calculate(a, model.Costs{}, nil, categories)

		require.Len(t, calc.VODCategoryRevenues, 2)
		// 10000 * 2 * 50% * 20/1000 * 0.66
		assert.InDelta(t, 132.0, calc.VODCategoryRevenues[0].Revenue, 1e-9)
		// 1000 * 1 * 75% * 10/1000 * 0.66
		assert.InDelta(t, 4.95, calc.VODCategoryRevenues[1].Revenue, 1e-9)
		assert.InDelta(t, 136.95, calc.VODAdRevenue, 1e-9)
	})

	t.Run("absent scaling rates", func(t *testing.T) {
		b := a
		b.VODSkipRate = nil
		b.VODCompletionRate = nil
		b.VODPremiumPlacementRate = nil
		assert.InDelta(t, 720.0, Calculate(b, model.Costs{}, nil, nil).VODAdRevenue, 1e-9)
	})

	t.Run("disabled", func(t *testing.T) {
		b := a
		b.VODAdsEnabled = false
		assert.Zero(t, Calculate(b, model.Costs{}, nil, nil).VODAdRevenue)
	})
}

func TestCalculate_NetOperatingProfit(t *testing.T) {
	costs := model.Costs{Encoding: 194.40, Storage: 21.60, Delivery: 345.60, Other: 30}

	calc := Calculate(aggregateLive(), costs, nil, nil)

	assert.InDelta(t, 3600.0-591.60, calc.NetOperatingProfit, 1e-9)
}

func TestCalculate_MonotonicInCPM(t *testing.T) {
	channels := model.DefaultChannels()
	prevAggregate, prevDetail := -1.0, -1.0

	for cpm := 0.0; cpm <= 50; cpm += 2.5 {
		a := aggregateLive()
		a.CPMRate = cpm
		aggregate := Calculate(a, model.Costs{}, nil, nil).LiveAdRevenue
		assert.GreaterOrEqual(t, aggregate, prevAggregate)
		prevAggregate = aggregate

		detailed := make([]model.ChannelStat, len(channels))
		copy(detailed, channels)
		for i := range detailed {
			detailed[i].CPMRate = cpm
		}
		detail := Calculate(a, model.Costs{}, detailed, nil).LiveAdRevenue
		assert.GreaterOrEqual(t, detail, prevDetail)
		prevDetail = detail
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	cfg := model.DefaultConfiguration()
	costs := model.Costs{Encoding: 1, Storage: 2, Delivery: 3, Other: 4}

	first := Calculate(cfg.Revenue, costs, cfg.Channels, cfg.VODCategories)
	for range 5 {
		assert.Equal(t, first, Calculate(cfg.Revenue, costs, cfg.Channels, cfg.VODCategories))
	}
}
