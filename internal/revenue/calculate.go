// Package revenue projects monthly live-ad, paid-programming and VOD-ad
// revenue and the resulting net operating profit.
package revenue

import "github.com/rshade/streamcost-estimator/internal/model"

// ChannelRevenue is one channel's monthly live-ad revenue.
// Disabled channels are listed with zero revenue.
type ChannelRevenue struct {
	ChannelID string  `json:"channelId"`
	Name      string  `json:"name"`
	Enabled   bool    `json:"enabled"`
	Revenue   float64 `json:"revenue"`
}

// VODCategoryRevenue is one category's monthly VOD-ad revenue.
type VODCategoryRevenue struct {
	CategoryID string  `json:"categoryId"`
	Name       string  `json:"name"`
	Revenue    float64 `json:"revenue"`
}

// Calculations is the derived revenue breakdown. Values are unrounded.
type Calculations struct {
	LiveAdRevenue          float64 `json:"liveAdRevenue"`
	PaidProgrammingRevenue float64 `json:"paidProgrammingRevenue"`
	VODAdRevenue           float64 `json:"vodAdRevenue"`
	TotalRevenue           float64 `json:"totalRevenue"`
	NetOperatingProfit     float64 `json:"netOperatingProfit"`

	ChannelRevenues     []ChannelRevenue     `json:"channelRevenues"`
	VODCategoryRevenues []VODCategoryRevenue `json:"vodCategoryRevenues"`

	// PremiumSponsorshipRevenue is set when premium sponsorship is enabled;
	// it is already included in PaidProgrammingRevenue.
	PremiumSponsorshipRevenue *float64 `json:"premiumSponsorshipRevenue,omitempty"`
}

// Calculate projects monthly revenue. Channel and category detail take
// precedence over the aggregate assumption fields when non-empty. costs is
// used only for NetOperatingProfit.
func Calculate(a model.RevenueAssumptions, costs model.Costs, channels []model.ChannelStat, categories []model.VODCategoryStat) Calculations {
	r := resolve(a)
	var calc Calculations

	if len(channels) > 0 {
		calc.ChannelRevenues = make([]ChannelRevenue, 0, len(channels))
		for _, ch := range channels {
			entry := ChannelRevenue{ChannelID: ch.ID, Name: ch.Name, Enabled: ch.IsEnabled()}
			if a.LiveAdsEnabled && entry.Enabled {
				entry.Revenue = channelRevenue(ch, r)
			}
			calc.LiveAdRevenue += entry.Revenue
			calc.ChannelRevenues = append(calc.ChannelRevenues, entry)
		}
	} else if a.LiveAdsEnabled {
		impressions := a.AverageDailyUniqueViewers * a.AverageViewingHoursPerViewer * a.AdSpotsPerHour
		calc.LiveAdRevenue = impressions * a.CPMRate / 1000 * model.DaysPerMonth * r.liveMultiplier
	}

	if a.PaidProgrammingEnabled {
		calc.PaidProgrammingRevenue = a.MonthlyPaidBlocks * a.RatePerBlock
		if a.PremiumSponsorshipEnabled {
			premium := a.PremiumSponsorshipCount * a.PremiumSponsorshipRate
			calc.PaidProgrammingRevenue += premium
			calc.PremiumSponsorshipRevenue = &premium
		}
	}

	if len(categories) > 0 {
		calc.VODCategoryRevenues = make([]VODCategoryRevenue, 0, len(categories))
		for _, cat := range categories {
			entry := VODCategoryRevenue{CategoryID: cat.ID, Name: cat.Name}
			if a.VODAdsEnabled {
				entry.Revenue = categoryRevenue(cat, r)
			}
			calc.VODAdRevenue += entry.Revenue
			calc.VODCategoryRevenues = append(calc.VODCategoryRevenues, entry)
		}
	} else if a.VODAdsEnabled {
		impressions := a.MonthlyVODViews * a.AdSpotsPerVODView
		calc.VODAdRevenue = impressions * a.VODCPMRate / 1000 * r.vodScale
	}

	calc.TotalRevenue = calc.LiveAdRevenue + calc.PaidProgrammingRevenue + calc.VODAdRevenue
	calc.NetOperatingProfit = calc.TotalRevenue - costs.Total()
	return calc
}

// resolved holds the optional assumption fields after defaulting.
type resolved struct {
	defaultFillRate float64
	liveMultiplier  float64
	vodScale        float64
}

func resolve(a model.RevenueAssumptions) resolved {
	skip := valueOr(a.VODSkipRate, 0)
	completion := valueOr(a.VODCompletionRate, 1)
	premium := valueOr(a.VODPremiumPlacementRate, 0)

	return resolved{
		defaultFillRate: valueOr(a.DefaultFillRate, model.DefaultFillRate),
		liveMultiplier: valueOr(a.PeakTimeMultiplier, 1) *
			valueOr(a.SeasonalMultiplier, 1) *
			valueOr(a.DemographicMultiplier, 1),
		vodScale: (1 - skip) * completion * (1 + premium),
	}
}

func channelRevenue(ch model.ChannelStat, r resolved) float64 {
	fill := valueOr(ch.FillRate, r.defaultFillRate) / 100
	impressions := ch.Viewership * (ch.AverageRetentionMinutes / 60) * ch.AdSpotsPerHour * fill
	return impressions * ch.CPMRate / 1000 * model.DaysPerMonth * r.liveMultiplier
}

func categoryRevenue(cat model.VODCategoryStat, r resolved) float64 {
	fill := valueOr(cat.FillRate, r.defaultFillRate) / 100
	impressions := cat.MonthlyViews * cat.AdSpotsPerView * fill
	return impressions * cat.CPMRate / 1000 * r.vodScale
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}
