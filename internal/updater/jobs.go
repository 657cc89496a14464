package updater

import (
	"fmt"
	"log"
	"sort"
	"time"

	"LiquiditySentinel/internal/model"
	"LiquiditySentinel/internal/series"
	"LiquiditySentinel/internal/store"
)

// FRED series IDs for the net-liquidity components.
const (
	seriesRRP = "RRPONTSYD" // overnight reverse repo balance
	seriesTGA = "WTREGEN"   // treasury general account
	seriesBS  = "WALCL"     // Fed balance sheet size
)

const (
	btcTicker      = "BTC-USD"
	dominanceAsset = "usdt"

	stablecoinFetchDays  = 120
	stablecoinWindowDays = 90
	impulseWindowDays    = 90
	flowWindowDays       = 5
	sentimentWindowSize  = 90
)

// stablecoinIDs are the CoinGecko asset IDs averaged into supply growth.
var stablecoinIDs = []string{"tether", "usd-coin"}

// Band defaults for USDT dominance when the store carries none.
const (
	defaultBandFloor   = 4.0
	defaultBandCeiling = 6.0
)

// Jobs returns the indicator registry in its fixed run order. Keywords match
// the record names used by the dashboard's data.json.
func (u *Updater) Jobs() []Job {
	return []Job{
		{Keyword: "RRP 逆回購", Run: u.updateRRP},
		{Keyword: "TGA 財政部帳戶", Run: u.updateTGA},
		{Keyword: "Fed 資產負債表", Run: u.updateFedBS},
		{Keyword: "Net Liquidity 綜合指標", Run: u.updateNetLiquidity},
		{Keyword: "穩定幣供應 90 日成長", Run: u.updateStablecoinGrowth},
		{Keyword: "USDT.D 穩定幣市佔率", Run: u.updateDominance},
		{Keyword: "ETF 5 日淨流量", Run: u.updateETFFlow},
		{Keyword: "恐懼與貪婪", Run: u.updateFearGreed},
	}
}

func (u *Updater) updateRRP(rec *model.Indicator) error {
	return u.updateMacroYoY(rec, seriesRRP, detailRRP)
}

func (u *Updater) updateTGA(rec *model.Indicator) error {
	return u.updateMacroYoY(rec, seriesTGA, detailTGA)
}

func (u *Updater) updateFedBS(rec *model.Indicator) error {
	return u.updateMacroYoY(rec, seriesBS, detailFedBS)
}

// updateMacroYoY is the shared shape of the three single-series FRED
// indicators: fetch, YoY, percent, precision 2.
func (u *Updater) updateMacroYoY(rec *model.Indicator, seriesID string, detail func(pct float64) string) error {
	s, err := u.fetchMacro(seriesID)
	if err != nil {
		return err
	}
	yoy, err := series.YoY(s)
	if err != nil {
		return err
	}
	pct := yoy * 100
	last, _ := s.Latest()
	store.Apply(rec, pct, 2, model.Meta{
		Source:   "FRED " + seriesID,
		LastDate: last.Date.Format("2006-01-02"),
	}, detail(pct))
	log.Printf("[INFO] %s YoY updated: %+.2f%%", seriesID, pct)
	return nil
}

func (u *Updater) fetchMacro(seriesID string) (model.TimeSeries, error) {
	start := time.Now().AddDate(0, 0, -u.Cfg.LookbackDays)
	s, err := u.Macro.FetchSeries(seriesID, start)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", seriesID, err)
	}
	log.Printf("[INFO] fetched %s %s with %d points", u.Macro.Name(), seriesID, len(s))
	return s, nil
}

// updateNetLiquidity builds the BS - RRP - TGA composite, updates its YoY,
// and attaches the 90-day impulse and the beta against BTC daily closes as
// meta. Impulse and beta are best-effort: either being indeterminate leaves
// its meta field alone without failing the indicator.
func (u *Updater) updateNetLiquidity(rec *model.Indicator) error {
	rrp, err := u.fetchMacro(seriesRRP)
	if err != nil {
		return err
	}
	tga, err := u.fetchMacro(seriesTGA)
	if err != nil {
		return err
	}
	bs, err := u.fetchMacro(seriesBS)
	if err != nil {
		return err
	}

	net := series.Merge(bs, rrp, tga, func(b, r, t float64) float64 { return b - r - t })
	yoy, err := series.YoY(net)
	if err != nil {
		return err
	}
	pct := yoy * 100

	patch := model.Meta{Source: "FRED WALCL/RRPONTSYD/WTREGEN"}
	if last, ok := net.Latest(); ok {
		patch.LastDate = last.Date.Format("2006-01-02")
	}

	if imp, err := series.ChangeOverDays(net, impulseWindowDays); err != nil {
		log.Printf("[WARN] net liquidity impulse: %v", err)
	} else {
		patch.Impulse90d = model.Float(store.Round(imp*100, 2))
	}

	if beta, err := u.netLiquidityBeta(net); err != nil {
		log.Printf("[WARN] net liquidity beta: %v", err)
	} else {
		patch.BetaVsBTC = model.Float(store.Round(beta, 3))
	}

	store.Apply(rec, pct, 2, patch, detailNetLiquidity(pct, patch.Impulse90d, patch.BetaVsBTC))
	log.Printf("[INFO] net liquidity YoY updated: %+.2f%%", pct)
	return nil
}

func (u *Updater) netLiquidityBeta(net model.TimeSeries) (float64, error) {
	last, ok := net.Latest()
	if !ok {
		return 0, fmt.Errorf("empty composite: %w", series.ErrIndeterminate)
	}
	end := last.Date
	prices, err := u.Prices.FetchDailyCloses(btcTicker, end.AddDate(0, 0, -365), end)
	if err != nil {
		return 0, fmt.Errorf("fetch %s closes: %w", btcTicker, err)
	}
	return series.Beta(net, prices)
}

// updateStablecoinGrowth averages the 90-day supply growth of the tracked
// stablecoins. A coin whose fetch or growth fails is dropped; one surviving
// coin still produces a value.
func (u *Updater) updateStablecoinGrowth(rec *model.Indicator) error {
	var samples []float64
	avg, err := series.AverageOf(stablecoinIDs, func(coin string) (float64, error) {
		caps, err := u.Market.FetchMarketCaps(coin, stablecoinFetchDays)
		if err != nil {
			log.Printf("[WARN] fetch market caps for %s: %v", coin, err)
			return 0, err
		}
		g, err := capGrowth(caps, stablecoinWindowDays)
		if err != nil {
			log.Printf("[WARN] supply growth for %s: %v", coin, err)
			return 0, err
		}
		samples = append(samples, store.Round(g, 2))
		return g, nil
	})
	if err != nil {
		return err
	}

	store.Apply(rec, avg, 2, model.Meta{
		Source:       "CoinGecko market_chart",
		Coins:        stablecoinIDs,
		SampleGrowth: samples,
	}, detailStablecoin(avg))
	log.Printf("[INFO] stablecoin %dd growth updated: %+.2f%%", stablecoinWindowDays, avg)
	return nil
}

// capGrowth returns the percent change from the first market cap at or after
// (latest - windowDays) to the latest cap. When no cap falls inside the
// window the earliest available cap serves as the baseline.
func capGrowth(caps model.TimeSeries, windowDays int) (float64, error) {
	if len(caps) < 2 {
		return 0, fmt.Errorf("market cap history too short (%d points): %w",
			len(caps), series.ErrIndeterminate)
	}
	last := caps[len(caps)-1]
	target := last.Date.AddDate(0, 0, -windowDays)
	start := caps[0].Value
	for _, p := range caps {
		if !p.Date.Before(target) {
			start = p.Value
			break
		}
	}
	if start <= 0 {
		return 0, fmt.Errorf("non-positive starting cap: %w", series.ErrIndeterminate)
	}
	return (last.Value - start) / start * 100, nil
}

// updateDominance writes the stablecoin market-cap share; the warning band
// already present in the store takes priority over the defaults.
func (u *Updater) updateDominance(rec *model.Indicator) error {
	dom, err := u.Dominance.FetchDominance(dominanceAsset)
	if err != nil {
		return fmt.Errorf("fetch dominance: %w", err)
	}

	floor, ceiling := defaultBandFloor, defaultBandCeiling
	if rec.Meta.BandFloor != nil {
		floor = *rec.Meta.BandFloor
	}
	if rec.Meta.BandCeiling != nil {
		ceiling = *rec.Meta.BandCeiling
	}

	store.Apply(rec, dom, 3, model.Meta{
		Source:      "CoinGecko /global market_cap_percentage.usdt",
		BandFloor:   model.Float(floor),
		BandCeiling: model.Float(ceiling),
	}, detailDominance(dom, floor, ceiling))
	log.Printf("[INFO] USDT.D dominance updated: %.3f%%", dom)
	return nil
}

func (u *Updater) updateETFFlow(rec *model.Indicator) error {
	flows, err := u.Flows.FetchFlows()
	if err != nil {
		return fmt.Errorf("fetch etf flows: %w", err)
	}
	total, err := sumRecentFlows(flows, flowWindowDays)
	if err != nil {
		return err
	}

	store.Apply(rec, total, 2, model.Meta{
		Source: "SoSoValue Spot BTC ETF API",
		Window: fmt.Sprintf("last %d days", flowWindowDays),
	}, detailETFFlow(total))
	log.Printf("[INFO] ETF net flow %dd updated: %.0f USD", flowWindowDays, total)
	return nil
}

// sumRecentFlows collapses per-fund records into per-day totals, then sums
// the most recent n days.
func sumRecentFlows(flows []model.FlowPoint, n int) (float64, error) {
	if len(flows) == 0 {
		return 0, fmt.Errorf("no flow records: %w", series.ErrIndeterminate)
	}
	daily := map[time.Time]float64{}
	for _, f := range flows {
		daily[model.Day(f.Date)] += f.Flow
	}
	days := make([]time.Time, 0, len(daily))
	for d := range daily {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	if len(days) > n {
		days = days[len(days)-n:]
	}
	total := 0.0
	for _, d := range days {
		total += daily[d]
	}
	return total, nil
}

// updateFearGreed scores the latest sentiment reading against its trailing
// window. The z-score is always defined, so only a fetch failure skips this
// indicator.
func (u *Updater) updateFearGreed(rec *model.Indicator) error {
	values, err := u.Sentiment.FetchIndex(sentimentWindowSize)
	if err != nil {
		return fmt.Errorf("fetch sentiment index: %w", err)
	}
	if len(values) == 0 {
		return fmt.Errorf("no sentiment readings: %w", series.ErrIndeterminate)
	}

	z := series.ZScore(values)
	latest := values[len(values)-1]
	store.Apply(rec, z, 2, model.Meta{
		Source:  "alternative.me Fear & Greed",
		Reading: model.Float(latest),
	}, detailFearGreed(z, latest))
	log.Printf("[INFO] fear & greed z-score updated: %+.2f (reading %.0f)", z, latest)
	return nil
}
