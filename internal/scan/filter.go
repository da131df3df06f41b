package scan

import (
	"sort"
	"time"

	"pancakescope/internal/chain"
	"pancakescope/internal/model"
)

// FilterInactive keeps pools with an empty vault on either side.
func FilterInactive(pools []model.PoolInfo) []model.PoolInfo {
	out := make([]model.PoolInfo, 0)
	for _, p := range pools {
		if p.Balance0 == 0 || p.Balance1 == 0 {
			out = append(out, p)
		}
	}
	return out
}

// FilterNew keeps pools whose address is not in previous, preserving order.
// A nil previous set means there is no baseline and every pool is new.
func FilterNew(pools []model.PoolInfo, previous map[string]struct{}) []model.PoolInfo {
	out := make([]model.PoolInfo, 0, len(pools))
	for _, p := range pools {
		if _, seen := previous[p.Address]; seen {
			continue
		}
		out = append(out, p)
	}
	return out
}

// DistinctMints returns every token mint in pools, in first-seen order.
func DistinctMints(pools []model.PoolInfo) []string {
	seen := make(map[string]struct{}, len(pools)*2)
	out := make([]string, 0, len(pools)*2)
	for _, p := range pools {
		for _, mint := range []string{p.TokenMint0, p.TokenMint1} {
			if mint == "" {
				continue
			}
			if _, ok := seen[mint]; ok {
				continue
			}
			seen[mint] = struct{}{}
			out = append(out, mint)
		}
	}
	return out
}

// ApplyTVL returns copies of pools carrying USD prices and TVL. A missing price counts as 0.
func ApplyTVL(pools []model.PoolInfo, prices map[string]float64) []model.PoolInfo {
	out := make([]model.PoolInfo, len(pools))
	for i, p := range pools {
		price0 := prices[p.TokenMint0]
		price1 := prices[p.TokenMint1]
		tvl := p.Balance0*price0 + p.Balance1*price1
		p.Price0USD = &price0
		p.Price1USD = &price1
		p.TVL = &tvl
		out[i] = p
	}
	return out
}

// FilterTVL keeps pools with over <= tvl <= under, sorted by TVL descending.
// Either bound may be nil.
func FilterTVL(pools []model.PoolInfo, over, under *float64) []model.PoolInfo {
	out := make([]model.PoolInfo, 0)
	for _, p := range pools {
		tvl := tvlOf(p)
		if over != nil && tvl < *over {
			continue
		}
		if under != nil && tvl > *under {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return tvlOf(out[i]) > tvlOf(out[j])
	})
	return out
}

func tvlOf(p model.PoolInfo) float64 {
	if p.TVL == nil {
		return 0
	}
	return *p.TVL
}

// HasRecentActivity reports whether any signature has a block time after cutoff.
func HasRecentActivity(signatures []chain.Signature, cutoff time.Time) bool {
	for _, sig := range signatures {
		if sig.BlockTime != nil && sig.BlockTime.After(cutoff) {
			return true
		}
	}
	return false
}

// latestBlockTime returns the newest block time in unix seconds, or 0.
func latestBlockTime(signatures []chain.Signature) int64 {
	var latest int64
	for _, sig := range signatures {
		if sig.BlockTime == nil {
			continue
		}
		if ts := sig.BlockTime.Unix(); ts > latest {
			latest = ts
		}
	}
	return latest
}
