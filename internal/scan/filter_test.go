package scan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pancakescope/internal/chain"
	"pancakescope/internal/model"
)

func addresses(pools []model.PoolInfo) []string {
	out := make([]string, 0, len(pools))
	for _, p := range pools {
		out = append(out, p.Address)
	}
	return out
}

func ptr(v float64) *float64 {
	return &v
}

func TestFilterInactiveBoundary(t *testing.T) {
	pools := []model.PoolInfo{
		{Address: "zero0", Balance0: 0.0, Balance1: 5},
		{Address: "tiny", Balance0: 0.0000001, Balance1: 0.0000001},
		{Address: "zero1", Balance0: 3, Balance1: 0.0},
		{Address: "both", Balance0: 0, Balance1: 0},
	}
	require.Equal(t, []string{"zero0", "zero1", "both"}, addresses(FilterInactive(pools)))
}

func TestFilterInactiveEmpty(t *testing.T) {
	got := FilterInactive(nil)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestFilterNew(t *testing.T) {
	previous := model.PoolSnapshot{Pools: []model.PoolInfo{{Address: "A"}, {Address: "B"}}}
	current := []model.PoolInfo{{Address: "B"}, {Address: "C"}, {Address: "D"}}

	require.Equal(t, []string{"C", "D"}, addresses(FilterNew(current, previous.Addresses())))
}

func TestFilterNewWithoutBaseline(t *testing.T) {
	current := []model.PoolInfo{{Address: "B"}, {Address: "C"}}
	require.Equal(t, []string{"B", "C"}, addresses(FilterNew(current, nil)))
}

func TestFilterTVLBand(t *testing.T) {
	pools := []model.PoolInfo{
		{Address: "fifty", TVL: ptr(50)},
		{Address: "one-fifty", TVL: ptr(150)},
		{Address: "three-hundred", TVL: ptr(300)},
	}
	require.Equal(t, []string{"one-fifty"}, addresses(FilterTVL(pools, ptr(100), ptr(250))))
}

func TestFilterTVLInclusiveAndSorted(t *testing.T) {
	pools := []model.PoolInfo{
		{Address: "a", TVL: ptr(100)},
		{Address: "b", TVL: ptr(400)},
		{Address: "c", TVL: ptr(250)},
		{Address: "d", TVL: ptr(250)},
		{Address: "none"},
	}
	require.Equal(t, []string{"b", "c", "d", "a"}, addresses(FilterTVL(pools, ptr(100), nil)))
	require.Equal(t, []string{"c", "d", "a", "none"}, addresses(FilterTVL(pools, nil, ptr(250))))
}

func TestApplyTVLMissingPriceIsZero(t *testing.T) {
	pools := []model.PoolInfo{
		{Address: "p", TokenMint0: "m0", TokenMint1: "m1", Balance0: 2, Balance1: 10},
	}
	priced := ApplyTVL(pools, map[string]float64{"m0": 3})

	require.Len(t, priced, 1)
	require.Equal(t, 6.0, *priced[0].TVL)
	require.Equal(t, 3.0, *priced[0].Price0USD)
	require.Equal(t, 0.0, *priced[0].Price1USD)
	require.Nil(t, pools[0].TVL, "input must not be mutated")
}

func TestDistinctMints(t *testing.T) {
	pools := []model.PoolInfo{
		{TokenMint0: "a", TokenMint1: "b"},
		{TokenMint0: "b", TokenMint1: "c"},
		{TokenMint0: "a", TokenMint1: ""},
	}
	require.Equal(t, []string{"a", "b", "c"}, DistinctMints(pools))
}

func TestHasRecentActivity(t *testing.T) {
	cutoff := testNow.Add(-30 * 24 * time.Hour)
	old := []chain.Signature{
		{Signature: "1", BlockTime: blockTime(cutoff.Add(-time.Hour))},
		{Signature: "2"},
	}
	require.False(t, HasRecentActivity(old, cutoff))
	require.False(t, HasRecentActivity(nil, cutoff))
	require.False(t, HasRecentActivity([]chain.Signature{{BlockTime: blockTime(cutoff)}}, cutoff))

	recent := append(old, chain.Signature{Signature: "3", BlockTime: blockTime(cutoff.Add(time.Minute))})
	require.True(t, HasRecentActivity(recent, cutoff))
}

func TestLatestBlockTime(t *testing.T) {
	sigs := []chain.Signature{
		{BlockTime: blockTime(time.Unix(100, 0))},
		{},
		{BlockTime: blockTime(time.Unix(300, 0))},
		{BlockTime: blockTime(time.Unix(200, 0))},
	}
	require.Equal(t, int64(300), latestBlockTime(sigs))
	require.Equal(t, int64(0), latestBlockTime(nil))
}
