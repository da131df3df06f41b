package model

// PoolSnapshot is the on-disk envelope for a list of pools.
type PoolSnapshot struct {
	Timestamp  string     `json:"timestamp"`
	TotalPools int        `json:"totalPools"`
	Pools      []PoolInfo `json:"pools"`
}

// Addresses returns the set of pool addresses in the snapshot.
func (s PoolSnapshot) Addresses() map[string]struct{} {
	out := make(map[string]struct{}, len(s.Pools))
	for _, pool := range s.Pools {
		out[pool.Address] = struct{}{}
	}
	return out
}
