package model

// Pass names a classification pass; each pass writes its own output file.
type Pass string

const (
	PassAll      Pass = "all"
	PassInactive Pass = "inactive"
	PassNoVolume Pass = "no_volume"
	PassNew      Pass = "new"
	PassTVL      Pass = "tvl"
)

// FileName returns the default output file for the pass.
func (p Pass) FileName() string {
	if p == PassAll || p == "" {
		return "pancakeswap_pools.json"
	}
	return "pancakeswap_" + string(p) + "_pools.json"
}
