package model

// PoolState is the decoded on-chain pool account.
type PoolState struct {
	AmmConfig    string `json:"ammConfig"`
	TokenMint0   string `json:"tokenMint0"`
	TokenMint1   string `json:"tokenMint1"`
	TokenVault0  string `json:"tokenVault0"`
	TokenVault1  string `json:"tokenVault1"`
	TickSpacing  uint16 `json:"tickSpacing"`
	TickCurrent  int32  `json:"tickCurrent"`
	SqrtPriceX64 string `json:"sqrtPriceX64"`
	Liquidity    string `json:"liquidity"`
}

// PoolInfo is a pool enriched with balances and symbols.
type PoolInfo struct {
	Address      string   `json:"address"`
	AmmConfig    string   `json:"ammConfig,omitempty"`
	TokenMint0   string   `json:"tokenMint0"`
	TokenMint1   string   `json:"tokenMint1"`
	TokenSymbol0 string   `json:"tokenSymbol0"`
	TokenSymbol1 string   `json:"tokenSymbol1"`
	TokenVault0  string   `json:"tokenVault0"`
	TokenVault1  string   `json:"tokenVault1"`
	Balance0     float64  `json:"balance0"`
	Balance1     float64  `json:"balance1"`
	Price0USD    *float64 `json:"price0USD,omitempty"`
	Price1USD    *float64 `json:"price1USD,omitempty"`
	TVL          *float64 `json:"tvl,omitempty"`
	TickSpacing  uint16   `json:"tickSpacing"`
	CurrentTick  int32    `json:"currentTick"`
	SqrtPriceX64 string   `json:"sqrtPriceX64"`
	Liquidity    string   `json:"liquidity"`
	IsV3         bool     `json:"isV3"`
	HasVolume    *bool    `json:"hasVolume,omitempty"`
	// LastTradeTime is the most recent block time (unix seconds) seen for the pool.
	LastTradeTime *int64 `json:"lastTradeTime,omitempty"`
}

// PoolDetail is the single-pool view with derived tick array addresses.
type PoolDetail struct {
	Pool        PoolInfo    `json:"pool"`
	AccountSize int         `json:"accountSize"`
	TickArrays  *TickArrays `json:"tickArrays,omitempty"`
}
