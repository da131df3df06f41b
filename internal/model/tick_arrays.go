package model

// TickArrays holds derived tick array and bitmap addresses for a pool.
type TickArrays struct {
	LowerStartIndex int32  `json:"lowerStartIndex"`
	UpperStartIndex int32  `json:"upperStartIndex"`
	Lower           string `json:"lower"`
	Upper           string `json:"upper"`
	Bitmap          string `json:"bitmap"`
}
