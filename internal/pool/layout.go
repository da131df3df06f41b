package pool

import (
	"encoding/binary"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

type fieldKind int

const (
	kindSkip fieldKind = iota
	kindPublicKey
	kindUint16
	kindInt32
)

// field is one entry of a fixed-offset account layout.
type field struct {
	name  string
	width int
	kind  fieldKind
}

// poolStateLayout lists the PoolState fields in on-chain order. All integers are little-endian.
var poolStateLayout = []field{
	{name: "discriminator", width: 8, kind: kindSkip},
	{name: "bump", width: 1, kind: kindSkip},
	{name: "amm_config", width: 32, kind: kindPublicKey},
	{name: "owner", width: 32, kind: kindSkip},
	{name: "token_mint_0", width: 32, kind: kindPublicKey},
	{name: "token_mint_1", width: 32, kind: kindPublicKey},
	{name: "token_vault_0", width: 32, kind: kindPublicKey},
	{name: "token_vault_1", width: 32, kind: kindPublicKey},
	{name: "tick_spacing", width: 2, kind: kindUint16},
	{name: "tick_current", width: 4, kind: kindInt32},
}

// MinAccountSize is the smallest buffer Decode accepts.
var MinAccountSize = layoutSize(poolStateLayout)

func layoutSize(layout []field) int {
	size := 0
	for _, f := range layout {
		size += f.width
	}
	return size
}

// FieldOffset returns the byte offset of a named PoolState field.
func FieldOffset(name string) (int, bool) {
	offset := 0
	for _, f := range poolStateLayout {
		if f.name == name {
			return offset, true
		}
		offset += f.width
	}
	return 0, false
}

// fieldValues maps field names to decoded values.
type fieldValues map[string]interface{}

func readLayout(data []byte, layout []field) (fieldValues, error) {
	dec := bin.NewBinDecoder(data)
	values := make(fieldValues, len(layout))
	for _, f := range layout {
		switch f.kind {
		case kindSkip:
			if err := dec.SkipBytes(uint(f.width)); err != nil {
				return nil, fmt.Errorf("skip %s: %w", f.name, err)
			}
		case kindPublicKey:
			raw, err := dec.ReadNBytes(f.width)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", f.name, err)
			}
			values[f.name] = solana.PublicKeyFromBytes(raw)
		case kindUint16:
			v, err := dec.ReadUint16(binary.LittleEndian)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", f.name, err)
			}
			values[f.name] = v
		case kindInt32:
			v, err := dec.ReadInt32(binary.LittleEndian)
			if err != nil {
				return nil, fmt.Errorf("read %s: %w", f.name, err)
			}
			values[f.name] = v
		default:
			return nil, fmt.Errorf("unsupported field kind for %s", f.name)
		}
	}
	return values, nil
}

func (v fieldValues) publicKey(name string) string {
	key, _ := v[name].(solana.PublicKey)
	return key.String()
}
