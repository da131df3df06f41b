package scan

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"

	"pancakescope/internal/chain"
	"pancakescope/internal/pool"
	"pancakescope/internal/storage"
)

type fakeChain struct {
	mu         sync.Mutex
	listing    []chain.Account
	listErr    error
	listCalls  int
	accounts   map[string]*chain.Account
	signatures map[string][]chain.Signature
	sigErr     map[string]error
	sigCalls   []string
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		accounts:   make(map[string]*chain.Account),
		signatures: make(map[string][]chain.Signature),
		sigErr:     make(map[string]error),
	}
}

func (f *fakeChain) ProgramAccounts(_ context.Context, _ solana.PublicKey) ([]chain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listing, nil
}

func (f *fakeChain) AccountInfo(_ context.Context, address solana.PublicKey) (*chain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.accounts[address.String()], nil
}

func (f *fakeChain) Signatures(_ context.Context, address solana.PublicKey, _ int) ([]chain.Signature, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sigCalls = append(f.sigCalls, address.String())
	if err := f.sigErr[address.String()]; err != nil {
		return nil, err
	}
	return f.signatures[address.String()], nil
}

// addPool registers a pool account plus its mints and vaults, and returns the pool address.
func (f *fakeChain) addPool(balance0, balance1 uint64, tick int32) solana.PublicKey {
	address := solana.NewWallet().PublicKey()
	mint0 := solana.NewWallet().PublicKey()
	mint1 := solana.NewWallet().PublicKey()
	vault0 := solana.NewWallet().PublicKey()
	vault1 := solana.NewWallet().PublicKey()

	account := chain.Account{
		Address: address,
		Owner:   pool.ProgramID,
		Data:    poolAccountData(mint0, mint1, vault0, vault1, 10, tick),
	}
	f.listing = append(f.listing, account)
	f.accounts[address.String()] = &account
	f.accounts[mint0.String()] = &chain.Account{Address: mint0, Owner: solana.TokenProgramID, Data: mintData(6)}
	f.accounts[mint1.String()] = &chain.Account{Address: mint1, Owner: solana.TokenProgramID, Data: mintData(9)}
	f.accounts[vault0.String()] = &chain.Account{Address: vault0, Owner: solana.TokenProgramID, Data: tokenAccountData(mint0, balance0)}
	f.accounts[vault1.String()] = &chain.Account{Address: vault1, Owner: solana.TokenProgramID, Data: tokenAccountData(mint1, balance1)}
	return address
}

// addJunk registers a program-owned account that is not a pool.
func (f *fakeChain) addJunk() {
	data := make([]byte, pool.MinAccountSize)
	data[0] = 1
	f.listing = append(f.listing, chain.Account{Address: solana.NewWallet().PublicKey(), Owner: pool.ProgramID, Data: data})
}

func poolAccountData(mint0, mint1, vault0, vault1 solana.PublicKey, spacing uint16, tick int32) []byte {
	data := make([]byte, 0, pool.MinAccountSize)
	data = append(data, pool.Discriminator[:]...)
	data = append(data, 255)
	ammConfig := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()
	for _, key := range []solana.PublicKey{ammConfig, owner, mint0, mint1, vault0, vault1} {
		data = append(data, key[:]...)
	}
	data = binary.LittleEndian.AppendUint16(data, spacing)
	data = binary.LittleEndian.AppendUint32(data, uint32(tick))
	return data
}

func tokenAccountData(mint solana.PublicKey, amount uint64) []byte {
	data := make([]byte, 165)
	copy(data[0:32], mint[:])
	binary.LittleEndian.PutUint64(data[64:72], amount)
	data[108] = 1
	return data
}

func mintData(decimals uint8) []byte {
	data := make([]byte, 82)
	binary.LittleEndian.PutUint64(data[36:44], 1_000_000)
	data[44] = decimals
	data[45] = 1
	return data
}

type fakePrices struct {
	prices map[string]float64
	err    error
	calls  int
	mints  []string
}

func (f *fakePrices) Prices(_ context.Context, mints []string) (map[string]float64, error) {
	f.calls++
	f.mints = mints
	return f.prices, f.err
}

var errBoom = errors.New("boom")

var testNow = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func newTestScanner(t *testing.T, cfg Config, fc *fakeChain, prices PriceSource) (*Scanner, *storage.JSONStore) {
	t.Helper()
	store := storage.NewJSONStore(t.TempDir())
	s := NewScanner(cfg, fc, prices, store, nil, nil)
	s.sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	s.now = func() time.Time { return testNow }
	return s, store
}

func blockTime(t time.Time) *time.Time {
	return &t
}
