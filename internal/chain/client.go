package chain

import (
	"context"
	"errors"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Account is an account's owner and raw data.
type Account struct {
	Address solana.PublicKey
	Owner   solana.PublicKey
	Data    []byte
}

// Signature is a transaction signature touching an address.
type Signature struct {
	Signature string
	// BlockTime is nil when the node did not report one.
	BlockTime *time.Time
}

// Client wraps the solana-go RPC client and provides helper methods.
type Client struct {
	rpcClient  *rpc.Client
	commitment rpc.CommitmentType
}

// NewClient creates a new chain client from the RPC URL.
func NewClient(rpcURL string) *Client {
	return &Client{
		rpcClient:  rpc.New(rpcURL),
		commitment: rpc.CommitmentConfirmed,
	}
}

// Close closes the underlying RPC client.
func (c *Client) Close() {
	if c.rpcClient != nil {
		_ = c.rpcClient.Close()
	}
}

// ProgramAccounts returns every account owned by program, in node order.
func (c *Client) ProgramAccounts(ctx context.Context, program solana.PublicKey) ([]Account, error) {
	out, err := c.rpcClient.GetProgramAccountsWithOpts(ctx, program, &rpc.GetProgramAccountsOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: c.commitment,
	})
	if err != nil {
		return nil, err
	}

	accounts := make([]Account, 0, len(out))
	for _, keyed := range out {
		if keyed == nil || keyed.Account == nil {
			continue
		}
		accounts = append(accounts, toAccount(keyed.Pubkey, keyed.Account))
	}
	return accounts, nil
}

// AccountInfo returns the account at address, or nil when it does not exist.
func (c *Client) AccountInfo(ctx context.Context, address solana.PublicKey) (*Account, error) {
	out, err := c.rpcClient.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: c.commitment,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if out == nil || out.Value == nil {
		return nil, nil
	}
	account := toAccount(address, out.Value)
	return &account, nil
}

// Signatures returns up to limit recent transaction signatures for address, newest first.
func (c *Client) Signatures(ctx context.Context, address solana.PublicKey, limit int) ([]Signature, error) {
	out, err := c.rpcClient.GetSignaturesForAddressWithOpts(ctx, address, &rpc.GetSignaturesForAddressOpts{
		Limit:      &limit,
		Commitment: c.commitment,
	})
	if err != nil {
		return nil, err
	}

	sigs := make([]Signature, 0, len(out))
	for _, entry := range out {
		if entry == nil {
			continue
		}
		sig := Signature{Signature: entry.Signature.String()}
		if entry.BlockTime != nil {
			ts := entry.BlockTime.Time().UTC()
			sig.BlockTime = &ts
		}
		sigs = append(sigs, sig)
	}
	return sigs, nil
}

func toAccount(address solana.PublicKey, account *rpc.Account) Account {
	var data []byte
	if account.Data != nil {
		data = account.Data.GetBinary()
	}
	return Account{
		Address: address,
		Owner:   account.Owner,
		Data:    data,
	}
}
