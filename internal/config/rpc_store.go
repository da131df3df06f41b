package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// RPCFileName is the document holding the last RPC endpoint passed with --rpc.
const RPCFileName = ".solana-pancake-swap-config.json"

type rpcDocument struct {
	RPCURL string `json:"rpcUrl"`
}

// RPCStore persists the RPC endpoint between runs.
type RPCStore struct {
	path string
}

func NewRPCStore(dir string) *RPCStore {
	if dir == "" {
		dir = "."
	}
	return &RPCStore{path: filepath.Join(dir, RPCFileName)}
}

func (s *RPCStore) Path() string {
	return s.path
}

// Load returns the saved endpoint. ok is false when nothing usable is stored.
func (s *RPCStore) Load() (string, bool, error) {
	stat, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("stat rpc config: %w", err)
	}
	if stat.IsDir() {
		return "", false, fmt.Errorf("rpc config path is a directory")
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false, fmt.Errorf("read rpc config: %w", err)
	}

	var doc rpcDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return "", false, fmt.Errorf("parse rpc config: %w", err)
	}
	url := strings.TrimSpace(doc.RPCURL)
	return url, url != "", nil
}

func (s *RPCStore) Save(url string) error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create rpc config dir: %w", err)
		}
	}

	data, err := json.MarshalIndent(rpcDocument{RPCURL: url}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal rpc config: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("write rpc config tmp: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("rename rpc config: %w", err)
	}
	return nil
}

// ResolveRPC picks the endpoint for this run. A --rpc value is saved for later runs;
// otherwise env or config file wins over the saved document.
func ResolveRPC(cfg Config, store *RPCStore) (string, error) {
	if cfg.RPCURL != "" {
		if cfg.RPCFromFlag && store != nil {
			if err := store.Save(cfg.RPCURL); err != nil {
				return "", err
			}
		}
		return cfg.RPCURL, nil
	}
	if store != nil {
		url, ok, err := store.Load()
		if err != nil {
			return "", err
		}
		if ok {
			return url, nil
		}
	}
	return "", ErrRPCRequired
}
