package chain

import "testing"

func TestParseAddress(t *testing.T) {
	key, err := ParseAddress(" HpNfyc2Saw7RKkQd8nEL4khUcuPhQ7WwY1B2qjx8jxFq ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key.String() != "HpNfyc2Saw7RKkQd8nEL4khUcuPhQ7WwY1B2qjx8jxFq" {
		t.Fatalf("key mismatch: %s", key)
	}
}

func TestParseAddressInvalid(t *testing.T) {
	if _, err := ParseAddress(""); err == nil {
		t.Fatalf("expected error for empty address")
	}
	if _, err := ParseAddress("0x1111111111111111111111111111111111111111"); err == nil {
		t.Fatalf("expected error for non-base58 address")
	}
}
