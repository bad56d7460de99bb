package textnorm

import "testing"

func TestDecode_UTF8(t *testing.T) {
	in := []byte("Contract §4.2 — Zahlungsbedingungen")
	out, err := Decode(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != string(in) {
		t.Errorf("valid UTF-8 must decode to itself, got %q", out)
	}
}

func TestDecode_Latin1Fallback(t *testing.T) {
	// 0xE9 is é in Latin-1 but invalid as a standalone UTF-8 byte.
	in := []byte{'r', 0xE9, 's', 'u', 'm', 0xE9}
	out, err := Decode(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "résumé" {
		t.Errorf("expected Latin-1 decoding %q, got %q", "résumé", out)
	}
}

func TestDecode_ArbitraryBytes(t *testing.T) {
	// Latin-1 maps every byte to a code point, so no byte sequence fails.
	in := []byte{0xFF, 0xFE, 0x00, 0x80, 0x9F}
	out, err := Decode(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len([]rune(out)) != len(in) {
		t.Errorf("expected one rune per byte, got %d runes for %d bytes", len([]rune(out)), len(in))
	}
}

func TestDecode_Empty(t *testing.T) {
	out, err := Decode(nil)
	if err != nil {
		t.Fatalf("empty input is not a decode error: %v", err)
	}
	if out != "" {
		t.Errorf("expected empty string, got %q", out)
	}
}
