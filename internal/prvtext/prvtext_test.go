package prvtext

import (
	"strings"
	"testing"
)

func utf16leBytes(s string) []byte {
	out := make([]byte, 0, len(s)*2)
	for _, r := range s {
		out = append(out, byte(r), 0)
	}
	return out
}

func TestDecode_PlainText(t *testing.T) {
	got, err := Decode(strings.NewReader(string(utf16leBytes("hello world"))))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != "hello world" {
		t.Errorf("got %q, want %q", got, "hello world")
	}
}

func TestDecode_TrimsTrailingNulPadding(t *testing.T) {
	raw := append(utf16leBytes("hi"), 0x00, 0x00, 0x00, 0x00)
	got, err := Decode(strings.NewReader(string(raw)))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != "hi" {
		t.Errorf("got %q, want %q", got, "hi")
	}
}

func TestDecode_TrimsTrailingWhitespace(t *testing.T) {
	got, err := Decode(strings.NewReader(string(utf16leBytes("hi  "))))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got != "hi" {
		t.Errorf("got %q, want %q", got, "hi")
	}
}
