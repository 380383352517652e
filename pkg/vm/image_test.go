package vm

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func encodeImage(origin uint16, words ...uint16) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, origin)
	for _, w := range words {
		binary.Write(&buf, binary.BigEndian, w)
	}
	return buf.Bytes()
}

func TestLoadImageRoundTrip(t *testing.T) {
	m, _ := newTestVM("")
	data := encodeImage(0x3000, 0x1111, 0x2222, 0x3333)
	origin, err := m.LoadImage(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if origin != 0x3000 {
		t.Fatalf("origin = %#04x, want 0x3000", origin)
	}
	want := []uint16{0x1111, 0x2222, 0x3333}
	for i, w := range want {
		if got := m.Mem[0x3000+uint16(i)]; got != w {
			t.Errorf("mem[%#04x] = %#04x, want %#04x", 0x3000+i, got, w)
		}
	}
}

func TestLoadImageLayering(t *testing.T) {
	m, _ := newTestVM("")
	if _, err := m.LoadImage(bytes.NewReader(encodeImage(0x3000, 0xAAAA, 0xBBBB))); err != nil {
		t.Fatalf("LoadImage 1: %v", err)
	}
	if _, err := m.LoadImage(bytes.NewReader(encodeImage(0x3001, 0xCCCC))); err != nil {
		t.Fatalf("LoadImage 2: %v", err)
	}
	if m.Mem[0x3000] != 0xAAAA {
		t.Errorf("mem[0x3000] = %#04x, want unchanged 0xAAAA", m.Mem[0x3000])
	}
	if m.Mem[0x3001] != 0xCCCC {
		t.Errorf("mem[0x3001] = %#04x, want overwritten 0xCCCC", m.Mem[0x3001])
	}
}

func TestLoadImageEmptyAfterOrigin(t *testing.T) {
	m, _ := newTestVM("")
	origin, err := m.LoadImage(bytes.NewReader(encodeImage(0x4000)))
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if origin != 0x4000 {
		t.Fatalf("origin = %#04x, want 0x4000", origin)
	}
}
