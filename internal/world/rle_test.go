package world

import (
	"bytes"
	"testing"
)

func TestRLERoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		{},
		{0},
		{1, 1, 1, 1, 1},
		{1, 2, 3, 4, 5},
		bytes.Repeat([]byte{7}, 600),
	}
	for _, data := range cases {
		got := decompressRLE(compressRLE(data))
		if !bytes.Equal(got, data) && !(len(data) == 0 && len(got) == 0) {
			t.Fatalf("round trip mismatch: in=%v out=%v", data, got)
		}
	}
}

func TestRLESplitsLongRuns(t *testing.T) {
	data := bytes.Repeat([]byte{9}, 300)
	compressed := compressRLE(data)
	if len(compressed) != 4 {
		t.Fatalf("expected a 300-run to split into two (count,byte) pairs, got %d bytes", len(compressed))
	}
	if compressed[0] != 255 || compressed[2] != 45 {
		t.Fatalf("unexpected split counts: %v", compressed)
	}
}
