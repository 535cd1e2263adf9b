package chunker

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := New()
		if c.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, c.chunkSize)
		}
		if c.overlap != DefaultOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultOverlap, c.overlap)
		}
	})

	t.Run("custom chunk size", func(t *testing.T) {
		c := New(WithChunkSize(500))
		if c.chunkSize != 500 {
			t.Errorf("expected chunkSize 500, got %d", c.chunkSize)
		}
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		c := New(WithChunkSize(100), WithOverlap(150))
		if c.overlap >= c.chunkSize {
			t.Error("overlap should be reduced when it exceeds chunk size")
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		c := New(WithChunkSize(0), WithOverlap(-1))
		if c.chunkSize != DefaultChunkSize {
			t.Errorf("expected default chunkSize, got %d", c.chunkSize)
		}
		if c.overlap != DefaultOverlap {
			t.Errorf("expected default overlap, got %d", c.overlap)
		}
	})
}

func TestSplit_Empty(t *testing.T) {
	c := New()
	if pieces := c.Split(""); len(pieces) != 0 {
		t.Errorf("expected 0 pieces for empty input, got %d", len(pieces))
	}
}

func TestSplit_SmallInput(t *testing.T) {
	c := New(WithChunkSize(100), WithOverlap(20))
	text := "This is a small piece of content."

	pieces := c.Split(text)
	if len(pieces) != 1 {
		t.Fatalf("expected 1 piece for small input, got %d", len(pieces))
	}
	if pieces[0].Text != text {
		t.Errorf("expected piece to match input text")
	}
	if pieces[0].Start != 0 || pieces[0].End != len(text) {
		t.Errorf("expected offsets [0,%d), got [%d,%d)", len(text), pieces[0].Start, pieces[0].End)
	}
}

func TestSplit_LargeInput(t *testing.T) {
	c := New(WithChunkSize(100), WithOverlap(20))
	text := strings.Repeat("x", 250)

	pieces := c.Split(text)
	if len(pieces) < 2 {
		t.Fatalf("expected multiple pieces, got %d", len(pieces))
	}

	// Every piece is non-empty and within bounds.
	for i, p := range pieces {
		if p.Text == "" {
			t.Errorf("piece %d is empty", i)
		}
		if p.Start < 0 || p.End > len(text) || p.Start >= p.End {
			t.Errorf("piece %d has invalid offsets [%d,%d)", i, p.Start, p.End)
		}
		if text[p.Start:p.End] != p.Text {
			t.Errorf("piece %d text does not match its offsets", i)
		}
	}

	// Consecutive pieces overlap by exactly the configured amount and leave
	// no gap in coverage.
	for i := 1; i < len(pieces); i++ {
		gap := pieces[i].Start - pieces[i-1].End
		if gap > 0 {
			t.Errorf("gap of %d bytes between pieces %d and %d", gap, i-1, i)
		}
		if pieces[i-1].End != len(text) {
			overlap := pieces[i-1].End - pieces[i].Start
			if overlap != 20 {
				t.Errorf("expected overlap 20 between pieces %d and %d, got %d", i-1, i, overlap)
			}
		}
	}

	// Last piece reaches the end of the input.
	if pieces[len(pieces)-1].End != len(text) {
		t.Errorf("expected final piece to end at %d, got %d", len(text), pieces[len(pieces)-1].End)
	}
}

func TestSplit_ExactMultiple(t *testing.T) {
	// Input length equal to the chunk size yields a single piece, not a
	// trailing duplicate.
	c := New(WithChunkSize(100), WithOverlap(20))
	pieces := c.Split(strings.Repeat("y", 100))
	if len(pieces) != 1 {
		t.Errorf("expected 1 piece, got %d", len(pieces))
	}
}
