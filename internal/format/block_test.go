package format

import (
	"errors"
	"testing"
)

func TestWriteReadHeader(t *testing.T) {
	arena := make([]byte, 256)
	in := Header{Offset: 64, Next: 128, Prev: NilOffset, Class: 6, State: StateUsed, Flags: FlagText}
	if err := WriteHeader(arena, in); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	out, err := ReadHeader(arena, 64)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}
	if out != in {
		t.Fatalf("header mismatch: got %+v want %+v", out, in)
	}
	if !out.Text() || out.Payload() != 64+HeaderSize || out.End() != 128 {
		t.Fatalf("unexpected derived fields: %+v", out)
	}
}

func TestReadHeaderRejects(t *testing.T) {
	arena := make([]byte, 256)

	if _, err := ReadHeader(arena, 0); !errors.Is(err, ErrBadMagic) {
		t.Fatalf("zeroed arena: got %v, want ErrBadMagic", err)
	}
	if _, err := ReadHeader(arena, 250); !errors.Is(err, ErrTruncated) {
		t.Fatalf("short tail: got %v, want ErrTruncated", err)
	}
	if _, err := ReadHeader(arena, 1<<40); !errors.Is(err, ErrTruncated) {
		t.Fatalf("far offset: got %v, want ErrTruncated", err)
	}

	// Class 7 at offset 64 is misaligned.
	if err := WriteHeader(arena, Header{Offset: 64, Class: 7, State: StateFree, Next: NilOffset, Prev: NilOffset}); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	if _, err := ReadHeader(arena, 64); !errors.Is(err, ErrBadClass) {
		t.Fatalf("misaligned class: got %v, want ErrBadClass", err)
	}

	if err := WriteHeader(arena, Header{Offset: 0, Class: 6, State: StateInvalid}); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	if _, err := ReadHeader(arena, 0); !errors.Is(err, ErrBadState) {
		t.Fatalf("invalid state: got %v, want ErrBadState", err)
	}
}

func TestNextBlockWalk(t *testing.T) {
	arena := make([]byte, 224)
	blocks := []Header{
		{Offset: 0, Class: 7, State: StateFree},
		{Offset: 128, Class: 6, State: StateUsed},
		{Offset: 192, Class: 5, State: StateFree},
	}
	for _, h := range blocks {
		h.Next, h.Prev = NilOffset, NilOffset
		if err := WriteHeader(arena, h); err != nil {
			t.Fatalf("WriteHeader(%d): %v", h.Offset, err)
		}
	}

	off := uint64(0)
	for i := range blocks {
		h, next, err := NextBlock(arena, off)
		if err != nil {
			t.Fatalf("NextBlock(%d): %v", off, err)
		}
		if h.Class != blocks[i].Class || h.State != blocks[i].State {
			t.Fatalf("block %d: got %+v", i, h)
		}
		off = next
	}
	if off != uint64(len(arena)) {
		t.Fatalf("walk ended at %d, want %d", off, len(arena))
	}
}

func TestNextBlockTruncated(t *testing.T) {
	arena := make([]byte, 96)
	if err := WriteHeader(arena, Header{Offset: 64, Class: 6, State: StateFree, Next: NilOffset, Prev: NilOffset}); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	if _, _, err := NextBlock(arena, 64); !errors.Is(err, ErrTruncated) {
		t.Fatalf("got %v, want ErrTruncated", err)
	}
}

func TestClearHeader(t *testing.T) {
	arena := make([]byte, 64)
	if err := WriteHeader(arena, Header{Offset: 32, Class: 5, State: StateFree, Next: NilOffset, Prev: NilOffset}); err != nil {
		t.Fatalf("WriteHeader: %v", err)
	}
	ClearHeader(arena, 32)
	if _, err := ReadHeader(arena, 32); !errors.Is(err, ErrBadMagic) {
		t.Fatalf("got %v, want ErrBadMagic", err)
	}
}
