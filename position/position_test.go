package position

import (
	"errors"
	"testing"
)

func TestNewPosFromNotation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		notation string
		want     Pos
		wantErr  error
	}{
		{
			name:     "ok 1",
			notation: "e4",
			want:     Pos(28),
			wantErr:  nil,
		},
		{
			name:     "ok 2",
			notation: "h8",
			want:     Pos(63),
			wantErr:  nil,
		},
		{
			name:     "ok 3",
			notation: "a1",
			want:     Pos(0),
			wantErr:  nil,
		},
		{
			name:     "bad 1",
			notation: "",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 2",
			notation: "a",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 3",
			notation: "4",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 4",
			notation: "m4",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 5",
			notation: "e9",
			wantErr:  ErrInvalidNotation,
		},
		{
			name:     "bad 6",
			notation: "e0",
			wantErr:  ErrInvalidNotation,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewPosFromNotation(tt.notation)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("unexpected error: got=%v want=%v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("unexpected result: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestNewPos(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		file, rank int
		want       Pos
		wantErr    error
	}{
		{name: "a1", file: 0, rank: 0, want: A1},
		{name: "e4", file: 4, rank: 3, want: E4},
		{name: "h8", file: 7, rank: 7, want: H8},
		{name: "negative file", file: -1, rank: 0, wantErr: ErrOutOfBounds},
		{name: "file overflow", file: 8, rank: 0, wantErr: ErrOutOfBounds},
		{name: "rank overflow", file: 0, rank: 8, wantErr: ErrOutOfBounds},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := NewPos(tt.file, tt.rank)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("unexpected error: got=%v want=%v", err, tt.wantErr)
				}
				if got != Invalid {
					t.Errorf("unexpected result: got=%v want=%v", got, Invalid)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("unexpected result: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func Test0x88(t *testing.T) {
	t.Parallel()
	for p := A1; p <= H8; p++ {
		i := p.To0x88()
		if i&0x88 != 0 {
			t.Fatalf("unexpected off-board index for %s: %#x", p, i)
		}
		if got := From0x88(i); got != p {
			t.Errorf("unexpected round trip: got=%v want=%v", got, p)
		}
	}
	if got := E4.To0x88(); got != 0x34 {
		t.Errorf("unexpected 0x88 index: got=%#x want=%#x", got, 0x34)
	}
}

func TestNotation(t *testing.T) {
	t.Parallel()
	for p := A1; p <= H8; p++ {
		got, err := NewPosFromNotation(p.Notation())
		if err != nil {
			t.Fatalf("unexpected error for %d: %v", p, err)
		}
		if got != p {
			t.Errorf("unexpected result: got=%v want=%v", got, p)
		}
	}
	if got := Invalid.Notation(); got != "" {
		t.Errorf("unexpected notation for invalid position: %q", got)
	}
}
