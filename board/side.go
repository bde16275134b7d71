package board

import (
	"fmt"
	"strings"
)

// Side is the color of a player. The zero value is no side, so an empty
// Cell never belongs to anyone.
type Side uint8

const (
	SideUnknown Side = iota
	SideWhite
	SideBlack
)

// ParseSide accepts a FEN turn symbol ("w", "b") or a side name in any case.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "w", "white":
		return SideWhite, nil
	case "b", "black":
		return SideBlack, nil
	default:
		return SideUnknown, fmt.Errorf("unknown side %q", s)
	}
}

func (s Side) String() string {
	switch s {
	case SideWhite:
		return "White"
	case SideBlack:
		return "Black"
	default:
		return ""
	}
}

// Symbol is the FEN turn field.
func (s Side) Symbol() string {
	if s == SideBlack {
		return "b"
	}
	return "w"
}

func (s Side) Opposite() Side {
	switch s {
	case SideWhite:
		return SideBlack
	case SideBlack:
		return SideWhite
	default:
		return SideUnknown
	}
}
