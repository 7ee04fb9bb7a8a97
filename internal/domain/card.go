package domain

// Suit is one of the four card suits, encoded the way the game server
// encodes them on the wire.
type Suit string

const (
	Diamonds Suit = "d"
	Clubs    Suit = "c"
	Spades   Suit = "s"
	Hearts   Suit = "h"
)

// heights lists the 13 card heights in ascending order.
const heights = "23456789TJQKA"

// Card is a single playing card. Within a turn, cards are referred to by
// their index in the dealt hand, never by value: the server may deal two
// cards of equal height and suit at distinct indices.
type Card struct {
	Height string `json:"height"`
	Suit   Suit   `json:"suit"`
}

func (c Card) String() string {
	return c.Height + string(c.Suit)
}

// Valid reports whether the card carries a known height and suit.
func (c Card) Valid() bool {
	if len(c.Height) != 1 {
		return false
	}
	found := false
	for i := 0; i < len(heights); i++ {
		if heights[i] == c.Height[0] {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	switch c.Suit {
	case Diamonds, Clubs, Spades, Hearts:
		return true
	}
	return false
}
