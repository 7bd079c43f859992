package game

import (
	"errors"
	"math/rand"
)

type Suit int

type Rank int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

const (
	Two   Rank = 2
	Three Rank = 3
	Four  Rank = 4
	Five  Rank = 5
	Six   Rank = 6
	Seven Rank = 7
	Eight Rank = 8
	Nine  Rank = 9
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

type Card struct {
	Rank Rank
	Suit Suit
}

func (c Card) String() string {
	r := map[Rank]string{
		Two: "2", Three: "3", Four: "4", Five: "5", Six: "6", Seven: "7", Eight: "8", Nine: "9", Ten: "T", Jack: "J", Queen: "Q", King: "K", Ace: "A",
	}[c.Rank]
	s := map[Suit]string{Hearts: "h", Diamonds: "d", Clubs: "c", Spades: "s"}[c.Suit]
	return r + s
}

// ErrDeckExhausted means a deal was attempted past the 52nd card. Correct
// phase sequencing never reaches it; treat it as fatal to the hand.
var ErrDeckExhausted = errors.New("deck_exhausted")

type Deck struct {
	cards []Card
}

func NewDeck() *Deck {
	cards := make([]Card, 0, 52)
	for s := Hearts; s <= Spades; s++ {
		for r := Two; r <= Ace; r++ {
			cards = append(cards, Card{Rank: r, Suit: s})
		}
	}
	return &Deck{cards: cards}
}

// NewShuffledDeck builds the 52-card deck and applies a Fisher-Yates
// permutation from rnd. Callers inject rnd so tests can pin the order.
func NewShuffledDeck(rnd *rand.Rand) *Deck {
	d := NewDeck()
	d.Shuffle(rnd)
	return d
}

func (d *Deck) Shuffle(rnd *rand.Rand) {
	rnd.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

func (d *Deck) Deal() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrDeckExhausted
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, nil
}

func (d *Deck) Remaining() int {
	return len(d.cards)
}
