package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFullDeck(t *testing.T) {
	r := require.New(t)

	deck := FullDeck()
	r.Len(deck, 21)
	seen := map[Card]bool{}
	for _, c := range deck {
		r.False(seen[c], "duplicate %s", c)
		seen[c] = true
		r.True(c.Valid())
	}
	r.Equal(MissScarlet, deck[0])
	r.Equal(DiningRoom, deck[len(deck)-1])
}

func TestParse(t *testing.T) {
	r := require.New(t)

	c, err := Parse(CategoryWeapon, "Lead Pipe")
	r.NoError(err)
	r.Equal(LeadPipe, c)

	_, err = Parse(CategoryWeapon, "Kitchen")
	r.True(errors.Is(err, ErrInvalidInput))

	_, err = Parse(CategorySuspect, "lead pipe")
	r.True(errors.Is(err, ErrInvalidInput))
}

func TestCardCategory(t *testing.T) {
	r := require.New(t)

	cat, ok := BilliardRoom.Category()
	r.True(ok)
	r.Equal(CategoryRoom, cat)
	r.True(ProfPlum.Is(CategorySuspect))
	r.False(ProfPlum.Is(CategoryWeapon))

	_, ok = Card("Dagger").Category()
	r.False(ok)
	r.Nil(CardsOf("colour"))
}
