// internal/game/cards.go
//
// Card vocabulary for the Clue engine.
// Defines:
//   - Category: suspect / weapon / room.
//   - Card: canonical card names (6 suspects, 6 weapons, 9 rooms).
//   - Lookup helpers that validate membership in the closed enumerations.
//
// Names are matched exactly. Case folding and "the Kitchen" style inputs
// are a presentation concern (see internal/console).

package game

import (
	"fmt"

	"github.com/samber/lo"
)

// Category is one of the three disjoint card families.
type Category string

const (
	CategorySuspect Category = "suspect"
	CategoryWeapon  Category = "weapon"
	CategoryRoom    Category = "room"
)

// Card is a canonical card name.
type Card string

const (
	MissScarlet  Card = "Miss Scarlet"
	ColMustard   Card = "Col. Mustard"
	MrsWhite     Card = "Mrs. White"
	MrGreen      Card = "Mr. Green"
	MrsPeacock   Card = "Mrs. Peacock"
	ProfPlum     Card = "Prof. Plum"
	Candlestick  Card = "Candlestick"
	Knife        Card = "Knife"
	LeadPipe     Card = "Lead Pipe"
	Revolver     Card = "Revolver"
	Rope         Card = "Rope"
	Wrench       Card = "Wrench"
	Kitchen      Card = "Kitchen"
	Ballroom     Card = "Ballroom"
	Conservatory Card = "Conservatory"
	BilliardRoom Card = "Billiard Room"
	Library      Card = "Library"
	Study        Card = "Study"
	Hall         Card = "Hall"
	Lounge       Card = "Lounge"
	DiningRoom   Card = "Dining Room"
)

// Suspects, Weapons and Rooms are the fixed enumerations in display order.
var (
	Suspects = []Card{MissScarlet, ColMustard, MrsWhite, MrGreen, MrsPeacock, ProfPlum}
	Weapons  = []Card{Candlestick, Knife, LeadPipe, Revolver, Rope, Wrench}
	Rooms    = []Card{Kitchen, Ballroom, Conservatory, BilliardRoom, Library, Study, Hall, Lounge, DiningRoom}
)

// StartingRoom is where every participant begins.
const StartingRoom = Hall

var categoryOf = func() map[Card]Category {
	m := make(map[Card]Category, len(Suspects)+len(Weapons)+len(Rooms))
	for _, c := range Suspects {
		m[c] = CategorySuspect
	}
	for _, c := range Weapons {
		m[c] = CategoryWeapon
	}
	for _, c := range Rooms {
		m[c] = CategoryRoom
	}
	return m
}()

// FullDeck returns the 21 canonical cards: suspects, then weapons, then rooms.
func FullDeck() []Card {
	deck := make([]Card, 0, len(categoryOf))
	deck = append(deck, Suspects...)
	deck = append(deck, Weapons...)
	return append(deck, Rooms...)
}

// Category reports the family of c; ok is false for unknown names.
func (c Card) Category() (Category, bool) {
	cat, ok := categoryOf[c]
	return cat, ok
}

// Valid reports whether c is any known card.
func (c Card) Valid() bool {
	_, ok := categoryOf[c]
	return ok
}

// Is reports whether c belongs to cat.
func (c Card) Is(cat Category) bool {
	got, ok := categoryOf[c]
	return ok && got == cat
}

// CardsOf returns the enumeration for cat (nil for an unknown category).
func CardsOf(cat Category) []Card {
	switch cat {
	case CategorySuspect:
		return Suspects
	case CategoryWeapon:
		return Weapons
	case CategoryRoom:
		return Rooms
	default:
		return nil
	}
}

// Parse returns the card called name in category cat.
// Unknown names, or names from another category, fail with ErrInvalidInput.
func Parse(cat Category, name string) (Card, error) {
	c := Card(name)
	if !lo.Contains(CardsOf(cat), c) {
		return "", fmt.Errorf("%w: %q is not a %s", ErrInvalidInput, name, cat)
	}
	return c, nil
}

// Triple is a suspect/weapon/room combination: a suggestion, accusation or the solution.
type Triple struct {
	Suspect Card `json:"suspect"`
	Weapon  Card `json:"weapon"`
	Room    Card `json:"room"`
}

// Cards lists the triple in disproof priority order: suspect, weapon, room.
func (t Triple) Cards() []Card {
	return []Card{t.Suspect, t.Weapon, t.Room}
}

// validate checks each field against its enumeration.
func (t Triple) validate() error {
	if !t.Suspect.Is(CategorySuspect) {
		return fmt.Errorf("%w: %q is not a suspect", ErrInvalidInput, t.Suspect)
	}
	if !t.Weapon.Is(CategoryWeapon) {
		return fmt.Errorf("%w: %q is not a weapon", ErrInvalidInput, t.Weapon)
	}
	if !t.Room.Is(CategoryRoom) {
		return fmt.Errorf("%w: %q is not a room", ErrInvalidInput, t.Room)
	}
	return nil
}

func (t Triple) String() string {
	return fmt.Sprintf("%s with the %s in the %s", t.Suspect, t.Weapon, t.Room)
}
