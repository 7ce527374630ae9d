// internal/game/board.go
//
// The mansion: a fixed undirected room graph.
//
// Neighbour lists are ordered; the "connector" opponent policy breaks degree
// ties by this order, so it is part of the observable behaviour.
//
// The Billiard Room <-> Study passage is absent in both directions. Adding it
// back would give the Study five exits, and the graph keeps every room at 2–4.

package game

import "slices"

var mansion = map[Card][]Card{
	Kitchen:      {Ballroom, DiningRoom, Study},
	Ballroom:     {Kitchen, Conservatory, Hall},
	Conservatory: {Ballroom, BilliardRoom, Lounge},
	BilliardRoom: {Conservatory, Hall, Library},
	Library:      {Study, BilliardRoom},
	Study:        {Library, Lounge, Hall, Kitchen},
	Hall:         {DiningRoom, BilliardRoom, Study, Ballroom},
	Lounge:       {Study, DiningRoom, Conservatory},
	DiningRoom:   {Kitchen, Hall, Lounge},
}

// ValidMoves returns the rooms adjacent to room, or nil for an unknown room.
// The returned slice is a copy.
func ValidMoves(room Card) []Card {
	return slices.Clone(mansion[room])
}

// Adjacent reports whether b can be reached from a in one move.
func Adjacent(a, b Card) bool {
	return slices.Contains(mansion[a], b)
}

// Degree is the number of exits from room.
func Degree(room Card) int {
	return len(mansion[room])
}

// Board returns a copy of the whole adjacency map, for map displays.
func Board() map[Card][]Card {
	out := make(map[Card][]Card, len(mansion))
	for room, next := range mansion {
		out[room] = slices.Clone(next)
	}
	return out
}
