// Package scores keeps the persisted list of best scores.
package scores

import (
	"slices"

	"github.com/tomz197/spacedodge/internal/game/config"
)

// Entry is one line of the board.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Board is an in-memory top list sorted by descending score.
type Board struct {
	entries []Entry
	limit   int
}

// NewBoard builds a board of at most config.MaxScoreEntries from entries.
func NewBoard(entries []Entry) *Board {
	b := &Board{
		entries: slices.Clone(entries),
		limit:   config.MaxScoreEntries,
	}
	b.normalize()
	return b
}

// Entries returns a copy of the board, best first.
func (b *Board) Entries() []Entry {
	return slices.Clone(b.entries)
}

// Len returns the number of entries.
func (b *Board) Len() int {
	return len(b.entries)
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	return &Board{entries: slices.Clone(b.entries), limit: b.limit}
}

// Qualifies reports whether score would enter the board.
func (b *Board) Qualifies(score int) bool {
	if len(b.entries) < b.limit {
		return true
	}
	return score > b.entries[len(b.entries)-1].Score
}

// Insert adds the score if it qualifies. Ties rank below existing entries.
func (b *Board) Insert(name string, score int) bool {
	if !b.Qualifies(score) {
		return false
	}
	b.entries = append(b.entries, Entry{Name: name, Score: score})
	b.normalize()
	return true
}

func (b *Board) normalize() {
	slices.SortStableFunc(b.entries, func(x, y Entry) int {
		return y.Score - x.Score
	})
	if len(b.entries) > b.limit {
		b.entries = b.entries[:b.limit]
	}
}
