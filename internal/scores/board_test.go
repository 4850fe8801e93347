package scores

import (
	"slices"
	"testing"
)

func TestNewBoardSortsAndTruncates(t *testing.T) {
	b := NewBoard([]Entry{
		{"a", 3}, {"b", 9}, {"c", 1}, {"d", 7}, {"e", 5}, {"f", 8},
	})

	got := b.Entries()
	want := []Entry{{"b", 9}, {"f", 8}, {"d", 7}, {"e", 5}, {"a", 3}}
	if !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}
}

func TestBoardInsert(t *testing.T) {
	full := []Entry{{"a", 50}, {"b", 40}, {"c", 30}, {"d", 20}, {"e", 10}}

	tests := []struct {
		name     string
		start    []Entry
		score    int
		inserted bool
		want     []Entry
	}{
		{
			name:     "empty board accepts anything",
			score:    0,
			inserted: true,
			want:     []Entry{{"new", 0}},
		},
		{
			name:     "lower than minimum on full board",
			start:    full,
			score:    5,
			inserted: false,
			want:     full,
		},
		{
			name:     "equal to minimum on full board",
			start:    full,
			score:    10,
			inserted: false,
			want:     full,
		},
		{
			name:     "middle of full board",
			start:    full,
			score:    35,
			inserted: true,
			want:     []Entry{{"a", 50}, {"b", 40}, {"new", 35}, {"c", 30}, {"d", 20}},
		},
		{
			name:     "tie ranks below existing entry",
			start:    []Entry{{"a", 50}, {"b", 40}},
			score:    40,
			inserted: true,
			want:     []Entry{{"a", 50}, {"b", 40}, {"new", 40}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(tt.start)
			if got := b.Insert("new", tt.score); got != tt.inserted {
				t.Errorf("Insert = %v, want %v", got, tt.inserted)
			}
			if got := b.Entries(); !slices.Equal(got, tt.want) {
				t.Errorf("Entries() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoardNeverExceedsLimit(t *testing.T) {
	b := NewBoard(nil)
	for i := range 50 {
		b.Insert("p", (i*37)%101)
		if b.Len() > 5 {
			t.Fatalf("board grew to %d entries", b.Len())
		}
		e := b.Entries()
		if !slices.IsSortedFunc(e, func(x, y Entry) int { return y.Score - x.Score }) {
			t.Fatalf("board not sorted descending: %v", e)
		}
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	b := NewBoard([]Entry{{"a", 1}})
	e := b.Entries()
	e[0].Score = 100

	if b.Entries()[0].Score != 1 {
		t.Error("mutating Entries() result changed the board")
	}
}
