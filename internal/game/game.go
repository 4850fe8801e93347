package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// Errors returned by Game transitions.
var (
	ErrNotInMenu       = errors.New("game: not in menu")
	ErrNotOver         = errors.New("game: session is not over")
	ErrNamePending     = errors.New("game: waiting for a name")
	ErrNoNameRequested = errors.New("game: score does not qualify for the board")
)

// Phase is the top-level state of the game.
type Phase int

const (
	PhaseMenu     Phase = iota // Title/menu screens
	PhasePlaying               // A session is ticking
	PhaseGameOver              // Player hit; waiting for name and restart choice
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// ScoreRecorder is the persisted top score list.
type ScoreRecorder interface {
	// Qualifies reports whether score would enter the list.
	Qualifies(score int) bool
	// Record inserts the score if it still qualifies, persists the list
	// and reports whether the score was inserted.
	Record(name string, score int) (bool, error)
}

// Game drives Menu → Playing → GameOver → {Restart | Menu}.
// It is not safe for concurrent use; one goroutine owns it.
type Game struct {
	opts     Options
	rng      *rand.Rand
	recorder ScoreRecorder

	phase      Phase
	session    *Session
	finalScore int
	needsName  bool
}

// New creates a game in the menu. recorder may be nil to disable the board.
func New(opts Options, rng *rand.Rand, recorder ScoreRecorder) *Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Game{
		opts:     opts.normalized(),
		rng:      rng,
		recorder: recorder,
		phase:    PhaseMenu,
	}
}

// Phase returns the current phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Session returns the current or just-finished session, or nil in the menu.
func (g *Game) Session() *Session {
	return g.session
}

// Options returns the normalized options sessions are created with.
func (g *Game) Options() Options {
	return g.opts
}

// Start begins a new session from the menu.
func (g *Game) Start() error {
	if g.phase != PhaseMenu {
		return ErrNotInMenu
	}
	g.begin()
	return nil
}

func (g *Game) begin() {
	g.session = NewSession(g.opts, g.rng)
	g.finalScore = 0
	g.needsName = false
	g.phase = PhasePlaying
}

// Update ticks the running session. Outside PhasePlaying it does nothing.
// The tick that hits the player moves the game to PhaseGameOver.
func (g *Game) Update(in Input, dt time.Duration) []Event {
	if g.phase != PhasePlaying || g.session == nil {
		return nil
	}
	events := g.session.Tick(in, dt)
	if g.session.Over() {
		g.phase = PhaseGameOver
		g.finalScore = g.session.Score()
		g.needsName = g.recorder != nil && g.recorder.Qualifies(g.finalScore)
	}
	return events
}

// FinalScore returns the score of the finished session.
func (g *Game) FinalScore() int {
	return g.finalScore
}

// NeedsName reports whether the finished session's score qualifies for the
// board and no name has been submitted yet.
func (g *Game) NeedsName() bool {
	return g.phase == PhaseGameOver && g.needsName
}

// SubmitName records the finished session's score under name, which may be
// any string including empty. It reports whether the score made the board;
// another writer may have filled it since the game ended. The name request
// is consumed even when persisting fails.
func (g *Game) SubmitName(name string) (bool, error) {
	if g.phase != PhaseGameOver {
		return false, ErrNotOver
	}
	if !g.needsName {
		return false, ErrNoNameRequested
	}
	g.needsName = false
	recorded, err := g.recorder.Record(name, g.finalScore)
	if err != nil {
		return false, fmt.Errorf("record score: %w", err)
	}
	return recorded, nil
}

// Restart discards the finished session and starts a new one.
func (g *Game) Restart() error {
	if err := g.checkDecision(); err != nil {
		return err
	}
	g.begin()
	return nil
}

// ReturnToMenu discards the finished session.
func (g *Game) ReturnToMenu() error {
	if err := g.checkDecision(); err != nil {
		return err
	}
	g.reset()
	return nil
}

// Quit abandons whatever is in progress without recording a score.
func (g *Game) Quit() {
	g.reset()
}

func (g *Game) checkDecision() error {
	if g.phase != PhaseGameOver {
		return ErrNotOver
	}
	if g.needsName {
		return ErrNamePending
	}
	return nil
}

func (g *Game) reset() {
	g.session = nil
	g.finalScore = 0
	g.needsName = false
	g.phase = PhaseMenu
}
