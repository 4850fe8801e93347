package game

import (
	"errors"
	"math/rand"
	"path/filepath"
	"slices"
	"testing"

	"github.com/tomz197/spacedodge/internal/game/config"
	"github.com/tomz197/spacedodge/internal/scores"
)

type recordedScore struct {
	name  string
	score int
}

type fakeRecorder struct {
	qualifies bool
	err       error
	records   []recordedScore
}

func (r *fakeRecorder) Qualifies(int) bool {
	return r.qualifies
}

func (r *fakeRecorder) Record(name string, score int) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	r.records = append(r.records, recordedScore{name, score})
	return true, nil
}

func newTestGame(rec ScoreRecorder) *Game {
	return New(DefaultOptions(), rand.New(rand.NewSource(3)), rec)
}

// crash ends the running session on the next update.
func crash(t *testing.T, g *Game) {
	t.Helper()
	if g.Phase() != PhasePlaying {
		t.Fatalf("phase = %v, want playing", g.Phase())
	}
	placeObstacleOnPlayer(g.Session())
	g.Update(Input{}, testTick)
	if g.Phase() != PhaseGameOver {
		t.Fatalf("phase = %v after crash, want game_over", g.Phase())
	}
}

func TestGameStartsInMenu(t *testing.T) {
	g := newTestGame(nil)

	if g.Phase() != PhaseMenu || g.Session() != nil {
		t.Fatalf("new game: phase %v session %v, want menu and nil", g.Phase(), g.Session())
	}
	if events := g.Update(Input{Left: true}, testTick); events != nil {
		t.Errorf("update in menu returned %v, want nil", events)
	}
	if err := g.Restart(); !errors.Is(err, ErrNotOver) {
		t.Errorf("Restart in menu: err = %v, want ErrNotOver", err)
	}
}

func TestGameStart(t *testing.T) {
	g := newTestGame(nil)

	if err := g.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if g.Phase() != PhasePlaying || g.Session() == nil {
		t.Fatalf("phase %v session %v, want playing with a session", g.Phase(), g.Session())
	}
	if err := g.Start(); !errors.Is(err, ErrNotInMenu) {
		t.Errorf("second Start: err = %v, want ErrNotInMenu", err)
	}
}

func TestGameOverHappensOnce(t *testing.T) {
	g := newTestGame(nil)
	_ = g.Start()
	crash(t, g)

	placeObstacleOnPlayer(g.Session())
	if events := g.Update(Input{}, testTick); events != nil {
		t.Errorf("update after game over returned %v, want nil", events)
	}
	if g.Phase() != PhaseGameOver {
		t.Errorf("phase = %v, want game_over", g.Phase())
	}
}

func TestGameQualifyingScoreNeedsName(t *testing.T) {
	rec := &fakeRecorder{qualifies: true}
	g := newTestGame(rec)
	_ = g.Start()
	g.Session().state.KillScore = 12
	crash(t, g)

	if !g.NeedsName() {
		t.Fatal("qualifying score did not request a name")
	}
	if err := g.Restart(); !errors.Is(err, ErrNamePending) {
		t.Fatalf("Restart before name: err = %v, want ErrNamePending", err)
	}
	if recorded, err := g.SubmitName(""); err != nil || !recorded {
		t.Fatalf("SubmitName: recorded %v err %v", recorded, err)
	}
	if len(rec.records) != 1 || rec.records[0] != (recordedScore{"", 12}) {
		t.Fatalf("records = %v, want one empty-named 12", rec.records)
	}
	if _, err := g.SubmitName("again"); !errors.Is(err, ErrNoNameRequested) {
		t.Errorf("second SubmitName: err = %v, want ErrNoNameRequested", err)
	}

	if err := g.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if g.Phase() != PhasePlaying {
		t.Errorf("phase = %v, want playing", g.Phase())
	}
	st := g.Session().State()
	if st.Score != 0 || st.Level != 1 || st.Elapsed != 0 || st.Hit {
		t.Errorf("restarted session carries old state: %+v", st)
	}
}

func TestGameNonQualifyingScore(t *testing.T) {
	rec := &fakeRecorder{qualifies: false}
	g := newTestGame(rec)
	_ = g.Start()
	crash(t, g)

	if g.NeedsName() {
		t.Fatal("non-qualifying score requested a name")
	}
	if _, err := g.SubmitName("x"); !errors.Is(err, ErrNoNameRequested) {
		t.Errorf("SubmitName: err = %v, want ErrNoNameRequested", err)
	}
	if err := g.ReturnToMenu(); err != nil {
		t.Fatalf("ReturnToMenu: %v", err)
	}
	if g.Phase() != PhaseMenu || g.Session() != nil {
		t.Errorf("phase %v session %v, want menu and nil", g.Phase(), g.Session())
	}
	if len(rec.records) != 0 {
		t.Errorf("records = %v, want none", rec.records)
	}
}

func TestGameRecordFailureStillAdvances(t *testing.T) {
	rec := &fakeRecorder{qualifies: true, err: errors.New("disk full")}
	g := newTestGame(rec)
	_ = g.Start()
	crash(t, g)

	if _, err := g.SubmitName("ace"); err == nil {
		t.Fatal("SubmitName succeeded, want the recorder error")
	}
	if err := g.Restart(); err != nil {
		t.Errorf("Restart after failed record: %v", err)
	}
}

func TestGameQuitDiscardsScore(t *testing.T) {
	rec := &fakeRecorder{qualifies: true}
	g := newTestGame(rec)
	_ = g.Start()
	g.Session().state.KillScore = 30
	g.Update(Input{}, testTick)

	g.Quit()

	if g.Phase() != PhaseMenu || g.Session() != nil {
		t.Errorf("phase %v session %v, want menu and nil", g.Phase(), g.Session())
	}
	if len(rec.records) != 0 {
		t.Errorf("quit recorded %v, want nothing", rec.records)
	}

	_ = g.Start()
	crash(t, g)
	g.Quit()
	if len(rec.records) != 0 || g.NeedsName() {
		t.Errorf("quit at the name prompt recorded %v", rec.records)
	}
}

func TestGameScoreReachesEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "top_scores.json")
	g := newTestGame(scores.Open(path, nil))
	_ = g.Start()
	g.Session().state.KillScore = 12
	crash(t, g)

	if g.FinalScore() != 12 {
		t.Fatalf("final score = %d, want 12", g.FinalScore())
	}
	if !g.NeedsName() {
		t.Fatal("score on an empty store did not ask for a name")
	}
	if recorded, err := g.SubmitName("pilot"); err != nil || !recorded {
		t.Fatalf("SubmitName: recorded %v err %v", recorded, err)
	}

	got, err := scores.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := []scores.Entry{{Name: "pilot", Score: 12}}; !slices.Equal(got, want) {
		t.Errorf("store = %v, want %v", got, want)
	}
}

func TestGameScoreCrowdedOutBeforeName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "top_scores.json")
	store := scores.Open(path, nil)
	g := newTestGame(store)
	_ = g.Start()
	g.Session().state.KillScore = 12
	crash(t, g)
	if !g.NeedsName() {
		t.Fatal("score on an empty store did not ask for a name")
	}

	for i := range config.MaxScoreEntries {
		if _, err := store.Record("other", 100+i); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	recorded, err := g.SubmitName("late")
	if err != nil {
		t.Fatalf("SubmitName: %v", err)
	}
	if recorded {
		t.Error("SubmitName reported a score that no longer qualifies as recorded")
	}
	if slices.ContainsFunc(store.Entries(), func(e scores.Entry) bool { return e.Name == "late" }) {
		t.Errorf("store = %v, want no entry for late", store.Entries())
	}
}
