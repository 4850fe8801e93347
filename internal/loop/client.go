package loop

import (
	"io"
	"math/rand"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/tomz197/spacedodge/internal/audio"
	"github.com/tomz197/spacedodge/internal/game"
	"github.com/tomz197/spacedodge/internal/game/config"
	"github.com/tomz197/spacedodge/internal/object"
	"github.com/tomz197/spacedodge/internal/scores"
)

// Screen is what the client is currently showing.
type Screen int

const (
	ScreenMenu      Screen = iota // Title menu
	ScreenPlaying                 // A session is ticking
	ScreenLost                    // Explosion, then the "You lost!" banner
	ScreenNameEntry               // Qualifying score, asking for a name
	ScreenPlayAgain               // Y/N prompt
	ScreenTopScores               // Board, shown for a few seconds
	ScreenOptions                 // Volume and mute
)

func (s Screen) String() string {
	switch s {
	case ScreenMenu:
		return "menu"
	case ScreenPlaying:
		return "playing"
	case ScreenLost:
		return "lost"
	case ScreenNameEntry:
		return "name_entry"
	case ScreenPlayAgain:
		return "play_again"
	case ScreenTopScores:
		return "top_scores"
	case ScreenOptions:
		return "options"
	default:
		return "unknown"
	}
}

// MenuItem is an entry on the title menu.
type MenuItem int

const (
	MenuPlay MenuItem = iota
	MenuTopScores
	MenuOptions
	MenuExit
)

// MenuItems lists the title menu in display order.
var MenuItems = []MenuItem{MenuPlay, MenuTopScores, MenuOptions, MenuExit}

func (m MenuItem) String() string {
	switch m {
	case MenuPlay:
		return "Play"
	case MenuTopScores:
		return "Top Scores"
	case MenuOptions:
		return "Options"
	case MenuExit:
		return "Exit"
	default:
		return "?"
	}
}

// Controls is one frame of frontend-neutral input. Directional keys and
// Fire are held states; Text and AnyKey only report what arrived this frame.
type Controls struct {
	Left, Right bool
	Up, Down    bool
	Fire        bool
	Confirm     bool // Enter
	Back        bool // Escape
	Backspace   bool
	Quit        bool // q
	Interrupt   bool // Ctrl-C or window close
	Text        string
	AnyKey      bool
}

// pressed holds keys that went down this frame.
type pressed struct {
	up, down, left, right bool
	fire, confirm, back   bool
	backspace, quit       bool
}

func edges(cur, prev Controls) pressed {
	return pressed{
		up:        cur.Up && !prev.Up,
		down:      cur.Down && !prev.Down,
		left:      cur.Left && !prev.Left,
		right:     cur.Right && !prev.Right,
		fire:      cur.Fire && !prev.Fire,
		confirm:   cur.Confirm && !prev.Confirm,
		back:      cur.Back && !prev.Back,
		backspace: cur.Backspace && !prev.Backspace,
		quit:      cur.Quit && !prev.Quit,
	}
}

// Board is the persisted score list behind the top scores screen.
type Board interface {
	game.ScoreRecorder
	Entries() []scores.Entry
}

// ClientOptions configures a Client.
type ClientOptions struct {
	Game        game.Options
	Board       Board         // nil disables the score board
	Audio       *audio.Engine // nil plays nothing
	Logger      *log.Logger
	Rand        *rand.Rand
	DefaultName string // Prefilled on the name entry screen

	// Inactivity limits; zero disables them.
	IdleWarn       time.Duration
	IdleDisconnect time.Duration
}

// Message is a timed banner shown over the playfield.
type Message struct {
	Text      string
	Remaining time.Duration
}

// Blast marks where an explosion started and how long ago.
type Blast struct {
	X, Y float64
	Age  time.Duration
}

// Client runs the screen flow around a game: menu, play, game over,
// scores and options. Frontends feed it Controls once per frame and
// render what it exposes. It is not safe for concurrent use.
type Client struct {
	game   *game.Game
	board  Board
	audio  *audio.Engine
	logger *log.Logger
	rng    *rand.Rand

	screen     Screen
	screenTime time.Duration
	menuIndex  int
	name       []rune
	topScores  []scores.Entry

	defaultName string
	messages    []Message
	particles   []*object.Particle
	blasts      []Blast
	stars       *object.Starfield

	prev           Controls
	idle           time.Duration
	idleWarn       time.Duration
	idleDisconnect time.Duration
	running        bool
}

// NewClient creates a client on the title menu.
func NewClient(opts ClientOptions) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	engine := opts.Audio
	if engine == nil {
		engine = audio.Disabled()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	var recorder game.ScoreRecorder
	if opts.Board != nil {
		recorder = opts.Board
	}
	g := game.New(opts.Game, rng, recorder)

	engine.StartMusic()

	return &Client{
		game:           g,
		board:          opts.Board,
		audio:          engine,
		logger:         logger,
		rng:            rng,
		screen:         ScreenMenu,
		defaultName:    opts.DefaultName,
		stars:          object.NewStarfield(g.Options().Field, rng, config.StarsPerLayer, config.BackgroundNearSpeed, config.BackgroundFarSpeed),
		idleWarn:       opts.IdleWarn,
		idleDisconnect: opts.IdleDisconnect,
		running:        true,
	}
}

// Update advances the client by one frame.
func (c *Client) Update(ctl Controls, dt time.Duration) {
	if !c.running {
		return
	}
	p := edges(ctl, c.prev)
	c.prev = ctl

	if ctl.Interrupt {
		c.Stop()
		return
	}
	if !c.trackIdle(ctl, dt) {
		return
	}

	c.screenTime += dt
	c.updateEffects(dt)

	switch c.screen {
	case ScreenMenu:
		c.updateMenu(p)
	case ScreenPlaying:
		c.updatePlaying(ctl, p, dt)
	case ScreenLost:
		c.updateLost()
	case ScreenNameEntry:
		c.updateNameEntry(ctl, p)
	case ScreenPlayAgain:
		c.updatePlayAgain(ctl, p)
	case ScreenTopScores:
		c.updateTopScores(ctl)
	case ScreenOptions:
		c.updateOptions(ctl, p)
	}
}

// trackIdle updates the inactivity timer. It reports false once the client
// has been idle long enough to disconnect.
func (c *Client) trackIdle(ctl Controls, dt time.Duration) bool {
	if ctl.AnyKey {
		c.idle = 0
		return true
	}
	c.idle += dt
	if c.idleDisconnect > 0 && c.idle >= c.idleDisconnect {
		c.logger.Info("disconnecting inactive player", "idle", c.idle.Round(time.Second))
		c.Stop()
		return false
	}
	return true
}

func (c *Client) setScreen(s Screen) {
	if s != c.screen {
		c.logger.Debug("screen change", "from", c.screen, "to", s)
	}
	c.screen = s
	c.screenTime = 0
}

// Stop ends the client. A running session is abandoned without recording a score.
func (c *Client) Stop() {
	if !c.running {
		return
	}
	c.running = false
	c.game.Quit()
	c.audio.StopMusic()
	c.particles = object.ReleaseAll(c.particles)
}

// Running reports whether the client wants more frames.
func (c *Client) Running() bool {
	return c.running
}

// Screen returns the current screen.
func (c *Client) Screen() Screen {
	return c.screen
}

// ScreenTime returns how long the current screen has been shown.
func (c *Client) ScreenTime() time.Duration {
	return c.screenTime
}

// MenuIndex returns the highlighted menu entry.
func (c *Client) MenuIndex() int {
	return c.menuIndex
}

// Game returns the underlying game.
func (c *Client) Game() *game.Game {
	return c.game
}

// Field returns the playfield dimensions.
func (c *Client) Field() object.Field {
	return c.game.Options().Field
}

// Audio returns the sound engine.
func (c *Client) Audio() *audio.Engine {
	return c.audio
}

// Name returns the name typed so far on the name entry screen.
func (c *Client) Name() string {
	return string(c.name)
}

// TopScores returns the board as it was when the top scores screen opened.
func (c *Client) TopScores() []scores.Entry {
	return c.topScores
}

// Messages returns the banners currently shown.
func (c *Client) Messages() []Message {
	return c.messages
}

// Particles returns the live explosion particles.
func (c *Client) Particles() []*object.Particle {
	return c.particles
}

// Stars returns the background starfield.
func (c *Client) Stars() *object.Starfield {
	return c.stars
}

// Blasts returns the explosions younger than the explosion duration.
func (c *Client) Blasts() []Blast {
	return c.blasts
}

// ShowLostBanner reports whether the explosion has finished and the
// "You lost!" banner is up.
func (c *Client) ShowLostBanner() bool {
	return c.screen == ScreenLost && c.screenTime >= config.ExplosionDuration
}

// IdleWarning reports whether the inactivity warning is up and how long
// remains before the client disconnects.
func (c *Client) IdleWarning() (bool, time.Duration) {
	if c.idleWarn <= 0 || c.idle < c.idleWarn {
		return false, 0
	}
	var left time.Duration
	if c.idleDisconnect > 0 {
		left = max(c.idleDisconnect-c.idle, 0)
	}
	return true, left
}

func (c *Client) updateEffects(dt time.Duration) {
	c.particles = object.UpdateParticles(c.particles, dt)
	c.stars.Advance()

	blasts := c.blasts[:0]
	for _, b := range c.blasts {
		b.Age += dt
		if b.Age < config.ExplosionDuration {
			blasts = append(blasts, b)
		}
	}
	c.blasts = blasts

	kept := c.messages[:0]
	for _, m := range c.messages {
		m.Remaining -= dt
		if m.Remaining > 0 {
			kept = append(kept, m)
		}
	}
	c.messages = kept
}

func (c *Client) explode(x, y float64) {
	c.particles = object.SpawnExplosion(c.particles, c.rng, x, y,
		config.ExplosionParticles, explosionSpeed, config.ExplosionDuration.Seconds())
	c.blasts = append(c.blasts, Blast{X: x, Y: y})
}

// explosionSpeed is the mean particle speed in field units per second.
const explosionSpeed = 400.0

func (c *Client) handleEvents(events []game.Event) {
	for _, ev := range events {
		switch ev.Type {
		case game.EventLaserFired:
			c.audio.Play(audio.CueLaser)
		case game.EventAlienDestroyed:
			c.explode(ev.X, ev.Y)
			c.audio.Play(audio.CueExplosion)
		case game.EventPlayerHit:
			c.explode(ev.X, ev.Y)
			c.audio.Play(audio.CueExplosion)
			c.audio.Play(audio.CueGameOver)
		case game.EventLevelUp:
			c.audio.Play(audio.CueLevelUp)
			c.logger.Debug("level up", "level", ev.Level)
		case game.EventMessage:
			c.messages = append(c.messages, Message{Text: ev.Message, Remaining: ev.Duration})
		}
	}
}

func (c *Client) startGame() {
	var err error
	if c.game.Phase() == game.PhaseMenu {
		err = c.game.Start()
	} else {
		err = c.game.Restart()
	}
	if err != nil {
		c.logger.Error("cannot start game", "phase", c.game.Phase(), "err", err)
		return
	}
	c.messages = c.messages[:0]
	c.blasts = c.blasts[:0]
	c.particles = object.ReleaseAll(c.particles)
	c.audio.StartMusic()
	c.setScreen(ScreenPlaying)
}

func (c *Client) toMenu() {
	c.audio.StartMusic()
	c.setScreen(ScreenMenu)
}

func (c *Client) updateMenu(p pressed) {
	n := len(MenuItems)
	switch {
	case p.up:
		c.menuIndex = (c.menuIndex + n - 1) % n
	case p.down:
		c.menuIndex = (c.menuIndex + 1) % n
	case p.confirm || p.fire:
		c.activate(MenuItems[c.menuIndex])
	case p.quit:
		c.Stop()
	}
}

// Choose selects and activates menu entry i. It does nothing outside the
// menu, so frontends can forward pointer clicks without checking the screen.
func (c *Client) Choose(i int) {
	if c.screen != ScreenMenu || i < 0 || i >= len(MenuItems) {
		return
	}
	c.menuIndex = i
	c.activate(MenuItems[i])
}

func (c *Client) activate(item MenuItem) {
	switch item {
	case MenuPlay:
		c.startGame()
	case MenuTopScores:
		c.topScores = nil
		if c.board != nil {
			c.topScores = c.board.Entries()
		}
		c.setScreen(ScreenTopScores)
	case MenuOptions:
		c.setScreen(ScreenOptions)
	case MenuExit:
		c.Stop()
	}
}

func (c *Client) updatePlaying(ctl Controls, p pressed, dt time.Duration) {
	if p.quit || p.back {
		c.game.Quit()
		c.messages = c.messages[:0]
		c.toMenu()
		return
	}

	events := c.game.Update(game.Input{
		Left:  ctl.Left,
		Right: ctl.Right,
		Up:    ctl.Up,
		Down:  ctl.Down,
		Shoot: ctl.Fire,
	}, dt)
	c.handleEvents(events)

	if c.game.Phase() == game.PhaseGameOver {
		c.audio.StopMusic()
		c.messages = c.messages[:0]
		c.logger.Info("game over", "score", c.game.FinalScore(), "level", c.game.Session().State().Level)
		c.setScreen(ScreenLost)
	}
}

func (c *Client) updateLost() {
	if c.screenTime < config.ExplosionDuration+config.GameOverDelay {
		return
	}
	if c.game.NeedsName() {
		c.name = c.name[:0]
		for _, r := range c.defaultName {
			if len(c.name) == config.MaxUsernameLength {
				break
			}
			if nameRune(r) {
				c.name = append(c.name, r)
			}
		}
		c.setScreen(ScreenNameEntry)
		return
	}
	c.setScreen(ScreenPlayAgain)
}

// nameRune reports whether r may appear in a player name.
func nameRune(r rune) bool {
	return r != utf8.RuneError && unicode.IsPrint(r)
}

func (c *Client) updateNameEntry(ctl Controls, p pressed) {
	for _, r := range ctl.Text {
		if nameRune(r) && len(c.name) < config.MaxUsernameLength {
			c.name = append(c.name, r)
		}
	}
	if p.backspace && len(c.name) > 0 {
		c.name = c.name[:len(c.name)-1]
	}
	if !p.confirm {
		return
	}

	// The name is stored as typed, empty included.
	name := string(c.name)
	recorded, err := c.game.SubmitName(name)
	switch {
	case err != nil:
		c.logger.Error("cannot save score", "name", name, "score", c.game.FinalScore(), "err", err)
	case recorded:
		c.logger.Info("score recorded", "name", name, "score", c.game.FinalScore())
	default:
		c.logger.Info("score no longer qualifies", "name", name, "score", c.game.FinalScore())
	}
	c.setScreen(ScreenPlayAgain)
}

func (c *Client) updatePlayAgain(ctl Controls, p pressed) {
	switch {
	case strings.ContainsAny(ctl.Text, "yY"):
		c.startGame()
	case strings.ContainsAny(ctl.Text, "nN") || p.back:
		if err := c.game.ReturnToMenu(); err != nil {
			c.logger.Error("cannot return to menu", "err", err)
			return
		}
		c.toMenu()
	}
}

func (c *Client) updateTopScores(ctl Controls) {
	if c.screenTime >= config.TopScoresDisplay || ctl.AnyKey {
		c.toMenu()
	}
}

func (c *Client) updateOptions(ctl Controls, p pressed) {
	switch {
	case p.left || p.down:
		c.audio.SetVolume(c.audio.Volume() - config.VolumeStep)
	case p.right || p.up:
		c.audio.SetVolume(c.audio.Volume() + config.VolumeStep)
	case strings.ContainsAny(ctl.Text, "mM"):
		c.audio.ToggleMute()
	case p.back || p.confirm || p.quit:
		c.toMenu()
	}
}
