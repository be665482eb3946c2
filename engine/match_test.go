package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"irship/board"
	"irship/link"
	"irship/protocol"
)

type fakeInput struct {
	dir    Direction
	button bool
}

func (f *fakeInput) Direction() Direction {
	d := f.dir
	f.dir = DirNone
	return d
}

func (f *fakeInput) ButtonPushed() bool {
	b := f.button
	f.button = false
	return b
}

type fakeDisplay struct {
	pixels    [board.Rows][board.Cols]bool
	char      rune
	text      string
	textTicks int
}

func (f *fakeDisplay) Clear() {
	f.pixels = [board.Rows][board.Cols]bool{}
	f.char = 0
	f.text = ""
	f.textTicks = 0
}

func (f *fakeDisplay) SetPixel(row, col int, on bool) { f.pixels[row][col] = on }
func (f *fakeDisplay) SetChar(ch rune)                { f.char = ch }

func (f *fakeDisplay) ScrollText(text string, ticks int) {
	f.text = text
	f.textTicks = ticks
}

func (f *fakeDisplay) lit() int {
	n := 0
	for _, row := range f.pixels {
		for _, on := range row {
			if on {
				n++
			}
		}
	}
	return n
}

type flakyLink struct {
	Link
	failures int
}

func (f *flakyLink) Send(b byte) error {
	if f.failures > 0 {
		f.failures--
		return errors.New("no carrier")
	}
	return f.Link.Send(b)
}

func testConfig() Config {
	return Config{
		TickRate:           10,
		ScrollRate:         20,
		FontWidth:          5,
		SettleTicks:        3,
		CursorBlinkTicks:   100,
		ExploredBlinkTicks: 4,
	}
}

type player struct {
	*Match
	in   *fakeInput
	disp *fakeDisplay
	wire *link.Loopback
}

func newPlayer(wire *link.Loopback, l Link, cfg Config) *player {
	in, disp := &fakeInput{}, &fakeDisplay{}
	return &player{
		Match: NewMatch(l, in, disp, WithConfig(cfg)),
		in:    in,
		disp:  disp,
		wire:  wire,
	}
}

func (p *player) move(d Direction) {
	p.in.dir = d
	p.Tick()
}

func (p *player) pressButton() {
	p.in.button = true
	p.Tick()
}

func (p *player) cursor(t *testing.T) board.Position {
	t.Helper()
	sel, ok := p.Phase().(*SelectShootPosition)
	require.True(t, ok, "phase is %s", p.Phase().Name())
	return sel.Cursor
}

// confirm drives a fresh match up to the board exchange.
func (p *player) confirm(t *testing.T, who Player, layout uint8) {
	t.Helper()
	p.Tick()
	require.IsType(t, &SelectPlayer{}, p.Phase())
	if who == PlayerTwo {
		p.move(DirEast)
	}
	p.pressButton()
	require.IsType(t, &ChooseBoard{}, p.Phase())
	for i := uint8(0); i < layout; i++ {
		p.move(DirEast)
	}
	p.pressButton()
	require.IsType(t, &AwaitBoardExchange{}, p.Phase())
}

// tickUntil ticks this board alone, leaving the other one where it is.
func (p *player) tickUntil(t *testing.T, what string, cond func() bool) {
	t.Helper()
	for i := 0; i < 10000; i++ {
		if cond() {
			return
		}
		p.Tick()
	}
	t.Fatalf("never reached %s: stuck in %s", what, p.Phase().Name())
}

func is[T Phase](p Phase) bool {
	_, ok := p.(T)
	return ok
}

// duel ticks both boards in lockstep, the way two real boards run side by side.
type duel struct {
	t      *testing.T
	p1, p2 *player
}

func (d *duel) step(a, b Direction) {
	d.p1.in.dir = a
	d.p2.in.dir = b
	d.p1.Tick()
	d.p2.Tick()
}

func (d *duel) idle(n int) {
	for i := 0; i < n; i++ {
		d.step(DirNone, DirNone)
	}
}

func (d *duel) until(what string, cond func() bool) {
	d.t.Helper()
	for i := 0; i < 10000; i++ {
		if cond() {
			return
		}
		d.idle(1)
	}
	d.t.Fatalf("never reached %s: p1 in %s, p2 in %s", what, d.p1.Phase().Name(), d.p2.Phase().Name())
}

func startDuel(t *testing.T, echo bool, layout1, layout2 uint8) *duel {
	t.Helper()
	a, b := link.Pair(echo)
	d := &duel{
		t:  t,
		p1: newPlayer(a, a, testConfig()),
		p2: newPlayer(b, b, testConfig()),
	}
	d.p1.confirm(t, PlayerOne, layout1)
	d.p2.confirm(t, PlayerTwo, layout2)
	d.idle(1)
	require.IsType(t, &SelectShootPosition{}, d.p1.Phase())
	require.IsType(t, &TheirTurn{}, d.p2.Phase())
	return d
}

func TestTurnOrder(t *testing.T) {
	d := startDuel(t, false, 0, 1)

	assert.Equal(t, PlayerOne, d.p1.Player())
	assert.Equal(t, PlayerTwo, d.p2.Player())
	assert.Equal(t, uint8(1), d.p1.OpponentLayoutID())
	assert.Equal(t, uint8(0), d.p2.OpponentLayoutID())
	assert.Equal(t, uint8(0), d.p1.OwnLayoutID())
	assert.Equal(t, StartCursor, d.p1.cursor(t))
	require.NotNil(t, d.p1.OwnGrid())
	require.NotNil(t, d.p2.OpponentGrid())
}

func TestHitExchange(t *testing.T) {
	d := startDuel(t, false, 1, 0)
	d.idle(testConfig().SettleTicks + 1)

	d.step(DirWest, DirNone)
	require.Equal(t, board.Position{Row: 3, Col: 1}, d.p1.cursor(t))
	d.step(DirPushed, DirNone)

	require.IsType(t, &ShowingMessage{}, d.p1.Phase())
	assert.Equal(t, MessageHit, d.p1.disp.text)
	assert.Equal(t, board.ShipExplored, d.p1.OpponentGrid().At(3, 1))
	assert.Equal(t, Stats{ShotsFired: 1, Hits: 1}, d.p1.Stats())

	require.IsType(t, &ShowingMessage{}, d.p2.Phase(), "p2 should have decoded the result on the same step")
	assert.Equal(t, MessageHit, d.p2.disp.text)
	assert.Equal(t, 1, d.p2.Stats().HitsTaken)

	d.until("p2's turn", func() bool { return is[*SelectShootPosition](d.p2.Phase()) })
	require.IsType(t, &TheirTurn{}, d.p1.Phase())
	assert.Equal(t, board.Position{Row: 3, Col: 1}, d.p1.Phase().(*TheirTurn).Aim)
}

func TestFullMatch(t *testing.T) {
	d := startDuel(t, false, 0, 0)

	var transitions []string
	var shots []ShotEvent
	d.p1.OnTransition(func(from, to Phase) { transitions = append(transitions, to.Name()) })
	d.p1.OnShot(func(ev ShotEvent) { shots = append(shots, ev) })

	d.idle(testConfig().SettleTicks + 1)
	d.step(DirWest, DirNone)
	d.step(DirPushed, DirNone)

	d.until("p2's turn", func() bool { return is[*SelectShootPosition](d.p2.Phase()) })
	assert.Equal(t, StartCursor, d.p2.cursor(t))
	d.step(DirNone, DirPushed)
	assert.Equal(t, MessageMiss, d.p2.disp.text)

	d.until("p1's turn", func() bool { return is[*SelectShootPosition](d.p1.Phase()) })
	assert.Equal(t, board.Position{Row: 3, Col: 1}, d.p1.cursor(t), "cursor resumes where it was")
	d.step(DirEast, DirNone)
	d.step(DirEast, DirNone)
	d.step(DirPushed, DirNone)
	assert.Equal(t, MessageWinner, d.p1.disp.text)

	d.until("both ended", func() bool { return d.p1.Finished() && d.p2.Finished() })

	assert.Equal(t, Won, d.p1.Outcome())
	assert.Equal(t, Lost, d.p2.Outcome())
	assert.Nil(t, d.p1.OwnGrid())
	assert.Nil(t, d.p1.OpponentGrid())
	assert.Nil(t, d.p2.OpponentGrid())
	assert.Equal(t, Stats{ShotsFired: 2, Hits: 2, MissesTaken: 1}, d.p1.Stats())
	assert.Equal(t, Stats{ShotsFired: 1, Misses: 1, HitsTaken: 2}, d.p2.Stats())

	require.Len(t, shots, 3)
	assert.Equal(t, ShotEvent{Position: board.Position{Row: 3, Col: 1}, Result: board.Hit}, shots[0])
	assert.Equal(t, ShotEvent{Incoming: true, Result: board.Miss}, shots[1])
	assert.Equal(t, board.Winner, shots[2].Result)
	require.NotEmpty(t, transitions)
	assert.Equal(t, "end", transitions[len(transitions)-1])

	d.p1.Reset()
	assert.IsType(t, &TitleScreen{}, d.p1.Phase())
	assert.Equal(t, Undecided, d.p1.Outcome())
	assert.Equal(t, Stats{}, d.p1.Stats())
}

func TestCursorClamps(t *testing.T) {
	d := startDuel(t, false, 0, 0)
	p := d.p1

	for i := 0; i < 10; i++ {
		p.move(DirNorth)
	}
	assert.Equal(t, board.Position{Row: 0, Col: 2}, p.cursor(t))
	for i := 0; i < 10; i++ {
		p.move(DirWest)
	}
	assert.Equal(t, board.Position{Row: 0, Col: 0}, p.cursor(t))
	for i := 0; i < 10; i++ {
		p.move(DirSouth)
	}
	assert.Equal(t, board.Position{Row: board.Rows - 1, Col: 0}, p.cursor(t))
	for i := 0; i < 10; i++ {
		p.move(DirEast)
	}
	assert.Equal(t, board.Position{Row: board.Rows - 1, Col: board.Cols - 1}, p.cursor(t))
	assert.True(t, p.disp.pixels[board.Rows-1][board.Cols-1])
	assert.Equal(t, 1, p.disp.lit(), "only the cursor is lit before any shot")
}

func TestOwnReflectionIsNotMistakenForReply(t *testing.T) {
	d := startDuel(t, true, 0, 0)
	d.idle(testConfig().SettleTicks + 1)

	d.step(DirWest, DirNone)
	d.step(DirPushed, DirNone)
	d.until("p1 waiting", func() bool { return is[*TheirTurn](d.p1.Phase()) })
	d.idle(testConfig().SettleTicks + 2)

	assert.IsType(t, &TheirTurn{}, d.p1.Phase())
	assert.Equal(t, 0, d.p1.Stats().HitsTaken)

	d.until("p2's turn", func() bool { return is[*SelectShootPosition](d.p2.Phase()) })
	d.step(DirNone, DirPushed)
	d.until("p1's turn", func() bool { return is[*SelectShootPosition](d.p1.Phase()) })
	assert.Equal(t, 1, d.p1.Stats().MissesTaken)
}

func TestEchoedBoardIDIsNotTakenAsOpponents(t *testing.T) {
	d := startDuel(t, true, 0, 1)

	assert.Equal(t, uint8(1), d.p1.OpponentLayoutID())
	assert.Equal(t, uint8(0), d.p2.OpponentLayoutID())
	assert.Equal(t, uint8(0), d.p1.OwnLayoutID())
	assert.Equal(t, uint8(1), d.p2.OwnLayoutID())
}

func TestReplyDuringOwnMessageIsKept(t *testing.T) {
	for _, echo := range []bool{false, true} {
		d := startDuel(t, echo, 0, 0)
		d.idle(testConfig().SettleTicks + 1)
		p1, p2 := d.p1, d.p2

		p1.move(DirWest)
		p1.move(DirPushed)
		require.IsType(t, &ShowingMessage{}, p1.Phase())

		// The other board runs ahead and answers before our message is done.
		p2.tickUntil(t, "p2's turn", func() bool { return is[*SelectShootPosition](p2.Phase()) })
		p2.move(DirPushed)
		require.Equal(t, MessageMiss, p2.disp.text)
		require.IsType(t, &ShowingMessage{}, p1.Phase(), "echo=%v", echo)
		assert.NotZero(t, p1.wire.Pending(), "echo=%v", echo)

		p1.tickUntil(t, "p1's turn", func() bool { return is[*SelectShootPosition](p1.Phase()) })
		assert.Equal(t, 1, p1.Stats().MissesTaken, "echo=%v", echo)
		assert.Equal(t, 0, p1.Stats().HitsTaken, "echo=%v", echo)
	}
}

func TestTheirTurnWaitsForSettle(t *testing.T) {
	d := startDuel(t, false, 0, 0)
	p2 := d.p2

	require.NoError(t, d.p1.wire.Send(protocol.EncodeTurnResult(board.Miss)))
	for i := 0; i < testConfig().SettleTicks; i++ {
		p2.Tick()
	}
	require.IsType(t, &TheirTurn{}, p2.Phase())
	assert.Equal(t, 1, p2.wire.Pending(), "nothing is read while settling")

	p2.Tick()
	require.IsType(t, &ShowingMessage{}, p2.Phase())
	assert.Equal(t, MessageMiss, p2.disp.text)
}

func TestBoardIDRetry(t *testing.T) {
	a, b := link.Pair(false)
	p := newPlayer(a, &flakyLink{Link: a, failures: 2}, testConfig())

	p.confirm(t, PlayerOne, 3)
	await := p.Phase().(*AwaitBoardExchange)
	assert.False(t, await.OwnSent)
	assert.Equal(t, 0, b.Pending())

	p.Tick()
	assert.False(t, await.OwnSent)
	p.Tick()
	assert.True(t, await.OwnSent)

	got, ok := b.TryReceive()
	require.True(t, ok)
	id, ok := protocol.DecodeBoardID(got)
	require.True(t, ok)
	assert.Equal(t, uint8(3), id)
}

func TestUnknownBoardIDIsIgnored(t *testing.T) {
	a, b := link.Pair(false)
	p := newPlayer(a, a, testConfig())
	p.confirm(t, PlayerOne, 0)

	require.NoError(t, b.Send(0xAF))
	p.Tick()
	assert.False(t, p.Phase().(*AwaitBoardExchange).OpponentReceived)
	assert.Nil(t, p.OpponentGrid())

	require.NoError(t, b.Send(0xA2))
	p.Tick()
	assert.IsType(t, &SelectShootPosition{}, p.Phase())
	assert.Equal(t, uint8(2), p.OpponentLayoutID())
}

func TestSelectPlayer(t *testing.T) {
	a, _ := link.Pair(false)
	p := newPlayer(a, a, testConfig())

	p.Tick()
	assert.Equal(t, '1', p.disp.char)
	p.move(DirEast)
	assert.Equal(t, '2', p.disp.char)
	p.move(DirNorth)
	assert.Equal(t, '2', p.disp.char, "north is not a selection key")
	p.move(DirWest)
	p.move(DirWest)
	assert.Equal(t, '2', p.disp.char)

	p.pressButton()
	assert.Equal(t, PlayerTwo, p.Player())
	assert.Equal(t, rune(0), p.disp.char, "transition clears the display")
}

func TestChooseBoardWraps(t *testing.T) {
	a, _ := link.Pair(false)
	p := newPlayer(a, a, testConfig())
	p.Tick()
	p.pressButton()

	choose := p.Phase().(*ChooseBoard)
	assert.Equal(t, uint8(0), choose.LayoutID)
	assert.True(t, p.disp.pixels[3][1])
	assert.True(t, p.disp.pixels[3][3])
	assert.Equal(t, 2, p.disp.lit())

	p.move(DirWest)
	assert.Equal(t, uint8(board.NumLayouts-1), choose.LayoutID)
	assert.Equal(t, board.Catalog[board.NumLayouts-1].ShipCount(), p.disp.lit())

	p.move(DirEast)
	assert.Equal(t, uint8(0), choose.LayoutID)
	assert.Equal(t, 2, p.disp.lit())
}

func TestTitleBanner(t *testing.T) {
	cfg := testConfig()
	cfg.Banner = " G "
	a, _ := link.Pair(false)
	p := newPlayer(a, a, cfg)

	p.in.button = true
	p.Tick()
	msg, ok := p.Phase().(*ShowingMessage)
	require.True(t, ok)
	assert.Equal(t, " G ", p.disp.text)
	assert.Equal(t, 17, msg.Total)

	for i := 0; i < msg.Total-1; i++ {
		p.pressButton()
	}
	require.IsType(t, &ShowingMessage{}, p.Phase(), "button presses are dropped while scrolling")
	p.Tick()
	assert.IsType(t, &SelectPlayer{}, p.Phase())
	assert.Equal(t, '1', p.disp.char)
}

func TestExploredCellsBlink(t *testing.T) {
	a, _ := link.Pair(false)
	in, disp := &fakeInput{}, &fakeDisplay{}
	m := NewMatch(a, in, disp, WithConfig(testConfig()))
	m.opponent = board.BuildGrid(board.Catalog[0])
	m.opponent.ResolveShot(3, 1)
	m.opponent.ResolveShot(0, 0)
	m.setPhase(&SelectShootPosition{Cursor: StartCursor})

	assert.True(t, disp.pixels[3][1], "explored ship starts lit")
	assert.True(t, disp.pixels[0][0])
	assert.True(t, disp.pixels[3][2], "cursor")
	assert.False(t, disp.pixels[3][3], "unexplored ship stays dark")

	for i := 0; i < testConfig().ExploredBlinkTicks; i++ {
		m.Tick()
	}
	assert.False(t, disp.pixels[3][1], "explored ship blinks off")
	assert.True(t, disp.pixels[0][0], "explored water stays lit")
	assert.True(t, disp.pixels[3][2])

	for i := 0; i < testConfig().ExploredBlinkTicks; i++ {
		m.Tick()
	}
	assert.True(t, disp.pixels[3][1])
}

func TestAlreadyExploredShotIsIgnored(t *testing.T) {
	a, b := link.Pair(false)
	in, disp := &fakeInput{}, &fakeDisplay{}
	m := NewMatch(a, in, disp, WithConfig(testConfig()))
	m.opponent = board.BuildGrid(board.Catalog[0])
	m.opponent.ResolveShot(3, 1)
	m.setPhase(&SelectShootPosition{Cursor: board.Position{Row: 3, Col: 1}})

	in.dir = DirPushed
	m.Tick()

	assert.IsType(t, &SelectShootPosition{}, m.Phase())
	assert.Equal(t, 0, b.Pending())
	assert.Equal(t, Stats{}, m.Stats())
}

func TestScrollTicks(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		text string
		want int
	}{
		{MessageHit, 1450},
		{MessageMiss, 1750},
		{MessageWinner, 2950},
		{" G ", 850},
		{"", 0},
	}
	for _, tt := range tests {
		if got := cfg.ScrollTicks(tt.text); got != tt.want {
			t.Errorf("ScrollTicks(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
