package engine

import (
	"io"

	"github.com/sirupsen/logrus"

	"irship/board"
	"irship/protocol"
)

const (
	MessageHit    = " HIT "
	MessageMiss   = " MISS "
	MessageWinner = " YOU WON! "
	MessageLoser  = " YOU LOST! "
)

// Stats counts the shots of one match.
type Stats struct {
	ShotsFired  int
	Hits        int
	Misses      int
	HitsTaken   int
	MissesTaken int
}

// ShotEvent describes a resolved shot. Incoming shots only carry the result
// the opponent reported; their position is never on the wire.
type ShotEvent struct {
	Incoming bool
	Position board.Position
	Result   board.ShotResult
}

// Match is the turn engine of one board. It is not safe for concurrent use;
// all calls must come from the goroutine that drives Tick.
type Match struct {
	cfg     Config
	link    Link
	input   Input
	display Display
	log     logrus.FieldLogger

	phase   Phase
	player  Player
	outcome Outcome
	stats   Stats
	ticks   uint64

	// reflects is set when the link hands our own bytes back to us. The
	// reflection of the last byte sent is then still owed and gets skipped.
	reflects   bool
	owed       byte
	owedReflex bool

	own              *board.Grid
	opponent         *board.Grid
	ownLayoutID      uint8
	opponentLayoutID uint8

	onTransition func(from, to Phase)
	onShot       func(ShotEvent)
}

type Option func(*Match)

func WithConfig(cfg Config) Option {
	return func(m *Match) {
		m.cfg = cfg
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(m *Match) {
		m.log = l
	}
}

// NewMatch creates a match sitting on the title screen.
func NewMatch(link Link, input Input, display Display, opts ...Option) *Match {
	m := &Match{
		cfg:     DefaultConfig(),
		link:    link,
		input:   input,
		display: display,
	}
	for _, opt := range opts {
		opt(m)
	}
	if r, ok := link.(Reflector); ok {
		m.reflects = r.Reflects()
	}
	if m.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		m.log = l
	}
	m.Reset()
	return m
}

// Reset returns the match to the title screen and forgets everything about
// the previous game.
func (m *Match) Reset() {
	m.phase = &TitleScreen{}
	m.player = PlayerOne
	m.outcome = Undecided
	m.stats = Stats{}
	m.ticks = 0
	m.own, m.opponent = nil, nil
	m.ownLayoutID, m.opponentLayoutID = 0, 0
	m.owedReflex = false
	m.display.Clear()
}

// OnTransition sets a function called after every phase change.
func (m *Match) OnTransition(fn func(from, to Phase)) {
	m.onTransition = fn
}

// OnShot sets a function called for every shot resolved on either side.
func (m *Match) OnShot(fn func(ShotEvent)) {
	m.onShot = fn
}

func (m *Match) Config() Config          { return m.cfg }
func (m *Match) Phase() Phase            { return m.phase }
func (m *Match) Player() Player          { return m.player }
func (m *Match) Outcome() Outcome        { return m.outcome }
func (m *Match) Stats() Stats            { return m.stats }
func (m *Match) Ticks() uint64           { return m.ticks }
func (m *Match) OwnGrid() *board.Grid    { return m.own }
func (m *Match) OwnLayoutID() uint8      { return m.ownLayoutID }
func (m *Match) OpponentLayoutID() uint8 { return m.opponentLayoutID }

// OpponentGrid is our view of the opponent's board, nil until their board ID
// has been received.
func (m *Match) OpponentGrid() *board.Grid { return m.opponent }

// Finished reports whether the match has reached End.
func (m *Match) Finished() bool {
	_, ok := m.phase.(*End)
	return ok
}

// Tick advances the match by one step. Input is polled exactly once; events
// the current phase has no use for are dropped.
func (m *Match) Tick() {
	m.ticks++
	dir := m.input.Direction()
	button := m.input.ButtonPushed()

	switch p := m.phase.(type) {
	case *TitleScreen:
		m.tickTitle()
	case *SelectPlayer:
		m.tickSelectPlayer(p, dir, button)
	case *ChooseBoard:
		m.tickChooseBoard(p, dir, button)
	case *AwaitBoardExchange:
		m.tickAwaitBoardExchange(p)
	case *SelectShootPosition:
		m.tickSelectShootPosition(p, dir)
	case *TheirTurn:
		m.tickTheirTurn(p)
	case *ShowingMessage:
		p.Elapsed++
		if p.Elapsed >= p.Total {
			m.setPhase(p.Next)
		}
	case *End:
	}
}

func (m *Match) message(text string, next Phase) *ShowingMessage {
	return &ShowingMessage{Text: text, Total: m.cfg.ScrollTicks(text), Next: next}
}

// setPhase clears the display, enters p and notifies the observer.
func (m *Match) setPhase(p Phase) {
	from := m.phase
	m.phase = p
	m.display.Clear()

	switch p := p.(type) {
	case *SelectPlayer:
		m.display.SetChar(p.Player.Rune())
	case *ChooseBoard:
		m.drawLayout(p.LayoutID)
	case *SelectShootPosition:
		p.cursorOn, p.cursorTicks = true, 0
		p.exploredOn, p.exploredTicks = true, 0
		m.drawShots(p)
	case *ShowingMessage:
		m.display.ScrollText(p.Text, p.Total)
	case *End:
		m.outcome = p.Outcome
	}

	m.log.WithFields(logrus.Fields{
		"from": from.Name(),
		"to":   p.Name(),
		"tick": m.ticks,
	}).Debug("phase transition")
	if m.onTransition != nil {
		m.onTransition(from, p)
	}

	if _, ok := p.(*End); ok {
		m.own, m.opponent = nil, nil
	}
}

func (m *Match) tickTitle() {
	next := &SelectPlayer{Player: PlayerOne}
	if m.cfg.Banner == "" {
		m.setPhase(next)
		return
	}
	m.setPhase(m.message(m.cfg.Banner, next))
}

func (m *Match) tickSelectPlayer(p *SelectPlayer, dir Direction, button bool) {
	if button {
		m.player = p.Player
		m.log.WithField("player", int(p.Player)).Info("player selected")
		m.setPhase(&ChooseBoard{})
		return
	}
	if dir == DirEast || dir == DirWest {
		p.Player = p.Player.Other()
		m.display.SetChar(p.Player.Rune())
	}
}

func (m *Match) tickChooseBoard(p *ChooseBoard, dir Direction, button bool) {
	if button {
		layout, err := board.LayoutByID(p.LayoutID)
		if err != nil {
			// The id only ever comes from WrapID.
			panic(err)
		}
		m.own = board.BuildGrid(layout)
		m.ownLayoutID = p.LayoutID
		next := &AwaitBoardExchange{LayoutID: p.LayoutID}
		next.OwnSent = m.sendBoardID(p.LayoutID)
		m.setPhase(next)
		return
	}

	switch dir {
	case DirEast:
		p.LayoutID = board.WrapID(p.LayoutID, 1)
	case DirWest:
		p.LayoutID = board.WrapID(p.LayoutID, -1)
	default:
		return
	}
	m.display.Clear()
	m.drawLayout(p.LayoutID)
}

func (m *Match) tickAwaitBoardExchange(p *AwaitBoardExchange) {
	if !p.OwnSent {
		p.OwnSent = m.sendBoardID(p.LayoutID)
	}
	if !p.OpponentReceived {
		if id, ok := protocol.PollBoardID(m.inbox()); ok {
			layout, err := board.LayoutByID(id)
			if err != nil {
				m.log.WithError(err).Warn("ignoring opponent board id")
			} else {
				m.opponent = board.BuildGrid(layout)
				m.opponentLayoutID = id
				p.OpponentReceived = true
				m.log.WithField("layout", id).Info("opponent board received")
			}
		}
	}
	if !p.OwnSent || !p.OpponentReceived {
		return
	}

	if m.player == PlayerOne {
		m.setPhase(&SelectShootPosition{Cursor: StartCursor})
	} else {
		m.setPhase(&TheirTurn{Aim: StartCursor})
	}
}

func (m *Match) tickSelectShootPosition(p *SelectShootPosition, dir Direction) {
	prev := p.Cursor
	switch dir {
	case DirNorth:
		p.Cursor = p.Cursor.Clamp(-1, 0)
	case DirSouth:
		p.Cursor = p.Cursor.Clamp(1, 0)
	case DirWest:
		p.Cursor = p.Cursor.Clamp(0, -1)
	case DirEast:
		p.Cursor = p.Cursor.Clamp(0, 1)
	case DirPushed:
		if m.shoot(p) {
			return
		}
	}

	if p.Cursor != prev {
		m.drawCell(prev, p.exploredOn)
		p.cursorOn, p.cursorTicks = true, 0
		m.display.SetPixel(p.Cursor.Row, p.Cursor.Col, true)
	}

	p.exploredTicks++
	if p.exploredTicks >= m.cfg.ExploredBlinkTicks {
		p.exploredTicks = 0
		p.exploredOn = !p.exploredOn
		m.drawShots(p)
	}

	p.cursorTicks++
	if p.cursorTicks >= m.cfg.CursorBlinkTicks {
		p.cursorTicks = 0
		p.cursorOn = !p.cursorOn
		m.display.SetPixel(p.Cursor.Row, p.Cursor.Col, p.cursorOn)
	}
}

// shoot resolves a shot at the cursor. It reports whether the phase changed.
func (m *Match) shoot(p *SelectShootPosition) bool {
	pos := p.Cursor
	result := m.opponent.ResolveShot(pos.Row, pos.Col)
	log := m.log.WithFields(logrus.Fields{"pos": pos.String(), "result": result.String()})
	if result == board.AlreadyExplored {
		log.Debug("shot at explored cell ignored")
		return false
	}

	m.stats.ShotsFired++
	if result == board.Miss {
		m.stats.Misses++
	} else {
		m.stats.Hits++
	}
	log.Info("shot fired")

	m.send(protocol.EncodeTurnResult(result))
	if m.onShot != nil {
		m.onShot(ShotEvent{Position: pos, Result: result})
	}

	switch result {
	case board.Winner:
		m.setPhase(m.message(MessageWinner, &End{Outcome: Won}))
	case board.Hit:
		m.setPhase(m.message(MessageHit, &TheirTurn{Aim: pos}))
	default:
		m.setPhase(m.message(MessageMiss, &TheirTurn{Aim: pos}))
	}
	return true
}

func (m *Match) tickTheirTurn(p *TheirTurn) {
	if p.Waited < m.cfg.SettleTicks {
		p.Waited++
		return
	}
	result, ok := protocol.PollTurnResult(m.inbox())
	if !ok {
		return
	}
	if result == board.AlreadyExplored {
		m.log.Warn("opponent reported an already explored shot")
		return
	}

	if result == board.Miss {
		m.stats.MissesTaken++
	} else {
		m.stats.HitsTaken++
	}
	m.log.WithField("result", result.String()).Info("opponent shot")
	if m.onShot != nil {
		m.onShot(ShotEvent{Incoming: true, Result: result})
	}

	next := &SelectShootPosition{Cursor: p.Aim}
	switch result {
	case board.Winner:
		m.setPhase(m.message(MessageLoser, &End{Outcome: Lost}))
	case board.Hit:
		m.setPhase(m.message(MessageHit, next))
	default:
		m.setPhase(m.message(MessageMiss, next))
	}
}

// inbox returns the link with our own reflection filtered out.
func (m *Match) inbox() protocol.Receiver {
	return reflectionFilter{m}
}

type reflectionFilter struct {
	m *Match
}

// TryReceive skips the first byte equal to the one still owed back by a
// reflecting link. The reflection is queued while Send runs, ahead of any
// reply to it, so an equal byte queued earlier is interchangeable with it.
func (f reflectionFilter) TryReceive() (byte, bool) {
	m := f.m
	for {
		b, ok := m.link.TryReceive()
		if !ok || !m.owedReflex || b != m.owed {
			return b, ok
		}
		m.owedReflex = false
		m.log.WithField("byte", protocol.Describe(b)).Debug("dropped own reflection")
	}
}

func (m *Match) sendBoardID(id uint8) bool {
	b, err := protocol.EncodeBoardID(id)
	if err != nil {
		m.log.WithError(err).Error("cannot encode board id")
		return false
	}
	return m.send(b)
}

func (m *Match) send(b byte) bool {
	log := m.log.WithField("byte", protocol.Describe(b))
	if err := m.link.Send(b); err != nil {
		log.WithError(err).Warn("send failed")
		return false
	}
	log.Debug("sent")
	if m.reflects {
		m.owed, m.owedReflex = b, true
	}
	return true
}

func (m *Match) drawLayout(id uint8) {
	layout, err := board.LayoutByID(id)
	if err != nil {
		return
	}
	for row := 0; row < board.Rows; row++ {
		for col := 0; col < board.Cols; col++ {
			if layout.Ship(row, col) {
				m.display.SetPixel(row, col, true)
			}
		}
	}
}

// drawCell renders one cell of the opponent view. blinkOn is the current
// phase of explored ship cells; explored empty cells are always lit.
func (m *Match) drawCell(pos board.Position, blinkOn bool) {
	on := false
	switch m.opponent.At(pos.Row, pos.Col) {
	case board.ShipExplored:
		on = blinkOn
	case board.EmptyExplored:
		on = true
	}
	m.display.SetPixel(pos.Row, pos.Col, on)
}

// drawShots renders every cell except the one under the cursor.
func (m *Match) drawShots(p *SelectShootPosition) {
	for row := 0; row < board.Rows; row++ {
		for col := 0; col < board.Cols; col++ {
			pos := board.Position{Row: row, Col: col}
			if pos == p.Cursor {
				m.display.SetPixel(row, col, p.cursorOn)
				continue
			}
			m.drawCell(pos, p.exploredOn)
		}
	}
}
