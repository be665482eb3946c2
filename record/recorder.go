package record

import (
	"github.com/sirupsen/logrus"

	"irship/board"
	"irship/engine"
)

// Match is the view of a running match the recorder needs.
type Match interface {
	Player() engine.Player
	OwnLayoutID() uint8
	OpponentLayoutID() uint8
	OwnGrid() *board.Grid
	OpponentGrid() *board.Grid
	Outcome() engine.Outcome
	Stats() engine.Stats
}

// Recorder follows a match through its observers and keeps a MatchRecord
// in step. A record is opened once the boards are exchanged and closed at
// the end. Write failures are logged, never fatal.
type Recorder struct {
	dir string
	log logrus.FieldLogger
	rec *MatchRecord
}

func NewRecorder(dir string, log logrus.FieldLogger) *Recorder {
	return &Recorder{dir: dir, log: log}
}

// Current returns the open record, if any.
func (r *Recorder) Current() *MatchRecord {
	return r.rec
}

func (r *Recorder) Transition(m Match, from, to engine.Phase) {
	switch to.(type) {
	case *engine.SelectShootPosition, *engine.TheirTurn:
		if _, ok := from.(*engine.AwaitBoardExchange); !ok {
			return
		}
		r.open(m)
	case *engine.End:
		if r.rec == nil {
			return
		}
		s := m.Stats()
		tally := Tally{
			ShotsFired:  s.ShotsFired,
			Hits:        s.Hits,
			Misses:      s.Misses,
			HitsTaken:   s.HitsTaken,
			MissesTaken: s.MissesTaken,
		}
		if err := r.rec.SetResult(m.Outcome().String(), tally); err != nil {
			r.log.WithError(err).Warn("writing match result")
		}
		if err := r.rec.Close(); err != nil {
			r.log.WithError(err).Warn("closing match record")
		}
		r.log.WithField("file", r.rec.FilePath).Info("match record saved")
		r.rec = nil
	}
}

func (r *Recorder) Shot(m Match, ev engine.ShotEvent) {
	if r.rec == nil {
		return
	}
	if err := r.rec.AddShot(ev.Incoming, ev.Position, ev.Result, m.OpponentGrid()); err != nil {
		r.log.WithError(err).Warn("writing shot")
	}
}

func (r *Recorder) open(m Match) {
	if r.rec != nil {
		r.rec.Close()
	}
	rec, err := NewMatchRecord(r.dir, int(m.Player()), m.OwnLayoutID(), m.OpponentLayoutID())
	if err != nil {
		r.log.WithError(err).Warn("match will not be recorded")
		return
	}
	if err := rec.SetBoards(m.OwnGrid(), m.OpponentGrid()); err != nil {
		r.log.WithError(err).Warn("writing boards")
	}
	r.rec = rec
}
