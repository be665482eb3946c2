// Package record keeps a YAML log of each match on disk.
package record

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v2"

	"irship/board"
)

var ErrClosed = errors.New("record already closed")

// Shot is one resolved shot. Incoming shots carry no position because the
// opponent never sends it.
type Shot struct {
	Incoming bool   `yaml:"incoming"`
	Pos      string `yaml:"pos,omitempty"`
	Result   string `yaml:"result"`
}

type Tally struct {
	ShotsFired  int `yaml:"shots_fired"`
	Hits        int `yaml:"hits"`
	Misses      int `yaml:"misses"`
	HitsTaken   int `yaml:"hits_taken"`
	MissesTaken int `yaml:"misses_taken"`
}

// MatchRecord tracks a match in progress and writes it as YAML.
type MatchRecord struct {
	ID             string   `yaml:"id"`
	Date           string   `yaml:"date"`
	Player         int      `yaml:"player"`
	OwnLayout      int      `yaml:"own_layout"`
	OpponentLayout int      `yaml:"opponent_layout"`
	Outcome        string   `yaml:"outcome"`
	Tally          Tally    `yaml:"tally"`
	OwnBoard       []string `yaml:"own_board,flow"`
	OpponentView   []string `yaml:"opponent_view,flow"`
	Shots          []Shot   `yaml:"shots"`

	FilePath string `yaml:"-"`
	file     *os.File
	dirty    bool
}

// NewMatchRecord creates a new record file in dir and writes the header.
func NewMatchRecord(dir string, player int, ownLayout, opponentLayout uint8) (*MatchRecord, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create records dir: %w", err)
	}

	now := time.Now()
	id := uuid.NewString()
	filename := fmt.Sprintf("%s_%s.yaml", now.Format("20060102_150405"), id[:8])
	path := filepath.Join(dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create record file: %w", err)
	}

	rec := &MatchRecord{
		ID:             id,
		Date:           now.Format("2006-01-02 15:04:05"),
		Player:         player,
		OwnLayout:      int(ownLayout),
		OpponentLayout: int(opponentLayout),
		Outcome:        "?",
		FilePath:       path,
		file:           f,
	}
	if err := rec.flush(); err != nil {
		f.Close()
		return nil, err
	}
	return rec, nil
}

// AddShot appends a shot and, for our own shots, the updated opponent view.
func (r *MatchRecord) AddShot(incoming bool, pos board.Position, result board.ShotResult, view *board.Grid) error {
	s := Shot{Incoming: incoming, Result: result.String()}
	if !incoming {
		s.Pos = pos.String()
	}
	r.Shots = append(r.Shots, s)
	if view != nil {
		r.OpponentView = view.Lines()
	}
	return r.flush()
}

// SetBoards stores the own placement and the opponent view.
func (r *MatchRecord) SetBoards(own, view *board.Grid) error {
	if own != nil {
		r.OwnBoard = own.Lines()
	}
	if view != nil {
		r.OpponentView = view.Lines()
	}
	return r.flush()
}

// SetResult stores the outcome ("won", "lost") and the final tally.
func (r *MatchRecord) SetResult(outcome string, tally Tally) error {
	r.Outcome = outcome
	r.Tally = tally
	return r.flush()
}

// Close flushes anything a failed write left behind and closes the file
// handle.
func (r *MatchRecord) Close() error {
	if r.file == nil {
		return nil
	}
	var err error
	if r.dirty {
		err = r.flush()
	}
	if cerr := r.file.Close(); err == nil {
		err = cerr
	}
	r.file = nil
	return err
}

// flush rewrites the whole file.
func (r *MatchRecord) flush() error {
	if r.file == nil {
		return ErrClosed
	}
	r.dirty = true
	out, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	if _, err := r.file.Seek(0, 0); err != nil {
		return err
	}
	if err := r.file.Truncate(0); err != nil {
		return err
	}
	if _, err := r.file.Write(out); err != nil {
		return err
	}
	if err := r.file.Sync(); err != nil {
		return err
	}
	r.dirty = false
	return nil
}
