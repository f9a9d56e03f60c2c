package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-duel/internal/apperror"
)

const MaxParticipants = 2

// Session is a single game between at most two participants.
// Active implies the roster is full and Turn names one of its members.
type Session struct {
	Room   string         `json:"room"`
	Board  Board          `json:"board"`
	Roster []*Participant `json:"roster"`
	Turn   string         `json:"turn"`
	Active bool           `json:"active"`
}

func NewSession(room string) *Session {
	return &Session{
		Room:   room,
		Roster: make([]*Participant, 0, MaxParticipants),
	}
}

func (that *Session) Participant(id string) *Participant {
	for _, participant := range that.Roster {
		if participant.ID == id {
			return participant
		}
	}

	return nil
}

// Opponent returns the other roster member, nil if there is none.
func (that *Session) Opponent(id string) *Participant {
	for _, participant := range that.Roster {
		if participant.ID != id {
			return participant
		}
	}

	return nil
}

func (that *Session) IsFull() bool {
	return len(that.Roster) >= MaxParticipants
}

// Add appends a participant to the roster. The role follows join order.
func (that *Session) Add(id string) (*Participant, error) {
	if that.Participant(id) != nil {
		return nil, fmt.Errorf("%w: %s", apperror.ErrAlreadyJoined, id)
	}

	if that.IsFull() {
		return nil, apperror.ErrRosterFull
	}

	role := RoleFirst
	if len(that.Roster) > 0 {
		role = RoleSecond
	}

	participant := &Participant{ID: id, Role: role}
	that.Roster = append(that.Roster, participant)

	return participant, nil
}

// Remove drops a participant and resets the game. Whoever stays is promoted
// to RoleFirst so the next joiner takes the second seat.
func (that *Session) Remove(id string) error {
	idx := -1
	for i, participant := range that.Roster {
		if participant.ID == id {
			idx = i
			break
		}
	}

	if idx < 0 {
		return fmt.Errorf("%w: %s", apperror.ErrNotInRoster, id)
	}

	that.Roster = append(that.Roster[:idx], that.Roster[idx+1:]...)
	for _, participant := range that.Roster {
		participant.Role = RoleFirst
	}

	that.Active = false
	that.Board.Reset()
	that.Turn = ""

	return nil
}

// Start resets the board and hands the first move to RoleFirst.
func (that *Session) Start() error {
	if !that.IsFull() {
		return fmt.Errorf("%w: %d of %d participants", apperror.ErrGameNotActive, len(that.Roster), MaxParticipants)
	}

	that.Board.Reset()
	that.Active = true

	for _, participant := range that.Roster {
		if participant.Role == RoleFirst {
			that.Turn = participant.ID
			break
		}
	}

	return nil
}

// Place validates and applies a move: active game, then turn, then cell.
func (that *Session) Place(id string, cell int) (Mark, error) {
	if !that.Active {
		return EmptyCell, apperror.ErrGameNotActive
	}

	if that.Turn != id {
		return EmptyCell, apperror.ErrNotYourTurn
	}

	participant := that.Participant(id)
	if participant == nil {
		return EmptyCell, fmt.Errorf("%w: %s", apperror.ErrNotInRoster, id)
	}

	mark := participant.Mark()
	if err := that.Board.Place(cell, mark); err != nil {
		return EmptyCell, err
	}

	return mark, nil
}

// Finish deactivates the game. Board and roster stay as they are.
func (that *Session) Finish() {
	that.Active = false
}

func (that *Session) PassTurn(id string) {
	that.Turn = id
}

// Clone returns a deep copy that is safe to read without the session lock.
func (that *Session) Clone() *Session {
	clone := &Session{
		Room:   that.Room,
		Board:  that.Board,
		Turn:   that.Turn,
		Active: that.Active,
		Roster: make([]*Participant, 0, len(that.Roster)),
	}

	for _, participant := range that.Roster {
		p := *participant
		clone.Roster = append(clone.Roster, &p)
	}

	return clone
}
