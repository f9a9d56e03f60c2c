package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-duel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-duel/internal/entity"
)

const (
	noticeWaiting      = "Connected! You are player 1 (X). Waiting for an opponent..."
	noticeSecondSeat   = "Connected! You are player 2 (O)."
	noticeNotYourTurn  = "It's not your turn."
	noticeCellTaken    = "That cell is already taken."
	noticeOpponentLeft = "Your opponent left. The game is over."
)

// DefaultRoom is used when no room key is configured.
const DefaultRoom = "main"

type notifier interface {
	Send(participantID, action string, payload any)
	Broadcast(action string, payload any)
}

type resultRecorder interface {
	Record(ctx context.Context, result *entity.GameResult) error
}

type Options struct {
	Room      string
	MoveDelay time.Duration
}

// room serialises every operation on its session, including the pacing delay.
type room struct {
	mu      sync.Mutex
	session *entity.Session
}

type GameManager struct {
	logger   *slog.Logger
	notifier notifier
	recorder resultRecorder

	roomKey   string
	moveDelay time.Duration

	roomsMutex sync.Mutex
	rooms      map[string]*room
}

func NewGameManager(logger *slog.Logger, notifier notifier, recorder resultRecorder, opts Options) *GameManager {
	roomKey := opts.Room
	if roomKey == "" {
		roomKey = DefaultRoom
	}

	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		notifier: notifier,
		recorder: recorder,

		roomKey:   roomKey,
		moveDelay: opts.MoveDelay,

		rooms: make(map[string]*room),
	}
}

// Join seats a participant. The second distinct participant starts the game.
func (that *GameManager) Join(_ context.Context, participantID string) {
	log := that.logger.With("method", "Join", "participantID", participantID)

	r := that.room(that.roomKey)
	r.mu.Lock()
	defer r.mu.Unlock()

	session := r.session

	participant, err := session.Add(participantID)
	if err != nil {
		log.Debug("join ignored", "error", err)
		return
	}

	if participant.Role == entity.RoleFirst {
		that.notifier.Send(participantID, entity.ActionMessage, entity.MessagePayload{Data: noticeWaiting})
		log.Info("participant is waiting for an opponent")
		return
	}

	if err = session.Start(); err != nil {
		log.Error("failed to start game", "error", err)
		return
	}

	that.notifier.Send(participantID, entity.ActionMessage, entity.MessagePayload{Data: noticeSecondSeat})

	// each participant learns its own mark, so game_start is not a broadcast
	for _, p := range session.Roster {
		that.notifier.Send(p.ID, entity.ActionGameStart, entity.GameStartPayload{
			Turn: session.Turn,
			Mark: p.Mark(),
		})
	}

	log.Info("game started", "room", session.Room, "turn", session.Turn)
}

// PlaceMark applies a move. cell is a zero-based index; anything outside of
// the board is reported to the sender as an invalid cell.
func (that *GameManager) PlaceMark(ctx context.Context, participantID string, cell int) {
	log := that.logger.With("method", "PlaceMark", "participantID", participantID)

	r := that.room(that.roomKey)
	r.mu.Lock()
	defer r.mu.Unlock()

	session := r.session

	mark, err := session.Place(participantID, cell)
	switch {
	case errors.Is(err, apperror.ErrGameNotActive):
		log.Debug("move ignored, game is not active")
		return
	case errors.Is(err, apperror.ErrNotYourTurn):
		that.notifier.Send(participantID, entity.ActionMessage, entity.MessagePayload{Data: noticeNotYourTurn})
		return
	case errors.Is(err, apperror.ErrInvalidCell), errors.Is(err, apperror.ErrCellOccupied):
		that.notifier.Send(participantID, entity.ActionMessage, entity.MessagePayload{Data: noticeCellTaken})
		return
	case err != nil:
		log.Error("failed to place mark", "error", err)
		return
	}

	next := session.Opponent(participantID)

	// the move is shown before any game_end
	that.notifier.Broadcast(entity.ActionBoardUpdate, entity.BoardUpdatePayload{
		ID:       cell + 1,
		Mark:     mark,
		NextTurn: next.ID,
	})

	that.pause(ctx)

	if session.Board.HasWon(mark) {
		that.notifier.Broadcast(entity.ActionGameEnd, entity.GameEndPayload{
			Winner: string(mark),
			Loser:  string(mark.Opponent()),
			Type:   entity.EndTypeWin,
		})
		session.Finish()
		that.record(ctx, session, string(mark), entity.EndTypeWin)

		log.Info("game won", "mark", mark)
		return
	}

	if session.Board.IsFull() {
		that.notifier.Broadcast(entity.ActionGameEnd, entity.GameEndPayload{
			Winner: entity.WinnerDraw,
			Type:   entity.EndTypeDraw,
		})
		session.Finish()
		that.record(ctx, session, entity.WinnerDraw, entity.EndTypeDraw)

		log.Info("game drawn")
		return
	}

	session.PassTurn(next.ID)
}

// Leave removes a participant and ends any game in progress.
func (that *GameManager) Leave(_ context.Context, participantID string) {
	log := that.logger.With("method", "Leave", "participantID", participantID)

	r := that.room(that.roomKey)
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.session.Remove(participantID); err != nil {
		log.Debug("leave ignored", "error", err)
		return
	}

	that.notifier.Broadcast(entity.ActionMessage, entity.MessagePayload{Data: noticeOpponentLeft})

	log.Info("participant left", "remaining", len(r.session.Roster))
}

// Session returns a copy of the current session state.
func (that *GameManager) Session() *entity.Session {
	r := that.room(that.roomKey)
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.session.Clone()
}

func (that *GameManager) room(key string) *room {
	that.roomsMutex.Lock()
	defer that.roomsMutex.Unlock()

	r, ok := that.rooms[key]
	if !ok {
		r = &room{session: entity.NewSession(key)}
		that.rooms[key] = r
	}

	return r
}

// pause gives clients time to render board_update before a possible game_end.
func (that *GameManager) pause(ctx context.Context) {
	if that.moveDelay <= 0 {
		return
	}

	timer := time.NewTimer(that.moveDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func (that *GameManager) record(ctx context.Context, session *entity.Session, winner, endType string) {
	if that.recorder == nil {
		return
	}

	result := &entity.GameResult{
		Room:       session.Room,
		Winner:     winner,
		Type:       endType,
		Moves:      session.Board.Filled(),
		FinishedAt: time.Now().UTC(),
	}

	if err := that.recorder.Record(ctx, result); err != nil {
		that.logger.Error("failed to record game result", "method", "record", "error", err)
	}
}
