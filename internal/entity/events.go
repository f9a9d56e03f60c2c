package entity

import "time"

// Inbound and outbound actions carried in the websocket envelope.
const (
	ActionPlacePiece = "place_piece"

	ActionMessage     = "message"
	ActionGameStart   = "game_start"
	ActionBoardUpdate = "board_update"
	ActionGameEnd     = "game_end"
)

const (
	EndTypeWin  = "win"
	EndTypeDraw = "draw"

	WinnerDraw = "DRAW"
)

type MessagePayload struct {
	Data string `json:"data"`
}

type GameStartPayload struct {
	Turn string `json:"turn"`
	Mark Mark   `json:"mark"`
}

type BoardUpdatePayload struct {
	ID       int    `json:"id"`
	Mark     Mark   `json:"mark"`
	NextTurn string `json:"next_turn"`
}

type GameEndPayload struct {
	Winner string `json:"winner"`
	Loser  string `json:"loser,omitempty"`
	Type   string `json:"type"`
}

// GameResult is one concluded game as kept by the result ledger.
type GameResult struct {
	Room       string    `json:"room"`
	Winner     string    `json:"winner"`
	Type       string    `json:"type"`
	Moves      int       `json:"moves"`
	FinishedAt time.Time `json:"finished_at"`
}

type StatsTotals struct {
	XWins int64 `json:"x_wins"`
	OWins int64 `json:"o_wins"`
	Draws int64 `json:"draws"`
}

type Stats struct {
	Totals StatsTotals  `json:"totals"`
	Recent []GameResult `json:"recent"`
}
