package websocket

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
)

// invalidCell is outside of the board, so the move is rejected as an invalid cell.
const invalidCell = -1

type placePiecePayload struct {
	ID json.RawMessage `json:"id"`
}

func (that *Server) handlePlacePiece(ctx context.Context, conn *Connection, msg *Message) error {
	log := that.logger.With("method", "handlePlacePiece", "connectionID", conn.ID)

	cell := invalidCell

	var payload placePiecePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Debug("malformed payload", "error", err)
	} else {
		cell = parseCellID(payload.ID)
	}

	that.gameManager.PlaceMark(ctx, conn.ID, cell)

	return nil
}

// parseCellID turns a 1-based cell id, sent as a number or a numeric string,
// into a board index.
func parseCellID(raw json.RawMessage) int {
	if len(raw) == 0 {
		return invalidCell
	}

	var number int
	if err := json.Unmarshal(raw, &number); err == nil {
		return number - 1
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return invalidCell
	}

	number, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return invalidCell
	}

	return number - 1
}
