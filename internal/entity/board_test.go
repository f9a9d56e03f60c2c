package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-duel/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_Place(t *testing.T) {
	t.Run("Places a mark into an empty cell", func(t *testing.T) {
		// Given: an empty board
		var board Board

		// When: X is placed into the center
		err := board.Place(4, MarkX)

		// Then: the cell holds X
		require.NoError(t, err)
		assert.Equal(t, MarkX, board[4])
	})

	t.Run("Rejects an occupied cell", func(t *testing.T) {
		// Given: a board with X in the corner
		var board Board
		require.NoError(t, board.Place(0, MarkX))

		// When: O is placed into the same cell
		err := board.Place(0, MarkO)

		// Then: ErrCellOccupied is returned and the cell keeps X
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		assert.Equal(t, MarkX, board[0])
	})

	t.Run("Rejects out of range cells", func(t *testing.T) {
		for _, cell := range []int{-1, 9, 20} {
			// Given: an empty board
			var board Board

			// When: a cell outside of the board is used
			err := board.Place(cell, MarkX)

			// Then: ErrInvalidCell is returned and nothing changes
			require.ErrorIs(t, err, apperror.ErrInvalidCell)
			assert.Equal(t, Board{}, board)
		}
	})
}

func TestBoard_HasWon(t *testing.T) {
	t.Run("Every combo wins for the mark that fills it", func(t *testing.T) {
		for _, combo := range WinCombos {
			// Given: a board where one combo is filled with O
			var board Board
			for _, cell := range combo {
				board[cell] = MarkO
			}

			// Then: O has won and X has not
			assert.True(t, board.HasWon(MarkO), "combo %v", combo)
			assert.False(t, board.HasWon(MarkX), "combo %v", combo)
		}
	})

	t.Run("Mixed lines do not win", func(t *testing.T) {
		// Given: a full board without a complete line
		board := Board{
			MarkX, MarkO, MarkX,
			MarkX, MarkO, MarkO,
			MarkO, MarkX, MarkX,
		}

		// Then: nobody has won and the board is full
		assert.False(t, board.HasWon(MarkX))
		assert.False(t, board.HasWon(MarkO))
		assert.True(t, board.IsFull())
	})

	t.Run("Empty cells never win", func(t *testing.T) {
		var board Board

		assert.False(t, board.HasWon(EmptyCell))
	})
}

func TestBoard_ResetAndFilled(t *testing.T) {
	// Given: a board with two marks
	var board Board
	require.NoError(t, board.Place(0, MarkX))
	require.NoError(t, board.Place(8, MarkO))
	assert.Equal(t, 2, board.Filled())
	assert.False(t, board.IsFull())

	// When: the board is reset
	board.Reset()

	// Then: all cells are empty
	assert.Equal(t, Board{}, board)
	assert.Equal(t, 0, board.Filled())
}

func TestMark_Opponent(t *testing.T) {
	assert.Equal(t, MarkO, MarkX.Opponent())
	assert.Equal(t, MarkX, MarkO.Opponent())
	assert.Equal(t, EmptyCell, EmptyCell.Opponent())
}
