package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-duel/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startedSession(t *testing.T) *Session {
	t.Helper()

	session := NewSession("main")
	_, err := session.Add("a")
	require.NoError(t, err)
	_, err = session.Add("b")
	require.NoError(t, err)
	require.NoError(t, session.Start())

	return session
}

func TestSession_Add(t *testing.T) {
	t.Run("Assigns roles by join order", func(t *testing.T) {
		// Given: an empty session
		session := NewSession("main")

		// When: two participants join
		first, err := session.Add("a")
		require.NoError(t, err)
		second, err := session.Add("b")
		require.NoError(t, err)

		// Then: the first one plays X and the second one plays O
		assert.Equal(t, RoleFirst, first.Role)
		assert.Equal(t, MarkX, first.Mark())
		assert.Equal(t, RoleSecond, second.Role)
		assert.Equal(t, MarkO, second.Mark())
		assert.False(t, session.Active)
	})

	t.Run("Rejects a duplicate id", func(t *testing.T) {
		session := NewSession("main")
		_, err := session.Add("a")
		require.NoError(t, err)

		_, err = session.Add("a")

		require.ErrorIs(t, err, apperror.ErrAlreadyJoined)
		assert.Len(t, session.Roster, 1)
	})

	t.Run("Rejects a third participant", func(t *testing.T) {
		session := startedSession(t)

		_, err := session.Add("c")

		require.ErrorIs(t, err, apperror.ErrRosterFull)
		assert.Len(t, session.Roster, 2)
	})
}

func TestSession_Start(t *testing.T) {
	t.Run("Requires two participants", func(t *testing.T) {
		session := NewSession("main")
		_, err := session.Add("a")
		require.NoError(t, err)

		err = session.Start()

		require.ErrorIs(t, err, apperror.ErrGameNotActive)
		assert.False(t, session.Active)
	})

	t.Run("Gives the first move to the first participant", func(t *testing.T) {
		session := startedSession(t)

		assert.True(t, session.Active)
		assert.Equal(t, "a", session.Turn)
		assert.Equal(t, Board{}, session.Board)
	})
}

func TestSession_Place(t *testing.T) {
	t.Run("Rejects moves while inactive", func(t *testing.T) {
		session := NewSession("main")

		_, err := session.Place("a", 0)

		require.ErrorIs(t, err, apperror.ErrGameNotActive)
	})

	t.Run("Rejects moves out of turn without touching the board", func(t *testing.T) {
		session := startedSession(t)

		_, err := session.Place("b", 0)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, Board{}, session.Board)
		assert.Equal(t, "a", session.Turn)
	})

	t.Run("Writes the mover's mark", func(t *testing.T) {
		session := startedSession(t)

		mark, err := session.Place("a", 4)

		require.NoError(t, err)
		assert.Equal(t, MarkX, mark)
		assert.Equal(t, MarkX, session.Board[4])
	})

	t.Run("Rejects invalid cells without touching turn", func(t *testing.T) {
		session := startedSession(t)

		_, err := session.Place("a", 9)

		require.ErrorIs(t, err, apperror.ErrInvalidCell)
		assert.Equal(t, "a", session.Turn)
		assert.Equal(t, Board{}, session.Board)
	})
}

func TestSession_Remove(t *testing.T) {
	t.Run("Resets the game and promotes the remaining participant", func(t *testing.T) {
		// Given: a started session with a move on the board
		session := startedSession(t)
		_, err := session.Place("a", 0)
		require.NoError(t, err)

		// When: the first participant leaves
		err = session.Remove("a")

		// Then: the game is reset and b now holds the first seat
		require.NoError(t, err)
		assert.False(t, session.Active)
		assert.Empty(t, session.Turn)
		assert.Equal(t, Board{}, session.Board)
		require.Len(t, session.Roster, 1)
		assert.Equal(t, "b", session.Roster[0].ID)
		assert.Equal(t, RoleFirst, session.Roster[0].Role)

		// And: the next joiner takes the second seat
		joined, err := session.Add("c")
		require.NoError(t, err)
		assert.Equal(t, RoleSecond, joined.Role)
	})

	t.Run("Unknown ids are rejected", func(t *testing.T) {
		session := startedSession(t)

		err := session.Remove("zzz")

		require.ErrorIs(t, err, apperror.ErrNotInRoster)
		assert.True(t, session.Active)
	})
}

func TestSession_Clone(t *testing.T) {
	session := startedSession(t)

	clone := session.Clone()
	clone.Roster[0].Role = RoleSecond
	clone.Board[0] = MarkO

	assert.Equal(t, RoleFirst, session.Roster[0].Role)
	assert.Equal(t, EmptyCell, session.Board[0])
}
