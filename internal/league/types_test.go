package league

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSide(t *testing.T) {
	side, err := ParseSide(" HOME ")
	assert.NoError(t, err)
	assert.Equal(t, SideHome, side)

	side, err = ParseSide("away")
	assert.NoError(t, err)
	assert.Equal(t, SideAway, side)

	_, err = ParseSide("Chiefs")
	assert.ErrorIs(t, err, ErrInvalidSide)
}

func TestGame_SideFor(t *testing.T) {
	game := Game{ID: "g1", HomeTeam: "Chiefs", AwayTeam: "Eagles"}

	tests := []struct {
		choice string
		want   Side
		ok     bool
	}{
		{"home", SideHome, true},
		{"Away", SideAway, true},
		{"Chiefs", SideHome, true},
		{"eagles", SideAway, true},
		{" Eagles ", SideAway, true},
		{"Bills", SideUnresolved, false},
		{"", SideUnresolved, false},
	}
	for _, tt := range tests {
		t.Run(tt.choice, func(t *testing.T) {
			got, ok := game.SideFor(tt.choice)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGame_SideFor_MissingAwayTeam(t *testing.T) {
	game := Game{HomeTeam: "Chiefs"}

	_, ok := game.SideFor("")
	assert.False(t, ok, "an empty away slot must not match an empty choice")
}

func TestGame_WinningTeam(t *testing.T) {
	game := Game{HomeTeam: "Chiefs", AwayTeam: "Eagles"}
	assert.False(t, game.HasResult())
	assert.Equal(t, "", game.WinningTeam())

	game.Winner = SideAway
	assert.True(t, game.HasResult())
	assert.Equal(t, "Eagles", game.WinningTeam())
}
