package model

import "github.com/benbeisheim/chess-backend/internal/chess"

type Player struct {
	ID    string
	Color PlayerColor
}

type ClientPlayer struct {
	ID    string      `json:"name"`
	Color PlayerColor `json:"color"`
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

func (p *Players) seat(side chess.Side) *ClientPlayer {
	if side == chess.White {
		return &p.White
	}
	return &p.Black
}

// colorFor returns the color a player is seated as.
func (p *Players) colorFor(playerID string) (PlayerColor, bool) {
	switch {
	case playerID == "":
		return "", false
	case p.White.ID == playerID:
		return PlayerColorWhite, true
	case p.Black.ID == playerID:
		return PlayerColorBlack, true
	}
	return "", false
}

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

func colorOf(side chess.Side) PlayerColor {
	if side == chess.White {
		return PlayerColorWhite
	}
	return PlayerColorBlack
}

func (c PlayerColor) Side() chess.Side {
	if c == PlayerColorBlack {
		return chess.Black
	}
	return chess.White
}
