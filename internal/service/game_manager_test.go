package service

import (
	"errors"
	"testing"

	"github.com/benbeisheim/chesscore/internal/model"
)

func TestMatchmaking(t *testing.T) {
	t.Parallel()
	gm := NewGameManager(Config{})

	m, err := gm.JoinMatchmaking("alice")
	if err != nil || m != nil {
		t.Fatalf("first join = %v, %v; want to wait", m, err)
	}
	if _, err := gm.JoinMatchmaking("alice"); !errors.Is(err, ErrAlreadyQueued) {
		t.Fatalf("second join = %v, want ErrAlreadyQueued", err)
	}
	if m, err := gm.MatchStatus("alice"); err != nil || m != nil {
		t.Fatalf("status while waiting = %v, %v", m, err)
	}

	bob, err := gm.JoinMatchmaking("bob")
	if err != nil || bob == nil {
		t.Fatalf("pairing join = %v, %v", bob, err)
	}
	if bob.Color != model.SideBlack {
		t.Fatalf("bob plays %s, want black", bob.Color)
	}

	alice, err := gm.MatchStatus("alice")
	if err != nil || alice == nil {
		t.Fatalf("status after pairing = %v, %v", alice, err)
	}
	if alice.GameID != bob.GameID || alice.Color != model.SideWhite {
		t.Fatalf("alice = %+v, bob = %+v", alice, bob)
	}
	if _, err := gm.MatchStatus("alice"); !errors.Is(err, ErrNotQueued) {
		t.Fatalf("status after collecting = %v, want ErrNotQueued", err)
	}

	g, err := gm.GetGame(alice.GameID)
	if err != nil {
		t.Fatal(err)
	}
	if !g.IsPlayerInGame("alice") || !g.IsPlayerInGame("bob") {
		t.Fatal("paired players not seated")
	}
}

func TestLeaveMatchmaking(t *testing.T) {
	t.Parallel()
	gm := NewGameManager(Config{})

	if _, err := gm.JoinMatchmaking("alice"); err != nil {
		t.Fatal(err)
	}
	if err := gm.LeaveMatchmaking("alice"); err != nil {
		t.Fatal(err)
	}
	if err := gm.LeaveMatchmaking("alice"); !errors.Is(err, ErrNotQueued) {
		t.Fatalf("leave twice = %v, want ErrNotQueued", err)
	}
	if m, err := gm.JoinMatchmaking("bob"); err != nil || m != nil {
		t.Fatalf("bob paired with a player who left: %v, %v", m, err)
	}
}

func TestGameManagerGames(t *testing.T) {
	t.Parallel()
	gm := NewGameManager(Config{})

	if _, err := gm.CreateGame("g1", GameOptions{}); err != nil {
		t.Fatal(err)
	}
	if _, err := gm.CreateGame("g1", GameOptions{}); !errors.Is(err, ErrGameExists) {
		t.Fatalf("duplicate id = %v, want ErrGameExists", err)
	}
	dup, err := NewGame("g1", GameOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if err := gm.AddGame(dup); !errors.Is(err, ErrGameExists) {
		t.Fatalf("AddGame duplicate = %v, want ErrGameExists", err)
	}
	if _, err := gm.CreateGame("g2", GameOptions{FEN: "not a fen"}); !errors.Is(err, model.ErrInvalidFEN) {
		t.Fatalf("bad FEN = %v, want ErrInvalidFEN", err)
	}
	if _, err := gm.GetGame("nope"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("GetGame = %v, want ErrGameNotFound", err)
	}
	if _, err := gm.AddPlayerToGame("nope", "alice"); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("AddPlayerToGame = %v, want ErrGameNotFound", err)
	}
	if err := gm.RegisterConnection("nope", "alice", &fakeConn{}); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("RegisterConnection = %v, want ErrGameNotFound", err)
	}

	if side, err := gm.AddPlayerToGame("g1", "alice"); err != nil || side != model.SideWhite {
		t.Fatalf("AddPlayerToGame = %s, %v", side, err)
	}
}
