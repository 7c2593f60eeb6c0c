package registry

import (
	"testing"

	"github.com/vovakirdan/supply-tictactoe/internal/core"
)

type stubGame struct {
	id    string
	reset int
}

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) { g.reset++ }
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }
func (g *stubGame) Description() string { return "a stub" }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub_a", func() Game { return &stubGame{id: "zz_stub_a"} })

	if !Exists("zz_stub_a") {
		t.Fatal("Expected zz_stub_a to exist after Register")
	}

	g1, err := Create("zz_stub_a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	g2, _ := Create("zz_stub_a")
	if g1 == g2 {
		t.Error("Expected Create to return a fresh instance each call")
	}

	var info *GameInfo
	for _, gi := range List() {
		if gi.ID == "zz_stub_a" {
			info = &gi
		}
	}
	if info == nil {
		t.Fatal("Expected zz_stub_a in List()")
	}
	if info.Title != "Stub zz_stub_a" || info.Description != "a stub" {
		t.Errorf("Unexpected info: %+v", *info)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game"); err == nil {
		t.Error("Expected error for unknown game")
	}
	if Exists("no_such_game") {
		t.Error("Expected no_such_game not to exist")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_stub_b", func() Game { return &stubGame{id: "zz_stub_b"} })

	defer func() {
		if recover() == nil {
			t.Error("Expected panic on duplicate registration")
		}
	}()
	Register("zz_stub_b", func() Game { return &stubGame{id: "zz_stub_b"} })
}

func TestListSorted(t *testing.T) {
	Register("zz_stub_d", func() Game { return &stubGame{id: "zz_stub_d"} })
	Register("zz_stub_c", func() Game { return &stubGame{id: "zz_stub_c"} })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("List not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}
