package registry

import (
	"testing"

	"github.com/codekriti/deepsea/internal/core"
)

type stubGame struct {
	id      string
	running bool
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

type stubAnimator struct {
	stubGame
}

func (g *stubAnimator) Running() bool { return g.running }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub", func() Game { return &stubGame{id: "zz_stub"} })

	if !Exists("zz_stub") {
		t.Fatal("registered game should exist")
	}

	g, err := Create("zz_stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz_stub" {
		t.Errorf("ID() = %q", g.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz_stub" {
			found = info.Title == "Stub zz_stub"
		}
	}
	if !found {
		t.Error("List() should include the registered game with its title")
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create() of an unknown id should fail")
	}
}

type stubDescriber struct {
	stubGame
}

func (g *stubDescriber) Blurb() string { return "does a thing" }

func TestListCarriesBlurb(t *testing.T) {
	Register("zz_blurb", func() Game { return &stubDescriber{stubGame{id: "zz_blurb"}} })

	for _, info := range List() {
		switch info.ID {
		case "zz_blurb":
			if info.Blurb != "does a thing" {
				t.Errorf("Blurb = %q", info.Blurb)
			}
		case "zz_stub":
			if info.Blurb != "" {
				t.Errorf("game without Blurb() got %q", info.Blurb)
			}
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
}

func TestIsRunning(t *testing.T) {
	if !IsRunning(&stubGame{}) {
		t.Error("games without Running() always run")
	}
	if IsRunning(&stubAnimator{}) {
		t.Error("stopped animator should not run")
	}
	if !IsRunning(&stubAnimator{stubGame{running: true}}) {
		t.Error("running animator should run")
	}
}
