package registry

import (
	"testing"

	"github.com/vovakirdan/clapjump/internal/core"
)

type stubGame struct{ opts Options }

func (s *stubGame) ID() string { return "stub" }
func (s *stubGame) Title() string { return "Stub" }

func (s *stubGame) Reset(core.RuntimeConfig) {}

func (s *stubGame) Step(core.InputFrame) core.StepResult {
	return core.StepResult{}
}

func (s *stubGame) Render(*core.Screen) {}

func (s *stubGame) State() core.GameState {
	return core.GameState{}
}

func TestRegisterAndCreate(t *testing.T) {
	Register("zz-stub", "Stub", func(o Options) (Game, error) {
		return &stubGame{opts: o}, nil
	})

	if !Exists("zz-stub") {
		t.Fatal("Exists() = false after Register")
	}

	g, err := Create("zz-stub", Options{ConfigDir: "/tmp/cfg"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.(*stubGame).opts.ConfigDir != "/tmp/cfg" {
		t.Error("options were not passed to the factory")
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz-stub" && info.Title == "Stub" {
			found = true
		}
	}
	if !found {
		t.Error("List() is missing the registered game")
	}

	if _, err := Create("missing", Options{}); err == nil {
		t.Error("Create() of an unknown game should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz-dup", "Dup", func(Options) (Game, error) { return &stubGame{}, nil })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz-dup", "Dup", func(Options) (Game, error) { return &stubGame{}, nil })
}
