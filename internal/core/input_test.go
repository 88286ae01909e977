package core

import "testing"

func TestInputFrameMove(t *testing.T) {
	tests := []struct {
		name   string
		set    []Action
		want   Action
		wantOK bool
	}{
		{"empty", nil, ActionNone, false},
		{"non-move only", []Action{ActionPause, ActionRestart}, ActionNone, false},
		{"single", []Action{ActionLeft}, ActionLeft, true},
		{"first in order wins", []Action{ActionLeft, ActionRight}, ActionRight, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := NewInputFrame()
			for _, a := range tc.set {
				f.Set(a)
			}
			got, ok := f.Move()
			if got != tc.want || ok != tc.wantOK {
				t.Errorf("Move() = (%v, %v), expected (%v, %v)", got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionUp) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionUp)
	if !f.Has(ActionUp) {
		t.Error("Set on zero frame should work")
	}
	f.Clear()
	if f.Has(ActionUp) {
		t.Error("Clear should remove actions")
	}
}

func TestActionIsMove(t *testing.T) {
	for _, a := range []Action{ActionUp, ActionRight, ActionDown, ActionLeft} {
		if !a.IsMove() {
			t.Errorf("%v should be a move", a)
		}
	}
	for _, a := range []Action{ActionNone, ActionConfirm, ActionContinue, ActionQuit} {
		if a.IsMove() {
			t.Errorf("%v should not be a move", a)
		}
	}
}
