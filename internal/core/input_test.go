package core

import "testing"

func TestInputFrameSetHasClear(t *testing.T) {
	var f InputFrame // zero value must be usable

	if f.Has(ActionSelect) {
		t.Fatal("zero frame should have no actions")
	}

	f.Set(ActionSelect)
	f.AddTap(3, 4)

	if !f.Has(ActionSelect) {
		t.Error("Has(ActionSelect) = false after Set")
	}
	if f.Has(ActionRestart) {
		t.Error("Has(ActionRestart) = true without Set")
	}
	if len(f.Taps) != 1 || f.Taps[0] != (Tap{X: 3, Y: 4}) {
		t.Errorf("Taps = %v, expected [{3 4}]", f.Taps)
	}

	f.Clear()
	if !f.Empty() {
		t.Errorf("frame not empty after Clear: %+v", f)
	}
}

func TestInputFrameClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.AddTap(1, 1)

	c := f.Clone()
	f.Clear()

	if !c.Has(ActionLeft) {
		t.Error("clone lost action after original was cleared")
	}
	if len(c.Taps) != 1 {
		t.Errorf("clone taps = %v, expected one tap", c.Taps)
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionNone, "None"},
		{ActionSelect, "Select"},
		{ActionStart, "Start"},
		{ActionRestart, "Restart"},
		{Action(99), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.action.String(); got != tc.expected {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.action, got, tc.expected)
		}
	}
}
