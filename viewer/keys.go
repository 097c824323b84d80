// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

// Keys are the keyboard keys that the viewer responds to.
type Keys int32

const (
	KeyNone Keys = iota
	KeyRight
	KeyLeft
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeySpace
)

var keyNames = [...]string{"None", "Right", "Left", "Up", "Down", "Home", "End", "Space"}

func (k Keys) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return "Keys(?)"
	}
	return keyNames[k]
}

// HandleKey performs the action bound to the given key and returns
// whether the key is bound: right and down go to the next step, left and
// up to the previous one, home to the first, end to the last, and space
// toggles playback.
func (v *Viewer) HandleKey(k Keys) bool {
	switch k {
	case KeyRight, KeyDown:
		v.NextStep()
	case KeyLeft, KeyUp:
		v.PrevStep()
	case KeyHome:
		v.GoToStep(1)
	case KeyEnd:
		v.GoToStep(v.TotalSteps())
	case KeySpace:
		v.TogglePlay()
	default:
		return false
	}
	return true
}
