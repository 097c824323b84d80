// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

// Group collects individual elements in a scene but does not have a Mesh or Material of
// its own.  It does have a transform that applies to all nodes under it.
type Group struct {
	NodeBase
}

// Model is the root group of a loaded model, as handed in by the model
// provider, together with the number of building steps it declares.
type Model struct {
	Group

	// NumBuildingSteps is the total number of steps declared by the
	// provider. It is 0 if the provider did not declare any.
	NumBuildingSteps int
}
