// Copyright 2019 Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Initially copied from G3N: github.com/g3n/engine/math32
// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.
// with modifications needed to suit Cogent Core functionality.

package math32

// Matrix4 is 4x4 matrix organized internally as column matrix.
type Matrix4 [16]float32

// Identity4 returns a new identity [Matrix4] matrix.
func Identity4() *Matrix4 {
	m := &Matrix4{}
	m.SetIdentity()
	return m
}

// SetIdentity sets this matrix as the identity matrix.
func (m *Matrix4) SetIdentity() {
	*m = Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// IsIdentity returns whether this matrix is the identity matrix.
func (m *Matrix4) IsIdentity() bool {
	return *m == *Identity4()
}

// SetTranslation sets this matrix to a translation matrix from the specified x, y and z values.
func (m *Matrix4) SetTranslation(x, y, z float32) {
	m.SetIdentity()
	m[12] = x
	m[13] = y
	m[14] = z
}

// Translation returns the translation (position) component of this matrix.
func (m *Matrix4) Translation() Vector3 {
	return Vec3(m[12], m[13], m[14])
}

// SetTransform sets this matrix to a transformation matrix for the specified position,
// rotation specified by the quaternion and scale.
func (m *Matrix4) SetTransform(pos Vector3, quat Quat, scale Vector3) {
	x2 := quat.X + quat.X
	y2 := quat.Y + quat.Y
	z2 := quat.Z + quat.Z
	xx := quat.X * x2
	xy := quat.X * y2
	xz := quat.X * z2
	yy := quat.Y * y2
	yz := quat.Y * z2
	zz := quat.Z * z2
	wx := quat.W * x2
	wy := quat.W * y2
	wz := quat.W * z2

	m[0] = (1 - (yy + zz)) * scale.X
	m[1] = (xy + wz) * scale.X
	m[2] = (xz - wy) * scale.X
	m[3] = 0
	m[4] = (xy - wz) * scale.Y
	m[5] = (1 - (xx + zz)) * scale.Y
	m[6] = (yz + wx) * scale.Y
	m[7] = 0
	m[8] = (xz + wy) * scale.Z
	m[9] = (yz - wx) * scale.Z
	m[10] = (1 - (xx + yy)) * scale.Z
	m[11] = 0
	m[12] = pos.X
	m[13] = pos.Y
	m[14] = pos.Z
	m[15] = 1
}

// Decompose updates the position vector, quaternion and scale from this transformation matrix.
func (m *Matrix4) Decompose() (pos Vector3, quat Quat, scale Vector3) {
	sx := Vec3(m[0], m[1], m[2]).Length()
	sy := Vec3(m[4], m[5], m[6]).Length()
	sz := Vec3(m[8], m[9], m[10]).Length()

	// if determinant is negative, we need to invert one scale
	if m.Determinant() < 0 {
		sx = -sx
	}

	pos = m.Translation()

	// scale the rotation part
	matrix := *m
	if sx != 0 {
		invSX := 1 / sx
		matrix[0] *= invSX
		matrix[1] *= invSX
		matrix[2] *= invSX
	}
	if sy != 0 {
		invSY := 1 / sy
		matrix[4] *= invSY
		matrix[5] *= invSY
		matrix[6] *= invSY
	}
	if sz != 0 {
		invSZ := 1 / sz
		matrix[8] *= invSZ
		matrix[9] *= invSZ
		matrix[10] *= invSZ
	}

	quat.SetFromRotationMatrix(&matrix)
	scale = Vec3(sx, sy, sz)
	return
}

// Determinant calculates and returns the determinant of the upper 3x3
// (rotation and scale) part of this matrix.
func (m *Matrix4) Determinant() float32 {
	return m[0]*(m[5]*m[10]-m[9]*m[6]) -
		m[4]*(m[1]*m[10]-m[9]*m[2]) +
		m[8]*(m[1]*m[6]-m[5]*m[2])
}

// MulMatrices sets this matrix as the matrix product a * b.
func (m *Matrix4) MulMatrices(a, b *Matrix4) {
	var r Matrix4
	for c := 0; c < 4; c++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += a[k*4+row] * b[c*4+k]
			}
			r[c*4+row] = sum
		}
	}
	*m = r
}

// Mul returns this matrix times other matrix (this matrix is unchanged).
func (m *Matrix4) Mul(other *Matrix4) *Matrix4 {
	nm := &Matrix4{}
	nm.MulMatrices(m, other)
	return nm
}

// SetInverse sets this matrix to the inverse of the src matrix.
// If the src matrix cannot be inverted, this matrix is set to zero
// and false is returned.
func (m *Matrix4) SetInverse(src *Matrix4) bool {
	// Gauss-Jordan elimination on the row-major view [a | I]
	var a [4][8]float32
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			a[row][col] = src[col*4+row]
		}
		a[row][4+row] = 1
	}
	for col := 0; col < 4; col++ {
		pivot := col
		for row := col + 1; row < 4; row++ {
			if Abs(a[row][col]) > Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if a[pivot][col] == 0 {
			*m = Matrix4{}
			return false
		}
		a[col], a[pivot] = a[pivot], a[col]
		inv := 1 / a[col][col]
		for k := 0; k < 8; k++ {
			a[col][k] *= inv
		}
		for row := 0; row < 4; row++ {
			if row == col {
				continue
			}
			f := a[row][col]
			if f == 0 {
				continue
			}
			for k := 0; k < 8; k++ {
				a[row][k] -= f * a[col][k]
			}
		}
	}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			m[col*4+row] = a[row][4+col]
		}
	}
	return true
}

// Inverse returns the inverse of this matrix, or the zero matrix
// if it cannot be inverted.
func (m *Matrix4) Inverse() *Matrix4 {
	nm := &Matrix4{}
	nm.SetInverse(m)
	return nm
}

// SetRotationFromLookAt sets this matrix to the rotation that orients the
// negative Z axis from eye toward target, with the given up direction.
func (m *Matrix4) SetRotationFromLookAt(eye, target, up Vector3) {
	z := eye.Sub(target)
	if z.LengthSquared() == 0 {
		z.Z = 1 // eye and target are in the same position
	}
	z.SetNormal()
	x := up.Cross(z)
	if x.LengthSquared() == 0 { // up and z are parallel
		if Abs(up.Z) == 1 {
			z.X += 0.0001
		} else {
			z.Z += 0.0001
		}
		z.SetNormal()
		x = up.Cross(z)
	}
	x.SetNormal()
	y := z.Cross(x)

	m.SetIdentity()
	m[0], m[1], m[2] = x.X, x.Y, x.Z
	m[4], m[5], m[6] = y.X, y.Y, y.Z
	m[8], m[9], m[10] = z.X, z.Y, z.Z
}

// SetOrthographic sets this matrix to an orthographic projection matrix
// for the given view volume.
func (m *Matrix4) SetOrthographic(left, right, top, bottom, near, far float32) {
	w := 1 / (right - left)
	h := 1 / (top - bottom)
	p := 1 / (far - near)
	x := (right + left) * w
	y := (top + bottom) * h
	z := (far + near) * p

	*m = Matrix4{}
	m[0] = 2 * w
	m[5] = 2 * h
	m[10] = -2 * p
	m[12] = -x
	m[13] = -y
	m[14] = -z
	m[15] = 1
}

// SetPerspective sets this matrix to a perspective projection matrix
// with the given vertical field of view in degrees, aspect ratio,
// and near and far clipping planes.
func (m *Matrix4) SetPerspective(fov, aspect, near, far float32) {
	top := near * Tan(DegToRad(0.5*fov))
	height := 2 * top
	width := aspect * height
	left := -0.5 * width
	right := left + width
	bottom := top - height

	x := 2 * near / (right - left)
	y := 2 * near / (top - bottom)
	a := (right + left) / (right - left)
	b := (top + bottom) / (top - bottom)
	c := -(far + near) / (far - near)
	d := -2 * far * near / (far - near)

	*m = Matrix4{}
	m[0] = x
	m[5] = y
	m[8] = a
	m[9] = b
	m[10] = c
	m[11] = -1
	m[14] = d
}
