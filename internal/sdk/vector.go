package sdk

// Vector2 matches the SDK's tm_vector2d layout: two contiguous doubles.
type Vector2 struct {
	X, Y float64
}

// Vector3 matches the SDK's tm_vector3d layout.
type Vector3 struct {
	X, Y, Z float64
}

// Vector4 matches the SDK's tm_vector4d layout.
type Vector4 struct {
	X, Y, Z, W float64
}
