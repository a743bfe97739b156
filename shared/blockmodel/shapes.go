package blockmodel

// CubeFaces retorna as 6 faces de um cubo unitário centrado na origem, todas
// usando a mesma região do atlas.
func CubeFaces(uvTopLeft, uvBottomRight [2]float32) []FaceDefinition {
	face := func(x, y, z, yaw, pitch float32) FaceDefinition {
		return FaceDefinition{
			Position:      []float32{x, y, z},
			Rotation:      Rotation{Yaw: yaw, Pitch: pitch},
			Size:          Size{X: 1, Y: 1},
			UVTopLeft:     []float32{uvTopLeft[0], uvTopLeft[1]},
			UVBottomRight: []float32{uvBottomRight[0], uvBottomRight[1]},
		}
	}

	return []FaceDefinition{
		face(0, 0, 0.5, 0, 0),    // +Z
		face(0, 0, -0.5, 180, 0), // -Z
		face(0.5, 0, 0, 90, 0),   // +X
		face(-0.5, 0, 0, -90, 0), // -X
		face(0, 0.5, 0, 0, -90),  // +Y
		face(0, -0.5, 0, 0, 90),  // -Y
	}
}

// CrossFaces retorna dois quads cruzados em X (vegetação), girados 45° em torno de Y.
func CrossFaces(uvTopLeft, uvBottomRight [2]float32) []FaceDefinition {
	face := func(yaw float32) FaceDefinition {
		return FaceDefinition{
			Position:      []float32{0, 0, 0},
			Rotation:      Rotation{Yaw: yaw},
			Size:          Size{X: 1.41421356, Y: 1},
			UVTopLeft:     []float32{uvTopLeft[0], uvTopLeft[1]},
			UVBottomRight: []float32{uvBottomRight[0], uvBottomRight[1]},
		}
	}
	return []FaceDefinition{face(45), face(-45)}
}
