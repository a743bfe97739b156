package meshing

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrBufferMismatch indica buffers de malha com tamanhos incoerentes.
var ErrBufferMismatch = errors.New("buffers de malha inconsistentes")

// MeshBuffers contém a geometria de um chunk inteiro, já em coordenadas de mundo.
// Vertices, Normals e UVs são paralelos; Indices formam triângulos sobre eles.
type MeshBuffers struct {
	Vertices []mgl32.Vec3
	Indices  []uint32
	Normals  []mgl32.Vec3
	UVs      []mgl32.Vec2
}

// Empty indica que o chunk não produziu nenhuma geometria (ex: só ar).
func (m MeshBuffers) Empty() bool {
	return len(m.Vertices) == 0
}

// TriangleCount retorna o número de triângulos da malha.
func (m MeshBuffers) TriangleCount() int {
	return len(m.Indices) / 3
}

// Clone cria uma cópia profunda dos buffers para evitar corrupção de memória.
func (m MeshBuffers) Clone() MeshBuffers {
	clone := MeshBuffers{}
	if len(m.Vertices) > 0 {
		clone.Vertices = make([]mgl32.Vec3, len(m.Vertices))
		copy(clone.Vertices, m.Vertices)
	}
	if len(m.Indices) > 0 {
		clone.Indices = make([]uint32, len(m.Indices))
		copy(clone.Indices, m.Indices)
	}
	if len(m.Normals) > 0 {
		clone.Normals = make([]mgl32.Vec3, len(m.Normals))
		copy(clone.Normals, m.Normals)
	}
	if len(m.UVs) > 0 {
		clone.UVs = make([]mgl32.Vec2, len(m.UVs))
		copy(clone.UVs, m.UVs)
	}
	return clone
}

// Validate confere que os atributos são paralelos, que os índices formam
// triângulos completos e que nenhum índice aponta para fora dos vértices.
func (m MeshBuffers) Validate() error {
	n := len(m.Vertices)
	if len(m.Normals) != n || len(m.UVs) != n {
		return fmt.Errorf("%w: %d vértices, %d normais, %d UVs", ErrBufferMismatch, n, len(m.Normals), len(m.UVs))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("%w: %d índices não formam triângulos", ErrBufferMismatch, len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("%w: índice %d = %d, só há %d vértices", ErrBufferMismatch, i, idx, n)
		}
	}
	return nil
}
