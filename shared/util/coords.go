package util

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Coord representa uma coordenada inteira na grade do mundo.
// É usada tanto para a posição de um chunk (espaço de chunks) quanto para a
// posição local de um voxel dentro do chunk.
type Coord struct {
	X, Y, Z int32
}

// NewCoord cria uma nova coordenada.
func NewCoord(x, y, z int32) Coord {
	return Coord{X: x, Y: y, Z: z}
}

// Add soma duas coordenadas.
func (c Coord) Add(other Coord) Coord {
	return Coord{
		X: c.X + other.X,
		Y: c.Y + other.Y,
		Z: c.Z + other.Z,
	}
}

// Sub subtrai duas coordenadas.
func (c Coord) Sub(other Coord) Coord {
	return Coord{
		X: c.X - other.X,
		Y: c.Y - other.Y,
		Z: c.Z - other.Z,
	}
}

// Scale multiplica cada eixo por um fator inteiro.
func (c Coord) Scale(f int32) Coord {
	return Coord{X: c.X * f, Y: c.Y * f, Z: c.Z * f}
}

// String retorna a representação em string da coordenada.
func (c Coord) String() string {
	return fmt.Sprintf("(%d, %d, %d)", c.X, c.Y, c.Z)
}

// Vec3 converte a coordenada para um vetor float.
func (c Coord) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(c.X), float32(c.Y), float32(c.Z)}
}

// DistSq retorna a distância quadrada (em células) entre duas coordenadas.
func (c Coord) DistSq(other Coord) int64 {
	d := c.Sub(other)
	return int64(d.X)*int64(d.X) + int64(d.Y)*int64(d.Y) + int64(d.Z)*int64(d.Z)
}

// ChunkOrigin converte uma posição de chunk para a posição no mundo do seu canto mínimo.
// world = chunk * edge
func ChunkOrigin(chunk Coord, edge int) mgl32.Vec3 {
	return chunk.Scale(int32(edge)).Vec3()
}

// WorldToChunk retorna o chunk que contém uma posição do mundo.
func WorldToChunk(pos mgl32.Vec3, edge int) Coord {
	e := float64(edge)
	return Coord{
		X: int32(math.Floor(float64(pos.X()) / e)),
		Y: int32(math.Floor(float64(pos.Y()) / e)),
		Z: int32(math.Floor(float64(pos.Z()) / e)),
	}
}
