package mapdata

import (
	"BlockGame/shared/util"

	"github.com/go-gl/mathgl/mgl32"
)

// BlockType identifica o tipo de um voxel. O significado (geometria) vem do
// registro de modelos de bloco.
type BlockType uint16

// Air é o voxel vazio: não gera geometria e é ignorado pelo meshing.
const Air BlockType = 0

// DefaultChunkEdge é a aresta padrão de um chunk (32x32x32 = 32768 voxels).
const DefaultChunkEdge = 32

// Chunk é um cubo denso de voxels, a unidade de meshing e de streaming.
//
// Convenção de índice (única em todo o sistema):
//
//	index = x + y*edge + z*edge*edge
type Chunk struct {
	position util.Coord // Posição em espaço de chunks
	edge     int
	blocks   []BlockType
}

// NewChunk cria um chunk preenchido com Air. Arestas não positivas usam DefaultChunkEdge.
func NewChunk(position util.Coord, edge int) *Chunk {
	if edge < 1 {
		edge = DefaultChunkEdge
	}
	return &Chunk{
		position: position,
		edge:     edge,
		blocks:   make([]BlockType, edge*edge*edge),
	}
}

// Position retorna a posição do chunk em espaço de chunks.
func (c *Chunk) Position() util.Coord {
	return c.position
}

// Edge retorna a aresta do chunk em voxels.
func (c *Chunk) Edge() int {
	return c.edge
}

// Len retorna o número de voxels (edge³).
func (c *Chunk) Len() int {
	return len(c.blocks)
}

// WorldOrigin retorna a posição no mundo do voxel (0,0,0) deste chunk.
func (c *Chunk) WorldOrigin() mgl32.Vec3 {
	return util.ChunkOrigin(c.position, c.edge)
}

// Get retorna o tipo do voxel no índice. Fora da faixa retorna (Air, false).
func (c *Chunk) Get(index int) (BlockType, bool) {
	if index < 0 || index >= len(c.blocks) {
		return Air, false
	}
	return c.blocks[index], true
}

// Set altera o voxel no índice. Índices fora da faixa são ignorados.
func (c *Chunk) Set(blockType BlockType, index int) {
	if index < 0 || index >= len(c.blocks) {
		return
	}
	c.blocks[index] = blockType
}

// Fill preenche o chunk inteiro com um único tipo.
func (c *Chunk) Fill(blockType BlockType) {
	for i := range c.blocks {
		c.blocks[i] = blockType
	}
}

// PositionFromIndex converte um índice para a coordenada local (x, y, z).
func (c *Chunk) PositionFromIndex(index int) util.Coord {
	e := c.edge
	return util.Coord{
		X: int32(index % e),
		Y: int32((index / e) % e),
		Z: int32((index / (e * e)) % e),
	}
}

// IndexOf converte uma coordenada local para índice. Retorna false fora do chunk.
func (c *Chunk) IndexOf(x, y, z int) (int, bool) {
	e := c.edge
	if x < 0 || y < 0 || z < 0 || x >= e || y >= e || z >= e {
		return 0, false
	}
	return x + y*e + z*e*e, true
}

// GetAt lê o voxel pela coordenada local.
func (c *Chunk) GetAt(x, y, z int) (BlockType, bool) {
	i, ok := c.IndexOf(x, y, z)
	if !ok {
		return Air, false
	}
	return c.blocks[i], true
}

// SetAt altera o voxel pela coordenada local. Fora do chunk é no-op.
func (c *Chunk) SetAt(blockType BlockType, x, y, z int) {
	if i, ok := c.IndexOf(x, y, z); ok {
		c.blocks[i] = blockType
	}
}

// CountSolid retorna quantos voxels não são Air.
func (c *Chunk) CountSolid() int {
	n := 0
	for _, b := range c.blocks {
		if b != Air {
			n++
		}
	}
	return n
}
