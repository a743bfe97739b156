package blockmodel

import (
	"errors"
	"fmt"
	"sort"

	"BlockGame/shared/mapdata"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrModelNotFound indica um tipo de bloco sem modelo registrado.
var ErrModelNotFound = errors.New("modelo de bloco não encontrado")

// forward é o vetor canônico para onde uma face sem rotação aponta.
var forward = mgl32.Vec3{0, 0, 1}

// BlockModel é a geometria pré-calculada de um tipo de bloco, em espaço local.
// Depois de construído é somente leitura e compartilhado por todos os chunks.
type BlockModel struct {
	Name        string
	Vertices    []mgl32.Vec3
	Indices     []uint32
	Normals     []mgl32.Vec3
	UVs         []mgl32.Vec2
	TexturePath string
	HasTexture  bool
}

// FaceCount retorna o número de quads do modelo.
func (m *BlockModel) FaceCount() int {
	return len(m.Vertices) / 4
}

// VertexCount retorna o número de vértices do modelo.
func (m *BlockModel) VertexCount() int {
	return len(m.Vertices)
}

// Registry mapeia BlockType para BlockModel. É imutável depois de Build.
type Registry struct {
	models map[mapdata.BlockType]*BlockModel
	names  map[string]mapdata.BlockType
}

// Build valida as definições e pré-calcula a geometria de todos os modelos.
func Build(defs Definitions) (*Registry, error) {
	if err := defs.Validate(); err != nil {
		return nil, err
	}

	r := &Registry{
		models: make(map[mapdata.BlockType]*BlockModel, len(defs.BlockModels)),
		names:  make(map[string]mapdata.BlockType, len(defs.BlockModels)),
	}

	for i, def := range defs.BlockModels {
		id := mapdata.BlockType(def.resolveID(i))
		r.models[id] = bakeModel(def)
		r.names[def.Name] = id
	}
	return r, nil
}

// bakeModel transforma cada face em 4 vértices, 6 índices, 4 normais e 4 UVs.
func bakeModel(def ModelDefinition) *BlockModel {
	n := len(def.Faces)
	model := &BlockModel{
		Name:     def.Name,
		Vertices: make([]mgl32.Vec3, 0, n*4),
		Indices:  make([]uint32, 0, n*6),
		Normals:  make([]mgl32.Vec3, 0, n*4),
		UVs:      make([]mgl32.Vec2, 0, n*4),
	}
	if def.TexturePath != nil {
		model.TexturePath = *def.TexturePath
		model.HasTexture = true
	}

	var indexCounter uint32
	for _, face := range def.Faces {
		bakeFace(model, face, indexCounter)
		indexCounter += 4
	}
	return model
}

func bakeFace(model *BlockModel, face FaceDefinition, base uint32) {
	position := mgl32.Vec3{face.Position[0], face.Position[1], face.Position[2]}

	yaw := mgl32.QuatRotate(mgl32.DegToRad(face.Rotation.Yaw), mgl32.Vec3{0, 1, 0})
	pitch := mgl32.QuatRotate(mgl32.DegToRad(face.Rotation.Pitch), mgl32.Vec3{1, 0, 0})
	roll := mgl32.QuatRotate(mgl32.DegToRad(face.Rotation.Roll), mgl32.Vec3{0, 0, 1})

	// A normal ignora o roll: girar o quad no próprio plano não muda a direção.
	orientation := pitch.Mul(yaw)
	normal := orientation.Rotate(forward)
	full := orientation.Mul(roll)

	hx := 0.5 * face.Size.X
	hy := 0.5 * face.Size.Y
	bottomLeft := mgl32.Vec3{-hx, -hy, 0}
	bottomRight := mgl32.Vec3{hx, -hy, 0}
	topRight := mgl32.Vec3{hx, hy, 0}
	topLeft := mgl32.Vec3{-hx, hy, 0}

	// Ordem fixa: BL, BR, TR, TL
	for _, corner := range []mgl32.Vec3{bottomLeft, bottomRight, topRight, topLeft} {
		model.Vertices = append(model.Vertices, full.Rotate(corner).Add(position))
		model.Normals = append(model.Normals, normal)
	}

	model.Indices = append(model.Indices,
		base, base+1, base+2,
		base, base+2, base+3,
	)

	// V da textura cresce para baixo, enquanto o "topo" do quad é +Y:
	// BL usa (u0, v1) e TL usa (u0, v0).
	u0, v0 := face.UVTopLeft[0], face.UVTopLeft[1]
	u1, v1 := face.UVBottomRight[0], face.UVBottomRight[1]
	model.UVs = append(model.UVs,
		mgl32.Vec2{u0, v1},
		mgl32.Vec2{u1, v1},
		mgl32.Vec2{u1, v0},
		mgl32.Vec2{u0, v0},
	)
}

// Lookup retorna o modelo do tipo de bloco ou ErrModelNotFound.
func (r *Registry) Lookup(blockType mapdata.BlockType) (*BlockModel, error) {
	if m, ok := r.models[blockType]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("%w: id %d", ErrModelNotFound, blockType)
}

// Get retorna o modelo do tipo de bloco, se existir.
func (r *Registry) Get(blockType mapdata.BlockType) (*BlockModel, bool) {
	m, ok := r.models[blockType]
	return m, ok
}

// ByName retorna o ID de um modelo pelo nome.
func (r *Registry) ByName(name string) (mapdata.BlockType, bool) {
	id, ok := r.names[name]
	return id, ok
}

// Len retorna o número de modelos registrados.
func (r *Registry) Len() int {
	return len(r.models)
}

// IDs retorna os IDs registrados em ordem crescente.
func (r *Registry) IDs() []mapdata.BlockType {
	ids := make([]mapdata.BlockType, 0, len(r.models))
	for id := range r.models {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
