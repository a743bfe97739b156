package blockmodel

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDefinition indica definições de modelo malformadas (erro de startup).
var ErrInvalidDefinition = errors.New("definição de modelo inválida")

// --- Estruturas JSON ---

// Rotation define a rotação de uma face em graus.
type Rotation struct {
	Yaw   float32 `json:"yaw"`   // Eixo Y
	Pitch float32 `json:"pitch"` // Eixo X
	Roll  float32 `json:"roll"`  // Eixo Z
}

// Size define largura (x) e altura (y) da face antes da rotação.
type Size struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// FaceDefinition descreve um quad no espaço local do bloco.
type FaceDefinition struct {
	Position      []float32 `json:"position"`
	Rotation      Rotation  `json:"rotation"`
	Size          Size      `json:"size"`
	UVTopLeft     []float32 `json:"uv_top_left"`
	UVBottomRight []float32 `json:"uv_bottom_right"`
}

// ModelDefinition descreve um modelo de bloco. Sem ID explícito, o ID é a
// posição do modelo na lista.
type ModelDefinition struct {
	ID          *uint16          `json:"id,omitempty"`
	Name        string           `json:"name"`
	Faces       []FaceDefinition `json:"faces,omitempty"`
	TexturePath *string          `json:"texture_path,omitempty"`
}

// Definitions é o root do block_models.json.
type Definitions struct {
	BlockModels []ModelDefinition `json:"block_models"`
}

// Validate verifica aridade dos vetores, números finitos e unicidade de nomes/IDs.
func (d Definitions) Validate() error {
	ids := make(map[uint16]string)
	names := make(map[string]bool)

	for i, def := range d.BlockModels {
		if def.Name == "" {
			return fmt.Errorf("%w: modelo #%d sem nome", ErrInvalidDefinition, i)
		}
		if names[def.Name] {
			return fmt.Errorf("%w: nome duplicado %q", ErrInvalidDefinition, def.Name)
		}
		names[def.Name] = true

		if i > math.MaxUint16 && def.ID == nil {
			return fmt.Errorf("%w: modelo %q além do limite de IDs", ErrInvalidDefinition, def.Name)
		}
		id := def.resolveID(i)
		if other, ok := ids[id]; ok {
			return fmt.Errorf("%w: ID %d usado por %q e %q", ErrInvalidDefinition, id, other, def.Name)
		}
		ids[id] = def.Name

		for f, face := range def.Faces {
			if err := face.validate(); err != nil {
				return fmt.Errorf("%w: modelo %q, face #%d: %v", ErrInvalidDefinition, def.Name, f, err)
			}
		}
	}
	return nil
}

func (def ModelDefinition) resolveID(position int) uint16 {
	if def.ID != nil {
		return *def.ID
	}
	return uint16(position)
}

func (f FaceDefinition) validate() error {
	if len(f.Position) != 3 {
		return fmt.Errorf("position precisa de 3 valores, recebeu %d", len(f.Position))
	}
	if len(f.UVTopLeft) != 2 {
		return fmt.Errorf("uv_top_left precisa de 2 valores, recebeu %d", len(f.UVTopLeft))
	}
	if len(f.UVBottomRight) != 2 {
		return fmt.Errorf("uv_bottom_right precisa de 2 valores, recebeu %d", len(f.UVBottomRight))
	}

	values := []float32{f.Rotation.Yaw, f.Rotation.Pitch, f.Rotation.Roll, f.Size.X, f.Size.Y}
	values = append(values, f.Position...)
	values = append(values, f.UVTopLeft...)
	values = append(values, f.UVBottomRight...)
	for _, v := range values {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return errors.New("valor não finito")
		}
	}
	return nil
}
