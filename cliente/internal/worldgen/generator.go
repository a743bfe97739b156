package worldgen

import (
	"errors"
	"fmt"
	"math"

	"BlockGame/shared/mapdata"
	"BlockGame/shared/util"

	"github.com/ojrac/opensimplex-go"
)

// ErrNoPalette indica um registro sem blocos sólidos para gerar terreno.
var ErrNoPalette = errors.New("nenhum bloco sólido disponível para o terreno")

// NameResolver resolve IDs de bloco pelo nome. *blockmodel.Registry implementa.
type NameResolver interface {
	ByName(name string) (mapdata.BlockType, bool)
	IDs() []mapdata.BlockType
}

// Palette define quais blocos compõem cada camada do terreno.
type Palette struct {
	Grass mapdata.BlockType
	Dirt  mapdata.BlockType
	Stone mapdata.BlockType
	Plant mapdata.BlockType // Air = sem vegetação
}

// ResolvePalette busca "grass", "dirt", "stone" e "plant" no registro. Camadas
// sem modelo com esse nome usam o primeiro bloco sólido registrado.
func ResolvePalette(r NameResolver) (Palette, error) {
	var fallback mapdata.BlockType
	for _, id := range r.IDs() {
		if id != mapdata.Air {
			fallback = id
			break
		}
	}
	if fallback == mapdata.Air {
		return Palette{}, ErrNoPalette
	}

	pick := func(name string) mapdata.BlockType {
		if id, ok := r.ByName(name); ok && id != mapdata.Air {
			return id
		}
		return fallback
	}

	p := Palette{
		Grass: pick("grass"),
		Dirt:  pick("dirt"),
		Stone: pick("stone"),
	}
	if id, ok := r.ByName("plant"); ok {
		p.Plant = id
	}
	return p, nil
}

// Parâmetros do relevo, em voxels.
const (
	baseHeight  = 6
	amplitude   = 18
	dirtDepth   = 3
	heightScale = 1.0 / 96.0
	detailScale = 1.0 / 24.0
	plantScale  = 0.9
	plantChance = 0.55 // limiar do ruído de vegetação, em [-1, 1]
)

// Generator produz chunks completos a partir de ruído OpenSimplex.
// É determinístico: a mesma seed gera sempre o mesmo mundo.
type Generator struct {
	height  opensimplex.Noise32
	detail  opensimplex.Noise32
	plants  opensimplex.Noise32
	edge    int
	palette Palette
}

// NewGenerator cria um gerador com a seed e a aresta de chunk informadas.
func NewGenerator(seed int64, edge int, palette Palette) *Generator {
	if edge < 1 {
		edge = mapdata.DefaultChunkEdge
	}
	return &Generator{
		height:  opensimplex.New32(seed),
		detail:  opensimplex.New32(seed + 1),
		plants:  opensimplex.New32(seed + 2),
		edge:    edge,
		palette: palette,
	}
}

// NewGeneratorFromRegistry resolve a paleta no registro e cria o gerador.
func NewGeneratorFromRegistry(seed int64, edge int, r NameResolver) (*Generator, error) {
	p, err := ResolvePalette(r)
	if err != nil {
		return nil, fmt.Errorf("worldgen: %w", err)
	}
	return NewGenerator(seed, edge, p), nil
}

// Palette retorna a paleta em uso.
func (g *Generator) Palette() Palette {
	return g.palette
}

// Height retorna a altura (y do bloco de grama) da coluna em coordenadas de mundo.
func (g *Generator) Height(x, z int32) int32 {
	fx, fz := float32(x), float32(z)

	// Duas oitavas: relevo amplo + detalhe
	n := g.height.Eval2(fx*heightScale, fz*heightScale)*0.8 +
		g.detail.Eval2(fx*detailScale, fz*detailScale)*0.2

	t := (n + 1) / 2
	h := util.Lerp(baseHeight-amplitude, baseHeight+amplitude, t)
	return int32(math.Floor(float64(h)))
}

// hasPlant decide se a coluna recebe vegetação sobre a grama.
func (g *Generator) hasPlant(x, z int32) bool {
	if g.palette.Plant == mapdata.Air {
		return false
	}
	return g.plants.Eval2(float32(x)*plantScale, float32(z)*plantScale) > plantChance
}

// blockAt decide o bloco de um voxel a partir da altura da coluna.
func (g *Generator) blockAt(y, surface int32, plant bool) mapdata.BlockType {
	switch {
	case y > surface+1:
		return mapdata.Air
	case y == surface+1:
		if plant {
			return g.palette.Plant
		}
		return mapdata.Air
	case y == surface:
		return g.palette.Grass
	case y >= surface-dirtDepth:
		return g.palette.Dirt
	default:
		return g.palette.Stone
	}
}

// Generate cria o chunk na posição informada (espaço de chunks).
func (g *Generator) Generate(pos util.Coord) *mapdata.Chunk {
	chunk := mapdata.NewChunk(pos, g.edge)
	edge := int32(g.edge)
	base := pos.Scale(edge)

	for z := int32(0); z < edge; z++ {
		for x := int32(0); x < edge; x++ {
			wx, wz := base.X+x, base.Z+z
			surface := g.Height(wx, wz)

			// Coluna inteira acima da superfície (e da vegetação): nada a fazer
			if base.Y > surface+1 {
				continue
			}
			plant := g.hasPlant(wx, wz)

			top := util.Min(edge-1, surface+1-base.Y)
			for y := int32(0); y <= top; y++ {
				chunk.SetAt(g.blockAt(base.Y+y, surface, plant), int(x), int(y), int(z))
			}
		}
	}
	return chunk
}
