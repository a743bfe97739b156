package meshing

import (
	"fmt"

	"BlockGame/shared/blockmodel"
	"BlockGame/shared/mapdata"
)

// ModelLookup resolve o modelo pré-calculado de um tipo de bloco.
// *blockmodel.Registry implementa esta interface.
type ModelLookup interface {
	Lookup(blockType mapdata.BlockType) (*blockmodel.BlockModel, error)
}

// Assemble percorre os voxels do chunk e junta a geometria de cada bloco numa
// única malha em coordenadas de mundo. Voxels de ar são pulados.
//
// Os índices de cada bloco são deslocados pelo número de vértices já emitidos,
// usando a contagem real de vértices do modelo (modelos podem ter qualquer
// número de faces).
func Assemble(chunk *mapdata.Chunk, models ModelLookup) (MeshBuffers, error) {
	var out MeshBuffers
	if chunk == nil {
		return out, nil
	}

	origin := chunk.WorldOrigin()
	var vertexBase uint32

	for i := 0; i < chunk.Len(); i++ {
		blockType, _ := chunk.Get(i)
		if blockType == mapdata.Air {
			continue
		}

		model, err := models.Lookup(blockType)
		if err != nil {
			return MeshBuffers{}, fmt.Errorf("chunk %s, voxel %d (bloco %d): %w", chunk.Position(), i, blockType, err)
		}
		if len(model.Vertices) == 0 {
			continue
		}

		offset := chunk.PositionFromIndex(i).Vec3().Add(origin)

		for _, v := range model.Vertices {
			out.Vertices = append(out.Vertices, v.Add(offset))
		}
		for _, idx := range model.Indices {
			out.Indices = append(out.Indices, idx+vertexBase)
		}
		out.Normals = append(out.Normals, model.Normals...)
		out.UVs = append(out.UVs, model.UVs...)

		vertexBase += uint32(len(model.Vertices))
	}

	return out, nil
}
