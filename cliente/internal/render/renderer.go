package render

/*
#include <stdlib.h>
*/
import "C"

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"BlockGame/cliente/internal/meshing"
	"BlockGame/cliente/internal/scene"
	"BlockGame/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// ErrNoWindow indica tentativa de upload sem contexto OpenGL.
var ErrNoWindow = errors.New("janela raylib não inicializada")

// maxVerticesPerMesh limita o tamanho de uma malha desindexada. Os índices
// da raylib são uint16, então o upload é feito sem índices (triangle soup).
const maxVerticesPerMesh = 1 << 24

// Renderer é o backend raylib da cena. Implementa scene.Uploader: cada chunk
// vira um rl.Model, identificado por um scene.Handle.
type Renderer struct {
	mu     sync.RWMutex
	models map[scene.Handle]rl.Model
	next   scene.Handle

	shader      rl.Shader
	lightDirLoc int32
	ambientLoc  int32
	atlas       rl.Texture2D

	LightDir [3]float32
	Ambient  float32

	log *zap.Logger
}

// NewRenderer cria o renderer. Deve ser chamado depois de rl.InitWindow.
// atlasPath vazio (ou inválido) desenha os chunks sem textura.
func NewRenderer(atlasPath string, log *zap.Logger) *Renderer {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		models:   make(map[scene.Handle]rl.Model),
		LightDir: [3]float32{-0.4, -1.0, -0.3},
		Ambient:  0.45,
		log:      log,
	}

	if !rl.IsWindowReady() {
		return r
	}

	r.shader = rl.LoadShaderFromMemory(blockVertexShader, blockFragmentShader)
	if r.shader.ID != 0 {
		// Locs é um ponteiro bruto (*int32) para o array C de localizações
		locs := unsafe.Slice(r.shader.Locs, 32)
		locs[15] = rl.GetShaderLocation(r.shader, "texture0")   // SHADER_LOC_MAP_DIFFUSE
		locs[12] = rl.GetShaderLocation(r.shader, "colDiffuse") // SHADER_LOC_COLOR_DIFFUSE
		r.lightDirLoc = rl.GetShaderLocation(r.shader, "lightDir")
		r.ambientLoc = rl.GetShaderLocation(r.shader, "ambient")
	} else {
		r.log.Warn("Shader dos chunks não compilou, usando o padrão")
	}

	if atlasPath != "" {
		r.loadAtlas(atlasPath)
	}
	return r
}

func (r *Renderer) loadAtlas(path string) {
	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		r.log.Warn("Falha ao carregar atlas de texturas", zap.String("path", path))
		return
	}
	// Pixel art: sem filtro, senão as bordas das regiões do atlas vazam
	rl.SetTextureFilter(tex, rl.FilterPoint)
	rl.SetTextureWrap(tex, rl.WrapClamp)
	r.atlas = tex
	r.log.Info("Atlas carregado", zap.String("path", path), zap.Int32("largura", tex.Width), zap.Int32("altura", tex.Height))
}

// Upload converte os buffers do chunk em um modelo na GPU.
func (r *Renderer) Upload(mesh meshing.MeshBuffers) (scene.Handle, error) {
	if !rl.IsWindowReady() {
		return 0, ErrNoWindow
	}
	if err := mesh.Validate(); err != nil {
		return 0, err
	}
	if len(mesh.Indices) > maxVerticesPerMesh {
		return 0, fmt.Errorf("malha grande demais: %d índices", len(mesh.Indices))
	}

	m := r.buffersToMesh(mesh)
	rl.UploadMesh(&m, false)
	model := rl.LoadModelFromMesh(m)

	if model.MaterialCount > 0 {
		materials := unsafe.Slice(model.Materials, model.MaterialCount)
		if r.shader.ID != 0 {
			materials[0].Shader = r.shader
		}
		if r.atlas.ID != 0 {
			rl.SetMaterialTexture(&materials[0], rl.MapDiffuse, r.atlas)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.models[r.next] = model
	return r.next, nil
}

// Release descarrega o modelo da GPU.
func (r *Renderer) Release(h scene.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	model, ok := r.models[h]
	if !ok {
		return
	}
	// UnloadModel não descarrega shader nem texturas do material: o atlas segue vivo
	rl.UnloadModel(model)
	delete(r.models, h)
}

// buffersToMesh desindexa os buffers em triangle soup alocada em C.
// A raylib libera esses arrays no UnloadModel.
func (r *Renderer) buffersToMesh(data meshing.MeshBuffers) rl.Mesh {
	n := len(data.Indices)
	vertices := make([]float32, 0, n*3)
	normals := make([]float32, 0, n*3)
	uvs := make([]float32, 0, n*2)

	for _, idx := range data.Indices {
		v, nv, uv := data.Vertices[idx], data.Normals[idx], data.UVs[idx]
		vertices = append(vertices, v[0], v[1], v[2])
		normals = append(normals, nv[0], nv[1], nv[2])
		uvs = append(uvs, uv[0], uv[1])
	}

	var mesh rl.Mesh
	mesh.VertexCount = int32(n)
	mesh.TriangleCount = int32(n / 3)
	if n > 0 {
		mesh.Vertices = (*float32)(copyToC(unsafe.Pointer(&vertices[0]), len(vertices)*4))
		mesh.Normals = (*float32)(copyToC(unsafe.Pointer(&normals[0]), len(normals)*4))
		mesh.Texcoords = (*float32)(copyToC(unsafe.Pointer(&uvs[0]), len(uvs)*4))
	}
	return mesh
}

func copyToC(data unsafe.Pointer, size int) unsafe.Pointer {
	if size <= 0 || data == nil {
		return nil
	}
	ptr := C.malloc(C.size_t(size))
	if ptr == nil {
		return nil
	}
	cSlice := unsafe.Slice((*byte)(ptr), size)
	goSlice := unsafe.Slice((*byte)(data), size)
	copy(cSlice, goSlice)
	return ptr
}

// Draw desenha os chunks vivos da cena. Deve ser chamado entre
// rl.BeginMode3D e rl.EndMode3D.
func (r *Renderer) Draw(world *scene.World) {
	if r.shader.ID != 0 {
		rl.SetShaderValue(r.shader, r.lightDirLoc, r.LightDir[:], rl.ShaderUniformVec3)
		rl.SetShaderValue(r.shader, r.ambientLoc, []float32{r.Ambient}, rl.ShaderUniformFloat)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	tint := rl.White
	if r.atlas.ID == 0 {
		tint = rl.LightGray
	}

	world.Each(func(_ meshing.WorldMarker, mesh scene.ChunkMesh) {
		if model, ok := r.models[mesh.Handle]; ok {
			// Os vértices já estão em coordenadas de mundo
			rl.DrawModel(model, rl.Vector3{}, 1.0, tint)
		}
	})
}

// Loaded retorna o número de modelos na GPU.
func (r *Renderer) Loaded() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.models)
}

// Unload libera todos os recursos de GPU.
func (r *Renderer) Unload() {
	r.mu.Lock()
	for h, model := range r.models {
		rl.UnloadModel(model)
		delete(r.models, h)
	}
	r.mu.Unlock()

	if r.atlas.ID != 0 {
		rl.UnloadTexture(r.atlas)
		r.atlas = rl.Texture2D{}
	}
	if r.shader.ID != 0 {
		rl.UnloadShader(r.shader)
		r.shader = rl.Shader{}
	}
}

// DrawChunkBounds desenha a caixa de cada chunk vivo (overlay de debug).
func (r *Renderer) DrawChunkBounds(world *scene.World, edge int) {
	size := float32(edge)
	world.Each(func(marker meshing.WorldMarker, mesh scene.ChunkMesh) {
		// Voxels são centrados nos inteiros: o chunk vai de origin-0.5 a origin+edge-0.5
		origin := util.ChunkOrigin(marker, edge)
		half := size/2 - 0.5
		center := rl.Vector3{X: origin.X() + half, Y: origin.Y() + half, Z: origin.Z() + half}

		color := rl.NewColor(255, 215, 0, 120)
		if mesh.Handle == 0 {
			color = rl.NewColor(120, 120, 120, 80) // sem geometria
		}
		rl.DrawCubeWires(center, size, size, size, color)
	})
}
