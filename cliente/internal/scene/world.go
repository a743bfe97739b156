package scene

import (
	"errors"
	"fmt"

	"BlockGame/cliente/internal/meshing"
	"BlockGame/shared/util"

	"github.com/mlange-42/ark/ecs"
	"go.uber.org/zap"
)

// ErrUploadFailed indica que o backend gráfico não aceitou a malha.
var ErrUploadFailed = errors.New("falha no upload da malha")

// Handle identifica um recurso de GPU mantido pelo Uploader. Zero significa
// "sem recurso" (chunk sem geometria).
type Handle uint64

// Uploader é o backend gráfico: transforma buffers em recursos desenháveis.
type Uploader interface {
	Upload(mesh meshing.MeshBuffers) (Handle, error)
	Release(h Handle)
}

// ChunkMarker identifica a qual chunk uma entidade pertence.
type ChunkMarker struct {
	Coord util.Coord
}

// ChunkMesh referencia a malha enviada à GPU.
type ChunkMesh struct {
	Handle    Handle
	Vertices  int
	Triangles int
}

// Stats resume o conteúdo da cena.
type Stats struct {
	Entities  int
	Drawable  int
	Vertices  int
	Triangles int
}

// World é a cena viva: uma entidade ECS por chunk carregado, com o marcador e
// a malha. Implementa meshing.Scene.
type World struct {
	world    *ecs.World
	spawn    *ecs.Map2[ChunkMarker, ChunkMesh]
	chunks   *ecs.Filter2[ChunkMarker, ChunkMesh]
	uploader Uploader
	log      *zap.Logger
}

// NewWorld cria a cena. uploader pode ser nil (modo headless): nesse caso as
// entidades são criadas sem recurso de GPU.
func NewWorld(uploader Uploader, log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	w := &World{
		world:    ecs.NewWorld(),
		uploader: uploader,
		log:      log,
	}
	w.spawn = ecs.NewMap2[ChunkMarker, ChunkMesh](w.world)
	w.chunks = ecs.NewFilter2[ChunkMarker, ChunkMesh](w.world)
	return w
}

// InsertChunk envia a malha ao backend e cria a entidade marcada com o chunk.
// Malhas vazias não vão para a GPU, mas a entidade existe para que a remoção
// continue simétrica. Uma entidade anterior do mesmo chunk é substituída.
func (w *World) InsertChunk(marker meshing.WorldMarker, mesh meshing.MeshBuffers) error {
	var handle Handle
	if !mesh.Empty() && w.uploader != nil {
		h, err := w.uploader.Upload(mesh)
		if err != nil {
			return fmt.Errorf("%w: chunk %s: %v", ErrUploadFailed, marker, err)
		}
		handle = h
	}

	if old := w.RemoveChunk(marker); old > 0 {
		w.log.Debug("Chunk substituído", zap.Stringer("chunk", marker))
	}

	w.spawn.NewEntity(
		&ChunkMarker{Coord: marker},
		&ChunkMesh{Handle: handle, Vertices: len(mesh.Vertices), Triangles: mesh.TriangleCount()},
	)
	return nil
}

// RemoveChunk remove todas as entidades marcadas com o chunk e libera seus
// recursos. Retorna quantas foram removidas.
func (w *World) RemoveChunk(marker meshing.WorldMarker) int {
	var doomed []ecs.Entity
	var handles []Handle

	query := w.chunks.Query()
	for query.Next() {
		m, mesh := query.Get()
		if m.Coord == marker {
			doomed = append(doomed, query.Entity())
			handles = append(handles, mesh.Handle)
		}
	}

	// O mundo fica travado durante a query: remover só depois.
	for i, e := range doomed {
		w.world.RemoveEntity(e)
		w.release(handles[i])
	}
	if len(doomed) > 1 {
		w.log.Warn("Mais de uma entidade para o mesmo chunk",
			zap.Stringer("chunk", marker), zap.Int("removidas", len(doomed)))
	}
	return len(doomed)
}

func (w *World) release(h Handle) {
	if h != 0 && w.uploader != nil {
		w.uploader.Release(h)
	}
}

// Each chama fn para cada chunk vivo. fn não deve alterar a cena.
func (w *World) Each(fn func(marker util.Coord, mesh ChunkMesh)) {
	query := w.chunks.Query()
	for query.Next() {
		m, mesh := query.Get()
		fn(m.Coord, *mesh)
	}
}

// Count retorna o número de entidades de chunk.
func (w *World) Count() int {
	n := 0
	w.Each(func(util.Coord, ChunkMesh) { n++ })
	return n
}

// CountMarker retorna quantas entidades carregam o marcador.
func (w *World) CountMarker(marker util.Coord) int {
	n := 0
	w.Each(func(c util.Coord, _ ChunkMesh) {
		if c == marker {
			n++
		}
	})
	return n
}

// Markers retorna os marcadores de todos os chunks vivos.
func (w *World) Markers() []util.Coord {
	var out []util.Coord
	w.Each(func(c util.Coord, _ ChunkMesh) { out = append(out, c) })
	return out
}

// Stats soma vértices e triângulos da cena.
func (w *World) Stats() Stats {
	var s Stats
	w.Each(func(_ util.Coord, mesh ChunkMesh) {
		s.Entities++
		if mesh.Handle != 0 {
			s.Drawable++
		}
		s.Vertices += mesh.Vertices
		s.Triangles += mesh.Triangles
	})
	return s
}

// Clear remove todas as entidades e libera os recursos de GPU.
func (w *World) Clear() int {
	var doomed []ecs.Entity
	var handles []Handle

	query := w.chunks.Query()
	for query.Next() {
		_, mesh := query.Get()
		doomed = append(doomed, query.Entity())
		handles = append(handles, mesh.Handle)
	}
	for i, e := range doomed {
		w.world.RemoveEntity(e)
		w.release(handles[i])
	}
	return len(doomed)
}
