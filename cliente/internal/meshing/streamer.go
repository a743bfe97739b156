package meshing

import (
	"BlockGame/shared/mapdata"
	"BlockGame/shared/util"

	"go.uber.org/zap"
)

// WorldMarker identifica a entidade de um chunk vivo na cena (posição em espaço de chunk).
type WorldMarker = util.Coord

// Scene é o colaborador de renderização que recebe as malhas prontas e os
// pedidos de remoção. É passado explicitamente a cada Tick.
type Scene interface {
	InsertChunk(marker WorldMarker, mesh MeshBuffers) error
	RemoveChunk(marker WorldMarker) int
}

// TickReport resume o trabalho feito por um Tick.
type TickReport struct {
	Loaded    bool
	Marker    WorldMarker
	Vertices  int
	Triangles int
	Unloaded  int
	Failed    bool
}

// Streamer mantém as filas de carga e descarga de chunks e processa um
// volume limitado de trabalho por frame: no máximo um chunk é montado por
// Tick, enquanto todas as remoções pendentes são drenadas.
type Streamer struct {
	models ModelLookup
	log    *zap.Logger

	loads   *util.ThreadSafeQueue[*mapdata.Chunk]
	unloads *util.UniqueQueue[WorldMarker, struct{}]
}

// NewStreamer cria um streamer que monta malhas com os modelos informados.
func NewStreamer(models ModelLookup, log *zap.Logger) *Streamer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Streamer{
		models:  models,
		log:     log,
		loads:   util.NewThreadSafeQueue[*mapdata.Chunk](),
		unloads: util.NewUniqueQueue[WorldMarker, struct{}](),
	}
}

// EnqueueLoad coloca o chunk no fim da fila de carga. O chunk passa a
// pertencer ao streamer: quem chamou não deve mais modificá-lo.
func (s *Streamer) EnqueueLoad(chunk *mapdata.Chunk) {
	if chunk == nil {
		return
	}
	s.loads.Push(chunk)
}

// EnqueueUnload pede a remoção do chunk identificado pelo marcador.
func (s *Streamer) EnqueueUnload(marker WorldMarker) {
	s.unloads.Enqueue(marker, struct{}{})
}

// Tick é o ponto de entrada por frame.
//
//  1. Se há carga pendente, monta o chunk da cabeça da fila e o entrega à cena.
//     O chunk só sai da fila depois da montagem. Em caso de falha ele é
//     descartado e o erro retornado, sem nova tentativa.
//  2. Todas as remoções pendentes são repassadas à cena e a fila é esvaziada.
//
// As remoções são processadas mesmo quando a carga falha.
func (s *Streamer) Tick(scene Scene) (TickReport, error) {
	var report TickReport
	var loadErr error

	if chunk, ok := s.loads.Peek(); ok {
		report.Marker = chunk.Position()

		mesh, err := Assemble(chunk, s.models)
		s.loads.Pop()

		switch {
		case err != nil:
			report.Failed = true
			loadErr = err
			s.log.Error("Falha ao montar chunk, descartado",
				zap.Stringer("chunk", chunk.Position()),
				zap.Error(err))
		default:
			if err := scene.InsertChunk(chunk.Position(), mesh); err != nil {
				report.Failed = true
				loadErr = err
				s.log.Error("Cena recusou chunk",
					zap.Stringer("chunk", chunk.Position()),
					zap.Error(err))
				break
			}
			report.Loaded = true
			report.Vertices = len(mesh.Vertices)
			report.Triangles = mesh.TriangleCount()
			s.log.Debug("Chunk carregado",
				zap.Stringer("chunk", chunk.Position()),
				zap.Int("vertices", report.Vertices),
				zap.Int("triangulos", report.Triangles),
				zap.Int("pendentes", s.loads.Len()))
		}
	}

	for _, marker := range s.unloads.DrainKeys() {
		removed := scene.RemoveChunk(marker)
		report.Unloaded += removed
		if removed == 0 {
			s.log.Debug("Remoção sem entidade correspondente", zap.Stringer("chunk", marker))
		}
	}

	return report, loadErr
}

// Pending retorna quantas cargas e descargas aguardam processamento.
func (s *Streamer) Pending() (loads, unloads int) {
	return s.loads.Len(), s.unloads.Len()
}

// Idle indica que as duas filas estão vazias.
func (s *Streamer) Idle() bool {
	return s.loads.Len() == 0 && s.unloads.Len() == 0
}
