package streaming

import (
	"time"

	"BlockGame/cliente/internal/meshing"
	"BlockGame/shared/mapdata"
	"BlockGame/shared/util"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ChunkSource produz chunks completos para uma posição em espaço de chunks.
// *worldgen.Generator implementa esta interface.
type ChunkSource interface {
	Generate(pos util.Coord) *mapdata.Chunk
}

// Window descreve a região de chunks mantida viva em torno do foco.
type Window struct {
	Edge       int
	Radius     int32
	MinChunkY  int32
	MaxChunkY  int32
	GenPerTick int
}

// Stats acumula contadores do streaming para o HUD e o resumo final.
type Stats struct {
	Generated int
	Loaded    int
	Unloaded  int
	Failed    int
	Stale     int
	LastTick  meshing.TickReport
	// Média dos últimos ticks que carregaram um chunk
	AvgLoad time.Duration
}

// loadSamples é o tamanho da janela de amostras de tempo de carga.
const loadSamples = 64

// Pipeline é o produtor do streamer: acompanha o foco, decide quais chunks
// entram e saem da janela, gera os que entraram (com orçamento por frame) e
// roda o tick do streamer sobre a cena.
type Pipeline struct {
	window   Window
	source   ChunkSource
	tracker  *mapdata.ChunkTracker
	streamer *meshing.Streamer

	// Chunks visíveis aguardando geração, mais próximos primeiro
	genPending *util.UniqueQueue[util.Coord, struct{}]

	center    util.Coord
	hasCenter bool
	stats     Stats
	loadTimes *util.RingBuffer[time.Duration]

	log *zap.Logger
}

// NewPipeline cria o pipeline. GenPerTick menor que 1 vira 1.
func NewPipeline(window Window, source ChunkSource, models meshing.ModelLookup, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	if window.GenPerTick < 1 {
		window.GenPerTick = 1
	}
	if window.Edge < 1 {
		window.Edge = mapdata.DefaultChunkEdge
	}
	return &Pipeline{
		window:     window,
		source:     source,
		tracker:    mapdata.NewChunkTracker(),
		streamer:   meshing.NewStreamer(models, log.Named("streamer")),
		genPending: util.NewUniqueQueue[util.Coord, struct{}](),
		loadTimes:  util.NewRingBuffer[time.Duration](loadSamples),
		log:        log,
	}
}

// Update move a janela para o foco e alimenta as filas: coords que entraram
// vão para a geração, as que saíram viram pedidos de descarga. Depois gera
// até GenPerTick chunks.
func (p *Pipeline) Update(focus mgl32.Vec3) {
	center := util.WorldToChunk(focus, p.window.Edge)

	if !p.hasCenter || center != p.center {
		p.center = center
		p.hasCenter = true

		load, unload := p.tracker.Update(center, p.window.Radius, p.window.MinChunkY, p.window.MaxChunkY)
		for _, c := range load {
			p.genPending.Enqueue(c, struct{}{})
		}
		for _, c := range unload {
			// Ainda não gerado: basta esquecer
			if p.genPending.Remove(c) {
				continue
			}
			p.streamer.EnqueueUnload(c)
		}

		if len(load) > 0 || len(unload) > 0 {
			p.log.Debug("Janela de streaming atualizada",
				zap.Stringer("centro", center),
				zap.Int("entrando", len(load)),
				zap.Int("saindo", len(unload)),
				zap.Int("vivos", p.tracker.Len()))
		}
	}

	p.generate(p.window.GenPerTick)
}

// generate gera até budget chunks pendentes e os entrega ao streamer.
func (p *Pipeline) generate(budget int) {
	for i := 0; i < budget; i++ {
		coord, _, ok := p.genPending.Dequeue()
		if !ok {
			return
		}
		p.streamer.EnqueueLoad(p.source.Generate(coord))
		p.stats.Generated++
	}
}

// Process executa um tick do streamer sobre a cena.
func (p *Pipeline) Process(scene meshing.Scene) meshing.TickReport {
	start := time.Now()
	report, err := p.streamer.Tick(scene)
	elapsed := time.Since(start)
	p.stats.LastTick = report
	p.stats.Unloaded += report.Unloaded

	switch {
	case err != nil:
		// O streamer já registrou a falha. O chunk continua vivo no tracker
		// para não ser gerado de novo enquanto estiver na janela.
		p.stats.Failed++
	case report.Loaded:
		p.stats.Loaded++
		p.loadTimes.Push(elapsed)
		p.stats.AvgLoad = p.averageLoad()
		// Saiu da janela enquanto esperava na fila de carga
		if !p.tracker.IsLive(report.Marker) {
			p.streamer.EnqueueUnload(report.Marker)
			p.stats.Stale++
		}
	}
	return report
}

// averageLoad calcula a média das amostras guardadas.
func (p *Pipeline) averageLoad() time.Duration {
	n := p.loadTimes.Len()
	if n == 0 {
		return 0
	}
	var total time.Duration
	p.loadTimes.Each(func(d time.Duration) { total += d })
	return total / time.Duration(n)
}

// Settled indica que tudo o que a janela atual pede já foi gerado e inserido.
func (p *Pipeline) Settled() bool {
	return p.hasCenter && p.genPending.Len() == 0 && p.streamer.Idle()
}

// Center retorna o chunk do foco atual.
func (p *Pipeline) Center() util.Coord {
	return p.center
}

// Pending retorna quantos chunks aguardam geração, carga e descarga.
func (p *Pipeline) Pending() (generate, loads, unloads int) {
	loads, unloads = p.streamer.Pending()
	return p.genPending.Len(), loads, unloads
}

// Live retorna quantos chunks estão na janela.
func (p *Pipeline) Live() int {
	return p.tracker.Len()
}

// Stats retorna os contadores acumulados.
func (p *Pipeline) Stats() Stats {
	return p.stats
}

// Simulate roda ticks sem janela: a cada tick move o foco por step, atualiza a
// janela e processa a cena. Usado pelo modo headless.
func (p *Pipeline) Simulate(scene meshing.Scene, focus, step mgl32.Vec3, ticks int) Stats {
	for i := 0; i < ticks; i++ {
		p.Update(focus)
		p.Process(scene)
		focus = focus.Add(step)
	}
	return p.stats
}
