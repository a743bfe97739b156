package streaming

import (
	"testing"

	"BlockGame/cliente/internal/scene"
	"BlockGame/shared/blockmodel"
	"BlockGame/shared/mapdata"
	"BlockGame/shared/util"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap/zaptest"
)

const testEdge = 2

// stoneSource gera chunks com um único bloco de pedra; coords em bad recebem
// um bloco sem modelo.
type stoneSource struct {
	bad   map[util.Coord]bool
	calls int
}

func (s *stoneSource) Generate(pos util.Coord) *mapdata.Chunk {
	s.calls++
	c := mapdata.NewChunk(pos, testEdge)
	c.Set(1, 0)
	if s.bad[pos] {
		c.Set(99, 1)
	}
	return c
}

func testModels(t *testing.T) *blockmodel.Registry {
	t.Helper()
	r, err := blockmodel.Build(blockmodel.Definitions{BlockModels: []blockmodel.ModelDefinition{
		{Name: "air"},
		{Name: "stone", Faces: blockmodel.CubeFaces([2]float32{0, 0}, [2]float32{1, 1})},
	}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return r
}

// focusAt retorna um ponto no meio do chunk informado.
func focusAt(x, z int32) mgl32.Vec3 {
	return mgl32.Vec3{float32(x*testEdge) + 0.5, 0.5, float32(z*testEdge) + 0.5}
}

func newTestPipeline(t *testing.T, radius int32, genPerTick int, src *stoneSource) (*Pipeline, *scene.World) {
	t.Helper()
	w := Window{Edge: testEdge, Radius: radius, MinChunkY: 0, MaxChunkY: 0, GenPerTick: genPerTick}
	return NewPipeline(w, src, testModels(t), zaptest.NewLogger(t)), scene.NewWorld(nil, nil)
}

// settle roda ticks parados no foco até o pipeline esvaziar.
func settle(t *testing.T, p *Pipeline, w *scene.World, focus mgl32.Vec3) int {
	t.Helper()
	for i := 1; i <= 200; i++ {
		p.Update(focus)
		p.Process(w)
		if p.Settled() {
			return i
		}
	}
	t.Fatal("pipeline não estabilizou")
	return 0
}

// checkSceneMatchesWindow confere que a cena tem exatamente um chunk por coord da janela.
func checkSceneMatchesWindow(t *testing.T, w *scene.World, center util.Coord, radius int32) {
	t.Helper()
	seen := make(map[util.Coord]int)
	for _, m := range w.Markers() {
		seen[m]++
		if !mapdata.InWindow(m, center, radius, 0, 0) {
			t.Errorf("chunk %v fora da janela ainda na cena", m)
		}
	}
	for m, n := range seen {
		if n != 1 {
			t.Errorf("chunk %v aparece %d vezes", m, n)
		}
	}
	for x := center.X - radius; x <= center.X+radius; x++ {
		for z := center.Z - radius; z <= center.Z+radius; z++ {
			c := util.NewCoord(x, 0, z)
			if mapdata.InWindow(c, center, radius, 0, 0) && seen[c] == 0 {
				t.Errorf("chunk %v da janela ausente na cena", c)
			}
		}
	}
}

func TestPipelineInitialWindow(t *testing.T) {
	src := &stoneSource{}
	p, w := newTestPipeline(t, 1, 2, src)

	ticks := settle(t, p, w, focusAt(0, 0))

	// 5 chunks, um inserido por tick
	if ticks != 5 {
		t.Errorf("estabilizou em %d ticks, want 5", ticks)
	}
	s := p.Stats()
	if s.Generated != 5 || s.Loaded != 5 || src.calls != 5 || w.Count() != 5 {
		t.Errorf("stats=%+v chamadas=%d cena=%d", s, src.calls, w.Count())
	}
	checkSceneMatchesWindow(t, w, util.NewCoord(0, 0, 0), 1)

	st := w.Stats()
	if st.Vertices != 5*24 || st.Triangles != 5*12 {
		t.Errorf("scene stats = %+v", st)
	}
}

func TestPipelineFollowsFocus(t *testing.T) {
	src := &stoneSource{}
	p, w := newTestPipeline(t, 2, 4, src)
	settle(t, p, w, focusAt(0, 0))

	settle(t, p, w, focusAt(1, 0))
	checkSceneMatchesWindow(t, w, util.NewCoord(1, 0, 0), 2)
	if p.Stats().Unloaded == 0 {
		t.Error("mover o foco deveria descarregar chunks")
	}
	if p.Center() != util.NewCoord(1, 0, 0) {
		t.Errorf("Center = %v", p.Center())
	}
	if p.Live() != w.Count() {
		t.Errorf("tracker tem %d vivos, cena tem %d", p.Live(), w.Count())
	}
}

func TestPipelineSkipsChunksThatLeftBeforeGeneration(t *testing.T) {
	src := &stoneSource{}
	p, w := newTestPipeline(t, 2, 1, src)

	// Um tick na origem e o foco salta para longe
	p.Update(focusAt(0, 0))
	p.Process(w)
	settle(t, p, w, focusAt(50, 50))

	checkSceneMatchesWindow(t, w, util.NewCoord(50, 0, 50), 2)

	// 13 chunks na janela de raio 2; da origem só um foi gerado antes do salto
	if src.calls != 13+1 {
		t.Errorf("Generate chamado %d vezes, want 14", src.calls)
	}
}

func TestPipelineUnloadsStaleLoads(t *testing.T) {
	src := &stoneSource{}
	p, w := newTestPipeline(t, 1, 5, src)

	// Gera a janela inteira de uma vez, mas só um chunk entra na cena
	p.Update(focusAt(0, 0))
	p.Process(w)

	// Os outros quatro estão na fila de carga quando o foco sai
	settle(t, p, w, focusAt(10, 0))
	checkSceneMatchesWindow(t, w, util.NewCoord(10, 0, 0), 1)

	if p.Stats().Stale != 4 {
		t.Errorf("Stale = %d, want 4", p.Stats().Stale)
	}
}

func TestPipelineIsolatesFailedChunk(t *testing.T) {
	bad := util.NewCoord(1, 0, 0)
	src := &stoneSource{bad: map[util.Coord]bool{bad: true}}
	p, w := newTestPipeline(t, 1, 5, src)

	settle(t, p, w, focusAt(0, 0))

	s := p.Stats()
	if s.Failed != 1 || s.Loaded != 4 {
		t.Errorf("stats = %+v, want 1 falha e 4 cargas", s)
	}
	if w.CountMarker(bad) != 0 || w.Count() != 4 {
		t.Errorf("chunk inválido não deveria estar na cena (total %d)", w.Count())
	}

	// Não é gerado de novo enquanto a janela não muda
	for i := 0; i < 5; i++ {
		p.Update(focusAt(0, 0))
		p.Process(w)
	}
	if src.calls != 5 {
		t.Errorf("Generate chamado %d vezes, want 5", src.calls)
	}
}

func TestSimulateWalk(t *testing.T) {
	src := &stoneSource{}
	p, w := newTestPipeline(t, 1, 3, src)

	// Anda meio chunk por tick ao longo de +X
	s := p.Simulate(w, focusAt(0, 0), mgl32.Vec3{1, 0, 0}, 40)
	if s.Loaded == 0 || s.Unloaded == 0 {
		t.Errorf("stats = %+v", s)
	}

	// Parado no fim da caminhada, a cena converge para a janela final
	final := focusAt(0, 0).Add(mgl32.Vec3{40, 0, 0})
	settle(t, p, w, final)
	checkSceneMatchesWindow(t, w, util.WorldToChunk(final, testEdge), 1)
}
