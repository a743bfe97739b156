package app

import (
	"time"

	"BlockGame/cliente/internal/scene"
	"BlockGame/cliente/internal/streaming"
	"BlockGame/shared/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// HeadlessReport resume uma execução sem janela.
type HeadlessReport struct {
	Ticks     int
	Stats     streaming.Stats
	Scene     scene.Stats
	Elapsed   time.Duration
	Settled   bool
	Remaining int
}

// RunHeadless executa o mesmo pipeline do loop gráfico, sem janela nem GPU.
// O foco parte do ponto de spawn e anda walk voxels por tick ao longo de +X.
func (a *App) RunHeadless(ticks int, walk float32) HeadlessReport {
	a.world = scene.NewWorld(nil, logger.Named("scene"))

	start := time.Now()
	stats := a.pipeline.Simulate(a.world, a.spawnPoint(), mgl32.Vec3{walk, 0, 0}, ticks)

	gen, loads, unloads := a.pipeline.Pending()
	report := HeadlessReport{
		Ticks:     ticks,
		Stats:     stats,
		Scene:     a.world.Stats(),
		Elapsed:   time.Since(start),
		Settled:   a.pipeline.Settled(),
		Remaining: gen + loads + unloads,
	}

	a.log.Info("Execução headless concluída",
		zap.Int("ticks", report.Ticks),
		zap.Duration("tempo", report.Elapsed),
		zap.Int("gerados", stats.Generated),
		zap.Int("carregados", stats.Loaded),
		zap.Int("descarregados", stats.Unloaded),
		zap.Int("falhas", stats.Failed),
		zap.Duration("carga_media", stats.AvgLoad),
		zap.Int("entidades", report.Scene.Entities),
		zap.Int("triangulos", report.Scene.Triangles),
		zap.Int("pendentes", report.Remaining))

	a.world.Clear()
	return report
}
