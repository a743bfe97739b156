package app

import (
	"fmt"

	"BlockGame/cliente/internal/appstate"
	"BlockGame/cliente/internal/camera"
	"BlockGame/cliente/internal/render"
	"BlockGame/cliente/internal/scene"
	"BlockGame/cliente/internal/streaming"
	"BlockGame/cliente/internal/worldgen"
	"BlockGame/shared/blockmodel"
	"BlockGame/shared/config"
	"BlockGame/shared/logger"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// App liga o registro de modelos, o gerador de terreno, o pipeline de
// streaming e a cena.
type App struct {
	Config *config.Config
	State  *appstate.Machine

	Cam *camera.CameraController

	models    *blockmodel.Registry
	generator *worldgen.Generator
	pipeline  *streaming.Pipeline
	world     *scene.World
	renderer  *render.Renderer

	frameCount int
	wireframe  bool

	log *zap.Logger
}

// New carrega os modelos de bloco e prepara o pipeline. Erros aqui são de
// startup: nenhum streaming começa sem registro válido.
func New(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.Named("app")

	models, err := blockmodel.LoadFile(cfg.ModelsPath)
	if err != nil {
		return nil, fmt.Errorf("falha ao carregar modelos de bloco: %w", err)
	}
	log.Info("Modelos de bloco carregados",
		zap.String("path", cfg.ModelsPath),
		zap.Int("modelos", models.Len()))

	gen, err := worldgen.NewGeneratorFromRegistry(cfg.WorldSeed, cfg.ChunkEdge, models)
	if err != nil {
		return nil, err
	}
	log.Debug("Paleta do terreno", zap.Any("paleta", gen.Palette()))

	window := streaming.Window{
		Edge:       cfg.ChunkEdge,
		Radius:     cfg.ViewRadius,
		MinChunkY:  cfg.MinChunkY,
		MaxChunkY:  cfg.MaxChunkY,
		GenPerTick: cfg.GenPerTick,
	}

	return &App{
		Config:    cfg,
		State:     appstate.New(),
		models:    models,
		generator: gen,
		pipeline:  streaming.NewPipeline(window, gen, models, logger.Named("streaming")),
		log:       log,
	}, nil
}

// spawnPoint retorna um ponto de foco logo acima do terreno na origem.
func (a *App) spawnPoint() mgl32.Vec3 {
	h := a.generator.Height(0, 0)
	return mgl32.Vec3{0.5, float32(h) + 2, 0.5}
}

// Run abre a janela e executa o loop principal até a janela fechar.
func (a *App) Run() error {
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(a.Config.WindowWidth, a.Config.WindowHeight, a.Config.WindowTitle)
	if !rl.IsWindowReady() {
		return fmt.Errorf("falha ao abrir a janela %dx%d", a.Config.WindowWidth, a.Config.WindowHeight)
	}
	rl.SetTraceLogLevel(rl.LogWarning) // Reduz ruído no terminal

	if a.Config.Fullscreen {
		rl.ToggleFullscreen()
	}
	rl.SetTargetFPS(a.Config.TargetFPS)
	rl.SetExitKey(0) // ESC pausa em vez de fechar

	a.renderer = render.NewRenderer(a.Config.TextureAtlas, logger.Named("render"))
	a.world = scene.NewWorld(a.renderer, logger.Named("scene"))
	a.Cam = camera.New(a.spawnPoint())

	a.log.Info("Janela inicializada",
		zap.Int32("largura", a.Config.WindowWidth),
		zap.Int32("altura", a.Config.WindowHeight))

	for !rl.WindowShouldClose() {
		a.update()
		a.draw()
	}

	a.shutdown()
	rl.CloseWindow()
	return nil
}

// update atualiza a lógica a cada frame.
func (a *App) update() {
	a.frameCount++

	switch a.State.Current() {
	case appstate.Loading, appstate.Viewing:
		a.updateCamera()
		a.updateInput()
		a.pipeline.Update(a.Cam.LookAt())
		a.pipeline.Process(a.world)

		if a.pipeline.Settled() && a.State.Settle() {
			a.log.Info("Carga inicial concluída", zap.Int("chunks", a.world.Count()))
		}
	case appstate.Paused:
		a.updateInput() // Permite detectar ESC para despausar
	}
}

// shutdown libera a cena e os recursos de GPU.
func (a *App) shutdown() {
	s := a.pipeline.Stats()
	a.log.Info("Finalizando aplicação",
		zap.Int("gerados", s.Generated),
		zap.Int("carregados", s.Loaded),
		zap.Int("descarregados", s.Unloaded),
		zap.Int("falhas", s.Failed))

	if a.world != nil {
		a.world.Clear()
	}
	if a.renderer != nil {
		a.renderer.Unload()
	}
}
