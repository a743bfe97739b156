package app

import (
	"BlockGame/cliente/internal/appstate"
	"BlockGame/cliente/internal/camera"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// updateCamera aplica o input na câmera e interpola o movimento.
func (a *App) updateCamera() {
	dt := rl.GetFrameTime()
	a.Cam.HandleInput(dt)
	a.Cam.Update(dt)

	// Alternar projeção com P
	if rl.IsKeyPressed(rl.KeyP) {
		if a.Cam.Mode == camera.ModePerspective {
			a.Cam.SetMode(camera.ModeOrthographic)
			a.log.Info("Câmera em modo ortográfico")
		} else {
			a.Cam.SetMode(camera.ModePerspective)
			a.log.Info("Câmera em modo perspectiva")
		}
	}
}

// updateInput processa atalhos gerais.
func (a *App) updateInput() {
	if rl.IsKeyPressed(rl.KeyF3) {
		a.Config.ShowDebugInfo = !a.Config.ShowDebugInfo
	}

	// Caixas dos chunks
	if rl.IsKeyPressed(rl.KeyG) {
		a.wireframe = !a.wireframe
	}

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// ESC alterna pausa e volta ao estado anterior (carga ou navegação)
	if rl.IsKeyPressed(rl.KeyEscape) {
		if a.State.TogglePause() == appstate.Paused {
			a.log.Info("Pausado")
		} else {
			a.log.Info("Retomando", zap.Stringer("estado", a.State.Current()))
		}
	}
}
