package app

import (
	"fmt"

	"BlockGame/cliente/internal/appstate"
	"BlockGame/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// draw renderiza o frame.
func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(135, 180, 220, 255))

	a.drawScene()
	a.drawHUD()

	switch a.State.Current() {
	case appstate.Loading:
		a.drawLoadingBar()
	case appstate.Paused:
		a.drawPauseMenu()
	}

	rl.EndDrawing()
}

// drawScene renderiza a cena 3D.
func (a *App) drawScene() {
	rl.BeginMode3D(a.Cam.RLCamera)

	a.renderer.Draw(a.world)
	if a.wireframe {
		a.renderer.DrawChunkBounds(a.world, a.Config.ChunkEdge)
	}

	// Marca o ponto de foco
	f := a.Cam.LookAt()
	rl.DrawCubeWires(rl.Vector3{X: f.X(), Y: f.Y(), Z: f.Z()}, 0.3, 0.3, 0.3, rl.Red)

	rl.EndMode3D()
}

// drawHUD desenha o painel de debug.
func (a *App) drawHUD() {
	if !a.Config.ShowDebugInfo {
		return
	}

	width := int32(340)
	height := int32(230)
	x := int32(rl.GetScreenWidth()) - width - 10
	y := int32(10)

	rl.DrawRectangle(x, y, width, height, rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLines(x, y, width, height, rl.NewColor(50, 50, 50, 255))

	fps := rl.GetFPS()
	fpsColor := rl.Green
	if fps < 30 {
		fpsColor = rl.Red
	} else if fps < 50 {
		fpsColor = rl.Yellow
	}
	rl.DrawText(fmt.Sprintf("FPS: %d", fps), x+10, y+10, 20, fpsColor)

	rl.DrawLine(x+10, y+35, x+width-10, y+35, rl.NewColor(100, 100, 100, 100))

	// Localização
	focus := a.Cam.LookAt()
	chunk := util.WorldToChunk(focus, a.Config.ChunkEdge)
	rl.DrawText("LOCALIZAÇÃO", x+10, y+45, 12, rl.Gray)
	rl.DrawText(fmt.Sprintf("Foco: (%.1f, %.1f, %.1f)", focus.X(), focus.Y(), focus.Z()), x+10, y+60, 16, rl.White)
	rl.DrawText(fmt.Sprintf("Chunk: %s", chunk), x+10, y+80, 14, rl.LightGray)

	rl.DrawLine(x+10, y+100, x+width-10, y+100, rl.NewColor(100, 100, 100, 100))

	// Streaming
	s := a.pipeline.Stats()
	gen, loads, unloads := a.pipeline.Pending()
	st := a.world.Stats()
	rl.DrawText("STREAMING", x+10, y+110, 12, rl.Gray)
	rl.DrawText(fmt.Sprintf("Chunks: %d na cena (%d na GPU) / %d na janela", st.Entities, a.renderer.Loaded(), a.pipeline.Live()), x+10, y+125, 14, rl.LightGray)
	rl.DrawText(fmt.Sprintf("Fila: %d geração | %d carga | %d descarga", gen, loads, unloads), x+10, y+140, 14, rl.LightGray)
	rl.DrawText(fmt.Sprintf("Triângulos: %d (último chunk: %d, %v)", st.Triangles, s.LastTick.Triangles, s.AvgLoad), x+10, y+155, 14, rl.LightGray)
	if s.Failed > 0 {
		rl.DrawText(fmt.Sprintf("Falhas de meshing: %d", s.Failed), x+10, y+170, 14, rl.Red)
	}

	rl.DrawLine(x+10, y+190, x+width-10, y+190, rl.NewColor(100, 100, 100, 100))
	rl.DrawText("WASD: Mover | Q/E: Altura | G: Chunks | P: Projeção", x+10, y+200, 12, rl.SkyBlue)
}

// drawLoadingBar mostra o progresso da janela inicial sobre a cena.
func (a *App) drawLoadingBar() {
	screenWidth := int32(rl.GetScreenWidth())
	screenHeight := int32(rl.GetScreenHeight())

	live := a.pipeline.Live()
	progress := float32(0)
	if live > 0 {
		progress = float32(a.world.Count()) / float32(live)
	}

	barWidth := int32(400)
	barHeight := int32(20)
	barX := (screenWidth - barWidth) / 2
	barY := screenHeight - 60

	rl.DrawRectangle(barX, barY, barWidth, barHeight, rl.DarkGray)
	rl.DrawRectangle(barX, barY, int32(float32(barWidth)*progress), barHeight, rl.Orange)
	rl.DrawRectangleLines(barX, barY, barWidth, barHeight, rl.White)

	status := fmt.Sprintf("Construindo terreno: %d/%d chunks", a.world.Count(), live)
	statusWidth := rl.MeasureText(status, 18)
	rl.DrawText(status, (screenWidth-statusWidth)/2, barY-25, 18, rl.White)
}

// drawPauseMenu desenha o aviso de pausa centralizado.
func (a *App) drawPauseMenu() {
	screenWidth := int32(rl.GetScreenWidth())
	screenHeight := int32(rl.GetScreenHeight())

	rl.DrawRectangle(0, 0, screenWidth, screenHeight, rl.NewColor(0, 0, 0, 150))

	title := "PAUSADO"
	titleWidth := rl.MeasureText(title, 32)
	rl.DrawText(title, (screenWidth-titleWidth)/2, screenHeight/2-40, 32, rl.Gold)

	hint := "ESC para continuar"
	hintWidth := rl.MeasureText(hint, 18)
	rl.DrawText(hint, (screenWidth-hintWidth)/2, screenHeight/2+5, 18, rl.LightGray)
}
