package camera

import (
	"math"

	"BlockGame/shared/util"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Mode define o tipo de projeção.
type Mode int

const (
	ModePerspective Mode = iota
	ModeOrthographic
)

// CameraController é uma câmera orbital: gira em torno de um ponto de foco
// que o jogador move pelo mundo. O ponto de foco decide quais chunks são
// carregados.
type CameraController struct {
	RLCamera rl.Camera3D

	Mode         Mode
	MinZoom      float32
	MaxZoom      float32
	MoveSpeed    float32
	ClimbSpeed   float32
	RotateSpeed  float32
	ZoomSpeed    float32
	SmoothFactor float32 // 0.0 a 1.0 (quanto menor, mais suave)

	// Estado alvo
	TargetLookAt mgl32.Vec3
	TargetZoom   float32
	AngleY       float32 // azimute (radianos)
	AngleX       float32 // elevação (radianos, negativo = olhando para baixo)

	// Estado interpolado
	CurrentLookAt mgl32.Vec3
	CurrentZoom   float32
}

// New cria a câmera focada em target.
func New(target mgl32.Vec3) *CameraController {
	c := &CameraController{
		Mode:         ModePerspective,
		MinZoom:      4.0,
		MaxZoom:      160.0,
		MoveSpeed:    30.0,
		ClimbSpeed:   16.0,
		RotateSpeed:  2.0,
		ZoomSpeed:    6.0,
		SmoothFactor: 0.15,

		TargetLookAt: target,
		TargetZoom:   40.0,
		AngleY:       mgl32.DegToRad(45),
		AngleX:       mgl32.DegToRad(-35),
	}
	c.CurrentLookAt = c.TargetLookAt
	c.CurrentZoom = c.TargetZoom

	c.RLCamera = rl.Camera3D{
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       60.0,
		Projection: rl.CameraPerspective,
	}
	c.apply()
	return c
}

// LookAt retorna o ponto de foco atual em coordenadas de mundo.
func (c *CameraController) LookAt() mgl32.Vec3 {
	return c.CurrentLookAt
}

// Update interpola em direção ao estado alvo. Deve ser chamado a cada frame.
func (c *CameraController) Update(dt float32) {
	factor := c.SmoothFactor * 60.0 * dt // Normaliza para 60 FPS
	if factor > 1.0 {
		factor = 1.0
	}

	c.CurrentLookAt = c.CurrentLookAt.Add(c.TargetLookAt.Sub(c.CurrentLookAt).Mul(factor))
	c.CurrentZoom = util.Lerp(c.CurrentZoom, c.TargetZoom, factor)
	c.apply()
}

// apply recalcula a câmera raylib a partir dos ângulos e do zoom.
func (c *CameraController) apply() {
	dist := c.CurrentZoom
	if c.Mode == ModeOrthographic {
		// No ortográfico o zoom é a escala (Fovy); a câmera fica longe para não cortar geometria
		c.RLCamera.Fovy = c.CurrentZoom
		c.RLCamera.Projection = rl.CameraOrthographic
		dist = 200.0
	} else {
		c.RLCamera.Fovy = 60.0
		c.RLCamera.Projection = rl.CameraPerspective
	}

	offset := orbitOffset(dist, c.AngleX, c.AngleY)
	pos := c.CurrentLookAt.Add(offset)

	c.RLCamera.Position = rl.Vector3{X: pos.X(), Y: pos.Y(), Z: pos.Z()}
	c.RLCamera.Target = rl.Vector3{X: c.CurrentLookAt.X(), Y: c.CurrentLookAt.Y(), Z: c.CurrentLookAt.Z()}
}

// orbitOffset converte coordenadas esféricas (distância, elevação, azimute) em
// deslocamento cartesiano a partir do foco. Y é up na raylib.
func orbitOffset(dist, angleX, angleY float32) mgl32.Vec3 {
	cosX := float32(math.Cos(float64(angleX)))
	sinX := float32(math.Sin(float64(angleX)))
	cosY := float32(math.Cos(float64(angleY)))
	sinY := float32(math.Sin(float64(angleY)))

	return mgl32.Vec3{
		dist * cosX * sinY,
		dist * -sinX,
		dist * cosX * cosY,
	}
}

// SetMode alterna entre perspectiva e ortográfica.
func (c *CameraController) SetMode(mode Mode) {
	c.Mode = mode
	c.apply()
}

// HandleInput processa mouse e teclado. Retorna true se houve movimento.
func (c *CameraController) HandleInput(dt float32) bool {
	moved := false

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		moved = true
		c.TargetZoom = mgl32.Clamp(c.TargetZoom-wheel*c.ZoomSpeed, c.MinZoom, c.MaxZoom)
	}

	// Orbit com o botão esquerdo
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			moved = true
		}
		c.AngleY -= delta.X * c.RotateSpeed * 0.005
		c.AngleX -= delta.Y * c.RotateSpeed * 0.005
		c.AngleX = mgl32.Clamp(c.AngleX, mgl32.DegToRad(-89), mgl32.DegToRad(-5))
	}

	// WASD relativo à câmera, projetado no plano XZ
	forward := orbitOffset(1, c.AngleX, c.AngleY).Mul(-1)
	forward[1] = 0
	if forward.Len() > 0 {
		forward = forward.Normalize()
	}
	right := forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()

	move := mgl32.Vec3{}
	if rl.IsKeyDown(rl.KeyW) {
		move = move.Add(forward)
	}
	if rl.IsKeyDown(rl.KeyS) {
		move = move.Sub(forward)
	}
	if rl.IsKeyDown(rl.KeyD) {
		move = move.Add(right)
	}
	if rl.IsKeyDown(rl.KeyA) {
		move = move.Sub(right)
	}

	// Velocidade proporcional ao zoom: quanto mais longe, mais rápido
	if move.Len() > 0 {
		speed := c.MoveSpeed * (c.CurrentZoom / 40.0) * dt
		c.TargetLookAt = c.TargetLookAt.Add(move.Normalize().Mul(speed))
		moved = true
	}

	// Subir/descer o foco com E/Q
	if rl.IsKeyDown(rl.KeyE) {
		c.TargetLookAt[1] += c.ClimbSpeed * dt
		moved = true
	}
	if rl.IsKeyDown(rl.KeyQ) {
		c.TargetLookAt[1] -= c.ClimbSpeed * dt
		moved = true
	}

	return moved
}
