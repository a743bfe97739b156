package mapdata

import (
	"sort"
	"sync"

	"BlockGame/shared/util"
)

// ChunkTracker lembra quais chunks estão vivos na cena e calcula, a cada
// mudança de centro, quais precisam entrar e quais precisam sair.
// Ele não guarda voxels: o chunk é descartado depois do meshing.
type ChunkTracker struct {
	mu   sync.RWMutex
	live map[util.Coord]bool
}

// NewChunkTracker cria um tracker vazio.
func NewChunkTracker() *ChunkTracker {
	return &ChunkTracker{
		live: make(map[util.Coord]bool),
	}
}

// InWindow verifica se um chunk está dentro da janela de visão: um cilindro de
// raio horizontal radius (em chunks) ao redor do centro, limitado em Y por [minY, maxY].
func InWindow(coord, center util.Coord, radius, minY, maxY int32) bool {
	if coord.Y < minY || coord.Y > maxY {
		return false
	}
	dx := util.Abs(coord.X - center.X)
	dz := util.Abs(coord.Z - center.Z)
	if dx > radius || dz > radius {
		return false
	}
	return int64(dx)*int64(dx)+int64(dz)*int64(dz) <= int64(radius)*int64(radius)
}

// Update recalcula a janela ao redor de center.
// load contém os chunks que acabaram de entrar (mais próximos primeiro) e já
// passam a ser considerados vivos; unload contém os que saíram e são esquecidos.
func (t *ChunkTracker) Update(center util.Coord, radius, minY, maxY int32) (load, unload []util.Coord) {
	t.mu.Lock()
	defer t.mu.Unlock()

	radius = util.Max(radius, 0)
	for x := center.X - radius; x <= center.X+radius; x++ {
		for z := center.Z - radius; z <= center.Z+radius; z++ {
			for y := minY; y <= maxY; y++ {
				coord := util.NewCoord(x, y, z)
				if !InWindow(coord, center, radius, minY, maxY) || t.live[coord] {
					continue
				}
				load = append(load, coord)
			}
		}
	}

	for coord := range t.live {
		if !InWindow(coord, center, radius, minY, maxY) {
			unload = append(unload, coord)
		}
	}

	for _, coord := range load {
		t.live[coord] = true
	}
	for _, coord := range unload {
		delete(t.live, coord)
	}

	sortByDistance(load, center)
	sortByDistance(unload, center)
	return load, unload
}

// IsLive verifica se o chunk está marcado como vivo.
func (t *ChunkTracker) IsLive(coord util.Coord) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.live[coord]
}

// Len retorna quantos chunks estão vivos.
func (t *ChunkTracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.live)
}

// sortByDistance ordena pela distância horizontal ao centro; empates por Y, X e Z
// para que a ordem seja determinística.
func sortByDistance(coords []util.Coord, center util.Coord) {
	sort.Slice(coords, func(i, j int) bool {
		a, b := coords[i], coords[j]
		da := horizontalDistSq(a, center)
		db := horizontalDistSq(b, center)
		if da != db {
			return da < db
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Z < b.Z
	})
}

func horizontalDistSq(c, center util.Coord) int64 {
	flat := util.NewCoord(c.X, center.Y, c.Z)
	return flat.DistSq(center)
}
