package scene

import (
	"errors"
	"testing"

	"BlockGame/cliente/internal/meshing"
	"BlockGame/shared/util"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap/zaptest"
)

type fakeUploader struct {
	next     Handle
	live     map[Handle]int
	released []Handle
	fail     bool
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{live: make(map[Handle]int)}
}

func (u *fakeUploader) Upload(mesh meshing.MeshBuffers) (Handle, error) {
	if u.fail {
		return 0, errors.New("sem contexto gráfico")
	}
	u.next++
	u.live[u.next] = len(mesh.Vertices)
	return u.next, nil
}

func (u *fakeUploader) Release(h Handle) {
	delete(u.live, h)
	u.released = append(u.released, h)
}

func triangle() meshing.MeshBuffers {
	return meshing.MeshBuffers{
		Vertices: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Normals:  []mgl32.Vec3{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
		UVs:      []mgl32.Vec2{{0, 0}, {1, 0}, {0, 1}},
		Indices:  []uint32{0, 1, 2},
	}
}

func TestInsertAndRemoveByMarker(t *testing.T) {
	up := newFakeUploader()
	w := NewWorld(up, zaptest.NewLogger(t))

	a, b := util.NewCoord(0, 0, 0), util.NewCoord(0, 1, 0)
	if err := w.InsertChunk(a, triangle()); err != nil {
		t.Fatal(err)
	}
	if err := w.InsertChunk(b, triangle()); err != nil {
		t.Fatal(err)
	}

	if w.Count() != 2 || w.CountMarker(a) != 1 || w.CountMarker(b) != 1 {
		t.Fatalf("Count=%d a=%d b=%d", w.Count(), w.CountMarker(a), w.CountMarker(b))
	}

	if n := w.RemoveChunk(a); n != 1 {
		t.Errorf("RemoveChunk(a) = %d, want 1", n)
	}
	if w.CountMarker(a) != 0 || w.CountMarker(b) != 1 {
		t.Errorf("depois da remoção: a=%d b=%d", w.CountMarker(a), w.CountMarker(b))
	}
	if len(up.released) != 1 || up.released[0] != 1 || len(up.live) != 1 {
		t.Errorf("recursos liberados = %v, vivos = %v", up.released, up.live)
	}

	if n := w.RemoveChunk(a); n != 0 {
		t.Errorf("segunda remoção de a = %d, want 0", n)
	}
}

func TestEmptyMeshSkipsUpload(t *testing.T) {
	up := newFakeUploader()
	w := NewWorld(up, nil)

	m := util.NewCoord(3, 0, 3)
	if err := w.InsertChunk(m, meshing.MeshBuffers{}); err != nil {
		t.Fatal(err)
	}
	if up.next != 0 {
		t.Error("malha vazia não deveria ir para a GPU")
	}
	s := w.Stats()
	if s.Entities != 1 || s.Drawable != 0 {
		t.Errorf("Stats = %+v", s)
	}
	if w.RemoveChunk(m) != 1 || len(up.released) != 0 {
		t.Errorf("remoção de chunk vazio: liberados=%v", up.released)
	}
}

func TestUploadFailureSpawnsNothing(t *testing.T) {
	up := newFakeUploader()
	up.fail = true
	w := NewWorld(up, nil)

	err := w.InsertChunk(util.NewCoord(0, 0, 0), triangle())
	if !errors.Is(err, ErrUploadFailed) {
		t.Fatalf("err = %v, want ErrUploadFailed", err)
	}
	if w.Count() != 0 {
		t.Error("nenhuma entidade deveria existir após falha no upload")
	}
}

func TestHeadlessWorld(t *testing.T) {
	w := NewWorld(nil, nil)
	for i := int32(0); i < 4; i++ {
		if err := w.InsertChunk(util.NewCoord(i, 0, 0), triangle()); err != nil {
			t.Fatal(err)
		}
	}

	s := w.Stats()
	if s.Entities != 4 || s.Vertices != 12 || s.Triangles != 4 {
		t.Errorf("Stats = %+v", s)
	}
	if len(w.Markers()) != 4 {
		t.Errorf("Markers = %v", w.Markers())
	}
	if n := w.Clear(); n != 4 || w.Count() != 0 {
		t.Errorf("Clear = %d, Count = %d", n, w.Count())
	}
}

func TestWorldDrivenByStreamer(t *testing.T) {
	up := newFakeUploader()
	w := NewWorld(up, nil)

	var s meshing.Scene = w
	marker := util.NewCoord(1, 1, 1)
	if err := s.InsertChunk(marker, triangle()); err != nil {
		t.Fatal(err)
	}
	if s.RemoveChunk(marker) != 1 || len(up.live) != 0 {
		t.Error("World deveria funcionar como meshing.Scene")
	}
}

func TestInsertReplacesSameMarker(t *testing.T) {
	up := newFakeUploader()
	w := NewWorld(up, nil)
	m := util.NewCoord(2, 0, -2)

	for i := 0; i < 3; i++ {
		if err := w.InsertChunk(m, triangle()); err != nil {
			t.Fatal(err)
		}
	}
	if w.CountMarker(m) != 1 {
		t.Errorf("CountMarker = %d, want 1", w.CountMarker(m))
	}
	if len(up.live) != 1 || len(up.released) != 2 {
		t.Errorf("vivos=%v liberados=%v", up.live, up.released)
	}
}
