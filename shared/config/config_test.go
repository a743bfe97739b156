package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestLoadFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"chunk_edge": 16, "view_radius": 2}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.ChunkEdge != 16 || cfg.ViewRadius != 2 {
		t.Errorf("valores do arquivo não aplicados: edge=%d radius=%d", cfg.ChunkEdge, cfg.ViewRadius)
	}
	if cfg.WindowTitle != "BlockGame" || cfg.TargetFPS != 60 {
		t.Errorf("valores padrão perdidos: %+v", cfg)
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		invalid bool
	}{
		{"json quebrado", `{"chunk_edge": `, false},
		{"aresta zero", `{"chunk_edge": 0}`, true},
		{"raio negativo", `{"view_radius": -1}`, true},
		{"faixa Y invertida", `{"min_chunk_y": 3, "max_chunk_y": 1}`, true},
		{"sem modelos", `{"models_path": ""}`, true},
		{"geração zerada", `{"gen_per_tick": 0}`, true},
	}

	for _, tt := range tests {
		path := filepath.Join(dir, tt.name+".json")
		if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
			t.Fatal(err)
		}
		_, err := LoadFile(path)
		if err == nil {
			t.Errorf("%s: LoadFile deveria falhar", tt.name)
			continue
		}
		if got := errors.Is(err, ErrInvalidConfig); got != tt.invalid {
			t.Errorf("%s: errors.Is(err, ErrInvalidConfig) = %v, want %v (%v)", tt.name, got, tt.invalid, err)
		}
	}

	if _, err := LoadFile(filepath.Join(dir, "nao_existe.json")); err == nil {
		t.Error("LoadFile de arquivo inexistente deveria falhar")
	}
}

func TestSaveFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.WorldSeed = 99
	cfg.ViewRadius = 7

	if err := cfg.SaveFile(path); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}
	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("config carregada = %+v, want %+v", loaded, cfg)
	}
}

func TestWithOverrides(t *testing.T) {
	base := DefaultConfig()
	base.WorldSeed = 1234

	models := "outro.json"
	radius := int32(2)
	seed := int64(0)
	got := base.WithOverrides(Overrides{
		ModelsPath: &models,
		ViewRadius: &radius,
		WorldSeed:  &seed,
		Debug:      true,
	})

	if got.ModelsPath != models || got.ViewRadius != 2 || got.WorldSeed != 0 {
		t.Errorf("overrides não aplicados: %+v", got)
	}
	if got.LogLevel != "debug" || !got.ShowDebugInfo {
		t.Errorf("debug não aplicado: log=%q hud=%v", got.LogLevel, got.ShowDebugInfo)
	}

	// a base continua igual ao que veio do disco
	want := DefaultConfig()
	want.WorldSeed = 1234
	if *base != *want {
		t.Errorf("base alterada: %+v, want %+v", base, want)
	}

	// sem overrides, cópia idêntica
	if same := base.WithOverrides(Overrides{}); *same != *base || same == base {
		t.Errorf("WithOverrides vazio = %+v", same)
	}
}

func TestSaveFileIfMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	first := DefaultConfig()
	first.WorldSeed = 7
	wrote, err := first.SaveFileIfMissing(path)
	if err != nil || !wrote {
		t.Fatalf("primeira gravação: wrote=%v err=%v", wrote, err)
	}

	second := first.WithOverrides(Overrides{Debug: true})
	wrote, err = second.SaveFileIfMissing(path)
	if err != nil || wrote {
		t.Fatalf("arquivo existente foi sobrescrito: wrote=%v err=%v", wrote, err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.LogLevel != first.LogLevel || loaded.WorldSeed != 7 {
		t.Errorf("config em disco = %+v, want %+v", loaded, first)
	}
}

func TestOverridesFromFlags(t *testing.T) {
	newFlags := func() *flag.FlagSet {
		fs := flag.NewFlagSet("cliente", flag.ContinueOnError)
		fs.String("models", "", "")
		fs.Int("radius", 0, "")
		fs.Int64("seed", 0, "")
		fs.Int("width", 0, "")
		fs.Int("height", 0, "")
		fs.Bool("fullscreen", false, "")
		fs.Bool("debug", false, "")
		fs.Int("ticks", 600, "")
		return fs
	}

	base := DefaultConfig()
	base.WorldSeed = 1234
	base.ViewRadius = 5

	tests := []struct {
		name   string
		args   []string
		seed   int64
		radius int32
		debug  bool
	}{
		{"sem flags", nil, 1234, 5, false},
		{"seed zero explícita", []string{"-seed", "0"}, 0, 5, false},
		{"raio zero explícito", []string{"-radius", "0"}, 1234, 0, false},
		{"outras flags não mexem", []string{"-ticks", "10", "-debug"}, 1234, 5, true},
	}

	for _, tt := range tests {
		fs := newFlags()
		if err := fs.Parse(tt.args); err != nil {
			t.Fatalf("%s: Parse: %v", tt.name, err)
		}
		got := base.WithOverrides(OverridesFromFlags(fs))
		if got.WorldSeed != tt.seed || got.ViewRadius != tt.radius {
			t.Errorf("%s: seed=%d raio=%d, want seed=%d raio=%d",
				tt.name, got.WorldSeed, got.ViewRadius, tt.seed, tt.radius)
		}
		if tt.debug && got.LogLevel != "debug" {
			t.Errorf("%s: LogLevel = %q", tt.name, got.LogLevel)
		}
		if !tt.debug && got.LogLevel != base.LogLevel {
			t.Errorf("%s: LogLevel = %q, want %q", tt.name, got.LogLevel, base.LogLevel)
		}
	}
}
