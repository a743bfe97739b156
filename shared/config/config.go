package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrInvalidConfig indica um valor de configuração fora da faixa aceita.
var ErrInvalidConfig = errors.New("configuração inválida")

// Config armazena as configurações do BlockGame.
type Config struct {
	// Janela
	WindowWidth  int32  `json:"window_width"`
	WindowHeight int32  `json:"window_height"`
	WindowTitle  string `json:"window_title"`
	Fullscreen   bool   `json:"fullscreen"`
	TargetFPS    int32  `json:"target_fps"`

	// Assets
	ModelsPath   string `json:"models_path"`   // Definições dos modelos de bloco (JSON)
	TextureAtlas string `json:"texture_atlas"` // Atlas compartilhado por todos os chunks (opcional)

	// Mundo / Streaming
	ChunkEdge  int   `json:"chunk_edge"`  // Aresta do chunk em voxels
	ViewRadius int32 `json:"view_radius"` // Raio horizontal em chunks
	MinChunkY  int32 `json:"min_chunk_y"`
	MaxChunkY  int32 `json:"max_chunk_y"`
	WorldSeed  int64 `json:"world_seed"`
	GenPerTick int   `json:"gen_per_tick"` // Chunks gerados por frame

	// Log
	LogLevel string `json:"log_level"`
	LogFile  string `json:"log_file"`

	// Debug
	ShowDebugInfo bool `json:"show_debug_info"`
}

// DefaultConfig retorna a configuração padrão.
func DefaultConfig() *Config {
	return &Config{
		WindowWidth:  1280,
		WindowHeight: 720,
		WindowTitle:  "BlockGame",
		Fullscreen:   false,
		TargetFPS:    60,

		ModelsPath:   filepath.Join("assets", "config", "block_models.json"),
		TextureAtlas: "",

		ChunkEdge:  32,
		ViewRadius: 4,
		MinChunkY:  -1,
		MaxChunkY:  1,
		WorldSeed:  12,
		GenPerTick: 4,

		LogLevel: "info",
		LogFile:  "",

		ShowDebugInfo: true,
	}
}

// Validate verifica se os valores fazem sentido antes do loop começar.
func (c *Config) Validate() error {
	switch {
	case c.ChunkEdge < 1:
		return fmt.Errorf("%w: chunk_edge deve ser >= 1 (recebido %d)", ErrInvalidConfig, c.ChunkEdge)
	case c.ViewRadius < 0:
		return fmt.Errorf("%w: view_radius não pode ser negativo (recebido %d)", ErrInvalidConfig, c.ViewRadius)
	case c.MinChunkY > c.MaxChunkY:
		return fmt.Errorf("%w: min_chunk_y (%d) > max_chunk_y (%d)", ErrInvalidConfig, c.MinChunkY, c.MaxChunkY)
	case c.GenPerTick < 1:
		return fmt.Errorf("%w: gen_per_tick deve ser >= 1 (recebido %d)", ErrInvalidConfig, c.GenPerTick)
	case c.ModelsPath == "":
		return fmt.Errorf("%w: models_path vazio", ErrInvalidConfig)
	case c.WindowWidth <= 0 || c.WindowHeight <= 0:
		return fmt.Errorf("%w: janela %dx%d", ErrInvalidConfig, c.WindowWidth, c.WindowHeight)
	}
	return nil
}

// configPath retorna o caminho do arquivo de configuração.
func configPath() string {
	execDir, err := os.Executable()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(filepath.Dir(execDir), "config.json")
}

// Load carrega as configurações do config.json ao lado do executável.
// Se o arquivo não existir ou estiver corrompido, retorna as configurações padrão.
func Load() *Config {
	cfg, err := LoadFile(configPath())
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}

// LoadFile carrega e valida as configurações de um arquivo JSON específico.
// Campos ausentes no arquivo mantêm o valor padrão.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("falha ao ler %s: %w", path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("falha ao parsear %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overrides são valores passados na linha de comando. Campos nil (ou falsos)
// não foram informados e mantêm o valor do arquivo.
type Overrides struct {
	ModelsPath   *string
	ViewRadius   *int32
	WorldSeed    *int64
	WindowWidth  *int32
	WindowHeight *int32
	Fullscreen   bool
	Debug        bool
}

// OverridesFromFlags lê do FlagSet só as flags informadas explicitamente, então
// valores zero (-seed 0, -radius 0) também valem. Flags reconhecidas: models,
// radius, seed, width, height, fullscreen e debug.
func OverridesFromFlags(fs *flag.FlagSet) Overrides {
	var o Overrides
	fs.Visit(func(f *flag.Flag) {
		g, ok := f.Value.(flag.Getter)
		if !ok {
			return
		}
		switch v := g.Get().(type) {
		case string:
			if f.Name == "models" {
				o.ModelsPath = &v
			}
		case int64:
			if f.Name == "seed" {
				o.WorldSeed = &v
			}
		case int:
			n := int32(v)
			switch f.Name {
			case "radius":
				o.ViewRadius = &n
			case "width":
				o.WindowWidth = &n
			case "height":
				o.WindowHeight = &n
			}
		case bool:
			switch f.Name {
			case "fullscreen":
				o.Fullscreen = v
			case "debug":
				o.Debug = v
			}
		}
	})
	return o
}

// WithOverrides retorna uma cópia com os overrides aplicados. O Config
// original não muda, então o que vai para o disco é só o que veio do arquivo.
func (c *Config) WithOverrides(o Overrides) *Config {
	out := *c
	if o.ModelsPath != nil {
		out.ModelsPath = *o.ModelsPath
	}
	if o.ViewRadius != nil {
		out.ViewRadius = *o.ViewRadius
	}
	if o.WorldSeed != nil {
		out.WorldSeed = *o.WorldSeed
	}
	if o.WindowWidth != nil {
		out.WindowWidth = *o.WindowWidth
	}
	if o.WindowHeight != nil {
		out.WindowHeight = *o.WindowHeight
	}
	if o.Fullscreen {
		out.Fullscreen = true
	}
	if o.Debug {
		out.ShowDebugInfo = true
		out.LogLevel = "debug"
	}
	return &out
}

// SaveIfMissing grava o config.json padrão ao lado do executável na primeira
// execução. Um arquivo existente nunca é sobrescrito.
func (c *Config) SaveIfMissing() (bool, error) {
	return c.SaveFileIfMissing(configPath())
}

// SaveFileIfMissing grava em path apenas se o arquivo ainda não existir.
func (c *Config) SaveFileIfMissing(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if err := c.SaveFile(path); err != nil {
		return false, err
	}
	return true, nil
}

// SaveFile salva as configurações em um arquivo JSON.
func (c *Config) SaveFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
