package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"BlockGame/cliente/internal/app"
	"BlockGame/shared/config"
	"BlockGame/shared/logger"

	"go.uber.org/zap"
)

func main() {
	// Raylib/OpenGL exige rodar na thread principal do SO
	runtime.LockOSThread()

	configPath := flag.String("config", "", "Arquivo de configuração (padrão: config.json ao lado do executável)")
	flag.String("models", "", "Arquivo de definições dos modelos de bloco")
	flag.Int("radius", 0, "Raio de visão em chunks")
	flag.Int64("seed", 0, "Seed do gerador de terreno")
	headless := flag.Bool("headless", false, "Roda o pipeline sem janela e imprime um resumo")
	ticks := flag.Int("ticks", 600, "Número de ticks no modo headless")
	walk := flag.Float64("walk", 0.5, "Voxels percorridos por tick no modo headless")
	flag.Bool("fullscreen", false, "Iniciar em tela cheia")
	flag.Bool("debug", false, "Mostrar informações de debug e log detalhado")
	flag.Int("width", 0, "Largura da janela")
	flag.Int("height", 0, "Altura da janela")
	flag.Parse()

	fileCfg := config.Load()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Erro na configuração: %v\n", err)
			os.Exit(1)
		}
		fileCfg = loaded
	}

	// Só flags informadas explicitamente sobrescrevem o arquivo
	cfg := fileCfg.WithOverrides(config.OverridesFromFlags(flag.CommandLine))

	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Erro ao iniciar log: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.Named("main")
	log.Info("Iniciando BlockGame",
		zap.Int("chunk_edge", cfg.ChunkEdge),
		zap.Int32("raio", cfg.ViewRadius),
		zap.Int64("seed", cfg.WorldSeed))

	application, err := app.New(cfg)
	if err != nil {
		log.Error("Falha no startup", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	if *headless {
		report := application.RunHeadless(*ticks, float32(*walk))
		if report.Stats.Failed > 0 {
			logger.Sync()
			os.Exit(2)
		}
		return
	}

	if err := application.Run(); err != nil {
		log.Error("Erro na execução", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	// Primeira execução: grava o padrão para o usuário editar. Flags nunca vão
	// para o disco.
	if *configPath == "" {
		if wrote, err := fileCfg.SaveIfMissing(); err != nil {
			log.Warn("Erro ao salvar configurações", zap.Error(err))
		} else if wrote {
			log.Info("config.json padrão criado")
		}
	}
}
