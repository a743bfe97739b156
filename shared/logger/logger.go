package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// Log é o logger global da aplicação. Até Init ser chamado ele descarta tudo,
// o que mantém os testes silenciosos.
var Log = zap.NewNop()

// Init configura o logger global com o nível informado ("debug", "info", "warn", "error").
// Se file não for vazio, a saída também vai para o arquivo (além do stderr).
func Init(level string, file string) error {
	atom, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return fmt.Errorf("nível de log inválido %q: %w", level, err)
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = atom
	cfg.DisableStacktrace = true
	if file != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, file)
	}

	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("falha ao construir logger: %w", err)
	}

	Log = l
	return nil
}

// Named retorna um logger filho identificado pelo componente (ex: "streamer").
func Named(component string) *zap.Logger {
	return Log.Named(component)
}

// Sync descarrega buffers pendentes. Erros de sync em stderr são ignorados.
func Sync() {
	_ = Log.Sync()
}
