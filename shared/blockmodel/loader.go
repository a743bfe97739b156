package blockmodel

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadFile lê o arquivo de definições e constrói o registro.
// Qualquer falha aqui é fatal para o startup: sem registro válido não há meshing.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("falha ao ler %s: %w", path, err)
	}

	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Parse decodifica o JSON das definições e constrói o registro.
func Parse(data []byte) (*Registry, error) {
	var defs Definitions
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("%w: falha ao parsear JSON: %v", ErrInvalidDefinition, err)
	}
	return Build(defs)
}
