package appstate

// State representa os estados possíveis da aplicação.
type State int

const (
	Loading State = iota // Janela inicial ainda chegando
	Viewing              // Navegando pelo mundo
	Paused               // Pausado
)

func (s State) String() string {
	switch s {
	case Loading:
		return "carregando"
	case Viewing:
		return "navegando"
	case Paused:
		return "pausado"
	}
	return "desconhecido"
}

// Machine guarda o estado atual e para onde voltar ao sair da pausa.
type Machine struct {
	current State
	resume  State
}

// New começa em Loading.
func New() *Machine {
	return &Machine{current: Loading, resume: Loading}
}

// Current retorna o estado atual.
func (m *Machine) Current() State {
	return m.current
}

// TogglePause pausa lembrando o estado atual, ou retoma o estado lembrado.
func (m *Machine) TogglePause() State {
	if m.current == Paused {
		m.current = m.resume
	} else {
		m.resume = m.current
		m.current = Paused
	}
	return m.current
}

// Settle conclui a carga inicial. Só há transição a partir de Loading.
func (m *Machine) Settle() bool {
	if m.current != Loading {
		return false
	}
	m.current = Viewing
	return true
}
