package appstate

import "testing"

func TestPauseResumesPreviousState(t *testing.T) {
	tests := []struct {
		name     string
		settled  bool
		want     State
		settleOK bool
	}{
		{"pausa durante a carga", false, Loading, true},
		{"pausa navegando", true, Viewing, false},
	}

	for _, tt := range tests {
		m := New()
		if tt.settled {
			m.Settle()
		}

		if got := m.TogglePause(); got != Paused {
			t.Fatalf("%s: TogglePause = %v, want %v", tt.name, got, Paused)
		}
		if got := m.TogglePause(); got != tt.want {
			t.Errorf("%s: retomou em %v, want %v", tt.name, got, tt.want)
		}
		if got := m.Settle(); got != tt.settleOK {
			t.Errorf("%s: Settle = %v, want %v", tt.name, got, tt.settleOK)
		}
		if m.Current() != Viewing {
			t.Errorf("%s: estado final %v, want %v", tt.name, m.Current(), Viewing)
		}
	}
}

func TestSettleOnlyFromLoading(t *testing.T) {
	m := New()
	m.TogglePause()
	if m.Settle() {
		t.Error("Settle não deveria sair da pausa")
	}
	if m.Current() != Paused {
		t.Errorf("Current = %v, want %v", m.Current(), Paused)
	}

	if m.TogglePause(); m.Current() != Loading {
		t.Errorf("retomou em %v, want %v", m.Current(), Loading)
	}
	if !m.Settle() || m.Settle() {
		t.Error("Settle deveria transicionar uma única vez")
	}
}
