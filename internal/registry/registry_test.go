package registry

import "testing"

func TestNew_RegistersBasketballLeagues(t *testing.T) {
	r := New()

	keys := r.AllLeagueKeys()
	if len(keys) != 2 || keys[0] != "basketball_nba" || keys[1] != "basketball_wnba" {
		t.Fatalf("unexpected league keys: %v", keys)
	}

	m, err := r.GetModule("basketball_nba")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.GetESPNSportPath() != "basketball/nba" {
		t.Errorf("expected ESPN path basketball/nba, got %s", m.GetESPNSportPath())
	}
}

func TestGetModule_Unknown(t *testing.T) {
	if _, err := New().GetModule("curling_world"); err == nil {
		t.Fatal("expected error for unknown league")
	}
}
