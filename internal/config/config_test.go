package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := Config{
		ScreenWidth:  800,
		ScreenHeight: 600,
		Title:        "Tuxtown",
		PlayerSpeed:  150,
		Map:          "town.json",
		AssetsDir:    "assets",
		TPS:          60,
	}
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TUXTOWN_SCREEN_WIDTH", "1024")
	t.Setenv("TUXTOWN_PLAYER_SPEED", "200.5")
	t.Setenv("TUXTOWN_TELEMETRY", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.ScreenWidth != 1024 {
		t.Errorf("Expected width 1024, got %d", cfg.ScreenWidth)
	}
	if cfg.PlayerSpeed != 200.5 {
		t.Errorf("Expected speed 200.5, got %v", cfg.PlayerSpeed)
	}
	if !cfg.Telemetry {
		t.Error("Expected telemetry to be enabled")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"not a number", "TUXTOWN_SCREEN_WIDTH", "wide"},
		{"zero width", "TUXTOWN_SCREEN_WIDTH", "0"},
		{"negative speed", "TUXTOWN_PLAYER_SPEED", "-1"},
		{"zero tps", "TUXTOWN_TPS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Expected %s=%q to be rejected", tt.key, tt.value)
			}
		})
	}
}
