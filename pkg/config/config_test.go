package config

import (
	"testing"

	"rentroll-reconciliation/internal/constants"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.MatchThreshold != 0.7 {
		t.Errorf("MatchThreshold = %v, want 0.7", cfg.MatchThreshold)
	}
	if cfg.AddressWeight != constants.AddressWeight ||
		cfg.FloorDoorWeight != constants.FloorDoorWeight ||
		cfg.SizeWeight != constants.SizeWeight {
		t.Errorf("weights = %v/%v/%v, want defaults",
			cfg.AddressWeight, cfg.FloorDoorWeight, cfg.SizeWeight)
	}
}

func TestLoad_WeightOverride(t *testing.T) {
	t.Setenv("ADDRESS_WEIGHT", "0.5")
	t.Setenv("FLOOR_DOOR_WEIGHT", "0.25")
	t.Setenv("SIZE_WEIGHT", "0.25")

	cfg := Load()

	if cfg.AddressWeight != 0.5 || cfg.FloorDoorWeight != 0.25 || cfg.SizeWeight != 0.25 {
		t.Errorf("weights = %v/%v/%v, want 0.5/0.25/0.25",
			cfg.AddressWeight, cfg.FloorDoorWeight, cfg.SizeWeight)
	}
}

func TestLoad_WeightsFallBackAsTrio(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unparseable weight", map[string]string{"SIZE_WEIGHT": "abc"}},
		{"zero weight", map[string]string{"FLOOR_DOOR_WEIGHT": "0"}},
		{"sum not one", map[string]string{"ADDRESS_WEIGHT": "0.9"}},
		{"negative weight", map[string]string{
			"ADDRESS_WEIGHT": "1.4", "FLOOR_DOOR_WEIGHT": "-0.7", "SIZE_WEIGHT": "0.3",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg := Load()

			if cfg.AddressWeight != constants.AddressWeight ||
				cfg.FloorDoorWeight != constants.FloorDoorWeight ||
				cfg.SizeWeight != constants.SizeWeight {
				t.Errorf("weights = %v/%v/%v, want defaults for partial override",
					cfg.AddressWeight, cfg.FloorDoorWeight, cfg.SizeWeight)
			}
		})
	}
}
