package records

import "testing"

func TestTargetCatalog(t *testing.T) {
	if len(Targets) != 5 {
		t.Fatalf("len(Targets) = %d, want 5", len(Targets))
	}

	wantMeters := map[string]float64{
		"5k":       5000,
		"10k":      10000,
		"semi":     21097.5,
		"30k":      30000,
		"marathon": 42195,
	}

	for key, meters := range wantMeters {
		target, ok := TargetByKey(key)
		if !ok {
			t.Errorf("TargetByKey(%q) missing", key)
			continue
		}
		if target.Meters != meters {
			t.Errorf("TargetByKey(%q).Meters = %v, want %v", key, target.Meters, meters)
		}
		if target.Km*1000 != meters {
			t.Errorf("target %q Km/Meters mismatch: %v km vs %v m", key, target.Km, meters)
		}
	}

	if _, ok := TargetByKey("100k"); ok {
		t.Error("TargetByKey(100k) should not exist")
	}
}
