package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("DB_NAME", "craft")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("ARRIVAL_DELAY", "5s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OTPTTL != 24*time.Hour {
		t.Errorf("OTPTTL = %v, want 24h", cfg.OTPTTL)
	}
	if cfg.JWTTTL != 7*24*time.Hour {
		t.Errorf("JWTTTL = %v, want 7 days", cfg.JWTTTL)
	}
	if cfg.DefaultDistrict != "Ernakulam" {
		t.Errorf("DefaultDistrict = %q", cfg.DefaultDistrict)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.ArrivalDelay != 5*time.Second {
		t.Errorf("ArrivalDelay = %v", cfg.ArrivalDelay)
	}
}

func TestLoadRequiresMongo(t *testing.T) {
	t.Setenv("MONGO_URI", "")
	t.Setenv("JWT_SECRET", "x")
	if _, err := Load(); err == nil {
		t.Fatal("expected error when MONGO_URI is missing")
	}
}

func TestGetEnvFallback(t *testing.T) {
	t.Setenv("CRAFT_UNSET_KEY", "")
	if got := GetEnv("CRAFT_UNSET_KEY", "fallback"); got != "fallback" {
		t.Errorf("GetEnv = %q", got)
	}
}
