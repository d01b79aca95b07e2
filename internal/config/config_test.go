package config

import "testing"

// clearEnv blanks every variable Load reads so host values cannot leak in.
// getEnv and getEnvInt treat an empty value as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "DB_TIMEZONE",
		"DB_PORT", "DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME_MIN",
		"PORT", "APP_ENV", "JWT_SECRET", "JWT_TTL_MIN",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "unit-test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DB.Host != "postgres" || cfg.DB.Port != 5432 || cfg.DB.Name != "hod_appointments" {
		t.Errorf("DB defaults = %+v", cfg.DB)
	}
	if cfg.DB.MaxOpenConns != 10 || cfg.DB.MaxIdleConns != 5 || cfg.DB.ConnMaxLifeTime != 30 {
		t.Errorf("DB pool defaults = %+v", cfg.DB)
	}
	if cfg.HTTP.Port != "5000" || cfg.HTTP.Environment != "development" {
		t.Errorf("HTTP defaults = %+v", cfg.HTTP)
	}
	if cfg.JWT.Secret != "unit-test-secret" || cfg.JWT.TokenTTL != 7*24*60 {
		t.Errorf("JWT config = %+v", cfg.JWT)
	}
}

func TestLoadRequiresSecret(t *testing.T) {
	clearEnv(t)

	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded without JWT_SECRET")
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "unit-test-secret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("PORT", "8081")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_TTL_MIN", "15")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.DB.Host != "db.internal" || cfg.DB.Port != 6543 {
		t.Errorf("DB overrides = %+v", cfg.DB)
	}
	if cfg.HTTP.Port != "8081" || cfg.HTTP.Environment != "production" {
		t.Errorf("HTTP overrides = %+v", cfg.HTTP)
	}
	if cfg.JWT.TokenTTL != 15 {
		t.Errorf("TokenTTL = %d, want 15", cfg.JWT.TokenTTL)
	}
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")

	if got := getEnvInt("DB_PORT", 5432); got != 5432 {
		t.Errorf("getEnvInt = %d, want default 5432", got)
	}
}
