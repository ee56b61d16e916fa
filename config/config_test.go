package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 5200 {
		t.Fatalf("port = %d, want 5200", cfg.Port)
	}
	if cfg.DatabaseURL != "league.db" {
		t.Fatalf("database url = %q, want %q", cfg.DatabaseURL, "league.db")
	}
	if cfg.StatsExportInterval != 0 {
		t.Fatalf("stats export interval = %v, want 0", cfg.StatsExportInterval)
	}
	if cfg.NATS.SubjectPrefix != "league.events" {
		t.Fatalf("nats subject prefix = %q", cfg.NATS.SubjectPrefix)
	}
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	body := "DB_DRIVER=postgres\nDATABASE_URL=postgres://league@localhost/league\nALLOWED_ORIGINS=http://a.test, http://b.test\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	// godotenv never overrides variables that are already set.
	for _, k := range []string{"DB_DRIVER", "DATABASE_URL", "ALLOWED_ORIGINS"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DatabaseURL != "postgres://league@localhost/league" {
		t.Fatalf("database url = %q", cfg.DatabaseURL)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("allowed origins = %v, want 2 entries", cfg.AllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "postgres without dsn", cfg: Config{DBDriver: "postgres"}, wantErr: true},
		{name: "unknown driver", cfg: Config{DBDriver: "mysql", DatabaseURL: "x"}, wantErr: true},
		{name: "sqlite", cfg: Config{DBDriver: "SQLite"}},
		{
			name:    "export without bucket",
			cfg:     Config{DBDriver: "sqlite", StatsExportInterval: time.Minute},
			wantErr: true,
		},
		{
			name: "export with bucket",
			cfg: Config{
				DBDriver:            "sqlite",
				StatsExportInterval: time.Minute,
				R2:                  R2Config{AccountID: "acc", Bucket: "stats"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
