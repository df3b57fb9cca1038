package config

import (
	"strings"
	"testing"
	"time"
)

func mapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080, ShutdownTimeout: time.Second, RequestTimeout: time.Minute},
		Import:  ImportConfig{MaxFileSize: 1, MaxConcurrent: 1, MaxWaitTime: time.Second, HistorySize: 1},
		Rate:    RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 10},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(mapLookup(nil))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Import.MaxConcurrent != 5 {
		t.Errorf("Import.MaxConcurrent = %d, want %d", cfg.Import.MaxConcurrent, 5)
	}
	if cfg.Import.MaxFileSize != 20971520 {
		t.Errorf("Import.MaxFileSize = %d, want %d", cfg.Import.MaxFileSize, 20971520)
	}
	if cfg.Import.SchemaDir != "" {
		t.Errorf("Import.SchemaDir = %q, want empty", cfg.Import.SchemaDir)
	}
	if cfg.Import.SkipIncompleteJobs {
		t.Error("Import.SkipIncompleteJobs = true, want false")
	}
	if cfg.Rate.RequestsPerMinute != 60 {
		t.Errorf("Rate.RequestsPerMinute = %d, want %d", cfg.Rate.RequestsPerMinute, 60)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	cfg, err := LoadFrom(mapLookup(map[string]string{
		"SERVER_PORT":                 "9090",
		"IMPORT_MAX_CONCURRENT":       "10",
		"IMPORT_SKIP_INCOMPLETE_JOBS": "true",
		"LOG_LEVEL":                   "debug",
	}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Import.MaxConcurrent != 10 {
		t.Errorf("Import.MaxConcurrent = %d, want %d", cfg.Import.MaxConcurrent, 10)
	}
	if !cfg.Import.SkipIncompleteJobs {
		t.Error("Import.SkipIncompleteJobs = false, want true")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	cfg, err := LoadFrom(mapLookup(map[string]string{"PORT": "7000"}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 7000)
	}

	// Primary name wins over the alternate.
	cfg, err = LoadFrom(mapLookup(map[string]string{"PORT": "7000", "SERVER_PORT": "7001"}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Server.Port != 7001 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 7001)
	}
}

func TestLoad_SchemaDirMustExist(t *testing.T) {
	_, err := LoadFrom(mapLookup(map[string]string{"IMPORT_SCHEMA_DIR": "/does/not/exist"}))
	if err == nil {
		t.Fatal("LoadFrom() expected error for missing schema dir")
	}
	if !strings.Contains(err.Error(), "IMPORT_SCHEMA_DIR") {
		t.Errorf("error should mention IMPORT_SCHEMA_DIR: %v", err)
	}

	dir := t.TempDir()
	cfg, err := LoadFrom(mapLookup(map[string]string{"XSD_SCHEMA_DIR": dir}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Import.SchemaDir != dir {
		t.Errorf("Import.SchemaDir = %q, want %q", cfg.Import.SchemaDir, dir)
	}
}

func TestLoad_Duration(t *testing.T) {
	cfg, err := LoadFrom(mapLookup(map[string]string{
		"SERVER_READ_TIMEOUT":  "45s",
		"IMPORT_MAX_WAIT_TIME": "1m30s",
	}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.Import.MaxWaitTime != 90*time.Second {
		t.Errorf("Import.MaxWaitTime = %v, want %v", cfg.Import.MaxWaitTime, 90*time.Second)
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	_, err := LoadFrom(mapLookup(map[string]string{"IMPORT_MAX_CONCURRENT": "many"}))
	if err == nil {
		t.Fatal("LoadFrom() expected error for non-numeric IMPORT_MAX_CONCURRENT")
	}
	if !strings.Contains(err.Error(), "IMPORT_MAX_CONCURRENT") {
		t.Errorf("error should mention IMPORT_MAX_CONCURRENT: %v", err)
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	cfg, err := LoadFrom(mapLookup(map[string]string{
		"TRUSTED_PROXIES": "10.0.0.0/8, 172.16.0.0/12 , 192.168.0.0/16",
	}))
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	expected := []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}
	if len(cfg.Security.TrustedProxies) != len(expected) {
		t.Fatalf("TrustedProxies length = %d, want %d", len(cfg.Security.TrustedProxies), len(expected))
	}
	for i, v := range expected {
		if cfg.Security.TrustedProxies[i] != v {
			t.Errorf("TrustedProxies[%d] = %q, want %q", i, cfg.Security.TrustedProxies[i], v)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"invalid port", func(c *Config) { c.Server.Port = 99999 }, "SERVER_PORT"},
		{"zero max file size", func(c *Config) { c.Import.MaxFileSize = 0 }, "IMPORT_MAX_FILE_SIZE"},
		{"zero concurrency", func(c *Config) { c.Import.MaxConcurrent = 0 }, "IMPORT_MAX_CONCURRENT"},
		{"zero burst", func(c *Config) { c.Rate.Burst = 0 }, "RATE_LIMIT_BURST"},
		{"burst ignored when disabled", func(c *Config) { c.Rate.Enabled = false; c.Rate.Burst = 0 }, ""},
		{"api key required without keys", func(c *Config) { c.Security.RequireAPIKey = true }, "API_KEYS"},
		{"invalid log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"invalid log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error mentioning %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %s: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, want := range []string{"SERVER_PORT", "LOG_FORMAT"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s: %v", want, err)
		}
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func TestConfigString_MasksAPIKeys(t *testing.T) {
	cfg := validConfig()
	cfg.Security.APIKeys = []string{"s3cr3t-key"}

	str := cfg.String()
	if strings.Contains(str, "s3cr3t-key") {
		t.Error("String() should mask API keys")
	}
	if !strings.Contains(str, "MASKED") {
		t.Error("String() should contain MASKED placeholder")
	}
}
