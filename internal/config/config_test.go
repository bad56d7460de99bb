package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP: HTTPConfig{Port: 8000},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.HTTP.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.HTTP.Port)
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("expected default driver memory, got %q", cfg.Storage.Driver)
	}
	if cfg.OpenAI.Model != "gpt-3.5-turbo" {
		t.Errorf("expected default model gpt-3.5-turbo, got %q", cfg.OpenAI.Model)
	}
	if cfg.Chat.ChunkSize != 2000 || cfg.Chat.ChunkOverlap != 200 {
		t.Errorf("expected default chunking 2000/200, got %d/%d",
			cfg.Chat.ChunkSize, cfg.Chat.ChunkOverlap)
	}
	if cfg.Chat.TokenCeiling != 4000 {
		t.Errorf("expected default token ceiling 4000, got %d", cfg.Chat.TokenCeiling)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 70000

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_UnknownStorageDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Driver = "postgres"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for unknown storage driver")
	}
	if !strings.Contains(err.Error(), "postgres") {
		t.Errorf("error should name the driver, got %q", err.Error())
	}
}

func TestValidate_RedisRequiresAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Driver = "redis"
	cfg.Storage.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for redis driver without addrs")
	}

	cfg.Storage.Addrs = []string{"localhost:6379"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error with addrs set: %v", err)
	}
}

func TestValidate_OverlapMustBeSmallerThanSize(t *testing.T) {
	cfg := validConfig()
	cfg.Chat.ChunkSize = 100
	cfg.Chat.ChunkOverlap = 100

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for overlap >= chunk size")
	}
}

func TestValidate_SamplingRanges(t *testing.T) {
	cfg := validConfig()
	cfg.OpenAI.Temperature = 3.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for temperature out of range")
	}

	cfg = validConfig()
	cfg.OpenAI.TopP = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for top_p out of range")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("DOCUVERIFY_TEST_KEY", "sk-test")

	in := []byte("api_key: ${DOCUVERIFY_TEST_KEY}\nmodel: ${DOCUVERIFY_TEST_MODEL:-gpt-3.5-turbo}\n")
	out := string(expandEnvVars(in))

	if !strings.Contains(out, "api_key: sk-test") {
		t.Errorf("expected env substitution, got %q", out)
	}
	if !strings.Contains(out, "model: gpt-3.5-turbo") {
		t.Errorf("expected default substitution, got %q", out)
	}
}

func TestIsDevelopment(t *testing.T) {
	for env, want := range map[string]bool{"local": true, "dev": true, "prod": false, "staging": false} {
		if got := IsDevelopment(env); got != want {
			t.Errorf("IsDevelopment(%q) = %v, want %v", env, got, want)
		}
	}
}
