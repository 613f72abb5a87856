package config

import (
	"testing"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Telegram: TelegramConfig{Token: "test-token"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingToken(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing telegram token")
	}
}

func TestValidate_NegativeDailyLimit(t *testing.T) {
	cfg := validConfig()
	neg := -1
	cfg.Bot.DailyLimit = &neg

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative daily limit")
	}
}

func TestValidate_BadTimezone(t *testing.T) {
	cfg := validConfig()
	cfg.Bot.Timezone = "Mars/Olympus_Mons"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestValidate_SweepHourRange(t *testing.T) {
	for _, hour := range []int{-1, 24} {
		cfg := validConfig()
		cfg.Bot.SweepHour = hour
		if err := cfg.Validate(); err == nil {
			t.Errorf("sweep_hour %d: expected error", hour)
		}
	}
}

func TestLimit_DefaultsToFive(t *testing.T) {
	var b BotConfig
	if got := b.Limit(); got != 5 {
		t.Errorf("Limit = %d, want 5", got)
	}
}

func TestLimit_ExplicitZeroSurvivesDefaults(t *testing.T) {
	zero := 0
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Telegram: TelegramConfig{Token: "t"},
		Bot:      BotConfig{DailyLimit: &zero},
	}
	cfg.ApplyDefaults()

	if got := cfg.Bot.Limit(); got != 0 {
		t.Fatalf("explicit zero limit overwritten to %d", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("zero limit should be valid: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}, Telegram: TelegramConfig{Token: "t"}}
	cfg.ApplyDefaults()

	if cfg.Bot.MaxQueryLength != 200 {
		t.Errorf("max_query_length = %d, want 200", cfg.Bot.MaxQueryLength)
	}
	if cfg.Backend.TimeoutSec != 10 {
		t.Errorf("backend timeout = %d, want 10", cfg.Backend.TimeoutSec)
	}
	if cfg.Bot.SweepHour != 2 {
		t.Errorf("sweep_hour = %d, want 2", cfg.Bot.SweepHour)
	}
	if cfg.Backend.BaseURL != "http://localhost:8080/api/verse" {
		t.Errorf("backend base_url = %q", cfg.Backend.BaseURL)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("VG_TEST_TOKEN", "secret")

	in := []byte("token: ${VG_TEST_TOKEN}\nlimit: ${VG_TEST_MISSING:-7}\n")
	out := string(expandEnvVars(in))

	want := "token: secret\nlimit: 7\n"
	if out != want {
		t.Errorf("expandEnvVars = %q, want %q", out, want)
	}
}
