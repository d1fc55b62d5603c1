package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Session.CookieName != "portal_sid" || cfg.Session.Store != "redis" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Backend.Timeout != 15*time.Second {
		t.Fatalf("unexpected backend timeout %v", cfg.Backend.Timeout)
	}
	if cfg.Backend.MaxResponseBytes != 10<<20 {
		t.Fatalf("unexpected response cap %d", cfg.Backend.MaxResponseBytes)
	}
	if cfg.Socket.MaxRetries != 5 || cfg.Notifications.LogCapacity != 100 {
		t.Fatalf("unexpected socket/notification defaults: %+v %+v", cfg.Socket, cfg.Notifications)
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"BACKEND_URL":   "https://api.example.com",
		"SESSION_STORE": "memory",
		"TOAST_TTL":     "2s",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Backend.URL != "https://api.example.com" || cfg.Session.Store != "memory" || cfg.Notifications.ToastTTL != 2*time.Second {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadWith_RejectsUnknownStore(t *testing.T) {
	_, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{"SESSION_STORE": "mongo"}))
	if err == nil {
		t.Fatalf("expected error for unknown session store")
	}
}
