package config

import (
	"reflect"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if cfg.LogVersion != 2 || cfg.LoggerName != "You" || cfg.BaseYear != 0 {
		t.Fatalf("cfg=%+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Extensions, []string{"healing", "dispels", "index"}) {
		t.Fatalf("extensions=%v", cfg.Extensions)
	}
	if cfg.HubListenAddr != "127.0.0.1:8787" || cfg.HubRateLimit != 20 {
		t.Fatalf("hub=%q %d", cfg.HubListenAddr, cfg.HubRateLimit)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("WOWLOG_VERSION", "1")
	t.Setenv("WOWLOG_YOU", "Arcanista")
	t.Setenv("WOWLOG_EXTENSIONS", "healing,index")
	t.Setenv("WOWLOG_BASE_YEAR", "2008")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("err=%v", err)
	}
	if cfg.LogVersion != 1 || cfg.LoggerName != "Arcanista" || cfg.BaseYear != 2008 {
		t.Fatalf("cfg=%+v", cfg)
	}
	if !reflect.DeepEqual(cfg.Extensions, []string{"healing", "index"}) {
		t.Fatalf("extensions=%v", cfg.Extensions)
	}
}

func TestLoad_InvalidVersion(t *testing.T) {
	t.Setenv("WOWLOG_VERSION", "3")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error")
	}
}
