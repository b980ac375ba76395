package logger

import (
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" {
		t.Errorf("expected default level info, got %q", cfg.Level)
	}
	if cfg.Format != "console" {
		t.Errorf("expected default format console, got %q", cfg.Format)
	}
	if cfg.Output != "stderr" {
		t.Errorf("expected default output stderr, got %q", cfg.Output)
	}
	if !cfg.Timestamp {
		t.Error("expected timestamps on by default")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "debug", Format: "json"}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_InvalidLevelFallsBack(t *testing.T) {
	l := New(&Config{Level: "nonsense", Format: "json"}, "test")
	if l == nil {
		t.Fatal("expected logger despite invalid level")
	}
}

func TestWithComponent(t *testing.T) {
	l := NewDefault("test").WithComponent("engine")
	if l == nil {
		t.Fatal("expected component logger")
	}
	// component logger must not share identity with its parent
	base := NewDefault("test")
	if base.WithComponent("a") == base {
		t.Error("WithComponent should return a new logger")
	}
}

func TestFields(t *testing.T) {
	m := Fields("op", "save", "count", 42)
	if m["op"] != "save" {
		t.Errorf("expected op=save, got %v", m["op"])
	}
	if m["count"] != 42 {
		t.Errorf("expected count=42, got %v", m["count"])
	}
}

func TestFields_OddArgs(t *testing.T) {
	m := Fields("op", "save", "dangling")
	if len(m) != 1 {
		t.Errorf("expected dangling key dropped, got %v", m)
	}
}

func TestFields_NonStringKey(t *testing.T) {
	m := Fields(42, "value")
	if len(m) != 0 {
		t.Errorf("expected non-string key skipped, got %v", m)
	}
}

func TestErrorFields(t *testing.T) {
	m := ErrorFields("write", errTest{})
	if m[FieldOperation] != "write" {
		t.Errorf("expected operation field, got %v", m)
	}
	if m[FieldError] != "test error" {
		t.Errorf("expected error field, got %v", m)
	}
}

func TestDurationFields(t *testing.T) {
	m := DurationFields("run", 1500*time.Millisecond)
	if m[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", m[FieldDuration])
	}
}

func TestGlobalLogger(t *testing.T) {
	SetGlobalLogger(nil)
	l := GetGlobalLogger()
	if l == nil {
		t.Fatal("expected default global logger")
	}
	custom := Nop()
	SetGlobalLogger(custom)
	if GetGlobalLogger() != custom {
		t.Error("expected custom global logger")
	}
	SetGlobalLogger(nil)
}

type errTest struct{}

func (errTest) Error() string { return "test error" }
