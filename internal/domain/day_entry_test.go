package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
	_ "time/tzdata" // Embed timezone database for CI/minimal containers

	"github.com/google/uuid"
)

func TestUser_Today_TimezoneConversion(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		now      time.Time
		want     string
	}{
		{
			name: "Berlin is already on the next day",
			// 23:30 UTC on Jan 15 is 00:30 CET on Jan 16
			timezone: "Europe/Berlin",
			now:      time.Date(2024, 1, 15, 23, 30, 0, 0, time.UTC),
			want:     "2024-01-16",
		},
		{
			name: "Los Angeles is still on the previous day",
			// 06:00 UTC on Jan 16 is 22:00 PST on Jan 15
			timezone: "America/Los_Angeles",
			now:      time.Date(2024, 1, 16, 6, 0, 0, 0, time.UTC),
			want:     "2024-01-15",
		},
		{
			name:     "UTC explicit",
			timezone: "UTC",
			now:      time.Date(2024, 1, 16, 6, 0, 0, 0, time.UTC),
			want:     "2024-01-16",
		},
		{
			name:     "invalid timezone falls back to UTC",
			timezone: "Mars/Olympus_Mons",
			now:      time.Date(2024, 1, 16, 23, 59, 0, 0, time.UTC),
			want:     "2024-01-16",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{ID: uuid.New(), Timezone: tt.timezone}
			got := u.Today(tt.now)
			if FormatDate(got) != tt.want {
				t.Errorf("Today() = %s, want %s", FormatDate(got), tt.want)
			}
			if got.Location() != time.UTC || got.Hour() != 0 {
				t.Errorf("Today() should be midnight UTC, got %v", got)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2024-03-14", want: "2024-03-14"},
		{in: " 2024-02-29 ", want: "2024-02-29"},
		{in: "2023-02-29", wantErr: true},
		{in: "14.03.2024", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) error = %v", tt.in, err)
			}
			if FormatDate(got) != tt.want {
				t.Errorf("ParseDate(%q) = %s, want %s", tt.in, FormatDate(got), tt.want)
			}
		})
	}
}

func TestNewStringSet(t *testing.T) {
	got := NewStringSet([]string{"Milch", " Brot ", "", "Milch", "Käse"})
	want := []string{"Milch", "Brot", "Käse"}
	if len(got) != len(want) {
		t.Fatalf("NewStringSet() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NewStringSet()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if !got.Contains("Brot") || got.Contains("brot") {
		t.Error("Contains() should match exact labels")
	}
	if s := NewStringSet(nil); s == nil || len(s) != 0 {
		t.Errorf("NewStringSet(nil) = %#v, want empty set", s)
	}
}

func TestStringSet_ValueScan(t *testing.T) {
	var nilSet StringSet
	v, err := nilSet.Value()
	if err != nil || v != "[]" {
		t.Errorf("nil Value() = %v, %v", v, err)
	}

	var s StringSet
	if err := s.Scan([]byte(`["Milch","Brot"]`)); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(s) != 2 || s[1] != "Brot" {
		t.Errorf("Scan() = %v", s)
	}
	if err := s.Scan(nil); err != nil || len(s) != 0 {
		t.Errorf("Scan(nil) = %v, %v", s, err)
	}
	if err := s.Scan(42); err == nil {
		t.Error("Scan(int) should fail")
	}
}

func TestModuleSet_Enabled(t *testing.T) {
	set := ModuleSet{Stress: true, Weather: true}
	tests := []struct {
		module Module
		want   bool
	}{
		{ModuleStress, true},
		{ModuleWeather, true},
		{ModuleFungal, false},
		{ModuleSleep, false},
		{Module("food"), false},
	}
	for _, tt := range tests {
		if got := set.Enabled(tt.module); got != tt.want {
			t.Errorf("Enabled(%s) = %v, want %v", tt.module, got, tt.want)
		}
	}
	all := AllModules()
	for _, m := range []Module{ModuleStress, ModuleFungal, ModuleSleep, ModuleWeather, ModuleSweating, ModuleContact} {
		if !all.Enabled(m) {
			t.Errorf("AllModules() has %s disabled", m)
		}
	}
}

func TestDayEntry_ToResponse(t *testing.T) {
	entry := DayEntry{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Date:   time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
	}
	resp := entry.ToResponse()
	if resp.Date != "2024-03-14" {
		t.Errorf("Date = %q", resp.Date)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	json.Unmarshal(data, &decoded)
	if _, ok := decoded["severity"]; ok {
		t.Error("absent severity should be omitted")
	}
	if foods, ok := decoded["foods"].([]any); !ok || len(foods) != 0 {
		t.Errorf("foods = %v, want empty array", decoded["foods"])
	}
}

func TestSnapshotVersion_Key(t *testing.T) {
	ts := time.Date(2024, 3, 14, 10, 0, 0, 0, time.UTC)
	a := SnapshotVersion{Entries: 3}.Key()
	b := SnapshotVersion{Entries: 3, LastUpdated: &ts}.Key()
	later := ts.Add(time.Second)
	c := SnapshotVersion{Entries: 3, LastUpdated: &later}.Key()
	if a == b || b == c {
		t.Errorf("keys should differ: %q %q %q", a, b, c)
	}
}
