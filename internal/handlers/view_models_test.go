package handlers

import (
	"testing"

	"fractionsarcade/internal/catalog"
	"fractionsarcade/internal/kvstore"
	"fractionsarcade/internal/profile"
)

func ptr(v float64) *float64 { return &v }

func TestRecordLine(t *testing.T) {
	tests := []struct {
		name string
		rec  *profile.ActivityRecord
		want string
	}{
		{
			name: "nil record",
			rec:  nil,
			want: "Not started",
		},
		{
			name: "record text wins",
			rec:  &profile.ActivityRecord{RecordText: " 3G 1Y 1R in 9.0s ", BestCorrect: ptr(3), BestTotal: ptr(5)},
			want: "3G 1Y 1R in 9.0s",
		},
		{
			name: "best with time",
			rec:  &profile.ActivityRecord{BestCorrect: ptr(3), BestTotal: ptr(5), BestTimeMs: ptr(9000)},
			want: "Best 3/5 in 9.0s",
		},
		{
			name: "best without time",
			rec:  &profile.ActivityRecord{BestCorrect: ptr(3), BestTotal: ptr(5)},
			want: "Best 3/5",
		},
		{
			name: "played once",
			rec:  &profile.ActivityRecord{Plays: 1},
			want: "Played 1 time",
		},
		{
			name: "played many",
			rec:  &profile.ActivityRecord{Plays: 4},
			want: "Played 4 times",
		},
		{
			name: "empty record",
			rec:  &profile.ActivityRecord{},
			want: "Not started",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recordLine(tt.rec); got != tt.want {
				t.Errorf("recordLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScoreLine(t *testing.T) {
	tests := []struct {
		name string
		rec  *profile.ActivityRecord
		want string
	}{
		{name: "nil record", rec: nil, want: "—"},
		{name: "label wins", rec: &profile.ActivityRecord{ScoreLabel: " 3/5 ", ScoreValue: ptr(3)}, want: "3/5"},
		{name: "value fallback", rec: &profile.ActivityRecord{ScoreValue: ptr(40)}, want: "40"},
		{name: "empty record", rec: &profile.ActivityRecord{}, want: "—"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := scoreLine(tt.rec); got != tt.want {
				t.Errorf("scoreLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCountStats(t *testing.T) {
	registry := catalog.Default()

	stats := countStats(nil, registry)
	if stats.Explored != 0 || stats.TotalGames != 12 || stats.CompletionPct != 0 {
		t.Errorf("stats without player = %+v", stats)
	}

	p := &profile.Profile{
		Progress: profile.Ledger{
			TotalLaunches: 5,
			Activities: map[string]*profile.ActivityRecord{
				"fractions_lab":    {Plays: 3, ScoreValue: ptr(40)},
				"common_multiples": {Plays: 2, ScoreValue: ptr(3)},
				"decimals_primer":  {Plays: 1},
				"not_in_catalog":   {Plays: 9, ScoreValue: ptr(99)},
			},
		},
	}

	stats = countStats(p, registry)
	if stats.Explored != 3 {
		t.Errorf("Explored = %d, want 3", stats.Explored)
	}
	if stats.CompletionPct != 25 {
		t.Errorf("CompletionPct = %d, want 25", stats.CompletionPct)
	}
	if stats.TotalScore != 43 || stats.ScoredGames != 2 {
		t.Errorf("TotalScore/ScoredGames = %v/%d, want 43/2", stats.TotalScore, stats.ScoredGames)
	}
	if stats.TotalLaunches != 5 {
		t.Errorf("TotalLaunches = %d, want 5", stats.TotalLaunches)
	}
}

func TestBuildDashboard(t *testing.T) {
	registry := catalog.Default()
	profiles := profile.NewStore(kvstore.NewSafe(kvstore.NewMemory()))

	data := buildDashboard(profiles, registry)
	if data.Player != nil || len(data.Players) != 0 {
		t.Errorf("dashboard without players = %+v", data)
	}
	if len(data.Sections) != len(registry.Sections()) {
		t.Errorf("len(Sections) = %d, want %d", len(data.Sections), len(registry.Sections()))
	}

	profiles.SwitchOrCreate("Ada")
	profiles.RecordLaunch("fractions_lab")

	data = buildDashboard(profiles, registry)
	if data.Player == nil || data.Player.ID != "ada" || !data.Player.Active {
		t.Fatalf("Player = %+v, want active ada", data.Player)
	}
	if data.Stats.Explored != 1 {
		t.Errorf("Explored = %d, want 1", data.Stats.Explored)
	}

	for _, section := range data.Sections {
		for _, a := range section.Activities {
			if a.ID == "fractions_lab" {
				if !a.Explored || a.Plays != 1 || a.RecordLine != "Played 1 time" {
					t.Errorf("fractions_lab row = %+v", a)
				}
			}
		}
	}
}
