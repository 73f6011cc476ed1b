package weather

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"
)

func newSample(dtTxt string, tempMax, tempMin float64) ForecastSample {
	return ForecastSample{
		DtTxt: dtTxt,
		Main: ForecastMain{
			Main: Main{TempMax: tempMax, TempMin: tempMin},
		},
	}
}

func TestSummarizeByDay(t *testing.T) {
	tests := []struct {
		name     string
		input    []ForecastSample
		wantDays []string
		wantMax  []float64
		wantMin  []float64
	}{
		{
			name:     "empty input",
			input:    nil,
			wantDays: []string{},
		},
		{
			name: "single sample is unchanged",
			input: []ForecastSample{
				newSample("2024-11-17 12:00:00", 30, 25),
			},
			wantDays: []string{"2024-11-17"},
			wantMax:  []float64{30},
			wantMin:  []float64{25},
		},
		{
			name: "reduces max and min per day",
			input: []ForecastSample{
				newSample("2024-11-17 12:00:00", 30, 25),
				newSample("2024-11-17 15:00:00", 28, 20),
				newSample("2024-11-18 12:00:00", 26, 18),
			},
			wantDays: []string{"2024-11-17", "2024-11-18"},
			wantMax:  []float64{30, 26},
			wantMin:  []float64{20, 18},
		},
		{
			name: "merges non-contiguous samples of a day",
			input: []ForecastSample{
				newSample("2024-11-17 12:00:00", 20, 15),
				newSample("2024-11-18 12:00:00", 26, 18),
				newSample("2024-11-17 21:00:00", 24, 11),
			},
			wantDays: []string{"2024-11-17", "2024-11-18"},
			wantMax:  []float64{24, 26},
			wantMin:  []float64{11, 18},
		},
		{
			name: "keeps first appearance order",
			input: []ForecastSample{
				newSample("2024-11-19 00:00:00", 10, 5),
				newSample("2024-11-17 00:00:00", 11, 6),
				newSample("2024-11-18 00:00:00", 12, 7),
			},
			wantDays: []string{"2024-11-19", "2024-11-17", "2024-11-18"},
			wantMax:  []float64{10, 11, 12},
			wantMin:  []float64{5, 6, 7},
		},
		{
			name: "short timestamps are keyed whole",
			input: []ForecastSample{
				newSample("2024-11", 10, 5),
				newSample("", 12, 3),
				newSample("2024-11", 11, 6),
			},
			wantDays: []string{"2024-11", ""},
			wantMax:  []float64{11, 12},
			wantMin:  []float64{5, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SummarizeByDay(tt.input)

			if got == nil {
				t.Fatalf("expected non-nil result")
			}
			if len(got) != len(tt.wantDays) {
				t.Fatalf("expected %d days, got %d", len(tt.wantDays), len(got))
			}
			for i, d := range got {
				if d.Day != tt.wantDays[i] {
					t.Errorf("day %d: expected key %q, got %q", i, tt.wantDays[i], d.Day)
				}
				if d.Main.TempMax != tt.wantMax[i] {
					t.Errorf("day %d: expected temp_max %v, got %v", i, tt.wantMax[i], d.Main.TempMax)
				}
				if d.Main.TempMin != tt.wantMin[i] {
					t.Errorf("day %d: expected temp_min %v, got %v", i, tt.wantMin[i], d.Main.TempMin)
				}
			}
		})
	}
}

// TestSummarizeByDayExample checks that non-temperature fields come from the
// first sample of each day.
func TestSummarizeByDayExample(t *testing.T) {
	first := ForecastSample{
		Dt:    1731844800,
		DtTxt: "2024-11-17 12:00:00",
		Main: ForecastMain{
			Main:      Main{Temp: 25, FeelsLike: 23, TempMin: 25, TempMax: 30, Pressure: 1013, Humidity: 60},
			SeaLevel:  1013,
			GrndLevel: 1010,
		},
		Weather: []Descriptor{{ID: 800, Main: "Clear", Description: "clear sky", Icon: "01d"}},
		Wind:    Wind{Speed: 3.1, Deg: 120},
		Clouds:  Clouds{All: 5},
	}
	second := ForecastSample{
		Dt:    1731855600,
		DtTxt: "2024-11-17 15:00:00",
		Main: ForecastMain{
			Main: Main{Temp: 21, FeelsLike: 19, TempMin: 20, TempMax: 28, Pressure: 1009, Humidity: 80},
		},
		Wind: Wind{Speed: 9, Deg: 300},
	}
	next := ForecastSample{
		Dt:    1731931200,
		DtTxt: "2024-11-18 12:00:00",
		Main: ForecastMain{
			Main: Main{Temp: 22, TempMin: 18, TempMax: 26, Pressure: 1012, Humidity: 65},
		},
	}

	got := SummarizeByDay([]ForecastSample{first, second, next})

	wantFirst := first
	wantFirst.Main.TempMax = 30
	wantFirst.Main.TempMin = 20

	want := []DailyForecast{
		{Day: "2024-11-17", ForecastSample: wantFirst},
		{Day: "2024-11-18", ForecastSample: next},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected summary:\n got  %+v\n want %+v", got, want)
	}
}

func TestSummarizeByDayDoesNotMutateInput(t *testing.T) {
	input := []ForecastSample{
		newSample("2024-11-17 12:00:00", 30, 25),
		newSample("2024-11-17 15:00:00", 35, 20),
	}

	SummarizeByDay(input)

	if input[0].Main.TempMax != 30 || input[0].Main.TempMin != 25 {
		t.Fatalf("input sample was modified: %+v", input[0].Main)
	}
}

// TestSummarizeByDayProperties exercises the grouping invariants on
// generated, unordered sample sets.
func TestSummarizeByDayProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		n := rng.Intn(60)
		input := make([]ForecastSample, n)
		for i := range input {
			day := fmt.Sprintf("2024-11-%02d", 10+rng.Intn(6))
			hour := rng.Intn(8) * 3
			lo := rng.Float64()*30 - 10
			input[i] = newSample(fmt.Sprintf("%s %02d:00:00", day, hour), lo+rng.Float64()*10, lo)
		}

		got := SummarizeByDay(input)

		// Key order is order of first appearance.
		var order []string
		seen := map[string]bool{}
		for _, s := range input {
			if k := DayKey(s); !seen[k] {
				seen[k] = true
				order = append(order, k)
			}
		}
		if len(got) != len(order) {
			t.Fatalf("run %d: expected %d days, got %d", run, len(order), len(got))
		}

		for i, d := range got {
			if d.Day != order[i] {
				t.Fatalf("run %d: day %d: expected %q, got %q", run, i, order[i], d.Day)
			}

			maxSeen, minSeen := 0.0, 0.0
			first := true
			for _, s := range input {
				if DayKey(s) != d.Day {
					continue
				}
				if first || s.Main.TempMax > maxSeen {
					maxSeen = s.Main.TempMax
				}
				if first || s.Main.TempMin < minSeen {
					minSeen = s.Main.TempMin
				}
				first = false
			}
			if d.Main.TempMax != maxSeen {
				t.Errorf("run %d: %s: expected temp_max %v, got %v", run, d.Day, maxSeen, d.Main.TempMax)
			}
			if d.Main.TempMin != minSeen {
				t.Errorf("run %d: %s: expected temp_min %v, got %v", run, d.Day, minSeen, d.Main.TempMin)
			}
		}

		// Summarizing a summary changes nothing.
		again := SummarizeByDay(Samples(got))
		if !reflect.DeepEqual(again, got) {
			t.Fatalf("run %d: summary is not idempotent", run)
		}
	}
}

func TestDayKey(t *testing.T) {
	tests := map[string]string{
		"2024-11-17 12:00:00": "2024-11-17",
		"2024-11-17":          "2024-11-17",
		"2024-11":             "2024-11",
		"":                    "",
	}
	for in, want := range tests {
		if got := DayKey(ForecastSample{Dt: 1, DtTxt: in}); got != want {
			t.Errorf("DayKey(%q) = %q, want %q", in, got, want)
		}
	}
}
