package weather

// dayKeyLen is the length of the "YYYY-MM-DD" prefix of a sample's DtTxt.
const dayKeyLen = 10

// DayKey returns the calendar-day key of a sample: the date prefix of its
// textual timestamp. The epoch value is deliberately ignored, so the day
// boundary is whatever calendar the provider encoded in DtTxt. Timestamps
// shorter than the prefix are used whole.
func DayKey(s ForecastSample) string {
	if len(s.DtTxt) < dayKeyLen {
		return s.DtTxt
	}
	return s.DtTxt[:dayKeyLen]
}

// SummarizeByDay collapses forecast samples into one DailyForecast per day key.
// Days appear in the order their key is first seen; samples need not be
// sorted or contiguous. TempMax and TempMin are the extremes across the day,
// all other fields come from the day's first sample.
func SummarizeByDay(samples []ForecastSample) []DailyForecast {
	days := make([]DailyForecast, 0, len(samples)/8+1)
	index := make(map[string]int)

	for _, s := range samples {
		k := DayKey(s)

		i, seen := index[k]
		if !seen {
			index[k] = len(days)
			days = append(days, DailyForecast{Day: k, ForecastSample: s})
			continue
		}

		d := &days[i]
		if s.Main.TempMax > d.Main.TempMax {
			d.Main.TempMax = s.Main.TempMax
		}
		if s.Main.TempMin < d.Main.TempMin {
			d.Main.TempMin = s.Main.TempMin
		}
	}

	return days
}

// Samples converts summaries back into samples, e.g. to re-run SummarizeByDay
// over an already summarized forecast.
func Samples(days []DailyForecast) []ForecastSample {
	out := make([]ForecastSample, len(days))
	for i, d := range days {
		out[i] = d.ForecastSample
	}
	return out
}
