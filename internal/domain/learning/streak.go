package learning

import "time"

// Streak describes a user's run of consecutive activity days
type Streak struct {
	CurrentStreak    int       `json:"current_streak"`
	LongestStreak    int       `json:"longest_streak"`
	LastActivityDate time.Time `json:"last_activity_date"`
}

// ComputeStreak derives streak numbers from view timestamps. Timestamps are
// truncated to days and deduplicated; the current streak counts backwards
// from the most recent activity day and only survives when that day is today
// or yesterday relative to now. Any gap other than exactly one day breaks a
// run.
//
// With no activity at all both streaks are zero and LastActivityDate is set
// to now. Callers that need to distinguish "never active" from "active right
// now" must check the streak values, not the date.
func ComputeStreak(viewTimes []time.Time, now time.Time) Streak {
	days := distinctDaysDesc(viewTimes)
	if len(days) == 0 {
		return Streak{LastActivityDate: now}
	}

	today := truncateDay(now)
	yesterday := today.AddDate(0, 0, -1)

	current := 0
	if days[0].Equal(today) || days[0].Equal(yesterday) {
		current = 1
		for i := 1; i < len(days); i++ {
			if days[i-1].Sub(days[i]) == 24*time.Hour {
				current++
			} else {
				break
			}
		}
	}

	longest := 1
	run := 1
	for i := 1; i < len(days); i++ {
		if days[i-1].Sub(days[i]) == 24*time.Hour {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}

	return Streak{
		CurrentStreak:    current,
		LongestStreak:    longest,
		LastActivityDate: days[0],
	}
}

// distinctDaysDesc truncates timestamps to UTC days, deduplicates them and
// returns them newest first.
func distinctDaysDesc(times []time.Time) []time.Time {
	seen := make(map[time.Time]struct{}, len(times))
	days := make([]time.Time, 0, len(times))
	for _, ts := range times {
		day := truncateDay(ts)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		days = append(days, day)
	}

	// Insertion sort keeps this simple; activity histories are small after
	// day-level deduplication.
	for i := 1; i < len(days); i++ {
		for j := i; j > 0 && days[j].After(days[j-1]); j-- {
			days[j], days[j-1] = days[j-1], days[j]
		}
	}
	return days
}

func truncateDay(ts time.Time) time.Time {
	y, m, d := ts.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
