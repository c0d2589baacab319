package stats

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"focusd/internal/models"
	"focusd/pkg/timefmt"
)

// Source is the slice of history the reporter needs.
type Source interface {
	RecordsSince(since time.Time) ([]models.SessionRecord, error)
	GamificationState() (*models.GamificationState, error)
}

// Reporter aggregates session history into period reports and streak
// summaries.
type Reporter struct {
	src Source
}

// New creates a new reporter
func New(src Source) *Reporter {
	return &Reporter{src: src}
}

var weekdayLabels = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// GenerateReport builds a focus report for the specified period.
func (r *Reporter) GenerateReport(periodType string) (*models.FocusReport, error) {
	period, err := getPeriod(periodType, time.Now())
	if err != nil {
		return nil, err
	}

	records, err := r.src.RecordsSince(period.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to load session history: %w", err)
	}

	report := Aggregate(records, *period)
	report.GeneratedAt = time.Now()
	return report, nil
}

// Aggregate folds records into a report for the given period. Pure; records
// outside the period are ignored.
func Aggregate(records []models.SessionRecord, period models.ReportPeriod) *models.FocusReport {
	report := &models.FocusReport{Period: period}

	minutesByWeekday := make([]int, 7)
	for i := range records {
		rec := &records[i]
		started := rec.StartedAtTime()
		if started.Before(period.Start) || !started.Before(period.End) {
			continue
		}
		report.Sessions++
		if rec.FocusedSeconds > 0 {
			report.FocusedSeconds += rec.FocusedSeconds
		}
		if rec.Duration > 0 {
			report.DurationSeconds += rec.Duration
		}
		minutesByWeekday[int(started.Weekday())] += rec.FocusedSeconds / 60
	}

	if report.DurationSeconds > 0 {
		report.AvgFocusPct = int(math.Round(
			float64(report.FocusedSeconds) / float64(report.DurationSeconds) * 100))
	}

	report.Days = make([]models.DayBucket, 7)
	for i, label := range weekdayLabels {
		report.Days[i] = models.DayBucket{Weekday: label, FocusedMinutes: minutesByWeekday[i]}
	}
	return report
}

// Streaks summarizes the completed-day calendar.
func (r *Reporter) Streaks() (*models.StreakSummary, error) {
	state, err := r.src.GamificationState()
	if err != nil {
		return nil, fmt.Errorf("failed to load gamification state: %w", err)
	}

	return &models.StreakSummary{
		Current: CurrentStreak(state.Streaks, time.Now()),
		Longest: LongestStreak(state.Streaks),
		Days:    state.Streaks,
	}, nil
}

// CurrentStreak counts consecutive completed days ending today.
func CurrentStreak(days map[string]bool, today time.Time) int {
	streak := 0
	check := today
	for days[check.Format("2006-01-02")] {
		streak++
		check = check.AddDate(0, 0, -1)
	}
	return streak
}

// LongestStreak finds the longest run of completed days. Days up to a day and
// a half apart count as consecutive, absorbing timezone wobble around
// midnight.
func LongestStreak(days map[string]bool) int {
	dates := make([]time.Time, 0, len(days))
	for key, done := range days {
		if !done {
			continue
		}
		d, err := time.Parse("2006-01-02", key)
		if err != nil {
			continue
		}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	longest, run := 0, 0
	for i, d := range dates {
		if i > 0 && d.Sub(dates[i-1]) <= 36*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// getPeriod calculates the time range for the report
func getPeriod(periodType string, now time.Time) (*models.ReportPeriod, error) {
	var start, end time.Time

	switch periodType {
	case "day", "today":
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end = start.Add(24 * time.Hour)

	case "week":
		// Start of week (Monday)
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday = 7
		}
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(weekday - 1))
		end = start.AddDate(0, 0, 7)

	case "month":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0)

	default:
		return nil, fmt.Errorf("invalid period type: %s (valid: day, week, month)", periodType)
	}

	return &models.ReportPeriod{Start: start, End: end, Type: periodType}, nil
}

// FormatReportText formats the report as human-readable text
func (r *Reporter) FormatReportText(report *models.FocusReport) string {
	output := fmt.Sprintf("Focus Report - %s\n", report.Period.Type)
	output += fmt.Sprintf("Period: %s to %s\n",
		report.Period.Start.Format("2006-01-02 15:04"),
		report.Period.End.Format("2006-01-02 15:04"))

	if report.Sessions == 0 {
		output += "\nNo sessions recorded for this period.\n"
		return output
	}

	output += fmt.Sprintf("Sessions: %d\n", report.Sessions)
	output += fmt.Sprintf("Focused: %s of %s (%d%%)\n\n",
		timefmt.RoundedUnit(int64(report.FocusedSeconds)),
		timefmt.RoundedUnit(int64(report.DurationSeconds)),
		report.AvgFocusPct)

	output += fmt.Sprintf("%-5s %s\n", "Day", "Focused Minutes")
	output += "---------------------\n"
	for _, day := range report.Days {
		output += fmt.Sprintf("%-5s %d\n", day.Weekday, day.FocusedMinutes)
	}

	return output
}

// FormatReportJSON formats the report as JSON
func (r *Reporter) FormatReportJSON(report *models.FocusReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}
