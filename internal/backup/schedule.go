package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Interval names the supported backup cadences.
type Interval string

const (
	// IntervalDaily runs once a day at Schedule.TimeOfDay.
	IntervalDaily Interval = "daily"
	// IntervalHourly runs at the top of every hour.
	IntervalHourly Interval = "hourly"
	// IntervalMinutes runs every Schedule.EveryMinutes minutes.
	IntervalMinutes Interval = "minutes"
)

// ErrNoSchedule means no schedule file exists.
var ErrNoSchedule = errors.New("no backup schedule configured")

// Schedule is the persisted backup plan.
type Schedule struct {
	Interval Interval `json:"interval"`
	// TimeOfDay is the "15:04" wall time for daily backups.
	TimeOfDay string `json:"time_of_day,omitempty"`
	// EveryMinutes is the period for minute-interval backups.
	EveryMinutes int `json:"every_minutes,omitempty"`
	// Directory receives the backup files.
	Directory string `json:"directory"`
}

// Validate checks the schedule is runnable.
func (s Schedule) Validate() error {
	switch s.Interval {
	case IntervalDaily:
		if _, err := time.Parse("15:04", s.TimeOfDay); err != nil {
			return fmt.Errorf("parsing time of day %q: %w", s.TimeOfDay, err)
		}
	case IntervalHourly:
	case IntervalMinutes:
		if s.EveryMinutes < 1 {
			return fmt.Errorf("minute interval must be at least 1, got %d", s.EveryMinutes)
		}
	default:
		return fmt.Errorf("unknown backup interval %q", s.Interval)
	}
	return nil
}

// CronSpec renders the schedule in the cron parser's syntax.
func (s Schedule) CronSpec() (string, error) {
	if err := s.Validate(); err != nil {
		return "", err
	}
	switch s.Interval {
	case IntervalDaily:
		at, _ := time.Parse("15:04", s.TimeOfDay)
		return fmt.Sprintf("%d %d * * *", at.Minute(), at.Hour()), nil
	case IntervalHourly:
		return "0 * * * *", nil
	default:
		return fmt.Sprintf("@every %dm", s.EveryMinutes), nil
	}
}

// SaveSchedule persists the schedule as JSON at path.
func SaveSchedule(path string, s Schedule) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating schedule directory: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing schedule file: %w", err)
	}
	return nil
}

// LoadSchedule reads the schedule at path, or ErrNoSchedule when the file
// does not exist.
func LoadSchedule(path string) (Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Schedule{}, ErrNoSchedule
		}
		return Schedule{}, fmt.Errorf("reading schedule file: %w", err)
	}
	var s Schedule
	if err := json.Unmarshal(data, &s); err != nil {
		return Schedule{}, fmt.Errorf("decoding schedule file: %w", err)
	}
	return s, nil
}

// ClearSchedule removes the schedule file. A missing file is not an error.
func ClearSchedule(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing schedule file: %w", err)
	}
	return nil
}
