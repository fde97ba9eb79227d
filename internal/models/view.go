package models

import (
	"math"
	"time"
)

// TaskView is the serialized form of a task: all stored fields plus the
// derived days_until_due / is_overdue attributes. Derived fields are
// computed at serialization time and never persisted.
type TaskView struct {
	Task
	DaysUntilDue *int `json:"days_until_due"`
	IsOverdue    bool `json:"is_overdue"`
}

// NewTaskView computes the derived fields of t relative to now.
func NewTaskView(t Task, now time.Time) TaskView {
	return TaskView{
		Task:         t,
		DaysUntilDue: DaysUntilDue(t, now),
		IsOverdue:    IsOverdue(t, now),
	}
}

// NewTaskViews maps a slice of tasks to views against a single now.
// Always returns a non-nil slice so empty lists serialize as [].
func NewTaskViews(tasks []Task, now time.Time) []TaskView {
	views := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, NewTaskView(t, now))
	}
	return views
}

// DaysUntilDue returns the calendar-date difference between the due date
// and today (negative when past due), or nil when there is no due date.
func DaysUntilDue(t Task, now time.Time) *int {
	if t.DueDate == nil {
		return nil
	}
	due := midnight(t.DueDate.In(now.Location()))
	today := midnight(now)
	// Round instead of truncating so DST-shortened days still count whole.
	days := int(math.Round(due.Sub(today).Hours() / 24))
	return &days
}

// IsOverdue reports whether the task has a due date strictly in the past
// and is not completed. Cancelled tasks with a past due date still count
// as overdue here; the overdue listing uses a narrower predicate.
func IsOverdue(t Task, now time.Time) bool {
	if t.DueDate == nil || t.Status == StatusCompleted {
		return false
	}
	return t.DueDate.Before(now)
}

func midnight(ts time.Time) time.Time {
	return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
}
