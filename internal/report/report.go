// Package report implements the aggregate views over the task collection:
// distributions, summary statistics, the 30-day completion trend, and
// chart-ready payloads. Every function is a pure transformation of a task
// slice, so the same engine serves any TaskStore implementation.
package report

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Tanmayee006/Demo-Task-Social-Booster-Media/internal/models"
)

// Summary is the /tasks/summary payload.
type Summary struct {
	TotalTasks      int     `json:"total_tasks"`
	CompletedTasks  int     `json:"completed_tasks"`
	PendingTasks    int     `json:"pending_tasks"`
	InProgressTasks int     `json:"in_progress_tasks"`
	OverdueTasks    int     `json:"overdue_tasks"`
	CompletionRate  float64 `json:"completion_rate"`
}

// Overview is the /reports/summary payload. Distribution maps carry raw
// enum keys and omit empty categories.
type Overview struct {
	TotalTasks           int            `json:"total_tasks"`
	StatusDistribution   map[string]int `json:"status_distribution"`
	PriorityDistribution map[string]int `json:"priority_distribution"`
	CompletionRate       float64        `json:"completion_rate"`
	OverdueTasks         int            `json:"overdue_tasks"`
}

// TrendPoint is one calendar day of the completion trend.
type TrendPoint struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
}

// ChartSlice is one labeled, colored category of a chart distribution.
type ChartSlice struct {
	Label string `json:"label"`
	Value int    `json:"value"`
	Color string `json:"color"`
}

// LocationCount is one location group with its task count.
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// Charts is the /reports/charts payload.
type Charts struct {
	CompletionTrend      []TrendPoint    `json:"completion_trend"`
	PriorityDistribution []ChartSlice    `json:"priority_distribution"`
	StatusDistribution   []ChartSlice    `json:"status_distribution"`
	LocationDistribution []LocationCount `json:"location_distribution"`
}

// Display palettes, index-aligned with models.Priorities / models.Statuses.
var (
	priorityColors = []string{"#28a745", "#17a2b8", "#ffc107", "#dc3545"}
	statusColors   = []string{"#6c757d", "#007bff", "#28a745", "#dc3545"}
)

// BuildSummary computes the task summary statistics.
func BuildSummary(tasks []models.Task, now time.Time) Summary {
	var s Summary
	s.TotalTasks = len(tasks)
	for _, t := range tasks {
		switch t.Status {
		case models.StatusCompleted:
			s.CompletedTasks++
		case models.StatusPending:
			s.PendingTasks++
		case models.StatusInProgress:
			s.InProgressTasks++
		}
	}
	s.OverdueTasks = CountOverdue(tasks, now)
	s.CompletionRate = completionRate(s.CompletedTasks, s.TotalTasks)
	return s
}

// BuildOverview computes the comprehensive report summary.
func BuildOverview(tasks []models.Task, now time.Time) Overview {
	o := Overview{
		TotalTasks:           len(tasks),
		StatusDistribution:   make(map[string]int),
		PriorityDistribution: make(map[string]int),
		OverdueTasks:         CountOverdue(tasks, now),
	}
	completed := 0
	for _, t := range tasks {
		o.StatusDistribution[string(t.Status)]++
		o.PriorityDistribution[string(t.Priority)]++
		if t.Status == models.StatusCompleted {
			completed++
		}
	}
	o.CompletionRate = completionRate(completed, o.TotalTasks)
	return o
}

// StatusDistribution groups tasks by status with capitalized labels.
// Statuses with no tasks are omitted; contrast with StatusChart which
// zero-fills the full taxonomy.
func StatusDistribution(tasks []models.Task) map[string]int {
	dist := make(map[string]int)
	for _, t := range tasks {
		dist[capitalize(string(t.Status))]++
	}
	return dist
}

// TopLocations returns the n most common non-empty locations, sorted by
// count descending. Ties keep the order locations first appear in the
// task collection, so the result is deterministic up to count.
func TopLocations(tasks []models.Task, n int) []LocationCount {
	return groupLocations(tasks, n)
}

// LocationDistribution is the chart variant of the location grouping.
func LocationDistribution(tasks []models.Task, n int) []LocationCount {
	return groupLocations(tasks, n)
}

func groupLocations(tasks []models.Task, n int) []LocationCount {
	counts := make(map[string]int)
	var order []string
	for _, t := range tasks {
		if t.Location == "" {
			continue
		}
		if _, seen := counts[t.Location]; !seen {
			order = append(order, t.Location)
		}
		counts[t.Location]++
	}
	groups := make([]LocationCount, 0, len(order))
	for _, loc := range order {
		groups = append(groups, LocationCount{Location: loc, Count: counts[loc]})
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})
	if len(groups) > n {
		groups = groups[:n]
	}
	return groups
}

// CompletionTrend counts completed_at per calendar day over the 30 days
// ending today (31 points, oldest first). completed_at is not populated
// by the mark-completed transition today, so the trend reads all zeros
// until that is resolved; see DESIGN.md.
func CompletionTrend(tasks []models.Task, now time.Time) []TrendPoint {
	perDay := make(map[string]int)
	for _, t := range tasks {
		if t.CompletedAt != nil {
			perDay[t.CompletedAt.In(now.Location()).Format("2006-01-02")]++
		}
	}
	trend := make([]TrendPoint, 0, 31)
	for i := 30; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		trend = append(trend, TrendPoint{Date: day, Completed: perDay[day]})
	}
	return trend
}

// PriorityChart returns the priority distribution zero-filled over the
// full taxonomy, each category with its fixed display color.
func PriorityChart(tasks []models.Task) []ChartSlice {
	counts := make(map[models.Priority]int)
	for _, t := range tasks {
		counts[t.Priority]++
	}
	slices := make([]ChartSlice, 0, len(models.Priorities))
	for i, p := range models.Priorities {
		slices = append(slices, ChartSlice{
			Label: titleWords(string(p)),
			Value: counts[p],
			Color: priorityColors[i],
		})
	}
	return slices
}

// StatusChart returns the status distribution zero-filled over the full
// taxonomy, with underscores rendered as spaces in labels.
func StatusChart(tasks []models.Task) []ChartSlice {
	counts := make(map[models.Status]int)
	for _, t := range tasks {
		counts[t.Status]++
	}
	slices := make([]ChartSlice, 0, len(models.Statuses))
	for i, s := range models.Statuses {
		slices = append(slices, ChartSlice{
			Label: titleWords(strings.ReplaceAll(string(s), "_", " ")),
			Value: counts[s],
			Color: statusColors[i],
		})
	}
	return slices
}

// BuildCharts assembles the full chart payload.
func BuildCharts(tasks []models.Task, now time.Time) Charts {
	return Charts{
		CompletionTrend:      CompletionTrend(tasks, now),
		PriorityDistribution: PriorityChart(tasks),
		StatusDistribution:   StatusChart(tasks),
		LocationDistribution: LocationDistribution(tasks, 10),
	}
}

// CountOverdue counts tasks with a past due date still in an actionable
// status. Narrower than the serialized is_overdue flag, which also covers
// cancelled tasks.
func CountOverdue(tasks []models.Task, now time.Time) int {
	n := 0
	for _, t := range tasks {
		if t.DueDate != nil && t.DueDate.Before(now) &&
			(t.Status == models.StatusPending || t.Status == models.StatusInProgress) {
			n++
		}
	}
	return n
}

// completionRate is completed/total as a percentage rounded to 2 decimal
// places, 0 when the collection is empty.
func completionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	rate := float64(completed) / float64(total) * 100
	return math.Round(rate*100) / 100
}

// capitalize upper-cases the first letter and lower-cases the rest,
// leaving underscores alone ("in_progress" -> "In_progress").
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// titleWords capitalizes each space-separated word.
func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}
