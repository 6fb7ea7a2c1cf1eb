package analytics

import "github.com/dayhub/dayhub-server/internal/model"

// Insight rule thresholds. Each category present in the report contributes
// at most one insight, in tasks, journal, emails order.
const (
	completionExcellent = 80
	completionGood      = 60

	journalDailyHabit  = 0.8
	journalSteadyHabit = 0.3

	unreadRatioLow      = 0.1
	unreadRatioModerate = 0.3
)

// journalHabitWindow is the fixed day count dividing journal totals into an
// entries-per-day rate, independent of the requested range.
const journalHabitWindow = 30

// Insights derives qualitative observations from computed category
// metrics. Rules run only for categories present in the report.
func Insights(report *model.MetricsResponse) []string {
	insights := []string{}

	if t := report.Tasks; t != nil {
		switch {
		case t.CompletionRate > completionExcellent:
			insights = append(insights, "Excellent task completion rate! You're staying on top of your work.")
		case t.CompletionRate > completionGood:
			insights = append(insights, "Good task completion rate. A little push could make it excellent.")
		default:
			insights = append(insights, "Task completion could use attention. Consider breaking work into smaller tasks.")
		}
	}

	if j := report.Journal; j != nil {
		perDay := float64(j.Total) / journalHabitWindow
		switch {
		case perDay > journalDailyHabit:
			insights = append(insights, "Great journaling habit! You're writing almost every day.")
		case perDay > journalSteadyHabit:
			insights = append(insights, "Steady journaling rhythm. Writing a little more often would deepen the habit.")
		default:
			insights = append(insights, "Your journal has been quiet lately. Even a short note helps.")
		}
	}

	if e := report.Emails; e != nil {
		var unreadRatio float64
		if e.TotalProcessed > 0 {
			unreadRatio = float64(e.UnreadCount) / float64(e.TotalProcessed)
		}
		switch {
		case unreadRatio < unreadRatioLow:
			insights = append(insights, "Your inbox is under control. Nice work keeping unread mail low.")
		case unreadRatio < unreadRatioModerate:
			insights = append(insights, "A few unread emails are piling up. A quick triage would help.")
		default:
			insights = append(insights, "Your unread email ratio is high. Consider an inbox cleanup session.")
		}
	}

	return insights
}
