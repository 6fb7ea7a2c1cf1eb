package analytics

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/dayhub/dayhub-server/internal/model"
	"github.com/dayhub/dayhub-server/internal/store"
)

// Metric category tags accepted in the metricTypes query parameter.
const (
	MetricTasksCompleted  = "tasks_completed"
	MetricJournalEntries  = "journal_entries"
	MetricCalendarEvents  = "calendar_events"
	MetricEmailsProcessed = "emails_processed"
	MetricContactsAdded   = "contacts_added"
)

// DefaultRangeDays is the metrics window when no date range is given.
const DefaultRangeDays = 30

// topTagCount bounds the most-frequent-tags lists.
const topTagCount = 10

// moodScale maps categorical mood labels to the numeric scale used for
// averaging. Unknown labels fall back to moodNeutral.
var moodScale = map[string]float64{
	"happy":      5,
	"excited":    4.5,
	"calm":       4,
	"neutral":    3,
	"anxious":    2,
	"frustrated": 1.5,
	"sad":        1,
	"angry":      0.5,
}

const moodNeutral = 3

// AllMetricTypes lists every category tag in canonical order.
func AllMetricTypes() []string {
	return []string{MetricTasksCompleted, MetricJournalEntries, MetricCalendarEvents, MetricEmailsProcessed, MetricContactsAdded}
}

// Request is one metrics invocation.
type Request struct {
	Types       []string
	From        *time.Time
	To          *time.Time
	Granularity Granularity
}

// Aggregator computes per-category summaries, sparse time series and
// insights over the record store. Stateless across invocations.
type Aggregator struct {
	store store.Store
	log   zerolog.Logger
	now   func() time.Time
}

func NewAggregator(st store.Store, log zerolog.Logger) *Aggregator {
	return &Aggregator{store: st, log: log, now: time.Now}
}

// Metrics runs the fan-out and assembles the response. A failed category
// fetch degrades gracefully: the category section is omitted and the
// request still succeeds.
func (a *Aggregator) Metrics(ctx context.Context, userID string, req Request) (*model.MetricsResponse, error) {
	now := a.now()
	from, to := rangeOrDefault(req.From, req.To, now)
	g := req.Granularity
	if g == "" {
		g = GranularityDay
	}
	types := req.Types
	if len(types) == 0 {
		types = AllMetricTypes()
	}

	resp := &model.MetricsResponse{Overview: map[string]int{}}

	eg, gctx := errgroup.WithContext(ctx)
	for _, mt := range types {
		mt := mt
		switch mt {
		case MetricTasksCompleted:
			eg.Go(func() error {
				m, err := a.taskMetrics(gctx, userID, from, to, g, now)
				if err != nil {
					a.log.Warn().Err(err).Str("category", mt).Msg("metrics fetch failed; omitting category")
					return nil
				}
				resp.Tasks = m
				return nil
			})
		case MetricJournalEntries:
			eg.Go(func() error {
				m, err := a.journalMetrics(gctx, userID, from, to, g)
				if err != nil {
					a.log.Warn().Err(err).Str("category", mt).Msg("metrics fetch failed; omitting category")
					return nil
				}
				resp.Journal = m
				return nil
			})
		case MetricCalendarEvents:
			eg.Go(func() error {
				m, err := a.calendarMetrics(gctx, userID, from, to, g)
				if err != nil {
					a.log.Warn().Err(err).Str("category", mt).Msg("metrics fetch failed; omitting category")
					return nil
				}
				resp.Calendar = m
				return nil
			})
		case MetricEmailsProcessed:
			eg.Go(func() error {
				m, err := a.emailMetrics(gctx, userID, from, to, g)
				if err != nil {
					a.log.Warn().Err(err).Str("category", mt).Msg("metrics fetch failed; omitting category")
					return nil
				}
				resp.Emails = m
				return nil
			})
		case MetricContactsAdded:
			eg.Go(func() error {
				m, err := a.contactMetrics(gctx, userID, from, to)
				if err != nil {
					a.log.Warn().Err(err).Str("category", mt).Msg("metrics fetch failed; omitting category")
					return nil
				}
				resp.Contacts = m
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if resp.Tasks != nil {
		resp.Overview["tasksCompleted"] = resp.Tasks.Total
	}
	if resp.Journal != nil {
		resp.Overview["journalEntries"] = resp.Journal.Total
	}
	if resp.Calendar != nil {
		resp.Overview["calendarEvents"] = resp.Calendar.Total
	}
	if resp.Emails != nil {
		resp.Overview["emailsProcessed"] = resp.Emails.TotalProcessed
	}
	if resp.Contacts != nil {
		resp.Overview["contactsAdded"] = resp.Contacts.Total
	}

	resp.Insights = Insights(resp)
	return resp, nil
}

func (a *Aggregator) taskMetrics(ctx context.Context, userID string, from, to time.Time, g Granularity, now time.Time) (*model.TaskMetrics, error) {
	completed, err := a.store.Tasks().ListCompletedInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	created, err := a.store.Tasks().CountCreatedInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	// Overdue is deliberately measured against now, not the requested
	// range; it answers "what is late today".
	overdue, err := a.store.Tasks().CountOverdue(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	var rate float64
	if created > 0 {
		rate = round2(float64(len(completed)) / float64(created) * 100)
	}
	times := make([]time.Time, 0, len(completed))
	for _, t := range completed {
		if t.CompletedAt != nil {
			times = append(times, *t.CompletedAt)
		}
	}
	return &model.TaskMetrics{
		Total:          len(completed),
		TotalCreated:   created,
		Overdue:        overdue,
		CompletionRate: rate,
		TimeSeries:     Bucketize(times, g),
	}, nil
}

func (a *Aggregator) journalMetrics(ctx context.Context, userID string, from, to time.Time, g Granularity) (*model.JournalMetrics, error) {
	entries, err := a.store.Journal().ListInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	var moodSum float64
	times := make([]time.Time, 0, len(entries))
	tags := map[string]int{}
	for _, e := range entries {
		score, ok := moodScale[e.Mood]
		if !ok {
			score = moodNeutral
		}
		moodSum += score
		times = append(times, e.CreatedAt)
		for _, tag := range e.Tags {
			tags[tag]++
		}
	}
	var avgMood float64
	if len(entries) > 0 {
		avgMood = round2(moodSum / float64(len(entries)))
	}
	return &model.JournalMetrics{
		Total:       len(entries),
		AverageMood: avgMood,
		TopTags:     topTags(tags, topTagCount),
		TimeSeries:  Bucketize(times, g),
	}, nil
}

func (a *Aggregator) calendarMetrics(ctx context.Context, userID string, from, to time.Time, g Granularity) (*model.CalendarMetrics, error) {
	events, err := a.store.Calendar().ListInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	var totalMinutes float64
	times := make([]time.Time, 0, len(events))
	for _, ev := range events {
		totalMinutes += ev.EndTime.Sub(ev.StartTime).Minutes()
		times = append(times, ev.StartTime)
	}
	var avg float64
	if len(events) > 0 {
		avg = round2(totalMinutes / float64(len(events)))
	}
	return &model.CalendarMetrics{
		Total:           len(events),
		TotalMinutes:    round2(totalMinutes),
		AverageDuration: avg,
		TimeSeries:      Bucketize(times, g),
	}, nil
}

func (a *Aggregator) emailMetrics(ctx context.Context, userID string, from, to time.Time, g Granularity) (*model.EmailMetrics, error) {
	received, err := a.store.Emails().ListReceivedInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	sent, err := a.store.Emails().ListSentInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	unread, err := a.store.Emails().CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	var rate float64
	if len(received) > 0 {
		rate = round2(float64(len(sent)) / float64(len(received)) * 100)
	}

	// Each source list is bucketed by its own timestamp field and the two
	// series merged by date key.
	recvTimes := make([]time.Time, 0, len(received))
	for _, m := range received {
		if m.ReceivedAt != nil {
			recvTimes = append(recvTimes, *m.ReceivedAt)
		}
	}
	sentTimes := make([]time.Time, 0, len(sent))
	for _, m := range sent {
		if m.SentAt != nil {
			sentTimes = append(sentTimes, *m.SentAt)
		}
	}
	series := MergeBuckets(Bucketize(recvTimes, g), Bucketize(sentTimes, g))

	return &model.EmailMetrics{
		Received:       len(received),
		Sent:           len(sent),
		TotalProcessed: len(received) + len(sent),
		UnreadCount:    unread,
		ResponseRate:   rate,
		TimeSeries:     series,
	}, nil
}

func (a *Aggregator) contactMetrics(ctx context.Context, userID string, from, to time.Time) (*model.ContactMetrics, error) {
	contacts, err := a.store.Contacts().ListCreatedInRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	companies := map[string]struct{}{}
	tags := map[string]int{}
	for _, c := range contacts {
		if c.Company != nil && *c.Company != "" {
			companies[*c.Company] = struct{}{}
		}
		for _, tag := range c.Tags {
			tags[tag]++
		}
	}
	return &model.ContactMetrics{
		Total:     len(contacts),
		Companies: len(companies),
		TopTags:   topTags(tags, topTagCount),
	}, nil
}

func rangeOrDefault(from, to *time.Time, now time.Time) (time.Time, time.Time) {
	end := now
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -DefaultRangeDays)
	if from != nil {
		start = *from
	}
	return start, end
}

// topTags returns the n most frequent tags, ties broken alphabetically.
func topTags(counts map[string]int, n int) []model.TagCount {
	out := make([]model.TagCount, 0, len(counts))
	for tag, c := range counts {
		out = append(out, model.TagCount{Tag: tag, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
