package search

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/dayhub/dayhub-server/internal/model"
	"github.com/dayhub/dayhub-server/internal/store"
)

const (
	// DefaultLimit caps a search response when the caller does not specify one.
	DefaultLimit = 20

	// overFetch is the global candidate multiplier applied after merging:
	// the top overFetch*limit candidates survive into re-partitioning.
	overFetch = 2

	// DefaultExcerptLength bounds generated excerpts.
	DefaultExcerptLength = 150
)

// Request is one search invocation.
type Request struct {
	Query string
	Types []model.Kind
	From  *time.Time
	To    *time.Time
	Limit int
}

// Aggregator fans a query out to each requested kind's store, scores and
// excerpts every candidate, merges globally and re-partitions the top
// results per kind. It is stateless across invocations.
type Aggregator struct {
	store        store.Store
	defaultLimit int
	excerptLen   int
	log          zerolog.Logger
	now          func() time.Time
}

func NewAggregator(st store.Store, defaultLimit, excerptLen int, log zerolog.Logger) *Aggregator {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if excerptLen <= 0 {
		excerptLen = DefaultExcerptLength
	}
	return &Aggregator{store: st, defaultLimit: defaultLimit, excerptLen: excerptLen, log: log, now: time.Now}
}

// Search runs the full pipeline. A failed per-kind fetch degrades
// gracefully: the kind's bucket stays empty and the request still
// succeeds with partial results.
func (a *Aggregator) Search(ctx context.Context, userID string, req Request) (*model.SearchResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = a.defaultLimit
	}
	kinds := req.Types
	if len(kinds) == 0 {
		kinds = model.AllKinds()
	}

	// Stage 1: per-kind fetch, capped at limit records before scoring.
	// A kind with many matches may lose true relevance leaders here; that
	// bound is intentional and keeps fetch sizes predictable.
	perKind := make([][]Doc, len(kinds))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		i, kind := i, kind
		g.Go(func() error {
			docs, err := a.fetchKind(gctx, userID, kind, req, limit)
			if err != nil {
				a.log.Warn().Err(err).Str("kind", string(kind)).Msg("kind fetch failed; returning empty bucket")
				return nil
			}
			perKind[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Score and excerpt every candidate.
	now := a.now()
	var candidates []model.ScoredResult
	for _, docs := range perKind {
		for _, d := range docs {
			candidates = append(candidates, model.ScoredResult{
				Record:  d.Record,
				Kind:    d.Kind,
				Score:   Score(req.Query, d, now),
				Excerpt: Excerpt(d.Content, req.Query, a.excerptLen),
			})
		}
	}

	ranked := rank(candidates, overFetch*limit)
	results := repartition(ranked, kinds, limit)

	resp := &model.SearchResponse{
		Query:   req.Query,
		Results: results,
		Summary: make(map[model.Kind]int, len(kinds)),
	}
	for kind, bucket := range results {
		resp.Summary[kind] = len(bucket)
		resp.Total += len(bucket)
	}
	return resp, nil
}

// rank sorts candidates by descending score and keeps the top max.
// The sort is stable so equal scores preserve fetch order.
func rank(candidates []model.ScoredResult, max int) []model.ScoredResult {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > max {
		candidates = candidates[:max]
	}
	return candidates
}

// repartition distributes globally ranked candidates back into per-kind
// buckets, each capped at ceil(limit/len(kinds)). Combined with the
// pre-score fetch cap this bounds response size at the cost of possibly
// dropping top-ranked results from a dominant kind.
func repartition(ranked []model.ScoredResult, kinds []model.Kind, limit int) map[model.Kind][]model.ScoredResult {
	perKindCap := (limit + len(kinds) - 1) / len(kinds)
	out := make(map[model.Kind][]model.ScoredResult, len(kinds))
	for _, kind := range kinds {
		out[kind] = []model.ScoredResult{}
	}
	for _, c := range ranked {
		bucket, ok := out[c.Kind]
		if !ok || len(bucket) >= perKindCap {
			continue
		}
		out[c.Kind] = append(bucket, c)
	}
	return out
}

func (a *Aggregator) fetchKind(ctx context.Context, userID string, kind model.Kind, req Request, limit int) ([]Doc, error) {
	q := store.SearchQuery{Text: req.Query, From: req.From, To: req.To, Limit: limit}
	switch kind {
	case model.KindJournal:
		entries, err := a.store.Journal().Search(ctx, userID, q)
		if err != nil {
			return nil, err
		}
		docs := make([]Doc, 0, len(entries))
		for _, e := range entries {
			docs = append(docs, journalDoc(e))
		}
		return docs, nil
	case model.KindTasks:
		tasks, err := a.store.Tasks().Search(ctx, userID, q)
		if err != nil {
			return nil, err
		}
		docs := make([]Doc, 0, len(tasks))
		for _, t := range tasks {
			docs = append(docs, taskDoc(t))
		}
		return docs, nil
	case model.KindCalendar:
		events, err := a.store.Calendar().Search(ctx, userID, q)
		if err != nil {
			return nil, err
		}
		docs := make([]Doc, 0, len(events))
		for _, ev := range events {
			docs = append(docs, calendarDoc(ev))
		}
		return docs, nil
	case model.KindEmails:
		emails, err := a.store.Emails().Search(ctx, userID, q)
		if err != nil {
			return nil, err
		}
		docs := make([]Doc, 0, len(emails))
		for _, m := range emails {
			docs = append(docs, emailDoc(m))
		}
		return docs, nil
	case model.KindContacts:
		contacts, err := a.store.Contacts().Search(ctx, userID, q)
		if err != nil {
			return nil, err
		}
		docs := make([]Doc, 0, len(contacts))
		for _, c := range contacts {
			docs = append(docs, contactDoc(c))
		}
		return docs, nil
	}
	return nil, nil
}
