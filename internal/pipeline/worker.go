package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dnordby/reportscan/internal/analyze"
	"github.com/dnordby/reportscan/internal/detect"
	"github.com/dnordby/reportscan/internal/parser"
	"github.com/dnordby/reportscan/internal/points"
	"github.com/dnordby/reportscan/internal/policy"
	"github.com/dnordby/reportscan/internal/report"
	"github.com/dnordby/reportscan/internal/resultstore"
	"github.com/dnordby/reportscan/internal/score"
)

// Worker processes a single report analysis job.
type Worker struct {
	claude *analyze.ClaudeClient
	store  *resultstore.Client
	log    *slog.Logger
	stats  *analyze.LLMStats
	pol    policy.Policy

	maxConcurrentAnalyze int
	maxSectionChars      int
	pdfFallback          bool
}

func NewWorker(claude *analyze.ClaudeClient, store *resultstore.Client, log *slog.Logger, stats *analyze.LLMStats, pol policy.Policy, maxAnalyze, maxSectionChars int, pdfFallback bool) *Worker {
	return &Worker{
		claude:               claude,
		store:                store,
		log:                  log,
		stats:                stats,
		pol:                  pol,
		maxConcurrentAnalyze: maxAnalyze,
		maxSectionChars:      maxSectionChars,
		pdfFallback:          pdfFallback,
	}
}

// Process runs the full analysis pipeline for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if pdfp, ok := p.(*parser.PDFParser); ok {
		pdfp.FallbackPdftotext = w.pdfFallback
	}

	doc, err := p.Parse(bytes.NewReader(job.fileData), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.AddError(fmt.Sprintf("parse: %s", err))
		job.SetStatus(StatusFailed, "parsing")
		return
	}
	if job.Title != "" {
		doc.Title = job.Title
	}

	// The content hash is computed from the parsed text, so the same
	// report uploaded under a different filename still deduplicates.
	job.SetContentHash(ContentHashHex([]byte(flattenText(doc))))

	// Phase 2: Detect points and freeze the snapshot. A document hash
	// that already has a snapshot is never re-detected.
	job.SetStatus(StatusDetecting, "detecting")
	if existing, err := w.store.GetSnapshot(ctx, job.ContentHash); err == nil && existing != nil {
		log.Info("duplicate document, skipping", "content_hash", job.ContentHash)
		job.SetTotalPoints(len(existing.Points))
		job.SetStatus(StatusDupSkipped, "detecting")
		return
	} else if err != nil && !errors.Is(err, resultstore.ErrNoSnapshot) {
		log.Warn("snapshot lookup failed, proceeding", "error", err)
	}

	detected := detect.Points(doc)
	job.SetTotalPoints(len(detected))
	log.Info("detected points", "points", len(detected))

	snap := resultstore.Snapshot{
		DocHash:   job.ContentHash,
		Title:     doc.Title,
		Points:    detected,
		CreatedAt: time.Now().UTC(),
	}
	if err := w.store.PutSnapshot(ctx, snap); err != nil {
		log.Error("snapshot write failed", "error", err)
		job.AddError(fmt.Sprintf("snapshot: %s", err))
		job.SetStatus(StatusFailed, "detecting")
		return
	}

	// Phase 3: Analyze eligible points with bounded concurrency.
	job.SetStatus(StatusAnalyzing, "analyzing")
	texts := detect.Texts(doc)

	var targets []points.DetectedPoint
	for _, pt := range detected {
		if pt.Kind.Eligible() {
			targets = append(targets, pt)
		}
	}

	type pointResult struct {
		findings []points.Finding
		err      error
		key      string
	}
	results := make(chan pointResult, len(targets))
	sem := make(chan struct{}, w.maxConcurrentAnalyze)

	for _, pt := range targets {
		sem <- struct{}{}
		go func(pt points.DetectedPoint) {
			defer func() { <-sem }()
			section := analyze.TruncateSection(texts[pt.PointKey], w.maxSectionChars)
			prompt := analyze.BuildSectionPrompt(doc.Title, pt, section)

			var findings []points.Finding
			var lastErr error
			for attempt := 0; attempt < MaxRetries; attempt++ {
				start := time.Now()
				findings, lastErr = w.claude.ExtractFindings(ctx, prompt)
				w.stats.Record(time.Since(start).Milliseconds())
				if lastErr == nil || !IsRetryable(lastErr) {
					break
				}
				log.Warn("retryable analysis error", "point", pt.PointKey, "attempt", attempt, "error", lastErr)
				select {
				case <-time.After(Backoff(attempt)):
				case <-ctx.Done():
					results <- pointResult{err: ctx.Err(), key: pt.PointKey}
					return
				}
			}
			results <- pointResult{findings: findings, err: lastErr, key: pt.PointKey}
		}(pt)
	}

	var allFindings []points.Finding
	hadErrors := false
	for range targets {
		r := <-results
		job.IncrPointsAnalyzed()
		if r.err != nil {
			log.Error("analysis failed", "point", r.key, "error", r.err)
			job.AddError(fmt.Sprintf("point %s: %s", r.key, r.err))
			hadErrors = true
			continue
		}
		for i := range r.findings {
			if !analyze.ValidateFinding(&r.findings[i]) {
				continue
			}
			r.findings[i].ID = "f-" + generateULID()
			r.findings[i].PointKey = r.key
			allFindings = append(allFindings, r.findings[i])
		}
	}

	job.AddFindings(len(allFindings))
	log.Info("analysis complete", "valid_findings", len(allFindings), "errors", hadErrors)

	if len(allFindings) == 0 && hadErrors {
		job.SetStatus(StatusFailed, "analyzing")
		return
	}

	if err := w.store.PutFindings(ctx, job.ContentHash, allFindings); err != nil {
		log.Error("findings write failed", "error", err)
		job.AddError(fmt.Sprintf("findings: %s", err))
		job.SetStatus(StatusFailed, "analyzing")
		return
	}

	// Phase 4: Score. The overview is rebuilt from the frozen snapshot
	// plus findings; only the score is persisted.
	job.SetStatus(StatusScoring, "scoring")
	overview, err := points.BuildOverview(detected, allFindings)
	if err != nil {
		log.Error("overview build failed", "error", err)
		job.AddError(fmt.Sprintf("overview: %s", err))
		job.SetStatus(StatusFailed, "scoring")
		return
	}

	result := score.Compute(overview, allFindings, w.pol)
	job.SetScore(result.Score)
	if err := w.store.PutScore(ctx, job.ContentHash, result); err != nil {
		log.Error("score write failed", "error", err)
		job.AddError(fmt.Sprintf("score: %s", err))
		hadErrors = true
	}

	if hadErrors {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
}

// flattenText joins all section text for content hashing.
func flattenText(doc *report.Document) string {
	var sb bytes.Buffer
	doc.Walk(func(s *report.Section, depth int) {
		if s.Heading != "" {
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(s.Heading)
		}
		if s.Text != "" {
			if sb.Len() > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(s.Text)
		}
	})
	return sb.String()
}
