package pipeline

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/yorozuya-cybersecurity/ssh-audit-report/internal/aggregate"
	"github.com/yorozuya-cybersecurity/ssh-audit-report/internal/scanners"
	"github.com/yorozuya-cybersecurity/ssh-audit-report/internal/schema"
	"github.com/yorozuya-cybersecurity/ssh-audit-report/internal/severity"
	"github.com/yorozuya-cybersecurity/ssh-audit-report/pkg/utils"
)

// ErrNoDocuments is returned in strict mode when no input document parsed.
var ErrNoDocuments = errors.New("no ssh-audit documents found")

// Options configures one run.
type Options struct {
	Dir        string
	Classifier *severity.Classifier
	Log        logrus.FieldLogger
	// Strict turns an empty input set into ErrNoDocuments instead of an
	// empty report.
	Strict bool
}

// SkippedFile records an input that could not be used.
type SkippedFile struct {
	Path string
	Err  error
}

// Result is the deduplicated record set and its summary.
type Result struct {
	Findings  []schema.Finding
	Summary   aggregate.Matrix
	Documents int
	Skipped   []SkippedFile
}

// Run reads every *.json document in opts.Dir, normalizes and classifies the
// findings, removes duplicates and summarizes them. Bad documents are logged
// and skipped. Only cancellation and strict mode produce an error.
func Run(ctx context.Context, opts Options) (Result, error) {
	log := opts.Log
	if log == nil {
		log = logrus.StandardLogger()
	}
	cls := opts.Classifier
	if cls == nil {
		cls = severity.New(nil)
	}

	var res Result
	files, err := utils.ListJSONFiles(opts.Dir)
	if err != nil {
		log.WithField("dir", opts.Dir).WithError(err).Error("Cannot list input directory")
	}

	var pooled []schema.Finding
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		doc, err := scanners.LoadSSHAudit(path)
		if err != nil {
			entry := log.WithField("file", filepath.Base(path)).WithError(err)
			if errors.Is(err, scanners.ErrMalformed) {
				entry.Error("Error decoding JSON")
			} else {
				entry.Error("Skipping unreadable document")
			}
			res.Skipped = append(res.Skipped, SkippedFile{Path: path, Err: err})
			continue
		}
		res.Documents++

		n := 0
		for f := range scanners.Findings(doc) {
			pooled = append(pooled, cls.Resolve(f))
			n++
		}
		log.WithFields(logrus.Fields{"file": filepath.Base(path), "target": doc.Target, "findings": n}).Debug("Parsed document")
	}

	if res.Documents == 0 && opts.Strict {
		return res, ErrNoDocuments
	}
	if res.Documents == 0 {
		log.WithField("dir", opts.Dir).Warn("No ssh-audit documents found; the report will be empty")
	}

	res.Findings = aggregate.Dedupe(pooled)
	aggregate.SortFindings(res.Findings)
	res.Summary = aggregate.Summarize(res.Findings)

	log.WithFields(logrus.Fields{
		"documents": res.Documents,
		"skipped":   len(res.Skipped),
		"findings":  len(res.Findings),
	}).Info("Collected findings")
	return res, nil
}
