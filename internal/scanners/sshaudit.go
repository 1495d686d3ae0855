package scanners

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"sort"

	"github.com/go-json-experiment/json"

	"github.com/yorozuya-cybersecurity/ssh-audit-report/internal/schema"
)

// ErrMalformed marks input that was read but is not a usable ssh-audit document.
var ErrMalformed = errors.New("malformed ssh-audit document")

// LoadSSHAudit reads and decodes one ssh-audit JSON export.
func LoadSSHAudit(path string) (schema.AuditDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.AuditDocument{}, fmt.Errorf("read %s: %w", path, err)
	}
	return ParseSSHAudit(data)
}

// ParseSSHAudit decodes an ssh-audit JSON document. Member names match
// exactly, so "ENC" is not "enc". A document that fails to decode is never
// partially used.
func ParseSSHAudit(data []byte) (schema.AuditDocument, error) {
	var doc schema.AuditDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return schema.AuditDocument{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return doc, nil
}

// Findings flattens a document into provisional findings. CVEs are always
// info; algorithm findings carry the severity ssh-audit declared, which the
// severity classifier resolves afterwards.
func Findings(doc schema.AuditDocument) iter.Seq[schema.Finding] {
	return func(yield func(schema.Finding) bool) {
		for _, cve := range doc.CVEs {
			f := schema.Finding{
				Target:      doc.Target,
				Category:    schema.CategoryCVE,
				Item:        cve.Name,
				Description: cve.Description,
				Severity:    schema.SeverityInfo,
			}
			if !yield(f) {
				return
			}
		}

		groups := []struct {
			category string
			algs     []schema.AlgorithmDescriptor
		}{
			{schema.CategoryEncryption, doc.Enc},
			{schema.CategoryKEX, doc.Kex},
			{schema.CategoryKey, doc.Key},
			{schema.CategoryMAC, doc.Mac},
		}
		for _, g := range groups {
			for _, alg := range g.algs {
				if !yieldNotes(doc.Target, g.category, alg, yield) {
					return
				}
			}
		}
	}
}

func yieldNotes(target, category string, alg schema.AlgorithmDescriptor, yield func(schema.Finding) bool) bool {
	// map order is random; keep the sequence stable per document
	labels := make([]string, 0, len(alg.Notes))
	for label := range alg.Notes {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		for _, note := range alg.Notes[label] {
			f := schema.Finding{
				Target:      target,
				Category:    category,
				Item:        alg.Algorithm,
				Description: note,
				Severity:    label,
			}
			if !yield(f) {
				return false
			}
		}
	}
	return true
}
