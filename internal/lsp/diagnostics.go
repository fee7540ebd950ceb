package lsp

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	"lumos/internal/diag"
	"lumos/internal/driver"
	"lumos/internal/fix"
	"lumos/internal/locate"
	"lumos/internal/source"
	"lumos/internal/validator"
)

func (s *Server) scheduleDiagnostics() {
	s.mu.Lock()
	seq := atomic.AddUint64(&s.analysisSeq, 1)
	atomic.StoreUint64(&s.latestSeq, seq)
	if s.diagCancel != nil {
		s.diagCancel()
	}
	if s.debounceTimer != nil {
		s.debounceTimer.Stop()
	}
	s.debounceTimer = time.AfterFunc(s.debounce, func() {
		s.runDiagnostics(seq)
	})
	s.mu.Unlock()
}

func (s *Server) runDiagnostics(seq uint64) {
	if !s.isLatestSeq(seq) {
		return
	}
	s.mu.Lock()
	if len(s.openDocs) == 0 {
		s.mu.Unlock()
		s.clearPublishedDiagnostics()
		return
	}
	if s.diagCancel != nil {
		s.diagCancel()
	}
	base := s.baseCtx
	if base == nil {
		base = context.Background()
	}
	ctx, cancel := context.WithCancel(base)
	s.diagCancel = cancel
	docs := make(map[string]string, len(s.openDocs))
	for uri, text := range s.openDocs {
		docs[uri] = text
	}
	s.mu.Unlock()

	for uri, text := range docs {
		diags := s.diagnose(ctx, uri, text)
		if len(diags) > s.maxDiagnostics {
			diags = diags[:s.maxDiagnostics]
		}
		// A newer edit supersedes this run; its results would be stale.
		if !s.isLatestSeq(seq) {
			return
		}

		doc := source.NewDocument(text)
		list := make([]lspDiagnostic, 0, len(diags))
		for _, d := range diags {
			list = append(list, toLSPDiagnostic(doc, d))
		}

		s.mu.Lock()
		if _, stillOpen := s.openDocs[uri]; !stillOpen {
			s.mu.Unlock()
			continue
		}
		s.lastDiags[uri] = diags
		if len(list) == 0 {
			if _, had := s.published[uri]; !had {
				s.mu.Unlock()
				continue
			}
			delete(s.published, uri)
		} else {
			s.published[uri] = struct{}{}
		}
		s.mu.Unlock()

		if err := s.sendPublish(uri, list); err != nil {
			s.logf("failed to publish diagnostics: %v", err)
			return
		}
	}
}

func (s *Server) clearPublishedDiagnostics() {
	s.mu.Lock()
	uris := make([]string, 0, len(s.published))
	for uri := range s.published {
		uris = append(uris, uri)
	}
	s.published = make(map[string]struct{})
	s.mu.Unlock()
	for _, uri := range uris {
		if err := s.sendPublish(uri, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
}

// ValidatorDiagnose returns a DiagnoseFunc that runs the external compiler
// against a snapshot of the document and locates its complaint. The editor
// buffer may be unsaved, so the snapshot goes through a temp file.
func ValidatorDiagnose(cfg validator.Config) DiagnoseFunc {
	return func(ctx context.Context, uri, text string) []diag.Diagnostic {
		tmp, err := os.CreateTemp("", "lumos-lsp-*"+driver.SchemaExt)
		if err != nil {
			return nil
		}
		defer os.Remove(tmp.Name())
		if _, err := tmp.WriteString(text); err != nil {
			tmp.Close()
			return nil
		}
		if err := tmp.Close(); err != nil {
			return nil
		}

		res, err := validator.Run(ctx, cfg, tmp.Name())
		if err != nil || !res.HasError {
			return nil
		}

		doc := source.NewDocument(text)
		d, ok := locate.Diagnose(res.Output, doc)
		if !ok {
			return nil
		}
		d.Fixes = fix.Propose(doc, d)
		return []diag.Diagnostic{d}
	}
}
