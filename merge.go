package main

import (
	"bytes"
	"fmt"
	"io"
	"time"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"
)

// mergeSession concatenates every accepted document, in session
// order, into a single in-memory PDF. All page copying and
// serialization happens inside pdfcpu; this is orchestration only.
//
// Merging an empty session is a no-op: nil result, nil error. A
// single document is mergeable and yields a re-serialized copy.
// On failure the session is left untouched.
func mergeSession(s *Session, outName string) (*MergeResult, error) {
	docs := s.Docs()
	if len(docs) == 0 {
		return nil, nil
	}

	readers := make([]io.ReadSeeker, len(docs))
	for i, d := range docs {
		readers[i] = bytes.NewReader(d.data)
	}

	var buf bytes.Buffer
	if err := pdfapi.MergeRaw(readers, &buf, false, pdfConf()); err != nil {
		return nil, fmt.Errorf("merging %d documents: %w", len(docs), err)
	}

	now := time.Now()
	name := sanitizeNoExt(outName)
	if name == "merged" && outName == "" {
		name = "merged_" + now.Format("20060102_150405")
	}

	res := &MergeResult{
		Name:      name + ".pdf",
		Data:      buf.Bytes(),
		CreatedAt: now,
	}
	s.SetResult(res)
	return res, nil
}
