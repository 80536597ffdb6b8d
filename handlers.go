package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path"
	"strconv"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func sessionResponse(s *Session, warnings []string, download string) SessionResponse {
	return SessionResponse{
		OK:       true,
		Docs:     s.Snapshot(),
		Warnings: warnings,
		Download: download,
	}
}

func handleIndex(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		data := struct {
			MaxFiles, MaxPages int
		}{cfg.MaxFiles, cfg.MaxPages}
		_ = page.Execute(w, data)
	}
}

// handleUpload is the input collector: it filters one multipart
// batch down to declared PDFs, rejects the whole batch if it would
// overflow the session, and otherwise validates files strictly in
// order so warnings and list entries match input order.
func handleUpload(cfg Config, s *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST only")
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, cfg.maxUploadBytes())
		if err := r.ParseMultipartForm(cfg.maxUploadBytes()); err != nil {
			log.Printf("[upload] parse form: %v", err)
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("upload too large (max %dMB) or invalid form", cfg.MaxUploadMB))
			return
		}
		defer func() { _ = r.MultipartForm.RemoveAll() }()

		incoming := r.MultipartForm.File["files"]
		if len(incoming) == 0 {
			writeError(w, http.StatusBadRequest, "no files in upload")
			return
		}

		var warnings []string

		// Filter to PDFs by declared type.
		valid := incoming[:0:0]
		skippedNonPDF := 0
		for _, fh := range incoming {
			if isPDFPart(fh.Header.Get("Content-Type"), fh.Filename) {
				valid = append(valid, fh)
			} else {
				skippedNonPDF++
			}
		}
		if skippedNonPDF > 0 {
			warnings = append(warnings, pluralize(skippedNonPDF, "non-PDF file")+" ignored")
		}

		// Whole-batch cap check: no partial admission.
		if s.Len()+len(valid) > cfg.MaxFiles {
			warnings = append(warnings,
				fmt.Sprintf("adding %d file(s) would exceed the limit of %d, nothing added",
					len(valid), cfg.MaxFiles))
			writeJSON(w, http.StatusOK, sessionResponse(s, warnings, ""))
			return
		}

		for _, fh := range valid {
			f, err := fh.Open()
			if err != nil {
				log.Printf("[upload] open %s: %v", fh.Filename, err)
				warnings = append(warnings, "could not read "+escape(fh.Filename))
				continue
			}
			doc, err := validatePDF(fh.Filename, fh.Size, f, cfg.MaxPages)
			_ = f.Close()
			if err != nil {
				log.Printf("[skip] %s: %v", fh.Filename, err)
				warnings = append(warnings, escape(err.Error()))
				continue
			}
			if err := s.Append(doc); err != nil {
				log.Printf("[upload] append %s: %v", fh.Filename, err)
				warnings = append(warnings, "session is full, "+escape(fh.Filename)+" not added")
				continue
			}
			log.Printf("[upload] accepted %s (%s, %d bytes)", doc.Name, pluralize(doc.Pages, "page"), doc.Size)
		}

		writeJSON(w, http.StatusOK, sessionResponse(s, warnings, ""))
	}
}

func handleRemove(s *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST only")
			return
		}
		var in RemoveRequest
		if err := json.NewDecoder(bufio.NewReader(r.Body)).Decode(&in); err != nil || in.ID == "" {
			writeError(w, http.StatusBadRequest, "bad request")
			return
		}
		if !s.RemoveByID(in.ID) {
			writeError(w, http.StatusNotFound, "no such file")
			return
		}
		writeJSON(w, http.StatusOK, sessionResponse(s, nil, ""))
	}
}

func handleSession(s *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sessionResponse(s, nil, ""))
	}
}

func handleMerge(s *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "POST only")
			return
		}
		// The body is optional; an empty or absent one means defaults.
		var in MergeRequest
		_ = json.NewDecoder(bufio.NewReader(r.Body)).Decode(&in)

		res, err := mergeSession(s, in.Out)
		if err != nil {
			log.Printf("[merge] %v", err)
			writeError(w, http.StatusInternalServerError, "merge failed")
			return
		}
		if res == nil {
			// Empty session: nothing to do, not an error.
			writeJSON(w, http.StatusOK, sessionResponse(s, nil, ""))
			return
		}
		log.Printf("[merge] %d docs -> %s (%d bytes)", s.Len(), res.Name, len(res.Data))
		writeJSON(w, http.StatusOK, sessionResponse(s, nil, "/download/"+res.Name))
	}
}

// handleDownload serves the current merge result. The result stays
// downloadable until the next merge replaces it.
func handleDownload(s *Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := s.Result()
		if res == nil || path.Base(r.URL.Path) != res.Name {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+res.Name+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
		_, _ = w.Write(res.Data)
	}
}
