package main

import (
	"flag"
	"log"
	"net/http"
)

// ---- flags ----
var (
	addrFlag     = flag.String("addr", "", "http listen address (e.g. :8080)")
	configFlag   = flag.String("config", "pdf-stapler.yaml", "optional YAML config file")
	maxFilesFlag = flag.Int("max-files", 0, "max PDFs per session (overrides config)")
	maxPagesFlag = flag.Int("max-pages", 0, "max pages per PDF (overrides config)")
	maxUploadMB  = flag.Int("max-upload-mb", 0, "multipart upload cap in MB (overrides config)")
)

// newMux wires every route over one shared session.
func newMux(cfg Config, s *Session) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", handleIndex(cfg))
	mux.HandleFunc("/upload", handleUpload(cfg, s))
	mux.HandleFunc("/remove", handleRemove(s))
	mux.HandleFunc("/session", handleSession(s))
	mux.HandleFunc("/merge", handleMerge(s))
	mux.HandleFunc("/download/", handleDownload(s))
	return mux
}

func main() {
	flag.Parse()

	explicit := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})

	cfg, err := loadConfig(*configFlag, explicit)
	if err != nil {
		log.Fatal(err)
	}
	if *addrFlag != "" {
		cfg.Addr = *addrFlag
	}
	if *maxFilesFlag > 0 {
		cfg.MaxFiles = *maxFilesFlag
	}
	if *maxPagesFlag > 0 {
		cfg.MaxPages = *maxPagesFlag
	}
	if *maxUploadMB > 0 {
		cfg.MaxUploadMB = *maxUploadMB
	}

	s := NewSession(cfg.MaxFiles)

	log.Printf("PDF Stapler at http://localhost%s (max %d files, %d pages each)",
		cfg.Addr, cfg.MaxFiles, cfg.MaxPages)
	log.Fatal(http.ListenAndServe(cfg.Addr, newMux(cfg, s)))
}
