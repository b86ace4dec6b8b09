package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	fl "mpform/lib/filelogger"
	. "mpform/lib/logx"
	"mpform/lib/mail/form"
)

func main() {
	cfgfile := flag.String("config", "form.toml", "form description file")
	addr := flag.String("addr", ":4321", "listen address")
	flag.Parse()

	lgr, err := fl.NewFileLogger(os.Stderr, DEBUG, fl.ColorAuto)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fl.NewFileLogger error: %v\n", err)
		os.Exit(1)
	}
	mlg := NewLogToX(lgr, "formdemo")

	cfg, err := form.LoadConfig(*cfgfile)
	if err != nil {
		mlg.LogPrintln(CRITICAL, "form.LoadConfig error:", err)
		os.Exit(1)
	}

	// serves generated form as response body, so it can be inspected
	// with curl or fed back into a form parser
	formf := func(w http.ResponseWriter, r *http.Request) {
		mw, err := form.NewWriter(w, &cfg)
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to make writer: %v", err), 500)
			return
		}
		w.Header().Set("Content-Type", mw.FormDataContentType())
		_, err = form.Generate(mw, &cfg, NewLogToX(lgr, "form"))
		if err != nil {
			// headers are already sent, can only log
			mlg.LogPrintf(ERROR, "generating form for %s: %v", r.RemoteAddr, err)
		}
	}

	sm := http.NewServeMux()
	sm.Handle("/form", http.HandlerFunc(formf))
	s := &http.Server{
		Addr:           *addr,
		Handler:        sm,
		MaxHeaderBytes: 1 << 20,
	}
	mlg.LogPrintf(NOTICE, "listening on %s", *addr)
	err = s.ListenAndServe()
	mlg.LogPrintln(CRITICAL, "ListenAndServe error:", err)
	os.Exit(1)
}
