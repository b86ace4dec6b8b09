package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"golang.org/x/net/proxy"

	fl "mpform/lib/filelogger"
	. "mpform/lib/logx"
	"mpform/lib/mail/form"
)

func main() {
	cfgfile := flag.String("config", "form.toml", "form description file")
	output := flag.String("o", "-", "output file, - for stdout")
	posturl := flag.String("post", "", "POST generated form to this URL instead of writing it out")
	socks := flag.String("socks", "", "socks proxy address for -post")
	timeout := flag.Duration("timeout", 5*time.Minute, "timeout for -post")
	loglevel := flag.String("loglevel", "info", "log level")
	nocolor := flag.Bool("nocolor", false, "disable colored logs")

	flag.Parse()

	lvl, err := ParseLevel(*loglevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad -loglevel: %v\n", err)
		os.Exit(2)
	}
	color := fl.ColorAuto
	if *nocolor {
		color = fl.ColorOff
	}
	lgr, err := fl.NewFileLogger(os.Stderr, lvl, color)
	if err != nil {
		fmt.Fprintf(os.Stderr, "fl.NewFileLogger error: %v\n", err)
		os.Exit(1)
	}
	mlg := NewLogToX(lgr, "mpform")
	flg := NewLogToX(lgr, "form")

	cfg, err := form.LoadConfig(*cfgfile)
	if err != nil {
		mlg.LogPrintln(CRITICAL, "form.LoadConfig error:", err)
		os.Exit(1)
	}

	if *posturl != "" {
		var d proxy.Dialer
		if *socks == "" {
			d = &net.Dialer{}
		} else {
			d, err = proxy.SOCKS5("tcp", *socks, nil, nil)
			if err != nil {
				mlg.LogPrintln(CRITICAL, "SOCKS5 fail:", err)
				os.Exit(1)
			}
		}
		res, err := postForm(d, *posturl, *timeout, &cfg, flg)
		if err != nil {
			mlg.LogPrintln(CRITICAL, "post failed:", err)
			os.Exit(1)
		}
		mlg.LogPrintf(NOTICE, "posted %d fields, %d files, server replied %d",
			res.Stats.Fields, res.Stats.Files, res.Status)
		return
	}

	if err = writeForm(*output, &cfg, mlg, flg); err != nil {
		mlg.LogPrintln(CRITICAL, "write failed:", err)
		os.Exit(1)
	}
}

func writeForm(output string, cfg *form.Config, mlg, flg Logger) (err error) {
	var w io.Writer
	var f *os.File
	if output == "-" {
		w = os.Stdout
	} else {
		f, err = os.Create(output)
		if err != nil {
			return
		}
		defer func() {
			if e := f.Close(); err == nil {
				err = e
			}
		}()
		w = f
	}
	bw := bufio.NewWriter(w)

	mw, err := form.NewWriter(bw, cfg)
	if err != nil {
		return
	}
	mlg.LogPrintf(NOTICE, "Content-Type: %s", mw.FormDataContentType())

	if _, err = form.Generate(mw, cfg, flg); err != nil {
		return
	}
	return bw.Flush()
}
