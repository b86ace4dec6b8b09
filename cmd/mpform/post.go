package main

import (
	"io"
	"io/ioutil"
	"net/http"
	"time"

	"golang.org/x/net/proxy"
	"golang.org/x/xerrors"

	. "mpform/lib/logx"
	"mpform/lib/mail/form"
)

type postResult struct {
	Status int
	Stats  form.Stats
}

// postForm streams generated form as request body of POST to url.
// Generation runs concurrently, feeding request body thru pipe.
func postForm(
	d proxy.Dialer, url string, timeout time.Duration,
	cfg *form.Config, lg Logger) (res postResult, err error) {

	pr, pw := io.Pipe()
	mw, err := form.NewWriter(pw, cfg)
	if err != nil {
		return
	}

	type genResult struct {
		st  form.Stats
		err error
	}
	genc := make(chan genResult, 1)
	go func() {
		st, e := form.Generate(mw, cfg, lg)
		pw.CloseWithError(e)
		genc <- genResult{st, e}
	}()

	req, err := http.NewRequest("POST", url, pr)
	if err != nil {
		pr.CloseWithError(err)
		<-genc
		return
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	c := &http.Client{
		Transport: &http.Transport{Dial: d.Dial},
		Timeout:   timeout,
	}
	lg.LogPrintf(INFO, "posting to %s with %s", url, mw.FormDataContentType())
	resp, err := c.Do(req)
	// unblocks generator if server replied without consuming whole body
	pr.Close()
	gr := <-genc
	if err != nil {
		if gr.err != nil && !xerrors.Is(gr.err, io.ErrClosedPipe) {
			err = gr.err
		}
		return res, xerrors.Errorf("post %s: %w", url, err)
	}
	defer resp.Body.Close()
	io.Copy(ioutil.Discard, resp.Body)

	res.Status = resp.StatusCode
	res.Stats = gr.st
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return res, xerrors.Errorf("post %s: server replied %s", url, resp.Status)
	}
	if gr.err != nil {
		return res, xerrors.Errorf("generating form: %w", gr.err)
	}
	return
}
