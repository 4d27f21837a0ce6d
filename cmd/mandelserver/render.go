package main

import (
	"bytes"
	"fmt"
	"log"
	"sync"

	mandel "github.com/marben/mandel_threads"
	"github.com/marben/mandel_threads/imgout"
	"github.com/marben/mandel_threads/report"
	"github.com/marben/mandel_threads/timing"
	"github.com/marben/mandel_threads/views"
)

// renderRequest is what a client sends over the websocket.
type renderRequest struct {
	View       int    `json:"view"`
	Threads    int    `json:"threads"`
	Iterations int    `json:"iterations"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Policy     string `json:"policy"`
	Label      string `json:"label"`
}

// renderResponse answers one renderRequest. Error is set instead of the
// summary when the request is rejected.
type renderResponse struct {
	report.Summary
	Error string `json:"error,omitempty"`
}

type limits struct {
	maxThreads int
	maxPixels  int
}

var defaultLimits = limits{maxThreads: 1024, maxPixels: 4096 * 4096}

// renderService runs comparisons for websocket clients and keeps the
// image of the last successful parallel render.
type renderService struct {
	limits limits

	m       sync.Mutex
	lastPNG []byte
}

func newRenderService(l limits) *renderService {
	return &renderService{limits: l}
}

func (req renderRequest) withDefaults() renderRequest {
	if req.View == 0 {
		req.View = 1
	}
	if req.Iterations == 0 {
		req.Iterations = 256
	}
	return req
}

func (rs *renderService) resolve(req renderRequest) (mandel.View, mandel.Policy, error) {
	if req.Threads > rs.limits.maxThreads {
		return mandel.View{}, 0, fmt.Errorf("%w: at most %d threads", mandel.ErrInvalidThreads, rs.limits.maxThreads)
	}
	v, err := views.Get(req.View, req.Width, req.Height)
	if err != nil {
		return mandel.View{}, 0, err
	}
	if err := v.Validate(); err != nil {
		return mandel.View{}, 0, err
	}
	if v.Width > rs.limits.maxPixels/v.Height {
		return mandel.View{}, 0, fmt.Errorf("%w: at most %d pixels", mandel.ErrInvalidView, rs.limits.maxPixels)
	}
	policy, err := mandel.ParsePolicy(req.Policy)
	if err != nil {
		return mandel.View{}, 0, err
	}
	return v, policy, nil
}

// render compares the engines for req. Every request gets its own recorder,
// so concurrent clients never see each other's samples.
func (rs *renderService) render(req renderRequest) renderResponse {
	req = req.withDefaults()
	v, policy, err := rs.resolve(req)
	if err != nil {
		return renderResponse{Error: err.Error()}
	}

	rec := timing.NewMemory()
	rec.SetRunLabel(req.Label)
	c, err := mandel.Compare(v, req.Iterations, mandel.Parallel{Threads: req.Threads, Policy: policy, Recorder: rec}, 1)
	if err != nil {
		return renderResponse{Error: err.Error()}
	}

	s := report.NewSummary(c, req.Iterations, policy)
	s.View = views.Name(req.View)
	s.Samples = rec.Samples()
	if c.Err != nil {
		log.Printf("verification failed: %v", c.Err)
	}

	var buf bytes.Buffer
	if err := imgout.Write(&buf, imgout.PNG, c.Parallel.Buffer, req.Iterations); err != nil {
		log.Printf("encode png: %v", err)
	} else {
		rs.m.Lock()
		rs.lastPNG = buf.Bytes()
		rs.m.Unlock()
	}

	return renderResponse{Summary: s}
}

// lastImage returns the PNG of the latest render, or nil before the first one.
func (rs *renderService) lastImage() []byte {
	rs.m.Lock()
	defer rs.m.Unlock()
	return rs.lastPNG
}
