package main

import (
	"context"
	"io"
	"time"

	"github.com/fwojciec/frontier/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	DB     *sqlite.DB
	Store  *sqlite.ResultStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Run   RunCmd   `cmd:"" help:"Crawl starting from the given seed URLs"`
	Stats StatsCmd `cmd:"" help:"Show pages and links stored so far"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Seeds       []string      `arg:"" help:"Seed URLs to start crawling from"`
	MaxDepth    int           `short:"d" default:"3" help:"Maximum link depth from a seed"`
	MaxPages    int           `short:"n" help:"Stop after this many pages (0 = unlimited)"`
	Concurrency int           `short:"c" default:"10" help:"Concurrent fetch limit"`
	Rate        float64       `short:"r" default:"1" help:"Requests per second per host"`
	Burst       int           `short:"b" default:"1" help:"Per-host burst capacity"`
	Timeout     time.Duration `default:"10s" help:"Per-request fetch timeout"`
	Out         string        `short:"o" help:"Also write crawled pages under this directory"`
	Sitemap     bool          `short:"s" help:"Expand seeds from each host's sitemap"`
	Retry       bool          `help:"Retry failed fetches with backoff"`
	Verbose     bool          `short:"v" help:"Log scheduling decisions"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}
