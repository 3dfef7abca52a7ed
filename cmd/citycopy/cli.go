package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/citycopy"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Store    citycopy.ContentStore
	Contents citycopy.ContentService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	LogLevel string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)"`

	Serve    ServeCmd    `cmd:"" help:"Serve the HTTP API"`
	Generate GenerateCmd `cmd:"" help:"Get or generate content for one locality"`
	Warm     WarmCmd     `cmd:"" help:"Get or generate content for every locality in a YAML file"`
	Show     ShowCmd     `cmd:"" help:"Print cached content for a locality"`
	List     ListCmd     `cmd:"" help:"List cached localities"`
	Delete   DeleteCmd   `cmd:"" help:"Delete cached content for a locality"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr   string  `default:":8080" help:"Listen address"`
	Rate   float64 `default:"0.2" help:"Sustained requests per second per client"`
	Burst  int     `default:"5" help:"Requests a client may burst above the rate"`
	Dedupe bool    `help:"Share one generation between concurrent requests for the same locality"`

	TrustedProxies []string `name:"trusted-proxies" help:"Proxy IPs or CIDRs whose X-Forwarded-For header identifies the client"`
}

// GenerateCmd is the "generate" subcommand.
type GenerateCmd struct {
	Slug       string  `arg:"" help:"Locality slug"`
	Name       string  `arg:"" help:"Locality display name"`
	Province   string  `help:"Province"`
	Region     string  `help:"Region"`
	Population float64 `help:"Population"`
	Distance   float64 `help:"Distance from the reference point in km"`
	Force      bool    `short:"f" help:"Regenerate even when content is cached"`
}

// WarmCmd is the "warm" subcommand.
type WarmCmd struct {
	File        string `arg:"" type:"existingfile" help:"YAML file listing localities"`
	Concurrency int    `short:"c" default:"2" help:"Concurrent generations"`
	Force       bool   `short:"f" help:"Regenerate even when content is cached"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	Slug string `arg:"" help:"Locality slug"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Province string `help:"Only list localities in this province"`
	Limit    int    `help:"Maximum number of localities"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Slug  string `arg:"" help:"Locality slug"`
	Force bool   `help:"Confirm deletion"`
}
