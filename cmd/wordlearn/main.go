// Copyright 2025 The WordServe Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements the wordlearn training and completion server and its CLI [DBG] mode.

wordlearn learns word frequencies from free text and serves prefix
completions ranked by how often each word was seen. It can run as a
MessagePack IPC server over stdin/stdout, or as an interactive CLI.

# Usage

Start the server, pre-trained on a couple of text files:

	wordlearn -train notes.txt,book.txt

Run the CLI with debug logging:

	wordlearn -c -d

# Configuration

Runtime configuration lives in a TOML file, created with defaults in
~/.config/wordlearn/config.toml when missing:

	[trainer]
	punctuation = "strip"
	store = "trie"

	[server]
	max_limit = 64
	max_prefix = 60

	[cli]
	default_limit = 24
	default_min_len = 1
	default_max_len = 24

-store and -punct override the trainer section for one run.

# Command Line Flags

	-config string
	    Path to a config.toml (default: user config dir)
	-train string
	    Comma-separated text files to train on before serving
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of suggestions to return in CLI mode
	-prmin int
	    Minimum prefix length for CLI queries
	-prmax int
	    Maximum prefix length for CLI queries
	-store string
	    Word store: trie or patricia
	-punct string
	    Punctuation handling: strip or space
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/bastiangx/wordlearn/internal/cli"
	"github.com/bastiangx/wordlearn/internal/logger"
	"github.com/bastiangx/wordlearn/internal/utils"
	"github.com/bastiangx/wordlearn/pkg/config"
	"github.com/bastiangx/wordlearn/pkg/server"
	"github.com/bastiangx/wordlearn/pkg/store"
	"github.com/bastiangx/wordlearn/pkg/suggest"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

const (
	Version = "0.1.0-beta"
	AppName = "wordlearn"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main wires config, provider and the chosen front end; the logic lives in the packages.
func main() {
	sigHandler()
	defaults := config.DefaultConfig()

	showVersion := flag.Bool("version", false, "Show current version")
	configPath := flag.String("config", "", "Path to config.toml (default: user config dir)")
	trainFiles := flag.String("train", "", "Comma-separated text files to train on before serving")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", 0, "Number of suggestions to return (default from config)")
	minPrefix := flag.Int("prmin", 0, "Minimum prefix length for suggestions (default from config)")
	maxPrefix := flag.Int("prmax", 0, "Maximum prefix length for suggestions (default from config)")
	storeKind := flag.String("store", "", "Word store: trie or patricia (default from config, "+defaults.Trainer.Store+")")
	punct := flag.String("punct", "", "Punctuation handling: strip or space (default from config, "+defaults.Trainer.Punctuation+")")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger.Setup(*debugMode)

	cfg, usedPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config file: (%s)", utils.GetAbsolutePath(usedPath))

	if *storeKind != "" {
		cfg.Trainer.Store = *storeKind
	}
	if *punct != "" {
		cfg.Trainer.Punctuation = *punct
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	provider := suggest.NewProvider(
		suggest.WithStore(store.New(store.Kind(cfg.Trainer.Store))),
		suggest.WithPunctuation(cfg.PunctuationMode()),
	)
	log.Debug("Provider ready", "store", cfg.Trainer.Store, "punctuation", cfg.Trainer.Punctuation)

	if *trainFiles != "" {
		passages, err := utils.ReadPassages(strings.Split(*trainFiles, ","))
		if err != nil {
			log.Fatalf("Failed to read training files: %v", err)
		}
		for _, p := range passages {
			provider.Train(p)
		}
		log.Debug("Pre-training done", "files", len(passages), "stats", provider.Stats())
	}

	// CLI would be mainly used for testing and dbg purposes.
	if *cliMode {
		if *limit < 1 {
			*limit = cfg.CLI.DefaultLimit
		}
		if *minPrefix < 1 {
			*minPrefix = cfg.CLI.DefaultMinLen
		}
		if *maxPrefix < 1 {
			*maxPrefix = cfg.CLI.DefaultMaxLen
		}
		log.Debug("Input info:", "minPrefix", *minPrefix, "maxPrefix", *maxPrefix, "limit", *limit)

		inputHandler := cli.NewInputHandler(provider, *minPrefix, *maxPrefix, *limit)
		if err := inputHandler.Start(os.Stdin); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := server.NewServer(provider, cfg, os.Stdin, os.Stdout)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

func printVersion() {
	l := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	l.SetStyles(styles)

	l.Print("")
	l.Print("[ " + AppName + " ] learns your words, completes your prefixes")
	l.Print("", "version", Version)
	l.Print("")
	l.Print("use -h or --help to see available options")
}
