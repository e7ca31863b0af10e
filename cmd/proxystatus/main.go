package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/August26/proxystatus-go/internal/analytics"
	"github.com/August26/proxystatus-go/internal/config"
	"github.com/August26/proxystatus-go/internal/engine"
	"github.com/August26/proxystatus-go/internal/geoip"
	"github.com/August26/proxystatus-go/internal/logging"
	"github.com/August26/proxystatus-go/internal/model"
	"github.com/August26/proxystatus-go/internal/output"
	"github.com/August26/proxystatus-go/internal/parser"
	"github.com/August26/proxystatus-go/internal/probe"
	"github.com/August26/proxystatus-go/internal/system"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code: 0 when every proxy is usable, 2 when
// at least one is not, 1 on setup errors.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	defaultType := string(cfg.DefaultKind)
	var proxyArg string
	var useSystem bool

	flag.StringVar(&defaultType, "type", defaultType, "kind for entries without a scheme: http | socks5")
	flag.StringVar(&proxyArg, "proxy", "", "check a single proxy, e.g. socks5://10.0.0.1:1080 (instead of --input)")
	flag.BoolVar(&useSystem, "system", false, "check the proxy the operating system uses for --url (instead of --input)")
	flag.IntVar(&cfg.ContentTimeoutMs, "timeout", cfg.ContentTimeoutMs, "timeout in milliseconds for the content probe")
	flag.IntVar(&cfg.HostTimeoutMs, "host-timeout", cfg.HostTimeoutMs, "timeout in milliseconds for the host probe")
	flag.StringVar(&cfg.InputFile, "input", "", "path to proxy list (.txt, .yaml or .toml)")
	flag.StringVar(&cfg.OutputFile, "output", "", "optional path to write results (json/csv)")
	flag.StringVar(&cfg.OutputFormat, "format", cfg.OutputFormat, "output format: json | csv")
	flag.StringVar(&cfg.ReferenceURL, "url", cfg.ReferenceURL, "resource fetched through the proxy")
	flag.StringVar(&cfg.GeoIPPath, "geoip", cfg.GeoIPPath, "optional GeoLite2/GeoIP2 City database")
	flag.IntVar(&cfg.Concurrency, "concurrency", cfg.Concurrency, "number of proxies evaluated concurrently")
	flag.IntVar(&cfg.Retries, "retries", cfg.Retries, "evaluations per failing proxy (min 1)")
	flag.BoolVar(&cfg.ResolveHosts, "resolve", cfg.ResolveHosts, "resolve proxy hostnames to record their IP")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "enable debug logs")

	flag.Parse()

	log := logging.NewLogger(cfg.Verbose)

	kind, err := parser.KindFromScheme(defaultType)
	if err != nil {
		log.Error("invalid --type", "err", err)
		return 1
	}
	cfg.DefaultKind = kind

	if cfg, err = config.Normalize(cfg); err != nil {
		log.Error("invalid configuration", "err", err)
		return 1
	}

	sources := 0
	for _, set := range []bool{cfg.InputFile != "", proxyArg != "", useSystem} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		fmt.Fprintln(os.Stderr, "exactly one of --input, --proxy or --system is required")
		return 1
	}

	var descriptors []model.ProxyDescriptor
	if useSystem {
		var d model.ProxyDescriptor
		d, err = system.NewDetector("").Detect(cfg.ReferenceURL)
		descriptors = []model.ProxyDescriptor{d}
	} else {
		descriptors, err = loadDescriptors(cfg, proxyArg)
	}
	if err != nil {
		log.Error("failed to load proxies", "err", err)
		return 1
	}
	log.Info("proxies loaded", "count", len(descriptors))

	if cfg.GeoIPPath != "" {
		db, err := geoip.Open(cfg.GeoIPPath)
		if err != nil {
			log.Error("failed to open geoip database", "err", err, "path", cfg.GeoIPPath)
			return 1
		}
		defer db.Close()
		cfg.Resolver = db
	}

	log.Info("starting proxystatus",
		"timeout_ms", cfg.ContentTimeoutMs,
		"host_timeout_ms", cfg.HostTimeoutMs,
		"concurrency", cfg.Concurrency,
		"retries", cfg.Retries,
		"reference_url", cfg.ReferenceURL,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eng := engine.New(
		probe.NewNetProber(nil, cfg.ReferenceURL),
		engine.WithHostTimeout(cfg.HostTimeout()),
		engine.WithObserver(engine.LogObserver(log)),
	)

	start := time.Now()
	reports := engine.RunBatch(ctx, eng, descriptors, cfg)
	stats := analytics.Compute(reports, time.Since(start))

	log.Info("batch finished",
		"total_ms", stats.TotalProcessingTimeMs,
		"usable", stats.UsableProxies,
		"total", stats.TotalProxies,
	)

	if len(reports) == 1 {
		fmt.Fprint(os.Stdout, reports[0].String())
	} else {
		output.PrintResultsTable(os.Stdout, reports)
		output.PrintSummary(os.Stdout, stats)
	}

	if cfg.OutputFile != "" {
		if err := output.WriteFile(cfg.OutputFile, cfg.OutputFormat, reports, stats); err != nil {
			log.Error("failed to write output file", "err", err, "path", cfg.OutputFile)
		} else {
			log.Info("results written",
				"path", cfg.OutputFile,
				"format", cfg.OutputFormat,
			)
		}
	}

	if stats.UsableProxies < stats.TotalProxies {
		return 2
	}
	return 0
}

func loadDescriptors(cfg model.Config, proxyArg string) ([]model.ProxyDescriptor, error) {
	if proxyArg != "" {
		d, err := parser.ParseLine(proxyArg, cfg.DefaultKind)
		if err != nil {
			return nil, err
		}
		return []model.ProxyDescriptor{d}, nil
	}
	return parser.LoadFromFile(cfg.InputFile, cfg.DefaultKind)
}
