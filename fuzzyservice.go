// Fuzzy inference service

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"example.com/fuzzy-control/benchmark"

	"example.com/fuzzy-control/core/config"
	"example.com/fuzzy-control/core/inference"
	"example.com/fuzzy-control/core/rules"
	"example.com/fuzzy-control/core/server"
)

const defaultMetricsAddr = "127.0.0.1:8080"

var (
	log *zap.Logger
)

// inputFlags collects repeated -input name=value flags.
type inputFlags map[string]float64

func (f inputFlags) String() string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%v", name, f[name]))
	}
	return strings.Join(parts, ",")
}

func (f inputFlags) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("input %q has wrong format, expected name=value", s)
	}
	x, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	f[name] = x
	return nil
}

func initLogger(verbose bool) {
	c := zap.NewDevelopmentConfig()
	c.DisableStacktrace = true
	c.EncoderConfig.EncodeCaller = func(
		caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
		p := caller.TrimmedPath()
		if len(p) > 30 {
			p = "..." + p[len(p)-27:]
		}
		enc.AppendString(fmt.Sprintf("%30s", p))
	}
	if !verbose {
		c.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	var err error
	log, err = c.Build()
	if err != nil {
		panic(err)
	}
}

func runMonitor(log *zap.Logger, metricsAddr string) {
	if metricsAddr == "" {
		metricsAddr = defaultMetricsAddr
	}
	http.Handle("/metrics", promhttp.Handler())
	err := http.ListenAndServe(metricsAddr, nil)
	log.Fatal("failed to serve metrics", zap.Error(err))
}

func loadRuleBase(configFile string) (*config.Config, *rules.Base) {
	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}
	base, err := cfg.Build()
	if err != nil {
		log.Fatal("failed to build rule base", zap.Error(err))
	}
	return cfg, base
}

func runServer(configFile string) {
	ctx := context.Background()

	cfg, base := loadRuleBase(configFile)
	if cfg.ListenAddr == "" {
		log.Fatal("listen_address not specified in config")
	}
	engine := inference.NewEngine(log, base)

	err := server.StartServer(ctx, log, cfg.ListenAddr, engine)
	if err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}

	runMonitor(log, cfg.MetricsAddr)
}

func runTool(configFile string, inputs map[string]float64) {
	_, base := loadRuleBase(configFile)
	engine := inference.NewEngine(log, base)

	outputs, err := engine.Infer(inputs)
	if err != nil {
		log.Fatal("failed to run inference", zap.Error(err))
	}

	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%s = %g\n", name, outputs[name])
	}
}

func runBenchmark(configFile string, profileCPU bool) {
	_, base := loadRuleBase(configFile)
	benchmark.RunBenchmark(base, profileCPU)
}

func exitWithUsage() {
	fmt.Println("<usage>")
	os.Exit(1)
}

func main() {
	var (
		verbose    bool
		configFile string
		profileCPU bool
	)
	inputs := make(inputFlags)

	serverFlags := flag.NewFlagSet("server", flag.ExitOnError)
	toolFlags := flag.NewFlagSet("tool", flag.ExitOnError)
	benchmarkFlags := flag.NewFlagSet("benchmark", flag.ExitOnError)

	serverFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	serverFlags.StringVar(&configFile, "config", "", "Config file")

	toolFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	toolFlags.StringVar(&configFile, "config", "", "Config file")
	toolFlags.Var(inputs, "input", "Crisp input as name=value, repeatable")

	benchmarkFlags.BoolVar(&verbose, "verbose", false, "Verbose logging")
	benchmarkFlags.StringVar(&configFile, "config", "", "Config file")
	benchmarkFlags.BoolVar(&profileCPU, "profile", false, "Write a CPU profile")

	if len(os.Args) < 2 {
		exitWithUsage()
	}

	switch os.Args[1] {
	case serverFlags.Name():
		err := serverFlags.Parse(os.Args[2:])
		if err != nil || serverFlags.NArg() != 0 {
			exitWithUsage()
		}
		if configFile == "" {
			exitWithUsage()
		}
		initLogger(verbose)
		runServer(configFile)
	case toolFlags.Name():
		err := toolFlags.Parse(os.Args[2:])
		if err != nil || toolFlags.NArg() != 0 {
			exitWithUsage()
		}
		if configFile == "" {
			exitWithUsage()
		}
		initLogger(verbose)
		runTool(configFile, inputs)
	case benchmarkFlags.Name():
		err := benchmarkFlags.Parse(os.Args[2:])
		if err != nil || benchmarkFlags.NArg() != 0 {
			exitWithUsage()
		}
		if configFile == "" {
			exitWithUsage()
		}
		initLogger(verbose)
		runBenchmark(configFile, profileCPU)
	default:
		exitWithUsage()
	}
}
