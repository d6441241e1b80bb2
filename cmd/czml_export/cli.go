package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/OCAP2/czml/internal/config"
	"github.com/OCAP2/czml/internal/convert"
	"github.com/OCAP2/czml/internal/geo"
	"github.com/OCAP2/czml/internal/influx"
	"github.com/OCAP2/czml/internal/recording"
	"github.com/OCAP2/czml/internal/server"
	"github.com/OCAP2/czml/internal/storage"

	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

const usage = `usage: czml_export [-config DIR] <command> [args]

commands:
  sample [-indent] [output]   write the example document to output or stdout
  convert <recording>...      convert OCAP recordings and save them
  serve                       serve stored documents over HTTP
`

// run executes one command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet(ProgramName, flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() { fmt.Fprint(stderr, usage) }
	configDir := flags.String("config", ".", "directory containing "+config.FileName)
	if err := flags.Parse(args); err != nil {
		return 2
	}

	args = flags.Args()
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	command := strings.ToLower(args[0])
	switch command {
	case "sample":
		if err := writeSample(args[1:], stdout, stderr); err != nil {
			fmt.Fprintf(stderr, "sample: %v\n", err)
			return 1
		}
		return 0
	case "convert", "serve":
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", args[0])
		fmt.Fprint(stderr, usage)
		return 2
	}

	cleanup, err := setup(*configDir, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", command, err)
		return 1
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch command {
	case "convert":
		if len(args) < 2 {
			fmt.Fprintln(stderr, "No recordings provided.")
			return 2
		}
		err = convertRecordings(ctx, args[1:], stdout)
	case "serve":
		err = serve(ctx)
	}
	if err != nil {
		Logger.Error("Command failed", "command", command, "error", err)
		fmt.Fprintf(stderr, "%s: %v\n", command, err)
		return 1
	}
	return 0
}

func writeSample(args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("sample", flag.ContinueOnError)
	flags.SetOutput(stderr)
	indent := flags.Bool("indent", false, "indent the output")
	if err := flags.Parse(args); err != nil {
		return err
	}

	w := stdout
	if flags.NArg() > 0 {
		f, err := os.Create(flags.Arg(0))
		if err != nil {
			return fmt.Errorf("error creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	doc := sampleDocument()
	if *indent {
		return doc.EncodeIndent(w, "  ")
	}
	if err := doc.Encode(w); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// documentName names a stored document after its mission, falling back to
// the recording's file name.
func documentName(rec *recording.Recording, path string) string {
	if name := strings.TrimSpace(rec.MissionName); name != "" {
		return name
	}
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".gz")
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func newConverter() (*convert.Converter, error) {
	geoCfg := config.GetGeoConfig()
	projector, err := geo.NewProjector(geoCfg.OriginLongitude, geoCfg.OriginLatitude, geoCfg.HeightOffset)
	if err != nil {
		return nil, err
	}

	exportCfg := config.GetExportConfig()
	return convert.New(projector, convert.Options{
		BillboardImage:      exportCfg.BillboardImage,
		InterpolationDegree: exportCfg.InterpolationDegree,
		FireLineDuration:    time.Duration(exportCfg.TrailSeconds * float64(time.Second)),
	}, Logger, OTelProvider.Meter("github.com/OCAP2/czml/internal/convert"))
}

func convertRecordings(ctx context.Context, paths []string, stdout io.Writer) error {
	converter, err := newConverter()
	if err != nil {
		return err
	}

	backend, err := storage.NewBackend(config.GetStorageConfig(), Logger, DBLogger)
	if err != nil {
		return err
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("error initializing storage: %w", err)
	}
	defer backend.Close()

	publisher, err := influx.New(ctx, config.GetInfluxConfig(), DBLogger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	var errs []error
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		location, err := convertOne(ctx, path, converter, backend, publisher)
		if err != nil {
			Logger.Error("Failed to convert recording", "path", path, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		fmt.Fprintf(stdout, "%s -> %s\n", path, location)
	}

	logMetrics(ctx)
	return errors.Join(errs...)
}

func convertOne(ctx context.Context, path string, converter *convert.Converter, backend storage.Backend, publisher *influx.Publisher) (string, error) {
	rec, err := recording.Load(path)
	if err != nil {
		return "", err
	}
	name := documentName(rec, path)
	SlogManager.SetDocument(name)

	start := time.Now()
	doc, stats, err := converter.Convert(ctx, rec)
	if err != nil {
		return "", err
	}
	body, err := doc.MarshalJSON()
	if err != nil {
		return "", err
	}

	location, err := backend.Save(ctx, name, doc)
	if err != nil {
		return "", fmt.Errorf("error saving document: %w", err)
	}
	elapsed := time.Since(start)
	Logger.Info("Document saved",
		"location", location,
		"packets", stats.Packets,
		"samples", stats.Samples,
		"skipped", stats.Skipped,
		"duration", elapsed)

	if err := publisher.Publish(ctx, influx.Export{
		Mission:  rec.MissionName,
		World:    rec.WorldName,
		Packets:  stats.Packets,
		Samples:  stats.Samples,
		Skipped:  stats.Skipped,
		Bytes:    len(body),
		Duration: elapsed,
	}); err != nil {
		Logger.Warn("Failed to publish export statistics", "error", err)
	}

	if err := OTelProvider.Flush(ctx); err != nil {
		Logger.Warn("OTel flush failed", "error", err)
	}
	return location, nil
}

// logMetrics writes the collected converter metrics to the log.
func logMetrics(ctx context.Context) {
	if MetricReader == nil {
		return
	}
	var rm metricdata.ResourceMetrics
	if err := MetricReader.Collect(ctx, &rm); err != nil {
		Logger.Warn("Failed to collect metrics", "error", err)
		return
	}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			Logger.Info("Export metric", "name", m.Name, "value", total)
		}
	}
}

func serve(ctx context.Context) error {
	backend, err := storage.NewBackend(config.GetStorageConfig(), Logger, DBLogger)
	if err != nil {
		return err
	}
	reader, ok := storage.AsReader(backend)
	if !ok {
		return fmt.Errorf("storage type %q cannot serve documents", config.GetStorageConfig().Type)
	}
	if err := backend.Init(); err != nil {
		return fmt.Errorf("error initializing storage: %w", err)
	}
	defer backend.Close()

	serverCfg := config.GetServerConfig()
	handler := server.New(reader, server.Config{
		ServiceName:    config.GetOTelConfig().ServiceName,
		AllowedOrigins: serverCfg.AllowedOrigins,
	}, Logger)
	return server.Run(ctx, serverCfg.Address, handler, Logger)
}
