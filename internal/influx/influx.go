// Package influx publishes per-document export statistics to InfluxDB.
package influx

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/OCAP2/czml/internal/config"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
)

// Measurement is the name of the export statistics measurement.
const Measurement = "czml_export"

// Export describes one saved document.
type Export struct {
	Mission  string
	World    string
	Packets  int
	Samples  int
	Skipped  int
	Bytes    int
	Duration time.Duration
	At       time.Time
}

// Point renders e as an InfluxDB point.
func (e Export) Point() *influxdb2_write.Point {
	return influxdb2.NewPoint(Measurement,
		map[string]string{
			"mission": e.Mission,
			"world":   e.World,
		},
		map[string]any{
			"packets":     e.Packets,
			"samples":     e.Samples,
			"skipped":     e.Skipped,
			"bytes":       e.Bytes,
			"duration_ms": float64(e.Duration) / float64(time.Millisecond),
		},
		e.At,
	)
}

// Publisher writes export points. A disabled publisher drops everything.
type Publisher struct {
	client influxdb2.Client
	writer influxdb2_api.WriteAPIBlocking

	mu         sync.Mutex
	backup     *gzip.Writer
	backupFile *os.File

	log zerolog.Logger
}

// New connects to InfluxDB when cfg.Enabled. If the server does not answer a
// ping, points go to cfg.BackupPath as gzipped line protocol; without a
// backup path the publisher is disabled.
func New(ctx context.Context, cfg config.InfluxConfig, log zerolog.Logger) (*Publisher, error) {
	p := &Publisher{log: log}
	if !cfg.Enabled {
		return p, nil
	}

	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPRequestTimeout(5))

	running, err := client.Ping(ctx)
	if err == nil && running {
		p.client = client
		p.writer = client.WriteAPIBlocking(cfg.Org, cfg.Bucket)
		p.log.Info().Str("url", cfg.URL).Str("bucket", cfg.Bucket).Msg("InfluxDB client initialized")
		return p, nil
	}
	client.Close()

	if cfg.BackupPath == "" {
		p.log.Warn().Err(err).Str("url", cfg.URL).Msg("InfluxDB unreachable, export statistics disabled")
		return p, nil
	}

	file, ferr := os.OpenFile(cfg.BackupPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if ferr != nil {
		return nil, fmt.Errorf("error creating backup file: %w", ferr)
	}
	p.backupFile = file
	p.backup = gzip.NewWriter(file)
	p.log.Warn().Err(err).Str("backupPath", cfg.BackupPath).
		Msg("InfluxDB unreachable, writing export statistics to backup file")
	return p, nil
}

// Enabled reports whether points go anywhere.
func (p *Publisher) Enabled() bool {
	return p.writer != nil || p.backup != nil
}

// Publish writes one export point.
func (p *Publisher) Publish(ctx context.Context, e Export) error {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	point := e.Point()

	switch {
	case p.writer != nil:
		if err := p.writer.WritePoint(ctx, point); err != nil {
			return fmt.Errorf("error sending export point to InfluxDB: %w", err)
		}
	case p.backup != nil:
		line := strings.TrimRight(influxdb2_write.PointToLineProtocol(point, time.Nanosecond), "\n") + "\n"
		p.mu.Lock()
		_, err := p.backup.Write([]byte(line))
		p.mu.Unlock()
		if err != nil {
			return fmt.Errorf("error writing to InfluxDB backup file: %w", err)
		}
	default:
		return nil
	}

	p.log.Debug().Str("mission", e.Mission).Int("packets", e.Packets).Msg("Published export statistics")
	return nil
}

// Close flushes the backup file and closes the client.
func (p *Publisher) Close() error {
	if p.client != nil {
		p.client.Close()
	}
	if p.backup != nil {
		p.mu.Lock()
		defer p.mu.Unlock()
		if err := p.backup.Close(); err != nil {
			p.backupFile.Close()
			return fmt.Errorf("error flushing InfluxDB backup file: %w", err)
		}
		return p.backupFile.Close()
	}
	return nil
}
