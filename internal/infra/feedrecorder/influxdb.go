package feedrecorder

import (
	"context"
	"log/slog"
	"strconv"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/finchboard/tickerlane/internal/domain"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	bucket   string
	org      string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.FeedRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "feed recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, feed recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "feed recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		bucket:   cfg.InfluxDBBucket,
		org:      cfg.InfluxDBOrg,
	}, nil
}

func (r *influxDBRecorder) RecordDispatches(ctx context.Context, records []domain.DispatchRecord) error {
	if len(records) == 0 {
		return nil
	}

	for _, record := range records {
		point := influxdb2.NewPoint(
			"ticker_dispatch",
			map[string]string{
				"lane_id":     strconv.Itoa(record.LaneID),
				"headline_id": record.HeadlineID,
			},
			map[string]any{
				"event_id":     record.EventID,
				"rate":         record.Rate,
				"extent":       record.Extent,
				"traversal_ms": record.TraversalMS,
				"reuse_ms":     record.LaneReuseMS,
			},
			record.DispatchedAt,
		)

		if err := r.writeAPI.WritePoint(ctx, point); err != nil {
			slog.WarnContext(ctx, "failed to write dispatch record to InfluxDB",
				slog.String("error", err.Error()),
				slog.String("event_id", record.EventID),
				slog.Int("lane_id", record.LaneID),
			)
		}
	}

	return nil
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
