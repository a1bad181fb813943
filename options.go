package psmap

import (
	"log/slog"

	"github.com/hupe1980/psmap/codec"
	"github.com/hupe1980/psmap/internal/compress"
)

type options struct {
	mergeThreshold int
	capacity       int
	metrics        MetricsCollector
	logger         *Logger
}

// Option configures a Map or Set.
type Option func(*options)

// WithMergeThreshold sets the maximum length of the unsorted suffix before
// it is merged into the sorted prefix. Larger values make insertion cheaper
// and lookups of recent ids slower. Values below 1 select MergeThreshold.
func WithMergeThreshold(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = MergeThreshold
		}
		o.mergeThreshold = n
	}
}

// WithCapacity preallocates room for n entries.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithMetricsCollector configures a collector for merge, removal and
// snapshot metrics. Pass nil to disable metrics collection.
//
// Example:
//
//	metrics := &psmap.BasicMetricsCollector{}
//	m := psmap.New[string](psmap.WithMetricsCollector(metrics))
//	// ... use m ...
//	stats := metrics.GetStats()
//	fmt.Printf("Merges: %d, Swap removals: %d\n", stats.MergeCount, stats.SwapRemoveCount)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithLogger configures structured logging. Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := psmap.NewJSONLogger(slog.LevelDebug)
//	m := psmap.New[int](psmap.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = noopLogger
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func defaultOptions() *options {
	return &options{
		mergeThreshold: MergeThreshold,
		metrics:        NoopMetricsCollector{},
		logger:         noopLogger,
	}
}

func applyOptions(optFns []Option) *options {
	o := defaultOptions()
	for _, fn := range optFns {
		if fn != nil {
			fn(o)
		}
	}
	return o
}

// Compression selects the block compression of a snapshot payload.
type Compression = compress.Type

const (
	// CompressionNone stores the payload as is.
	CompressionNone = compress.None
	// CompressionLZ4 favours speed.
	CompressionLZ4 = compress.LZ4
	// CompressionZSTD favours ratio.
	CompressionZSTD = compress.ZSTD
)

type snapshotOptions struct {
	codec             codec.Codec
	compression       Compression
	uploadConcurrency int
	maxPayloadSize    int
	logger            *Logger
	metrics           MetricsCollector
	mapOpts           []Option
}

// SnapshotOption configures snapshot encoding, decoding and upload.
type SnapshotOption func(*snapshotOptions)

// WithCodec configures the codec used for values.
//
// If nil is passed, codec.Default is used. Decoding selects the codec
// recorded in the snapshot header, so this only matters when writing.
func WithCodec(c codec.Codec) SnapshotOption {
	return func(o *snapshotOptions) {
		if c == nil {
			c = codec.Default
		}
		o.codec = c
	}
}

// WithCompression configures payload compression. Defaults to LZ4.
func WithCompression(c Compression) SnapshotOption {
	return func(o *snapshotOptions) {
		o.compression = c
	}
}

// WithUploadConcurrency bounds the number of concurrent uploads in SaveAll.
// Values below 1 select the default of 4.
func WithUploadConcurrency(n int) SnapshotOption {
	return func(o *snapshotOptions) {
		o.uploadConcurrency = n
	}
}

// DefaultMaxPayloadSize is the largest uncompressed snapshot payload Decode
// accepts unless WithMaxPayloadSize says otherwise.
const DefaultMaxPayloadSize = 1 << 30

// WithMaxPayloadSize bounds the uncompressed payload size Decode and Load
// accept. Snapshots declaring more are rejected before any payload memory
// is allocated. Values below 1 select DefaultMaxPayloadSize.
func WithMaxPayloadSize(n int) SnapshotOption {
	return func(o *snapshotOptions) {
		o.maxPayloadSize = n
	}
}

// WithSnapshotLogger configures logging for Save, Load and SaveAll.
func WithSnapshotLogger(logger *Logger) SnapshotOption {
	return func(o *snapshotOptions) {
		if logger == nil {
			logger = noopLogger
		}
		o.logger = logger
	}
}

// WithSnapshotMetrics configures the collector notified after each
// snapshot is encoded or decoded.
func WithSnapshotMetrics(mc MetricsCollector) SnapshotOption {
	return func(o *snapshotOptions) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithMapOptions configures the Map built by Decode and Load.
func WithMapOptions(opts ...Option) SnapshotOption {
	return func(o *snapshotOptions) {
		o.mapOpts = append(o.mapOpts, opts...)
	}
}

func applySnapshotOptions(optFns []SnapshotOption) snapshotOptions {
	o := snapshotOptions{
		codec:             codec.Default,
		compression:       CompressionLZ4,
		uploadConcurrency: 4,
		maxPayloadSize:    DefaultMaxPayloadSize,
		logger:            noopLogger,
		metrics:           NoopMetricsCollector{},
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.uploadConcurrency < 1 {
		o.uploadConcurrency = 4
	}
	if o.maxPayloadSize < 1 {
		o.maxPayloadSize = DefaultMaxPayloadSize
	}
	return o
}
