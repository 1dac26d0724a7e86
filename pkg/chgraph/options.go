package chgraph

// Logger is the optional structured-logging sink the reader reports
// through. Nothing on the request path logs by default; supply one
// via ReaderOptions.Logger to observe cache misses, which are reported
// at debug level (zapLogger in log.go adapts a *zap.Logger to this).
// Deserialize failures are returned to the caller and are not logged.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugw(string, ...interface{}) {}
func (noopLogger) Warnw(string, ...interface{})  {}

// ReaderOptions configures a Reader at construction.
type ReaderOptions struct {
	// BlockSize is the maximum number of vertices per block. Required.
	BlockSize uint32

	// Zoom sets the tile resolution the region index was built at.
	Zoom int32

	// Profiles is the immutable set of supported vehicle-profile names
	// captured at construction.
	Profiles []string

	// VertexCacheSize bounds the vertex/arc block cache. Default: 5000.
	VertexCacheSize int

	// ShapeCacheSize bounds the shape block cache. Default: 1000.
	ShapeCacheSize int

	// RegionCacheSize bounds the region (tile) cache. Default: 1000.
	RegionCacheSize int

	// MayBeCompressed indicates blocks, shapes, and regions were
	// written through a snappy block compressor and must be inflated
	// on read.
	MayBeCompressed bool

	// Tags is the opaque external tag-collection index forwarded
	// unchanged through Reader.Tags().
	Tags TagIndex

	// Logger receives cache-miss diagnostics. Defaults to a no-op
	// logger.
	Logger Logger
}

// DefaultReaderOptions returns options with the cache capacities
// named in the component design (~5000 / ~1000 / ~1000 entries).
func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{
		BlockSize:       1024,
		Zoom:            12,
		VertexCacheSize: 5000,
		ShapeCacheSize:  1000,
		RegionCacheSize: 1000,
		Logger:          noopLogger{},
	}
}

func (o ReaderOptions) withDefaults() ReaderOptions {
	if o.VertexCacheSize <= 0 {
		o.VertexCacheSize = 5000
	}
	if o.ShapeCacheSize <= 0 {
		o.ShapeCacheSize = 1000
	}
	if o.RegionCacheSize <= 0 {
		o.RegionCacheSize = 1000
	}
	if o.Logger == nil {
		o.Logger = noopLogger{}
	}
	return o
}
