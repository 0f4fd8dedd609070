package annotate

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"github.com/yolokit/go-annotate/classes"
	"github.com/yolokit/go-annotate/logging"
	"github.com/yolokit/go-annotate/postprocess"
	"github.com/yolokit/go-annotate/render"
	"github.com/yolokit/go-annotate/result"
	"gocv.io/x/gocv"
)

// ErrNoRegistry is returned when a Pipeline is created without classes
var ErrNoRegistry = errors.New("no class registry")

// Pipeline extracts detections from detector output and draws them.  The
// class registry may be replaced with Load while other goroutines are
// detecting or drawing, each call works against the registry that was
// current when it started
type Pipeline struct {
	registry  atomic.Pointer[classes.Registry]
	annotator *render.Annotator
	log       logrus.FieldLogger

	mu       sync.RWMutex
	params   postprocess.Params
	tracking bool
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithLogger sets the logger used by the pipeline and its annotator
func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Pipeline) {
		p.log = log
	}
}

// WithStyle sets the drawing style
func WithStyle(style render.Style) Option {
	return func(p *Pipeline) {
		p.annotator.Style = style
	}
}

// WithParams sets the confidence and IoU thresholds
func WithParams(params postprocess.Params) Option {
	return func(p *Pipeline) {
		p.params = params
	}
}

// WithTracking sets whether detector rows carry a track id column
func WithTracking(enabled bool) Option {
	return func(p *Pipeline) {
		p.tracking = enabled
	}
}

// New returns a Pipeline using the given registry with default thresholds
func New(registry *classes.Registry, opts ...Option) (*Pipeline, error) {

	if registry == nil {
		return nil, ErrNoRegistry
	}

	p := &Pipeline{
		annotator: render.NewAnnotator(render.DefaultStyle(), nil),
		log:       logging.Discard(),
		params:    postprocess.DefaultParams(),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.annotator.Log = p.log
	p.registry.Store(registry)

	return p, nil
}

// NewFromConfig loads the classes named by cfg and returns a Pipeline using
// its thresholds, tracking setting and connection space.  Options are
// applied after cfg
func NewFromConfig(cfg Config, opts ...Option) (*Pipeline, error) {

	registry, err := loadRegistry(cfg)

	if err != nil {
		return nil, err
	}

	opts = append([]Option{
		WithParams(cfg.Params()),
		WithTracking(cfg.Tracking),
		WithStyle(cfg.Style()),
	}, opts...)

	return New(registry, opts...)
}

func loadRegistry(cfg Config) (*classes.Registry, error) {

	if cfg.Classes != "" {
		return classes.LoadFile(cfg.Classes)
	}

	if cfg.Labels != "" {
		return classes.LoadLabels(cfg.Labels)
	}

	return nil, ErrNoRegistry
}

// Load reads class metadata from path and swaps it in as the active
// registry.  On error the current registry is kept
func (p *Pipeline) Load(path string) error {

	registry, err := classes.LoadFile(path)

	if err != nil {
		return err
	}

	p.SetRegistry(registry)

	p.log.WithFields(logrus.Fields{
		"path":    path,
		"classes": registry.Len(),
	}).Info("Loaded class registry")

	return nil
}

// SetRegistry swaps in a new active registry
func (p *Pipeline) SetRegistry(registry *classes.Registry) {
	if registry != nil {
		p.registry.Store(registry)
	}
}

// Registry returns the active registry
func (p *Pipeline) Registry() *classes.Registry {
	return p.registry.Load()
}

// SetParams replaces the confidence and IoU thresholds
func (p *Pipeline) SetParams(params postprocess.Params) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.params = params
}

// Params returns the current thresholds
func (p *Pipeline) Params() postprocess.Params {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.params
}

// SetTracking sets whether detector rows carry a track id column
func (p *Pipeline) SetTracking(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.tracking = enabled
}

// Schema returns the row schema in use
func (p *Pipeline) Schema() postprocess.Schema {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return postprocess.SchemaFor(p.tracking)
}

// Detect converts structured detector records into detections and applies
// the thresholds
func (p *Pipeline) Detect(records []postprocess.Record) ([]result.Detection, error) {

	ext := postprocess.NewExtractor(p.registry.Load(), p.Schema())
	dets, err := ext.FromRecords(records)

	if err != nil {
		return nil, err
	}

	return postprocess.Filter(dets, p.Params()), nil
}

// DetectJSON decodes the detector's JSON result and converts it as Detect
func (p *Pipeline) DetectJSON(data []byte) ([]result.Detection, error) {

	records, err := postprocess.DecodeRecords(data)

	if err != nil {
		return nil, err
	}

	return p.Detect(records)
}

// DetectRows converts positional detector rows into detections and applies
// the thresholds
func (p *Pipeline) DetectRows(rows [][]float32) ([]result.Detection, error) {

	ext := postprocess.NewExtractor(p.registry.Load(), p.Schema())
	dets, err := ext.FromRows(rows)

	if err != nil {
		return nil, err
	}

	return postprocess.Filter(dets, p.Params()), nil
}

// Draw attaches each detection's skeleton connections from the active
// registry and renders the detections onto a copy of frame.  The given
// detections are not modified
func (p *Pipeline) Draw(frame gocv.Mat, dets []result.Detection) (gocv.Mat, []render.Skipped, error) {

	out, skipped, err := p.annotator.Render(frame, AttachConnections(p.registry.Load(), dets))

	if err != nil {
		return out, nil, fmt.Errorf("error drawing detections: %w", err)
	}

	return out, skipped, nil
}

// AttachConnections returns copies of dets with the connections of their
// class skeleton from registry.  Detections of classes without a skeleton
// are copied unchanged
func AttachConnections(registry *classes.Registry, dets []result.Detection) []result.Detection {

	out := make([]result.Detection, len(dets))
	copy(out, dets)

	if registry == nil {
		return out
	}

	for i := range out {
		def, ok := registry.FindByName(out[i].Class)

		if !ok || def.Skeleton == nil {
			continue
		}

		out[i].Connections = def.Connections()
	}

	return out
}
