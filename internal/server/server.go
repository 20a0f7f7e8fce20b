package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/example/go-wavtone/internal/audio"
	"github.com/example/go-wavtone/internal/config"
	"github.com/example/go-wavtone/internal/sample"
	"github.com/example/go-wavtone/internal/signal"
)

// EncoderSource resolves format names to encoders. *audio.Registry satisfies it.
type EncoderSource interface {
	Get(name string) (audio.Encoder, bool)
	Encoders() []audio.Encoder
}

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

type options struct {
	maxDuration    float64
	maxSampleRate  float64
	maxChannels    int
	workers        int
	requestTimeout time.Duration
	defaults       config.ToneConfig
	logger         *slog.Logger
}

func defaultOptions() options {
	return options{
		maxDuration:    60,
		maxSampleRate:  192000,
		maxChannels:    8,
		workers:        2,
		requestTimeout: 30 * time.Second,
		defaults:       config.DefaultConfig().Tone,
		logger:         slog.Default(),
	}
}

// Option configures the HTTP handler.
type Option func(*options)

// WithMaxDuration sets the longest tone, in seconds, that POST /tone accepts.
func WithMaxDuration(seconds float64) Option {
	return func(o *options) { o.maxDuration = seconds }
}

// WithMaxSampleRate sets the highest sample rate, in Hz, that POST /tone
// accepts. Zero disables the limit.
func WithMaxSampleRate(hz float64) Option {
	return func(o *options) { o.maxSampleRate = hz }
}

// WithMaxChannels sets the highest channel count POST /tone accepts. Zero
// disables the limit.
func WithMaxChannels(n int) Option {
	return func(o *options) { o.maxChannels = n }
}

// WithWorkers sets the maximum number of concurrent encodes. Zero disables
// throttling.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithRequestTimeout sets the per-request encode deadline.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) { o.requestTimeout = d }
}

// WithToneDefaults sets the values used for fields a request leaves out.
func WithToneDefaults(t config.ToneConfig) Option {
	return func(o *options) { o.defaults = t }
}

// WithLogger sets the slog.Logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ---------------------------------------------------------------------------
// handler
// ---------------------------------------------------------------------------

type handler struct {
	encoders EncoderSource
	opts     options
	sem      chan struct{}
	log      *slog.Logger
}

// NewHandler returns an http.Handler that serves /health, /formats, and POST /tone.
func NewHandler(encoders EncoderSource, optFns ...Option) http.Handler {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	h := &handler{
		encoders: encoders,
		opts:     opts,
		log:      opts.logger,
	}
	if opts.workers > 0 {
		h.sem = make(chan struct{}, opts.workers)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/formats", h.handleFormats)
	mux.HandleFunc("/tone", h.handleTone)
	return mux
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildVersion(),
	})
}

// FormatInfo describes one encodable sample format.
type FormatInfo struct {
	Name          string `json:"name"`
	BitsPerSample uint16 `json:"bits_per_sample"`
	Bytes         int    `json:"bytes"`
}

func (h *handler) handleFormats(w http.ResponseWriter, _ *http.Request) {
	encs := h.encoders.Encoders()
	out := make([]FormatInfo, 0, len(encs))
	for _, e := range encs {
		f := e.Format()
		out = append(out, FormatInfo{Name: f.Name(), BitsPerSample: f.BitsPerSample(), Bytes: f.Size()})
	}
	writeJSON(w, http.StatusOK, out)
}

// toneRequest fields are pointers so an explicit zero differs from "use default".
type toneRequest struct {
	Format     string   `json:"format"`
	Duration   *float64 `json:"duration"`
	Frequency  *float64 `json:"frequency"`
	Amplitude  *float64 `json:"amplitude"`
	SampleRate *float64 `json:"sample_rate"`
	Channels   *int     `json:"channels"`
}

func (r toneRequest) tone(defaults config.ToneConfig) config.ToneConfig {
	t := defaults
	if r.Format != "" {
		t.Format = r.Format
	}
	if r.Duration != nil {
		t.Duration = *r.Duration
	}
	if r.Frequency != nil {
		t.Frequency = *r.Frequency
	}
	if r.Amplitude != nil {
		t.Amplitude = *r.Amplitude
	}
	if r.SampleRate != nil {
		t.SampleRate = *r.SampleRate
	}
	if r.Channels != nil {
		t.Channels = *r.Channels
	}
	return t
}

func (h *handler) handleTone(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if r.Body == nil {
		writeError(w, http.StatusBadRequest, "request body is required")
		return
	}

	var req toneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	tone := req.tone(h.opts.defaults)

	enc, ok := h.encoders.Get(tone.Format)
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%v: %q", sample.ErrUnknownFormat, tone.Format))
		return
	}

	if h.opts.maxDuration > 0 && tone.Duration > h.opts.maxDuration {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("duration exceeds maximum of %g seconds", h.opts.maxDuration))
		return
	}
	if h.opts.maxSampleRate > 0 && tone.SampleRate > h.opts.maxSampleRate {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("sample rate exceeds maximum of %g Hz", h.opts.maxSampleRate))
		return
	}
	if h.opts.maxChannels > 0 && tone.Channels > h.opts.maxChannels {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("channels exceed maximum of %d", h.opts.maxChannels))
		return
	}

	p, err := tone.Params()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Acquire a worker slot, honouring cancellation while waiting. The slot
	// is released by the encode itself, which may outlive the request.
	release := func() {}
	if h.sem != nil {
		select {
		case h.sem <- struct{}{}:
		case <-r.Context().Done():
			writeError(w, http.StatusServiceUnavailable, "request cancelled while waiting for worker")
			return
		}
		release = func() { <-h.sem }
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.requestTimeout)
	defer cancel()

	start := time.Now()
	wav, err := encodeContext(ctx, enc, p, release)
	durationMS := time.Since(start).Milliseconds()

	format := enc.Format().Name()
	if err != nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			h.log.WarnContext(r.Context(), "encode timed out",
				slog.String("format", format),
				slog.Float64("duration_s", tone.Duration),
				slog.Int64("duration_ms", durationMS),
				slog.String("error", err.Error()),
			)
			writeError(w, http.StatusGatewayTimeout, "encode timed out")
		case isParamError(err):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.ErrorContext(r.Context(), "encode failed",
				slog.String("format", format),
				slog.Int64("duration_ms", durationMS),
				slog.String("error", err.Error()),
			)
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.log.InfoContext(r.Context(), "encode complete",
		slog.String("format", format),
		slog.Float64("duration_s", tone.Duration),
		slog.Int("channels", int(p.Channels)),
		slog.Int64("duration_ms", durationMS),
		slog.Int("wav_bytes", len(wav)),
	)

	w.Header().Set("Content-Type", "audio/wav")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(wav)
}

// encodeContext runs enc.Encode and gives up when ctx ends first. The encode
// itself is not interrupted; release runs once it has returned, so a worker
// slot stays taken for as long as its encode is running.
func encodeContext(ctx context.Context, enc audio.Encoder, p audio.Params, release func()) ([]byte, error) {
	type result struct {
		wav []byte
		err error
	}

	done := make(chan result, 1)
	go func() {
		defer release()
		wav, err := enc.Encode(p)
		done <- result{wav, err}
	}()

	select {
	case res := <-done:
		return res.wav, res.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func isParamError(err error) bool {
	for _, target := range []error{
		signal.ErrInvalidAmplitude,
		signal.ErrInvalidDuration,
		signal.ErrInvalidSampleRate,
		signal.ErrInvalidFrequency,
		audio.ErrInvalidChannels,
		audio.ErrPayloadTooLarge,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---------------------------------------------------------------------------
// Server wires the handler into net/http.Server with graceful shutdown
// ---------------------------------------------------------------------------

type Server struct {
	cfg             config.Config
	encoders        EncoderSource
	shutdownTimeout time.Duration
}

// New returns a Server for cfg. A nil encoders uses audio.DefaultRegistry.
func New(cfg config.Config, encoders EncoderSource) *Server {
	if encoders == nil {
		encoders = audio.DefaultRegistry()
	}
	return &Server{
		cfg:             cfg,
		encoders:        encoders,
		shutdownTimeout: 30 * time.Second,
	}
}

// WithShutdownTimeout overrides the graceful-shutdown drain period.
func (s *Server) WithShutdownTimeout(d time.Duration) *Server {
	s.shutdownTimeout = d
	return s
}

func (s *Server) handlerOptions() []Option {
	return []Option{
		WithWorkers(s.cfg.Server.Workers),
		WithMaxDuration(s.cfg.Server.MaxDuration),
		WithMaxSampleRate(s.cfg.Server.MaxSampleRate),
		WithMaxChannels(s.cfg.Server.MaxChannels),
		WithRequestTimeout(time.Duration(s.cfg.Server.RequestTimeout) * time.Second),
		WithToneDefaults(s.cfg.Tone),
	}
}

// Start serves until ctx is canceled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	format, err := config.NormalizeFormat(s.cfg.Tone.Format)
	if err != nil {
		return err
	}
	if format == config.FormatAll {
		return fmt.Errorf("server default format must be a single format, not %q", format)
	}

	httpServer := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           NewHandler(s.encoders, s.handlerOptions()...),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	slog.Info("listening", slog.String("addr", s.cfg.Server.ListenAddr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http listen: %w", err)
	}
}

// ProbeHTTP checks that a server at addr answers /health with 200.
func ProbeHTTP(addr string) error {
	resp, err := http.Get("http://" + addr + "/health") //nolint:noctx
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status: %s", resp.Status)
	}
	return nil
}
