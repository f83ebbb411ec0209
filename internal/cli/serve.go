package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/imgrid/imgrid/pkg/buildinfo"
	"github.com/imgrid/imgrid/pkg/cache"
	"github.com/imgrid/imgrid/pkg/compose"
	"github.com/imgrid/imgrid/pkg/errors"
	"github.com/imgrid/imgrid/pkg/geom"
	imgio "github.com/imgrid/imgrid/pkg/io"
	"github.com/imgrid/imgrid/pkg/layout"
	"github.com/imgrid/imgrid/pkg/observability"
)

// =============================================================================
// Serve Command
// =============================================================================

// serveCommand creates the serve command for exposing composites over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags     composeFlags
		addr      string
		cacheKind string
		redisAddr string
		ttl       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve [flags] image...",
		Short: "Serve composites over HTTP",
		Long: `Serve the composite of the given images over HTTP.

Endpoints:
  GET /composite.png   the composite as PNG
  GET /composite.jpg   the composite as JPEG
  GET /api/layout      the pane layout as JSON
  GET /healthz         liveness probe

The composite endpoints accept w, h, and cols query parameters to
override the canvas size and column count per request. Rendered
responses are cached; select the backend with --cache.`,
		Example: `  imgrid serve a.jpg b.jpg c.jpg
  imgrid serve --addr :9090 --cache redis -l 2 *.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), args, flags, cmd.Flags(), serveSettings{
				addr:      addr,
				cacheKind: cacheKind,
				redisAddr: redisAddr,
				ttl:       ttl,
			})
		},
	}

	registerComposeFlags(cmd.Flags(), &flags)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&cacheKind, "cache", "", "cache backend: memory, file, redis, none (default memory)")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "", "redis address for --cache redis")
	cmd.Flags().DurationVar(&ttl, "ttl", 15*time.Minute, "cached composite lifetime")

	return cmd
}

// serveSettings holds the listener configuration after flag parsing.
// Empty strings fall back to the config file and then to defaults.
type serveSettings struct {
	addr      string
	cacheKind string
	redisAddr string
	ttl       time.Duration
}

// runServe validates the inputs, builds the server, and blocks until the
// context is cancelled or the listener fails.
func (c *CLI) runServe(ctx context.Context, paths []string, f composeFlags, fs *pflag.FlagSet, st serveSettings) error {
	cfg, err := c.loadConfig(f)
	if err != nil {
		return err
	}
	if !c.levelSet {
		level, err := cfg.LogLevel()
		if err != nil {
			return err
		}
		c.Logger.SetLevel(level)
	}

	opts, err := buildOptions(cfg, f, fs)
	if err != nil {
		return err
	}
	opts.Logger = c.Logger

	if st.addr == "" {
		st.addr = cfg.Serve.Addr
	}
	if st.cacheKind == "" {
		st.cacheKind = cfg.Serve.Cache
	}
	if st.redisAddr == "" {
		st.redisAddr = cfg.Serve.RedisAddr
	}

	backend, err := newCacheBackend(st.cacheKind, st.redisAddr)
	if err != nil {
		return err
	}
	defer backend.Close()

	// Fail on bad settings at startup rather than on the first request.
	// Unreadable images only warn, matching batch mode: their panes
	// render as empty bordered cells.
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Checking %d images...", len(paths)))
	spinner.Start()
	probe, err := compose.New(paths, opts)
	if err == nil {
		err = probe.Load(ctx)
	}
	if err != nil {
		spinner.StopWithError("Startup check failed")
		return err
	}
	loaded := 0
	for _, im := range probe.Images() {
		if im.Loaded() {
			loaded++
		}
	}
	spinner.StopWithSuccess(fmt.Sprintf("Readable images: %d of %d", loaded, len(paths)))

	observability.SetCacheHooks(cacheLogHooks{logger: c.Logger})
	defer observability.Reset()

	srv := &server{
		logger: c.Logger,
		paths:  paths,
		opts:   opts,
		cache:  backend,
		ttl:    st.ttl,
	}

	httpSrv := &http.Server{
		Addr:              st.addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	printInfo("Serving %d images on %s", len(paths), st.addr)
	printDetail("composite  %s", StyleLink.Render(displayURL(st.addr)+"/composite.png"))
	printDetail("layout     %s", StyleLink.Render(displayURL(st.addr)+"/api/layout"))
	printDetail("cache      %s, ttl %s", st.cacheKind, st.ttl)

	c.Logger.Info("server listening", "addr", st.addr, "cache", st.cacheKind)
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(errors.ErrCodeInternal, err, "server failed")
	}
	return nil
}

// displayURL renders a listen address as a clickable URL.
func displayURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// newCacheBackend builds the response cache selected by name.
func newCacheBackend(kind, redisAddr string) (cache.Cache, error) {
	switch kind {
	case "", "memory":
		return cache.NewMemoryCache(), nil
	case "file":
		dir, err := cacheDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "resolve cache directory")
		}
		return cache.NewFileCache(filepath.Join(dir, "composites"))
	case "redis":
		return cache.NewRedisCache(redisAddr), nil
	case "none":
		return cache.NewNullCache(), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "cache backend %q not supported (memory, file, redis, none)", kind)
}

// =============================================================================
// Server
// =============================================================================

// server carries the per-process state shared by all requests. Each
// request builds its own session, so requests never share mutable state;
// repeated renders are absorbed by the response cache instead.
type server struct {
	logger *log.Logger
	paths  []string
	opts   compose.Options
	cache  cache.Cache
	ttl    time.Duration
}

// routes builds the HTTP router.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.instrument)
	r.Get("/", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	r.Get("/composite.png", s.handleComposite)
	r.Get("/composite.jpg", s.handleComposite)
	r.Get("/api/layout", s.handleLayout)
	return r
}

// instrument tags each request with an id, attaches a request-scoped
// logger to the context, and reports timing through the HTTP hooks.
func (s *server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		reqLogger := s.logger.With("request", id[:8])
		ctx := withLogger(r.Context(), reqLogger)

		w.Header().Set("X-Request-ID", id)
		observability.HTTP().OnRequest(ctx, r.Method, r.URL.Path)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(ctx))
		duration := time.Since(start)

		observability.HTTP().OnResponse(ctx, r.Method, r.URL.Path, rec.status, duration)
		reqLogger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", duration.Round(time.Millisecond),
		)
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// =============================================================================
// Handlers
// =============================================================================

const indexHTML = `<!doctype html>
<html>
<head><title>imgrid</title></head>
<body>
<h1>imgrid</h1>
<p>Serving a composite of %d images.</p>
<ul>
<li><a href="/composite.png">composite.png</a></li>
<li><a href="/composite.jpg">composite.jpg</a></li>
<li><a href="/api/layout">layout JSON</a></li>
<li><a href="/healthz">health</a></li>
</ul>
<p><img src="/composite.png" alt="composite"></p>
</body>
</html>
`

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, indexHTML, len(s.paths))
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// handleComposite renders (or replays from cache) the composite in the
// format selected by the request path.
func (s *server) handleComposite(w http.ResponseWriter, r *http.Request) {
	format := imgio.FormatJPEG
	contentType := "image/jpeg"
	output := "composite.jpg"
	if strings.HasSuffix(r.URL.Path, ".png") {
		format = imgio.FormatPNG
		contentType = "image/png"
		output = "composite.png"
	}

	opts, err := s.requestOptions(r, output)
	if err != nil {
		s.error(w, r, err)
		return
	}

	ctx := r.Context()
	key := s.compositeKey(string(format), opts)
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		loggerFromContext(ctx).Warn("cache read failed", "error", err)
	}
	if ok {
		observability.Cache().OnCacheHit(ctx, "composite")
		s.writeImage(w, contentType, data)
		return
	}
	observability.Cache().OnCacheMiss(ctx, "composite")

	data, err = s.renderComposite(ctx, opts, format)
	if err != nil {
		s.error(w, r, err)
		return
	}

	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		loggerFromContext(ctx).Warn("cache write failed", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "composite", len(data))
	}
	s.writeImage(w, contentType, data)
}

// handleLayout reports the pane placement for the requested geometry
// without decoding any image data.
func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r, "composite.png")
	if err != nil {
		s.error(w, r, err)
		return
	}
	sess, err := compose.New(s.paths, opts)
	if err != nil {
		s.error(w, r, err)
		return
	}
	if err := sess.CheckLayout(); err != nil {
		s.error(w, r, err)
		return
	}

	plan := sess.Plan()
	resp := layoutResponse{
		Mode:       sess.Mode().String(),
		Cols:       plan.Cols,
		Rows:       plan.Rows,
		CellWidth:  plan.CellW,
		CellHeight: plan.CellH,
		UsedWidth:  plan.UsedWidth,
		UsedHeight: plan.UsedHeight,
	}
	for i := range plan.Full {
		pane := paneJSON{
			Index:   i,
			Full:    toRectJSON(plan.Full[i]),
			Content: toRectJSON(plan.Content[i]),
		}
		if i < len(s.paths) {
			pane.Image = filepath.Base(s.paths[i])
		}
		resp.Panes = append(resp.Panes, pane)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

// =============================================================================
// Request Helpers
// =============================================================================

// requestOptions applies query parameter overrides to the base options.
// A w or h parameter replaces the configured size pair entirely, the
// same rule the command line applies to size flags.
func (s *server) requestOptions(r *http.Request, output string) (compose.Options, error) {
	opts := s.opts
	opts.OutputPath = output
	opts.Logger = loggerFromContext(r.Context())

	q := r.URL.Query()
	w, err := queryInt(q, "w")
	if err != nil {
		return compose.Options{}, err
	}
	h, err := queryInt(q, "h")
	if err != nil {
		return compose.Options{}, err
	}
	if w > 0 || h > 0 {
		opts.Sizing = layout.Sizing{CanvasWidth: w, CanvasHeight: h}
	}

	cols, err := queryInt(q, "cols")
	if err != nil {
		return compose.Options{}, err
	}
	if cols > 0 {
		opts.Cols = cols
	}
	return opts, nil
}

// queryInt parses an optional positive integer query parameter.
func queryInt(q url.Values, key string) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.New(errors.ErrCodeInvalidGeometry, "query parameter %s=%q must be a positive integer", key, raw)
	}
	return n, nil
}

// renderComposite builds a fresh session and encodes one frame.
func (s *server) renderComposite(ctx context.Context, opts compose.Options, format imgio.Format) ([]byte, error) {
	sess, err := compose.New(s.paths, opts)
	if err != nil {
		return nil, err
	}
	if err := sess.Load(ctx); err != nil {
		return nil, err
	}
	frame, err := sess.Frame(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imgio.Encode(&buf, frame, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// compositeKey builds the cache key for one rendered composite. Source
// file modification times participate so edited files invalidate their
// cached composites.
func (s *server) compositeKey(format string, opts compose.Options) string {
	parts := []any{
		"composite", format,
		int(opts.Mode), opts.Cols, opts.Border.Name,
		opts.Sizing.ImageWidth, opts.Sizing.ImageHeight,
		opts.Sizing.CanvasWidth, opts.Sizing.CanvasHeight,
	}
	for _, spec := range opts.Crops {
		parts = append(parts, spec.Index, spec.Rect.X, spec.Rect.Y, spec.Rect.W, spec.Rect.H)
	}
	for _, p := range s.paths {
		parts = append(parts, p)
		if info, err := os.Stat(p); err == nil {
			parts = append(parts, info.ModTime().UnixNano())
		}
	}
	return cache.CompositeKey(parts...)
}

func (s *server) writeImage(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	_, _ = w.Write(data)
}

// error writes a JSON error response. Validation failures map to 400,
// everything else to 500.
func (s *server) error(w http.ResponseWriter, r *http.Request, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)

	status := http.StatusInternalServerError
	if errors.IsConfig(err) {
		status = http.StatusBadRequest
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	})
}

// =============================================================================
// Response Types
// =============================================================================

// errorResponse is the JSON body for failed requests.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// layoutResponse describes the computed grid for the layout endpoint.
type layoutResponse struct {
	Mode       string     `json:"mode"`
	Cols       int        `json:"cols"`
	Rows       int        `json:"rows"`
	CellWidth  int        `json:"cell_width"`
	CellHeight int        `json:"cell_height"`
	UsedWidth  int        `json:"used_width"`
	UsedHeight int        `json:"used_height"`
	Panes      []paneJSON `json:"panes"`
}

// paneJSON is one pane placement in the layout response.
type paneJSON struct {
	Index   int      `json:"index"`
	Image   string   `json:"image,omitempty"`
	Full    rectJSON `json:"full"`
	Content rectJSON `json:"content"`
}

type rectJSON struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

func toRectJSON(r geom.Rect) rectJSON {
	return rectJSON{X: r.X, Y: r.Y, W: r.W, H: r.H}
}

// =============================================================================
// Cache Hooks
// =============================================================================

// cacheLogHooks reports cache activity at debug level.
type cacheLogHooks struct {
	observability.NoopCacheHooks
	logger *log.Logger
}

func (h cacheLogHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h cacheLogHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h cacheLogHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.logger.Debug("cache store", "type", keyType, "bytes", size)
}
