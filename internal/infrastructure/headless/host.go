package headless

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dop251/goja"
	"github.com/google/uuid"

	"github.com/bnema/webshell/internal/application/port"
	"github.com/bnema/webshell/internal/logging"
)

// Compile-time interface check.
var _ port.RenderHost = (*Host)(nil)

const defaultFetchTimeout = 30 * time.Second

// Download is a download the page started by clicking an anchor.
type Download struct {
	URL               string
	SuggestedFilename string
	MIMEType          string
}

// Options configures a Host. Every callback runs on the main thread.
type Options struct {
	// HandlerName is the script message handler pages post to.
	HandlerName string
	// UserScripts run at document start of every page, in order.
	UserScripts []string

	OnMessage      func(raw string)
	OnDownload     func(d Download)
	OnLoadFinished func(uri string)
	OnLoadFailed   func(uri string, err error)
	// Console receives page console output. Defaults to the logger.
	Console func(level, message string)

	Fetch PageFetcher
}

// Host is a port.RenderHost backed by a goja runtime. Like a real web
// view it is owned by the main thread: every method, callback and script
// runs there.
type Host struct {
	ctx  context.Context
	main port.MainThread
	opts Options

	vm    *goja.Runtime
	uri   string
	title string
	back  []string

	// loadSeq discards commits of superseded loads.
	loadSeq uint64
	// generation invalidates timers of previous pages.
	generation uint64
	nextTimer  int64
	timers     map[int64]*time.Timer
}

// NewHost creates a host showing about:blank.
func NewHost(ctx context.Context, main port.MainThread, opts Options) *Host {
	if opts.Fetch == nil {
		opts.Fetch = NewFetcher(defaultFetchTimeout, nil)
	}
	h := &Host{
		ctx:    logging.WithComponent(ctx, "headless"),
		main:   main,
		opts:   opts,
		uri:    "about:blank",
		timers: make(map[int64]*time.Timer),
	}
	h.reset(page{})
	return h
}

// URI returns the committed page URI.
func (h *Host) URI() string { return h.uri }

// Title returns the committed page title.
func (h *Host) Title() string { return h.title }

// PendingTimers is the number of scheduled page timers that have not fired.
func (h *Host) PendingTimers() int { return len(h.timers) }

// CanGoBack reports whether a previous page exists.
func (h *Host) CanGoBack() bool { return len(h.back) > 0 }

// GoBack loads the previous page.
func (h *Host) GoBack(ctx context.Context) error {
	if len(h.back) == 0 {
		return errors.New("no previous page")
	}
	prev := h.back[len(h.back)-1]
	h.back = h.back[:len(h.back)-1]
	h.load(ctx, prev, false)
	return nil
}

// LoadURI starts loading uri. The load completes asynchronously with
// OnLoadFinished or OnLoadFailed.
func (h *Host) LoadURI(ctx context.Context, uri string) error {
	if _, err := url.Parse(uri); err != nil {
		return fmt.Errorf("invalid uri %q: %w", uri, err)
	}
	h.load(ctx, uri, true)
	return nil
}

func (h *Host) load(ctx context.Context, uri string, push bool) {
	h.loadSeq++
	seq := h.loadSeq
	log := logging.FromContext(h.ctx)
	log.Debug().Str("uri", uri).Msg("loading page")

	go func() {
		src, err := h.opts.Fetch.Fetch(ctx, uri)
		h.main.Post(func() {
			if seq != h.loadSeq {
				return
			}
			if err != nil {
				log.Warn().Err(err).Str("uri", uri).Msg("page load failed")
				if h.opts.OnLoadFailed != nil {
					h.opts.OnLoadFailed(uri, err)
				}
				return
			}
			h.commit(uri, src, push)
		})
	}()
}

func (h *Host) commit(uri, src string, push bool) {
	log := logging.FromContext(h.ctx)

	p, err := parsePage(src)
	if err != nil {
		if h.opts.OnLoadFailed != nil {
			h.opts.OnLoadFailed(uri, err)
		}
		return
	}

	if push && h.uri != "" && h.uri != "about:blank" {
		h.back = append(h.back, h.uri)
	}
	h.uri = uri
	h.title = p.Title
	h.reset(p)

	for _, code := range p.Scripts {
		if _, err := h.vm.RunString(code); err != nil {
			log.Warn().Err(err).Str("uri", uri).Msg("page script failed")
		}
	}

	log.Debug().Str("uri", uri).Int("scripts", len(p.Scripts)).Msg("page committed")
	if h.opts.OnLoadFinished != nil {
		h.opts.OnLoadFinished(uri)
	}
}

// EvaluateScript runs src in the current page. Exceptions are logged.
func (h *Host) EvaluateScript(ctx context.Context, src string) {
	if _, err := h.vm.RunString(src); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("script evaluation failed")
	}
}

// reset replaces the runtime with a fresh page environment.
func (h *Host) reset(p page) {
	h.generation++
	for id, t := range h.timers {
		t.Stop()
		delete(h.timers, id)
	}

	vm := goja.New()
	if err := vm.Set("__host", h.native(vm)); err != nil {
		logging.FromContext(h.ctx).Error().Err(err).Msg("failed to install host object")
	}
	if _, err := vm.RunString(prelude); err != nil {
		logging.FromContext(h.ctx).Error().Err(err).Msg("failed to install page prelude")
	}
	doc := vm.Get("document").ToObject(vm)
	_ = doc.Set("title", p.Title)
	_ = doc.Get("body").ToObject(vm).Set("innerText", p.Text)
	h.vm = vm

	for _, code := range h.opts.UserScripts {
		if _, err := vm.RunString(code); err != nil {
			logging.FromContext(h.ctx).Warn().Err(err).Msg("user script failed")
		}
	}
}

// native builds the __host object the prelude consumes.
func (h *Host) native(vm *goja.Runtime) map[string]any {
	generation := h.generation
	return map[string]any{
		"uri":     func() string { return h.uri },
		"origin":  func() string { return origin(h.uri) },
		"handler": func() string { return h.opts.HandlerName },
		"uuid":    func() string { return uuid.NewString() },
		"base64": func(s string) string {
			return base64.StdEncoding.EncodeToString([]byte(s))
		},
		"console": h.console,
		"postMessage": func(call goja.FunctionCall) goja.Value {
			h.postMessage(call.Argument(0))
			return goja.Undefined()
		},
		"setTimeout": func(call goja.FunctionCall) goja.Value {
			fn, ok := goja.AssertFunction(call.Argument(0))
			if !ok {
				return vm.ToValue(0)
			}
			return vm.ToValue(h.setTimeout(generation, fn, call.Argument(1).ToInteger()))
		},
		"clearTimeout": func(id int64) { h.clearTimeout(id) },
		"download": func(href, name, mimeType string) {
			if h.opts.OnDownload == nil {
				return
			}
			d := Download{URL: href, SuggestedFilename: name, MIMEType: mimeType}
			h.main.Post(func() { h.opts.OnDownload(d) })
		},
		"navigate": func(href string) {
			target := resolve(h.uri, href)
			h.main.Post(func() { _ = h.LoadURI(h.ctx, target) })
		},
	}
}

func (h *Host) postMessage(v goja.Value) {
	if h.opts.OnMessage == nil {
		return
	}
	var raw string
	if s, ok := v.Export().(string); ok {
		raw = s
	} else {
		b, err := json.Marshal(v.Export())
		if err != nil {
			logging.FromContext(h.ctx).Warn().Err(err).Msg("unserializable script message")
			return
		}
		raw = string(b)
	}
	h.opts.OnMessage(raw)
}

func (h *Host) console(level, message string) {
	if h.opts.Console != nil {
		h.opts.Console(level, message)
		return
	}
	log := logging.FromContext(h.ctx)
	switch level {
	case "error":
		log.Warn().Str("source", "console").Msg(message)
	default:
		log.Debug().Str("source", "console").Str("level", level).Msg(message)
	}
}

func (h *Host) setTimeout(generation uint64, fn goja.Callable, ms int64) int64 {
	if ms < 0 {
		ms = 0
	}
	h.nextTimer++
	id := h.nextTimer
	h.timers[id] = time.AfterFunc(time.Duration(ms)*time.Millisecond, func() {
		h.main.Post(func() {
			if generation != h.generation {
				return
			}
			if _, ok := h.timers[id]; !ok {
				return
			}
			delete(h.timers, id)
			if _, err := fn(goja.Undefined()); err != nil {
				logging.FromContext(h.ctx).Warn().Err(err).Msg("timer callback failed")
			}
		})
	})
	return id
}

func (h *Host) clearTimeout(id int64) {
	if t, ok := h.timers[id]; ok {
		t.Stop()
		delete(h.timers, id)
	}
}

func origin(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Host == "" {
		return "null"
	}
	return u.Scheme + "://" + u.Host
}

func resolve(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
