// Package api assembles the HTTP surface from the service modules
package api

import (
	"time"

	"reviewsense/internal/platform/config"
	"reviewsense/internal/platform/logger"
	phttp "reviewsense/internal/platform/net/http"
	"reviewsense/internal/platform/net/middleware"
	"reviewsense/internal/platform/store"

	"reviewsense/internal/modkit"
	"reviewsense/internal/modkit/httpkit"
	"reviewsense/internal/modkit/swaggerkit"

	groupsmod "reviewsense/internal/services/api/groups/module"
	evmod "reviewsense/internal/services/api/labelevents/module"
	labelsdom "reviewsense/internal/services/api/labels/domain"
	labelsmod "reviewsense/internal/services/api/labels/module"
	metahttp "reviewsense/internal/services/api/meta/http"
	metamod "reviewsense/internal/services/api/meta/module"
)

// DefaultUploadMaxBytes caps request bodies when Options.UploadMaxBytes is zero
const DefaultUploadMaxBytes = 32 << 20

// Options are the API options
type Options struct {
	// Config is the unprefixed root so modules can read their own keys
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool

	Classifier labelsdom.Classifier
	Batcher    labelsdom.Preparer
	Model      metahttp.ModelResponse

	CORSOrigins    []string
	UploadMaxBytes int64
	Timeout        time.Duration
	// MaxInFlight caps concurrent classification requests, zero leaves them unbounded
	MaxInFlight int
}

// Mount builds every module and mounts it on r
// labels owns / and /labels, everything else lives under /api/v1
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}

	maxBytes := opt.UploadMaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultUploadMaxBytes
	}
	stack := httpkit.Stack(httpkit.StackOptions{
		CORSOrigins:  opt.CORSOrigins,
		Timeout:      opt.Timeout,
		MaxBodyBytes: maxBytes,
	})

	// routes that run the model share one concurrency budget
	var inference []modkit.Option
	if opt.MaxInFlight > 0 {
		wait := opt.Timeout
		if wait <= 0 {
			wait = 30 * time.Second
		}
		inference = append(inference, modkit.WithMiddlewares(middleware.Throttle(opt.MaxInFlight, opt.MaxInFlight, wait)))
	}

	// analytics first so its sink can be handed to labels
	var events labelsdom.EventSink
	var mods []modkit.Module
	if deps.CH != nil {
		ev := evmod.New(deps)
		events = modkit.MustPortsOf[labelsdom.EventSink](ev)
		mods = append(mods, ev)
	}

	labels := labelsmod.New(deps, append(inference, modkit.WithPorts(labelsmod.Ports{
		Classifier: opt.Classifier,
		Batcher:    opt.Batcher,
		Events:     events,
	}))...)

	mods = append(mods, metamod.New(deps, modkit.WithPorts(metamod.Ports{Model: opt.Model})))

	if deps.PG != nil {
		mods = append(mods, groupsmod.New(deps, append(inference, modkit.WithPorts(groupsmod.Ports{
			Predictor: modkit.MustPortsOf[labelsmod.Predictor](labels),
		}))...))
	}

	r.Group(func(root phttp.Router) {
		root.Use(stack...)
		labels.MountRoutes(root)
	})

	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
		}
	})

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
}
