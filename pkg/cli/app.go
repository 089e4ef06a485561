package cli

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/mwapio/console/pkg/apiclient"
	"github.com/mwapio/console/pkg/authz"
	"github.com/mwapio/console/pkg/config"
	"github.com/mwapio/console/pkg/entities"
	"github.com/mwapio/console/pkg/observability"
	"github.com/mwapio/console/pkg/roles"
	"github.com/mwapio/console/pkg/session"
)

// App carries the shared wiring behind every command: configuration,
// the session store, the API client, the role resolver, and the entity
// client families. Backend wiring is lazy so context and help commands
// work without a configured deployment.
type App struct {
	Out io.Writer
	Log *logrus.Logger

	cfg          *config.Config
	contexts     *config.ContextsFile
	contextsPath string

	logger   *observability.Logger
	metrics  *observability.Metrics
	store    *session.Store
	client   *apiclient.Client
	cache    *apiclient.Cache
	resolver *roles.Resolver
	services *entities.Service

	shutdownTracing func(context.Context) error
	connected       bool
}

// NewApp loads configuration and the context file. It does not touch
// the network.
func NewApp(out io.Writer) (*App, error) {
	if out == nil {
		out = os.Stdout
	}

	contextsPath, err := config.DefaultContextsPath()
	if err != nil {
		return nil, err
	}
	contexts, err := config.LoadContexts(contextsPath)
	if err != nil {
		return nil, err
	}

	cfg := config.Load()
	cfg.ApplyContext(contexts.Current())

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrusLevel(cfg.Observability.LogLevel))
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	return &App{
		Out:          out,
		Log:          log,
		cfg:          cfg,
		contexts:     contexts,
		contextsPath: contextsPath,
		logger:       observability.NewLogger(cfg.Observability.LogLevel, os.Stderr),
	}, nil
}

// logrusLevel maps the shared log level onto logrus
func logrusLevel(level observability.LogLevel) logrus.Level {
	switch level {
	case observability.DebugLevel:
		return logrus.DebugLevel
	case observability.WarnLevel:
		return logrus.WarnLevel
	case observability.ErrorLevel:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// connect validates configuration and builds the backend wiring. It is
// idempotent. withProvider additionally runs OIDC discovery, needed
// only by login.
func (a *App) connect(ctx context.Context, withProvider bool) error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	if a.connected {
		return nil
	}

	if a.cfg.Observability.MetricsEnabled {
		a.metrics = observability.NewMetrics(prometheus.NewRegistry())
	}

	if a.cfg.Observability.OTelEnabled {
		shutdown, err := observability.InitTracing(ctx, observability.OTelConfig{
			Enabled:        true,
			Endpoint:       a.cfg.Observability.OTelEndpoint,
			ServiceName:    a.cfg.Observability.OTelServiceName,
			ServiceVersion: a.cfg.Observability.OTelServiceVersion,
			Insecure:       a.cfg.Observability.OTelInsecure,
		}, a.logger)
		if err != nil {
			return err
		}
		a.shutdownTracing = shutdown
	}

	creds, err := session.NewFileStore(a.cfg.OIDC.CredentialsPath)
	if err != nil {
		return err
	}

	var provider *session.Provider
	if withProvider {
		provider, err = a.newProvider(ctx)
		if err != nil {
			return err
		}
	}

	store, err := session.NewStore(provider, creds,
		session.WithLogger(a.logger),
		session.WithMetrics(a.metrics),
		session.WithCallbackAddr(a.cfg.OIDC.CallbackAddr),
		session.WithLoginTimeout(a.cfg.OIDC.LoginTimeout),
		session.WithAuthURLHandler(func(url string) {
			fmt.Fprintf(a.Out, "Open the following URL in your browser to sign in:\n\n  %s\n\n", url)
		}),
	)
	if err != nil {
		return err
	}
	a.store = store

	clientOpts := []apiclient.Option{
		apiclient.WithHTTPClient(&http.Client{Timeout: a.cfg.API.Timeout}),
		apiclient.WithLogger(a.logger),
		apiclient.WithMetrics(a.metrics),
		apiclient.WithRetryPolicy(apiclient.Policy{
			MaxAttempts:       a.cfg.Retry.MaxAttempts,
			Backoff:           a.cfg.Retry.Backoff,
			MaxBackoff:        a.cfg.Retry.MaxBackoff,
			RetryableStatuses: apiclient.DefaultPolicy().RetryableStatuses,
		}),
	}
	if a.cfg.Observability.OTelEnabled {
		clientOpts = append(clientOpts, apiclient.WithTransport(observability.InstrumentTransport(nil)))
	}

	client, err := apiclient.NewClient(a.cfg.API.BaseURL, store, clientOpts...)
	if err != nil {
		return err
	}
	a.client = client

	if a.cfg.Cache.Enabled {
		a.cache = apiclient.NewCache(a.cfg.Cache.Size, a.cfg.Cache.TTL, a.metrics)
	}

	a.resolver = roles.NewResolver(client,
		roles.WithLogger(a.logger),
		roles.WithMetrics(a.metrics),
	)

	// Any session transition discards resolved roles and cached
	// entities before the transition is observable to commands.
	a.store.OnChange(func(session.Session) {
		a.resolver.Reset()
		a.cache.Purge()
	})

	a.services = entities.NewService(client, a.cache, a.resolver.Ready,
		entities.WithLogger(a.logger))

	a.connected = true
	return nil
}

// newProvider runs OIDC discovery against the configured issuer
func (a *App) newProvider(ctx context.Context) (*session.Provider, error) {
	redirectURL := "http://" + a.cfg.OIDC.CallbackAddr + "/callback"
	return session.NewProvider(ctx, a.cfg.OIDC, redirectURL)
}

// Close flushes tracing state
func (a *App) Close(ctx context.Context) error {
	if a.shutdownTracing != nil {
		return a.shutdownTracing(ctx)
	}
	return nil
}

// resolveRoles requires an authenticated session and resolves the role
// summary. A failed fetch degrades to the least-privilege summary with
// a warning rather than aborting the command.
func (a *App) resolveRoles(ctx context.Context) (*roles.RoleSummary, error) {
	if !a.store.Current().Authenticated {
		return nil, fmt.Errorf("not logged in: run 'mwapctl login' first")
	}

	summary, err := a.resolver.Resolve(ctx)
	if err != nil {
		a.Log.WithError(err).Warn("role resolution failed, continuing with least privilege")
	}
	return summary, nil
}

// requireAccess denies with ErrAccessDenied when the summary does not
// satisfy the requirement.
func (a *App) requireAccess(summary *roles.RoleSummary, req authz.Requirement, what string) error {
	if !authz.CanAccess(summary, req) {
		return fmt.Errorf("%w: %s", ErrAccessDenied, what)
	}
	return nil
}

// requireAny denies unless at least one requirement passes. Super-admin
// escalation paths use this.
func (a *App) requireAny(summary *roles.RoleSummary, what string, reqs ...authz.Requirement) error {
	for _, req := range reqs {
		if authz.CanAccess(summary, req) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrAccessDenied, what)
}
