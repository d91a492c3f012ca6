package app

import (
	"testing"

	"github.com/GORLEABHILASH/booklovers/internal/clients/redis"
	"github.com/GORLEABHILASH/booklovers/internal/platform/logger"
)

func TestRouterConfigTracingName(t *testing.T) {
	cfg := validConfig()
	cfg.OTel.ServiceName = "booklovers"

	rc := routerConfig(logger.NewNop(), cfg, Clients{}, Handlers{}, Middleware{})
	if rc.ServiceName != "" {
		t.Fatalf("tracing disabled: want empty service name got=%q", rc.ServiceName)
	}

	cfg.OTel.Enabled = true
	rc = routerConfig(logger.NewNop(), cfg, Clients{}, Handlers{}, Middleware{})
	if rc.ServiceName != "booklovers" {
		t.Fatalf("tracing enabled: want=booklovers got=%q", rc.ServiceName)
	}
}

func TestWireMiddlewareRequiresSecret(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.JWTSecret = " "
	if _, err := wireMiddleware(logger.NewNop(), cfg); err == nil {
		t.Fatalf("want error for blank secret")
	}

	mw, err := wireMiddleware(logger.NewNop(), validConfig())
	if err != nil || mw.Auth == nil {
		t.Fatalf("want auth middleware, got=%v err=%v", mw.Auth, err)
	}
}

func TestWireServicesBuildsEverything(t *testing.T) {
	cfg := validConfig()
	clients := Clients{Locker: redis.NewLocalLocker(0, nil)}
	svc := wireServices(logger.NewNop(), cfg, clients, Repos{})
	if svc.Sessions == nil || svc.Status == nil || svc.Recommendations == nil ||
		svc.Goals == nil || svc.Shelves == nil || svc.Feed == nil || svc.Profiles == nil {
		t.Fatalf("missing service: %+v", svc)
	}
}
