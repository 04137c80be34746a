package controllers

import (
	"context"
	"net/http"

	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/api/responses"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/config"
	pkgerrors "github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/errors"
	"github.com/LogiqueNoire/GeneradorSoftwareConIA-sub000/pkg/logger"
)

// Pinger is the connectivity probe a readiness check depends on.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SysBuilder-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, logg *logger.Logger, deps map[string]Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SysBuilder-Env", cfg.App.Env)

		for name, dep := range deps {
			if dep == nil {
				continue
			}
			if err := dep.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, name+" unavailable"))
				return
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
