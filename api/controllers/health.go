package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/streetside/storefront-backend/api/responses"
	"github.com/streetside/storefront-backend/pkg/db"
	pkgerrors "github.com/streetside/storefront-backend/pkg/errors"
	"github.com/streetside/storefront-backend/pkg/logger"
)

// Health reports process liveness with {"ok":true}.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteOK(w)
	}
}

// HealthReady additionally pings the database so load balancers can tell a
// running process from a serving one.
func HealthReady(pinger db.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if pinger != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := pinger.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database unavailable"))
				return
			}
		}
		responses.WriteOK(w)
	}
}
