package portal

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	errTypeLabel = "err_type"
)

var (
	portalUnitsBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_units_built_total",
		Help: "The total number of portal units built.",
	})

	portalBuildErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portal_build_errors_total",
		Help: "The total number of failed portal builds.",
	}, []string{errTypeLabel})

	portalStencilIDsAllocated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "portal_stencil_ids_allocated_total",
		Help: "The total number of stencil ids handed out.",
	})
)

func instrumentUnitBuilt() {
	portalUnitsBuilt.Inc()
}

func instrumentBuildError(err error) {
	portalBuildErrors.
		With(prometheus.Labels{errTypeLabel: errors.Type(err)}).
		Inc()
}

func instrumentStencilAllocated() {
	portalStencilIDsAllocated.Inc()
}
