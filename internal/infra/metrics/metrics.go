package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Mutations — зафіксовані мутації сховища за типом.
	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cartridges_mutations_total",
		Help: "Committed entity store mutations by kind.",
	}, []string{"kind"})

	// MirrorResyncs — повні перезаписи дзеркала за результатом.
	MirrorResyncs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cartridges_mirror_resyncs_total",
		Help: "Full mirror rewrites by result.",
	}, []string{"result"})
)
