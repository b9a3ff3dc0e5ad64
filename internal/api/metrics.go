package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lostfound_chat_submissions_total",
		Help: "Answer submissions by evaluation result.",
	}, []string{"result"})

	decisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lostfound_chat_decisions_total",
		Help: "Owner decisions by kind.",
	}, []string{"decision"})

	gateDenialsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lostfound_gate_denials_total",
		Help: "Message sends rejected by the authorization gate.",
	})
)
