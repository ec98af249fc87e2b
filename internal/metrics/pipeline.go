package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	pipelineStageTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "techassist",
			Name:      "pipeline_stage_total",
			Help:      "Questions answered per pipeline stage",
		},
		[]string{"stage"},
	)

	modelRetriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "techassist",
			Name:      "model_retries_total",
			Help:      "Model calls retried after an overloaded response",
		},
	)
)

func init() {
	prometheus.MustRegister(pipelineStageTotal)
	prometheus.MustRegister(modelRetriesTotal)
}

// PipelineObserver satisfies the pipeline's stage hook.
type PipelineObserver struct{}

func (PipelineObserver) PipelineStage(stage string) {
	pipelineStageTotal.WithLabelValues(stage).Inc()
}

// ModelRetry counts one retried model call.
func ModelRetry() {
	modelRetriesTotal.Inc()
}
