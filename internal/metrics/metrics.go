// Package metrics — метрики запуска в формате Prometheus. CLI не держит
// HTTP-сервер, поэтому метрики пишутся в файл для textfile-коллектора
// node_exporter.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder собирает метрики одного запуска в собственный реестр.
type Recorder struct {
	reg *prometheus.Registry

	runsTotal       *prometheus.CounterVec
	entriesPlanned  *prometheus.GaugeVec
	entriesCreated  prometheus.Counter
	parseDuration   prometheus.Histogram
	createDuration  prometheus.Histogram
	lastRunSuccess  prometheus.Gauge
	lastRunUnixTime prometheus.Gauge
}

func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "structgen_runs_total",
				Help: "Total number of runs by input format and result",
			},
			[]string{"format", "result"},
		),
		entriesPlanned: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "structgen_entries_planned",
				Help: "Entries in the parsed tree by kind",
			},
			[]string{"kind"},
		),
		entriesCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "structgen_entries_created_total",
				Help: "Entries created (or kept) on disk",
			},
		),
		parseDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "structgen_parse_duration_seconds",
				Help:    "Time spent parsing the tree text",
				Buckets: prometheus.DefBuckets,
			},
		),
		createDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "structgen_create_duration_seconds",
				Help:    "Time spent creating the structure on disk",
				Buckets: prometheus.DefBuckets,
			},
		),
		lastRunSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "structgen_last_run_success",
				Help: "1 if the last run succeeded, 0 otherwise",
			},
		),
		lastRunUnixTime: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "structgen_last_run_timestamp_seconds",
				Help: "Unix time of the last run",
			},
		),
	}
	r.reg.MustRegister(
		r.runsTotal,
		r.entriesPlanned,
		r.entriesCreated,
		r.parseDuration,
		r.createDuration,
		r.lastRunSuccess,
		r.lastRunUnixTime,
	)
	return r
}

// Registry — для тестов и внешней выгрузки.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

func (r *Recorder) ObserveParse(d time.Duration) {
	r.parseDuration.Observe(d.Seconds())
}

func (r *Recorder) SetPlanned(dirs, files int) {
	r.entriesPlanned.WithLabelValues("dir").Set(float64(dirs))
	r.entriesPlanned.WithLabelValues("file").Set(float64(files))
}

func (r *Recorder) ObserveCreate(created int, d time.Duration) {
	r.entriesCreated.Add(float64(created))
	r.createDuration.Observe(d.Seconds())
}

// RunFinished фиксирует итог запуска. format может быть пустым, если
// до разбора дело не дошло.
func (r *Recorder) RunFinished(format string, err error) {
	if format == "" {
		format = "unknown"
	}
	result := "success"
	success := 1.0
	if err != nil {
		result = "error"
		success = 0
	}
	r.runsTotal.WithLabelValues(format, result).Inc()
	r.lastRunSuccess.Set(success)
	r.lastRunUnixTime.SetToCurrentTime()
}

// WriteFile атомарно записывает метрики в файл.
func (r *Recorder) WriteFile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
