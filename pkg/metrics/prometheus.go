package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const defaultMetricsPath = "/metrics"

// Logger is the subset of zap.SugaredLogger the middleware needs.
type Logger interface {
	Errorf(template string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
}

// RouteLabelFn maps a request onto the "route" label. Return the route
// template (c.FullPath()) to keep cardinality bounded.
type RouteLabelFn func(c *gin.Context) string

type NewPrometheusOptions struct {
	Subsystem               string
	MetricsPath             string
	ReqCntURLLabelMappingFn RouteLabelFn
	Logger                  Logger
}

// Prometheus records HTTP request metrics and serves them, either on the
// application engine or on a separate listener.
type Prometheus struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	reqSize  *prometheus.SummaryVec
	respSize *prometheus.SummaryVec

	routeLabel    RouteLabelFn
	metricsPath   string
	listenAddress string
	logger        Logger
}

func NewPrometheus(options NewPrometheusOptions) *Prometheus {
	p := &Prometheus{
		routeLabel:  options.ReqCntURLLabelMappingFn,
		metricsPath: options.MetricsPath,
		logger:      options.Logger,
	}
	if p.metricsPath == "" {
		p.metricsPath = defaultMetricsPath
	}
	if p.routeLabel == nil {
		p.routeLabel = func(c *gin.Context) string { return c.Request.URL.Path }
	}
	subsystem := options.Subsystem
	if subsystem == "" {
		subsystem = "http"
	}
	labels := []string{"code", "method", "route"}

	p.requests = mustRegister(p, prometheus.NewCounterVec(prometheus.CounterOpts{
		Subsystem: subsystem, Name: "requests_total", Help: "HTTP requests processed by status code, method and route.",
	}, labels))
	p.latency = mustRegister(p, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Subsystem: subsystem, Name: "request_duration_ms", Help: "HTTP request latency in milliseconds.", Buckets: LatencyBuckets,
	}, labels))
	p.reqSize = mustRegister(p, prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Subsystem: subsystem, Name: "request_size_bytes", Help: "Approximate HTTP request size in bytes.",
	}, labels))
	p.respSize = mustRegister(p, prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Subsystem: subsystem, Name: "response_size_bytes", Help: "HTTP response size in bytes.",
	}, labels))
	return p
}

func mustRegister[T prometheus.Collector](p *Prometheus, c T) T {
	out, err := register(c)
	if err != nil && p.logger != nil {
		p.logger.Errorf("metric could not be registered: %v", err)
	}
	return out
}

// SetListenAddress serves metrics on a dedicated address instead of the
// application engine. Call before Use.
func (p *Prometheus) SetListenAddress(address string) {
	p.listenAddress = address
}

// Use installs the middleware on e and exposes the metrics endpoint.
func (p *Prometheus) Use(e *gin.Engine) {
	e.Use(p.HandlerFunc())
	if p.listenAddress == "" {
		e.GET(p.metricsPath, prometheusHandler())
		return
	}
	r := gin.New()
	r.GET(p.metricsPath, prometheusHandler())
	go func() {
		if err := r.Run(p.listenAddress); err != nil && err != http.ErrServerClosed && p.logger != nil {
			p.logger.Errorf("metrics listener stopped: %v", err)
		}
	}()
}

func (p *Prometheus) HandlerFunc() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == p.metricsPath {
			c.Next()
			return
		}

		start := time.Now()
		reqSize := computeApproximateRequestSize(c.Request)

		c.Next()

		lv := []string{strconv.Itoa(c.Writer.Status()), c.Request.Method, p.routeLabel(c)}
		p.requests.WithLabelValues(lv...).Inc()
		p.latency.WithLabelValues(lv...).Observe(MillisecondsSince(start))
		p.reqSize.WithLabelValues(lv...).Observe(float64(reqSize))
		p.respSize.WithLabelValues(lv...).Observe(float64(c.Writer.Size()))
	}
}
