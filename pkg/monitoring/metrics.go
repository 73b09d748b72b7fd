package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// RoadmapGenerations 按舞种和经验等级统计路线图生成次数
	RoadmapGenerations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roadmap_generations_total",
			Help: "Number of personalized roadmaps generated",
		},
		[]string{"style", "level"},
	)

	RoadmapSkills = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "roadmap_skills_total",
			Help:    "Number of skills included in a generated roadmap",
			Buckets: []float64{0, 5, 10, 20, 40, 80},
		},
	)

	CatalogCacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_requests_total",
			Help: "Skill catalog cache lookups by result",
		},
		[]string{"result"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(RoadmapGenerations)
		prometheus.MustRegister(RoadmapSkills)
		prometheus.MustRegister(CatalogCacheRequests)
	})
}

// ObserveGeneration 记录一次路线图生成
func ObserveGeneration(style, level string, totalSkills int) {
	if level == "" {
		level = "unspecified"
	}
	RoadmapGenerations.WithLabelValues(style, level).Inc()
	RoadmapSkills.Observe(float64(totalSkills))
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(c.Writer.Status()),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(time.Since(start).Seconds())
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
