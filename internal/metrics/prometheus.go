package metrics

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/OldStager01/host-sentinel/internal/logger"
	"github.com/OldStager01/host-sentinel/pkg/models"
)

// Metrics is an in-process registry rendered in the Prometheus text
// exposition format. Series are keyed by target.
type Metrics struct {
	mu sync.RWMutex

	collectionsTotal  map[string]int64
	collectionErrors  map[string]int64
	rejectedSnapshots map[string]int64
	alertsTotal       map[string]map[string]int64 // target -> severity -> count

	healthScore         map[string]float64
	gauges              map[string]map[string]float64 // target -> reading -> value
	rates               map[string]map[string]float64 // target -> counter -> per second
	activeNotifications map[string]float64
	circuitBreakerState map[string]int // 0=closed, 1=open, 2=half-open

	processLatency map[string]time.Duration
}

var (
	instance *Metrics
	once     sync.Once
)

func New() *Metrics {
	return &Metrics{
		collectionsTotal:    make(map[string]int64),
		collectionErrors:    make(map[string]int64),
		rejectedSnapshots:   make(map[string]int64),
		alertsTotal:         make(map[string]map[string]int64),
		healthScore:         make(map[string]float64),
		gauges:              make(map[string]map[string]float64),
		rates:               make(map[string]map[string]float64),
		activeNotifications: make(map[string]float64),
		circuitBreakerState: make(map[string]int),
		processLatency:      make(map[string]time.Duration),
	}
}

// Get returns the process-wide registry.
func Get() *Metrics {
	once.Do(func() {
		instance = New()
	})
	return instance
}

func (m *Metrics) IncCollections(target string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collectionsTotal[target]++
}

func (m *Metrics) IncCollectionErrors(target string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collectionErrors[target]++
}

func (m *Metrics) IncRejected(target string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejectedSnapshots[target]++
}

func (m *Metrics) SetCircuitBreakerState(name string, state int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.circuitBreakerState[name] = state
}

func (m *Metrics) SetProcessLatency(target string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.processLatency[target] = d
}

// ObserveSummary records the gauges and alert counts of one processed tick.
func (m *Metrics) ObserveSummary(s *models.Summary) {
	m.mu.Lock()
	defer m.mu.Unlock()

	target := s.Target
	m.healthScore[target] = float64(s.HealthScore)
	m.activeNotifications[target] = float64(len(s.ActiveNotifications))

	gauges := make(map[string]float64)
	for _, g := range s.Snapshot.Gauges() {
		if v, ok := g.Reading.Get(); ok {
			gauges[g.Name] = v
		}
	}
	m.gauges[target] = gauges

	m.rates[target] = map[string]float64{
		models.CounterNetSent:      s.Rates.NetSent,
		models.CounterNetRecv:      s.Rates.NetRecv,
		models.CounterDiskRead:     s.Rates.DiskRead,
		models.CounterDiskWrite:    s.Rates.DiskWrite,
		models.CounterDiskReadOps:  s.Rates.DiskReadOps,
		models.CounterDiskWriteOps: s.Rates.DiskWriteOps,
	}

	if len(s.NewAlerts) > 0 && m.alertsTotal[target] == nil {
		m.alertsTotal[target] = make(map[string]int64)
	}
	for _, a := range s.NewAlerts {
		m.alertsTotal[target][strings.ToLower(string(a.Severity))]++
	}
}

func (m *Metrics) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		m.Render(w)
	})
}

// Render writes every series in a stable order.
func (m *Metrics) Render(w io.Writer) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	family(w, "sentinel_collections_total", "counter", "Snapshots collected.")
	for _, t := range sortedKeys(m.collectionsTotal) {
		writeMetric(w, "sentinel_collections_total", labels("target", t), float64(m.collectionsTotal[t]))
	}

	family(w, "sentinel_collection_errors_total", "counter", "Failed collection attempts.")
	for _, t := range sortedKeys(m.collectionErrors) {
		writeMetric(w, "sentinel_collection_errors_total", labels("target", t), float64(m.collectionErrors[t]))
	}

	family(w, "sentinel_rejected_snapshots_total", "counter", "Snapshots rejected as structurally invalid.")
	for _, t := range sortedKeys(m.rejectedSnapshots) {
		writeMetric(w, "sentinel_rejected_snapshots_total", labels("target", t), float64(m.rejectedSnapshots[t]))
	}

	family(w, "sentinel_alerts_total", "counter", "Alerts raised, by severity.")
	for _, t := range sortedKeys(m.alertsTotal) {
		for _, sev := range sortedKeys(m.alertsTotal[t]) {
			writeMetric(w, "sentinel_alerts_total", labels("target", t, "severity", sev), float64(m.alertsTotal[t][sev]))
		}
	}

	family(w, "sentinel_health_score", "gauge", "Composite health score, 0-100.")
	for _, t := range sortedKeys(m.healthScore) {
		writeMetric(w, "sentinel_health_score", labels("target", t), m.healthScore[t])
	}

	family(w, "sentinel_reading", "gauge", "Latest available gauge readings.")
	for _, t := range sortedKeys(m.gauges) {
		for _, name := range sortedKeys(m.gauges[t]) {
			writeMetric(w, "sentinel_reading", labels("target", t, "reading", name), m.gauges[t][name])
		}
	}

	family(w, "sentinel_rate_per_second", "gauge", "Per-second rates derived from cumulative counters.")
	for _, t := range sortedKeys(m.rates) {
		for _, name := range sortedKeys(m.rates[t]) {
			writeMetric(w, "sentinel_rate_per_second", labels("target", t, "counter", name), m.rates[t][name])
		}
	}

	family(w, "sentinel_active_notifications", "gauge", "Entries in the active notification log.")
	for _, t := range sortedKeys(m.activeNotifications) {
		writeMetric(w, "sentinel_active_notifications", labels("target", t), m.activeNotifications[t])
	}

	family(w, "sentinel_circuit_breaker_state", "gauge", "0=closed, 1=open, 2=half-open.")
	for _, name := range sortedKeys(m.circuitBreakerState) {
		writeMetric(w, "sentinel_circuit_breaker_state", labels("name", name), float64(m.circuitBreakerState[name]))
	}

	family(w, "sentinel_process_latency_ms", "gauge", "Duration of the last collect and process cycle.")
	for _, t := range sortedKeys(m.processLatency) {
		writeMetric(w, "sentinel_process_latency_ms", labels("target", t), float64(m.processLatency[t].Milliseconds()))
	}
}

func family(w io.Writer, name, kind, help string) {
	fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n", name, help, name, kind)
}

func labels(kv ...string) string {
	parts := make([]string, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		parts = append(parts, kv[i]+`="`+escape(kv[i+1])+`"`)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

var labelEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func escape(v string) string {
	return labelEscaper.Replace(v)
}

func writeMetric(w io.Writer, name, labelStr string, value float64) {
	io.WriteString(w, name+labelStr+" "+strconv.FormatFloat(value, 'f', -1, 64)+"\n")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// StartServer serves /metrics on its own port until the process exits.
func StartServer(port int) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Get().Handler())

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Infof("Prometheus metrics server listening on %s", srv.Addr)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Errorf("Prometheus server error: %v", err)
		}
	}()
	return srv
}
