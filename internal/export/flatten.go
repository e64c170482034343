package export

import "github.com/OldStager01/host-sentinel/pkg/models"

// flatKeys fixes the row order of flattened exports.
var flatKeys = []string{
	"cpu_percent",
	"ram_percent",
	"disk_percent",
	"swap_percent",
	"temperature",
	"process_count",
	"zombie_count",
	"connection_count",
	"net_sent_per_sec",
	"net_recv_per_sec",
	"network_throughput",
	"disk_read_per_sec",
	"disk_write_per_sec",
	"disk_read_ops_per_sec",
	"disk_write_ops_per_sec",
	"health_score",
	"process_delta",
	"active_notifications",
	"tick",
}

// Flatten lists every scalar of a summary. Unavailable readings are left out.
func Flatten(s *models.Summary) map[string]float64 {
	out := make(map[string]float64, len(flatKeys))

	for _, g := range s.Snapshot.Gauges() {
		if v, ok := g.Reading.Get(); ok {
			out[g.Name] = v
		}
	}

	out["net_sent_per_sec"] = s.Rates.NetSent
	out["net_recv_per_sec"] = s.Rates.NetRecv
	out["network_throughput"] = s.Rates.NetworkThroughput
	out["disk_read_per_sec"] = s.Rates.DiskRead
	out["disk_write_per_sec"] = s.Rates.DiskWrite
	out["disk_read_ops_per_sec"] = s.Rates.DiskReadOps
	out["disk_write_ops_per_sec"] = s.Rates.DiskWriteOps
	out["health_score"] = float64(s.HealthScore)
	out["process_delta"] = float64(s.ProcessDelta)
	out["active_notifications"] = float64(len(s.ActiveNotifications))
	out["tick"] = float64(s.Tick)

	return out
}
