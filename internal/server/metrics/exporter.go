package metrics

import (
	"strconv"
	"time"

	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/services"
	"github.com/prometheus/client_golang/prometheus"
)

// Exporter collects report engine stats and exports them as Prometheus metrics
type Exporter struct {
	scheduler *services.ReportScheduler

	// Report-level metrics
	reportTotalBytes    prometheus.Gauge
	reportTotalSessions prometheus.Gauge
	reportPeakHour      prometheus.Gauge
	reportDeviceCount   prometheus.Gauge
	reportVLANCount     prometheus.Gauge
	reportGeneratedAt   prometheus.Gauge
	reportRefreshTotal  prometheus.Gauge

	// Breakdown metrics
	applicationBytes *prometheus.GaugeVec
	vlanBytes        *prometheus.GaugeVec
	deviceBytes      *prometheus.GaugeVec

	uptimeSeconds prometheus.Gauge
	startTime     time.Time
}

// NewExporter creates a new Prometheus exporter
func NewExporter(scheduler *services.ReportScheduler) *Exporter {
	return &Exporter{
		scheduler: scheduler,
		startTime: time.Now(),

		reportTotalBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lnmt_report_total_bytes",
			Help: "Total bytes in the latest cached report window",
		}),
		reportTotalSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lnmt_report_total_sessions",
			Help: "Total sessions in the latest cached report window",
		}),
		reportPeakHour: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lnmt_report_peak_usage_hour",
			Help: "Peak usage hour (0-23) of the latest cached report",
		}),
		reportDeviceCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lnmt_report_device_count",
			Help: "Number of devices with traffic in the latest cached report",
		}),
		reportVLANCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lnmt_report_vlan_count",
			Help: "Number of VLANs with traffic in the latest cached report",
		}),
		reportGeneratedAt: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lnmt_report_generated_timestamp_seconds",
			Help: "Unix timestamp of the latest cached report generation",
		}),
		reportRefreshTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lnmt_report_refresh_total",
			Help: "Number of report cache refreshes since start",
		}),

		applicationBytes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lnmt_report_application_bytes",
				Help: "Bytes per application category in the latest cached report",
			},
			[]string{"category"},
		),
		vlanBytes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lnmt_report_vlan_bytes",
				Help: "Bytes per VLAN in the latest cached report",
			},
			[]string{"vlan_id", "name"},
		),
		deviceBytes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lnmt_report_device_bytes",
				Help: "Bytes per device in the latest cached report",
			},
			[]string{"mac", "name"},
		),

		uptimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lnmt_uptime_seconds",
			Help: "Report server uptime in seconds",
		}),
	}
}

// Describe implements prometheus.Collector
func (e *Exporter) Describe(ch chan<- *prometheus.Desc) {
	e.reportTotalBytes.Describe(ch)
	e.reportTotalSessions.Describe(ch)
	e.reportPeakHour.Describe(ch)
	e.reportDeviceCount.Describe(ch)
	e.reportVLANCount.Describe(ch)
	e.reportGeneratedAt.Describe(ch)
	e.reportRefreshTotal.Describe(ch)

	e.applicationBytes.Describe(ch)
	e.vlanBytes.Describe(ch)
	e.deviceBytes.Describe(ch)

	e.uptimeSeconds.Describe(ch)
}

// Collect implements prometheus.Collector
func (e *Exporter) Collect(ch chan<- prometheus.Metric) {
	// Reset dynamic metrics (categories/devices may come and go)
	e.applicationBytes.Reset()
	e.vlanBytes.Reset()
	e.deviceBytes.Reset()

	e.reportRefreshTotal.Set(float64(e.scheduler.RefreshCount()))
	e.uptimeSeconds.Set(time.Since(e.startTime).Seconds())

	report := e.scheduler.Latest()
	if report != nil {
		e.reportTotalBytes.Set(float64(report.OverallStats.TotalBytes))
		e.reportTotalSessions.Set(float64(report.OverallStats.TotalSessions))
		e.reportPeakHour.Set(float64(report.OverallStats.PeakUsageHour))
		e.reportDeviceCount.Set(float64(len(report.DeviceReports)))
		e.reportVLANCount.Set(float64(len(report.VLANReports)))
		e.reportGeneratedAt.Set(float64(report.Metadata.GeneratedAt.Unix()))

		for _, app := range report.OverallStats.TopApplications {
			e.applicationBytes.WithLabelValues(app.Name).Set(float64(app.Bytes))
		}
		for _, vlan := range report.VLANReports {
			e.vlanBytes.WithLabelValues(strconv.Itoa(vlan.VlanID), vlan.VlanName).Set(float64(vlan.TotalBandwidth))
		}
		for _, device := range report.DeviceReports {
			name := device.DeviceName
			if name == "" {
				name = device.DeviceMAC // Fallback to MAC if no name
			}
			e.deviceBytes.WithLabelValues(device.DeviceMAC, name).Set(float64(device.TotalBandwidth))
		}
	}

	e.reportTotalBytes.Collect(ch)
	e.reportTotalSessions.Collect(ch)
	e.reportPeakHour.Collect(ch)
	e.reportDeviceCount.Collect(ch)
	e.reportVLANCount.Collect(ch)
	e.reportGeneratedAt.Collect(ch)
	e.reportRefreshTotal.Collect(ch)

	e.applicationBytes.Collect(ch)
	e.vlanBytes.Collect(ch)
	e.deviceBytes.Collect(ch)

	e.uptimeSeconds.Collect(ch)
}
