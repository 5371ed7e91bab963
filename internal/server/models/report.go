package models

import "time"

// ApplicationUsage 应用用量条目
// 排名结果按字节数降序、名称升序排列，序列化为有序数组
type ApplicationUsage struct {
	Name  string `json:"name"`
	Bytes uint64 `json:"bytes"`
}

// DeviceBandwidth 设备带宽条目 (mac, bandwidth)
type DeviceBandwidth struct {
	DeviceMAC string `json:"device_mac"`
	Bytes     uint64 `json:"bytes"`
}

// UsageStats 用量统计数据
type UsageStats struct {
	TotalBytes         uint64             `json:"total_bytes"`
	TotalSessions      int                `json:"total_sessions"`
	AvgSessionDuration float64            `json:"avg_session_duration"`
	TopApplications    []ApplicationUsage `json:"top_applications"`
	PeakUsageHour      int                `json:"peak_usage_hour"`
	BytesSent          uint64             `json:"bytes_sent"`
	BytesReceived      uint64             `json:"bytes_received"`
}

// DeviceReport 设备报表
type DeviceReport struct {
	DeviceMAC      string             `json:"device_mac"`
	DeviceName     string             `json:"device_name,omitempty"`
	VlanID         *int               `json:"vlan_id,omitempty"`
	TotalBandwidth uint64             `json:"total_bandwidth"`
	SessionCount   int                `json:"session_count"`
	TopApps        []ApplicationUsage `json:"top_apps"`
	FirstSeen      time.Time          `json:"first_seen"`
	LastSeen       time.Time          `json:"last_seen"`
}

// VLANReport VLAN报表
type VLANReport struct {
	VlanID          int                `json:"vlan_id"`
	VlanName        string             `json:"vlan_name,omitempty"`
	TotalBandwidth  uint64             `json:"total_bandwidth"`
	DeviceCount     int                `json:"device_count"`
	SessionCount    int                `json:"session_count"`
	TopDevices      []DeviceBandwidth  `json:"top_devices"`
	TopApplications []ApplicationUsage `json:"top_applications"`
}

// ReportMetadata 报表元数据
type ReportMetadata struct {
	GeneratedAt           time.Time `json:"generated_at"`
	PeriodStart           time.Time `json:"period_start"`
	PeriodEnd             time.Time `json:"period_end"`
	PeriodHours           int       `json:"period_hours"`
	TotalSessionsAnalyzed int       `json:"total_sessions_analyzed"`
}

// HistoricalComparison 环比对比数据
// 上一等长相邻时间窗的统计及带宽/会话数变化百分比
type HistoricalComparison struct {
	PreviousStats          UsageStats `json:"previous_stats"`
	BandwidthChangePercent float64    `json:"bandwidth_change_percent"`
	SessionChangePercent   float64    `json:"session_change_percent"`
}

// ComprehensiveReport 综合报表
type ComprehensiveReport struct {
	Metadata             ReportMetadata        `json:"metadata"`
	OverallStats         UsageStats            `json:"overall_stats"`
	DeviceReports        []DeviceReport        `json:"device_reports"`
	VLANReports          []VLANReport          `json:"vlan_reports"`
	HistoricalComparison *HistoricalComparison `json:"historical_comparison,omitempty"`
}
