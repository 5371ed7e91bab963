package services

import (
	"testing"
	"time"

	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestReportService(db *gorm.DB) *ReportService {
	classifier := DefaultClassifier()
	return NewReportServiceWith(
		NewSessionServiceWith(db, classifier),
		NewUsageServiceWith(classifier),
	)
}

func deviceSession(ts time.Time, mac, name string, vlanID int, hostname string, sent, received uint64) models.SessionRecord {
	return models.SessionRecord{
		Timestamp:     ts,
		Hostname:      hostname,
		BytesSent:     sent,
		BytesReceived: received,
		DeviceMAC:     mac,
		DeviceName:    name,
		VlanID:        intPtr(vlanID),
	}
}

// TestDeviceReportsGrouping tests per-device grouping, ordering and seen range
func TestDeviceReportsGrouping(t *testing.T) {
	rs := newTestReportService(nil)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	sessions := []models.SessionRecord{
		deviceSession(base.Add(-1*time.Hour), "aa:bb:cc:dd:ee:01", "laptop", 10, "youtube.com", 500, 1500),
		deviceSession(base.Add(-5*time.Hour), "aa:bb:cc:dd:ee:01", "laptop", 10, "netflix.com", 0, 0),
		deviceSession(base.Add(-2*time.Hour), "aa:bb:cc:dd:ee:02", "camera", 20, "", 100, 400),
		// No device attribution: belongs to no device entry
		{Timestamp: base.Add(-3 * time.Hour), Hostname: "example.org", BytesSent: 9999},
	}

	reports := rs.deviceReportsFrom(sessions)
	require.Len(t, reports, 2)

	// Bandwidth descending: laptop 2000, camera 500
	assert.Equal(t, "aa:bb:cc:dd:ee:01", reports[0].DeviceMAC)
	assert.Equal(t, "laptop", reports[0].DeviceName)
	assert.Equal(t, uint64(2000), reports[0].TotalBandwidth)
	assert.Equal(t, 2, reports[0].SessionCount)
	assert.Equal(t, base.Add(-5*time.Hour), reports[0].FirstSeen)
	assert.Equal(t, base.Add(-1*time.Hour), reports[0].LastSeen)

	assert.Equal(t, "aa:bb:cc:dd:ee:02", reports[1].DeviceMAC)
	assert.Equal(t, uint64(500), reports[1].TotalBandwidth)
}

func TestDeviceReportsTopApps(t *testing.T) {
	rs := newTestReportService(nil)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	sessions := []models.SessionRecord{
		deviceSession(base, "aa:bb:cc:dd:ee:01", "laptop", 10, "youtube.com", 0, 800),
		deviceSession(base, "aa:bb:cc:dd:ee:01", "laptop", 10, "netflix.com", 0, 200),
	}

	reports := rs.deviceReportsFrom(sessions)
	require.Len(t, reports, 1)
	require.Len(t, reports[0].TopApps, 2)
	assert.Equal(t, models.ApplicationUsage{Name: "YouTube", Bytes: 800}, reports[0].TopApps[0])
	assert.Equal(t, models.ApplicationUsage{Name: "Netflix", Bytes: 200}, reports[0].TopApps[1])
}

// TestVLANReportsGrouping tests per-VLAN grouping with device counts and rankings
func TestVLANReportsGrouping(t *testing.T) {
	rs := newTestReportService(nil)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	sessions := []models.SessionRecord{
		deviceSession(base, "aa:bb:cc:dd:ee:01", "laptop", 10, "youtube.com", 0, 2000),
		deviceSession(base, "aa:bb:cc:dd:ee:03", "phone", 10, "netflix.com", 0, 500),
		deviceSession(base, "aa:bb:cc:dd:ee:02", "camera", 20, "", 0, 100),
		// No VLAN attribution: excluded from every VLAN entry
		{Timestamp: base, Hostname: "example.org", BytesSent: 7777, DeviceMAC: "aa:bb:cc:dd:ee:04"},
	}
	sessions[0].VlanName = "Users"
	sessions[1].VlanName = "Users"
	sessions[2].VlanName = "IoT"

	reports := rs.vlanReportsFrom(sessions)
	require.Len(t, reports, 2)

	users := reports[0]
	assert.Equal(t, 10, users.VlanID)
	assert.Equal(t, "Users", users.VlanName)
	assert.Equal(t, uint64(2500), users.TotalBandwidth)
	assert.Equal(t, 2, users.DeviceCount)
	assert.Equal(t, 2, users.SessionCount)
	require.Len(t, users.TopDevices, 2)
	assert.Equal(t, models.DeviceBandwidth{DeviceMAC: "aa:bb:cc:dd:ee:01", Bytes: 2000}, users.TopDevices[0])
	assert.Equal(t, models.DeviceBandwidth{DeviceMAC: "aa:bb:cc:dd:ee:03", Bytes: 500}, users.TopDevices[1])

	iot := reports[1]
	assert.Equal(t, 20, iot.VlanID)
	assert.Equal(t, uint64(100), iot.TotalBandwidth)
	assert.Equal(t, 1, iot.DeviceCount)
}

// TestBuildReportWithDatabase tests the full pipeline over a seeded store
func TestBuildReportWithDatabase(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	seedTestData(t, db, now)

	rs := newTestReportService(db)

	report, err := rs.BuildReport(24, false)
	require.NoError(t, err)

	// Whitelisted s3 is excluded everywhere
	assert.Equal(t, 3, report.Metadata.TotalSessionsAnalyzed)
	assert.Equal(t, uint64(1500), report.OverallStats.TotalBytes)
	assert.Equal(t, 24, report.Metadata.PeriodHours)
	assert.Nil(t, report.HistoricalComparison)

	require.Len(t, report.DeviceReports, 2)
	assert.Equal(t, "aa:bb:cc:dd:ee:01", report.DeviceReports[0].DeviceMAC)
	assert.Equal(t, uint64(1000), report.DeviceReports[0].TotalBandwidth)

	require.Len(t, report.VLANReports, 2)
	assert.Equal(t, 10, report.VLANReports[0].VlanID)
	assert.Equal(t, "Users", report.VLANReports[0].VlanName)
}

// TestBuildReportHistoricalZeroBase tests the zero-baseline change rule
func TestBuildReportHistoricalZeroBase(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	// Only current-window data, previous window is empty
	seedTestData(t, db, now)

	rs := newTestReportService(db)

	report, err := rs.BuildReport(24, true)
	require.NoError(t, err)
	require.NotNil(t, report.HistoricalComparison)

	hc := report.HistoricalComparison
	assert.Equal(t, uint64(0), hc.PreviousStats.TotalBytes)
	assert.Equal(t, 100.0, hc.BandwidthChangePercent)
	assert.Equal(t, 100.0, hc.SessionChangePercent)
}

// TestBuildReportHistoricalBothEmpty tests that two empty windows yield zero change
func TestBuildReportHistoricalBothEmpty(t *testing.T) {
	db := openTestDB(t)

	rs := newTestReportService(db)

	report, err := rs.BuildReport(1, true)
	require.NoError(t, err)
	require.NotNil(t, report.HistoricalComparison)

	assert.Equal(t, 0.0, report.HistoricalComparison.BandwidthChangePercent)
	assert.Equal(t, 0.0, report.HistoricalComparison.SessionChangePercent)
}

// TestBuildReportHistoricalPeriodCap tests that long periods skip the comparison
func TestBuildReportHistoricalPeriodCap(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	seedTestData(t, db, now)

	rs := newTestReportService(db)

	report, err := rs.BuildReport(48, true)
	require.NoError(t, err)
	assert.Nil(t, report.HistoricalComparison)
}

func TestChangePercent(t *testing.T) {
	assert.Equal(t, 100.0, changePercent(0, 500))
	assert.Equal(t, 0.0, changePercent(0, 0))
	assert.InDelta(t, 50.0, changePercent(1000, 1500), 1e-9)
	assert.InDelta(t, -25.0, changePercent(1000, 750), 1e-9)
}
