package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func u64(v uint64) *uint64   { return &v }
func f64(v float64) *float64 { return &v }
func intPtr(v int) *int      { return &v }

// openTestDB creates a migrated sqlite database in a temp directory
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	return db
}

// seedTestData loads a small joined dataset: two devices on two VLANs,
// DNS records for the destinations, one whitelisted host and one NULL-bytes row
func seedTestData(t *testing.T, db *gorm.DB, base time.Time) {
	t.Helper()

	vlans := []models.VLAN{
		{VlanID: 10, Name: "Users", Subnet: "192.168.10.0/24"},
		{VlanID: 20, Name: "IoT", Subnet: "192.168.20.0/24"},
	}
	for i := range vlans {
		require.NoError(t, db.Create(&vlans[i]).Error)
	}

	devices := []models.Device{
		{MACAddress: "aa:bb:cc:dd:ee:01", IPAddress: "192.168.10.5", Name: "laptop", VlanID: intPtr(10)},
		{MACAddress: "aa:bb:cc:dd:ee:02", IPAddress: "192.168.20.7", Name: "camera", VlanID: intPtr(20)},
	}
	for i := range devices {
		require.NoError(t, db.Create(&devices[i]).Error)
	}

	dnsRecords := []models.DNSRecord{
		{IPAddress: "203.0.113.10", Hostname: "www.youtube.com"},
		{IPAddress: "203.0.113.20", Hostname: "api.netflix.com"},
		{IPAddress: "203.0.113.30", Hostname: "windowsupdate.microsoft.com"},
	}
	for i := range dnsRecords {
		require.NoError(t, db.Create(&dnsRecords[i]).Error)
	}

	sessions := []models.Session{
		{SessionID: "s1", Timestamp: base.Add(-1 * time.Hour), SrcIP: "192.168.10.5", DstIP: "203.0.113.10",
			SrcPort: 54321, DstPort: 443, Protocol: "tcp",
			BytesSent: u64(100), BytesReceived: u64(900), Duration: f64(60)},
		{SessionID: "s2", Timestamp: base.Add(-2 * time.Hour), SrcIP: "192.168.20.7", DstIP: "203.0.113.20",
			SrcPort: 40000, DstPort: 443, Protocol: "tcp",
			BytesSent: u64(200), BytesReceived: u64(300), Duration: f64(30)},
		// Whitelisted destination: must be dropped by the reader
		{SessionID: "s3", Timestamp: base.Add(-3 * time.Hour), SrcIP: "192.168.10.5", DstIP: "203.0.113.30",
			SrcPort: 40001, DstPort: 443, Protocol: "tcp",
			BytesSent: u64(5000), BytesReceived: u64(5000), Duration: f64(10)},
		// NULL numeric columns: must be coerced to zero
		{SessionID: "s4", Timestamp: base.Add(-4 * time.Hour), SrcIP: "192.168.10.5", DstIP: "198.51.100.9",
			SrcPort: 40002, DstPort: 53, Protocol: "udp"},
	}
	for i := range sessions {
		require.NoError(t, db.Create(&sessions[i]).Error)
	}
}

func TestReadSessionsJoinsAndFiltering(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedTestData(t, db, base)

	ss := NewSessionServiceWith(db, DefaultClassifier())

	records, err := ss.ReadSessions(base.Add(-24*time.Hour), base, nil, "")
	require.NoError(t, err)

	// s3 is whitelisted and dropped, so three records remain
	require.Len(t, records, 3)

	// Descending timestamp order
	assert.Equal(t, "s1", records[0].SessionID)
	assert.Equal(t, "s2", records[1].SessionID)
	assert.Equal(t, "s4", records[2].SessionID)

	// Joined metadata on s1
	assert.Equal(t, "www.youtube.com", records[0].Hostname)
	assert.Equal(t, "aa:bb:cc:dd:ee:01", records[0].DeviceMAC)
	assert.Equal(t, "laptop", records[0].DeviceName)
	require.NotNil(t, records[0].VlanID)
	assert.Equal(t, 10, *records[0].VlanID)
	assert.Equal(t, "Users", records[0].VlanName)

	// NULL coercion on s4
	assert.Equal(t, uint64(0), records[2].BytesSent)
	assert.Equal(t, uint64(0), records[2].BytesReceived)
	assert.Equal(t, 0.0, records[2].DurationSeconds)
	assert.Equal(t, "", records[2].Hostname)
}

func TestReadSessionsVLANFilter(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedTestData(t, db, base)

	ss := NewSessionServiceWith(db, DefaultClassifier())

	records, err := ss.ReadSessions(base.Add(-24*time.Hour), base, intPtr(20), "")
	require.NoError(t, err)

	require.Len(t, records, 1)
	assert.Equal(t, "s2", records[0].SessionID)
	assert.Equal(t, "aa:bb:cc:dd:ee:02", records[0].DeviceMAC)
}

func TestReadSessionsDeviceFilter(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedTestData(t, db, base)

	ss := NewSessionServiceWith(db, DefaultClassifier())

	// Filter value is normalized to lowercase before matching
	records, err := ss.ReadSessions(base.Add(-24*time.Hour), base, nil, "AA:BB:CC:DD:EE:01")
	require.NoError(t, err)

	// s1 and s4 belong to the laptop, s3 is whitelisted
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, "aa:bb:cc:dd:ee:01", r.DeviceMAC)
	}
}

// TestReadSessionsInvertedWindow tests that start >= end yields empty, not an error
func TestReadSessionsInvertedWindow(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedTestData(t, db, base)

	ss := NewSessionServiceWith(db, DefaultClassifier())

	records, err := ss.ReadSessions(base, base.Add(-24*time.Hour), nil, "")
	require.NoError(t, err)
	assert.Empty(t, records)

	records, err = ss.ReadSessions(base, base, nil, "")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestReadSessionsWindowBounds(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedTestData(t, db, base)

	ss := NewSessionServiceWith(db, DefaultClassifier())

	// Window covering only s2 (base-2h), half-open on the end side
	records, err := ss.ReadSessions(base.Add(-2*time.Hour), base.Add(-1*time.Hour), nil, "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "s2", records[0].SessionID)
}

func TestCountSessions(t *testing.T) {
	db := openTestDB(t)
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedTestData(t, db, base)

	ss := NewSessionServiceWith(db, DefaultClassifier())

	// Raw count keeps whitelisted rows
	count, err := ss.CountSessions(base.Add(-24*time.Hour), base)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}
