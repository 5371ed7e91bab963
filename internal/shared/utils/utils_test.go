package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "0.00 B", FormatBytes(0))
	assert.Equal(t, "512.00 B", FormatBytes(512))
	assert.Equal(t, "1.00 KB", FormatBytes(1024))
	assert.Equal(t, "1.50 KB", FormatBytes(1536))
	assert.Equal(t, "1.00 MB", FormatBytes(1024*1024))
	assert.Equal(t, "1.00 GB", FormatBytes(1073741824))
	assert.Equal(t, "1.00 TB", FormatBytes(1024*1024*1024*1024))
	assert.Equal(t, "1.00 PB", FormatBytes(1024*1024*1024*1024*1024))

	// Above PB the unit stays at PB instead of overflowing the table
	assert.Equal(t, "1024.00 PB", FormatBytes(1024*1024*1024*1024*1024*1024))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1,000", FormatNumber(1000))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "-1,234", FormatNumber(-1234))
}

func TestNormalizeMAC(t *testing.T) {
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", NormalizeMAC("AA:BB:CC:DD:EE:FF"))
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", NormalizeMAC("  aa:bb:cc:dd:ee:ff  "))
	assert.Equal(t, "", NormalizeMAC(""))
}
