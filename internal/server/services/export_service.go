package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/models"
	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/shared/utils"

	"github.com/olekukonko/tablewriter"
)

// ExportFormat 报表导出格式
type ExportFormat string

// 支持的导出格式
const (
	FormatJSON ExportFormat = "json"
	FormatText ExportFormat = "text"
	FormatHTML ExportFormat = "html"
)

// 文本/HTML报表中VLAN和设备区块的展示上限
const exportSectionLimit = 10

// reportRenderer 报表渲染器
// 每种导出格式一个实现，Export按格式选择
type reportRenderer interface {
	Render(report *models.ComprehensiveReport) (string, error)
}

// ExportService 报表导出服务
// 纯展示层变换，不改变报表数据
type ExportService struct{}

// NewExportService 创建报表导出服务
func NewExportService() *ExportService {
	return &ExportService{}
}

// Export 导出报表为指定格式的字符串
// 未知格式返回UnsupportedFormatError，不做静默回退
func (es *ExportService) Export(report *models.ComprehensiveReport, format ExportFormat) (string, error) {
	var renderer reportRenderer

	switch format {
	case FormatJSON:
		renderer = jsonRenderer{}
	case FormatText:
		renderer = textRenderer{}
	case FormatHTML:
		renderer = htmlRenderer{}
	default:
		return "", &UnsupportedFormatError{Format: string(format)}
	}

	return renderer.Render(report)
}

// jsonRenderer JSON渲染器，无损序列化，可解析回原始报表
type jsonRenderer struct{}

func (jsonRenderer) Render(report *models.ComprehensiveReport) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("序列化报表失败: %w", err)
	}
	return string(data), nil
}

// textRenderer 纯文本渲染器，固定版式
type textRenderer struct{}

func (textRenderer) Render(report *models.ComprehensiveReport) (string, error) {
	var b strings.Builder

	// 头部区块
	b.WriteString("==========================================================\n")
	b.WriteString("              Network Usage Report\n")
	b.WriteString("==========================================================\n")
	fmt.Fprintf(&b, "Generated: %s\n", report.Metadata.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Period:    %s - %s (%d hours)\n",
		report.Metadata.PeriodStart.Format("2006-01-02 15:04"),
		report.Metadata.PeriodEnd.Format("2006-01-02 15:04"),
		report.Metadata.PeriodHours)
	fmt.Fprintf(&b, "Sessions analyzed: %s\n\n", utils.FormatNumber(int64(report.Metadata.TotalSessionsAnalyzed)))

	// 总体统计区块
	stats := report.OverallStats
	b.WriteString("Overall Statistics\n")
	b.WriteString("----------------------------------------------------------\n")
	fmt.Fprintf(&b, "Total Bandwidth:      %s\n", utils.FormatBytes(stats.TotalBytes))
	fmt.Fprintf(&b, "Total Sessions:       %s\n", utils.FormatNumber(int64(stats.TotalSessions)))
	fmt.Fprintf(&b, "Avg Session Duration: %.1f s\n", stats.AvgSessionDuration)
	fmt.Fprintf(&b, "Peak Usage Hour:      %02d:00\n", stats.PeakUsageHour)
	fmt.Fprintf(&b, "Bytes Sent:           %s\n", utils.FormatBytes(stats.BytesSent))
	fmt.Fprintf(&b, "Bytes Received:       %s\n\n", utils.FormatBytes(stats.BytesReceived))

	// 应用排名区块，空集不输出
	if len(stats.TopApplications) > 0 {
		b.WriteString("Top Applications\n")
		table := tablewriter.NewWriter(&b)
		table.SetHeader([]string{"#", "Application", "Bandwidth"})
		table.SetBorder(false)
		for i, app := range stats.TopApplications {
			table.Append([]string{
				fmt.Sprintf("%d", i+1),
				app.Name,
				utils.FormatBytes(app.Bytes),
			})
		}
		table.Render()
		b.WriteString("\n")
	}

	// VLAN用量摘要，最多10条
	if len(report.VLANReports) > 0 {
		b.WriteString("VLAN Usage Summary\n")
		table := tablewriter.NewWriter(&b)
		table.SetHeader([]string{"VLAN", "Name", "Devices", "Sessions", "Bandwidth"})
		table.SetBorder(false)
		for i, vlan := range report.VLANReports {
			if i >= exportSectionLimit {
				break
			}
			table.Append([]string{
				fmt.Sprintf("%d", vlan.VlanID),
				vlan.VlanName,
				fmt.Sprintf("%d", vlan.DeviceCount),
				utils.FormatNumber(int64(vlan.SessionCount)),
				utils.FormatBytes(vlan.TotalBandwidth),
			})
		}
		table.Render()
		b.WriteString("\n")
	}

	// 设备排名，最多10条
	if len(report.DeviceReports) > 0 {
		b.WriteString("Top Devices\n")
		table := tablewriter.NewWriter(&b)
		table.SetHeader([]string{"#", "MAC", "Name", "Sessions", "Bandwidth"})
		table.SetBorder(false)
		for i, device := range report.DeviceReports {
			if i >= exportSectionLimit {
				break
			}
			table.Append([]string{
				fmt.Sprintf("%d", i+1),
				device.DeviceMAC,
				device.DeviceName,
				utils.FormatNumber(int64(device.SessionCount)),
				utils.FormatBytes(device.TotalBandwidth),
			})
		}
		table.Render()
		b.WriteString("\n")
	}

	// 环比区块为可选数据
	if report.HistoricalComparison != nil {
		hc := report.HistoricalComparison
		b.WriteString("Previous Period Comparison\n")
		b.WriteString("----------------------------------------------------------\n")
		fmt.Fprintf(&b, "Previous Bandwidth:   %s\n", utils.FormatBytes(hc.PreviousStats.TotalBytes))
		fmt.Fprintf(&b, "Bandwidth Change:     %+.1f%%\n", hc.BandwidthChangePercent)
		fmt.Fprintf(&b, "Session Change:       %+.1f%%\n", hc.SessionChangePercent)
	}

	return b.String(), nil
}

// htmlRenderer HTML渲染器，输出自包含文档
type htmlRenderer struct{}

func (htmlRenderer) Render(report *models.ComprehensiveReport) (string, error) {
	var b strings.Builder

	stats := report.OverallStats

	fmt.Fprintf(&b, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Network Usage Report - %s</title>
    <style>
        body { font-family: sans-serif; margin: 20px; color: #333; }
        h1, h2 { color: #2c3e50; }
        table { width: 100%%; border-collapse: collapse; margin-bottom: 20px; }
        th, td { border: 1px solid #ddd; padding: 8px; text-align: left; }
        th { background-color: #f2f2f2; }
        tr:nth-child(even) { background-color: #f9f9f9; }
        .summary { background: #eef; padding: 15px; border-radius: 5px; margin-bottom: 20px; }
        .up { color: #10b981; } .down { color: #ef4444; }
    </style>
</head>
<body>
    <h1>Network Usage Report</h1>
    <div class="summary">
        <p><strong>Generated:</strong> %s</p>
        <p><strong>Period:</strong> %s - %s (%d hours)</p>
        <p><strong>Total Bandwidth:</strong> %s</p>
        <p><strong>Total Sessions:</strong> %s</p>
        <p><strong>Avg Session Duration:</strong> %.1f s</p>
        <p><strong>Peak Usage Hour:</strong> %02d:00</p>
        <p><strong>Bytes Sent / Received:</strong> %s / %s</p>
    </div>
`,
		report.Metadata.GeneratedAt.Format("2006-01-02"),
		report.Metadata.GeneratedAt.Format("2006-01-02 15:04:05"),
		report.Metadata.PeriodStart.Format("2006-01-02 15:04"),
		report.Metadata.PeriodEnd.Format("2006-01-02 15:04"),
		report.Metadata.PeriodHours,
		utils.FormatBytes(stats.TotalBytes),
		utils.FormatNumber(int64(stats.TotalSessions)),
		stats.AvgSessionDuration,
		stats.PeakUsageHour,
		utils.FormatBytes(stats.BytesSent),
		utils.FormatBytes(stats.BytesReceived),
	)

	if len(stats.TopApplications) > 0 {
		b.WriteString("    <h2>Top Applications</h2>\n    <table>\n        <thead><tr><th>#</th><th>Application</th><th>Bandwidth</th></tr></thead>\n        <tbody>\n")
		for i, app := range stats.TopApplications {
			fmt.Fprintf(&b, "            <tr><td>%d</td><td>%s</td><td>%s</td></tr>\n",
				i+1, app.Name, utils.FormatBytes(app.Bytes))
		}
		b.WriteString("        </tbody>\n    </table>\n")
	}

	if len(report.VLANReports) > 0 {
		b.WriteString("    <h2>VLAN Usage Summary</h2>\n    <table>\n        <thead><tr><th>VLAN</th><th>Name</th><th>Devices</th><th>Sessions</th><th>Bandwidth</th></tr></thead>\n        <tbody>\n")
		for i, vlan := range report.VLANReports {
			if i >= exportSectionLimit {
				break
			}
			fmt.Fprintf(&b, "            <tr><td>%d</td><td>%s</td><td>%d</td><td>%s</td><td>%s</td></tr>\n",
				vlan.VlanID, vlan.VlanName, vlan.DeviceCount,
				utils.FormatNumber(int64(vlan.SessionCount)), utils.FormatBytes(vlan.TotalBandwidth))
		}
		b.WriteString("        </tbody>\n    </table>\n")
	}

	if len(report.DeviceReports) > 0 {
		b.WriteString("    <h2>Top Devices</h2>\n    <table>\n        <thead><tr><th>#</th><th>MAC</th><th>Name</th><th>Sessions</th><th>Bandwidth</th></tr></thead>\n        <tbody>\n")
		for i, device := range report.DeviceReports {
			if i >= exportSectionLimit {
				break
			}
			fmt.Fprintf(&b, "            <tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
				i+1, device.DeviceMAC, device.DeviceName,
				utils.FormatNumber(int64(device.SessionCount)), utils.FormatBytes(device.TotalBandwidth))
		}
		b.WriteString("        </tbody>\n    </table>\n")
	}

	if report.HistoricalComparison != nil {
		hc := report.HistoricalComparison
		cls := "up"
		if hc.BandwidthChangePercent < 0 {
			cls = "down"
		}
		fmt.Fprintf(&b, `    <h2>Previous Period Comparison</h2>
    <div class="summary">
        <p><strong>Previous Bandwidth:</strong> %s</p>
        <p><strong>Bandwidth Change:</strong> <span class="%s">%+.1f%%</span></p>
        <p><strong>Session Change:</strong> %+.1f%%</p>
    </div>
`,
			utils.FormatBytes(hc.PreviousStats.TotalBytes), cls,
			hc.BandwidthChangePercent, hc.SessionChangePercent)
	}

	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}
