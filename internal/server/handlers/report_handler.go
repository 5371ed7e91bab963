package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/server/services"
	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/shared/response"
	"github.com/MaverickTN/Linux-Network-Management-Toolbox-sub000/internal/shared/utils"

	"github.com/gin-gonic/gin"
)

// 周期参数上限：一周
const maxPeriodHours = 168

// ReportHandler 报表处理器
type ReportHandler struct {
	reportService  *services.ReportService
	sessionService *services.SessionService
	exportService  *services.ExportService
}

// NewReportHandler 创建报表处理器
func NewReportHandler(reportService *services.ReportService, sessionService *services.SessionService) *ReportHandler {
	return &ReportHandler{
		reportService:  reportService,
		sessionService: sessionService,
		exportService:  services.NewExportService(),
	}
}

// parsePeriod 解析period查询参数，非法值回退到24小时
func parsePeriod(c *gin.Context) int {
	periodStr := c.DefaultQuery("period", "24")
	period, err := strconv.Atoi(periodStr)
	if err != nil || period < 1 || period > maxPeriodHours {
		period = 24
	}
	return period
}

// GetReport 获取综合报表
func (rh *ReportHandler) GetReport(c *gin.Context) {
	period := parsePeriod(c)
	historical := c.DefaultQuery("historical", "false") == "true"

	report, err := rh.reportService.BuildReport(period, historical)
	if err != nil {
		response.InternalError(c, "生成报表失败: "+err.Error())
		return
	}

	response.Success(c, report)
}

// ExportReport 导出报表
// format参数选择导出格式：json/text/html，响应体为渲染结果本身
func (rh *ReportHandler) ExportReport(c *gin.Context) {
	period := parsePeriod(c)
	historical := c.DefaultQuery("historical", "false") == "true"
	format := services.ExportFormat(c.DefaultQuery("format", "json"))

	report, err := rh.reportService.BuildReport(period, historical)
	if err != nil {
		response.InternalError(c, "生成报表失败: "+err.Error())
		return
	}

	rendered, err := rh.exportService.Export(report, format)
	if err != nil {
		var formatErr *services.UnsupportedFormatError
		if errors.As(err, &formatErr) {
			response.BadRequest(c, formatErr.Error())
			return
		}
		response.InternalError(c, "导出报表失败: "+err.Error())
		return
	}

	switch format {
	case services.FormatHTML:
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(rendered))
	case services.FormatText:
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(rendered))
	default:
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(rendered))
	}
}

// GetDeviceReports 获取设备报表列表
func (rh *ReportHandler) GetDeviceReports(c *gin.Context) {
	period := parsePeriod(c)
	end := time.Now()
	start := end.Add(-time.Duration(period) * time.Hour)

	reports, err := rh.reportService.DeviceReports(start, end)
	if err != nil {
		response.InternalError(c, "生成设备报表失败: "+err.Error())
		return
	}

	response.Success(c, reports)
}

// GetVLANReports 获取VLAN报表列表
func (rh *ReportHandler) GetVLANReports(c *gin.Context) {
	period := parsePeriod(c)
	end := time.Now()
	start := end.Add(-time.Duration(period) * time.Hour)

	reports, err := rh.reportService.VLANReports(start, end)
	if err != nil {
		response.InternalError(c, "生成VLAN报表失败: "+err.Error())
		return
	}

	response.Success(c, reports)
}

// GetSessions 获取归一化会话记录列表
// 支持vlan_id和device_mac过滤，时间窗由period参数决定
func (rh *ReportHandler) GetSessions(c *gin.Context) {
	period := parsePeriod(c)
	end := time.Now()
	start := end.Add(-time.Duration(period) * time.Hour)

	var vlanID *int
	if vlanStr := c.Query("vlan_id"); vlanStr != "" {
		v, err := strconv.Atoi(vlanStr)
		if err != nil {
			response.BadRequest(c, "vlan_id 参数无效: "+vlanStr)
			return
		}
		vlanID = &v
	}

	deviceMAC := utils.NormalizeMAC(c.Query("device_mac"))

	sessions, err := rh.sessionService.ReadSessions(start, end, vlanID, deviceMAC)
	if err != nil {
		response.InternalError(c, "查询会话记录失败: "+err.Error())
		return
	}

	response.Success(c, sessions)
}
