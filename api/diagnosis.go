package api

import (
	"fmt"
	"net/http"
	"time"

	"lungcare/database"
	"lungcare/models"
	"lungcare/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// DiagnosisHandler 诊断记录处理器（记录只追加，这里只有查询和导出）
type DiagnosisHandler struct{}

// NewDiagnosisHandler 创建诊断记录处理器
func NewDiagnosisHandler() *DiagnosisHandler {
	return &DiagnosisHandler{}
}

// List 获取全部诊断记录
// @Summary 获取诊断记录列表
// @Description 按创建时间倒序返回全部诊断记录，没有记录时返回空数组
// @Tags 诊断记录
// @Produce json
// @Success 200 {array} models.Diagnosis "诊断记录"
// @Failure 500 {object} ErrorResponse "查询失败"
// @Router /diagnoses [get]
func (h *DiagnosisHandler) List(c *gin.Context) {
	var list []models.Diagnosis
	// 同一秒内的记录再按 id 倒序，保证顺序稳定
	if err := database.DB.Order("created_at DESC, id DESC").Find(&list).Error; err != nil {
		FailWithError(c, fmt.Errorf("%w: %v", service.ErrPersistence, err), "查询诊断记录失败")
		return
	}
	if list == nil {
		list = []models.Diagnosis{}
	}
	c.JSON(http.StatusOK, list)
}

// ExportExcel 导出诊断记录为 Excel
// @Summary 导出诊断记录
// @Description 可选按日期范围过滤，导出诊断记录为 Excel 文件
// @Tags 诊断记录
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param start_time query string false "开始日期 (YYYY-MM-DD)"
// @Param end_time query string false "结束日期 (YYYY-MM-DD)"
// @Success 200 {file} file "Excel 文件"
// @Failure 400 {object} ErrorResponse "日期格式错误"
// @Failure 500 {object} ErrorResponse "导出失败"
// @Router /diagnoses/export/excel [get]
func (h *DiagnosisHandler) ExportExcel(c *gin.Context) {
	query := database.DB.Model(&models.Diagnosis{})

	if startStr := c.Query("start_time"); startStr != "" {
		start, err := time.ParseInLocation("2006-01-02", startStr, time.Local)
		if err != nil {
			BadRequest(c, "开始日期格式错误，应为: 2006-01-02")
			return
		}
		query = query.Where("created_at >= ?", start)
	}
	if endStr := c.Query("end_time"); endStr != "" {
		end, err := time.ParseInLocation("2006-01-02", endStr, time.Local)
		if err != nil {
			BadRequest(c, "结束日期格式错误，应为: 2006-01-02")
			return
		}
		end = end.Add(24*time.Hour - time.Second)
		query = query.Where("created_at <= ?", end)
	}

	var list []models.Diagnosis
	if err := query.Order("created_at DESC, id DESC").Find(&list).Error; err != nil {
		FailWithError(c, fmt.Errorf("%w: %v", service.ErrPersistence, err), "查询诊断记录失败")
		return
	}

	// 创建 Excel 文件
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "诊断记录"
	f.SetSheetName("Sheet1", sheetName)

	// 表头样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 数据样式
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
	})

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 8)
	f.SetColWidth(sheetName, "B", "B", 40)
	f.SetColWidth(sheetName, "C", "C", 26)
	f.SetColWidth(sheetName, "D", "D", 24)
	f.SetColWidth(sheetName, "E", "E", 12)
	f.SetColWidth(sheetName, "F", "F", 20)

	// 写入表头
	headers := []string{"ID", "图片", "诊断结果", "方式", "置信度", "创建时间"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	// 写入数据
	for i, d := range list {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), d.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), d.ImageURL)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), d.DiagnosisType)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), d.Method)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), fmt.Sprintf("%.2f%%", d.Confidence*100))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), d.CreatedAt.Format("2006-01-02 15:04:05"))
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("F%d", row), dataStyle)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "生成 Excel 失败"))
		return
	}

	filename := fmt.Sprintf("diagnoses_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Length", fmt.Sprintf("%d", buf.Len()))

	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
