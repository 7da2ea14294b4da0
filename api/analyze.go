package api

import (
	"io"
	"log"
	"net/http"

	"lungcare/database"
	"lungcare/models"
	"lungcare/service"

	"github.com/gin-gonic/gin"
)

// AnalyzeHandler 图片接收与深度学习分类处理器
type AnalyzeHandler struct {
	classifier service.Classifier
	store      *service.ImageStore
}

// NewAnalyzeHandler 创建分类处理器
func NewAnalyzeHandler(classifier service.Classifier, store *service.ImageStore) *AnalyzeHandler {
	return &AnalyzeHandler{classifier: classifier, store: store}
}

// AnalyzeResponse 分类响应
type AnalyzeResponse struct {
	Classification string  `json:"classification"`
	Confidence     float64 `json:"confidence"`
	ImageURL       string  `json:"image_url"`
	Method         string  `json:"method"`
}

// Analyze 上传 CT 图片并做双模型分类
// @Summary 分析肺部 CT 图片
// @Description 上传图片后由两个深度学习模型分别推理，取置信度更高的结果并追加诊断记录
// @Tags 筛查
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "CT 图片"
// @Success 200 {object} AnalyzeResponse "分类结果"
// @Failure 400 {object} ErrorResponse "未上传图片"
// @Failure 500 {object} ErrorResponse "推理或存储失败"
// @Router /analyze [post]
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		BadRequest(c, "未上传图片")
		return
	}

	src, err := file.Open()
	if err != nil {
		BadRequest(c, "读取上传图片失败")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		BadRequest(c, "读取上传图片失败")
		return
	}

	stored, err := h.store.Save(file.Filename, data)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "保存上传图片失败"))
		return
	}

	result, err := h.classifier.Classify(c.Request.Context(), data)
	if err != nil {
		FailWithError(c, err, "图片分析失败")
		return
	}

	saveDiagnosis(stored, result.Label, models.MethodDeepLearning, result.Confidence)

	c.JSON(http.StatusOK, AnalyzeResponse{
		Classification: result.Label,
		Confidence:     result.Confidence,
		ImageURL:       stored,
		Method:         models.MethodDeepLearning,
	})
}

// saveDiagnosis 追加一条诊断记录
// 入库失败只记日志不阻断：分类结果已经产生，不能因为存储不可用让调用方拿不到
func saveDiagnosis(imageURL, label, method string, confidence float64) {
	diag := models.Diagnosis{
		ImageURL:      imageURL,
		DiagnosisType: label,
		Method:        method,
		Confidence:    confidence,
	}
	if err := database.DB.Create(&diag).Error; err != nil {
		log.Printf("诊断记录入库失败（继续返回结果）: %v", err)
	}
}
