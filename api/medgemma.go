package api

import (
	"io"
	"net/http"

	"lungcare/models"
	"lungcare/service"

	"github.com/gin-gonic/gin"
)

// MedGemmaHandler 视觉语言模型分类处理器
type MedGemmaHandler struct {
	classifier service.Classifier
	store      *service.ImageStore
}

// NewMedGemmaHandler 创建视觉语言模型分类处理器
func NewMedGemmaHandler(classifier service.Classifier, store *service.ImageStore) *MedGemmaHandler {
	return &MedGemmaHandler{classifier: classifier, store: store}
}

// Analyze 上传 CT 图片并用视觉语言模型分类
// @Summary 视觉语言模型分析
// @Description few-shot 提示视觉语言模型对图片分类，回答必须落在四分类闭集内
// @Tags 筛查
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "CT 图片"
// @Success 200 {object} AnalyzeResponse "分类结果"
// @Failure 400 {object} ErrorResponse "未上传图片"
// @Failure 500 {object} ErrorResponse "推理失败或标签不在闭集内"
// @Router /medgemma/analyze [post]
func (h *MedGemmaHandler) Analyze(c *gin.Context) {
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

	saveDiagnosis(stored, result.Label, models.MethodVisionLanguage, result.Confidence)

	c.JSON(http.StatusOK, AnalyzeResponse{
		Classification: result.Label,
		Confidence:     result.Confidence,
		ImageURL:       stored,
		Method:         models.MethodVisionLanguage,
	})
}
