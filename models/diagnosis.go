package models

import (
	"strings"
	"time"
)

// Diagnosis 诊断记录模型（只追加：系统不提供修改和删除）
type Diagnosis struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ImageURL      string    `json:"image_url" gorm:"size:255;not null"`
	DiagnosisType string    `json:"diagnosis_type" gorm:"size:50;not null"`
	Method        string    `json:"method" gorm:"size:30;not null"`
	Confidence    float64   `json:"confidence" gorm:"not null"`
	CreatedAt     time.Time `json:"created_date"`
}

// TableName 设置表名
func (Diagnosis) TableName() string {
	return "diagnoses"
}

// Method 诊断方式常量
const (
	MethodDeepLearning   = "deep_learning"
	MethodVisionLanguage = "vision_language_model"
)

// 诊断标签常量（归一化后的四分类闭集）
const (
	LabelAdenocarcinoma        = "adenocarcinoma"
	LabelLargeCellCarcinoma    = "large_cell_carcinoma"
	LabelNormal                = "normal"
	LabelSquamousCellCarcinoma = "squamous_cell_carcinoma"
)

// GetLabels 获取所有诊断标签
func GetLabels() []string {
	return []string{
		LabelAdenocarcinoma,
		LabelLargeCellCarcinoma,
		LabelNormal,
		LabelSquamousCellCarcinoma,
	}
}

// NormalizeLabel 归一化模型输出的标签
// "Large cell carcinoma" / "squamous.cell.carcinoma" -> "large_cell_carcinoma" / "squamous_cell_carcinoma"
func NormalizeLabel(label string) string {
	s := strings.ToLower(strings.TrimSpace(label))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ".", "_")
	return s
}

// IsValidLabel 判断归一化后的标签是否属于四分类闭集
func IsValidLabel(label string) bool {
	for _, l := range GetLabels() {
		if label == l {
			return true
		}
	}
	return false
}
