package router

import (
	"time"

	"lungcare/api"
	"lungcare/config"
	_ "lungcare/docs"
	"lungcare/middleware"
	"lungcare/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware())

	// 服务装配：所有外部协作方（推理、叙述、邮件、存储）在这里注入
	store := service.NewImageStore(&cfg.Storage)
	dual := service.NewDualModelClassifierFromConfig(&cfg.Inference)
	vlm := service.NewMedGemmaClassifier(&cfg.MedGemma)
	narrative := service.NewNarrativeService(&cfg.Report)
	email := service.NewEmailService(&cfg.Email)

	analyzeHandler := api.NewAnalyzeHandler(dual, store)
	medgemmaHandler := api.NewMedGemmaHandler(vlm, store)
	diagnosisHandler := api.NewDiagnosisHandler()
	reportHandler := api.NewReportHandler(narrative, email)

	// 认证接口（无需登录）
	authHandler := api.NewAuthHandler(cfg)
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", middleware.RateLimit(5, time.Minute), authHandler.Login)
	}

	// 筛查接口；auth.enabled 开启时要求 JWT
	screening := r.Group("")
	if cfg.Auth.Enabled {
		screening.Use(middleware.JWTAuth())
	}
	{
		screening.POST("/analyze", middleware.RateLimit(30, time.Minute), analyzeHandler.Analyze)
		screening.POST("/medgemma/analyze", middleware.RateLimit(30, time.Minute), medgemmaHandler.Analyze)
		screening.GET("/diagnoses", diagnosisHandler.List)
		screening.GET("/diagnoses/export/excel", diagnosisHandler.ExportExcel)

		report := screening.Group("/report")
		{
			report.POST("/generate-report", reportHandler.GenerateReport)
			report.POST("/send-report-email", reportHandler.SendReportEmail)
		}
	}

	// 上传图片的静态访问（诊断记录里的 image_url 指向这里）
	r.Static("/uploads", cfg.Storage.UploadDir)

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	return r
}

// CORSMiddleware CORS 跨域中间件
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
