package api

import (
	"errors"
	"net/http"

	"lungcare/config"
	"lungcare/database"
	"lungcare/middleware"
	"lungcare/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler 医生账号认证处理器（接口认证开启时使用）
type AuthHandler struct {
	cfg *config.Config
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	Email    string `json:"email" binding:"omitempty,email"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 注册医生账号
// @Summary 注册账号
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "账号信息"
// @Success 200 {object} models.User "注册成功"
// @Failure 400 {object} ErrorResponse "参数错误或用户名已存在"
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	// 检查用户名是否已存在
	var existing models.User
	err := database.DB.Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		BadRequest(c, "用户名已存在")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		InternalError(c, SafeErrorMessage(err, "查询用户失败"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "密码加密失败"))
		return
	}

	user := models.User{
		Username: req.Username,
		Password: string(hash),
		Email:    req.Email,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "创建用户失败"))
		return
	}

	c.JSON(http.StatusOK, user)
}

// Login 登录换取 JWT
// @Summary 登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body LoginRequest true "账号密码"
// @Success 200 {object} map[string]interface{} "token"
// @Failure 401 {object} ErrorResponse "用户名或密码错误"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "参数错误"))
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		Unauthorized(c, "用户名或密码错误")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		Unauthorized(c, "用户名或密码错误")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Username, h.cfg.Auth.ExpireTime)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "生成 token 失败"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_in": int(h.cfg.Auth.ExpireTime.Seconds()),
		"user":       user,
	})
}
