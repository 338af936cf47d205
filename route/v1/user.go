package v1

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vihackerframework/vihacker-go/model"
	"github.com/vihackerframework/vihacker-go/pkg/config"
	"github.com/vihackerframework/vihacker-go/pkg/exception"
	"github.com/vihackerframework/vihacker-go/pkg/handler"
	"github.com/vihackerframework/vihacker-go/pkg/utils/jwt"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type tokenRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Role     string `json:"role" binding:"omitempty,oneof=user admin"`
	Code     string `json:"code" binding:"required"`
}

// @Summary issue a token for the holder of the configured issue code
// @Router /v1/users/token [post]
func PostUserToken(c *gin.Context) {
	var req tokenRequest
	if err := handler.BindJSON(c, &req); err != nil {
		_ = c.Error(err)
		return
	}

	if len(config.JWTInfo.IssueCode) == 0 {
		_ = c.Error(exception.NewAccessDenied("token issuing is disabled"))
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.Code), []byte(config.JWTInfo.IssueCode)) != 1 {
		_ = c.Error(exception.NewValidateCode("issue code is incorrect"))
		return
	}

	role := req.Role
	if role == "" {
		role = RoleUser
	}
	expire := time.Duration(config.JWTInfo.Expire) * time.Hour
	token, err := jwt.GenerateToken(req.Username, role, 0, config.JWTInfo.Issuer, expire)
	if err != nil {
		_ = c.Error(exception.Wrap(err, "generate token failed"))
		return
	}

	c.JSON(http.StatusOK, model.Ok(gin.H{
		"token":      token,
		"expires_at": time.Now().Add(expire).Unix(),
	}))
}
