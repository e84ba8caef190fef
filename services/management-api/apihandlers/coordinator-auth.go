package apihandlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/Jore52/Notificador-RSU/pkg/apihelpers/middlewares"
	jwthandling "github.com/Jore52/Notificador-RSU/pkg/jwt-handling"
)

func (h *HttpEndpoints) AddCoordinatorAuthAPI(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")

	// tokens are issued on behalf of the identity provider in front of this
	// API, which authenticates itself with a service API key
	auth.POST("/token",
		mw.HasValidAPIKey(h.apiKeys),
		mw.RequirePayload(),
		h.issueToken)

	auth.POST("/renew-token",
		mw.GetAndValidateCoordinatorUserJWT(h.tokenSignKey),
		mw.IsInstanceIDInJWTAllowed(h.allowedInstanceIDs),
		h.renewToken)
}

type TokenRequest struct {
	UserID     string `json:"userId"`
	InstanceID string `json:"instanceId"`
	IsAdmin    bool   `json:"isAdmin"`
}

func (h *HttpEndpoints) issueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("Error parsing request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.UserID == "" || req.InstanceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId and instanceId are required"})
		return
	}

	allowed := false
	for _, instanceID := range h.allowedInstanceIDs {
		if req.InstanceID == instanceID {
			allowed = true
			break
		}
	}
	if !allowed {
		slog.Warn("instanceID not allowed", slog.String("instanceID", req.InstanceID))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "instanceID not allowed"})
		return
	}

	token, err := jwthandling.GenerateNewCoordinatorUserToken(
		h.tokenExpiresIn,
		req.UserID,
		req.InstanceID,
		req.IsAdmin,
		nil,
		h.tokenSignKey,
	)
	if err != nil {
		slog.Error("failed to generate token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken": token,
		"expiresIn":   h.tokenExpiresIn.Seconds(),
	})
}

func (h *HttpEndpoints) renewToken(c *gin.Context) {
	parsedToken, ok := c.Get("validatedToken")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validatedToken not found in context"})
		return
	}
	claims := parsedToken.(*jwthandling.CoordinatorUserClaims)

	token, err := jwthandling.GenerateNewCoordinatorUserToken(
		h.tokenExpiresIn,
		claims.ID,
		claims.InstanceID,
		claims.IsAdmin,
		claims.Payload,
		h.tokenSignKey,
	)
	if err != nil {
		slog.Error("failed to renew token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to renew token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken": token,
		"expiresIn":   h.tokenExpiresIn.Seconds(),
	})
}
