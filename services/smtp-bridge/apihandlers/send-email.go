package apihandlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	mw "github.com/Jore52/Notificador-RSU/pkg/apihelpers/middlewares"
	sc "github.com/Jore52/Notificador-RSU/pkg/smtp-client"
)

func (h *HttpEndpoints) AddRoutes(rg *gin.RouterGroup) {
	rg.POST("/send-email",
		mw.HasValidAPIKey(h.apiKeys),
		mw.RequirePayload(),
		h.sendEmail)
}

type SendEmailReq struct {
	To          []string            `json:"to"`
	Subject     string              `json:"subject"`
	Content     string              `json:"content"`
	Attachments []string            `json:"attachments"`
	Overrides   *sc.HeaderOverrides `json:"headerOverrides"`
}

func (h *HttpEndpoints) sendEmail(c *gin.Context) {
	var req SendEmailReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("Error parsing request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.To) < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no recipients defined"})
		return
	}

	err := h.smtpClients.SendMail(
		req.To,
		req.Subject,
		req.Content,
		req.Attachments,
		req.Overrides,
	)
	if err != nil {
		slog.Error("Error sending email", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	slog.Info("Email sent", slog.Int("recipients", len(req.To)))
	c.JSON(http.StatusOK, gin.H{"message": "email sent"})
}
