package apihandlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	sc "github.com/Jore52/Notificador-RSU/pkg/smtp-client"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	apiKeys     []string
	smtpClients *sc.SmtpClients
}

func NewHTTPHandler(
	apiKeys []string,
	smtpClients *sc.SmtpClients,
) *HttpEndpoints {
	return &HttpEndpoints{
		apiKeys:     apiKeys,
		smtpClients: smtpClients,
	}
}
