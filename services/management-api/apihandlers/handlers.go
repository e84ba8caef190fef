package apihandlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	jwthandling "github.com/Jore52/Notificador-RSU/pkg/jwt-handling"
	"github.com/Jore52/Notificador-RSU/pkg/notification"

	messagingDB "github.com/Jore52/Notificador-RSU/pkg/db/messaging"
	projectDB "github.com/Jore52/Notificador-RSU/pkg/db/project"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	tokenSignKey       string
	tokenExpiresIn     time.Duration
	apiKeys            []string
	allowedInstanceIDs []string
	projectDBService   *projectDB.ProjectDBService
	messagingDBService *messagingDB.MessagingDBService
	emailSender        notification.MailSender
}

func NewHTTPHandler(
	tokenSignKey string,
	tokenExpiresIn time.Duration,
	apiKeys []string,
	allowedInstanceIDs []string,
	projectDBService *projectDB.ProjectDBService,
	messagingDBService *messagingDB.MessagingDBService,
	emailSender notification.MailSender,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey:       tokenSignKey,
		tokenExpiresIn:     tokenExpiresIn,
		apiKeys:            apiKeys,
		allowedInstanceIDs: allowedInstanceIDs,
		projectDBService:   projectDBService,
		messagingDBService: messagingDBService,
		emailSender:        emailSender,
	}
}

// instanceIDFromToken reads the instance ID of the validated token that the
// JWT middleware stored in the request context.
func instanceIDFromToken(c *gin.Context) (string, bool) {
	parsedToken, ok := c.Get("validatedToken")
	if !ok {
		return "", false
	}
	claims, ok := parsedToken.(*jwthandling.CoordinatorUserClaims)
	if !ok {
		return "", false
	}
	return claims.InstanceID, true
}
