package apihandlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Jore52/Notificador-RSU/pkg/apihelpers"
	mw "github.com/Jore52/Notificador-RSU/pkg/apihelpers/middlewares"
	"github.com/Jore52/Notificador-RSU/pkg/notification/types"

	messagingDB "github.com/Jore52/Notificador-RSU/pkg/db/messaging"
)

func (h *HttpEndpoints) AddSentHistoryAPI(rg *gin.RouterGroup) {
	sentEmails := rg.Group("/sent-emails")
	sentEmails.Use(mw.GetAndValidateCoordinatorUserJWT(h.tokenSignKey))
	sentEmails.Use(mw.IsInstanceIDInJWTAllowed(h.allowedInstanceIDs))
	{
		sentEmails.GET("", h.getSentEmails)
	}
}

func (h *HttpEndpoints) getSentEmails(c *gin.Context) {
	instanceID, ok := instanceIDFromToken(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validatedToken not found in context"})
		return
	}

	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records, err := h.messagingDBService.GetSentEmails(instanceID, query.Page, query.Limit)
	if err != nil {
		slog.Error("failed to fetch sent emails", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch sent emails"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sentEmails": records,
		"page":       query.Page,
		"limit":      query.Limit,
	})
}

func (h *HttpEndpoints) getProjectSentEmails(c *gin.Context) {
	instanceID, ok := instanceIDFromToken(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validatedToken not found in context"})
		return
	}
	projectID := c.Param("projectID")

	records, err := h.messagingDBService.GetSentEmailsForProject(instanceID, projectID)
	if err != nil {
		slog.Error("failed to fetch sent emails for project", slog.String("instanceID", instanceID), slog.String("projectID", projectID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch sent emails"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sentEmails": records})
}

// instanceHistoryStore scopes the messaging DB service to one instance for
// the scheduler.
type instanceHistoryStore struct {
	instanceID string
	db         *messagingDB.MessagingDBService
}

func (s instanceHistoryStore) HasSuccessfulSend(conditionID string) (bool, error) {
	return s.db.HasSuccessfulSendForCondition(s.instanceID, conditionID)
}

func (s instanceHistoryStore) Append(record types.SentEmail) error {
	_, err := s.db.AddToSentEmails(s.instanceID, record)
	return err
}
