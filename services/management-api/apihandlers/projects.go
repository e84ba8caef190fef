package apihandlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	mw "github.com/Jore52/Notificador-RSU/pkg/apihelpers/middlewares"
	"github.com/Jore52/Notificador-RSU/pkg/notification"
	"github.com/Jore52/Notificador-RSU/pkg/notification/types"
)

func (h *HttpEndpoints) AddProjectManagementAPI(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	projects.Use(mw.GetAndValidateCoordinatorUserJWT(h.tokenSignKey))
	projects.Use(mw.IsInstanceIDInJWTAllowed(h.allowedInstanceIDs))
	{
		projects.GET("", h.getAllProjects)
		projects.POST("", mw.RequirePayload(), h.saveProject)
		projects.GET("/:projectID", h.getProject)
		projects.PUT("/:projectID", mw.RequirePayload(), h.updateProject)
		projects.DELETE("/:projectID", h.deleteProject)
		projects.GET("/:projectID/sent-emails", h.getProjectSentEmails)
	}
}

func (h *HttpEndpoints) getAllProjects(c *gin.Context) {
	instanceID, ok := instanceIDFromToken(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validatedToken not found in context"})
		return
	}

	projects, err := h.projectDBService.GetProjects(instanceID)
	if err != nil {
		slog.Error("failed to fetch projects", slog.String("instanceID", instanceID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (h *HttpEndpoints) getProject(c *gin.Context) {
	instanceID, ok := instanceIDFromToken(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validatedToken not found in context"})
		return
	}
	projectID := c.Param("projectID")

	project, err := h.projectDBService.GetProjectByID(instanceID, projectID)
	if err != nil {
		slog.Warn("project not found", slog.String("instanceID", instanceID), slog.String("projectID", projectID))
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project})
}

func (h *HttpEndpoints) saveProject(c *gin.Context) {
	instanceID, ok := instanceIDFromToken(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validatedToken not found in context"})
		return
	}

	var project types.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		slog.Error("Error parsing request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.persistAndEvaluate(c, instanceID, project)
}

func (h *HttpEndpoints) updateProject(c *gin.Context) {
	instanceID, ok := instanceIDFromToken(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validatedToken not found in context"})
		return
	}
	projectID := c.Param("projectID")

	var project types.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		slog.Error("Error parsing request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	project.ID = projectID

	h.persistAndEvaluate(c, instanceID, project)
}

// persistAndEvaluate saves the project and immediately evaluates its
// notification conditions. The eager check shares the code path of the
// periodic job, so saving can never trigger an email the job would not send.
func (h *HttpEndpoints) persistAndEvaluate(c *gin.Context, instanceID string, project types.Project) {
	normalizeProject(&project)

	if project.CoordinatorEmail == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinatorEmail is required"})
		return
	}

	saved, err := h.projectDBService.SaveProject(instanceID, project)
	if err != nil {
		slog.Error("failed to save project", slog.String("instanceID", instanceID), slog.String("projectID", project.ID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save project"})
		return
	}

	scheduler := notification.NewScheduler(
		instanceHistoryStore{instanceID: instanceID, db: h.messagingDBService},
		h.emailSender,
	)
	outcomes := scheduler.EvaluateProject(saved)

	c.JSON(http.StatusOK, gin.H{
		"project":             saved,
		"notificationResults": outcomes,
	})
}

func (h *HttpEndpoints) deleteProject(c *gin.Context) {
	instanceID, ok := instanceIDFromToken(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validatedToken not found in context"})
		return
	}
	projectID := c.Param("projectID")

	// the send history of the project is kept on purpose, it is an audit trail
	if err := h.projectDBService.DeleteProject(instanceID, projectID); err != nil {
		slog.Error("failed to delete project", slog.String("instanceID", instanceID), slog.String("projectID", projectID), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "project deleted"})
}

// normalizeProject assigns missing IDs and maps enum-like fields onto their
// known values, so that stored documents are always well formed.
func normalizeProject(project *types.Project) {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	project.DeadlineCalculationMethod = types.ParseDeadlineCalculationMethod(string(project.DeadlineCalculationMethod))

	for i := range project.Conditions {
		if project.Conditions[i].ID == "" {
			project.Conditions[i].ID = uuid.NewString()
		}
		project.Conditions[i].Operator = types.ParseConditionOperator(string(project.Conditions[i].Operator))
		project.Conditions[i].Frequency = types.ParseFrequencyType(string(project.Conditions[i].Frequency))
	}

	for i := range project.Members {
		if project.Members[i].ID == "" {
			project.Members[i].ID = uuid.NewString()
		}
	}
}
