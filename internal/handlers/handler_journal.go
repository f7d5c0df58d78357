package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_reconciler/internal/core/ports/services"
	"github.com/SscSPs/ledger_reconciler/internal/dto"
	"github.com/SscSPs/ledger_reconciler/internal/middleware"
	"github.com/SscSPs/ledger_reconciler/internal/utils"
)

// journalEntryHandler handles HTTP requests on posted journal entries.
type journalEntryHandler struct {
	authorizer portssvc.CompanyAuthorizerSvc
	generator  portssvc.LineGeneratorSvc
	editor     portssvc.EntryEditorSvc
	entries    portssvc.EntryReaderSvc
	audit      portssvc.AuditReaderSvc
	posthog    *utils.PosthogClientWrapper
}

// RegisterJournalEntryRoutes registers the journal entry routes under a company-scoped group.
func RegisterJournalEntryRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer, posthog *utils.PosthogClientWrapper) {
	h := &journalEntryHandler{
		authorizer: services.Authorizer,
		generator:  services.Generator,
		editor:     services.Editor,
		entries:    services.Entries,
		audit:      services.Audit,
		posthog:    posthog,
	}

	entries := rg.Group("/journal-entries/:entry_id")
	{
		entries.GET("", h.getEntry)
		entries.PUT("", h.saveEdit)
		entries.POST("/generate-lines", h.generateLines)
		entries.GET("/audit", h.listAudit)
		entries.GET("/audit/verify", h.verifyAudit)
	}
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves a journal entry header and its lines
// @Tags journal-entries
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   entry_id path string true "Journal entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Security BearerAuth
// @Router /companies/{company_id}/journal-entries/{entry_id} [get]
func (h *journalEntryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, entryID := c.Param("company_id"), c.Param("entry_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, lines, err := h.entries.GetEntry(c.Request.Context(), companyID, entryID, userID)
	if err != nil {
		writeServiceError(c, logger, err, "retrieve entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry, lines))
}

// generateLines godoc
// @Summary Generate journal lines from the source document
// @Description Derives the lines of an entry from its referenced invoice, bill or payment. Repeated calls are no-ops.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   entry_id path string true "Journal entry ID"
// @Param   reference body dto.GenerateLinesRequest false "Expected reference of the entry"
// @Success 201 {object} dto.GenerateLinesResponse "Lines created"
// @Success 200 {object} dto.GenerateLinesResponse "Lines already existed"
// @Failure 400 {object} map[string]string "Reference mismatch or unbalanced result"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Entry, document or account not found"
// @Failure 422 {object} map[string]string "Entry has no supported reference"
// @Failure 500 {object} map[string]string "Failed to generate lines"
// @Security BearerAuth
// @Router /companies/{company_id}/journal-entries/{entry_id}/generate-lines [post]
func (h *journalEntryHandler) generateLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, entryID := c.Param("company_id"), c.Param("entry_id")

	var req dto.GenerateLinesRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for GenerateLines", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}
	req.CompanyID, req.EntryID = companyID, entryID

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if err := h.authorizer.AuthorizeUserAction(c.Request.Context(), userID, companyID, domain.RoleAccountant); err != nil {
		writeServiceError(c, logger, err, "authorize line generation")
		return
	}

	result, err := h.generator.GenerateLines(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, logger, err, "generate lines")
		return
	}

	status := http.StatusOK
	if result.Outcome == domain.GenerationCreated {
		status = http.StatusCreated
	}
	c.JSON(status, dto.ToGenerateLinesResponse(result))
}

// saveEdit godoc
// @Summary Edit a posted journal entry
// @Description Replaces the header and lines of an entry, records an audit record and updates linked documents. Owners only.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   entry_id path string true "Journal entry ID"
// @Param   edit body dto.SaveEditRequest true "New header and lines"
// @Success 200 {object} dto.SaveEditResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 403 {object} map[string]string "Not an owner or protected entry"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Version conflict"
// @Failure 500 {object} map[string]string "Failed to save edit"
// @Security BearerAuth
// @Router /companies/{company_id}/journal-entries/{entry_id} [put]
func (h *journalEntryHandler) saveEdit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SaveEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveEdit", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.CompanyID, req.EntryID = c.Param("company_id"), c.Param("entry_id")

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.editor.SaveEdit(c.Request.Context(), req, actor)
	if err != nil {
		writeServiceError(c, logger, err, "save edit")
		return
	}

	if len(result.SyncWarnings) > 0 || !result.AuditRecorded {
		middleware.PosthogEvent(c, h.posthog, "journal_entry_edit_degraded", map[string]any{
			"entry_id":       result.Entry.EntryID,
			"sync_warnings":  len(result.SyncWarnings),
			"audit_recorded": result.AuditRecorded,
		})
	}
	c.JSON(http.StatusOK, dto.ToSaveEditResponse(result))
}

// listAudit godoc
// @Summary List the audit trail of an entry
// @Tags journal-entries
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   entry_id path string true "Journal entry ID"
// @Success 200 {object} dto.ListAuditRecordsResponse
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to list audit records"
// @Security BearerAuth
// @Router /companies/{company_id}/journal-entries/{entry_id}/audit [get]
func (h *journalEntryHandler) listAudit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	records, err := h.audit.ListAuditRecords(c.Request.Context(), c.Param("company_id"), c.Param("entry_id"), userID)
	if err != nil {
		writeServiceError(c, logger, err, "list audit records")
		return
	}
	c.JSON(http.StatusOK, dto.ToListAuditRecordsResponse(records))
}

// verifyAudit godoc
// @Summary Verify the audit hash chain of an entry
// @Tags journal-entries
// @Produce  json
// @Param   company_id path string true "Company ID"
// @Param   entry_id path string true "Journal entry ID"
// @Success 200 {object} domain.AuditVerification
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to verify audit trail"
// @Security BearerAuth
// @Router /companies/{company_id}/journal-entries/{entry_id}/audit/verify [get]
func (h *journalEntryHandler) verifyAudit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.audit.VerifyAuditTrail(c.Request.Context(), c.Param("company_id"), c.Param("entry_id"), userID)
	if err != nil {
		writeServiceError(c, logger, err, "verify audit trail")
		return
	}
	c.JSON(http.StatusOK, result)
}
