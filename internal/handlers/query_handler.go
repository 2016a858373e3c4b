package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wkclabs/go-ai-orderflow/internal/validation"
)

func registerQueryRoutes(r *gin.Engine, d *deps) {
	r.POST("/query", d.processQuery)
}

// processQuery drives the natural-language dispatch flow. A model failure is a
// 500; an unrecognized or unparseable selection is a 200 with success false so
// the caller sees the available functions.
func (d *deps) processQuery(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.NaturalLanguageQueryRequest
	if err := validation.BindAndValidate(c, &req, d.validate); err != nil {
		return
	}

	contextData := req.Context
	if contextData == nil {
		contextData = map[string]interface{}{}
	}
	if req.UserID != "" {
		contextData["user_id"] = req.UserID
	}

	result, err := d.agent.ProcessQuery(ctx, req.Query, contextData)
	if err != nil {
		Error(c, http.StatusInternalServerError, "Failed to process query: "+err.Error())
		return
	}

	if !result.Success {
		avail := result.AvailableFunctions
		if avail == nil {
			avail = []string{}
		}
		c.JSON(http.StatusOK, gin.H{
			"success":             false,
			"query":               result.Query,
			"error":               orNull(result.Error),
			"explanation":         orNull(result.Explanation),
			"available_functions": avail,
		})
		return
	}

	if err := d.metrics.QueryDispatched(ctx, string(result.FunctionCalled)); err != nil {
		d.logger.WithError(err).Warn("Failed to record query metric")
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"query":           result.Query,
		"function_called": string(result.FunctionCalled),
		"explanation":     result.Explanation,
		"result":          result.HandlerResult,
		"parameters_used": result.Parameters,
	})
}
