package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	validator "github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/wkclabs/go-ai-orderflow/internal/agent"
	"github.com/wkclabs/go-ai-orderflow/internal/ai"
	"github.com/wkclabs/go-ai-orderflow/internal/assistant"
	"github.com/wkclabs/go-ai-orderflow/internal/aws"
	"github.com/wkclabs/go-ai-orderflow/internal/catalog"
	"github.com/wkclabs/go-ai-orderflow/internal/orders"
	"github.com/wkclabs/go-ai-orderflow/internal/products"
	"github.com/wkclabs/go-ai-orderflow/internal/validation"
)

// HandlerConfig groups dependencies for the API handlers.
type HandlerConfig struct {
	DynamoDBClient   aws.DynamoDBAPI
	SQSClient        aws.SQSAPI
	CloudWatchClient aws.CloudWatchAPI
	Generator        ai.TextGenerator
	OrdersTable      string
	ProductsTable    string
	QueueURL         string
	MetricsNamespace string
	Logger           *logrus.Logger
}

// deps is the wired collaborator set shared by the route handlers.
type deps struct {
	validate  *validator.Validate
	orders    *orders.Store
	products  *products.Store
	agent     *agent.Agent
	assistant *assistant.Assistant
	publisher *aws.Publisher
	metrics   *aws.Metrics
	logger    *logrus.Logger
}

// RegisterRoutes wires every API route onto the router.
func RegisterRoutes(r *gin.Engine, cfg HandlerConfig) {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}
	ordersStore := orders.NewStore(cfg.DynamoDBClient, cfg.OrdersTable)
	productsStore := products.NewStore(cfg.DynamoDBClient, cfg.ProductsTable)
	d := &deps{
		validate:  validation.New(),
		orders:    ordersStore,
		products:  productsStore,
		agent:     agent.New(cfg.Generator, catalog.Default(), ordersStore, productsStore, logger),
		assistant: assistant.New(cfg.Generator, logger),
		publisher: aws.NewPublisher(cfg.SQSClient, cfg.QueueURL),
		metrics:   aws.NewMetrics(cfg.CloudWatchClient, cfg.MetricsNamespace),
		logger:    logger,
	}

	registerHealthRoutes(r)
	registerQueryRoutes(r, d)
	registerOrderRoutes(r, d)
	registerProductRoutes(r, d)
}

func registerHealthRoutes(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "WKC Order Service with Gemini AI is running",
			"status":  "healthy",
			"version": "2.0.0",
			"features": []string{
				"order_processing",
				"ai_chat",
				"dynamodb_integration",
				"product_management",
				"natural_language_queries",
			},
		})
	})
}

func registerOrderRoutes(r *gin.Engine, d *deps) {
	r.POST("/place_order", d.placeOrder)
	r.POST("/process_chat", d.processChat)
	r.PUT("/order/:order_id/modify", d.modifyOrder)
	r.GET("/user/:user_id/orders", d.listUserOrders)
	r.GET("/order/:order_id", d.getOrder)
	r.PUT("/order/:order_id/status", d.updateOrderStatus)
}

// placeOrder creates an order from a chat message. Extraction runs through the
// model when use_ai_processing is on (the default); otherwise client-supplied
// details are used as-is, or the heuristic split when none were supplied.
func (d *deps) placeOrder(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.PlaceOrderRequest
	if err := validation.BindAndValidate(c, &req, d.validate); err != nil {
		return
	}

	details := detailsFromMap(req.OrderDetails)
	var (
		aiProcessed  bool
		aiAnalysis   string
		confirmation string
	)
	switch {
	case req.UseAI():
		res := d.assistant.ProcessOrderMessage(ctx, req.ChatMessage, req.UserID)
		details = res.OrderDetails
		aiProcessed = res.AIProcessed
		aiAnalysis = res.AIAnalysis
		if res.AIProcessed {
			confirmation = d.assistant.GenerateConfirmation(ctx, details)
		}
	case len(details.Items) == 0:
		res := d.assistant.HeuristicExtraction(req.ChatMessage)
		details = res.OrderDetails
		aiAnalysis = res.AIAnalysis
	}

	created, err := d.orders.Create(ctx, orders.Order{
		UserID:       req.UserID,
		ChatMessage:  req.ChatMessage,
		OrderDetails: details,
		AIProcessed:  aiProcessed,
		AIAnalysis:   aiAnalysis,
	})
	if err != nil {
		d.logger.WithError(err).Error("Failed to place order")
		Error(c, http.StatusInternalServerError, "Failed to place order: "+err.Error())
		return
	}

	// Event and metric are best-effort; the order is already durable.
	if err := d.publisher.PublishOrderCreated(ctx, created.OrderID, created.UserID, created.Status, created.CreatedAt.Format(time.RFC3339)); err != nil {
		d.logger.WithError(err).Warn("Order created but event publish failed")
	}
	if err := d.metrics.OrderPlaced(ctx, aiProcessed); err != nil {
		d.logger.WithError(err).Warn("Failed to record order metric")
	}

	d.logger.WithFields(logrus.Fields{
		"order_id": created.OrderID,
		"user_id":  created.UserID,
	}).Info("Order placed successfully")

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"order_id": created.OrderID,
		"message":  "Order placed successfully",
		"data": gin.H{
			"user_id":       req.UserID,
			"chat_message":  req.ChatMessage,
			"order_details": details,
		},
		"ai_processed":         aiProcessed,
		"ai_analysis":          orNull(aiAnalysis),
		"confirmation_message": orNull(confirmation),
	})
}

// processChat classifies the message first, then either extracts order details
// or generates a conversational reply.
func (d *deps) processChat(c *gin.Context) {
	ctx := c.Request.Context()

	var req validation.ChatMessageRequest
	if err := validation.BindAndValidate(c, &req, d.validate); err != nil {
		return
	}

	intent := d.assistant.ClassifyIntent(ctx, req.Message)
	if intent == assistant.IntentOrder {
		res := d.assistant.ProcessOrderMessage(ctx, req.Message, req.UserID)
		c.JSON(http.StatusOK, gin.H{
			"success":           true,
			"processed_message": req.Message,
			"ai_response":       res.AIAnalysis,
			"order_details":     res.OrderDetails,
			"intent":            assistant.IntentOrder,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"processed_message": req.Message,
		"ai_response":       d.assistant.GenerateReply(ctx, req.Message),
		"order_details":     nil,
		"intent":            assistant.IntentConversation,
	})
}

func (d *deps) modifyOrder(c *gin.Context) {
	ctx := c.Request.Context()
	orderID := c.Param("order_id")

	var req validation.OrderModificationRequest
	if err := validation.BindAndValidate(c, &req, d.validate); err != nil {
		return
	}

	original, err := d.orders.Get(ctx, orderID)
	if err != nil {
		Error(c, http.StatusInternalServerError, "Failed to modify order: "+err.Error())
		return
	}
	if original == nil {
		Error(c, http.StatusNotFound, "Order not found")
		return
	}

	mod, err := d.assistant.ModifyOrder(ctx, original, req.ModificationMessage)
	if err != nil {
		d.logger.WithError(err).Error("Order modification failed")
		Error(c, http.StatusInternalServerError, "Failed to modify order: "+err.Error())
		return
	}

	if err := d.orders.UpdateDetails(ctx, orderID, mod.UpdatedDetails, orders.StatusModified); err != nil {
		if err == orders.ErrNotFound {
			Error(c, http.StatusNotFound, "Order not found")
			return
		}
		Error(c, http.StatusInternalServerError, "Failed to update order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":              true,
		"order_id":             orderID,
		"message":              "Order modified successfully",
		"original_order":       original,
		"updated_order":        mod.UpdatedDetails,
		"modification_summary": mod.Summary,
	})
}

func (d *deps) listUserOrders(c *gin.Context) {
	userID := c.Param("user_id")

	list, err := d.orders.ListByUser(c.Request.Context(), userID)
	if err != nil {
		Error(c, http.StatusInternalServerError, "Failed to fetch user orders: "+err.Error())
		return
	}
	if list == nil {
		list = []orders.Order{}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  list,
		"count":   len(list),
	})
}

func (d *deps) getOrder(c *gin.Context) {
	orderID := c.Param("order_id")

	order, err := d.orders.Get(c.Request.Context(), orderID)
	if err != nil {
		Error(c, http.StatusInternalServerError, "Failed to fetch order: "+err.Error())
		return
	}
	if order == nil {
		Error(c, http.StatusNotFound, "Order not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
		"message": "Order retrieved successfully",
	})
}

func (d *deps) updateOrderStatus(c *gin.Context) {
	orderID := c.Param("order_id")

	var req validation.OrderStatusUpdate
	if err := validation.BindAndValidate(c, &req, d.validate); err != nil {
		return
	}

	if err := d.orders.SetStatus(c.Request.Context(), orderID, req.Status); err != nil {
		if err == orders.ErrNotFound {
			Error(c, http.StatusNotFound, "Order not found")
			return
		}
		Error(c, http.StatusInternalServerError, "Failed to update order status: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  fmt.Sprintf("Order status updated to %s", req.Status),
		"order_id": orderID,
		"status":   req.Status,
	})
}

// detailsFromMap converts client-supplied raw details into the typed form.
// Unknown keys drop out.
func detailsFromMap(raw map[string]interface{}) orders.OrderDetails {
	var details orders.OrderDetails
	if len(raw) == 0 {
		return details
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return details
	}
	_ = json.Unmarshal(b, &details)
	return details
}
