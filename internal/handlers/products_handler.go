package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wkclabs/go-ai-orderflow/internal/products"
	"github.com/wkclabs/go-ai-orderflow/internal/validation"
)

func registerProductRoutes(r *gin.Engine, d *deps) {
	r.POST("/products", d.createProduct)
	r.GET("/products/seller/:user_id", d.listSellerProducts)
	r.GET("/products/seller/:user_id/search", d.searchSellerProducts)
	r.GET("/products/:product_id", d.getProduct)
	r.PUT("/products/:product_id", d.updateProduct)
	r.DELETE("/products/:product_id", d.deleteProduct)
	r.PUT("/products/:product_id/quantity", d.updateProductQuantity)
}

func (d *deps) createProduct(c *gin.Context) {
	var req validation.ProductCreateRequest
	if err := validation.BindAndValidate(c, &req, d.validate); err != nil {
		return
	}
	if req.UserType == "" {
		req.UserType = "seller"
	}

	created, err := d.products.Create(c.Request.Context(), products.Product{
		Name:        req.Name,
		Price:       *req.Price,
		Quantity:    *req.Quantity,
		Category:    req.Category,
		CompanyName: req.CompanyName,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		SKU:         req.SKU,
		UserID:      req.UserID,
		UserType:    req.UserType,
	})
	if err != nil {
		d.logger.WithError(err).Error("Failed to create product")
		Error(c, http.StatusInternalServerError, "Failed to create product: "+err.Error())
		return
	}

	d.logger.WithFields(logrus.Fields{
		"product_id": created.ProductID,
	}).Info("Product created successfully")

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"product_id": created.ProductID,
		"message":    "Product created successfully",
		"data":       req,
	})
}

func (d *deps) listSellerProducts(c *gin.Context) {
	userID := c.Param("user_id")
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)
	if limit > 100 {
		limit = 100
	}

	result, err := d.products.ListBySeller(c.Request.Context(), userID, page, limit)
	if err != nil {
		Error(c, http.StatusInternalServerError, "Failed to fetch seller products: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"products":     result.Products,
		"count":        result.Count,
		"total_pages":  result.TotalPages,
		"current_page": result.CurrentPage,
	})
}

func (d *deps) searchSellerProducts(c *gin.Context) {
	userID := c.Param("user_id")
	searchTerm := c.Query("search_term")
	category := c.Query("category")

	if strings.TrimSpace(searchTerm) == "" {
		Error(c, http.StatusBadRequest, "Search term is required")
		return
	}

	found, err := d.products.Search(c.Request.Context(), userID, searchTerm, category)
	if err != nil {
		Error(c, http.StatusInternalServerError, "Failed to search products: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"products":    found,
		"count":       len(found),
		"search_term": searchTerm,
		"category":    orNull(category),
	})
}

func (d *deps) getProduct(c *gin.Context) {
	productID := c.Param("product_id")

	product, err := d.products.Get(c.Request.Context(), productID)
	if err != nil {
		Error(c, http.StatusInternalServerError, "Failed to fetch product: "+err.Error())
		return
	}
	if product == nil {
		Error(c, http.StatusNotFound, "Product not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"product": product,
		"message": "Product retrieved successfully",
	})
}

func (d *deps) updateProduct(c *gin.Context) {
	ctx := c.Request.Context()
	productID := c.Param("product_id")

	var req validation.ProductUpdateRequest
	if err := validation.BindAndValidate(c, &req, d.validate); err != nil {
		return
	}

	fields := req.Fields()
	if len(fields) == 0 {
		Error(c, http.StatusBadRequest, "No valid update data provided")
		return
	}

	if err := d.products.Update(ctx, productID, fields); err != nil {
		if err == products.ErrNotFound {
			Error(c, http.StatusNotFound, "Product not found")
			return
		}
		Error(c, http.StatusInternalServerError, "Failed to update product: "+err.Error())
		return
	}

	updated, err := d.products.Get(ctx, productID)
	if err != nil {
		Error(c, http.StatusInternalServerError, "Failed to update product: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"product_id": productID,
		"message":    "Product updated successfully",
		"data":       updated,
	})
}

func (d *deps) deleteProduct(c *gin.Context) {
	productID := c.Param("product_id")

	if err := d.products.Delete(c.Request.Context(), productID); err != nil {
		if err == products.ErrNotFound {
			Error(c, http.StatusNotFound, "Product not found")
			return
		}
		Error(c, http.StatusInternalServerError, "Failed to delete product: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Product %s deleted successfully", productID),
	})
}

func (d *deps) updateProductQuantity(c *gin.Context) {
	productID := c.Param("product_id")

	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil {
		Error(c, http.StatusBadRequest, "Quantity is required")
		return
	}
	if quantity < 0 {
		Error(c, http.StatusBadRequest, "Quantity cannot be negative")
		return
	}

	if err := d.products.UpdateQuantity(c.Request.Context(), productID, quantity); err != nil {
		if err == products.ErrNotFound {
			Error(c, http.StatusNotFound, "Product not found")
			return
		}
		Error(c, http.StatusInternalServerError, "Failed to update product quantity: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    fmt.Sprintf("Product quantity updated to %d", quantity),
		"product_id": productID,
		"quantity":   quantity,
	})
}
