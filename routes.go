package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Alucard672/shaxian/config"
	"github.com/Alucard672/shaxian/models"
	"github.com/Alucard672/shaxian/utils"
	"github.com/gin-gonic/gin"
)

// Document numbers carry a random suffix, so an insert can collide with an
// order created the same day. The model layer surfaces that as
// ConflictError and the edge retries with a fresh number.
const numberRetries = 3

func createWithNumberRetry[T any](create func() (*T, error)) (*T, error) {
	var lastErr error
	for attempt := 0; attempt < numberRetries; attempt++ {
		out, err := create()
		if err == nil {
			return out, nil
		}
		var conflict *utils.ConflictError
		if !errors.As(err, &conflict) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

func respondError(c *gin.Context, err error) {
	var (
		validationErr *utils.ValidationError
		notFoundErr   *utils.NotFoundError
		conflictErr   *utils.ConflictError
		stateErr      *utils.StateError
	)
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger := config.GetLogger()
		correlationId, _ := utils.GetCorrelationIdFromContext(c.Request.Context())
		config.LogError(logger, "routes.go", "respondError", c.FullPath(), gin.H{"correlation_id": correlationId}, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func idParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func intQuery(c *gin.Context, name string) int {
	v, _ := strconv.Atoi(c.Query(name))
	return v
}

func dateQuery(c *gin.Context, name string) *time.Time {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}

type statusBody struct {
	Status string `json:"status" binding:"required"`
}

func registerRoutes(r *gin.Engine) {
	api := r.Group("/api")

	products := api.Group("/products")
	products.GET("", func(c *gin.Context) {
		var kind *models.ProductKind
		if raw := c.Query("kind"); raw != "" {
			k := models.ProductKind(raw)
			kind = &k
		}
		out, err := models.GetProducts(c.Request.Context(), kind, c.Query("keyword"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	products.GET("/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		out, err := models.GetProduct(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	products.POST("", func(c *gin.Context) {
		var input models.NewProduct
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := models.CreateProduct(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	})
	products.PUT("/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewProduct
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := models.UpdateProduct(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	products.DELETE("/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		out, err := models.DeleteProduct(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	colors := api.Group("/colors")
	colors.GET("", func(c *gin.Context) {
		var status *models.ColorStatus
		if raw := c.Query("status"); raw != "" {
			s := models.ColorStatus(raw)
			status = &s
		}
		out, err := models.GetColors(c.Request.Context(), intQuery(c, "productId"), status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	colors.GET("/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		out, err := models.GetColor(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	colors.POST("", func(c *gin.Context) {
		var input models.NewColor
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := models.CreateColor(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	})
	colors.PUT("/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewColor
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := models.UpdateColor(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	colors.DELETE("/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		out, err := models.DeleteColor(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	batches := api.Group("/batches")
	batches.GET("", func(c *gin.Context) {
		out, err := models.GetBatches(c.Request.Context(), intQuery(c, "colorId"), c.Query("keyword"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	batches.GET("/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		out, err := models.GetBatch(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	batches.POST("", func(c *gin.Context) {
		var input models.NewBatch
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := models.CreateBatch(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	})
	batches.PUT("/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewBatch
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := models.UpdateBatch(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	batches.DELETE("/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		out, err := models.DeleteBatch(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	purchases := api.Group("/purchases")
	purchases.GET("", func(c *gin.Context) {
		var status *models.PurchaseOrderStatus
		if raw := c.Query("status"); raw != "" {
			s := models.PurchaseOrderStatus(raw)
			status = &s
		}
		out, err := models.GetPurchaseOrders(c.Request.Context(), status, intQuery(c, "supplierId"), dateQuery(c, "startDate"), dateQuery(c, "endDate"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	purchases.GET("/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		out, err := models.GetPurchaseOrder(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	purchases.POST("", func(c *gin.Context) {
		var input models.NewPurchaseOrder
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := createWithNumberRetry(func() (*models.PurchaseOrder, error) {
			return models.CreatePurchaseOrder(c.Request.Context(), &input)
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	})
	purchases.PUT("/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewPurchaseOrder
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := models.UpdatePurchaseOrder(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	purchases.PUT("/:id/status", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var body statusBody
		if err := c.ShouldBindJSON(&body); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := models.UpdatePurchaseOrderStatus(c.Request.Context(), id, models.PurchaseOrderStatus(body.Status))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	purchases.DELETE("/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		out, err := models.DeletePurchaseOrder(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	sales := api.Group("/sales")
	sales.GET("", func(c *gin.Context) {
		var status *models.SalesOrderStatus
		if raw := c.Query("status"); raw != "" {
			s := models.SalesOrderStatus(raw)
			status = &s
		}
		out, err := models.GetSalesOrders(c.Request.Context(), status, intQuery(c, "customerId"), dateQuery(c, "startDate"), dateQuery(c, "endDate"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	sales.GET("/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		out, err := models.GetSalesOrder(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	sales.POST("", func(c *gin.Context) {
		var input models.NewSalesOrder
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := createWithNumberRetry(func() (*models.SalesOrder, error) {
			return models.CreateSalesOrder(c.Request.Context(), &input)
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	})
	sales.PUT("/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewSalesOrder
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := models.UpdateSalesOrder(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	sales.PUT("/:id/status", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var body statusBody
		if err := c.ShouldBindJSON(&body); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := models.UpdateSalesOrderStatus(c.Request.Context(), id, models.SalesOrderStatus(body.Status))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	sales.DELETE("/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		out, err := models.DeleteSalesOrder(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	dyeing := api.Group("/dyeing")
	dyeing.GET("", func(c *gin.Context) {
		var status *models.DyeingOrderStatus
		if raw := c.Query("status"); raw != "" {
			s := models.DyeingOrderStatus(raw)
			status = &s
		}
		out, err := models.GetDyeingOrders(c.Request.Context(), status, intQuery(c, "factoryId"), dateQuery(c, "startDate"), dateQuery(c, "endDate"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	dyeing.GET("/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		out, err := models.GetDyeingOrder(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	dyeing.POST("", func(c *gin.Context) {
		var input models.NewDyeingOrder
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := createWithNumberRetry(func() (*models.DyeingOrder, error) {
			return models.CreateDyeingOrder(c.Request.Context(), &input)
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	})
	dyeing.PUT("/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewDyeingOrder
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := models.UpdateDyeingOrder(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	dyeing.PUT("/:id/status", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var body statusBody
		if err := c.ShouldBindJSON(&body); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := models.UpdateDyeingOrderStatus(c.Request.Context(), id, models.DyeingOrderStatus(body.Status))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	dyeing.DELETE("/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		out, err := models.DeleteDyeingOrder(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	inventory := api.Group("/inventory")
	inventory.GET("/adjustments", func(c *gin.Context) {
		var status *models.AdjustmentOrderStatus
		if raw := c.Query("status"); raw != "" {
			s := models.AdjustmentOrderStatus(raw)
			status = &s
		}
		var adjustmentType *models.AdjustmentType
		if raw := c.Query("type"); raw != "" {
			t := models.AdjustmentType(raw)
			adjustmentType = &t
		}
		out, err := models.GetAdjustmentOrders(c.Request.Context(), status, adjustmentType, dateQuery(c, "startDate"), dateQuery(c, "endDate"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	inventory.GET("/adjustments/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		out, err := models.GetAdjustmentOrder(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	inventory.POST("/adjustments", func(c *gin.Context) {
		var input models.NewAdjustmentOrder
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := createWithNumberRetry(func() (*models.AdjustmentOrder, error) {
			return models.CreateAdjustmentOrder(c.Request.Context(), &input)
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	})
	inventory.PUT("/adjustments/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewAdjustmentOrder
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := models.UpdateAdjustmentOrder(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	inventory.PUT("/adjustments/:id/status", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var body statusBody
		if err := c.ShouldBindJSON(&body); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := models.UpdateAdjustmentOrderStatus(c.Request.Context(), id, models.AdjustmentOrderStatus(body.Status))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	inventory.DELETE("/adjustments/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		out, err := models.DeleteAdjustmentOrder(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	inventory.GET("/checks", func(c *gin.Context) {
		var status *models.InventoryCheckStatus
		if raw := c.Query("status"); raw != "" {
			s := models.InventoryCheckStatus(raw)
			status = &s
		}
		out, err := models.GetInventoryChecks(c.Request.Context(), status, c.Query("keyword"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	inventory.GET("/checks/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		out, err := models.GetInventoryCheck(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	inventory.POST("/checks", func(c *gin.Context) {
		var input models.NewInventoryCheckOrder
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := createWithNumberRetry(func() (*models.InventoryCheckOrder, error) {
			return models.CreateInventoryCheck(c.Request.Context(), &input)
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	})
	inventory.PUT("/checks/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewInventoryCheckOrder
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := models.UpdateInventoryCheck(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	inventory.PUT("/checks/:id/status", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var body statusBody
		if err := c.ShouldBindJSON(&body); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := models.UpdateInventoryCheckStatus(c.Request.Context(), id, models.InventoryCheckStatus(body.Status))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	inventory.DELETE("/checks/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		out, err := models.DeleteInventoryCheck(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})

	accounts := api.Group("/accounts")
	accounts.GET("/receivables", func(c *gin.Context) {
		var status *models.AccountStatus
		if raw := c.Query("status"); raw != "" {
			s := models.AccountStatus(raw)
			status = &s
		}
		out, err := models.GetAccountReceivables(c.Request.Context(), status, intQuery(c, "customerId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	accounts.POST("/receivables", func(c *gin.Context) {
		var input models.NewAccountReceivable
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := models.CreateAccountReceivable(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	})
	accounts.GET("/receivables/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		out, err := models.GetAccountReceivable(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	accounts.GET("/receivables/:id/receipts", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		out, err := models.GetReceiptRecords(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	accounts.POST("/receivables/:id/receipts", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewReceiptRecord
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := models.CreateReceiptRecord(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	})

	accounts.GET("/payables", func(c *gin.Context) {
		var status *models.AccountStatus
		if raw := c.Query("status"); raw != "" {
			s := models.AccountStatus(raw)
			status = &s
		}
		out, err := models.GetAccountPayables(c.Request.Context(), status, intQuery(c, "supplierId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	accounts.POST("/payables", func(c *gin.Context) {
		var input models.NewAccountPayable
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := models.CreateAccountPayable(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	})
	accounts.GET("/payables/:id", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		out, err := models.GetAccountPayable(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	accounts.GET("/payables/:id/payments", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		out, err := models.GetPaymentRecords(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
	accounts.POST("/payables/:id/payments", func(c *gin.Context) {
		id, ok := idParam(c)
		if !ok {
			return
		}
		var input models.NewPaymentRecord
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, utils.NewValidationError(utils.BindingErrorMessage(err)))
			return
		}
		out, err := models.CreatePaymentRecord(c.Request.Context(), id, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	})
}
