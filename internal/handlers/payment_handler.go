package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"

	"github.com/Asna-Zulfiqar/spotify-clone/internal/models"
	"github.com/Asna-Zulfiqar/spotify-clone/internal/repository"
	"github.com/Asna-Zulfiqar/spotify-clone/internal/services"
)

type PaymentHandler struct {
	billingService services.BillingService
	userRepo       repository.UserRepository
}

func NewPaymentHandler(billingService services.BillingService, userRepo repository.UserRepository) *PaymentHandler {
	return &PaymentHandler{
		billingService: billingService,
		userRepo:       userRepo,
	}
}

func (h *PaymentHandler) currentUser(c *gin.Context) (*models.User, bool) {
	userID := c.GetString("user_id")
	user, err := h.userRepo.FindUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "User not found",
		})
		return nil, false
	}
	return user, true
}

// billingError maps Stripe SDK failures to a 400 with the provider message;
// anything else is a plain 500.
func billingError(c *gin.Context, err error) {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": stripeErr.Msg,
		})
		return
	}
	if errors.Is(err, services.ErrNoCustomer) || errors.Is(err, services.ErrUnknownPlan) {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"status":  "error",
		"message": "Payment operation failed",
	})
}

func (h *PaymentHandler) CreateBillingAccount(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	customerID, err := h.billingService.EnsureCustomer(user)
	if err != nil {
		billingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Billing account ready",
		"data": gin.H{
			"customer_id": customerID,
		},
	})
}

func (h *PaymentHandler) AddPaymentMethod(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req struct {
		PaymentMethodID string `json:"payment_method_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Payment method ID is required",
		})
		return
	}

	if err := h.billingService.AttachPaymentMethod(user, req.PaymentMethodID); err != nil {
		billingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Payment method added successfully",
	})
}

func (h *PaymentHandler) ListPaymentMethods(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	methods, err := h.billingService.ListPaymentMethods(user)
	if err != nil {
		billingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Payment methods fetched successfully",
		"data":    methods,
	})
}

func (h *PaymentHandler) Subscribe(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid request body",
			"error":   err.Error(),
		})
		return
	}

	info, err := h.billingService.Subscribe(user, req.Plan, req.PaymentMethodID)
	if err != nil {
		billingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":  "success",
		"message": "Subscription created successfully",
		"data":    info,
	})
}

func (h *PaymentHandler) Unsubscribe(c *gin.Context) {
	subscriptionID := c.Param("id")
	if subscriptionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Subscription ID is required",
		})
		return
	}

	if err := h.billingService.Unsubscribe(subscriptionID); err != nil {
		billingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Subscription will be canceled at the end of the billing period",
	})
}

func (h *PaymentHandler) ListSubscriptions(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	subs, err := h.billingService.ListSubscriptions(user)
	if err != nil {
		billingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Subscriptions fetched successfully",
		"data": gin.H{
			"subscriptions": subs,
		},
	})
}
