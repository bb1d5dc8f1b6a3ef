package wallet

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/BenedictUkwenya/lifekitbackend/internal/api"
	"github.com/BenedictUkwenya/lifekitbackend/internal/auth"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

type TopUpRequest struct {
	Reference string `json:"reference" binding:"required"`
}

type AdminWithdrawRequest struct {
	AmountCents int64  `json:"amount_cents" validate:"required,gt=0"`
	Reason      string `json:"reason" validate:"required"`
}

// GetBalance godoc
// @Summary      Get wallet
// @Description  Returns the caller's wallet, creating it on first use.
// @Tags         wallet
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Wallet
// @Failure      500  {object}  gin.H
// @Router       /wallet [get]
func (h *Handler) GetBalance(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	w, err := h.service.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wallet"})
		return
	}

	c.JSON(http.StatusOK, w)
}

// TopUp godoc
// @Summary      Top up wallet
// @Description  Credits the wallet from a settled external payment, identified by its reference.
// @Tags         wallet
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Success      200  {object}  gin.H
// @Failure      400  {object}  gin.H
// @Failure      409  {object}  gin.H
// @Router       /wallet/topup [post]
func (h *Handler) TopUp(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reference is required"})
		return
	}

	w, err := h.service.TopUp(c.Request.Context(), userID, req.Reference)
	if err != nil {
		switch {
		case errors.Is(err, ErrPaymentNotSettled):
			c.JSON(http.StatusBadRequest, gin.H{"error": "payment has not succeeded"})
		case errors.Is(err, ErrDuplicateReference):
			c.JSON(http.StatusConflict, gin.H{"error": "payment already processed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to top up wallet"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "wallet recharged",
		"wallet":  w,
	})
}

// ListTransactions godoc
// @Summary      List wallet transactions
// @Tags         wallet
// @Security     BearerAuth
// @Produce      json
// @Param        limit   query  int  false  "Page size"
// @Param        offset  query  int  false  "Page offset"
// @Success      200  {array}   Transaction
// @Failure      500  {object}  gin.H
// @Router       /wallet/transactions [get]
func (h *Handler) ListTransactions(c *gin.Context) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	txs, err := h.service.Transactions(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load transactions"})
		return
	}

	c.JSON(http.StatusOK, txs)
}

// AdminWithdraw godoc
// @Summary      Withdraw from a user's wallet
// @Description  Admin-only ledger debit, recorded as admin_withdrawal.
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        ownerID  path  int  true  "Wallet owner ID"
// @Success      200  {object}  Wallet
// @Failure      400  {object}  gin.H
// @Failure      402  {object}  gin.H
// @Failure      404  {object}  gin.H
// @Router       /admin/wallets/{ownerID}/withdraw [post]
func (h *Handler) AdminWithdraw(c *gin.Context) {
	ownerID, err := strconv.Atoi(c.Param("ownerID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid owner id"})
		return
	}

	var req AdminWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if errs := api.ValidateStruct(req); len(errs) > 0 {
		api.RespondWithValidationErrors(c, errs)
		return
	}

	w, err := h.service.Debit(c.Request.Context(), ownerID, req.AmountCents, KindAdminWithdrawal, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, ErrWalletNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "wallet not found"})
		case errors.Is(err, ErrInsufficientBalance):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "insufficient balance"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to withdraw"})
		}
		return
	}

	c.JSON(http.StatusOK, w)
}
