package wallet

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"clubledger/internal/auth"
	"clubledger/internal/logger"
	"clubledger/internal/settings"
	"clubledger/internal/user"

	"github.com/gin-gonic/gin"
)

// Notifier delivers best-effort member notifications. Failures are the
// notifier's problem; wallet mutations never roll back over them.
type Notifier interface {
	TransferReceived(ctx context.Context, toEmail, toName, fromName string, amountCents int64)
	WalletBlocked(ctx context.Context, email, name string)
}

type Handler struct {
	repo     Repository
	mutator  *Mutator
	history  *HistoryService
	watcher  *Watcher
	settings settings.Repository
	users    user.Repository
	notify   Notifier
}

func NewHandler(repo Repository, mutator *Mutator, history *HistoryService, watcher *Watcher, settingsRepo settings.Repository, users user.Repository, notify Notifier) *Handler {
	return &Handler{
		repo:     repo,
		mutator:  mutator,
		history:  history,
		watcher:  watcher,
		settings: settingsRepo,
		users:    users,
		notify:   notify,
	}
}

func clubAndUserParam(c *gin.Context) (string, int, bool) {
	clubID, ok := auth.GetClubID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "club not resolved"})
		return "", 0, false
	}

	userID, err := strconv.Atoi(c.Param("userID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return "", 0, false
	}
	return clubID, userID, true
}

func actorOf(c *gin.Context) string {
	if email, ok := auth.GetUserEmail(c); ok {
		return email
	}
	return "system"
}

func respondMutationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrWalletNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
	case errors.Is(err, ErrActivityNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
	case errors.Is(err, ErrWalletBlocked):
		c.JSON(http.StatusConflict, gin.H{"error": "Wallet is blocked"})
	case errors.Is(err, ErrInsufficientBalance):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Insufficient balance"})
	case errors.Is(err, ErrUnsupportedUndo):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "This transaction cannot be undone"})
	case errors.Is(err, ErrSelfTransfer):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot transfer to the same wallet"})
	case errors.Is(err, ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
	}
}

// ListWallets godoc
// @Summary      List wallets
// @Description  Returns all wallets of the club together with aggregate stats.
// @Tags         wallets
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} WalletListResponse
// @Failure      401 {object} gin.H
// @Failure      500 {object} gin.H
// @Router       /admin/wallets [get]
func (h *Handler) ListWallets(c *gin.Context) {
	clubID, ok := auth.GetClubID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "club not resolved"})
		return
	}

	ctx := c.Request.Context()
	wallets, err := h.repo.ListWallets(ctx, clubID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wallets"})
		return
	}

	stats, err := h.repo.Stats(ctx, clubID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load wallet stats"})
		return
	}

	c.JSON(http.StatusOK, WalletListResponse{Wallets: wallets, Stats: stats})
}

// StreamWallets godoc
// @Summary      Live wallet stream
// @Description  Server-sent events: an initial snapshot of all wallets and stats, then one snapshot per change.
// @Tags         wallets
// @Security     BearerAuth
// @Produce      text/event-stream
// @Success      200 {object} Snapshot
// @Failure      401 {object} gin.H
// @Failure      500 {object} gin.H
// @Router       /admin/wallets/stream [get]
func (h *Handler) StreamWallets(c *gin.Context) {
	clubID, ok := auth.GetClubID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "club not resolved"})
		return
	}

	snapshots, err := h.watcher.Watch(c.Request.Context(), clubID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe to wallet changes"})
		return
	}

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		snap, ok := <-snapshots
		if !ok {
			return false
		}
		c.SSEvent("wallets", snap)
		return true
	})
}

// GetWallet godoc
// @Summary      Get wallet
// @Tags         wallets
// @Security     BearerAuth
// @Produce      json
// @Param        userID  path      int  true  "User ID"
// @Success      200     {object}  Wallet
// @Failure      404     {object}  gin.H
// @Router       /admin/wallets/{userID} [get]
func (h *Handler) GetWallet(c *gin.Context) {
	clubID, userID, ok := clubAndUserParam(c)
	if !ok {
		return
	}

	w, err := h.repo.GetWallet(c.Request.Context(), clubID, userID)
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, w)
}

// ListCandidates godoc
// @Summary      Users without a wallet
// @Description  Returns club members that do not have a wallet yet.
// @Tags         wallets
// @Security     BearerAuth
// @Produce      json
// @Success      200 {array}  user.User
// @Failure      401 {object} gin.H
// @Failure      500 {object} gin.H
// @Router       /admin/wallets/candidates [get]
func (h *Handler) ListCandidates(c *gin.Context) {
	clubID, ok := auth.GetClubID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "club not resolved"})
		return
	}

	users, err := h.repo.UsersWithoutWallet(c.Request.Context(), clubID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// CreateWallet godoc
// @Summary      Create wallet
// @Description  Creates a wallet for the given user, optionally with an initial balance. Creating over an existing wallet overwrites its balance.
// @Tags         wallets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateWalletRequest  true  "Wallet data"
// @Success      201      {object}  Wallet
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/wallets [post]
func (h *Handler) CreateWallet(c *gin.Context) {
	clubID, ok := auth.GetClubID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "club not resolved"})
		return
	}

	var req CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w, err := h.repo.CreateWallet(c.Request.Context(), clubID, req.UserID, req.InitialBalanceCents, actorOf(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create wallet"})
		return
	}

	c.JSON(http.StatusCreated, w)
}

// DeleteWallet godoc
// @Summary      Delete wallet
// @Description  Deletes the wallet and all of its activity history.
// @Tags         wallets
// @Security     BearerAuth
// @Produce      json
// @Param        userID  path      int  true  "User ID"
// @Success      200     {object}  gin.H
// @Failure      404     {object}  gin.H
// @Router       /admin/wallets/{userID} [delete]
func (h *Handler) DeleteWallet(c *gin.Context) {
	clubID, userID, ok := clubAndUserParam(c)
	if !ok {
		return
	}

	if err := h.repo.DeleteWallet(c.Request.Context(), clubID, userID); err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "wallet deleted"})
}

// AddBalance godoc
// @Summary      Adjust balance
// @Description  Applies a signed amount to the wallet balance. Disabled club-wide by the add balance gate.
// @Tags         wallets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        userID   path      int                true  "User ID"
// @Param        request  body      AddBalanceRequest  true  "Signed amount in cents"
// @Success      200      {object}  Wallet
// @Failure      400      {object}  gin.H
// @Failure      403      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /admin/wallets/{userID}/balance [post]
func (h *Handler) AddBalance(c *gin.Context) {
	clubID, userID, ok := clubAndUserParam(c)
	if !ok {
		return
	}

	var req AddBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	gates, err := h.settings.Fetch(ctx, clubID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}
	if gates.AddBalanceDisabled {
		c.JSON(http.StatusForbidden, gin.H{"error": "Balance adjustments are disabled for this club"})
		return
	}

	w, err := h.mutator.AddBalance(ctx, clubID, userID, req.AmountCents, actorOf(c))
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, w)
}

// SetLimit godoc
// @Summary      Set credit limit
// @Description  Overwrites how far the balance may go negative. Zero disables credit.
// @Tags         wallets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        userID   path      int              true  "User ID"
// @Param        request  body      SetLimitRequest  true  "Limit in cents"
// @Success      200      {object}  Wallet
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /admin/wallets/{userID}/limit [put]
func (h *Handler) SetLimit(c *gin.Context) {
	clubID, userID, ok := clubAndUserParam(c)
	if !ok {
		return
	}

	var req SetLimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w, err := h.mutator.SetNegativeLimit(c.Request.Context(), clubID, userID, *req.LimitCents, actorOf(c))
	if err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, w)
}

// SetBlocked godoc
// @Summary      Block or unblock wallet
// @Tags         wallets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        userID   path      int           true  "User ID"
// @Param        request  body      BlockRequest  true  "Blocked flag"
// @Success      200      {object}  gin.H
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Router       /admin/wallets/{userID}/block [put]
func (h *Handler) SetBlocked(c *gin.Context) {
	clubID, userID, ok := clubAndUserParam(c)
	if !ok {
		return
	}

	var req BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if err := h.mutator.SetBlocked(ctx, clubID, userID, *req.Blocked, actorOf(c)); err != nil {
		respondMutationError(c, err)
		return
	}

	if *req.Blocked {
		h.notifyBlocked(ctx, clubID, userID)
	}

	message := "wallet unblocked"
	if *req.Blocked {
		message = "wallet blocked"
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// ResetWallet godoc
// @Summary      Reset wallet
// @Description  Zeroes the balance and the credit limit.
// @Tags         wallets
// @Security     BearerAuth
// @Produce      json
// @Param        userID  path      int  true  "User ID"
// @Success      200     {object}  gin.H
// @Failure      404     {object}  gin.H
// @Router       /admin/wallets/{userID}/reset [post]
func (h *Handler) ResetWallet(c *gin.Context) {
	clubID, userID, ok := clubAndUserParam(c)
	if !ok {
		return
	}

	if err := h.mutator.ResetWallet(c.Request.Context(), clubID, userID, actorOf(c)); err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "wallet reset"})
}

// TransactionHistory godoc
// @Summary      Transaction history
// @Description  Merged, date-descending view of activities, reservations and transfers for one wallet.
// @Tags         wallets
// @Security     BearerAuth
// @Produce      json
// @Param        userID  path      int  true  "User ID"
// @Success      200     {array}   LedgerEntry
// @Failure      401     {object}  gin.H
// @Failure      500     {object}  gin.H
// @Router       /admin/wallets/{userID}/history [get]
func (h *Handler) TransactionHistory(c *gin.Context) {
	clubID, userID, ok := clubAndUserParam(c)
	if !ok {
		return
	}

	entries, err := h.history.TransactionHistory(c.Request.Context(), clubID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load transaction history"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

// UndoTransaction godoc
// @Summary      Undo transaction
// @Description  Reverses a supported activity by applying a compensating mutation. The original activity stays in the ledger.
// @Tags         wallets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        userID   path      int          true  "User ID"
// @Param        request  body      UndoRequest  true  "Activity to undo"
// @Success      200      {object}  gin.H
// @Failure      400      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      422      {object}  gin.H
// @Router       /admin/wallets/{userID}/undo [post]
func (h *Handler) UndoTransaction(c *gin.Context) {
	clubID, userID, ok := clubAndUserParam(c)
	if !ok {
		return
	}

	var req UndoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.mutator.UndoActivity(c.Request.Context(), clubID, userID, req.ActivityID, actorOf(c)); err != nil {
		respondMutationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "transaction undone"})
}

// Transfer godoc
// @Summary      Transfer between wallets
// @Description  Moves an amount from one member's wallet to another's. Disabled club-wide by the transfer gate.
// @Tags         wallets
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      TransferRequest  true  "Transfer data"
// @Success      201      {object}  Transfer
// @Failure      400      {object}  gin.H
// @Failure      403      {object}  gin.H
// @Failure      404      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Failure      422      {object}  gin.H
// @Router       /admin/transfers [post]
func (h *Handler) Transfer(c *gin.Context) {
	clubID, ok := auth.GetClubID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "club not resolved"})
		return
	}

	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	gates, err := h.settings.Fetch(ctx, clubID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}
	if gates.TransferDisabled {
		c.JSON(http.StatusForbidden, gin.H{"error": "Transfers are disabled for this club"})
		return
	}

	transfer, err := h.mutator.AdminTransfer(ctx, clubID, req.FromUserID, req.ToUserID, req.AmountCents, actorOf(c))
	if err != nil {
		respondMutationError(c, err)
		return
	}

	h.notifyTransfer(ctx, clubID, transfer)
	c.JSON(http.StatusCreated, transfer)
}

func (h *Handler) notifyTransfer(ctx context.Context, clubID string, t *Transfer) {
	if h.notify == nil {
		return
	}

	to, err := h.users.FindByID(ctx, clubID, t.ToUserID)
	if err != nil {
		logger.Errorf("Failed to resolve transfer recipient %d: %v", t.ToUserID, err)
		return
	}
	from, err := h.users.FindByID(ctx, clubID, t.FromUserID)
	if err != nil {
		logger.Errorf("Failed to resolve transfer sender %d: %v", t.FromUserID, err)
		return
	}

	h.notify.TransferReceived(ctx, to.Email, to.Name, from.Name, t.AmountCents)
}

func (h *Handler) notifyBlocked(ctx context.Context, clubID string, userID int) {
	if h.notify == nil {
		return
	}

	u, err := h.users.FindByID(ctx, clubID, userID)
	if err != nil {
		logger.Errorf("Failed to resolve blocked wallet owner %d: %v", userID, err)
		return
	}

	h.notify.WalletBlocked(ctx, u.Email, u.Name)
}
