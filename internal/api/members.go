package api

import (
	"net/http"

	"novares-ledger-go/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// POST /v1/members
func (s *Server) register(c *gin.Context) {
	if s.admission != nil && !s.admission(s.now()) {
		c.AbortWithStatusJSON(http.StatusForbidden, models.ErrorResponse{
			Error:   "admission_closed",
			Message: errAdmissionClosed.Error(),
		})
		return
	}

	var profile models.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		badRequest(c, err)
		return
	}
	account, err := s.ledger.RegisterAccount(c.Request.Context(), profile)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

// GET /v1/me
func (s *Server) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentAccount(c))
}

// GET /v1/recipients/:code
func (s *Server) lookupRecipient(c *gin.Context) {
	me := currentAccount(c)
	recipient, err := s.ledger.LookupRecipient(me.Id, c.Param("code"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, models.RecipientView{Id: recipient.Id, Name: recipient.DisplayName()})
}

// POST /v1/transfers
func (s *Server) requestTransfer(c *gin.Context) {
	var req models.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	me := currentAccount(c)
	tx, err := s.ledger.RequestTransfer(c.Request.Context(), me.Id, req.ReceiverId, req.Amount, req.Reason)
	if err != nil {
		fail(c, err)
		return
	}

	result := models.TransferResult{Transaction: tx}
	if s.composer != nil {
		composition, err := s.ledger.TransferComposition(tx.Id)
		if err != nil {
			// the request itself is committed; only the link is missing
			zap.L().Warn("Unable to compose support message", zap.String("transaction_id", tx.Id), zap.Error(err))
		} else {
			result.ComposeURL = s.composer.ComposeURL(composition)
		}
	}
	c.JSON(http.StatusCreated, result)
}

// GET /v1/transfers?ref=
func (s *Server) listTransfers(c *gin.Context) {
	me := currentAccount(c)
	txs, err := s.ledger.ListTransactionsFor(me.Id, c.Query("ref"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}
