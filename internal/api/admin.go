package api

import (
	"net/http"

	"novares-ledger-go/internal/models"

	"github.com/gin-gonic/gin"
)

func (s *Server) listMembers(c *gin.Context) {
	accounts, err := s.ledger.ListAccounts(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (s *Server) activateMember(c *gin.Context) {
	account, err := s.ledger.ActivateAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (s *Server) rejectMember(c *gin.Context) {
	if err := s.ledger.RejectRegistration(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) removeMember(c *gin.Context) {
	if err := s.ledger.RemoveAccount(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) overrideBalance(c *gin.Context) {
	var req models.BalanceOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	account, err := s.ledger.OverrideBalance(c.Request.Context(), c.Param("id"), *req.Balance)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (s *Server) issueBonus(c *gin.Context) {
	var req models.BonusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	account, err := s.ledger.IssueBonus(c.Request.Context(), c.Param("id"), req.Name, req.Amount)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (s *Server) searchTransfers(c *gin.Context) {
	txs, err := s.ledger.SearchTransactions(c.Request.Context(), c.Query("ref"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

func (s *Server) pendingTransfers(c *gin.Context) {
	txs, err := s.ledger.ListPendingTransactions(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, txs)
}

func (s *Server) approveTransfer(c *gin.Context) {
	tx, err := s.ledger.ApproveTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (s *Server) rejectTransfer(c *gin.Context) {
	tx, err := s.ledger.RejectTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}
