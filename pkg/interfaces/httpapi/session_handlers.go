package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/vendorsupply/pkg/application/services/session"
)

func (s *Server) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "body", "invalid request body")
		return
	}

	callerID := strings.TrimSpace(req.CallerID)
	if callerID == "" {
		s.badRequest(c, "callerId", "caller id cannot be empty")
		return
	}
	role, err := session.ParseRole(req.Role)
	if err != nil {
		s.badRequest(c, "role", "%v", err)
		return
	}

	caller := session.StaticContext{ID: callerID, CallerAs: role}
	if role == session.RoleSupplier {
		// Suppliers can only open sessions over an inventory that exists
		if _, err := s.registry.Supplier(caller); err != nil {
			s.abortWithError(c, err)
			return
		}
	}

	token, expiresAt, err := s.tokens.Issue(caller)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, createSessionResponse{
		Token:     token,
		CallerID:  callerID,
		Role:      string(role),
		ExpiresAt: expiresAt,
	})
}

func (s *Server) listDishes(c *gin.Context) {
	catalog := s.registry.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"dishes":       catalog.Dishes(),
		"default_dish": catalog.DefaultDish(),
	})
}
