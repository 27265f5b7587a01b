package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vsinha/vendorsupply/pkg/application/services/scaling"
	"github.com/vsinha/vendorsupply/pkg/application/services/session"
)

func (s *Server) vendorSession(c *gin.Context) (*session.VendorSession, bool) {
	caller, _ := callerFrom(c)
	vendor, err := s.registry.Vendor(caller)
	if err != nil {
		s.abortWithError(c, err)
		return nil, false
	}
	return vendor, true
}

// bindDish reads a dish request and parses its servings text
func (s *Server) bindDish(c *gin.Context) (string, int, bool) {
	var req dishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "body", "invalid request body")
		return "", 0, false
	}
	servings, err := scaling.ParseServings(string(req.Servings))
	if err != nil {
		s.abortWithError(c, err)
		return "", 0, false
	}
	return req.DishName, servings, true
}

func (s *Server) scaleIngredients(c *gin.Context) {
	vendor, ok := s.vendorSession(c)
	if !ok {
		return
	}
	dish, servings, ok := s.bindDish(c)
	if !ok {
		return
	}

	scaled, err := vendor.Ingredients(dish, servings)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, scaled)
}

func (s *Server) findCandidates(c *gin.Context) {
	vendor, ok := s.vendorSession(c)
	if !ok {
		return
	}
	dish, servings, ok := s.bindDish(c)
	if !ok {
		return
	}

	candidates, err := vendor.Candidates(dish, servings)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}

func (s *Server) planProcurement(c *gin.Context) {
	vendor, ok := s.vendorSession(c)
	if !ok {
		return
	}
	dish, servings, ok := s.bindDish(c)
	if !ok {
		return
	}

	plan, err := vendor.Plan(dish, servings)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (s *Server) viewCart(c *gin.Context) {
	vendor, ok := s.vendorSession(c)
	if !ok {
		return
	}
	view := vendor.Cart()
	c.JSON(http.StatusOK, gin.H{
		"lines":      view.Lines,
		"total":      view.Total,
		"deliveries": vendor.Deliveries(),
	})
}

func (s *Server) addToCart(c *gin.Context) {
	vendor, ok := s.vendorSession(c)
	if !ok {
		return
	}
	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "body", "invalid request body")
		return
	}

	line, err := vendor.AddToCart(req.SupplierID, req.ItemName)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"line": line, "total": vendor.Cart().Total})
}

func (s *Server) removeFromCart(c *gin.Context) {
	vendor, ok := s.vendorSession(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		s.badRequest(c, "index", "index must be a whole number, got %q", c.Param("index"))
		return
	}

	if err := vendor.RemoveFromCart(index); err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, vendor.Cart())
}

func (s *Server) clearCart(c *gin.Context) {
	vendor, ok := s.vendorSession(c)
	if !ok {
		return
	}
	vendor.ClearCart()
	c.JSON(http.StatusOK, vendor.Cart())
}

func (s *Server) reconcileCart(c *gin.Context) {
	vendor, ok := s.vendorSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"drifts": vendor.Reconcile()})
}

func (s *Server) placeOrder(c *gin.Context) {
	vendor, ok := s.vendorSession(c)
	if !ok {
		return
	}
	order, err := vendor.PlaceOrder()
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (s *Server) listAlerts(c *gin.Context) {
	vendor, ok := s.vendorSession(c)
	if !ok {
		return
	}
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.badRequest(c, "limit", "limit must be a non-negative whole number, got %q", raw)
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, gin.H{"alerts": vendor.Alerts(limit)})
}
