package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/vsinha/vendorsupply/pkg/application/services/session"
	"github.com/vsinha/vendorsupply/pkg/domain/entities"
)

func (s *Server) supplierSession(c *gin.Context) (*session.SupplierSession, bool) {
	caller, _ := callerFrom(c)
	supplier, err := s.registry.Supplier(caller)
	if err != nil {
		s.abortWithError(c, err)
		return nil, false
	}
	return supplier, true
}

func parsePrice(text textField) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(strings.TrimSpace(string(text)))
	if err != nil {
		return decimal.Zero, entities.NewValidationError("unitPrice", "price must be a number, got %q", string(text))
	}
	return price, nil
}

func parseStock(text textField) (int64, error) {
	stock, err := strconv.ParseInt(strings.TrimSpace(string(text)), 10, 64)
	if err != nil {
		return 0, entities.NewValidationError("stockQuantity", "stock must be a whole number, got %q", string(text))
	}
	return stock, nil
}

func (s *Server) listListings(c *gin.Context) {
	supplier, ok := s.supplierSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"supplier": supplier.Profile(),
		"listings": supplier.Listings(),
	})
}

func (s *Server) addListing(c *gin.Context) {
	supplier, ok := s.supplierSession(c)
	if !ok {
		return
	}
	var req addListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "body", "invalid request body")
		return
	}
	price, err := parsePrice(req.UnitPrice)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	stock, err := parseStock(req.StockQuantity)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	listing, err := supplier.AddListing(req.ItemName, price, req.Unit, stock)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, listing)
}

func (s *Server) updatePrice(c *gin.Context) {
	supplier, ok := s.supplierSession(c)
	if !ok {
		return
	}
	var req updatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "body", "invalid request body")
		return
	}
	price, err := parsePrice(req.UnitPrice)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	listing, err := supplier.UpdatePrice(c.Param("item"), price)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (s *Server) updateStock(c *gin.Context) {
	supplier, ok := s.supplierSession(c)
	if !ok {
		return
	}
	var req updateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "body", "invalid request body")
		return
	}
	stock, err := parseStock(req.StockQuantity)
	if err != nil {
		s.abortWithError(c, err)
		return
	}

	listing, err := supplier.UpdateStock(c.Param("item"), stock)
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (s *Server) inventoryStats(c *gin.Context) {
	supplier, ok := s.supplierSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, supplier.Stats())
}

func (s *Server) sendPriceAlert(c *gin.Context) {
	supplier, ok := s.supplierSession(c)
	if !ok {
		return
	}
	event, err := supplier.SendPriceAlert()
	if err != nil {
		s.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"sent": true, "type": event.Type(), "at": event.Timestamp()})
}
