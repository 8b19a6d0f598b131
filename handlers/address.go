package handlers

import (
	"net/http"

	"scrapiz/models"
	"scrapiz/services/address"

	"github.com/gin-gonic/gin"
)

type AddressHandler struct {
	Service address.AddressService
}

func NewAddressHandler(service address.AddressService) *AddressHandler {
	return &AddressHandler{Service: service}
}

// ListAddressesHandler handles GET /api/addresses.
func (h *AddressHandler) ListAddressesHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	list, err := h.Service.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "Failed to load addresses", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateAddressHandler handles POST /api/addresses.
func (h *AddressHandler) CreateAddressHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var in models.AddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	a, err := h.Service.Create(c.Request.Context(), userID, in)
	if err != nil {
		respondError(c, "Failed to save address", err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// UpdateAddressHandler handles PUT /api/addresses/:id.
func (h *AddressHandler) UpdateAddressHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var in models.AddressInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	a, err := h.Service.Update(c.Request.Context(), userID, c.Param("id"), in)
	if err != nil {
		respondError(c, "Failed to update address", err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// DeleteAddressHandler handles DELETE /api/addresses/:id.
func (h *AddressHandler) DeleteAddressHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, "Failed to delete address", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// SetDefaultAddressHandler handles PUT /api/addresses/:id/default.
func (h *AddressHandler) SetDefaultAddressHandler(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.Service.SetDefault(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, "Failed to set default address", err)
		return
	}
	list, err := h.Service.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "Failed to load addresses", err)
		return
	}
	c.JSON(http.StatusOK, list)
}
