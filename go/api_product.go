package recordserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	producthttpmapper "github.com/Apurer/recordkeeper/internal/domains/products/adapters/http/mapper"
	productsports "github.com/Apurer/recordkeeper/internal/domains/products/ports"
)

// ProductAPI wires HTTP transport with the product catalog.
type ProductAPI struct {
	service productsports.Service
}

func NewProductAPI(service productsports.Service) ProductAPI {
	return ProductAPI{service: service}
}

// Get /v1/products
// List available products
func (api *ProductAPI) GetAllProducts(c *gin.Context) {
	products, err := api.service.GetAllProducts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomainList(products))
}

// Get /v1/products/:productId
func (api *ProductAPI) GetProductByID(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	product, err := api.service.GetProductByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if product == nil {
		respondNotFound(c, "product", id)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomain(product))
}

// Post /v1/products
func (api *ProductAPI) CreateProduct(c *gin.Context) {
	var payload producthttpmapper.CreateProduct
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := api.service.CreateProduct(c.Request.Context(), producthttpmapper.ToCreateInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, producthttpmapper.FromDomain(product))
}

// Patch /v1/products/:productId
func (api *ProductAPI) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	var payload producthttpmapper.PatchProduct
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := api.service.UpdateProduct(c.Request.Context(), id, producthttpmapper.ToMutationInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if product == nil {
		respondNotFound(c, "product", id)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomain(product))
}

// Delete /v1/products/:productId
// Withdraw a product from sale
func (api *ProductAPI) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	found, err := api.service.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !found {
		respondNotFound(c, "product", id)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /v1/products/:productId/discount
func (api *ProductAPI) ApplyDiscount(c *gin.Context) {
	id, ok := parseIDParam(c, "productId")
	if !ok {
		return
	}
	var payload producthttpmapper.Discount
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	product, err := api.service.ApplyDiscount(c.Request.Context(), id, *payload.Percentage)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if product == nil {
		respondNotFound(c, "product", id)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.FromDomain(product))
}

// Post /v1/products/discount
// Discount every available product
func (api *ProductAPI) ApplyDiscountToAll(c *gin.Context) {
	var payload producthttpmapper.Discount
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.ApplyDiscountToAll(c.Request.Context(), *payload.Percentage)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, producthttpmapper.DiscountResult{Updated: updated})
}
