package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/tair/pos-engine/internal/catalog/domain"
	"github.com/tair/pos-engine/internal/catalog/usecase/command"
	"github.com/tair/pos-engine/internal/catalog/usecase/query"
	"github.com/tair/pos-engine/pkg/httpx"
)

// CatalogHandler handles HTTP requests for categories, products and recipes
type CatalogHandler struct {
	// Command handlers
	createCategoryHandler *command.CreateCategoryHandler
	createHandler         *command.CreateProductHandler
	updateHandler         *command.UpdateProductHandler
	deactivateHandler     *command.DeactivateProductHandler
	setRecipeHandler      *command.SetRecipeHandler

	// Query handlers
	getHandler            *query.GetProductHandler
	listHandler           *query.ListProductsHandler
	listCategoriesHandler *query.ListCategoriesHandler
	recipeHandler         *query.GetRecipeLinesHandler
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(
	createCategoryHandler *command.CreateCategoryHandler,
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deactivateHandler *command.DeactivateProductHandler,
	setRecipeHandler *command.SetRecipeHandler,
	getHandler *query.GetProductHandler,
	listHandler *query.ListProductsHandler,
	listCategoriesHandler *query.ListCategoriesHandler,
	recipeHandler *query.GetRecipeLinesHandler,
) *CatalogHandler {
	return &CatalogHandler{
		createCategoryHandler: createCategoryHandler,
		createHandler:         createHandler,
		updateHandler:         updateHandler,
		deactivateHandler:     deactivateHandler,
		setRecipeHandler:      setRecipeHandler,
		getHandler:            getHandler,
		listHandler:           listHandler,
		listCategoriesHandler: listCategoriesHandler,
		recipeHandler:         recipeHandler,
	}
}

type createCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

type createProductRequest struct {
	Name        string           `json:"name" validate:"required,max=200"`
	CategoryID  *uint            `json:"category_id" validate:"omitempty,gt=0"`
	Price       *decimal.Decimal `json:"price"`
	Description string           `json:"description" validate:"max=1000"`
	ImageURL    string           `json:"image_url" validate:"omitempty,max=500"`
}

type updateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,max=200"`
	CategoryID  *uint            `json:"category_id" validate:"omitempty,gt=0"`
	Price       *decimal.Decimal `json:"price"`
	Description *string          `json:"description" validate:"omitempty,max=1000"`
	ImageURL    *string          `json:"image_url" validate:"omitempty,max=500"`
	Active      *bool            `json:"active"`
}

type recipeLineRequest struct {
	SupplyID uint            `json:"supply_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	Optional bool            `json:"optional"`
}

type setRecipeRequest struct {
	Lines []recipeLineRequest `json:"lines" validate:"dive"`
}

// CreateCategory godoc
// @Summary Create category
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body object{name=string,description=string} true "Category data"
// @Success 201 {object} httpx.Response
// @Failure 400 {object} httpx.Response
// @Router /api/categories [post]
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Fail(w, r, err)
		return
	}

	category, err := h.createCategoryHandler.Handle(r.Context(), command.CreateCategoryCommand{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}

	httpx.OK(w, http.StatusCreated, "Category created successfully", category)
}

// ListCategories godoc
// @Summary List categories
// @Tags Catalog
// @Produce json
// @Success 200 {object} httpx.Response
// @Router /api/categories [get]
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.listCategoriesHandler.Handle(r.Context())
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", categories)
}

// CreateProduct godoc
// @Summary Create product
// @Tags Catalog
// @Accept json
// @Produce json
// @Param request body object{name=string,category_id=int,price=number,description=string,image_url=string} true "Product data"
// @Success 201 {object} httpx.Response
// @Failure 400 {object} httpx.Response
// @Router /api/products [post]
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Fail(w, r, err)
		return
	}

	product, err := h.createHandler.Handle(r.Context(), command.CreateProductCommand{
		Name:        req.Name,
		CategoryID:  req.CategoryID,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}

	httpx.OK(w, http.StatusCreated, "Product created successfully", product)
}

// GetProduct godoc
// @Summary Get product
// @Tags Catalog
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} httpx.Response
// @Failure 404 {object} httpx.Response
// @Router /api/products/{id} [get]
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}

	product, err := h.getHandler.Handle(r.Context(), id)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", product)
}

// ListProducts godoc
// @Summary List products
// @Description Active products by default; search matches name and description
// @Tags Catalog
// @Produce json
// @Param category_id query int false "Category ID"
// @Param search query string false "Substring of name or description"
// @Param include_inactive query bool false "Include deactivated products"
// @Param limit query int false "Limit"
// @Param offset query int false "Offset"
// @Success 200 {object} httpx.Response
// @Router /api/products [get]
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	var q query.ListProductsQuery
	var err error
	if q.CategoryID, err = httpx.QueryUint(r, "category_id"); err != nil {
		httpx.Fail(w, r, err)
		return
	}
	if q.Limit, err = httpx.QueryInt(r, "limit", 50); err != nil {
		httpx.Fail(w, r, err)
		return
	}
	if q.Offset, err = httpx.QueryInt(r, "offset", 0); err != nil {
		httpx.Fail(w, r, err)
		return
	}
	q.Search = r.URL.Query().Get("search")
	q.IncludeInactive, _ = strconv.ParseBool(r.URL.Query().Get("include_inactive"))

	products, err := h.listHandler.Handle(r.Context(), q)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", products)
}

// UpdateProduct godoc
// @Summary Update product
// @Description Only the provided fields change
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body object{name=string,category_id=int,price=number,description=string,image_url=string,active=bool} true "Fields to change"
// @Success 200 {object} httpx.Response
// @Failure 400 {object} httpx.Response
// @Failure 404 {object} httpx.Response
// @Router /api/products/{id} [patch]
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	var req updateProductRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Fail(w, r, err)
		return
	}

	product, err := h.updateHandler.Handle(r.Context(), command.UpdateProductCommand{
		ID: id,
		Update: domain.ProductUpdate{
			Name:        req.Name,
			CategoryID:  req.CategoryID,
			Price:       req.Price,
			Description: req.Description,
			ImageURL:    req.ImageURL,
			Active:      req.Active,
		},
	})
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Product updated successfully", product)
}

// DeactivateProduct godoc
// @Summary Deactivate product
// @Description Soft delete; historical sales keep referencing the product
// @Tags Catalog
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} httpx.Response
// @Failure 404 {object} httpx.Response
// @Router /api/products/{id} [delete]
func (h *CatalogHandler) DeactivateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}

	if err := h.deactivateHandler.Handle(r.Context(), id); err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Product deactivated successfully", nil)
}

// GetRecipe godoc
// @Summary Get product recipe
// @Tags Catalog
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} httpx.Response
// @Failure 404 {object} httpx.Response
// @Router /api/products/{id}/recipe [get]
func (h *CatalogHandler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}

	lines, err := h.recipeHandler.Handle(r.Context(), id)
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "", lines)
}

// SetRecipe godoc
// @Summary Replace product recipe
// @Description Replaces every recipe line atomically; an empty list clears the recipe
// @Tags Catalog
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body object{lines=[]object{supply_id=int,quantity=number,optional=bool}} true "Recipe lines"
// @Success 200 {object} httpx.Response
// @Failure 400 {object} httpx.Response
// @Failure 404 {object} httpx.Response
// @Router /api/products/{id}/recipe [put]
func (h *CatalogHandler) SetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	var req setRecipeRequest
	if err := httpx.Bind(r, &req); err != nil {
		httpx.Fail(w, r, err)
		return
	}

	inputs := make([]command.RecipeLineInput, len(req.Lines))
	for i, line := range req.Lines {
		inputs[i] = command.RecipeLineInput{
			SupplyID: line.SupplyID,
			Quantity: line.Quantity,
			Optional: line.Optional,
		}
	}

	lines, err := h.setRecipeHandler.Handle(r.Context(), command.SetRecipeCommand{ProductID: id, Lines: inputs})
	if err != nil {
		httpx.Fail(w, r, err)
		return
	}
	httpx.OK(w, http.StatusOK, "Recipe updated successfully", lines)
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/categories", h.ListCategories).Methods("GET")
	router.HandleFunc("/api/categories", h.CreateCategory).Methods("POST")
	router.HandleFunc("/api/products", h.ListProducts).Methods("GET")
	router.HandleFunc("/api/products", h.CreateProduct).Methods("POST")
	router.HandleFunc("/api/products/{id:[0-9]+}", h.GetProduct).Methods("GET")
	router.HandleFunc("/api/products/{id:[0-9]+}", h.UpdateProduct).Methods("PATCH")
	router.HandleFunc("/api/products/{id:[0-9]+}", h.DeactivateProduct).Methods("DELETE")
	router.HandleFunc("/api/products/{id:[0-9]+}/recipe", h.GetRecipe).Methods("GET")
	router.HandleFunc("/api/products/{id:[0-9]+}/recipe", h.SetRecipe).Methods("PUT")
}
