package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Dominion116/StyleHub/internal/api/dto"
	"github.com/Dominion116/StyleHub/internal/constants"
	"github.com/Dominion116/StyleHub/internal/domain/model"
	"github.com/Dominion116/StyleHub/internal/service"
)

type MarketHandler struct {
	marketService service.IMarketService
}

func NewMarketHandler(marketService service.IMarketService) *MarketHandler {
	if marketService == nil {
		panic("marketService cannot be nil")
	}
	return &MarketHandler{
		marketService: marketService,
	}
}

// 引擎錯誤對應HTTP狀態碼
func statusFromError(err error) int {
	switch {
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, model.ErrInvalidAddress),
		errors.Is(err, model.ErrInvalidAmount),
		errors.Is(err, model.ErrInvalidPayment):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrInvalidProduct):
		return http.StatusNotFound
	case errors.Is(err, model.ErrInsufficientStock),
		errors.Is(err, model.ErrOrderNotCancellable),
		errors.Is(err, model.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, model.ErrTransferFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	errorJSON(w, statusFromError(err), err.Error())
}

func callerFromContext(r *http.Request) string {
	if v := r.Context().Value(constants.CallerKey); v != nil {
		return v.(string)
	}
	return ""
}

func attachedValueFromContext(r *http.Request) uint64 {
	if v := r.Context().Value(constants.AttachedValueKey); v != nil {
		return v.(uint64)
	}
	return 0
}

func parseUintParam(r *http.Request, name string) (uint64, error) {
	return strconv.ParseUint(chi.URLParam(r, name), 10, 64)
}

func (h *MarketHandler) MarketInfo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	owner, err := h.marketService.GetOwner(ctx)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	fee, err := h.marketService.GetPlatformFee(ctx)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	balance, err := h.marketService.GetContractBalance(ctx)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	successJSON(w, dto.MarketInfoDTO{
		Name:       constants.MarketplaceName,
		Version:    constants.Version,
		Owner:      owner,
		FeePercent: fee,
		Balance:    balance,
	})
}

func (h *MarketHandler) ListProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.ListProductDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()

	productID, err := h.marketService.ListProduct(ctx, callerFromContext(r),
		req.Name, req.Description, model.Category(req.Category),
		req.UnitPrice, req.StockQuantity, req.ImageURI)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	createdJSON(w, dto.ListProductResponse{ProductID: productID})
}

func (h *MarketHandler) ModifyProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := parseUintParam(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req dto.ModifyProductDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()

	if err := h.marketService.ModifyProduct(ctx, callerFromContext(r),
		productID, req.NewPrice, req.NewStock, req.IsActive); err != nil {
		writeServiceError(w, err)
		return
	}

	successJSON(w, nil)
}

func (h *MarketHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := parseUintParam(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid product id")
		return
	}

	product, err := h.marketService.GetProduct(r.Context(), productID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	successJSON(w, product)
}

func (h *MarketHandler) GetAllProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.marketService.GetAllProducts(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	successJSON(w, products)
}

func (h *MarketHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()

	orderID, err := h.marketService.CreateOrder(ctx, callerFromContext(r),
		req.ProductID, req.Quantity, req.DeliveryAddress, attachedValueFromContext(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	createdJSON(w, dto.CreateOrderResponse{OrderID: orderID})
}

func (h *MarketHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseUintParam(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req dto.UpdateOrderStatusDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()

	if err := h.marketService.UpdateOrderStatus(ctx, callerFromContext(r),
		orderID, model.OrderStatus(req.NewStatus), req.TrackingNumber); err != nil {
		writeServiceError(w, err)
		return
	}

	successJSON(w, nil)
}

func (h *MarketHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseUintParam(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid order id")
		return
	}

	ctx := r.Context()

	if err := h.marketService.CancelOrder(ctx, callerFromContext(r), orderID); err != nil {
		writeServiceError(w, err)
		return
	}

	successJSON(w, nil)
}

func (h *MarketHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := parseUintParam(r, "id")
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.marketService.GetOrder(r.Context(), orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	successJSON(w, order)
}

func (h *MarketHandler) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.marketService.GetAllOrders(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	successJSON(w, orders)
}

func (h *MarketHandler) GetCustomerOrders(w http.ResponseWriter, r *http.Request) {
	customer := chi.URLParam(r, "account")
	if customer == "" {
		errorJSON(w, http.StatusBadRequest, "invalid account")
		return
	}

	orderIDs, err := h.marketService.GetCustomerOrders(r.Context(), customer)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	successJSON(w, dto.CustomerOrdersDTO{
		Customer: customer,
		OrderIDs: orderIDs,
	})
}

func (h *MarketHandler) AuthorizeSeller(w http.ResponseWriter, r *http.Request) {
	var req dto.AuthorizeSellerDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()

	if err := h.marketService.AuthorizeSeller(ctx, callerFromContext(r), req.Seller); err != nil {
		writeServiceError(w, err)
		return
	}

	successJSON(w, nil)
}

func (h *MarketHandler) RevokeSeller(w http.ResponseWriter, r *http.Request) {
	seller := chi.URLParam(r, "account")

	ctx := r.Context()

	if err := h.marketService.RevokeSeller(ctx, callerFromContext(r), seller); err != nil {
		writeServiceError(w, err)
		return
	}

	successJSON(w, nil)
}

func (h *MarketHandler) IsAuthorizedSeller(w http.ResponseWriter, r *http.Request) {
	account := chi.URLParam(r, "account")
	if account == "" {
		errorJSON(w, http.StatusBadRequest, "invalid account")
		return
	}

	authorized, err := h.marketService.IsAuthorizedSeller(r.Context(), account)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	successJSON(w, dto.SellerStatusDTO{
		Account:    account,
		Authorized: authorized,
	})
}

func (h *MarketHandler) SetPlatformFee(w http.ResponseWriter, r *http.Request) {
	var req dto.SetPlatformFeeDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorJSON(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx := r.Context()

	if err := h.marketService.SetPlatformFee(ctx, callerFromContext(r), req.Percent); err != nil {
		writeServiceError(w, err)
		return
	}

	successJSON(w, nil)
}

func (h *MarketHandler) WithdrawFunds(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	amount, err := h.marketService.WithdrawFunds(ctx, callerFromContext(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	successJSON(w, dto.WithdrawResponse{Amount: amount})
}
