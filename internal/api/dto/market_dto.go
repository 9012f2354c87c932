package dto

// MarketInfoDTO 市集基本資訊
type MarketInfoDTO struct {
	Name       string `json:"name"`
	Version    string `json:"version"`
	Owner      string `json:"owner"`
	FeePercent uint64 `json:"fee_percent"`
	Balance    uint64 `json:"balance"`
}

type ListProductDTO struct {
	Name          string `json:"name"`
	Description   string `json:"description"`
	Category      uint8  `json:"category"`
	UnitPrice     uint64 `json:"unit_price"`
	StockQuantity uint64 `json:"stock_quantity"`
	ImageURI      string `json:"image_uri"`
}

type ListProductResponse struct {
	ProductID uint64 `json:"product_id"`
}

type ModifyProductDTO struct {
	NewPrice uint64 `json:"new_price"`
	NewStock uint64 `json:"new_stock"`
	IsActive bool   `json:"is_active"`
}

type CreateOrderDTO struct {
	ProductID       uint64 `json:"product_id"`
	Quantity        uint64 `json:"quantity"`
	DeliveryAddress string `json:"delivery_address"`
}

type CreateOrderResponse struct {
	OrderID uint64 `json:"order_id"`
}

type UpdateOrderStatusDTO struct {
	NewStatus      uint8  `json:"new_status"`
	TrackingNumber string `json:"tracking_number"`
}

type AuthorizeSellerDTO struct {
	Seller string `json:"seller"`
}

type SellerStatusDTO struct {
	Account    string `json:"account"`
	Authorized bool   `json:"authorized"`
}

type SetPlatformFeeDTO struct {
	Percent uint64 `json:"percent"`
}

type WithdrawResponse struct {
	Amount uint64 `json:"amount"`
}

type CustomerOrdersDTO struct {
	Customer string   `json:"customer"`
	OrderIDs []uint64 `json:"order_ids"`
}
