package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/Dominion116/StyleHub/internal/domain/model"
	evt_model "github.com/Dominion116/StyleHub/internal/domain/model/event"
	"github.com/rs/zerolog/log"
)

// TxStore 單一交易範圍內的帳本存取
// GetProduct/GetOrder 查無資料時回傳 nil, nil
type TxStore interface {
	GetState(ctx context.Context) (*model.LedgerState, error)
	SaveState(ctx context.Context, state *model.LedgerState) error
	GetProduct(ctx context.Context, productID uint64) (*model.Product, error)
	SaveProduct(ctx context.Context, product *model.Product) error
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	GetOrder(ctx context.Context, orderID uint64) (*model.Order, error)
	SaveOrder(ctx context.Context, order *model.Order) error
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	GetCustomerOrders(ctx context.Context, customer string) ([]uint64, error)
	IsSeller(ctx context.Context, account string) (bool, error)
	AddSeller(ctx context.Context, account string) error
	RemoveSeller(ctx context.Context, account string) error
}

// MarketStore 市集帳本的持久層
// Transaction 內的所有變動要嘛全部提交，要嘛全部回滾
type MarketStore interface {
	TxStore
	Transaction(ctx context.Context, fn func(tx TxStore) error) error
}

// ValueTransferer 對外部帳戶轉出原生幣
// 轉帳是交易內唯一可能獨立失敗的子步驟，失敗必須讓整筆交易回滾
type ValueTransferer interface {
	Transfer(ctx context.Context, to string, amount uint64) error
}

// EventDispatcher 發佈帳本事件
type EventDispatcher interface {
	Dispatch(ctx context.Context, evt evt_model.Event) error
}

// ProductCache 商品讀取快取
// GetProduct cache miss時回傳 nil, nil
type ProductCache interface {
	GetProduct(ctx context.Context, productID uint64) (*model.Product, error)
	SetProduct(ctx context.Context, product *model.Product) error
	DeleteProduct(ctx context.Context, productID uint64) error
}

type IMarketService interface {
	// 商品目錄
	ListProduct(ctx context.Context, caller, name, description string, category model.Category, unitPrice, stockQuantity uint64, imageURI string) (uint64, error)
	ModifyProduct(ctx context.Context, caller string, productID, newPrice, newStock uint64, isActive bool) error
	GetProduct(ctx context.Context, productID uint64) (*model.Product, error)
	GetAllProducts(ctx context.Context) ([]model.Product, error)
	GetProductCount(ctx context.Context) (uint64, error)

	// 訂單帳本
	CreateOrder(ctx context.Context, caller string, productID, quantity uint64, deliveryAddress string, attachedValue uint64) (uint64, error)
	UpdateOrderStatus(ctx context.Context, caller string, orderID uint64, newStatus model.OrderStatus, trackingNumber string) error
	CancelOrder(ctx context.Context, caller string, orderID uint64) error
	GetOrder(ctx context.Context, orderID uint64) (*model.Order, error)
	GetAllOrders(ctx context.Context) ([]model.Order, error)
	GetOrderCount(ctx context.Context) (uint64, error)
	GetCustomerOrders(ctx context.Context, customer string) ([]uint64, error)

	// 賣家授權
	AuthorizeSeller(ctx context.Context, caller, seller string) error
	RevokeSeller(ctx context.Context, caller, seller string) error
	IsAuthorizedSeller(ctx context.Context, account string) (bool, error)

	// 手續費與平台金庫
	SetPlatformFee(ctx context.Context, caller string, percent uint64) error
	GetPlatformFee(ctx context.Context) (uint64, error)
	WithdrawFunds(ctx context.Context, caller string) (uint64, error)
	GetContractBalance(ctx context.Context) (uint64, error)
	GetOwner(ctx context.Context) (string, error)
}

const maxFeePercent = 10

// MarketService 市集帳本引擎
// 所有寫入操作由單一mutex序列化，搭配store transaction保證原子性
// dispatcher與cache可為nil，事件與快取都不影響帳本正確性
type MarketService struct {
	store      MarketStore
	transferer ValueTransferer
	dispatcher EventDispatcher
	cache      ProductCache
	mu         sync.Mutex
}

func NewMarketService(store MarketStore, transferer ValueTransferer, dispatcher EventDispatcher, cache ProductCache) *MarketService {
	if store == nil {
		panic("market service dependency store is nil")
	}
	if transferer == nil {
		panic("market service dependency transferer is nil")
	}
	return &MarketService{
		store:      store,
		transferer: transferer,
		dispatcher: dispatcher,
		cache:      cache,
	}
}

// 上架商品，回傳新商品ID
// 錯誤:
//   - ErrUnauthorized: 呼叫者不是授權賣家
//   - ErrInvalidAmount: 單價為0或類別超出範圍
func (s *MarketService) ListProduct(ctx context.Context, caller, name, description string, category model.Category, unitPrice, stockQuantity uint64, imageURI string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var productID uint64
	var created *model.Product
	err := s.store.Transaction(ctx, func(tx TxStore) error {
		state, err := tx.GetState(ctx)
		if err != nil {
			return err
		}

		authorized, err := s.isAuthorizedSellerTx(ctx, tx, state, caller)
		if err != nil {
			return err
		}
		if !authorized {
			return model.ErrUnauthorized
		}
		if unitPrice == 0 {
			return model.ErrInvalidAmount
		}
		if !category.Valid() {
			return model.ErrInvalidAmount
		}

		state.ProductCount++
		productID = state.ProductCount
		created = &model.Product{
			ID:            productID,
			Name:          name,
			Description:   description,
			Category:      category,
			UnitPrice:     unitPrice,
			StockQuantity: stockQuantity,
			ImageURI:      imageURI,
			Seller:        caller,
			IsActive:      true,
			TotalSold:     0,
			CreatedAt:     time.Now().UTC(),
		}
		if err := tx.SaveProduct(ctx, created); err != nil {
			return err
		}
		return tx.SaveState(ctx, state)
	})
	if err != nil {
		return 0, err
	}

	s.dispatch(ctx, evt_model.NewProductListedEvent(productID, created.Name, uint8(created.Category), created.UnitPrice, created.Seller))
	return productID, nil
}

// 修改商品價格/庫存/上架狀態，只有該商品賣家或owner可操作
// 不會動到 TotalSold 與 Seller
func (s *MarketService) ModifyProduct(ctx context.Context, caller string, productID, newPrice, newStock uint64, isActive bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.Transaction(ctx, func(tx TxStore) error {
		state, err := tx.GetState(ctx)
		if err != nil {
			return err
		}
		product, err := tx.GetProduct(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return model.ErrInvalidProduct
		}
		if caller != product.Seller && caller != state.Owner {
			return model.ErrUnauthorized
		}

		product.UnitPrice = newPrice
		product.StockQuantity = newStock
		product.IsActive = isActive
		return tx.SaveProduct(ctx, product)
	})
	if err != nil {
		return err
	}

	s.invalidateProduct(ctx, productID)
	s.dispatch(ctx, evt_model.NewProductModifiedEvent(productID, newPrice, newStock, isActive))
	return nil
}

// 下單
// attachedValue 必須精準等於 quantity*unitPrice + floor(itemTotal*feePercent/100)
// 成功時整筆金額進入託管，庫存與銷量同步更新，全部在同一個交易內完成
func (s *MarketService) CreateOrder(ctx context.Context, caller string, productID, quantity uint64, deliveryAddress string, attachedValue uint64) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var order *model.Order
	err := s.store.Transaction(ctx, func(tx TxStore) error {
		state, err := tx.GetState(ctx)
		if err != nil {
			return err
		}
		product, err := tx.GetProduct(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil || !product.IsActive {
			return model.ErrInvalidProduct
		}
		if quantity == 0 {
			return model.ErrInvalidAmount
		}
		if quantity > product.StockQuantity {
			return model.ErrInsufficientStock
		}

		// 金額運算不允許繞回，任何會溢位uint64的訂單直接拒絕
		itemTotal := quantity * product.UnitPrice
		if product.UnitPrice != 0 && itemTotal/product.UnitPrice != quantity {
			return model.ErrInvalidAmount
		}
		// floor(itemTotal*feePercent/100)，拆開算避免乘積溢位
		fee := itemTotal/100*state.FeePercent + itemTotal%100*state.FeePercent/100
		if fee > math.MaxUint64-itemTotal {
			return model.ErrInvalidAmount
		}
		if attachedValue != itemTotal+fee {
			return model.ErrInvalidPayment
		}

		product.StockQuantity -= quantity
		product.TotalSold += quantity
		if err := tx.SaveProduct(ctx, product); err != nil {
			return err
		}

		now := time.Now().UTC()
		state.OrderCount++
		order = &model.Order{
			ID:              state.OrderCount,
			Customer:        caller,
			ProductID:       productID,
			Quantity:        quantity,
			ItemTotal:       itemTotal,
			PlatformFee:     fee,
			Status:          model.OrderStatusPlaced,
			PlacedAt:        now,
			UpdatedAt:       now,
			DeliveryAddress: deliveryAddress,
		}
		if err := tx.SaveOrder(ctx, order); err != nil {
			return err
		}

		// 附帶的金額已由外部執行環境移入引擎，這裡記入帳上並全額列為託管
		state.Balance += attachedValue
		state.EscrowHeld += attachedValue
		return tx.SaveState(ctx, state)
	})
	if err != nil {
		return 0, err
	}

	s.invalidateProduct(ctx, productID)
	s.dispatch(ctx, evt_model.NewOrderCreatedEvent(order.ID, order.Customer, order.ProductID, order.Quantity, order.Total()))
	return order.ID, nil
}

// 推進訂單狀態，只有owner可操作（賣家不自行出貨）
// 合法路徑: Placed → Confirmed → Shipped → Delivered，一次一步
// Refunded 只能從 Shipped/Delivered 進入
// Delivered 時將貨款釋放給賣家，手續費留在金庫
func (s *MarketService) UpdateOrderStatus(ctx context.Context, caller string, orderID uint64, newStatus model.OrderStatus, trackingNumber string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var previous model.OrderStatus
	err := s.store.Transaction(ctx, func(tx TxStore) error {
		state, err := tx.GetState(ctx)
		if err != nil {
			return err
		}
		if caller != state.Owner {
			return model.ErrUnauthorized
		}
		order, err := tx.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return model.ErrInvalidProduct
		}

		switch {
		case newStatus == model.OrderStatusRefunded:
			if !order.Status.Refundable() {
				return model.ErrInvalidTransition
			}
		case newStatus >= model.OrderStatusConfirmed && newStatus <= model.OrderStatusDelivered:
			// 狀態只能一步一步往前走
			if order.Status+1 != newStatus {
				return model.ErrInvalidTransition
			}
		default:
			return model.ErrInvalidTransition
		}

		previous = order.Status
		if trackingNumber != "" {
			order.TrackingNumber = trackingNumber
		}
		order.Status = newStatus
		order.UpdatedAt = time.Now().UTC()
		if err := tx.SaveOrder(ctx, order); err != nil {
			return err
		}

		// 先寫入所有狀態變動，轉帳留到最後，失敗整筆回滾
		switch newStatus {
		case model.OrderStatusDelivered:
			product, err := tx.GetProduct(ctx, order.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return model.ErrInvalidProduct
			}
			state.Balance -= order.ItemTotal
			state.EscrowHeld -= order.Total()
			if err := tx.SaveState(ctx, state); err != nil {
				return err
			}
			if err := s.transferer.Transfer(ctx, product.Seller, order.ItemTotal); err != nil {
				return fmt.Errorf("%w: %v", model.ErrTransferFailed, err)
			}
		case model.OrderStatusRefunded:
			refund := order.Total()
			if previous == model.OrderStatusShipped {
				// 託管還沒釋放，直接退還
				state.EscrowHeld -= refund
			} else if state.Balance-state.EscrowHeld < refund {
				// 送達後賣家份額已經付出，退款只能由平台收入吸收
				return model.ErrTransferFailed
			}
			state.Balance -= refund
			if err := tx.SaveState(ctx, state); err != nil {
				return err
			}
			if err := s.transferer.Transfer(ctx, order.Customer, refund); err != nil {
				return fmt.Errorf("%w: %v", model.ErrTransferFailed, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.dispatch(ctx, evt_model.NewOrderStatusChangedEvent(orderID, uint8(previous), uint8(newStatus)))
	return nil
}

// 取消訂單，只有下單的客戶可操作，且限 Placed/Confirmed
// 全額退還客戶並還原庫存與銷量
func (s *MarketService) CancelOrder(ctx context.Context, caller string, orderID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var previous model.OrderStatus
	var productID uint64
	err := s.store.Transaction(ctx, func(tx TxStore) error {
		state, err := tx.GetState(ctx)
		if err != nil {
			return err
		}
		order, err := tx.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return model.ErrInvalidProduct
		}
		if caller != order.Customer {
			return model.ErrUnauthorized
		}
		if !order.Status.Cancellable() {
			return model.ErrOrderNotCancellable
		}

		product, err := tx.GetProduct(ctx, order.ProductID)
		if err != nil {
			return err
		}
		if product != nil {
			product.StockQuantity += order.Quantity
			product.TotalSold -= order.Quantity
			if err := tx.SaveProduct(ctx, product); err != nil {
				return err
			}
		}

		previous = order.Status
		productID = order.ProductID
		order.Status = model.OrderStatusCancelled
		order.UpdatedAt = time.Now().UTC()
		if err := tx.SaveOrder(ctx, order); err != nil {
			return err
		}

		refund := order.Total()
		state.Balance -= refund
		state.EscrowHeld -= refund
		if err := tx.SaveState(ctx, state); err != nil {
			return err
		}
		if err := s.transferer.Transfer(ctx, order.Customer, refund); err != nil {
			return fmt.Errorf("%w: %v", model.ErrTransferFailed, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateProduct(ctx, productID)
	s.dispatch(ctx, evt_model.NewOrderStatusChangedEvent(orderID, uint8(previous), uint8(model.OrderStatusCancelled)))
	return nil
}

// 授權賣家，owner限定
// 重複授權視為no-op成功
func (s *MarketService) AuthorizeSeller(ctx context.Context, caller, seller string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.Transaction(ctx, func(tx TxStore) error {
		state, err := tx.GetState(ctx)
		if err != nil {
			return err
		}
		if caller != state.Owner {
			return model.ErrUnauthorized
		}
		if seller == "" {
			return model.ErrInvalidAddress
		}
		return tx.AddSeller(ctx, seller)
	})
	if err != nil {
		return err
	}

	s.dispatch(ctx, evt_model.NewSellerAuthorizedEvent(seller))
	return nil
}

// 撤銷賣家授權，owner限定
// 撤銷不存在的賣家視為no-op成功; owner本身不在名單內，無法被撤銷
func (s *MarketService) RevokeSeller(ctx context.Context, caller, seller string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.store.Transaction(ctx, func(tx TxStore) error {
		state, err := tx.GetState(ctx)
		if err != nil {
			return err
		}
		if caller != state.Owner {
			return model.ErrUnauthorized
		}
		if seller == "" {
			return model.ErrInvalidAddress
		}
		return tx.RemoveSeller(ctx, seller)
	})
	if err != nil {
		return err
	}

	s.dispatch(ctx, evt_model.NewSellerRevokedEvent(seller))
	return nil
}

// 設定平台手續費，owner限定，上限10%
// 只影響之後建立的訂單，已存在訂單的手續費不變
func (s *MarketService) SetPlatformFee(ctx context.Context, caller string, percent uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.store.Transaction(ctx, func(tx TxStore) error {
		state, err := tx.GetState(ctx)
		if err != nil {
			return err
		}
		if caller != state.Owner {
			return model.ErrUnauthorized
		}
		if percent > maxFeePercent {
			return model.ErrInvalidAmount
		}
		state.FeePercent = percent
		return tx.SaveState(ctx, state)
	})
}

// 提領平台收入，owner限定
// 只提領未被託管佔用的部分，餘額為0時是no-op
func (s *MarketService) WithdrawFunds(ctx context.Context, caller string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var amount uint64
	var recipient string
	err := s.store.Transaction(ctx, func(tx TxStore) error {
		state, err := tx.GetState(ctx)
		if err != nil {
			return err
		}
		if caller != state.Owner {
			return model.ErrUnauthorized
		}

		amount = state.Balance - state.EscrowHeld
		if amount == 0 {
			return nil
		}

		recipient = state.Owner
		state.Balance -= amount
		if err := tx.SaveState(ctx, state); err != nil {
			return err
		}
		if err := s.transferer.Transfer(ctx, recipient, amount); err != nil {
			return fmt.Errorf("%w: %v", model.ErrTransferFailed, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if amount > 0 {
		s.dispatch(ctx, evt_model.NewFundsWithdrawnEvent(recipient, amount))
	}
	return amount, nil
}

// 查詢商品，id從1開始
// 錯誤:
//   - ErrInvalidProduct: 商品不存在
func (s *MarketService) GetProduct(ctx context.Context, productID uint64) (*model.Product, error) {
	if s.cache != nil {
		cached, err := s.cache.GetProduct(ctx, productID)
		if err != nil {
			log.Warn().Err(err).Uint64("product_id", productID).Msg("read product cache failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	product, err := s.store.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, model.ErrInvalidProduct
	}

	if s.cache != nil {
		if err := s.cache.SetProduct(ctx, product); err != nil {
			log.Warn().Err(err).Uint64("product_id", productID).Msg("fill product cache failed")
		}
	}
	return product, nil
}

func (s *MarketService) GetAllProducts(ctx context.Context) ([]model.Product, error) {
	return s.store.GetAllProducts(ctx)
}

func (s *MarketService) GetProductCount(ctx context.Context) (uint64, error) {
	state, err := s.store.GetState(ctx)
	if err != nil {
		return 0, err
	}
	return state.ProductCount, nil
}

// 查詢訂單
// 錯誤:
//   - ErrInvalidProduct: 訂單不存在（沿用合約的扁平錯誤集合）
func (s *MarketService) GetOrder(ctx context.Context, orderID uint64) (*model.Order, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, model.ErrInvalidProduct
	}
	return order, nil
}

func (s *MarketService) GetAllOrders(ctx context.Context) ([]model.Order, error) {
	return s.store.GetAllOrders(ctx)
}

func (s *MarketService) GetOrderCount(ctx context.Context) (uint64, error) {
	state, err := s.store.GetState(ctx)
	if err != nil {
		return 0, err
	}
	return state.OrderCount, nil
}

func (s *MarketService) GetCustomerOrders(ctx context.Context, customer string) ([]uint64, error) {
	return s.store.GetCustomerOrders(ctx, customer)
}

// owner永遠視為授權賣家
func (s *MarketService) IsAuthorizedSeller(ctx context.Context, account string) (bool, error) {
	state, err := s.store.GetState(ctx)
	if err != nil {
		return false, err
	}
	return s.isAuthorizedSellerTx(ctx, s.store, state, account)
}

func (s *MarketService) GetPlatformFee(ctx context.Context) (uint64, error) {
	state, err := s.store.GetState(ctx)
	if err != nil {
		return 0, err
	}
	return state.FeePercent, nil
}

func (s *MarketService) GetContractBalance(ctx context.Context) (uint64, error) {
	state, err := s.store.GetState(ctx)
	if err != nil {
		return 0, err
	}
	return state.Balance, nil
}

func (s *MarketService) GetOwner(ctx context.Context) (string, error) {
	state, err := s.store.GetState(ctx)
	if err != nil {
		return "", err
	}
	return state.Owner, nil
}

func (s *MarketService) isAuthorizedSellerTx(ctx context.Context, tx TxStore, state *model.LedgerState, account string) (bool, error) {
	if account == state.Owner {
		return true, nil
	}
	return tx.IsSeller(ctx, account)
}

// 事件發佈失敗只記log，不影響已提交的帳本狀態
func (s *MarketService) dispatch(ctx context.Context, evt evt_model.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Dispatch(ctx, evt); err != nil {
		log.Error().Err(err).Str("event_type", string(evt.Type())).Str("aggregate_id", evt.GetAggregateID()).Msg("dispatch market event failed")
	}
}

func (s *MarketService) invalidateProduct(ctx context.Context, productID uint64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteProduct(ctx, productID); err != nil {
		log.Warn().Err(err).Uint64("product_id", productID).Msg("invalidate product cache failed")
	}
}

var _ IMarketService = (*MarketService)(nil)
