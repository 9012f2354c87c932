package model

// LedgerState 市集帳本的單例狀態
// 部署時建立一次，之後只透過引擎操作變動
//
// Balance 是引擎目前持有的全部原生幣
// EscrowHeld 是未結算訂單(Placed/Confirmed/Shipped)佔用的託管額
// Balance - EscrowHeld 即為可提領的平台收入
type LedgerState struct {
	Owner        string `json:"owner"`
	FeePercent   uint64 `json:"fee_percent"` // 0~10
	Balance      uint64 `json:"balance"`
	EscrowHeld   uint64 `json:"escrow_held"`
	ProductCount uint64 `json:"product_count"`
	OrderCount   uint64 `json:"order_count"`
}
