package model

import "errors"

// 市集引擎的錯誤集合
// 每個前置條件違反對應一種錯誤，呼叫端根據錯誤種類決定回應
var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidAddress      = errors.New("invalid address")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidProduct      = errors.New("invalid product")
	ErrInvalidPayment      = errors.New("invalid payment")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrOrderNotCancellable = errors.New("order not cancellable")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrTransferFailed      = errors.New("transfer failed")
)
