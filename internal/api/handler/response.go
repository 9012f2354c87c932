package handler

import (
	"encoding/json"
	"net/http"
)

// Response 統一的成功回應格式
type Response struct {
	Data interface{} `json:"data,omitempty"`
}

// ResponseError 統一的錯誤回應格式
type ResponseError struct {
	Error string `json:"error"`
}

func successJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(Response{Data: data})
}

func createdJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(Response{Data: data})
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ResponseError{Error: msg})
}
