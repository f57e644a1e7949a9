package http

import (
	"encoding/json"
	"net/http"
)

const (
	codeMethodNotAllowed    = "method_not_allowed"
	codeNotFound            = "not_found"
	codeInvalidRequestBody  = "invalid_request_body"
	codeAuthRequired        = "auth_required"
	codeEmailUnverified     = "email_unverified"
	codeResourceNotFound    = "resource_not_found"
	codeResourceUnavailable = "resource_unavailable"
	codeContactOnly         = "contact_only"
	codeInvalidGuestCount   = "invalid_guest_count"
	codeInvalidShape        = "invalid_booking_shape"
	codeInvalidWindow       = "invalid_booking_window"
	codeNightsOutOfRange    = "nights_out_of_range"
	codeInvalidAmount       = "invalid_amount"
	codeCurrencyUnsupported = "currency_unsupported"
	codeWindowConflict      = "window_conflict"
	codeResourceMisconfig   = "resource_misconfigured"
	codeModuleDisabled      = "module_disabled"
	codeLimitExceeded       = "limit_exceeded"
	codeReservationNotFound = "reservation_not_found"
	codeForbidden           = "forbidden"
	codeInternalError       = "internal_error"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	payload, err := json.Marshal(errorResponse{
		Error: msg,
		Code:  code,
	})
	if err != nil {
		_, _ = w.Write([]byte(`{"error":"internal error","code":"internal_error"}`))
		return
	}
	_, _ = w.Write(payload)
}

type moduleDisabledResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code"`
	Module string `json:"module"`
}

// writeModuleDisabled keeps the flag service's own response shape instead of
// collapsing it into the generic error body.
func writeModuleDisabled(w http.ResponseWriter, module string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_ = json.NewEncoder(w).Encode(moduleDisabledResponse{
		Error:  "required module is disabled",
		Code:   codeModuleDisabled,
		Module: module,
	})
}

type limitExceededResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Key     string `json:"key"`
	Limit   int    `json:"limit"`
	Current int    `json:"current"`
}

func writeLimitExceeded(w http.ResponseWriter, key string, limit, current int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusTooManyRequests)
	_ = json.NewEncoder(w).Encode(limitExceededResponse{
		Error:   "plan limit exceeded",
		Code:    codeLimitExceeded,
		Key:     key,
		Limit:   limit,
		Current: current,
	})
}
