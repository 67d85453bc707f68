// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
)

type errorBody struct {
	Success bool `json:"success"`
	Errors  struct {
		Code string `json:"code"`
	} `json:"errors"`
}

// writeError writes {"success":false,"errors":{"code":code}}.
func writeError(w http.ResponseWriter, status int, code string) {
	body := errorBody{}
	body.Errors.Code = code

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
