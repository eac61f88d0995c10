// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// coinSymbolRegex matches ticker-style symbols such as "BTC" or "DOGE2".
// Lowercase input is accepted at the edge; services canonicalize to upper.
var coinSymbolRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]{1,11}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("trade_side", validateTradeSide)
		_ = v.RegisterValidation("coin_symbol", validateCoinSymbol)
	}
}

func validateTradeSide(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "buy", "sell":
		return true
	}
	return false
}

func validateCoinSymbol(fl validator.FieldLevel) bool {
	return coinSymbolRegex.MatchString(fl.Field().String())
}
