package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	ConfigurationError  failure.ErrorCode = "ConfigurationError"

	// Marketplace and trading codes.
	ItemNotFound       failure.ErrorCode = "ItemNotFound"
	SellerNotFound     failure.ErrorCode = "SellerNotFound"
	PurchaseNotFound   failure.ErrorCode = "PurchaseNotFound"
	TradeNotFound      failure.ErrorCode = "TradeNotFound"     // trade already resolved upstream
	MarketUnavailable  failure.ErrorCode = "MarketUnavailable" // upstream API failure
	MalformedPayload   failure.ErrorCode = "MalformedPayload"  // upstream returned garbage
	InvalidMarketName  failure.ErrorCode = "InvalidMarketName"
	InvalidDivider     failure.ErrorCode = "InvalidDivider"
	TradeOfferRejected failure.ErrorCode = "TradeOfferRejected"
	DuplicatePurchase  failure.ErrorCode = "DuplicatePurchase"
)
