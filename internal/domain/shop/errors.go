package shop

import "errors"

var (
	ErrShopNotFound            = errors.New("shop not found")
	ErrShopAlreadyExists       = errors.New("seller already owns a shop")
	ErrShopNotApproved         = errors.New("shop is not approved")
	ErrShopInactive            = errors.New("shop is inactive")
	ErrInvalidStatusTransition = errors.New("invalid shop status transition")
	ErrInvalidCategory         = errors.New("invalid shop category")
)
