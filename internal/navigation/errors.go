package navigation

import "errors"

var (
	ErrItemRequired    = errors.New("navigation: item id required")
	ErrLabelRequired   = errors.New("navigation: label required")
	ErrLinkTypeInvalid = errors.New("navigation: link type invalid")
	ErrTargetRequired  = errors.New("navigation: target required")
	ErrTargetInvalid   = errors.New("navigation: target invalid")
	ErrTargetScope     = errors.New("navigation: target page belongs to another scope")
	ErrParentInvalid   = errors.New("navigation: parent belongs to another scope")
	ErrParentCycle     = errors.New("navigation: parent assignment creates a cycle")
	ErrSyntheticItem   = errors.New("navigation: generated items cannot be edited")
	ErrKeyInvalid      = errors.New("navigation: item key invalid")
)
