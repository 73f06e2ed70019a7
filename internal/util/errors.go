package util

import "errors"

var (
	ErrUserNotFound     = errors.New("用户不存在")
	ErrEmailRegistered  = errors.New("该邮箱已被注册")
	ErrNotRegistered    = errors.New("not registered")
	ErrSectionNotFound  = errors.New("section not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrStoreUnavailable = errors.New("record store unavailable")
)
