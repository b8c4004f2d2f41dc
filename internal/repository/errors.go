package repository

import "errors"

var (
	// 対象が存在しない
	ErrNotFound = errors.New("not found")

	// unique制約違反
	ErrDuplicate = errors.New("duplicate")
)

// 1明細の数量上限
const MaxQuantity int64 = 10000

// 数量は1以上MaxQuantity以下
var ErrInvalidQuantity = errors.New("invalid quantity")

// 加算後がMaxQuantityを超える
var ErrQuantityLimit = errors.New("quantity limit exceeded")
