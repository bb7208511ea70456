package capacity

import "errors"

// ErrInternal возвращается при ошибках чтения агрегатов
var ErrInternal = errors.New("capacity.ledger: internal error")
