package repository

import "errors"

// единые сигналы хранилища, наружу их транслирует только сервисный слой
var ErrNotFound = errors.New("объект не найден")
var ErrDuplicate = errors.New("нарушение уникальности")
