package services

import "errors"

// Базовые ошибки сервисного слоя. Ошибки хранилища не имеют
// собственного значения и оборачиваются с контекстом операции.
var (
	// ErrValidation некорректные входные параметры, операция не выполнялась
	ErrValidation = errors.New("некорректные параметры запроса")

	// ErrNotFound запрошенная запись отсутствует
	ErrNotFound = errors.New("запись не найдена")

	// ErrComputation вычисленное значение часов некорректно,
	// генерация табеля прерывается целиком
	ErrComputation = errors.New("некорректное значение часов")
)
