// internal/types/types.go
package types

// EntityID уникальный идентификатор сущности в пределах одной сессии.
type EntityID uint64
