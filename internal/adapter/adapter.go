// Package adapter wires every raw source adapter from configuration.
package adapter

import "LottoSync/internal/model"

// Source common surface of the raw source adapters; Fetch signatures differ per publisher
type Source interface {
	Supports(t model.LottoType) bool
}
